package main

import (
	"errors"
	"net/http"

	"github.com/Saipoo/foodorder/internal/auth"
	"github.com/Saipoo/foodorder/internal/service"
)

type RegisterPayload struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (app *application) setAuthCookie(w http.ResponseWriter, name, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenValidity.Seconds()),
		HttpOnly: true,
		Secure:   app.config.env == "production",
		SameSite: http.SameSiteStrictMode,
	})
}

func (app *application) clearAuthCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   app.config.env == "production",
		SameSite: http.SameSiteStrictMode,
	})
}

// registerCustomerHandler godoc
//
//	@Summary		Register a customer
//	@Description	Create a customer account and set the auth cookie
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RegisterPayload	true	"Registration details"
//	@Success		201		{object}	domain.Customer
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/auth/register [post]
func (app *application) registerCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	customer, err := app.authService.RegisterCustomer(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			app.conflictResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	token, _, err := app.authService.LoginCustomer(r.Context(), payload.Email, payload.Password)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.setAuthCookie(w, customerCookieName, token)

	if err := app.jsonRespone(w, http.StatusCreated, customer); err != nil {
		app.internalServerError(w, r, err)
	}
}

// loginCustomerHandler godoc
//
//	@Summary		Log in a customer
//	@Description	Verify credentials and set the auth cookie
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		LoginPayload	true	"Credentials"
//	@Success		200		{object}	domain.Customer
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/auth/login [post]
func (app *application) loginCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token, customer, err := app.authService.LoginCustomer(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.setAuthCookie(w, customerCookieName, token)

	if err := app.jsonRespone(w, http.StatusOK, customer); err != nil {
		app.internalServerError(w, r, err)
	}
}

// logoutCustomerHandler godoc
//
//	@Summary	Log out a customer
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/auth/logout [post]
func (app *application) logoutCustomerHandler(w http.ResponseWriter, r *http.Request) {
	app.clearAuthCookie(w, customerCookieName)

	if err := app.jsonRespone(w, http.StatusOK, map[string]string{"message": "logged out"}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// currentCustomerHandler godoc
//
//	@Summary	Get the authenticated customer
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	domain.Customer
//	@Failure	401	{object}	map[string]string
//	@Router		/auth/me [get]
func (app *application) currentCustomerHandler(w http.ResponseWriter, r *http.Request) {
	customer := getCustomerFromContext(r)

	if err := app.jsonRespone(w, http.StatusOK, customer); err != nil {
		app.internalServerError(w, r, err)
	}
}

// registerAdminHandler godoc
//
//	@Summary		Register an admin
//	@Description	Create an admin account and set the admin cookie
//	@Tags			admin-auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RegisterPayload	true	"Registration details"
//	@Success		201		{object}	domain.Admin
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/admin/auth/register [post]
func (app *application) registerAdminHandler(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	admin, err := app.authService.RegisterAdmin(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			app.conflictResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	token, _, err := app.authService.LoginAdmin(r.Context(), payload.Email, payload.Password)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.setAuthCookie(w, adminCookieName, token)

	if err := app.jsonRespone(w, http.StatusCreated, admin); err != nil {
		app.internalServerError(w, r, err)
	}
}

// loginAdminHandler godoc
//
//	@Summary		Log in an admin
//	@Description	Verify credentials and set the admin cookie
//	@Tags			admin-auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		LoginPayload	true	"Credentials"
//	@Success		200		{object}	domain.Admin
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/admin/auth/login [post]
func (app *application) loginAdminHandler(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token, admin, err := app.authService.LoginAdmin(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.setAuthCookie(w, adminCookieName, token)

	if err := app.jsonRespone(w, http.StatusOK, admin); err != nil {
		app.internalServerError(w, r, err)
	}
}

// logoutAdminHandler godoc
//
//	@Summary	Log out an admin
//	@Tags		admin-auth
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/admin/auth/logout [post]
func (app *application) logoutAdminHandler(w http.ResponseWriter, r *http.Request) {
	app.clearAuthCookie(w, adminCookieName)

	if err := app.jsonRespone(w, http.StatusOK, map[string]string{"message": "logged out"}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// currentAdminHandler godoc
//
//	@Summary	Get the authenticated admin
//	@Tags		admin-auth
//	@Produce	json
//	@Success	200	{object}	domain.Admin
//	@Failure	401	{object}	map[string]string
//	@Router		/admin/auth/me [get]
func (app *application) currentAdminHandler(w http.ResponseWriter, r *http.Request) {
	admin := getAdminFromContext(r)

	if err := app.jsonRespone(w, http.StatusOK, admin); err != nil {
		app.internalServerError(w, r, err)
	}
}
