package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/Saipoo/foodorder/internal/domain"
)

type principalKey string

const (
	customerCtxKey principalKey = "customer"
	adminCtxKey    principalKey = "admin"
)

const (
	customerCookieName = "auth_token"
	adminCookieName    = "admin_token"
)

var errMissingToken = errors.New("missing auth token")

// CustomerAuthMiddleware admits requests that carry a valid customer token in
// the customer cookie. Admin tokens do not pass, even if valid.
func (app *application) CustomerAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(customerCookieName)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, errMissingToken)
			return
		}

		customer, _, err := app.authService.VerifyToken(r.Context(), cookie.Value, domain.KindCustomer)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), customerCtxKey, customer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuthMiddleware admits requests that carry a valid admin token in the
// admin cookie.
func (app *application) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(adminCookieName)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, errMissingToken)
			return
		}

		_, admin, err := app.authService.VerifyToken(r.Context(), cookie.Value, domain.KindAdmin)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), adminCtxKey, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OrderViewerMiddleware admits either principal kind. Handlers downstream
// decide ownership; an admin in context may view any order.
func (app *application) OrderViewerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(adminCookieName); err == nil {
			if _, admin, err := app.authService.VerifyToken(r.Context(), cookie.Value, domain.KindAdmin); err == nil {
				ctx := context.WithValue(r.Context(), adminCtxKey, admin)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		if cookie, err := r.Cookie(customerCookieName); err == nil {
			if customer, _, err := app.authService.VerifyToken(r.Context(), cookie.Value, domain.KindCustomer); err == nil {
				ctx := context.WithValue(r.Context(), customerCtxKey, customer)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		app.unauthorizedErrorResponse(w, r, errMissingToken)
	})
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func getCustomerFromContext(r *http.Request) *domain.Customer {
	customer, _ := r.Context().Value(customerCtxKey).(*domain.Customer)
	return customer
}

func getAdminFromContext(r *http.Request) *domain.Admin {
	admin, _ := r.Context().Value(adminCtxKey).(*domain.Admin)
	return admin
}
