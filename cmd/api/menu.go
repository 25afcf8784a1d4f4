package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/Saipoo/foodorder/internal/repo"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateMenuItemPayload struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required,max=50"`
	Available   *bool   `json:"available"`
}

type UpdateMenuItemPayload struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required,max=50"`
	Available   bool    `json:"available"`
}

// listMenuHandler godoc
//
//	@Summary		List the menu
//	@Description	List menu items currently available for ordering
//	@Tags			menu
//	@Produce		json
//	@Success		200	{array}		domain.MenuItem
//	@Failure		500	{object}	map[string]string
//	@Router			/menu [get]
func (app *application) listMenuHandler(w http.ResponseWriter, r *http.Request) {
	items, err := app.menuRepo.List(r.Context(), true)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, items); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminListMenuHandler godoc
//
//	@Summary		List the full menu
//	@Description	List every menu item, including items hidden from customers
//	@Tags			admin-menu
//	@Produce		json
//	@Success		200	{array}		domain.MenuItem
//	@Failure		401	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/admin/menu [get]
func (app *application) adminListMenuHandler(w http.ResponseWriter, r *http.Request) {
	items, err := app.menuRepo.List(r.Context(), false)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, items); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createMenuItemHandler godoc
//
//	@Summary	Create a menu item
//	@Tags		admin-menu
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		CreateMenuItemPayload	true	"Menu item details"
//	@Success	201		{object}	domain.MenuItem
//	@Failure	400		{object}	map[string]string
//	@Failure	401		{object}	map[string]string
//	@Failure	500		{object}	map[string]string
//	@Router		/admin/menu [post]
func (app *application) createMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateMenuItemPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	available := true
	if payload.Available != nil {
		available = *payload.Available
	}

	item := &domain.MenuItem{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
		Available:   available,
	}

	if err := app.menuRepo.Create(r.Context(), item); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateMenuItemHandler godoc
//
//	@Summary		Update a menu item
//	@Description	Replace a menu item's fields. Already-placed orders keep their snapshotted prices.
//	@Tags			admin-menu
//	@Accept			json
//	@Produce		json
//	@Param			item_id	path		string					true	"Menu item ID"
//	@Param			payload	body		UpdateMenuItemPayload	true	"Menu item details"
//	@Success		200		{object}	domain.MenuItem
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/admin/menu/{item_id} [put]
func (app *application) updateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "item_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var payload UpdateMenuItemPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item, err := app.menuRepo.GetByID(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundError(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	item.Name = payload.Name
	item.Description = payload.Description
	item.Price = payload.Price
	item.Category = payload.Category
	item.Available = payload.Available
	item.UpdatedAt = time.Now()

	if err := app.menuRepo.Update(r.Context(), item); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundError(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteMenuItemHandler godoc
//
//	@Summary	Delete a menu item
//	@Tags		admin-menu
//	@Produce	json
//	@Param		item_id	path	string	true	"Menu item ID"
//	@Success	204
//	@Failure	400	{object}	map[string]string
//	@Failure	401	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/admin/menu/{item_id} [delete]
func (app *application) deleteMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "item_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.menuRepo.Delete(r.Context(), itemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundError(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
