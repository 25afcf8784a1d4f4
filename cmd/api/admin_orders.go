package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Saipoo/foodorder/internal/export"
	"github.com/Saipoo/foodorder/internal/service"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UpdateOrderStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

// listAllOrdersHandler godoc
//
//	@Summary		List all orders
//	@Description	List every order, newest first. Pass today=true to restrict to orders placed since local midnight.
//	@Tags			admin-orders
//	@Produce		json
//	@Param			today	query		bool	false	"Only today's orders"
//	@Success		200		{array}		OrderResponse
//	@Failure		401		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/admin/orders [get]
func (app *application) listAllOrdersHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("today") == "true" {
		list, err := app.orderService.ListToday(r.Context())
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		if err := app.jsonRespone(w, http.StatusOK, orderResponses(list)); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	list, err := app.orderService.ListAll(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, orderResponses(list)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateOrderStatusHandler godoc
//
//	@Summary		Update order status
//	@Description	Advance an order along placed → preparing → ready → completed, or cancel it from any active state
//	@Tags			admin-orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string						true	"Order ID"
//	@Param			payload		body		UpdateOrderStatusPayload	true	"Target status"
//	@Success		200			{object}	OrderResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		401			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/admin/orders/{order_id}/status [put]
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "order_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var payload UpdateOrderStatusPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderService.Transition(r.Context(), orderID, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrIllegalTransition):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, service.ErrNotFound):
			app.notFoundError(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, orderResponse(order)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// orderReceiptHandler godoc
//
//	@Summary	Download an order receipt as PDF
//	@Tags		admin-orders
//	@Produce	application/pdf
//	@Param		order_id	path	string	true	"Order ID"
//	@Success	200
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/admin/orders/{order_id}/receipt [get]
func (app *application) orderReceiptHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "order_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	order, err := app.orderService.Get(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			app.notFoundError(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	pdf, err := export.ReceiptPDF(order)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", order.OrderNumber))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(pdf); err != nil {
		app.logger.Errorw("failed to write receipt", "order_id", orderID.Hex(), "error", err)
	}
}

// downloadOrdersHandler godoc
//
//	@Summary	Download today's orders as DOCX
//	@Tags		admin-orders
//	@Produce	application/vnd.openxmlformats-officedocument.wordprocessingml.document
//	@Success	200
//	@Failure	401	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/admin/orders/download [get]
func (app *application) downloadOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := app.orderService.ListToday(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	day := time.Now()

	doc, err := export.OrdersDOCX(orders, day)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=orders-%s.docx", day.Format("2006-01-02")))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(doc); err != nil {
		app.logger.Errorw("failed to write orders document", "error", err)
	}
}
