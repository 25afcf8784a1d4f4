package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/Saipoo/foodorder/internal/service"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidID = errors.New("invalid ID format")

type OrderItemPayload struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

type CreateOrderPayload struct {
	Items          []OrderItemPayload `json:"items" validate:"required,min=1,dive"`
	PaymentMethod  string             `json:"payment_method" validate:"required,oneof=upi qr"`
	PaymentDetails struct {
		UPIID      string `json:"upi_id"`
		Screenshot string `json:"screenshot"`
	} `json:"payment_details"`
}

// OrderResponse is an order plus the live countdown the order-tracking page
// polls for.
type OrderResponse struct {
	domain.Order
	EstimatedMinutesRemaining int `json:"estimated_minutes_remaining"`
}

func orderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		Order:                     *order,
		EstimatedMinutesRemaining: order.EstimatedMinutesRemaining(time.Now()),
	}
}

func orderResponses(orders []domain.Order) []OrderResponse {
	now := time.Now()
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, OrderResponse{
			Order:                     orders[i],
			EstimatedMinutesRemaining: orders[i].EstimatedMinutesRemaining(now),
		})
	}
	return out
}

// createOrderHandler godoc
//
//	@Summary		Place an order
//	@Description	Place an order for the authenticated customer. Totals are computed server-side from current menu prices.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateOrderPayload	true	"Order details"
//	@Success		201		{object}	OrderResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/orders [post]
func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	customer := getCustomerFromContext(r)

	var payload CreateOrderPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items := make([]service.OrderItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		id, err := primitive.ObjectIDFromHex(item.MenuItemID)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		items = append(items, service.OrderItemInput{MenuItemID: id, Quantity: item.Quantity})
	}

	order, err := app.orderService.Place(r.Context(), customer, items, payload.PaymentMethod, domain.PaymentDetails{
		UPIID:      payload.PaymentDetails.UPIID,
		Screenshot: payload.PaymentDetails.Screenshot,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder),
			errors.Is(err, service.ErrInvalidPayment),
			errors.Is(err, service.ErrItemUnavailable),
			errors.Is(err, service.ErrNotFound):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, orderResponse(order)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listMyOrdersHandler godoc
//
//	@Summary	List the authenticated customer's orders
//	@Tags		orders
//	@Produce	json
//	@Success	200	{array}		OrderResponse
//	@Failure	401	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/orders [get]
func (app *application) listMyOrdersHandler(w http.ResponseWriter, r *http.Request) {
	customer := getCustomerFromContext(r)

	orders, err := app.orderService.ListForCustomer(r.Context(), customer.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, orderResponses(orders)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderHandler godoc
//
//	@Summary		Get an order
//	@Description	Customers may fetch their own orders; admins may fetch any order
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path		string	true	"Order ID"
//	@Success		200			{object}	OrderResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		403			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/orders/{order_id} [get]
func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
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

	if getAdminFromContext(r) == nil {
		customer := getCustomerFromContext(r)
		if customer == nil || order.Customer.ID != customer.ID {
			app.forbiddenResponse(w, r)
			return
		}
	}

	if err := app.jsonRespone(w, http.StatusOK, orderResponse(order)); err != nil {
		app.internalServerError(w, r, err)
	}
}
