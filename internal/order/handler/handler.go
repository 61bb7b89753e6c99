package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cleanpos/internal/order/service"
	"cleanpos/internal/platform/middleware"
	"cleanpos/internal/transport/http/shared"
	id "cleanpos/pkg/domain"
	dErrors "cleanpos/pkg/domain-errors"
)

// Handler handles order CRUD endpoints.
type Handler struct {
	logger  *slog.Logger
	service *service.Service
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: svc}
}

// Register mounts the order routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/orders", h.handleCreate)
	r.Get("/orders", h.handleList)
	r.Get("/orders/{orderID}", h.handleGet)
}

type createItemRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

type createOrderRequest struct {
	CustomerID string              `json:"customer_id"`
	Items      []createItemRequest `json:"items"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	customerID, err := id.ParseCustomerID(req.CustomerID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	items := make([]service.NewItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.NewItem{Name: item.Name, PriceCents: item.PriceCents})
	}

	order, err := h.service.CreateOrder(r.Context(), customerID, items)
	if err != nil {
		if h.logger != nil {
			h.logger.WarnContext(r.Context(), "failed to create order",
				"request_id", middleware.GetRequestID(r.Context()),
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, order)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	orderID, err := id.ParseOrderID(chi.URLParam(r, "orderID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	customerID, err := id.ParseCustomerID(r.URL.Query().Get("customer_id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	orders, err := h.service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, orders)
}
