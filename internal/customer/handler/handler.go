package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cleanpos/internal/customer/qr"
	"cleanpos/internal/customer/service"
	"cleanpos/internal/platform/middleware"
	"cleanpos/internal/transport/http/shared"
	id "cleanpos/pkg/domain"
	dErrors "cleanpos/pkg/domain-errors"
)

// Handler handles customer endpoints.
type Handler struct {
	logger  *slog.Logger
	service *service.Service
	qr      *qr.Generator
}

func New(svc *service.Service, qrGen *qr.Generator, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: svc, qr: qrGen}
}

// Register mounts the customer routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/customers", h.handleCreate)
	r.Get("/customers", h.handleList)
	r.Get("/customers/{customerID}", h.handleGet)
	r.Post("/customers/{customerID}/qrcode", h.handleQRCode)
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	customer, err := h.service.Create(r.Context(), req.Name, req.Phone, req.Email)
	if err != nil {
		if h.logger != nil {
			h.logger.WarnContext(r.Context(), "failed to create customer",
				"request_id", middleware.GetRequestID(r.Context()),
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, customer)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	customerID, err := id.ParseCustomerID(chi.URLParam(r, "customerID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	customer, err := h.service.Get(r.Context(), customerID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, customer)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, customers)
}

func (h *Handler) handleQRCode(w http.ResponseWriter, r *http.Request) {
	customerID, err := id.ParseCustomerID(chi.URLParam(r, "customerID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	key, err := h.qr.Ensure(r.Context(), customerID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"asset_key": key})
}
