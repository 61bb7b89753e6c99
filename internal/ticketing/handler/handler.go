// Package handler exposes the ticketing workflow over HTTP. The scan
// endpoint is the scan input transport: hardware scanners emulate
// keystrokes into the POS terminal, which posts each complete read here as
// one raw string.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"cleanpos/internal/platform/middleware"
	"cleanpos/internal/ticketing/service"
	"cleanpos/internal/transport/http/shared"
	id "cleanpos/pkg/domain"
	dErrors "cleanpos/pkg/domain-errors"
)

// Handler handles ticketing endpoints.
type Handler struct {
	logger  *slog.Logger
	service *service.Service
}

// New creates a ticketing Handler.
func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: svc}
}

// Register mounts the ticketing routes under /orders/{orderID}/ticketing.
func (h *Handler) Register(r chi.Router) {
	r.Route("/orders/{orderID}/ticketing", func(r chi.Router) {
		r.Post("/", h.handleStart)
		r.Get("/", h.handleProgress)
		r.Delete("/", h.handleCancel)
		r.Post("/print", h.handlePrint)
		r.Post("/scans", h.handleScan)
		r.Post("/pause", h.handlePause)
		r.Post("/resume", h.handleResume)
		r.Post("/complete", h.handleComplete)
	})
}

type scanRequest struct {
	Value string `json:"value"`
}

type completeRequest struct {
	EmployeeName string `json:"employee_name"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	progress, err := h.service.Start(r.Context(), orderID)
	if err != nil {
		h.logFailure(r, "failed to start ticketing", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, progress)
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	progress, err := h.service.Progress(r.Context(), orderID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, progress)
}

func (h *Handler) handlePrint(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	progress, err := h.service.PrintTags(r.Context(), orderID)
	if err != nil {
		h.logFailure(r, "failed to print tags", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, progress)
}

func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	raw := strings.TrimSuffix(req.Value, "\n")
	if raw == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "scan value is required"))
		return
	}

	outcome, err := h.service.SubmitScan(r.Context(), orderID, raw)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	// Rejections are operator feedback, not transport errors.
	shared.WriteJSON(w, http.StatusOK, outcome)
}

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	progress, err := h.service.PauseScanning(r.Context(), orderID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, progress)
}

func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	progress, err := h.service.ResumeScanning(r.Context(), orderID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, progress)
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req completeRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
			return
		}
	}

	progress, err := h.service.Complete(r.Context(), orderID, strings.TrimSpace(req.EmployeeName))
	if err != nil {
		h.logFailure(r, "failed to complete ticketing", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, progress)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	if err := h.service.Cancel(r.Context(), orderID); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (id.OrderID, bool) {
	orderID, err := id.ParseOrderID(chi.URLParam(r, "orderID"))
	if err != nil {
		shared.WriteError(w, err)
		return id.OrderID{}, false
	}
	return orderID, true
}

func (h *Handler) logFailure(r *http.Request, msg string, err error) {
	if h.logger == nil {
		return
	}
	h.logger.WarnContext(r.Context(), msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err.Error(),
	)
}
