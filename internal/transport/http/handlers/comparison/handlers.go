package comparisonhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uniaccru/promotion-system/internal/domain/comparison"
	"github.com/uniaccru/promotion-system/internal/transport/http/api"
	"github.com/uniaccru/promotion-system/internal/transport/http/middleware"
)

type Handler struct {
	Service *comparison.Service
}

func NewHandler(service *comparison.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/calibrations/{calibrationID}", func(r chi.Router) {
		r.Get("/comparisons", h.handleList)
		r.Post("/comparisons", h.handleCreate)
		r.Get("/pending", h.handlePending)
	})
}

type createPayload struct {
	CandidateAID string `json:"candidateAId"`
	CandidateBID string `json:"candidateBId"`
	WinnerID     string `json:"winnerId"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetActorID(r.Context())
	if actorID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "actor identity required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.CandidateAID == "" || payload.CandidateBID == "" || payload.WinnerID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "candidateAId, candidateBId and winnerId are required", middleware.GetRequestID(r.Context()))
		return
	}

	detail, err := h.Service.Create(r.Context(), chi.URLParam(r, "calibrationID"), payload.CandidateAID, payload.CandidateBID, payload.WinnerID, actorID)
	if err != nil {
		h.fail(w, r, err, "comparison_create_failed")
		return
	}
	api.Created(w, detail, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	details, err := h.Service.ListByCalibration(r.Context(), chi.URLParam(r, "calibrationID"))
	if err != nil {
		h.fail(w, r, err, "comparison_list_failed")
		return
	}
	if details == nil {
		details = []comparison.Detail{}
	}
	api.Success(w, details, middleware.GetRequestID(r.Context()))
}

// handlePending returns the pairs the calling evaluator still has to judge.
// An explicit evaluatorId query parameter lets HR inspect another evaluator's
// remaining work.
func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	evaluatorID := r.URL.Query().Get("evaluatorId")
	if evaluatorID == "" {
		evaluatorID = middleware.GetActorID(r.Context())
	}
	if evaluatorID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "evaluator identity required", middleware.GetRequestID(r.Context()))
		return
	}

	pending, err := h.Service.PendingForEvaluator(r.Context(), chi.URLParam(r, "calibrationID"), evaluatorID)
	if err != nil {
		h.fail(w, r, err, "comparison_pending_failed")
		return
	}
	api.Success(w, pending, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, comparison.ErrCalibrationNotFound):
		api.Fail(w, http.StatusNotFound, "calibration_not_found", err.Error(), requestID)
	case errors.Is(err, comparison.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", err.Error(), requestID)
	case errors.Is(err, comparison.ErrComparisonNotFound):
		api.Fail(w, http.StatusNotFound, "comparison_not_found", err.Error(), requestID)
	case errors.Is(err, comparison.ErrInvalidWinner), errors.Is(err, comparison.ErrSelfComparison):
		api.Fail(w, http.StatusBadRequest, "invalid_comparison", err.Error(), requestID)
	case errors.Is(err, comparison.ErrAlreadyCompared):
		api.Fail(w, http.StatusConflict, "already_compared", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, fallbackCode, "internal error", requestID)
	}
}
