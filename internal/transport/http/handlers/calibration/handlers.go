package calibrationhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/uniaccru/promotion-system/internal/domain/calibration"
	"github.com/uniaccru/promotion-system/internal/platform/report"
	"github.com/uniaccru/promotion-system/internal/transport/http/api"
	"github.com/uniaccru/promotion-system/internal/transport/http/middleware"
)

type Handler struct {
	Service *calibration.Service
}

func NewHandler(service *calibration.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/calibrations", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Post("/package", h.handleCreatePackage)
		r.Get("/{calibrationID}", h.handleGet)
		r.Patch("/{calibrationID}/status", h.handleUpdateStatus)
		r.Get("/{calibrationID}/ranking", h.handleRanking)
		r.Get("/{calibrationID}/ranking/export", h.handleRankingExport)
	})
}

type createPayload struct {
	GradeID string `json:"gradeId"`
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
	if payload.GradeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "gradeId is required", middleware.GetRequestID(r.Context()))
		return
	}

	cal, err := h.Service.Create(r.Context(), payload.GradeID, actorID)
	if err != nil {
		h.fail(w, r, err, "calibration_create_failed")
		return
	}
	api.Created(w, cal, middleware.GetRequestID(r.Context()))
}

type packagePayload struct {
	GradeID             string   `json:"gradeId"`
	PromotionRequestIDs []string `json:"promotionRequestIds"`
	EvaluatorIDs        []string `json:"evaluatorIds"`
}

func (h *Handler) handleCreatePackage(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetActorID(r.Context())
	if actorID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "actor identity required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload packagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.GradeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "gradeId is required", middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Service.CreatePackage(r.Context(), payload.GradeID, payload.PromotionRequestIDs, payload.EvaluatorIDs, actorID)
	if err != nil {
		h.fail(w, r, err, "calibration_package_failed")
		return
	}
	api.Created(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		calibrations []calibration.Calibration
		err          error
	)
	switch {
	case r.URL.Query().Get("status") != "":
		calibrations, err = h.Service.ListByStatus(r.Context(), r.URL.Query().Get("status"))
	case r.URL.Query().Get("gradeId") != "":
		calibrations, err = h.Service.ListByGrade(r.Context(), r.URL.Query().Get("gradeId"))
	case r.URL.Query().Get("evaluatorId") != "":
		calibrations, err = h.Service.ListByEvaluator(r.Context(), r.URL.Query().Get("evaluatorId"))
	default:
		calibrations, err = h.Service.ListByStatus(r.Context(), string(calibration.StatusActive))
	}
	if err != nil {
		h.fail(w, r, err, "calibration_list_failed")
		return
	}
	if calibrations == nil {
		calibrations = []calibration.Calibration{}
	}
	api.Success(w, calibrations, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context(), chi.URLParam(r, "calibrationID"))
	if err != nil {
		h.fail(w, r, err, "calibration_get_failed")
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

type statusPayload struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	cal, err := h.Service.UpdateStatus(r.Context(), chi.URLParam(r, "calibrationID"), payload.Status)
	if err != nil {
		h.fail(w, r, err, "calibration_status_failed")
		return
	}
	api.Success(w, cal, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRanking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.Service.CandidateRanking(r.Context(), chi.URLParam(r, "calibrationID"))
	if err != nil {
		h.fail(w, r, err, "calibration_ranking_failed")
		return
	}
	api.Success(w, ranking, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRankingExport(w http.ResponseWriter, r *http.Request) {
	calibrationID := chi.URLParam(r, "calibrationID")
	summary, err := h.Service.Summary(r.Context(), calibrationID)
	if err != nil {
		h.fail(w, r, err, "calibration_ranking_export_failed")
		return
	}
	ranking, err := h.Service.CandidateRanking(r.Context(), calibrationID)
	if err != nil {
		h.fail(w, r, err, "calibration_ranking_export_failed")
		return
	}

	content, err := report.RankingPDF(summary, ranking, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "calibration_ranking_export_failed", "failed to render report", middleware.GetRequestID(r.Context()))
		return
	}
	api.WritePDF(w, fmt.Sprintf("calibration-%s-ranking.pdf", calibrationID), content)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, calibration.ErrCalibrationNotFound):
		api.Fail(w, http.StatusNotFound, "calibration_not_found", err.Error(), requestID)
	case errors.Is(err, calibration.ErrGradeNotFound):
		api.Fail(w, http.StatusNotFound, "grade_not_found", err.Error(), requestID)
	case errors.Is(err, calibration.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", err.Error(), requestID)
	case errors.Is(err, calibration.ErrRequestNotFound):
		api.Fail(w, http.StatusNotFound, "request_not_found", err.Error(), requestID)
	case errors.Is(err, calibration.ErrTooFewRequests),
		errors.Is(err, calibration.ErrEvaluatorCount),
		errors.Is(err, calibration.ErrWrongGrade),
		errors.Is(err, calibration.ErrRequestNotEligible),
		errors.Is(err, calibration.ErrInvalidStatus):
		api.Fail(w, http.StatusBadRequest, "invalid_package", err.Error(), requestID)
	case errors.Is(err, calibration.ErrAlreadyInCalibration):
		api.Fail(w, http.StatusConflict, "request_already_packaged", err.Error(), requestID)
	case errors.Is(err, calibration.ErrIllegalTransition):
		api.Fail(w, http.StatusConflict, "illegal_transition", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, fallbackCode, "internal error", requestID)
	}
}
