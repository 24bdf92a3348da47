package promotionhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uniaccru/promotion-system/internal/domain/promotion"
	"github.com/uniaccru/promotion-system/internal/transport/http/api"
	"github.com/uniaccru/promotion-system/internal/transport/http/middleware"
)

type Handler struct {
	Service *promotion.Service
}

func NewHandler(service *promotion.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/promotions", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{requestID}", h.handleGet)
		r.Put("/{requestID}", h.handleUpdate)
		r.Patch("/{requestID}/status", h.handleUpdateStatus)
		r.Post("/{requestID}/decision", h.handleDecide)
	})
	r.Get("/employees/{employeeID}/grade-history", h.handleGradeHistory)
}

type createPayload struct {
	EmployeeID       string `json:"employeeId"`
	RequestedGradeID string `json:"requestedGradeId"`
	Justification    string `json:"justification"`
	Evidence         string `json:"evidence"`
	ReviewPeriod     string `json:"reviewPeriod"`
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
	if payload.EmployeeID == "" || payload.RequestedGradeID == "" || payload.Justification == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId, requestedGradeId and justification are required", middleware.GetRequestID(r.Context()))
		return
	}

	req, err := h.Service.Create(r.Context(), payload.EmployeeID, payload.RequestedGradeID, actorID, payload.Justification, payload.Evidence, payload.ReviewPeriod)
	if err != nil {
		h.fail(w, r, err, "promotion_create_failed")
		return
	}
	api.Created(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		requests []promotion.Request
		err      error
	)
	switch {
	case r.URL.Query().Get("employeeId") != "":
		requests, err = h.Service.ListByEmployee(r.Context(), r.URL.Query().Get("employeeId"))
	case r.URL.Query().Get("status") != "":
		requests, err = h.Service.ListByStatus(r.Context(), r.URL.Query().Get("status"))
	default:
		requests, err = h.Service.ListAll(r.Context())
	}
	if err != nil {
		h.fail(w, r, err, "promotion_list_failed")
		return
	}
	if requests == nil {
		requests = []promotion.Request{}
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	req, err := h.Service.Get(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		h.fail(w, r, err, "promotion_get_failed")
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

type updatePayload struct {
	RequestedGradeID string `json:"requestedGradeId"`
	Justification    string `json:"justification"`
	Evidence         string `json:"evidence"`
	ReviewPeriod     string `json:"reviewPeriod"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.RequestedGradeID == "" || payload.Justification == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "requestedGradeId and justification are required", middleware.GetRequestID(r.Context()))
		return
	}

	req, err := h.Service.Update(r.Context(), chi.URLParam(r, "requestID"), payload.RequestedGradeID, payload.Justification, payload.Evidence, payload.ReviewPeriod)
	if err != nil {
		h.fail(w, r, err, "promotion_update_failed")
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

type statusPayload struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetActorID(r.Context())
	if actorID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "actor identity required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	req, err := h.Service.UpdateStatus(r.Context(), chi.URLParam(r, "requestID"), payload.Status, actorID, payload.Comment)
	if err != nil {
		h.fail(w, r, err, "promotion_status_failed")
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

type decisionPayload struct {
	Decision string `json:"decision"`
	Comment  string `json:"comment"`
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetActorID(r.Context())
	if actorID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "actor identity required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload decisionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	req, err := h.Service.Decide(r.Context(), chi.URLParam(r, "requestID"), payload.Decision, payload.Comment, actorID)
	if err != nil {
		h.fail(w, r, err, "promotion_decision_failed")
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGradeHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Service.GradeHistory(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err, "grade_history_failed")
		return
	}
	if history == nil {
		history = []promotion.GradeChange{}
	}
	api.Success(w, history, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, promotion.ErrRequestNotFound):
		api.Fail(w, http.StatusNotFound, "request_not_found", err.Error(), requestID)
	case errors.Is(err, promotion.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", err.Error(), requestID)
	case errors.Is(err, promotion.ErrGradeNotFound):
		api.Fail(w, http.StatusNotFound, "grade_not_found", err.Error(), requestID)
	case errors.Is(err, promotion.ErrActiveRequestExists):
		api.Fail(w, http.StatusConflict, "active_request_exists", err.Error(), requestID)
	case errors.Is(err, promotion.ErrInvalidStatus), errors.Is(err, promotion.ErrInvalidDecision):
		api.Fail(w, http.StatusBadRequest, "invalid_value", err.Error(), requestID)
	case errors.Is(err, promotion.ErrIllegalTransition), errors.Is(err, promotion.ErrNotAwaitingDecision):
		api.Fail(w, http.StatusConflict, "illegal_transition", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, fallbackCode, "internal error", requestID)
	}
}
