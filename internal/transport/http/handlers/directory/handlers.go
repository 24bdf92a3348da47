package directoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uniaccru/promotion-system/internal/domain/directory"
	"github.com/uniaccru/promotion-system/internal/transport/http/api"
	"github.com/uniaccru/promotion-system/internal/transport/http/middleware"
)

type Handler struct {
	Store *directory.Store
}

func NewHandler(store *directory.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Get("/{employeeID}", h.handleGetEmployee)
	})
	r.Route("/grades", func(r chi.Router) {
		r.Get("/", h.handleListGrades)
		r.Post("/", h.handleCreateGrade)
		r.Get("/{gradeID}", h.handleGetGrade)
	})
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	if email := r.URL.Query().Get("email"); email != "" {
		emp, err := h.Store.EmployeeByEmail(r.Context(), email)
		if err != nil {
			h.fail(w, r, err, "employee_lookup_failed")
			return
		}
		api.Success(w, []directory.Employee{emp}, middleware.GetRequestID(r.Context()))
		return
	}

	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		h.fail(w, r, err, "employee_list_failed")
		return
	}
	if employees == nil {
		employees = []directory.Employee{}
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err, "employee_get_failed")
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload directory.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.FullName == "" || payload.Email == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "fullName and email are required", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Role == "" {
		payload.Role = "employee"
	}

	id, err := h.Store.CreateEmployee(r.Context(), payload)
	if err != nil {
		h.fail(w, r, err, "employee_create_failed")
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListGrades(w http.ResponseWriter, r *http.Request) {
	grades, err := h.Store.ListGrades(r.Context())
	if err != nil {
		h.fail(w, r, err, "grade_list_failed")
		return
	}
	if grades == nil {
		grades = []directory.Grade{}
	}
	api.Success(w, grades, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetGrade(w http.ResponseWriter, r *http.Request) {
	grade, err := h.Store.GetGrade(r.Context(), chi.URLParam(r, "gradeID"))
	if err != nil {
		h.fail(w, r, err, "grade_get_failed")
		return
	}
	api.Success(w, grade, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateGrade(w http.ResponseWriter, r *http.Request) {
	var payload directory.Grade
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "name is required", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.CreateGrade(r.Context(), payload.Name, payload.Description)
	if err != nil {
		h.fail(w, r, err, "grade_create_failed")
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, directory.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", err.Error(), requestID)
	case errors.Is(err, directory.ErrGradeNotFound):
		api.Fail(w, http.StatusNotFound, "grade_not_found", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, fallbackCode, "internal error", requestID)
	}
}
