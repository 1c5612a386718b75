package employeehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/employee"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleHR)).Put("/{employeeID}/manager", h.handleAssignManager)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employees, err := h.Service.List(r.Context())
	if err != nil {
		slog.Warn("employee list failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be an integer", reqID)
		return
	}

	emp, err := h.Service.Get(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		slog.Warn("employee get failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		ManagerID *int64 `json:"managerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "is required")
	v.Required("lastName", payload.LastName, "is required")
	v.Required("email", payload.Email, "is required")
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.Create(r.Context(), employee.Employee{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		ManagerID: payload.ManagerID,
		Active:    true,
	})
	if errors.Is(err, employee.ErrManagerCycle) {
		api.Fail(w, http.StatusBadRequest, "manager_cycle", "manager assignment would create a cycle", reqID)
		return
	}
	if err != nil {
		slog.Warn("employee create failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}

	emp, err := h.Service.Get(r.Context(), id)
	if err != nil {
		slog.Warn("employee reload failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to load created employee", reqID)
		return
	}
	api.Created(w, emp, reqID)
}

func (h *Handler) handleAssignManager(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be an integer", reqID)
		return
	}

	var payload struct {
		ManagerID *int64 `json:"managerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	err = h.Service.AssignManager(r.Context(), id, payload.ManagerID)
	if errors.Is(err, employee.ErrManagerCycle) {
		api.Fail(w, http.StatusBadRequest, "manager_cycle", "manager assignment would create a cycle", reqID)
		return
	}
	if err != nil {
		slog.Warn("manager assignment failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "manager_assign_failed", "failed to assign manager", reqID)
		return
	}
	api.Success(w, map[string]any{"employeeId": id, "managerId": payload.ManagerID}, reqID)
}
