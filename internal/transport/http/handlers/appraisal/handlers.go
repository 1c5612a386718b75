package appraisalhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/audit"
	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/reports"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service *appraisal.Service
	Reports *reports.Service
	Audit   *audit.Service
}

func NewHandler(service *appraisal.Service, reportsSvc *reports.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Reports: reportsSvc, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/appraisals", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/", h.handleCreate)
		r.Get("/{appraisalID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleHR)).Delete("/{appraisalID}", h.handleDelete)
		r.Post("/{appraisalID}/goals", h.handleAddGoals)
		r.Delete("/{appraisalID}/goals/{goalID}", h.handleRemoveGoal)
		r.Get("/{appraisalID}/weightage", h.handleWeightage)
		r.Post("/{appraisalID}/status", h.handleChangeStatus)
		r.Post("/{appraisalID}/self-assessment", h.handleSelfAssessment)
		r.Post("/{appraisalID}/appraiser-evaluation", h.handleAppraiserEvaluation)
		r.Post("/{appraisalID}/reviewer-evaluation", h.handleReviewerEvaluation)
		r.Get("/{appraisalID}/report.pdf", h.handleReport)
	})

	r.Route("/goals", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/{goalID}", h.handleGetGoal)
		r.Post("/", h.handleCreateGoal)
		r.Delete("/{goalID}", h.handleDeleteGoal)
	})

	r.Route("/appraisal-types", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleListTypes)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/", h.handleCreateType)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/{typeID}/ranges", h.handleCreateRange)
	})
}

// writeDomainError translates the typed domain errors into HTTP responses.
func writeDomainError(w http.ResponseWriter, reqID string, err error) {
	var (
		notFound   *appraisal.NotFoundError
		conflict   *appraisal.ConflictError
		forbidden  *appraisal.ForbiddenError
		validation *appraisal.ValidationError
		transition *appraisal.InvalidTransitionError
		weightage  *appraisal.WeightageError
		stage      *appraisal.StageViolationError
	)
	switch {
	case errors.As(err, &notFound):
		api.Fail(w, http.StatusNotFound, "not_found", notFound.Error(), reqID)
	case errors.As(err, &conflict):
		api.Fail(w, http.StatusConflict, "conflict", conflict.Error(), reqID)
	case errors.As(err, &forbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", forbidden.Error(), reqID)
	case errors.As(err, &transition):
		api.FailWithDetails(w, http.StatusBadRequest, "invalid_transition", transition.Error(),
			map[string]any{"from": transition.From, "to": transition.To}, reqID)
	case errors.As(err, &weightage):
		api.FailWithDetails(w, http.StatusBadRequest, "weightage_invalid", weightage.Error(),
			map[string]any{"total": weightage.Total}, reqID)
	case errors.As(err, &stage):
		api.FailWithDetails(w, http.StatusBadRequest, "stage_violation", stage.Error(),
			map[string]any{"status": stage.Status, "fieldGroup": stage.Group}, reqID)
	case errors.As(err, &validation):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: validation.Field, Reason: validation.Reason}})
	default:
		slog.Warn("appraisal operation failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) actor(r *http.Request) appraisal.Actor {
	user, _ := middleware.GetUser(r.Context())
	return appraisal.Actor{EmployeeID: user.EmployeeID, Role: user.RoleName}
}

func (h *Handler) recordAudit(r *http.Request, action, entityType string, entityID int64, detail any) {
	if h.Audit == nil {
		return
	}
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, action, entityType, entityID, reqID, detail); err != nil {
		slog.Warn("audit record failed", "err", err, "action", action, "requestId", reqID)
	}
}

type goalEvaluationPayload struct {
	GoalID  int64  `json:"goalId"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

func toEntries(payload []goalEvaluationPayload) map[int64]appraisal.GoalEvaluation {
	entries := make(map[int64]appraisal.GoalEvaluation, len(payload))
	for _, p := range payload {
		entries[p.GoalID] = appraisal.GoalEvaluation{Comment: p.Comment, Rating: p.Rating}
	}
	return entries
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	appraisals, err := h.Service.List(r.Context())
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}
	api.Success(w, appraisals, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		AppraiseeID  int64   `json:"appraiseeId"`
		AppraiserID  int64   `json:"appraiserId"`
		ReviewerID   int64   `json:"reviewerId"`
		TypeID       int64   `json:"typeId"`
		RangeID      *int64  `json:"rangeId"`
		StartDate    string  `json:"startDate"`
		EndDate      string  `json:"endDate"`
		GoalIDs      []int64 `json:"goalIds"`
		TargetStatus string  `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Positive("appraiseeId", payload.AppraiseeID, "is required")
	v.Positive("appraiserId", payload.AppraiserID, "is required")
	v.Positive("reviewerId", payload.ReviewerID, "is required")
	v.Positive("typeId", payload.TypeID, "is required")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Service.Create(r.Context(), appraisal.CreateAppraisalRequest{
		AppraiseeID:  payload.AppraiseeID,
		AppraiserID:  payload.AppraiserID,
		ReviewerID:   payload.ReviewerID,
		TypeID:       payload.TypeID,
		RangeID:      payload.RangeID,
		StartDate:    start,
		EndDate:      end,
		GoalIDs:      payload.GoalIDs,
		TargetStatus: appraisal.Status(payload.TargetStatus),
	})
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}

	h.recordAudit(r, "appraisal.create", "appraisal", created.ID, map[string]any{"status": created.Status})
	api.Created(w, created, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "appraisalID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "appraisal id must be an integer", reqID)
		return
	}

	a, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}
	api.Success(w, a, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "appraisalID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "appraisal id must be an integer", reqID)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, reqID, err)
		return
	}

	h.recordAudit(r, "appraisal.delete", "appraisal", id, nil)
	api.Success(w, map[string]any{"deleted": true}, reqID)
}

func (h *Handler) handleAddGoals(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "appraisalID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "appraisal id must be an integer", reqID)
		return
	}

	var payload struct {
		GoalID  int64   `json:"goalId"`
		GoalIDs []int64 `json:"goalIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	goalIDs := payload.GoalIDs
	if payload.GoalID != 0 {
		goalIDs = append(goalIDs, payload.GoalID)
	}
	if len(goalIDs) == 0 {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "goalIds", Reason: "at least one goal id is required"}})
		return
	}

	a, linked, err := h.Service.AddGoals(r.Context(), id, goalIDs)
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}

	h.recordAudit(r, "appraisal.goals.attach", "appraisal", id, map[string]any{"goalIds": goalIDs, "linked": linked})
	api.Success(w, map[string]any{"appraisal": a, "linked": linked}, reqID)
}

func (h *Handler) handleRemoveGoal(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "appraisalID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "appraisal id must be an integer", reqID)
		return
	}
	goalID, ok := pathID(r, "goalID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "goal id must be an integer", reqID)
		return
	}

	deleteOrphan := r.URL.Query().Get("deleteGoal") == "true"
	a, err := h.Service.RemoveGoal(r.Context(), id, goalID, deleteOrphan)
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}

	h.recordAudit(r, "appraisal.goals.detach", "appraisal", id, map[string]any{"goalId": goalID, "deleteGoal": deleteOrphan})
	api.Success(w, a, reqID)
}

func (h *Handler) handleWeightage(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "appraisalID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "appraisal id must be an integer", reqID)
		return
	}

	summary, err := h.Service.WeightageSummary(r.Context(), id)
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "appraisalID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "appraisal id must be an integer", reqID)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	target, valid := appraisal.ParseStatus(payload.Status)
	if !valid {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "status", Reason: "is not a valid appraisal status"}})
		return
	}

	a, err := h.Service.ChangeStatus(r.Context(), h.actor(r), id, target)
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}

	h.recordAudit(r, "appraisal.status", "appraisal", id, map[string]any{"status": target})
	api.Success(w, a, reqID)
}

func (h *Handler) handleSelfAssessment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "appraisalID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "appraisal id must be an integer", reqID)
		return
	}

	var payload struct {
		Entries []goalEvaluationPayload `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if len(payload.Entries) == 0 {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "entries", Reason: "at least one entry is required"}})
		return
	}

	a, err := h.Service.RecordSelfAssessment(r.Context(), h.actor(r), id, toEntries(payload.Entries))
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}

	h.recordAudit(r, "appraisal.self_assessment", "appraisal", id, map[string]any{"goals": len(payload.Entries)})
	api.Success(w, a, reqID)
}

func (h *Handler) handleAppraiserEvaluation(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "appraisalID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "appraisal id must be an integer", reqID)
		return
	}

	var payload struct {
		Entries         []goalEvaluationPayload `json:"entries"`
		OverallComments string                  `json:"overallComments"`
		OverallRating   int                     `json:"overallRating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	a, err := h.Service.RecordAppraiserEvaluation(r.Context(), h.actor(r), id, toEntries(payload.Entries), payload.OverallComments, payload.OverallRating)
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}

	h.recordAudit(r, "appraisal.appraiser_evaluation", "appraisal", id, map[string]any{"goals": len(payload.Entries)})
	api.Success(w, a, reqID)
}

func (h *Handler) handleReviewerEvaluation(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "appraisalID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "appraisal id must be an integer", reqID)
		return
	}

	var payload struct {
		OverallComments string `json:"overallComments"`
		OverallRating   int    `json:"overallRating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	a, err := h.Service.RecordReviewerEvaluation(r.Context(), h.actor(r), id, payload.OverallComments, payload.OverallRating)
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}

	h.recordAudit(r, "appraisal.reviewer_evaluation", "appraisal", id, nil)
	api.Success(w, a, reqID)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "appraisalID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "appraisal id must be an integer", reqID)
		return
	}

	pdf, err := h.Reports.AppraisalPDF(r.Context(), id)
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=appraisal-"+strconv.FormatInt(id, 10)+".pdf")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.Warn("report write failed", "err", err, "requestId", reqID)
	}
}

func (h *Handler) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "goalID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "goal id must be an integer", reqID)
		return
	}

	g, err := h.Service.GetGoal(r.Context(), id)
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}
	api.Success(w, g, reqID)
}

func (h *Handler) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Title             string `json:"title"`
		Description       string `json:"description"`
		PerformanceFactor string `json:"performanceFactor"`
		Importance        string `json:"importance"`
		Weightage         int    `json:"weightage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	g, err := h.Service.CreateGoal(r.Context(), appraisal.Goal{
		Title:             payload.Title,
		Description:       payload.Description,
		PerformanceFactor: payload.PerformanceFactor,
		Importance:        payload.Importance,
		Weightage:         payload.Weightage,
	})
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}

	h.recordAudit(r, "goal.create", "goal", g.ID, nil)
	api.Created(w, g, reqID)
}

func (h *Handler) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "goalID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "goal id must be an integer", reqID)
		return
	}

	if err := h.Service.DeleteGoal(r.Context(), id); err != nil {
		writeDomainError(w, reqID, err)
		return
	}

	h.recordAudit(r, "goal.delete", "goal", id, nil)
	api.Success(w, map[string]any{"deleted": true}, reqID)
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	types, err := h.Service.ListTypes(r.Context())
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}
	api.Success(w, types, reqID)
}

func (h *Handler) handleCreateType(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	id, err := h.Service.CreateType(r.Context(), payload.Name)
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}
	api.Created(w, map[string]any{"id": id, "name": payload.Name}, reqID)
}

func (h *Handler) handleCreateRange(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	typeID, ok := pathID(r, "typeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "type id must be an integer", reqID)
		return
	}

	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	id, err := h.Service.CreateRange(r.Context(), typeID, payload.Name)
	if err != nil {
		writeDomainError(w, reqID, err)
		return
	}
	api.Created(w, map[string]any{"id": id, "typeId": typeID, "name": payload.Name}, reqID)
}
