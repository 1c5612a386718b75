package appraisal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"appraisal/internal/domain/auth"
)

// Actor is the authenticated employee on whose behalf a use case runs.
type Actor struct {
	EmployeeID int64
	Role       string
}

func (a Actor) isHR() bool {
	return a.Role == auth.RoleHR
}

func (a Actor) participantOf(ap Appraisal) bool {
	return a.EmployeeID == ap.AppraiseeID || a.EmployeeID == ap.AppraiserID || a.EmployeeID == ap.ReviewerID
}

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

type CreateAppraisalRequest struct {
	AppraiseeID  int64
	AppraiserID  int64
	ReviewerID   int64
	TypeID       int64
	RangeID      *int64
	StartDate    time.Time
	EndDate      time.Time
	GoalIDs      []int64
	TargetStatus Status
}

func (s *Service) Create(ctx context.Context, req CreateAppraisalRequest) (Appraisal, error) {
	target := req.TargetStatus
	if target == "" {
		target = StatusDraft
	}
	if !target.Valid() {
		return Appraisal{}, &ValidationError{Field: "status", Reason: "is not a valid appraisal status"}
	}
	if req.EndDate.Before(req.StartDate) {
		return Appraisal{}, &ValidationError{Field: "endDate", Reason: "must be on or after startDate"}
	}

	var out Appraisal
	err := s.Store.InTx(ctx, func(store StoreAPI) error {
		participants := []struct {
			field string
			id    int64
		}{
			{"appraiseeId", req.AppraiseeID},
			{"appraiserId", req.AppraiserID},
			{"reviewerId", req.ReviewerID},
		}
		for _, p := range participants {
			active, err := store.EmployeeActive(ctx, p.id)
			if err != nil {
				return err
			}
			if !active {
				return &ValidationError{Field: p.field, Reason: "must reference an active employee"}
			}
		}

		exists, err := store.TypeExists(ctx, req.TypeID)
		if err != nil {
			return err
		}
		if !exists {
			return &ValidationError{Field: "typeId", Reason: "must reference an existing appraisal type"}
		}
		if req.RangeID != nil {
			belongs, err := store.RangeBelongsToType(ctx, *req.RangeID, req.TypeID)
			if err != nil {
				return err
			}
			if !belongs {
				return &ValidationError{Field: "rangeId", Reason: "must belong to the chosen appraisal type"}
			}
		}

		// Attach links each pair at most once, so duplicate ids must not
		// inflate the coverage total either.
		seen := make(map[int64]struct{}, len(req.GoalIDs))
		weightages := make([]int, 0, len(req.GoalIDs))
		for _, goalID := range req.GoalIDs {
			if _, ok := seen[goalID]; ok {
				continue
			}
			seen[goalID] = struct{}{}
			goal, err := store.GetGoal(ctx, goalID)
			var notFound *NotFoundError
			if errors.As(err, &notFound) {
				return &ValidationError{Field: "goalIds", Reason: fmt.Sprintf("goal %d does not exist", goalID)}
			}
			if err != nil {
				return err
			}
			weightages = append(weightages, goal.Weightage)
		}
		if target != StatusDraft {
			if err := CheckSubmit(weightages); err != nil {
				return err
			}
		}

		id, err := store.CreateAppraisal(ctx, Appraisal{
			AppraiseeID: req.AppraiseeID,
			AppraiserID: req.AppraiserID,
			ReviewerID:  req.ReviewerID,
			TypeID:      req.TypeID,
			RangeID:     req.RangeID,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Status:      target,
		})
		if err != nil {
			return err
		}

		if _, err := NewLinkManager(store).AttachMany(ctx, id, req.GoalIDs); err != nil {
			return err
		}

		out, err = store.GetAppraisal(ctx, id)
		return err
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, id int64) (Appraisal, error) {
	return s.Store.GetAppraisal(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Appraisal, error) {
	return s.Store.ListAppraisals(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.InTx(ctx, func(store StoreAPI) error {
		found, err := store.DeleteAppraisal(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Resource: "appraisal", ID: id}
		}
		return nil
	})
}

// AddGoal links one goal and returns the reloaded aggregate.
func (s *Service) AddGoal(ctx context.Context, appraisalID, goalID int64) (Appraisal, error) {
	appraisals, _, err := s.addGoals(ctx, appraisalID, []int64{goalID})
	return appraisals, err
}

// AddGoals links a batch and additionally reports how many goals were newly
// linked; already-linked pairs are skipped, not failed.
func (s *Service) AddGoals(ctx context.Context, appraisalID int64, goalIDs []int64) (Appraisal, int, error) {
	return s.addGoals(ctx, appraisalID, goalIDs)
}

func (s *Service) addGoals(ctx context.Context, appraisalID int64, goalIDs []int64) (Appraisal, int, error) {
	var out Appraisal
	linked := 0
	err := s.Store.InTx(ctx, func(store StoreAPI) error {
		if err := store.LockAppraisal(ctx, appraisalID); err != nil {
			return err
		}
		if _, err := store.GetAppraisal(ctx, appraisalID); err != nil {
			return err
		}
		count, err := NewLinkManager(store).AttachMany(ctx, appraisalID, goalIDs)
		if err != nil {
			return err
		}
		linked = count
		out, err = store.GetAppraisal(ctx, appraisalID)
		return err
	})
	return out, linked, err
}

// RemoveGoal detaches the goal. A detached goal has no remaining link (a goal
// links to at most one appraisal), so deleteOrphan lets the caller drop the
// goal record in the same transaction.
func (s *Service) RemoveGoal(ctx context.Context, appraisalID, goalID int64, deleteOrphan bool) (Appraisal, error) {
	var out Appraisal
	err := s.Store.InTx(ctx, func(store StoreAPI) error {
		if err := store.LockAppraisal(ctx, appraisalID); err != nil {
			return err
		}
		if _, err := store.GetAppraisal(ctx, appraisalID); err != nil {
			return err
		}
		if err := NewLinkManager(store).Detach(ctx, appraisalID, goalID); err != nil {
			return err
		}
		if deleteOrphan {
			if _, err := store.DeleteGoal(ctx, goalID); err != nil {
				return err
			}
		}
		var err error
		out, err = store.GetAppraisal(ctx, appraisalID)
		return err
	})
	return out, err
}

func (s *Service) ChangeStatus(ctx context.Context, actor Actor, appraisalID int64, target Status) (Appraisal, error) {
	var out Appraisal
	err := s.Store.InTx(ctx, func(store StoreAPI) error {
		if err := store.LockAppraisal(ctx, appraisalID); err != nil {
			return err
		}
		a, err := store.GetAppraisal(ctx, appraisalID)
		if err != nil {
			return err
		}
		if !actor.isHR() && !actor.participantOf(a) {
			return &ForbiddenError{Reason: "only appraisal participants may change its status"}
		}
		if err := Advance(&a, target); err != nil {
			return err
		}
		if err := store.UpdateStatus(ctx, appraisalID, a.Status); err != nil {
			return err
		}
		out, err = store.GetAppraisal(ctx, appraisalID)
		return err
	})
	return out, err
}

func (s *Service) RecordSelfAssessment(ctx context.Context, actor Actor, appraisalID int64, entries map[int64]GoalEvaluation) (Appraisal, error) {
	var out Appraisal
	err := s.Store.InTx(ctx, func(store StoreAPI) error {
		if err := store.LockAppraisal(ctx, appraisalID); err != nil {
			return err
		}
		a, err := store.GetAppraisal(ctx, appraisalID)
		if err != nil {
			return err
		}
		if actor.EmployeeID != a.AppraiseeID {
			return &ForbiddenError{Reason: "only the appraisee may record the self-assessment"}
		}
		if err := Authorize(a.Status, FieldGroupSelfAssessment); err != nil {
			return err
		}
		if err := checkEntries(a, entries); err != nil {
			return err
		}
		for goalID, entry := range entries {
			if err := store.UpdateSelfAssessment(ctx, appraisalID, goalID, entry.Comment, entry.Rating); err != nil {
				return err
			}
		}
		out, err = store.GetAppraisal(ctx, appraisalID)
		return err
	})
	return out, err
}

func (s *Service) RecordAppraiserEvaluation(ctx context.Context, actor Actor, appraisalID int64, entries map[int64]GoalEvaluation, overallComments string, overallRating int) (Appraisal, error) {
	var out Appraisal
	err := s.Store.InTx(ctx, func(store StoreAPI) error {
		if err := store.LockAppraisal(ctx, appraisalID); err != nil {
			return err
		}
		a, err := store.GetAppraisal(ctx, appraisalID)
		if err != nil {
			return err
		}
		if actor.EmployeeID != a.AppraiserID {
			return &ForbiddenError{Reason: "only the appraiser may record the appraiser evaluation"}
		}
		if err := Authorize(a.Status, FieldGroupAppraiserEvaluation); err != nil {
			return err
		}
		if !ValidRating(overallRating) {
			return &ValidationError{Field: "overallRating", Reason: "must be between 1 and 5"}
		}
		if err := checkEntries(a, entries); err != nil {
			return err
		}
		for goalID, entry := range entries {
			if err := store.UpdateAppraiserGoalEvaluation(ctx, appraisalID, goalID, entry.Comment, entry.Rating); err != nil {
				return err
			}
		}
		if err := store.UpdateAppraiserOverall(ctx, appraisalID, overallComments, overallRating); err != nil {
			return err
		}
		out, err = store.GetAppraisal(ctx, appraisalID)
		return err
	})
	return out, err
}

func (s *Service) RecordReviewerEvaluation(ctx context.Context, actor Actor, appraisalID int64, overallComments string, overallRating int) (Appraisal, error) {
	var out Appraisal
	err := s.Store.InTx(ctx, func(store StoreAPI) error {
		if err := store.LockAppraisal(ctx, appraisalID); err != nil {
			return err
		}
		a, err := store.GetAppraisal(ctx, appraisalID)
		if err != nil {
			return err
		}
		if actor.EmployeeID != a.ReviewerID {
			return &ForbiddenError{Reason: "only the reviewer may record the reviewer evaluation"}
		}
		if err := Authorize(a.Status, FieldGroupReviewerEvaluation); err != nil {
			return err
		}
		if !ValidRating(overallRating) {
			return &ValidationError{Field: "overallRating", Reason: "must be between 1 and 5"}
		}
		if err := store.UpdateReviewerOverall(ctx, appraisalID, overallComments, overallRating); err != nil {
			return err
		}
		out, err = store.GetAppraisal(ctx, appraisalID)
		return err
	})
	return out, err
}

func (s *Service) WeightageSummary(ctx context.Context, appraisalID int64) (WeightageSummary, error) {
	a, err := s.Store.GetAppraisal(ctx, appraisalID)
	if err != nil {
		return WeightageSummary{}, err
	}
	return Summarize(a.Goals), nil
}

func (s *Service) CreateGoal(ctx context.Context, g Goal) (Goal, error) {
	if g.Title == "" {
		return Goal{}, &ValidationError{Field: "title", Reason: "is required"}
	}
	if g.Weightage < 0 || g.Weightage > TotalWeightage {
		return Goal{}, &ValidationError{Field: "weightage", Reason: "must be between 0 and 100"}
	}
	if !ValidImportance(g.Importance) {
		return Goal{}, &ValidationError{Field: "importance", Reason: "must be one of high, medium, low"}
	}
	id, err := s.Store.CreateGoal(ctx, g)
	if err != nil {
		return Goal{}, err
	}
	return s.Store.GetGoal(ctx, id)
}

func (s *Service) GetGoal(ctx context.Context, id int64) (Goal, error) {
	return s.Store.GetGoal(ctx, id)
}

// DeleteGoal removes an unlinked goal. Goals still linked to an appraisal
// must be detached first.
func (s *Service) DeleteGoal(ctx context.Context, id int64) error {
	return s.Store.InTx(ctx, func(store StoreAPI) error {
		_, linked, err := store.GoalLink(ctx, id)
		if err != nil {
			return err
		}
		if linked {
			return &ConflictError{Reason: "goal is linked to an appraisal and cannot be deleted"}
		}
		found, err := store.DeleteGoal(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Resource: "goal", ID: id}
		}
		return nil
	})
}

func (s *Service) ListTypes(ctx context.Context) ([]AppraisalType, error) {
	return s.Store.ListTypes(ctx)
}

func (s *Service) CreateType(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, &ValidationError{Field: "name", Reason: "is required"}
	}
	return s.Store.CreateType(ctx, name)
}

func (s *Service) CreateRange(ctx context.Context, typeID int64, name string) (int64, error) {
	if name == "" {
		return 0, &ValidationError{Field: "name", Reason: "is required"}
	}
	exists, err := s.Store.TypeExists(ctx, typeID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, &NotFoundError{Resource: "appraisal type", ID: typeID}
	}
	return s.Store.CreateRange(ctx, typeID, name)
}

// checkEntries validates every goal-keyed entry before any write happens.
func checkEntries(a Appraisal, entries map[int64]GoalEvaluation) error {
	linked := make(map[int64]struct{}, len(a.Goals))
	for _, link := range a.Goals {
		linked[link.GoalID] = struct{}{}
	}
	for goalID, entry := range entries {
		if !ValidRating(entry.Rating) {
			return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
		}
		if _, ok := linked[goalID]; !ok {
			return &NotFoundError{Resource: "appraisal goal link", ID: goalID}
		}
	}
	return nil
}
