package appraisal

import "context"

// LinkManager enforces the uniqueness and weightage rules around attaching
// and detaching goals. It assumes the appraisal itself has already been
// loaded by the caller.
type LinkManager struct {
	Store StoreAPI
}

func NewLinkManager(store StoreAPI) *LinkManager {
	return &LinkManager{Store: store}
}

// Attach links goalID to appraisalID. Re-attaching the same pair is a no-op;
// a goal linked to a different appraisal is a conflict. Returns whether a new
// link was created.
func (m *LinkManager) Attach(ctx context.Context, appraisalID, goalID int64) (bool, error) {
	goal, err := m.Store.GetGoal(ctx, goalID)
	if err != nil {
		return false, err
	}

	linkedTo, linked, err := m.Store.GoalLink(ctx, goalID)
	if err != nil {
		return false, err
	}
	if linked {
		if linkedTo == appraisalID {
			return false, nil
		}
		return false, &ConflictError{Reason: "goal is already linked to another appraisal"}
	}

	existing, err := m.Store.LinkedWeightages(ctx, appraisalID)
	if err != nil {
		return false, err
	}
	if err := CheckAttach(existing, goal.Weightage); err != nil {
		return false, err
	}

	if err := m.Store.LinkGoal(ctx, appraisalID, goalID); err != nil {
		return false, err
	}
	return true, nil
}

// AttachMany applies Attach per goal id and returns the number of goals
// newly linked. Pairs that already exist are skipped silently.
func (m *LinkManager) AttachMany(ctx context.Context, appraisalID int64, goalIDs []int64) (int, error) {
	linked := 0
	for _, goalID := range goalIDs {
		created, err := m.Attach(ctx, appraisalID, goalID)
		if err != nil {
			return linked, err
		}
		if created {
			linked++
		}
	}
	return linked, nil
}

// Detach removes the link. Removing a goal can only lower the total, so no
// weightage check applies. Goals orphaned by a detach are left in place;
// deleting them is the caller's decision.
func (m *LinkManager) Detach(ctx context.Context, appraisalID, goalID int64) error {
	found, err := m.Store.UnlinkGoal(ctx, appraisalID, goalID)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Resource: "appraisal goal link", ID: goalID}
	}
	return nil
}
