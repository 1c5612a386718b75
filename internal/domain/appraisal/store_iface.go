package appraisal

import "context"

// StoreAPI is the persistence port for the appraisal aggregate. Lookup
// methods return *NotFoundError when the target row is absent; GetAppraisal
// returns the fully materialized aggregate (links plus referenced goal data)
// so the engine never fetches mid-computation.
type StoreAPI interface {
	// InTx runs fn against a transaction-scoped store. Mutating use cases
	// wrap their load-validate-mutate sequence in one transaction.
	InTx(ctx context.Context, fn func(StoreAPI) error) error
	// LockAppraisal serializes concurrent writers against one aggregate for
	// the remainder of the transaction.
	LockAppraisal(ctx context.Context, appraisalID int64) error

	GetAppraisal(ctx context.Context, id int64) (Appraisal, error)
	ListAppraisals(ctx context.Context) ([]Appraisal, error)
	CreateAppraisal(ctx context.Context, a Appraisal) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	UpdateAppraiserOverall(ctx context.Context, id int64, comments string, rating int) error
	UpdateReviewerOverall(ctx context.Context, id int64, comments string, rating int) error
	DeleteAppraisal(ctx context.Context, id int64) (bool, error)

	EmployeeActive(ctx context.Context, id int64) (bool, error)
	TypeExists(ctx context.Context, id int64) (bool, error)
	RangeBelongsToType(ctx context.Context, rangeID, typeID int64) (bool, error)
	ListTypes(ctx context.Context) ([]AppraisalType, error)
	CreateType(ctx context.Context, name string) (int64, error)
	CreateRange(ctx context.Context, typeID int64, name string) (int64, error)

	GetGoal(ctx context.Context, id int64) (Goal, error)
	CreateGoal(ctx context.Context, g Goal) (int64, error)
	DeleteGoal(ctx context.Context, id int64) (bool, error)

	// GoalLink reports the appraisal a goal is currently linked to, if any.
	GoalLink(ctx context.Context, goalID int64) (int64, bool, error)
	LinkGoal(ctx context.Context, appraisalID, goalID int64) error
	UnlinkGoal(ctx context.Context, appraisalID, goalID int64) (bool, error)
	LinkedWeightages(ctx context.Context, appraisalID int64) ([]int, error)
	UpdateSelfAssessment(ctx context.Context, appraisalID, goalID int64, comment string, rating int) error
	UpdateAppraiserGoalEvaluation(ctx context.Context, appraisalID, goalID int64, comment string, rating int) error
}
