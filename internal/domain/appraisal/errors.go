package appraisal

import "fmt"

type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition appraisal from %s to %s", e.From, e.To)
}

// WeightageError reports a failed weightage check together with the computed
// total. Exact distinguishes the stage-advance rule (must equal the full
// total) from the attach rule (must not exceed it).
type WeightageError struct {
	Total int
	Exact bool
}

func (e *WeightageError) Error() string {
	if e.Exact {
		return fmt.Sprintf("linked goal weightage must total exactly %d, got %d", TotalWeightage, e.Total)
	}
	return fmt.Sprintf("linked goal weightage must not exceed %d, got %d", TotalWeightage, e.Total)
}

type StageViolationError struct {
	Status Status
	Group  FieldGroup
}

func (e *StageViolationError) Error() string {
	return fmt.Sprintf("%s fields are not writable while appraisal is in %s", e.Group, e.Status)
}
