package appraisal

type Status string

const (
	StatusDraft               Status = "draft"
	StatusSubmitted           Status = "submitted"
	StatusSelfAssessment      Status = "self_assessment"
	StatusAppraiserEvaluation Status = "appraiser_evaluation"
	StatusReviewerEvaluation  Status = "reviewer_evaluation"
	StatusComplete            Status = "complete"
)

// successors is the fixed forward-only stage order. Complete has no entry and
// is therefore terminal.
var successors = map[Status]Status{
	StatusDraft:               StatusSubmitted,
	StatusSubmitted:           StatusSelfAssessment,
	StatusSelfAssessment:      StatusAppraiserEvaluation,
	StatusAppraiserEvaluation: StatusReviewerEvaluation,
	StatusReviewerEvaluation:  StatusComplete,
}

func ParseStatus(raw string) (Status, bool) {
	status := Status(raw)
	if status.Valid() {
		return status, true
	}
	return "", false
}

func (s Status) Valid() bool {
	if s == StatusComplete {
		return true
	}
	_, ok := successors[s]
	return ok
}

func (s Status) Terminal() bool {
	return s == StatusComplete
}

func (s Status) Successor() (Status, bool) {
	next, ok := successors[s]
	return next, ok
}

// Advance moves the appraisal to target if target is the unique successor of
// the current status, enforcing full weightage coverage on the edge out of
// draft. On failure the appraisal is left untouched.
func Advance(a *Appraisal, target Status) error {
	next, ok := a.Status.Successor()
	if !ok || next != target {
		return &InvalidTransitionError{From: a.Status, To: target}
	}
	if a.Status == StatusDraft {
		if err := CheckSubmit(linkedWeightages(a.Goals)); err != nil {
			return err
		}
	}
	a.Status = target
	return nil
}

func linkedWeightages(links []AppraisalGoal) []int {
	weightages := make([]int, 0, len(links))
	for _, link := range links {
		weightages = append(weightages, link.Goal.Weightage)
	}
	return weightages
}
