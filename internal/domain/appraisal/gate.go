package appraisal

type FieldGroup string

const (
	FieldGroupSelfAssessment      FieldGroup = "self_assessment"
	FieldGroupAppraiserEvaluation FieldGroup = "appraiser_evaluation"
	FieldGroupReviewerEvaluation  FieldGroup = "reviewer_evaluation"
)

// Each evaluation field group is writable in exactly one stage.
var writableIn = map[FieldGroup]Status{
	FieldGroupSelfAssessment:      StatusSelfAssessment,
	FieldGroupAppraiserEvaluation: StatusAppraiserEvaluation,
	FieldGroupReviewerEvaluation:  StatusReviewerEvaluation,
}

// Authorize reports whether fields of the given group may be written while
// the appraisal is in status. It deliberately knows nothing about the actor;
// matching the caller against appraisee/appraiser/reviewer is the service's
// concern.
func Authorize(status Status, group FieldGroup) error {
	if writableIn[group] != status {
		return &StageViolationError{Status: status, Group: group}
	}
	return nil
}
