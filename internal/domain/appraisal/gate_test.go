package appraisal

import (
	"errors"
	"testing"
)

func TestAuthorizeMatrix(t *testing.T) {
	statuses := []Status{
		StatusDraft,
		StatusSubmitted,
		StatusSelfAssessment,
		StatusAppraiserEvaluation,
		StatusReviewerEvaluation,
		StatusComplete,
	}
	allowed := map[FieldGroup]Status{
		FieldGroupSelfAssessment:      StatusSelfAssessment,
		FieldGroupAppraiserEvaluation: StatusAppraiserEvaluation,
		FieldGroupReviewerEvaluation:  StatusReviewerEvaluation,
	}

	for group, allowedStatus := range allowed {
		for _, status := range statuses {
			err := Authorize(status, group)
			if status == allowedStatus {
				if err != nil {
					t.Fatalf("expected %s writable in %s, got %v", group, status, err)
				}
				continue
			}
			var violation *StageViolationError
			if !errors.As(err, &violation) {
				t.Fatalf("expected StageViolationError for %s in %s, got %v", group, status, err)
			}
			if violation.Status != status || violation.Group != group {
				t.Fatalf("expected violation to carry status %s and group %s, got %+v", status, group, violation)
			}
		}
	}
}
