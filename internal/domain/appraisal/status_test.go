package appraisal

import (
	"errors"
	"testing"
)

func TestSuccessorChain(t *testing.T) {
	order := []Status{
		StatusDraft,
		StatusSubmitted,
		StatusSelfAssessment,
		StatusAppraiserEvaluation,
		StatusReviewerEvaluation,
		StatusComplete,
	}
	for i := 0; i < len(order)-1; i++ {
		next, ok := order[i].Successor()
		if !ok {
			t.Fatalf("expected successor for %s", order[i])
		}
		if next != order[i+1] {
			t.Fatalf("expected successor of %s to be %s, got %s", order[i], order[i+1], next)
		}
	}
	if _, ok := StatusComplete.Successor(); ok {
		t.Fatal("complete must be terminal")
	}
}

func TestParseStatus(t *testing.T) {
	if status, ok := ParseStatus("appraiser_evaluation"); !ok || status != StatusAppraiserEvaluation {
		t.Fatalf("expected appraiser_evaluation, got %q ok=%v", status, ok)
	}
	if _, ok := ParseStatus("rejected"); ok {
		t.Fatal("expected unknown status to be rejected")
	}
}

func TestAdvanceRejectsNonSuccessor(t *testing.T) {
	a := Appraisal{Status: StatusSubmitted}
	targets := []Status{StatusDraft, StatusSubmitted, StatusAppraiserEvaluation, StatusComplete}
	for _, target := range targets {
		err := Advance(&a, target)
		var invalid *InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidTransitionError for %s, got %v", target, err)
		}
		if invalid.From != StatusSubmitted || invalid.To != target {
			t.Fatalf("expected error to carry %s -> %s, got %s -> %s", StatusSubmitted, target, invalid.From, invalid.To)
		}
		if a.Status != StatusSubmitted {
			t.Fatalf("status must be unchanged after rejection, got %s", a.Status)
		}
	}
}

func TestAdvanceFromDraftRequiresFullCoverage(t *testing.T) {
	a := Appraisal{Status: StatusDraft}

	err := Advance(&a, StatusSubmitted)
	var weightage *WeightageError
	if !errors.As(err, &weightage) {
		t.Fatalf("expected WeightageError for empty goal set, got %v", err)
	}
	if weightage.Total != 0 {
		t.Fatalf("expected computed total 0, got %d", weightage.Total)
	}
	if a.Status != StatusDraft {
		t.Fatalf("status must remain draft, got %s", a.Status)
	}

	a.Goals = []AppraisalGoal{
		{Goal: Goal{Weightage: 40}},
		{Goal: Goal{Weightage: 35}},
		{Goal: Goal{Weightage: 25}},
	}
	if err := Advance(&a, StatusSubmitted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusSubmitted {
		t.Fatalf("expected submitted, got %s", a.Status)
	}
}

func TestAdvanceFromCompleteFails(t *testing.T) {
	a := Appraisal{Status: StatusComplete}
	for _, target := range []Status{StatusDraft, StatusSubmitted, StatusComplete} {
		if err := Advance(&a, target); err == nil {
			t.Fatalf("expected terminal status to reject transition to %s", target)
		}
	}
}
