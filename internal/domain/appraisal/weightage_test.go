package appraisal

import (
	"errors"
	"testing"
)

func TestCheckAttach(t *testing.T) {
	if err := CheckAttach([]int{40, 35}, 25); err != nil {
		t.Fatalf("unexpected error for exact fit: %v", err)
	}
	if err := CheckAttach(nil, 100); err != nil {
		t.Fatalf("unexpected error for single full goal: %v", err)
	}

	err := CheckAttach([]int{40}, 70)
	var weightage *WeightageError
	if !errors.As(err, &weightage) {
		t.Fatalf("expected WeightageError, got %v", err)
	}
	if weightage.Total != 110 {
		t.Fatalf("expected computed total 110, got %d", weightage.Total)
	}
	if weightage.Exact {
		t.Fatal("attach violation must not be the exact-coverage variant")
	}
}

func TestCheckSubmit(t *testing.T) {
	if err := CheckSubmit([]int{40, 35, 25}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name       string
		weightages []int
		total      int
	}{
		{"no goals", nil, 0},
		{"under", []int{40, 35}, 75},
		{"over", []int{60, 60}, 120},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckSubmit(tc.weightages)
			var weightage *WeightageError
			if !errors.As(err, &weightage) {
				t.Fatalf("expected WeightageError, got %v", err)
			}
			if weightage.Total != tc.total {
				t.Fatalf("expected total %d, got %d", tc.total, weightage.Total)
			}
			if !weightage.Exact {
				t.Fatal("submit violation must be the exact-coverage variant")
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	links := []AppraisalGoal{
		{GoalID: 1, Goal: Goal{ID: 1, Title: "Delivery", Weightage: 40}},
		{GoalID: 2, Goal: Goal{ID: 2, Title: "Quality", Weightage: 35}},
	}
	summary := Summarize(links)
	if summary.Total != 75 {
		t.Fatalf("expected total 75, got %d", summary.Total)
	}
	if summary.Remaining != 25 {
		t.Fatalf("expected remaining 25, got %d", summary.Remaining)
	}
	if len(summary.Goals) != 2 {
		t.Fatalf("expected 2 goal entries, got %d", len(summary.Goals))
	}
	if summary.Goals[0].GoalID != 1 || summary.Goals[0].Weightage != 40 {
		t.Fatalf("unexpected first entry: %+v", summary.Goals[0])
	}
}
