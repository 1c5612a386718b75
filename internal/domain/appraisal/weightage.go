package appraisal

// TotalWeightage is the percentage the linked goals of an appraisal must sum
// to before it can leave draft.
const TotalWeightage = 100

func SumWeightages(weightages []int) int {
	total := 0
	for _, w := range weightages {
		total += w
	}
	return total
}

// CheckAttach validates that attaching goals with the given additional
// weightages keeps the running total within TotalWeightage.
func CheckAttach(existing []int, adding ...int) error {
	total := SumWeightages(existing) + SumWeightages(adding)
	if total > TotalWeightage {
		return &WeightageError{Total: total}
	}
	return nil
}

// CheckSubmit validates the full-coverage rule for leaving draft: at least
// one linked goal and a total of exactly TotalWeightage.
func CheckSubmit(weightages []int) error {
	total := SumWeightages(weightages)
	if len(weightages) == 0 || total != TotalWeightage {
		return &WeightageError{Total: total, Exact: true}
	}
	return nil
}

type GoalWeight struct {
	GoalID    int64  `json:"goalId"`
	Title     string `json:"title"`
	Weightage int    `json:"weightage"`
}

type WeightageSummary struct {
	Total     int          `json:"total"`
	Remaining int          `json:"remaining"`
	Goals     []GoalWeight `json:"goals"`
}

func Summarize(links []AppraisalGoal) WeightageSummary {
	summary := WeightageSummary{Goals: make([]GoalWeight, 0, len(links))}
	for _, link := range links {
		summary.Total += link.Goal.Weightage
		summary.Goals = append(summary.Goals, GoalWeight{
			GoalID:    link.GoalID,
			Title:     link.Goal.Title,
			Weightage: link.Goal.Weightage,
		})
	}
	summary.Remaining = TotalWeightage - summary.Total
	return summary
}
