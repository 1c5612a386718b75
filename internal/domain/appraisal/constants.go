package appraisal

const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

var Importances = []string{ImportanceHigh, ImportanceMedium, ImportanceLow}

func ValidImportance(value string) bool {
	for _, importance := range Importances {
		if value == importance {
			return true
		}
	}
	return false
}

const (
	RatingMin = 1
	RatingMax = 5
)

func ValidRating(rating int) bool {
	return rating >= RatingMin && rating <= RatingMax
}
