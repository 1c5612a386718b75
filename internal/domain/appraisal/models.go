package appraisal

import "time"

type Appraisal struct {
	ID                       int64           `json:"id"`
	AppraiseeID              int64           `json:"appraiseeId"`
	AppraiserID              int64           `json:"appraiserId"`
	ReviewerID               int64           `json:"reviewerId"`
	TypeID                   int64           `json:"typeId"`
	RangeID                  *int64          `json:"rangeId,omitempty"`
	StartDate                time.Time       `json:"startDate"`
	EndDate                  time.Time       `json:"endDate"`
	Status                   Status          `json:"status"`
	AppraiserOverallComments *string         `json:"appraiserOverallComments,omitempty"`
	AppraiserOverallRating   *int            `json:"appraiserOverallRating,omitempty"`
	ReviewerOverallComments  *string         `json:"reviewerOverallComments,omitempty"`
	ReviewerOverallRating    *int            `json:"reviewerOverallRating,omitempty"`
	CreatedAt                time.Time       `json:"createdAt"`
	UpdatedAt                time.Time       `json:"updatedAt"`
	Goals                    []AppraisalGoal `json:"goals"`
}

type Goal struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	PerformanceFactor string    `json:"performanceFactor"`
	Importance        string    `json:"importance"`
	Weightage         int       `json:"weightage"`
	CreatedAt         time.Time `json:"createdAt"`
}

// AppraisalGoal links one Goal to one Appraisal and carries the per-goal
// evaluation fields filled in during the assessment stages.
type AppraisalGoal struct {
	ID               int64   `json:"id"`
	AppraisalID      int64   `json:"appraisalId"`
	GoalID           int64   `json:"goalId"`
	Goal             Goal    `json:"goal"`
	SelfComment      *string `json:"selfComment,omitempty"`
	SelfRating       *int    `json:"selfRating,omitempty"`
	AppraiserComment *string `json:"appraiserComment,omitempty"`
	AppraiserRating  *int    `json:"appraiserRating,omitempty"`
}

type AppraisalType struct {
	ID     int64            `json:"id"`
	Name   string           `json:"name"`
	Ranges []AppraisalRange `json:"ranges,omitempty"`
}

type AppraisalRange struct {
	ID     int64  `json:"id"`
	TypeID int64  `json:"typeId"`
	Name   string `json:"name"`
}

// GoalEvaluation is one goal-keyed entry of a self-assessment or appraiser
// evaluation request.
type GoalEvaluation struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}
