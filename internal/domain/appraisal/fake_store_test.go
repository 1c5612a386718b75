package appraisal

import (
	"context"
	"time"
)

// fakeStore is an in-memory StoreAPI used by the service tests. It mirrors
// the uniqueness rules the schema enforces (one appraisal per goal, one link
// per pair).
type fakeStore struct {
	nextID     int64
	appraisals map[int64]Appraisal
	goals      map[int64]Goal
	links      []*fakeLink
	employees  map[int64]bool
	types      map[int64]string
	ranges     map[int64]int64
}

type fakeLink struct {
	id               int64
	appraisalID      int64
	goalID           int64
	selfComment      *string
	selfRating       *int
	appraiserComment *string
	appraiserRating  *int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		appraisals: make(map[int64]Appraisal),
		goals:      make(map[int64]Goal),
		employees:  map[int64]bool{1: true, 2: true, 3: true},
		types:      map[int64]string{1: "annual"},
		ranges:     map[int64]int64{1: 1},
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) InTx(ctx context.Context, fn func(StoreAPI) error) error {
	return fn(f)
}

func (f *fakeStore) LockAppraisal(ctx context.Context, appraisalID int64) error {
	return nil
}

func (f *fakeStore) GetAppraisal(ctx context.Context, id int64) (Appraisal, error) {
	a, ok := f.appraisals[id]
	if !ok {
		return Appraisal{}, &NotFoundError{Resource: "appraisal", ID: id}
	}
	a.Goals = nil
	for _, link := range f.links {
		if link.appraisalID != id {
			continue
		}
		a.Goals = append(a.Goals, AppraisalGoal{
			ID:               link.id,
			AppraisalID:      link.appraisalID,
			GoalID:           link.goalID,
			Goal:             f.goals[link.goalID],
			SelfComment:      link.selfComment,
			SelfRating:       link.selfRating,
			AppraiserComment: link.appraiserComment,
			AppraiserRating:  link.appraiserRating,
		})
	}
	return a, nil
}

func (f *fakeStore) ListAppraisals(ctx context.Context) ([]Appraisal, error) {
	var out []Appraisal
	for id := range f.appraisals {
		a, err := f.GetAppraisal(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) CreateAppraisal(ctx context.Context, a Appraisal) (int64, error) {
	a.ID = f.id()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.appraisals[a.ID] = a
	return a.ID, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id int64, status Status) error {
	a := f.appraisals[id]
	a.Status = status
	f.appraisals[id] = a
	return nil
}

func (f *fakeStore) UpdateAppraiserOverall(ctx context.Context, id int64, comments string, rating int) error {
	a := f.appraisals[id]
	a.AppraiserOverallComments = &comments
	a.AppraiserOverallRating = &rating
	f.appraisals[id] = a
	return nil
}

func (f *fakeStore) UpdateReviewerOverall(ctx context.Context, id int64, comments string, rating int) error {
	a := f.appraisals[id]
	a.ReviewerOverallComments = &comments
	a.ReviewerOverallRating = &rating
	f.appraisals[id] = a
	return nil
}

func (f *fakeStore) DeleteAppraisal(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.appraisals[id]; !ok {
		return false, nil
	}
	delete(f.appraisals, id)
	kept := f.links[:0]
	for _, link := range f.links {
		if link.appraisalID != id {
			kept = append(kept, link)
		}
	}
	f.links = kept
	return true, nil
}

func (f *fakeStore) EmployeeActive(ctx context.Context, id int64) (bool, error) {
	return f.employees[id], nil
}

func (f *fakeStore) TypeExists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.types[id]
	return ok, nil
}

func (f *fakeStore) RangeBelongsToType(ctx context.Context, rangeID, typeID int64) (bool, error) {
	owner, ok := f.ranges[rangeID]
	return ok && owner == typeID, nil
}

func (f *fakeStore) ListTypes(ctx context.Context) ([]AppraisalType, error) {
	var out []AppraisalType
	for id, name := range f.types {
		t := AppraisalType{ID: id, Name: name}
		for rangeID, typeID := range f.ranges {
			if typeID == id {
				t.Ranges = append(t.Ranges, AppraisalRange{ID: rangeID, TypeID: typeID})
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) CreateType(ctx context.Context, name string) (int64, error) {
	id := f.id()
	f.types[id] = name
	return id, nil
}

func (f *fakeStore) CreateRange(ctx context.Context, typeID int64, name string) (int64, error) {
	id := f.id()
	f.ranges[id] = typeID
	return id, nil
}

func (f *fakeStore) GetGoal(ctx context.Context, id int64) (Goal, error) {
	g, ok := f.goals[id]
	if !ok {
		return Goal{}, &NotFoundError{Resource: "goal", ID: id}
	}
	return g, nil
}

func (f *fakeStore) CreateGoal(ctx context.Context, g Goal) (int64, error) {
	g.ID = f.id()
	g.CreatedAt = time.Now()
	f.goals[g.ID] = g
	return g.ID, nil
}

func (f *fakeStore) DeleteGoal(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.goals[id]; !ok {
		return false, nil
	}
	delete(f.goals, id)
	return true, nil
}

func (f *fakeStore) GoalLink(ctx context.Context, goalID int64) (int64, bool, error) {
	for _, link := range f.links {
		if link.goalID == goalID {
			return link.appraisalID, true, nil
		}
	}
	return 0, false, nil
}

func (f *fakeStore) LinkGoal(ctx context.Context, appraisalID, goalID int64) error {
	f.links = append(f.links, &fakeLink{id: f.id(), appraisalID: appraisalID, goalID: goalID})
	return nil
}

func (f *fakeStore) UnlinkGoal(ctx context.Context, appraisalID, goalID int64) (bool, error) {
	for i, link := range f.links {
		if link.appraisalID == appraisalID && link.goalID == goalID {
			f.links = append(f.links[:i], f.links[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) LinkedWeightages(ctx context.Context, appraisalID int64) ([]int, error) {
	var weightages []int
	for _, link := range f.links {
		if link.appraisalID == appraisalID {
			weightages = append(weightages, f.goals[link.goalID].Weightage)
		}
	}
	return weightages, nil
}

func (f *fakeStore) UpdateSelfAssessment(ctx context.Context, appraisalID, goalID int64, comment string, rating int) error {
	for _, link := range f.links {
		if link.appraisalID == appraisalID && link.goalID == goalID {
			link.selfComment = &comment
			link.selfRating = &rating
		}
	}
	return nil
}

func (f *fakeStore) UpdateAppraiserGoalEvaluation(ctx context.Context, appraisalID, goalID int64, comment string, rating int) error {
	for _, link := range f.links {
		if link.appraisalID == appraisalID && link.goalID == goalID {
			link.appraiserComment = &comment
			link.appraiserRating = &rating
		}
	}
	return nil
}
