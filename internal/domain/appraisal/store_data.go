package appraisal

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetAppraisal(ctx context.Context, id int64) (Appraisal, error) {
	var a Appraisal
	var status string
	if err := s.DB.QueryRow(ctx, `
    SELECT id, appraisee_id, appraiser_id, reviewer_id, type_id, range_id,
           start_date, end_date, status,
           appraiser_overall_comments, appraiser_overall_rating,
           reviewer_overall_comments, reviewer_overall_rating,
           created_at, updated_at
    FROM appraisals
    WHERE id = $1
  `, id).Scan(
		&a.ID, &a.AppraiseeID, &a.AppraiserID, &a.ReviewerID, &a.TypeID, &a.RangeID,
		&a.StartDate, &a.EndDate, &status,
		&a.AppraiserOverallComments, &a.AppraiserOverallRating,
		&a.ReviewerOverallComments, &a.ReviewerOverallRating,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Appraisal{}, &NotFoundError{Resource: "appraisal", ID: id}
		}
		return Appraisal{}, err
	}
	a.Status = Status(status)

	goals, err := s.appraisalGoals(ctx, id)
	if err != nil {
		return Appraisal{}, err
	}
	a.Goals = goals
	return a, nil
}

func (s *Store) appraisalGoals(ctx context.Context, appraisalID int64) ([]AppraisalGoal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ag.id, ag.appraisal_id, ag.goal_id,
           ag.self_comment, ag.self_rating, ag.appraiser_comment, ag.appraiser_rating,
           g.id, g.title, g.description, g.performance_factor, g.importance, g.weightage, g.created_at
    FROM appraisal_goals ag
    JOIN goals g ON ag.goal_id = g.id
    WHERE ag.appraisal_id = $1
    ORDER BY ag.id
  `, appraisalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]AppraisalGoal, 0, 4)
	for rows.Next() {
		var link AppraisalGoal
		if err := rows.Scan(
			&link.ID, &link.AppraisalID, &link.GoalID,
			&link.SelfComment, &link.SelfRating, &link.AppraiserComment, &link.AppraiserRating,
			&link.Goal.ID, &link.Goal.Title, &link.Goal.Description, &link.Goal.PerformanceFactor,
			&link.Goal.Importance, &link.Goal.Weightage, &link.Goal.CreatedAt,
		); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (s *Store) ListAppraisals(ctx context.Context) ([]Appraisal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, appraisee_id, appraiser_id, reviewer_id, type_id, range_id,
           start_date, end_date, status,
           appraiser_overall_comments, appraiser_overall_rating,
           reviewer_overall_comments, reviewer_overall_rating,
           created_at, updated_at
    FROM appraisals
    ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appraisals []Appraisal
	for rows.Next() {
		var a Appraisal
		var status string
		if err := rows.Scan(
			&a.ID, &a.AppraiseeID, &a.AppraiserID, &a.ReviewerID, &a.TypeID, &a.RangeID,
			&a.StartDate, &a.EndDate, &status,
			&a.AppraiserOverallComments, &a.AppraiserOverallRating,
			&a.ReviewerOverallComments, &a.ReviewerOverallRating,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		a.Status = Status(status)
		appraisals = append(appraisals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range appraisals {
		goals, err := s.appraisalGoals(ctx, appraisals[i].ID)
		if err != nil {
			return nil, err
		}
		appraisals[i].Goals = goals
	}
	return appraisals, nil
}

func (s *Store) CreateAppraisal(ctx context.Context, a Appraisal) (int64, error) {
	var id int64
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO appraisals (appraisee_id, appraiser_id, reviewer_id, type_id, range_id, start_date, end_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, a.AppraiseeID, a.AppraiserID, a.ReviewerID, a.TypeID, a.RangeID, a.StartDate, a.EndDate, string(a.Status)).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id int64, status Status) error {
	_, err := s.DB.Exec(ctx, "UPDATE appraisals SET status = $1, updated_at = now() WHERE id = $2", string(status), id)
	return err
}

func (s *Store) UpdateAppraiserOverall(ctx context.Context, id int64, comments string, rating int) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE appraisals
    SET appraiser_overall_comments = $1, appraiser_overall_rating = $2, updated_at = now()
    WHERE id = $3
  `, comments, rating, id)
	return err
}

func (s *Store) UpdateReviewerOverall(ctx context.Context, id int64, comments string, rating int) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE appraisals
    SET reviewer_overall_comments = $1, reviewer_overall_rating = $2, updated_at = now()
    WHERE id = $3
  `, comments, rating, id)
	return err
}

func (s *Store) DeleteAppraisal(ctx context.Context, id int64) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM appraisals WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) EmployeeActive(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = $1 AND active", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) TypeExists(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM appraisal_types WHERE id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) RangeBelongsToType(ctx context.Context, rangeID, typeID int64) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM appraisal_ranges WHERE id = $1 AND type_id = $2", rangeID, typeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListTypes(ctx context.Context) ([]AppraisalType, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name FROM appraisal_types ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []AppraisalType
	for rows.Next() {
		var t AppraisalType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rangeRows, err := s.DB.Query(ctx, "SELECT id, type_id, name FROM appraisal_ranges ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rangeRows.Close()

	byType := make(map[int64][]AppraisalRange)
	for rangeRows.Next() {
		var r AppraisalRange
		if err := rangeRows.Scan(&r.ID, &r.TypeID, &r.Name); err != nil {
			return nil, err
		}
		byType[r.TypeID] = append(byType[r.TypeID], r)
	}
	if err := rangeRows.Err(); err != nil {
		return nil, err
	}
	for i := range types {
		types[i].Ranges = byType[types[i].ID]
	}
	return types, nil
}

func (s *Store) CreateType(ctx context.Context, name string) (int64, error) {
	var id int64
	if err := s.DB.QueryRow(ctx, "INSERT INTO appraisal_types (name) VALUES ($1) RETURNING id", name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) CreateRange(ctx context.Context, typeID int64, name string) (int64, error) {
	var id int64
	if err := s.DB.QueryRow(ctx, "INSERT INTO appraisal_ranges (type_id, name) VALUES ($1,$2) RETURNING id", typeID, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) GetGoal(ctx context.Context, id int64) (Goal, error) {
	var g Goal
	if err := s.DB.QueryRow(ctx, `
    SELECT id, title, description, performance_factor, importance, weightage, created_at
    FROM goals
    WHERE id = $1
  `, id).Scan(&g.ID, &g.Title, &g.Description, &g.PerformanceFactor, &g.Importance, &g.Weightage, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Goal{}, &NotFoundError{Resource: "goal", ID: id}
		}
		return Goal{}, err
	}
	return g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g Goal) (int64, error) {
	var id int64
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO goals (title, description, performance_factor, importance, weightage)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, g.Title, g.Description, g.PerformanceFactor, g.Importance, g.Weightage).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id int64) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM goals WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) GoalLink(ctx context.Context, goalID int64) (int64, bool, error) {
	var appraisalID int64
	err := s.DB.QueryRow(ctx, "SELECT appraisal_id FROM appraisal_goals WHERE goal_id = $1", goalID).Scan(&appraisalID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return appraisalID, true, nil
}

func (s *Store) LinkGoal(ctx context.Context, appraisalID, goalID int64) error {
	_, err := s.DB.Exec(ctx, "INSERT INTO appraisal_goals (appraisal_id, goal_id) VALUES ($1,$2)", appraisalID, goalID)
	return err
}

func (s *Store) UnlinkGoal(ctx context.Context, appraisalID, goalID int64) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM appraisal_goals WHERE appraisal_id = $1 AND goal_id = $2", appraisalID, goalID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) LinkedWeightages(ctx context.Context, appraisalID int64) ([]int, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT g.weightage
    FROM appraisal_goals ag
    JOIN goals g ON ag.goal_id = g.id
    WHERE ag.appraisal_id = $1
  `, appraisalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weightages []int
	for rows.Next() {
		var w int
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		weightages = append(weightages, w)
	}
	return weightages, rows.Err()
}

func (s *Store) UpdateSelfAssessment(ctx context.Context, appraisalID, goalID int64, comment string, rating int) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE appraisal_goals
    SET self_comment = $1, self_rating = $2
    WHERE appraisal_id = $3 AND goal_id = $4
  `, comment, rating, appraisalID, goalID)
	return err
}

func (s *Store) UpdateAppraiserGoalEvaluation(ctx context.Context, appraisalID, goalID int64, comment string, rating int) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE appraisal_goals
    SET appraiser_comment = $1, appraiser_rating = $2
    WHERE appraisal_id = $3 AND goal_id = $4
  `, comment, rating, appraisalID, goalID)
	return err
}
