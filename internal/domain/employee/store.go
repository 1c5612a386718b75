package employee

import (
	"context"

	"appraisal/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, email, manager_id, active, created_at
    FROM employees
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.ManagerID, &e.Active, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}

func (s *Store) Get(ctx context.Context, id int64) (Employee, error) {
	var e Employee
	if err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, email, manager_id, active, created_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.ManagerID, &e.Active, &e.CreatedAt); err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) Create(ctx context.Context, e Employee) (int64, error) {
	var id int64
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, manager_id, active)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, e.FirstName, e.LastName, e.Email, e.ManagerID, e.Active).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) ManagerOf(ctx context.Context, employeeID int64) (int64, error) {
	var managerID *int64
	if err := s.DB.QueryRow(ctx, "SELECT manager_id FROM employees WHERE id = $1", employeeID).Scan(&managerID); err != nil {
		return 0, err
	}
	if managerID == nil {
		return 0, nil
	}
	return *managerID, nil
}

func (s *Store) SetManager(ctx context.Context, employeeID int64, managerID *int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE employees SET manager_id = $1 WHERE id = $2", managerID, employeeID)
	return err
}
