package employee

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.Store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, e Employee) (int64, error) {
	if e.ManagerID != nil {
		if err := CheckManagerChain(0, *e.ManagerID, func(id int64) (int64, error) {
			return s.Store.ManagerOf(ctx, id)
		}); err != nil {
			return 0, err
		}
	}
	return s.Store.Create(ctx, e)
}

func (s *Service) AssignManager(ctx context.Context, employeeID int64, managerID *int64) error {
	if managerID != nil {
		if err := CheckManagerChain(employeeID, *managerID, func(id int64) (int64, error) {
			return s.Store.ManagerOf(ctx, id)
		}); err != nil {
			return err
		}
	}
	return s.Store.SetManager(ctx, employeeID, managerID)
}
