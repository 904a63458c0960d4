package service

import (
	"context"

	"salesdesk/internal/domain"
)

type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.Customer, error)
	List(ctx context.Context, search string) ([]domain.Customer, error)
	Insert(ctx context.Context, c domain.Customer) (uint, error)
	Update(ctx context.Context, c domain.Customer) error
	Delete(ctx context.Context, id uint) error
}

type CustomerService struct {
	repo Repository
}

func NewService(repo Repository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, search string) ([]domain.Customer, error) {
	return s.repo.List(ctx, search)
}

func (s *CustomerService) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	id, err := s.repo.Insert(ctx, c)
	if err != nil {
		return nil, err
	}

	c.ID = id
	return &c, nil
}

// Update returns the stored customer. Balances in c are ignored.
func (s *CustomerService) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, c.ID)
}

func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
