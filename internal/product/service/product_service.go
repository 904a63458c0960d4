package service

import (
	"context"

	"salesdesk/internal/domain"
)

type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	ListInventory(ctx context.Context) ([]domain.Product, error)
	Insert(ctx context.Context, p domain.Product) (uint, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id uint) error
}

type ProductService struct {
	repo Repository
}

func NewService(repo Repository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *ProductService) Inventory(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListInventory(ctx)
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}

	p.ID = id
	return &p, nil
}

// Update saves the editable fields and returns the stored row, so the
// caller sees the ledger-owned stock rather than whatever it sent.
func (s *ProductService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, p.ID)
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
