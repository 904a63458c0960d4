package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
)

type mockRepository struct {
	FindByIDFunc      func(ctx context.Context, id uint) (*domain.Product, error)
	ListFunc          func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	ListInventoryFunc func(ctx context.Context) ([]domain.Product, error)
	InsertFunc        func(ctx context.Context, p domain.Product) (uint, error)
	UpdateFunc        func(ctx context.Context, p domain.Product) error
	DeleteFunc        func(ctx context.Context, id uint) error
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockRepository) ListInventory(ctx context.Context) ([]domain.Product, error) {
	return m.ListInventoryFunc(ctx)
}

func (m *mockRepository) Insert(ctx context.Context, p domain.Product) (uint, error) {
	return m.InsertFunc(ctx, p)
}

func (m *mockRepository) Update(ctx context.Context, p domain.Product) error {
	return m.UpdateFunc(ctx, p)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) error {
	return m.DeleteFunc(ctx, id)
}

func TestCreate_SetsGeneratedID(t *testing.T) {
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, p domain.Product) (uint, error) {
			assert.Equal(t, 4, p.Stock)
			return 12, nil
		},
	}

	p, err := NewService(repo).Create(context.Background(), domain.Product{Code: "SP1", Stock: 4})

	require.NoError(t, err)
	assert.Equal(t, uint(12), p.ID)
	assert.Equal(t, "SP1", p.Code)
}

func TestUpdate_ReturnsStoredStock(t *testing.T) {
	repo := &mockRepository{
		UpdateFunc: func(ctx context.Context, p domain.Product) error {
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Product, error) {
			return &domain.Product{ID: id, Code: "SP1", Stock: -3}, nil
		},
	}

	p, err := NewService(repo).Update(context.Background(), domain.Product{ID: 5, Code: "SP1", Stock: 100})

	require.NoError(t, err)
	assert.Equal(t, -3, p.Stock)
}

func TestUpdate_MissingSkipsReload(t *testing.T) {
	repo := &mockRepository{
		UpdateFunc: func(ctx context.Context, p domain.Product) error {
			return errors.NewNotFoundError("product with id 5 not found")
		},
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Product, error) {
			t.Fatal("reload after failed update")
			return nil, nil
		},
	}

	p, err := NewService(repo).Update(context.Background(), domain.Product{ID: 5})

	assert.Nil(t, p)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
