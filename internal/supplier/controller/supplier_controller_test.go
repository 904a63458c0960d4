package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salesdesk/internal/domain"
	"salesdesk/internal/dto"
	"salesdesk/internal/errors"
)

type mockRepository struct {
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Supplier, error)
	ListFunc     func(ctx context.Context, search string) ([]domain.Supplier, error)
	InsertFunc   func(ctx context.Context, s domain.Supplier) (uint, error)
	UpdateFunc   func(ctx context.Context, s domain.Supplier) error
	DeleteFunc   func(ctx context.Context, id uint) error
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*domain.Supplier, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) List(ctx context.Context, search string) ([]domain.Supplier, error) {
	return m.ListFunc(ctx, search)
}

func (m *mockRepository) Insert(ctx context.Context, s domain.Supplier) (uint, error) {
	return m.InsertFunc(ctx, s)
}

func (m *mockRepository) Update(ctx context.Context, s domain.Supplier) error {
	return m.UpdateFunc(ctx, s)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) error {
	return m.DeleteFunc(ctx, id)
}

func serve(repo Repository, method, path, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Route("/api", NewController(repo, zap.NewNop()).Mount)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreate(t *testing.T) {
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, s domain.Supplier) (uint, error) {
			require.NotNil(t, s.ContactPerson)
			assert.Equal(t, "Hoa", *s.ContactPerson)
			return 6, nil
		},
	}

	w := serve(repo, http.MethodPost, "/api/suppliers", `{"code": "NCC1", "name": "Acme", "contactPerson": "Hoa"}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp dto.SupplierResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(6), resp.ID)
	assert.Nil(t, resp.Phone)
}

func TestCreate_MissingCode(t *testing.T) {
	w := serve(&mockRepository{}, http.MethodPost, "/api/suppliers", `{"name": "Acme"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"code"`)
}

func TestDelete_ReferencedIsConflict(t *testing.T) {
	repo := &mockRepository{
		DeleteFunc: func(ctx context.Context, id uint) error {
			return errors.NewConflictError("supplier with id 2 is referenced by purchase orders")
		},
	}

	w := serve(repo, http.MethodDelete, "/api/suppliers/2", "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdate_Missing(t *testing.T) {
	repo := &mockRepository{
		UpdateFunc: func(ctx context.Context, s domain.Supplier) error {
			assert.Equal(t, uint(8), s.ID)
			return errors.NewNotFoundError("supplier with id 8 not found")
		},
	}

	w := serve(repo, http.MethodPut, "/api/suppliers/8", `{"code": "NCC8", "name": "Gone"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestList(t *testing.T) {
	repo := &mockRepository{
		ListFunc: func(ctx context.Context, search string) ([]domain.Supplier, error) {
			assert.Empty(t, search)
			return []domain.Supplier{{ID: 1, Code: "NCC1", Name: "Acme"}}, nil
		},
	}

	w := serve(repo, http.MethodGet, "/api/suppliers", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NCC1"`)
}
