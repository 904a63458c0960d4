package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salesdesk/internal/domain"
	"salesdesk/internal/dto"
	"salesdesk/internal/errors"
)

type mockService struct {
	AdjustFunc func(ctx context.Context, adj domain.PriceAdjustment) (*domain.PriceAdjustment, error)
	ListFunc   func(ctx context.Context, productID *uint) ([]domain.PriceAdjustment, error)
}

func (m *mockService) Adjust(ctx context.Context, adj domain.PriceAdjustment) (*domain.PriceAdjustment, error) {
	return m.AdjustFunc(ctx, adj)
}

func (m *mockService) List(ctx context.Context, productID *uint) ([]domain.PriceAdjustment, error) {
	return m.ListFunc(ctx, productID)
}

func serve(svc Service, method, path, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Route("/api", NewController(svc, zap.NewNop()).Mount)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreate_IgnoresClientOldPrice(t *testing.T) {
	svc := &mockService{
		AdjustFunc: func(ctx context.Context, adj domain.PriceAdjustment) (*domain.PriceAdjustment, error) {
			assert.True(t, adj.OldPrice.IsZero())
			assert.True(t, adj.Date.IsZero())
			adj.ID = 1
			adj.OldPrice = decimal.NewFromInt(18)
			adj.Date = time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
			return &adj, nil
		},
	}

	body := `{"productId": 3, "oldPrice": 999, "newPrice": 20, "userId": 1}`
	w := serve(svc, http.MethodPost, "/api/price-adjustments", body)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp dto.PriceAdjustmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, decimal.NewFromInt(18).Equal(resp.OldPrice))
}

func TestCreate_NegativePrice(t *testing.T) {
	w := serve(&mockService{}, http.MethodPost, "/api/price-adjustments", `{"productId": 3, "newPrice": -1, "userId": 1}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "newPrice")
}

func TestCreate_UnknownProduct(t *testing.T) {
	svc := &mockService{
		AdjustFunc: func(ctx context.Context, adj domain.PriceAdjustment) (*domain.PriceAdjustment, error) {
			return nil, errors.NewNotFoundError("product with id 3 not found")
		},
	}

	w := serve(svc, http.MethodPost, "/api/price-adjustments", `{"productId": 3, "newPrice": 5, "userId": 1}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestList_ProductFilter(t *testing.T) {
	svc := &mockService{
		ListFunc: func(ctx context.Context, productID *uint) ([]domain.PriceAdjustment, error) {
			require.NotNil(t, productID)
			assert.Equal(t, uint(3), *productID)
			return []domain.PriceAdjustment{}, nil
		},
	}

	w := serve(svc, http.MethodGet, "/api/price-adjustments?productId=3", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
