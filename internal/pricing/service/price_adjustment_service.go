package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"salesdesk/internal/domain"
	"salesdesk/internal/infrastructure/tracing"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type ProductRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Product, error)
	UpdateSellingPrice(ctx context.Context, tx *sql.Tx, id uint, price decimal.Decimal) error
}

type Repository interface {
	Insert(ctx context.Context, tx *sql.Tx, a domain.PriceAdjustment) (uint, error)
	List(ctx context.Context, productID *uint) ([]domain.PriceAdjustment, error)
}

type PriceAdjustmentService struct {
	db          TransactionManager
	products    ProductRepository
	adjustments Repository
	logger      *zap.Logger
	txTimeout   time.Duration
	now         func() time.Time
}

func NewService(db TransactionManager, products ProductRepository, adjustments Repository, logger *zap.Logger, txTimeout time.Duration) *PriceAdjustmentService {
	return &PriceAdjustmentService{
		db:          db,
		products:    products,
		adjustments: adjustments,
		logger:      logger,
		txTimeout:   txTimeout,
		now:         time.Now,
	}
}

// Adjust records a selling price change and applies it to the product. The
// old price is the one held under the row lock, whatever the caller believed
// it to be. A zero Date means now.
func (s *PriceAdjustmentService) Adjust(ctx context.Context, adj domain.PriceAdjustment) (result *domain.PriceAdjustment, err error) {
	ctx, span := tracing.StartSpan(ctx, "PriceAdjustmentService.Adjust",
		trace.WithAttributes(attribute.Int64("product.id", int64(adj.ProductID))))
	defer func() { tracing.Finish(span, err) }()

	if adj.Date.IsZero() {
		adj.Date = s.now()
	}
	adj.Date = adj.Date.UTC()

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	product, err := s.products.FindByIDForUpdate(txCtx, tx, adj.ProductID)
	if err != nil {
		return nil, err
	}
	adj.OldPrice = product.SellingPrice

	id, err := s.adjustments.Insert(txCtx, tx, adj)
	if err != nil {
		return nil, err
	}
	adj.ID = id

	if err := s.products.UpdateSellingPrice(txCtx, tx, adj.ProductID, adj.NewPrice); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	s.logger.Info("selling price adjusted",
		zap.Uint("productId", adj.ProductID),
		zap.String("oldPrice", adj.OldPrice.StringFixed(domain.MoneyPlaces)),
		zap.String("newPrice", adj.NewPrice.StringFixed(domain.MoneyPlaces)),
		zap.Uint("userId", adj.UserID))

	return &adj, nil
}

func (s *PriceAdjustmentService) List(ctx context.Context, productID *uint) ([]domain.PriceAdjustment, error) {
	return s.adjustments.List(ctx, productID)
}
