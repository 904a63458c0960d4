package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"salesdesk/internal/commons"
	"salesdesk/internal/domain"
	"salesdesk/internal/dto"
)

type SalesOrderUseCase interface {
	CreateSalesOrder(ctx context.Context, order domain.SalesOrder, items []domain.SalesOrderItem) (*domain.SalesOrderWithItems, error)
	GetSalesOrder(ctx context.Context, id uint) (*domain.SalesOrderWithItems, error)
	ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error)
}

type SalesOrderController struct {
	useCase SalesOrderUseCase
	logger  *zap.Logger
}

func NewSalesOrderController(useCase SalesOrderUseCase, logger *zap.Logger) *SalesOrderController {
	return &SalesOrderController{
		useCase: useCase,
		logger:  logger,
	}
}

// Mount registers the sales order routes. There is no delete: a sale once
// booked against stock and a customer is not reversed here.
func (c *SalesOrderController) Mount(r chi.Router) {
	r.Route("/sales-orders", func(r chi.Router) {
		r.Get("/", c.List)
		r.Post("/", c.Create)
		r.Get("/{id}", c.Get)
	})
}

func (c *SalesOrderController) Create(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	var req dto.CreateSalesOrderRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}
	if err := commons.Validate(req); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	order, items := req.ToDomain()
	result, err := c.useCase.CreateSalesOrder(r.Context(), order, items)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.NewSalesOrderWithItemsResponse(*result), logger)
}

func (c *SalesOrderController) Get(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	result, err := c.useCase.GetSalesOrder(r.Context(), id)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewSalesOrderWithItemsResponse(*result), logger)
}

func (c *SalesOrderController) List(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	orders, err := c.useCase.ListSalesOrders(r.Context())
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	resp := make([]dto.SalesOrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = dto.NewSalesOrderResponse(o)
	}

	commons.WriteJSON(w, http.StatusOK, resp, logger)
}
