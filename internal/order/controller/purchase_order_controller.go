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

type PurchaseOrderUseCase interface {
	CreatePurchaseOrder(ctx context.Context, order domain.PurchaseOrder, items []domain.PurchaseOrderItem) (*domain.PurchaseOrderWithItems, error)
	DeletePurchaseOrder(ctx context.Context, id uint) error
	GetPurchaseOrder(ctx context.Context, id uint) (*domain.PurchaseOrderWithItems, error)
	ListPurchaseOrders(ctx context.Context) ([]domain.PurchaseOrder, error)
}

type PurchaseOrderController struct {
	useCase PurchaseOrderUseCase
	logger  *zap.Logger
}

func NewPurchaseOrderController(useCase PurchaseOrderUseCase, logger *zap.Logger) *PurchaseOrderController {
	return &PurchaseOrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *PurchaseOrderController) Mount(r chi.Router) {
	r.Route("/purchase-orders", func(r chi.Router) {
		r.Get("/", c.List)
		r.Post("/", c.Create)
		r.Get("/{id}", c.Get)
		r.Delete("/{id}", c.Delete)
	})
}

func (c *PurchaseOrderController) Create(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	var req dto.CreatePurchaseOrderRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}
	if err := commons.Validate(req); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	order, items := req.ToDomain()
	result, err := c.useCase.CreatePurchaseOrder(r.Context(), order, items)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.NewPurchaseOrderWithItemsResponse(*result), logger)
}

func (c *PurchaseOrderController) Get(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	result, err := c.useCase.GetPurchaseOrder(r.Context(), id)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewPurchaseOrderWithItemsResponse(*result), logger)
}

func (c *PurchaseOrderController) List(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	orders, err := c.useCase.ListPurchaseOrders(r.Context())
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	resp := make([]dto.PurchaseOrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = dto.NewPurchaseOrderResponse(o)
	}

	commons.WriteJSON(w, http.StatusOK, resp, logger)
}

// Delete reverses the order's stock and removes it.
func (c *PurchaseOrderController) Delete(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	if err := c.useCase.DeletePurchaseOrder(r.Context(), id); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
