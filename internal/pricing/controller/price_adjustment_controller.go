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

type Service interface {
	Adjust(ctx context.Context, adj domain.PriceAdjustment) (*domain.PriceAdjustment, error)
	List(ctx context.Context, productID *uint) ([]domain.PriceAdjustment, error)
}

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) Mount(r chi.Router) {
	r.Get("/price-adjustments", c.List)
	r.Post("/price-adjustments", c.Create)
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	var req dto.PriceAdjustmentRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}
	if err := commons.Validate(req); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	adj := domain.PriceAdjustment{
		ProductID: req.ProductID,
		NewPrice:  req.NewPrice,
		UserID:    req.UserID,
	}
	if req.Date != nil {
		adj.Date = *req.Date
	}

	result, err := c.service.Adjust(r.Context(), adj)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.NewPriceAdjustmentResponse(*result), logger)
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	productID, err := commons.QueryID(r, "productId")
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	adjustments, err := c.service.List(r.Context(), productID)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	resp := make([]dto.PriceAdjustmentResponse, len(adjustments))
	for i, a := range adjustments {
		resp[i] = dto.NewPriceAdjustmentResponse(a)
	}

	commons.WriteJSON(w, http.StatusOK, resp, logger)
}
