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
	Get(ctx context.Context, id uint) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Inventory(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id uint) error
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
	r.Get("/inventory", c.Inventory)
	r.Route("/products", func(r chi.Router) {
		r.Get("/", c.List)
		r.Post("/", c.Create)
		r.Get("/{id}", c.Get)
		r.Put("/{id}", c.Update)
		r.Delete("/{id}", c.Delete)
	})
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	categoryID, err := commons.QueryID(r, "categoryId")
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	products, err := c.service.List(r.Context(), domain.ProductFilter{
		CategoryID: categoryID,
		Search:     commons.SearchParam(r),
	})
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toResponses(products), logger)
}

func (c *Controller) Inventory(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	products, err := c.service.Inventory(r.Context())
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toResponses(products), logger)
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	p, err := c.service.Get(r.Context(), id)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewProductResponse(*p), logger)
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	req, err := decodeProduct(r)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	p, err := c.service.Create(r.Context(), req.ToDomain(0))
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	logger.Info("product created", zap.Uint("productId", p.ID), zap.String("code", p.Code))
	commons.WriteJSON(w, http.StatusCreated, dto.NewProductResponse(*p), logger)
}

func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	req, err := decodeProduct(r)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	p, err := c.service.Update(r.Context(), req.ToDomain(id))
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewProductResponse(*p), logger)
}

func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) requestLogger(r *http.Request) *zap.Logger {
	return c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))
}

func decodeProduct(r *http.Request) (dto.ProductRequest, error) {
	var req dto.ProductRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		return req, err
	}
	return req, commons.Validate(req)
}

func toResponses(products []domain.Product) []dto.ProductResponse {
	resp := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		resp[i] = dto.NewProductResponse(p)
	}
	return resp
}
