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

type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.ProductCategory, error)
	List(ctx context.Context, search string) ([]domain.ProductCategory, error)
	Insert(ctx context.Context, c domain.ProductCategory) (uint, error)
	Update(ctx context.Context, c domain.ProductCategory) error
	Delete(ctx context.Context, id uint) error
}

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{
		repo:   repo,
		logger: logger,
	}
}

func (c *Controller) Mount(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", c.List)
		r.Post("/", c.Create)
		r.Get("/{id}", c.Get)
		r.Put("/{id}", c.Update)
		r.Delete("/{id}", c.Delete)
	})
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	categories, err := c.repo.List(r.Context(), commons.SearchParam(r))
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	resp := make([]dto.CategoryResponse, len(categories))
	for i, cat := range categories {
		resp[i] = dto.NewCategoryResponse(cat)
	}

	commons.WriteJSON(w, http.StatusOK, resp, logger)
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	cat, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewCategoryResponse(*cat), logger)
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	req, err := decodeCategory(r)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	cat := req.ToDomain(0)
	if cat.ID, err = c.repo.Insert(r.Context(), cat); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	logger.Info("category created", zap.Uint("categoryId", cat.ID))
	commons.WriteJSON(w, http.StatusCreated, dto.NewCategoryResponse(cat), logger)
}

func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	req, err := decodeCategory(r)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	cat := req.ToDomain(id)
	if err := c.repo.Update(r.Context(), cat); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewCategoryResponse(cat), logger)
}

// Delete answers 409 while products still belong to the category.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	if err := c.repo.Delete(r.Context(), id); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeCategory(r *http.Request) (dto.CategoryRequest, error) {
	var req dto.CategoryRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		return req, err
	}
	return req, commons.Validate(req)
}
