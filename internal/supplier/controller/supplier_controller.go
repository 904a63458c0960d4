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

// Repository is used directly: suppliers carry no server-owned fields.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.Supplier, error)
	List(ctx context.Context, search string) ([]domain.Supplier, error)
	Insert(ctx context.Context, s domain.Supplier) (uint, error)
	Update(ctx context.Context, s domain.Supplier) error
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
	r.Route("/suppliers", func(r chi.Router) {
		r.Get("/", c.List)
		r.Post("/", c.Create)
		r.Get("/{id}", c.Get)
		r.Put("/{id}", c.Update)
		r.Delete("/{id}", c.Delete)
	})
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	suppliers, err := c.repo.List(r.Context(), commons.SearchParam(r))
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	resp := make([]dto.SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		resp[i] = dto.NewSupplierResponse(s)
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

	s, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewSupplierResponse(*s), logger)
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	req, err := decodeSupplier(r)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	s := req.ToDomain(0)
	if s.ID, err = c.repo.Insert(r.Context(), s); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.NewSupplierResponse(s), logger)
}

func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	req, err := decodeSupplier(r)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	s := req.ToDomain(id)
	if err := c.repo.Update(r.Context(), s); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewSupplierResponse(s), logger)
}

// Delete fails with a conflict while purchase orders still name the supplier.
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

func decodeSupplier(r *http.Request) (dto.SupplierRequest, error) {
	var req dto.SupplierRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		return req, err
	}
	return req, commons.Validate(req)
}
