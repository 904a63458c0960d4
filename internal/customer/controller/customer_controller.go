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
	Get(ctx context.Context, id uint) (*domain.Customer, error)
	List(ctx context.Context, search string) ([]domain.Customer, error)
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) (*domain.Customer, error)
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
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", c.List)
		r.Post("/", c.Create)
		r.Get("/{id}", c.Get)
		r.Put("/{id}", c.Update)
		r.Delete("/{id}", c.Delete)
	})
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	customers, err := c.service.List(r.Context(), commons.SearchParam(r))
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	resp := make([]dto.CustomerResponse, len(customers))
	for i, cu := range customers {
		resp[i] = dto.NewCustomerResponse(cu)
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

	customer, err := c.service.Get(r.Context(), id)
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewCustomerResponse(*customer), logger)
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	var req dto.CustomerRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}
	if err := commons.Validate(req); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	customer, err := c.service.Create(r.Context(), req.ToDomain(0))
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.NewCustomerResponse(*customer), logger)
}

// Update edits contact details. Debt and total purchase in the body are
// ignored.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	id, err := commons.PathID(r, "id")
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	var req dto.CustomerRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}
	if err := commons.Validate(req); err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	customer, err := c.service.Update(r.Context(), req.ToDomain(id))
	if err != nil {
		commons.WriteError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewCustomerResponse(*customer), logger)
}

func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

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
