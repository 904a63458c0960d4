package product

import (
	"database/sql"

	"go.uber.org/zap"

	"salesdesk/internal/product/controller"
	"salesdesk/internal/product/repository"
	"salesdesk/internal/product/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.Controller {
	repo := repository.NewMySQLRepository(db)
	svc := service.NewService(repo)
	return controller.NewController(svc, logger)
}
