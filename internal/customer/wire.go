package customer

import (
	"database/sql"

	"go.uber.org/zap"

	"salesdesk/internal/customer/controller"
	"salesdesk/internal/customer/repository"
	"salesdesk/internal/customer/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.Controller {
	repo := repository.NewMySQLCustomerRepository(db)
	return controller.NewController(service.NewService(repo), logger)
}
