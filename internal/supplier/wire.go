package supplier

import (
	"database/sql"

	"go.uber.org/zap"

	"salesdesk/internal/supplier/controller"
	"salesdesk/internal/supplier/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.Controller {
	return controller.NewController(repository.NewMySQLSupplierRepository(db), logger)
}
