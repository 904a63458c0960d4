package category

import (
	"database/sql"

	"go.uber.org/zap"

	"salesdesk/internal/category/controller"
	"salesdesk/internal/category/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.Controller {
	return controller.NewController(repository.NewMySQLCategoryRepository(db), logger)
}
