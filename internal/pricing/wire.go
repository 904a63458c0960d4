package pricing

import (
	"database/sql"

	"go.uber.org/zap"

	"salesdesk/internal/config"
	"salesdesk/internal/pricing/controller"
	"salesdesk/internal/pricing/repository"
	"salesdesk/internal/pricing/service"
	productrepo "salesdesk/internal/product/repository"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.Controller {
	svc := service.NewService(
		db,
		productrepo.NewMySQLRepository(db),
		repository.NewMySQLPriceAdjustmentRepository(db),
		logger,
		cfg.Order.TxTimeout,
	)
	return controller.NewController(svc, logger)
}
