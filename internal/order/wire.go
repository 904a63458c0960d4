package order

import (
	"database/sql"

	"go.uber.org/zap"

	"salesdesk/internal/config"
	customerrepo "salesdesk/internal/customer/repository"
	"salesdesk/internal/order/controller"
	"salesdesk/internal/order/ledger"
	orderrepo "salesdesk/internal/order/repository"
	"salesdesk/internal/order/service"
	"salesdesk/internal/order/usecase"
	productrepo "salesdesk/internal/product/repository"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) (*controller.PurchaseOrderController, *controller.SalesOrderController) {
	purchaseOrderRepo := orderrepo.NewMySQLPurchaseOrderRepository(db)
	purchaseOrderItemRepo := orderrepo.NewMySQLPurchaseOrderItemRepository(db)
	salesOrderRepo := orderrepo.NewMySQLSalesOrderRepository(db)
	salesOrderItemRepo := orderrepo.NewMySQLSalesOrderItemRepository(db)

	strict := cfg.Order.StrictReferences
	stockLedger := ledger.NewStockLedger(productrepo.NewMySQLRepository(db), strict, logger)
	customerLedger := ledger.NewCustomerLedger(customerrepo.NewMySQLCustomerRepository(db), strict, logger)

	coordinator := service.NewOrderCoordinator(
		db,
		service.Repositories{
			PurchaseOrders:     purchaseOrderRepo,
			PurchaseOrderItems: purchaseOrderItemRepo,
			SalesOrders:        salesOrderRepo,
			SalesOrderItems:    salesOrderItemRepo,
		},
		stockLedger,
		customerLedger,
		logger,
		cfg.Order.TxTimeout,
		cfg.Order.AmountTolerance,
	)

	uc := usecase.NewOrderUseCase(
		coordinator,
		purchaseOrderRepo,
		purchaseOrderItemRepo,
		salesOrderRepo,
		salesOrderItemRepo,
		logger,
		cfg.Order.MaxRetryAttempts,
	)

	return controller.NewPurchaseOrderController(uc, logger), controller.NewSalesOrderController(uc, logger)
}
