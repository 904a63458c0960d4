package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"salesdesk/internal/commons"
	"salesdesk/internal/category"
	"salesdesk/internal/customer"
	"salesdesk/internal/infrastructure/logger"
	"salesdesk/internal/infrastructure/mysql"
	"salesdesk/internal/order"
	"salesdesk/internal/pricing"
	"salesdesk/internal/product"
	"salesdesk/internal/server"
	"salesdesk/internal/supplier"
)

func main() {
	cfg, err := commons.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	// Money goes out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	if cfg.Database.AutoMigrate {
		if err := mysql.Migrate(context.Background(), db); err != nil {
			zapLogger.Fatal("migrating schema", zap.Error(err))
		}
		zapLogger.Info("schema migrated")
	}

	purchaseOrderCtrl, salesOrderCtrl := order.NewModule(db, cfg, zapLogger)
	modules := []server.Module{
		category.NewModule(db, zapLogger),
		product.NewModule(db, zapLogger),
		supplier.NewModule(db, zapLogger),
		customer.NewModule(db, zapLogger),
		pricing.NewModule(db, cfg, zapLogger),
		purchaseOrderCtrl,
		salesOrderCtrl,
	}

	router := server.NewRouter(modules, cfg.Metrics.Enabled, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
