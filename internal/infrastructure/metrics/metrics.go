package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	KindPurchase = "purchase"
	KindSales    = "sales"
)

var (
	OrdersCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salesdesk_orders_created_total",
		Help: "Orders committed, by kind",
	}, []string{"kind"})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salesdesk_orders_failed_total",
		Help: "Order operations rolled back, by kind and error code",
	}, []string{"kind", "code"})

	PurchaseOrdersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salesdesk_purchase_orders_deleted_total",
		Help: "Purchase orders deleted with their stock reversed",
	})

	OrderTxDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "salesdesk_order_tx_duration_seconds",
		Help:    "Duration of order transactions, commit or rollback",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind", "operation"})

	TxRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salesdesk_tx_retries_total",
		Help: "Transactions retried after a deadlock or lock wait timeout",
	}, []string{"operation"})

	LedgerLinesSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salesdesk_ledger_lines_skipped_total",
		Help: "Ledger updates skipped because the referenced row was missing",
	}, []string{"entity"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "salesdesk_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func ObserveOrderTx(kind, operation string, start time.Time) {
	OrderTxDuration.WithLabelValues(kind, operation).Observe(time.Since(start).Seconds())
}
