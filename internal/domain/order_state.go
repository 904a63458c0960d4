package domain

// OrderState tracks how far an order-creation request got before it
// committed or aborted.
type OrderState string

const (
	OrderStateReceived        OrderState = "RECEIVED"
	OrderStateValidated       OrderState = "VALIDATED"
	OrderStateHeaderPersisted OrderState = "HEADER_PERSISTED"
	OrderStateItemsPersisted  OrderState = "ITEMS_PERSISTED"
	OrderStateLedgerApplied   OrderState = "LEDGER_APPLIED"
	OrderStateCommitted       OrderState = "COMMITTED"
	OrderStateAborted         OrderState = "ABORTED"
)
