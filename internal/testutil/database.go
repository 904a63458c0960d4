package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	mysqlinfra "salesdesk/internal/infrastructure/mysql"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/salesdesk_test?parseTime=true&clientFoundRows=true&loc=UTC"

// SetupTestDB opens the integration database named by SALESDESK_TEST_DSN and
// skips the test when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("SALESDESK_TEST_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables creates the schema if it is missing.
func SetupTestTables(t *testing.T, db *sql.DB) {
	t.Helper()

	if err := mysqlinfra.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}
}

// CleanupTestDB empties every table and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	for i := len(mysqlinfra.Tables) - 1; i >= 0; i-- {
		name := mysqlinfra.Tables[i].Name
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", name)); err != nil {
			t.Logf("failed to clean table %s: %v", name, err)
		}
	}

	db.Close()
}

func SeedProduct(t *testing.T, db *sql.DB, code string, stock int, purchasePrice, sellingPrice string) uint {
	t.Helper()

	result, err := db.Exec(`
		INSERT INTO products (code, name, unit, purchase_price, selling_price, stock)
		VALUES (?, ?, 'pcs', ?, ?, ?)`,
		code, "Product "+code, purchasePrice, sellingPrice, stock,
	)
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	id, _ := result.LastInsertId()
	return uint(id)
}

func SeedCustomer(t *testing.T, db *sql.DB, code string, debt, totalPurchase string) uint {
	t.Helper()

	result, err := db.Exec(`
		INSERT INTO customers (code, name, phone, customer_type, debt, total_purchase)
		VALUES (?, ?, '0900000000', 'regular', ?, ?)`,
		code, "Customer "+code, debt, totalPurchase,
	)
	if err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}

	id, _ := result.LastInsertId()
	return uint(id)
}

func SeedSupplier(t *testing.T, db *sql.DB, code string) uint {
	t.Helper()

	result, err := db.Exec(`INSERT INTO suppliers (code, name) VALUES (?, ?)`, code, "Supplier "+code)
	if err != nil {
		t.Fatalf("failed to seed supplier: %v", err)
	}

	id, _ := result.LastInsertId()
	return uint(id)
}

func ProductStock(t *testing.T, db *sql.DB, id uint) int {
	t.Helper()

	var stock int
	if err := db.QueryRow(`SELECT stock FROM products WHERE id = ?`, id).Scan(&stock); err != nil {
		t.Fatalf("failed to read stock: %v", err)
	}
	return stock
}

func CustomerLedger(t *testing.T, db *sql.DB, id uint) (debt, totalPurchase decimal.Decimal) {
	t.Helper()

	if err := db.QueryRow(`SELECT debt, total_purchase FROM customers WHERE id = ?`, id).Scan(&debt, &totalPurchase); err != nil {
		t.Fatalf("failed to read customer ledger: %v", err)
	}
	return debt, totalPurchase
}

func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
