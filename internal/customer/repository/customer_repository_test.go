package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	"salesdesk/internal/testutil"
)

func TestApplySale_AtomicIncrement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE customers SET debt = debt \+ \?, total_purchase = total_purchase \+ \? WHERE id = \?`).
		WithArgs("600", "1000", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewMySQLCustomerRepository(db)
	err = repo.ApplySale(context.Background(), tx, 5, decimal.NewFromInt(600), decimal.NewFromInt(1000))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySale_MissingCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE customers SET debt`).WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewMySQLCustomerRepository(db)
	err = repo.ApplySale(context.Background(), tx, 5, decimal.Zero, decimal.Zero)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestList_SearchesNameCodeAndPhone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "code", "name", "phone", "address", "email", "customer_type", "debt", "total_purchase", "notes"}).
		AddRow(1, "KH0001", "Lan", "0901", nil, "lan@example.com", "regular", "150.00", "900.00", nil)
	mock.ExpectQuery(`FROM customers WHERE \(name LIKE \? OR code LIKE \? OR phone LIKE \?\) ORDER BY id`).
		WithArgs("%090%", "%090%", "%090%").
		WillReturnRows(rows)

	repo := NewMySQLCustomerRepository(db)
	customers, err := repo.List(context.Background(), "090")

	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Lan", customers[0].Name)
	require.NotNil(t, customers[0].Email)
	assert.Equal(t, "lan@example.com", *customers[0].Email)
	assert.True(t, decimal.NewFromInt(150).Equal(customers[0].Debt))
}

func TestNewMySQLCustomerRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLCustomerRepository(db)

	assert.Equal(t, db, repo.db)
}

// Integration Tests

func TestCustomerRepository_UpdateKeepsLedger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCustomerRepository(db)
	id := testutil.SeedCustomer(t, db, "IT-KH1", "100.00", "500.00")

	err := repo.Update(context.Background(), domain.Customer{
		ID:           id,
		Code:         "IT-KH1",
		Name:         "Renamed",
		Phone:        "0911",
		CustomerType: domain.CustomerTypeRegular,
		Debt:         decimal.Zero,
	})
	require.NoError(t, err)

	debt, total := testutil.CustomerLedger(t, db, id)
	assert.True(t, decimal.NewFromInt(100).Equal(debt))
	assert.True(t, decimal.NewFromInt(500).Equal(total))
}
