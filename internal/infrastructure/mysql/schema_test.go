package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesTablesInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, tbl := range Tables {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + tbl.Name + " ").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_StopsOnFirstError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS product_categories ").
		WillReturnError(errors.New("access denied"))

	err = Migrate(context.Background(), db)
	assert.ErrorContains(t, err, "creating table product_categories")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTables_CategoriesBeforeProducts(t *testing.T) {
	position := map[string]int{}
	for i, tbl := range Tables {
		position[tbl.Name] = i
	}

	assert.Less(t, position["product_categories"], position["products"])
	assert.Contains(t, Tables[position["products"]].DDL, "REFERENCES product_categories(id)")
}
