package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"siigosync/internal/domain/invoice"
	"siigosync/internal/domain/product"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var productRowColumns = []string{"id", "code", "name", "price", "stock", "remote_id", "status", "created_at", "updated_at"}

func TestProductRepository_ListWithLimit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db, slog.Default())

	mock.ExpectQuery(`SELECT .+ FROM products ORDER BY id LIMIT \?`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(1, "A1", "Arepa", "2500.50", 3, "11", "publish", "2025-01-01T00:00:00Z", "2025-01-02T00:00:00Z"))

	products, err := repo.List(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("2500.5")))
	assert.Equal(t, 2025, products[0].UpdatedAt.Year())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListQueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db, slog.Default())

	mock.ExpectQuery(`SELECT .+ FROM products`).WillReturnError(errors.New("disk I/O error"))

	_, err := repo.List(context.Background(), 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list products")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_CorruptPrice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db, slog.Default())

	mock.ExpectQuery(`SELECT .+ FROM products WHERE code = \?`).
		WithArgs("A1").
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(1, "A1", "Arepa", "n/a", 3, "", "publish", "", ""))

	_, err := repo.GetByCode(context.Background(), "A1")

	assert.ErrorIs(t, err, product.ErrInvalidData)
}

func TestProductRepository_SaveError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db, slog.Default())

	mock.ExpectQuery(`INSERT INTO products`).WillReturnError(errors.New("database is locked"))

	err := repo.Save(context.Background(), &product.Product{Code: "A1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepository_Errors(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInvoiceRepository(db, slog.Default())

		mock.ExpectQuery(`SELECT invoice_id FROM order_invoices`).
			WithArgs("1001").
			WillReturnError(errors.New("disk I/O error"))

		_, err := repo.GetInvoiceID(context.Background(), "1001")

		require.Error(t, err)
		assert.NotErrorIs(t, err, invoice.ErrNotFound)
	})

	t.Run("save", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInvoiceRepository(db, slog.Default())

		mock.ExpectExec(`INSERT INTO order_invoices`).
			WithArgs("1001", "inv-1", sqlmock.AnyArg()).
			WillReturnError(errors.New("readonly database"))

		err := repo.SaveInvoiceID(context.Background(), "1001", "inv-1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "save invoice id")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
