package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmart/internal/domain"
	"campusmart/internal/testutil"
)

var findQuery = `(?s)` + regexp.QuoteMeta("FROM Product p") + ".*" + regexp.QuoteMeta("WHERE p.id IN (?, ?)")

// Unit Tests

func TestNewMySQLRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestFindByIDs_EmptyList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	products, err := NewMySQLRepository(db).FindByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDs_ScansRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(findQuery).
		WithArgs("5", "8").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "store", "currency"}).
			AddRow("5", "Desk Lamp", "Hall 3 Supplies", "GHS").
			AddRow("8", "Calculus Tutoring", "", ""))

	products, err := NewMySQLRepository(db).FindByIDs(context.Background(), []domain.ID{"5", "8"})

	require.NoError(t, err)
	assert.Equal(t, []domain.CatalogProduct{
		{ID: "5", Name: "Desk Lamp", StoreName: "Hall 3 Supplies", Currency: "GHS"},
		{ID: "8", Name: "Calculus Tutoring"},
	}, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDs_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(findQuery).WillReturnError(errors.New("replica down"))

	_, err = NewMySQLRepository(db).FindByIDs(context.Background(), []domain.ID{"1", "2"})

	assert.ErrorContains(t, err, "querying catalog products")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDs_RowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(findQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "store", "currency"}).
			AddRow("1", "A", "S", "GHS").
			RowError(0, errors.New("connection reset")))

	_, err = NewMySQLRepository(db).FindByIDs(context.Background(), []domain.ID{"1", "2"})

	assert.ErrorContains(t, err, "iterating catalog product rows")
}

// Integration Tests

func TestRepository_FindByIDs_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	_, err := db.Exec(`INSERT INTO Store (id, name) VALUES (1, 'Hall 3 Supplies')`)
	require.NoError(t, err)
	_, err = db.Exec(`
		INSERT INTO Product (id, name, storeId, currency, isDeleted)
		VALUES (1, 'Desk Lamp', 1, 'GHS', 0),
		       (2, 'Old Kettle', 1, 'GHS', 1),
		       (3, 'Orphan Item', 99, NULL, 0)
	`)
	require.NoError(t, err)

	products, err := NewMySQLRepository(db).FindByIDs(context.Background(), []domain.ID{"1", "2", "3", "4"})
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, domain.CatalogProduct{ID: "1", Name: "Desk Lamp", StoreName: "Hall 3 Supplies", Currency: "GHS"}, products[0])
	assert.Equal(t, domain.CatalogProduct{ID: "3", Name: "Orphan Item"}, products[1])
}
