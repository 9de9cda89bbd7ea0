package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"campusmart/internal/domain"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

// FindByIDs returns the catalog entries for ids that still exist. Missing
// ids are simply absent from the result.
func (r *MySQLRepository) FindByIDs(ctx context.Context, ids []domain.ID) ([]domain.CatalogProduct, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id.String())
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.name, COALESCE(s.name, ''), COALESCE(p.currency, '')
		FROM Product p
		LEFT JOIN Store s ON s.id = p.storeId
		WHERE p.id IN (%s)
		  AND p.isDeleted = 0
		ORDER BY p.id`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog products: %w", err)
	}
	defer rows.Close()

	var products []domain.CatalogProduct
	for rows.Next() {
		var (
			p  domain.CatalogProduct
			id string
		)
		if err := rows.Scan(&id, &p.Name, &p.StoreName, &p.Currency); err != nil {
			return nil, fmt.Errorf("scanning catalog product row: %w", err)
		}
		p.ID = domain.ID(id)
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog product rows: %w", err)
	}

	return products, nil
}
