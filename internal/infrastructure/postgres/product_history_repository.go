package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

var _ repository.ProductHistoryRepository = (*ProductHistoryRepo)(nil)

// ProductHistoryRepo implementación del puerto ProductHistoryRepository sobre
// PostgreSQL (usable con pool o tx).
type ProductHistoryRepo struct {
	q Querier
}

// NewProductHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductHistoryRepository(q Querier) *ProductHistoryRepo {
	return &ProductHistoryRepo{q: q}
}

// Create persiste un registro de auditoría. Genera el ID si viene vacío.
func (r *ProductHistoryRepo) Create(change *entity.ProductChange) error {
	if change.ID == "" {
		change.ID = uuid.New().String()
	}
	query := `
		INSERT INTO product_history (id, product_id, user_id, kind, description, before, after, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`
	_, err := r.q.Exec(context.Background(), query,
		change.ID, change.ProductID, change.UserID, change.Kind, change.Description,
		change.Before, change.After, change.Note,
	)
	if err != nil {
		return fmt.Errorf("insert product change: %w", err)
	}
	return nil
}

// ListByProduct lista el historial de un producto, más reciente primero.
func (r *ProductHistoryRepo) ListByProduct(productID string, limit, offset int) ([]*entity.ProductChange, error) {
	query := `
		SELECT id, product_id, user_id, kind, description, before, after, note, created_at
		FROM product_history WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list product history: %w", err)
	}
	defer rows.Close()

	var changes []*entity.ProductChange
	for rows.Next() {
		var c entity.ProductChange
		if err := rows.Scan(&c.ID, &c.ProductID, &c.UserID, &c.Kind, &c.Description,
			&c.Before, &c.After, &c.Note, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product change: %w", err)
		}
		changes = append(changes, &c)
	}
	return changes, rows.Err()
}
