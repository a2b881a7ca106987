package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento. Genera el ID si viene vacío.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, unit_price, date, purchase_id, sale_id, user_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.UnitPrice, movement.Date, movement.PurchaseID, movement.SaleID,
		movement.UserID, movement.Note,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// Balance devuelve Σ(IN) − Σ(OUT) para un producto. Cero si no tiene
// movimientos.
func (r *StockMovementRepo) Balance(productID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'IN' THEN quantity ELSE -quantity END), 0)
		FROM stock_movements WHERE product_id = $1`
	var balance int
	err := r.q.QueryRow(context.Background(), query, productID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("stock balance: %w", err)
	}
	return balance, nil
}

// Balances devuelve el saldo por producto para todos los productos con
// movimientos.
func (r *StockMovementRepo) Balances() (map[string]int, error) {
	query := `
		SELECT product_id, SUM(CASE WHEN type = 'IN' THEN quantity ELSE -quantity END)
		FROM stock_movements GROUP BY product_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("stock balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[string]int)
	for rows.Next() {
		var productID string
		var balance int
		if err := rows.Scan(&productID, &balance); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		balances[productID] = balance
	}
	return balances, rows.Err()
}

// ListByProduct lista el extracto de un producto, más reciente primero, con
// rango de fechas opcional.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	conds := []string{"product_id = $1"}
	args := []any{productID}
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	args = append(args, limit)
	limitArg := len(args)
	args = append(args, offset)
	offsetArg := len(args)

	query := fmt.Sprintf(`
		SELECT id, product_id, type, quantity, unit_price, date, purchase_id, sale_id, user_id, note, created_at
		FROM stock_movements WHERE %s ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		strings.Join(conds, " AND "), limitArg, offsetArg)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitPrice,
			&m.Date, &m.PurchaseID, &m.SaleID, &m.UserID, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

// DeleteByPurchase elimina los movimientos generados por una compra.
func (r *StockMovementRepo) DeleteByPurchase(purchaseID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_movements WHERE purchase_id = $1`, purchaseID)
	if err != nil {
		return fmt.Errorf("delete movements by purchase: %w", err)
	}
	return nil
}

// DeleteBySale elimina los movimientos generados por una venta, incluidas las
// reversiones de ediciones anteriores.
func (r *StockMovementRepo) DeleteBySale(saleID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_movements WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete movements by sale: %w", err)
	}
	return nil
}
