package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL
// (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago. Genera el ID si viene vacío.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (id, purchase_id, sale_id, method, amount, due_date, paid_date, status, installments, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.PurchaseID, payment.SaleID, payment.Method, payment.Amount,
		payment.DueDate, payment.PaidDate, payment.Status, payment.Installments, payment.Note,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

const paymentColumns = `id, purchase_id, sale_id, method, amount, due_date, paid_date, status, installments, note, created_at, updated_at`

func (r *PaymentRepo) list(query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.PurchaseID, &p.SaleID, &p.Method, &p.Amount,
			&p.DueDate, &p.PaidDate, &p.Status, &p.Installments, &p.Note,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

// ListByPurchase lista los pagos de una compra por vencimiento.
func (r *PaymentRepo) ListByPurchase(purchaseID string) ([]*entity.Payment, error) {
	return r.list(`SELECT `+paymentColumns+` FROM payments WHERE purchase_id = $1 ORDER BY due_date`, purchaseID)
}

// ListBySale lista los pagos de una venta por vencimiento.
func (r *PaymentRepo) ListBySale(saleID string) ([]*entity.Payment, error) {
	return r.list(`SELECT `+paymentColumns+` FROM payments WHERE sale_id = $1 ORDER BY due_date`, saleID)
}

// DeleteBySale elimina los pagos de una venta (flujo de edición).
func (r *PaymentRepo) DeleteBySale(saleID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete payments by sale: %w", err)
	}
	return nil
}
