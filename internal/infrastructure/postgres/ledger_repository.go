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

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del puerto LedgerRepository sobre PostgreSQL
// (usable con pool o tx).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `id, type, amount, posting_date, due_date, paid_date, method, purchase_id, sale_id, employee_id, user_id, note, created_at, updated_at`

func scanLedgerEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	err := row.Scan(
		&e.ID, &e.Type, &e.Amount, &e.PostingDate, &e.DueDate, &e.PaidDate,
		&e.Method, &e.PurchaseID, &e.SaleID, &e.EmployeeID, &e.UserID, &e.Note,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *LedgerRepo) queryEntries(query string, args ...any) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Create persiste un asiento. Genera el ID si viene vacío.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ledger_entries (id, type, amount, posting_date, due_date, paid_date, method, purchase_id, sale_id, employee_id, user_id, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Type, entry.Amount, entry.PostingDate, entry.DueDate,
		entry.PaidDate, entry.Method, entry.PurchaseID, entry.SaleID,
		entry.EmployeeID, entry.UserID, entry.Note,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento. Devuelve nil sin error si no existe.
func (r *LedgerRepo) GetByID(id string) (*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE id = $1`
	e, err := scanLedgerEntry(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return e, nil
}

// Update actualiza un asiento manual.
func (r *LedgerRepo) Update(entry *entity.LedgerEntry) error {
	query := `
		UPDATE ledger_entries SET type = $2, amount = $3, due_date = $4, paid_date = $5,
			method = $6, employee_id = $7, note = $8, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Type, entry.Amount, entry.DueDate, entry.PaidDate,
		entry.Method, entry.EmployeeID, entry.Note,
	)
	if err != nil {
		return fmt.Errorf("update ledger entry: %w", err)
	}
	return nil
}

// Delete elimina un asiento.
func (r *LedgerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ledger_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ledger entry: %w", err)
	}
	return nil
}

// List lista asientos paginados según el filtro, por vencimiento ascendente,
// y el total de registros que cumplen el filtro.
func (r *LedgerRepo) List(filter repository.LedgerFilter) ([]*entity.LedgerEntry, int, error) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Type != "" {
		add("type = $%d", filter.Type)
	}
	if filter.Method != "" {
		add("method = $%d", filter.Method)
	}
	if filter.EmployeeID != "" {
		add("employee_id = $%d", filter.EmployeeID)
	}
	if filter.PurchaseID != "" {
		add("purchase_id = $%d", filter.PurchaseID)
	}
	if filter.SaleID != "" {
		add("sale_id = $%d", filter.SaleID)
	}
	if filter.DueFrom != nil {
		add("due_date >= $%d", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		add("due_date <= $%d", *filter.DueTo)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM ledger_entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}

	args = append(args, filter.Limit)
	limitArg := len(args)
	args = append(args, filter.Offset)
	offsetArg := len(args)
	query := fmt.Sprintf(`SELECT `+ledgerColumns+` FROM ledger_entries%s ORDER BY due_date NULLS LAST, created_at LIMIT $%d OFFSET $%d`,
		where, limitArg, offsetArg)
	entries, err := r.queryEntries(query, args...)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListByDueDateRange devuelve los asientos con vencimiento dentro del rango
// (extremos opcionales), para los resúmenes financieros.
func (r *LedgerRepo) ListByDueDateRange(from, to *time.Time) ([]*entity.LedgerEntry, error) {
	conds := []string{"due_date IS NOT NULL"}
	var args []any
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("due_date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("due_date <= $%d", len(args)))
	}
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY due_date`
	return r.queryEntries(query, args...)
}

// ListUnpaidDueBetween devuelve asientos sin pagar con vencimiento en el
// rango, por vencimiento ascendente.
func (r *LedgerRepo) ListUnpaidDueBetween(from, to time.Time) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE paid_date IS NULL AND due_date >= $1 AND due_date <= $2
		ORDER BY due_date`
	return r.queryEntries(query, from, to)
}

// ListByPurchase lista los asientos de una compra por vencimiento.
func (r *LedgerRepo) ListByPurchase(purchaseID string) ([]*entity.LedgerEntry, error) {
	return r.queryEntries(`SELECT `+ledgerColumns+` FROM ledger_entries WHERE purchase_id = $1 ORDER BY due_date`, purchaseID)
}

// ListBySale lista los asientos de una venta por vencimiento.
func (r *LedgerRepo) ListBySale(saleID string) ([]*entity.LedgerEntry, error) {
	return r.queryEntries(`SELECT `+ledgerColumns+` FROM ledger_entries WHERE sale_id = $1 ORDER BY due_date`, saleID)
}

// DeleteByPurchase elimina los asientos generados por una compra.
func (r *LedgerRepo) DeleteByPurchase(purchaseID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ledger_entries WHERE purchase_id = $1`, purchaseID)
	if err != nil {
		return fmt.Errorf("delete ledger entries by purchase: %w", err)
	}
	return nil
}

// DeleteBySale elimina los asientos generados por una venta.
func (r *LedgerRepo) DeleteBySale(saleID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ledger_entries WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete ledger entries by sale: %w", err)
	}
	return nil
}
