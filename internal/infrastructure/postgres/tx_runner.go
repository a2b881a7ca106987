package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/retail-backoffice/internal/application/posting"
)

var _ posting.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunPosting inicia una transacción, ejecuta fn con los repositorios del motor
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunPosting(ctx context.Context, fn func(repos posting.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := posting.Repos{
		Purchases: NewPurchaseRepository(tx),
		Sales:     NewSaleRepository(tx),
		Payments:  NewPaymentRepository(tx),
		Movements: NewStockMovementRepository(tx),
		Ledger:    NewLedgerRepository(tx),
		Products:  NewProductRepository(tx),
		Users:     NewUserRepository(tx),
		Employees: NewEmployeeRepository(tx),
		History:   NewProductHistoryRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
