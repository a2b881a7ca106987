package posting

import (
	"context"

	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción de BD.
// TxRunner los construye sobre la tx y los pasa al callback.
type Repos struct {
	Purchases repository.PurchaseRepository
	Sales     repository.SaleRepository
	Payments  repository.PaymentRepository
	Movements repository.StockMovementRepository
	Ledger    repository.LedgerRepository
	Products  repository.ProductRepository
	Users     repository.UserRepository
	Employees repository.EmployeeRepository
	History   repository.ProductHistoryRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor: si fn
// retorna error se hace Rollback y ninguna escritura sobrevive.
type TxRunner interface {
	RunPosting(ctx context.Context, fn func(r Repos) error) error
}
