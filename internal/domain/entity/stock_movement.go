package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock. La cantidad siempre es positiva; el tipo
// codifica el signo. Los ajustes manuales también se registran como IN u OUT,
// distinguidos por la observación.
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// StockMovement fila inmutable del libro de stock. El saldo de un producto es
// Σ(IN) − Σ(OUT) sobre todos sus movimientos y puede quedar negativo
// (la sobreventa está permitida).
type StockMovement struct {
	ID         string
	ProductID  string
	Type       string
	Quantity   int
	UnitPrice  decimal.Decimal // valor unitario al momento del movimiento
	Date       time.Time
	PurchaseID *string
	SaleID     *string
	UserID     string
	Note       string
	CreatedAt  time.Time
}
