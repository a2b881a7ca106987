package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra a proveedor. Total = Σ(items) − Discount,
// nunca negativo. Items y Payments se eliminan en cascada con la compra.
type Purchase struct {
	ID           string
	SupplierName string
	Date         time.Time // fecha calendario, normalizada a medianoche local
	Total        decimal.Decimal
	Discount     decimal.Decimal
	UserID       string // operador que registra la compra
	Note         string
	Items        []*PurchaseItem
	Payments     []*Payment
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseItem línea de compra. Total siempre se recalcula en el servidor.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	Total      decimal.Decimal
	CreatedAt  time.Time
}
