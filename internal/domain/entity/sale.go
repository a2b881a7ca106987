package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta a cliente. Total = Σ(items) − Discount, nunca
// negativo. Items y Payments se eliminan en cascada con la venta.
type Sale struct {
	ID           string
	CustomerName string
	Street       string
	District     string
	City         string
	Number       string
	Date         time.Time // fecha calendario, normalizada a medianoche local
	Total        decimal.Decimal
	Discount     decimal.Decimal
	EmployeeID   string // vendedor
	UserID       string // operador que registra la venta
	Note         string
	Items        []*SaleItem
	Payments     []*Payment
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SaleItem línea de venta. Total siempre se recalcula en el servidor.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
}
