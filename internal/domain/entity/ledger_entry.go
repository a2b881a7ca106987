package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento financiero.
const (
	EntryDebit  = "DEBIT"
	EntryCredit = "CREDIT"
)

// LedgerEntry asiento del libro financiero, inmutable una vez registrado por
// el motor de compras/ventas. Un asiento está pagado si y solo si PaidDate no
// es nil. PurchaseID y SaleID son mutuamente excluyentes; EmployeeID se usa en
// asientos manuales (por ejemplo nómina).
type LedgerEntry struct {
	ID          string
	Type        string
	Amount      decimal.Decimal
	PostingDate time.Time
	DueDate     *time.Time
	PaidDate    *time.Time
	Method      string // forma de pago, opcional en asientos manuales
	PurchaseID  *string
	SaleID      *string
	EmployeeID  *string
	UserID      string
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Paid indica si el asiento cuenta como realizado.
func (e *LedgerEntry) Paid() bool {
	return e.PaidDate != nil
}
