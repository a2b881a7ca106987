package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pago aceptadas.
const (
	PaymentMethodCash       = "EFECTIVO"
	PaymentMethodPix        = "PIX"
	PaymentMethodCreditCard = "TARJETA_CREDITO"
	PaymentMethodDebitCard  = "TARJETA_DEBITO"
	PaymentMethodTransfer   = "TRANSFERENCIA"
	PaymentMethodCheck      = "CHEQUE"
	PaymentMethodInvoice    = "BOLETO"
)

// Estados de un pago. El motor de compras/ventas solo asigna PENDING o PAID;
// OVERDUE y CANCELLED son estados administrativos que se fijan fuera del
// flujo de registro.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusPaid      = "PAID"
	PaymentStatusOverdue   = "OVERDUE"
	PaymentStatusCancelled = "CANCELLED"
)

// ValidPaymentMethod indica si el método pertenece a la enumeración fija.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodPix, PaymentMethodCreditCard,
		PaymentMethodDebitCard, PaymentMethodTransfer, PaymentMethodCheck,
		PaymentMethodInvoice:
		return true
	}
	return false
}

// Payment pago lógico de una compra o una venta (exactamente una de las dos
// referencias). Si el pago se solicitó con fecha futura, PaidDate la conserva
// para mostrarla aunque Status siga en PENDING.
type Payment struct {
	ID           string
	PurchaseID   *string
	SaleID       *string
	Method       string
	Amount       decimal.Decimal
	DueDate      time.Time
	PaidDate     *time.Time
	Status       string
	Installments int // 0 o 1 = pago único
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
