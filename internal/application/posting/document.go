package posting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

// DocumentKind describe la mitad variable del algoritmo de registro: una
// compra entra stock y genera débitos, una venta saca stock y genera
// créditos. El resto del flujo es idéntico para ambos documentos.
type DocumentKind struct {
	LedgerType string // DEBIT para compras, CREDIT para ventas
	StockType  string // IN para compras, OUT para ventas
	Label      string // prefijo de las observaciones generadas
}

var (
	PurchaseKind = DocumentKind{LedgerType: entity.EntryDebit, StockType: entity.MovementIn, Label: "Compra"}
	SaleKind     = DocumentKind{LedgerType: entity.EntryCredit, StockType: entity.MovementOut, Label: "Venta"}
)

// refs devuelve la referencia al documento según el tipo (compra o venta).
func (k DocumentKind) refs(docID string) (purchaseID, saleID *string) {
	if k.LedgerType == entity.EntryDebit {
		return &docID, nil
	}
	return nil, &docID
}

// ItemInput línea de entrada de una compra o venta. El total de línea nunca
// se acepta del cliente: se recalcula siempre en el servidor.
type ItemInput struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// PaymentInput pago lógico de entrada. Installments <= 1 es pago único.
type PaymentInput struct {
	Method       string
	Amount       decimal.Decimal
	DueDate      time.Time
	PaidDate     *time.Time
	Installments int
	Note         string
}

// DocumentInput entrada común de Create/Update para compras y ventas. Los
// campos de dirección y EmployeeID solo aplican a ventas.
type DocumentInput struct {
	Counterparty string
	Street       string
	District     string
	City         string
	Number       string
	Date         time.Time
	Discount     decimal.Decimal
	EmployeeID   string
	UserID       string
	Note         string
	Items        []ItemInput
	Payments     []PaymentInput
}
