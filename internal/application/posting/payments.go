package posting

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/schedule"
)

// ExpandPayment expande un pago lógico en su fila de pago y sus asientos
// financieros, sin tocar la BD. today llega como parámetro explícito para que
// los tests puedan fijarlo.
//
// Resolución de estado: sin fecha de pago → PENDING. Con fecha de pago
// normalizada <= today → PAID y el asiento lleva esa fecha. Con fecha futura
// → el pago queda PENDING pero conserva la fecha solicitada para mostrarla;
// el asiento no lleva fecha de pago (no cuenta como realizado).
//
// Con N > 1 cuotas se crea un único pago de referencia y N asientos con los
// vencimientos del calendario de cuotas; el monto se divide entre N y la
// PRIMERA cuota absorbe el residuo de redondeo, de modo que la suma de los
// asientos iguala exactamente el monto del pago. Solo la cuota 0 puede
// heredar una fecha de pago realizada.
func ExpandPayment(kind DocumentKind, docID, counterparty string, docDate time.Time, userID string, in PaymentInput, today time.Time) (*entity.Payment, []*entity.LedgerEntry) {
	purchaseID, saleID := kind.refs(docID)
	dueDate := schedule.NormalizeDate(in.DueDate)
	today = schedule.NormalizeDate(today)
	docDate = schedule.NormalizeDate(docDate)

	status := entity.PaymentStatusPending
	var displayPaid, realizedPaid *time.Time
	if in.PaidDate != nil {
		pd := schedule.NormalizeDate(*in.PaidDate)
		displayPaid = &pd
		if !pd.After(today) {
			status = entity.PaymentStatusPaid
			realizedPaid = &pd
		}
	}

	payment := &entity.Payment{
		PurchaseID:   purchaseID,
		SaleID:       saleID,
		Method:       in.Method,
		Amount:       in.Amount,
		DueDate:      dueDate,
		PaidDate:     displayPaid,
		Status:       status,
		Installments: in.Installments,
		Note:         in.Note,
	}

	if in.Installments <= 1 {
		entry := &entity.LedgerEntry{
			Type:        kind.LedgerType,
			Amount:      in.Amount,
			PostingDate: docDate,
			DueDate:     &dueDate,
			PaidDate:    realizedPaid,
			Method:      in.Method,
			PurchaseID:  purchaseID,
			SaleID:      saleID,
			UserID:      userID,
			Note:        fmt.Sprintf("%s - %s - %s", kind.Label, counterparty, in.Method),
		}
		return payment, []*entity.LedgerEntry{entry}
	}

	n := in.Installments
	payment.Note = strings.TrimSpace(fmt.Sprintf("%s - %dx cuotas", in.Note, n))

	// La cuota 0 absorbe el residuo: suma exacta por construcción.
	per := in.Amount.Div(decimal.NewFromInt(int64(n))).Round(2)
	first := in.Amount.Sub(per.Mul(decimal.NewFromInt(int64(n - 1))))

	dates := schedule.Installments(dueDate, n)
	entries := make([]*entity.LedgerEntry, 0, n)
	for i := 0; i < n; i++ {
		amount := per
		if i == 0 {
			amount = first
		}
		var paid *time.Time
		if i == 0 {
			paid = realizedPaid
		}
		due := dates[i]
		entries = append(entries, &entity.LedgerEntry{
			Type:        kind.LedgerType,
			Amount:      amount,
			PostingDate: docDate,
			DueDate:     &due,
			PaidDate:    paid,
			Method:      in.Method,
			PurchaseID:  purchaseID,
			SaleID:      saleID,
			UserID:      userID,
			Note:        fmt.Sprintf("%s - %s - %s - Cuota %d/%d", kind.Label, counterparty, in.Method, i+1, n),
		})
	}
	return payment, entries
}
