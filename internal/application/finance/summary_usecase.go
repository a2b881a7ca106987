package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
	"github.com/tu-usuario/retail-backoffice/internal/domain/schedule"
)

// Summary resumen financiero de un período. El período filtra por fecha de
// VENCIMIENTO de los asientos; un asiento cuenta como realizado si y solo si
// tiene fecha de pago.
type Summary struct {
	TotalCredits      decimal.Decimal // Σ créditos (ventas y entradas manuales)
	TotalDebits       decimal.Decimal // Σ débitos (compras y gastos)
	Net               decimal.Decimal // créditos − débitos
	CreditsReceived   decimal.Decimal // créditos con fecha de pago
	CreditsReceivable decimal.Decimal // créditos pendientes
	DebitsPaid        decimal.Decimal // débitos con fecha de pago
	DebitsPayable     decimal.Decimal // débitos pendientes (deuda viva)
	EntryCount        int
}

// SummaryUseCase agrega el libro financiero en memoria: trae los asientos del
// período y los pliega en un resumen.
type SummaryUseCase struct {
	ledger repository.LedgerRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(ledger repository.LedgerRepository) *SummaryUseCase {
	return &SummaryUseCase{ledger: ledger}
}

// Summarize calcula el resumen del rango de vencimientos [from, to]. Ambos
// extremos son opcionales; nil deja el rango abierto por ese lado.
func (uc *SummaryUseCase) Summarize(ctx context.Context, from, to *time.Time) (*Summary, error) {
	if from != nil {
		f := schedule.NormalizeDate(*from)
		from = &f
	}
	if to != nil {
		t := schedule.NormalizeDate(*to)
		to = &t
	}
	entries, err := uc.ledger.ListByDueDateRange(from, to)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		TotalCredits:      decimal.Zero,
		TotalDebits:       decimal.Zero,
		Net:               decimal.Zero,
		CreditsReceived:   decimal.Zero,
		CreditsReceivable: decimal.Zero,
		DebitsPaid:        decimal.Zero,
		DebitsPayable:     decimal.Zero,
	}
	for _, e := range entries {
		s.EntryCount++
		switch e.Type {
		case entity.EntryCredit:
			s.TotalCredits = s.TotalCredits.Add(e.Amount)
			if e.Paid() {
				s.CreditsReceived = s.CreditsReceived.Add(e.Amount)
			} else {
				s.CreditsReceivable = s.CreditsReceivable.Add(e.Amount)
			}
		case entity.EntryDebit:
			s.TotalDebits = s.TotalDebits.Add(e.Amount)
			if e.Paid() {
				s.DebitsPaid = s.DebitsPaid.Add(e.Amount)
			} else {
				s.DebitsPayable = s.DebitsPayable.Add(e.Amount)
			}
		}
	}
	s.TotalCredits = s.TotalCredits.Round(2)
	s.TotalDebits = s.TotalDebits.Round(2)
	s.CreditsReceived = s.CreditsReceived.Round(2)
	s.CreditsReceivable = s.CreditsReceivable.Round(2)
	s.DebitsPaid = s.DebitsPaid.Round(2)
	s.DebitsPayable = s.DebitsPayable.Round(2)
	s.Net = s.TotalCredits.Sub(s.TotalDebits)
	return s, nil
}
