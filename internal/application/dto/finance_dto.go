package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/application/finance"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

// CreateLedgerEntryRequest body para POST /api/finance/entries y
// PUT /api/finance/entries/:id (asientos manuales).
type CreateLedgerEntryRequest struct {
	Type       string          `json:"type" validate:"required,oneof=DEBIT CREDIT"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	DueDate    string          `json:"due_date,omitempty"`
	PaidDate   string          `json:"paid_date,omitempty"`
	Method     string          `json:"method,omitempty"`
	EmployeeID string          `json:"employee_id,omitempty" validate:"omitempty,uuid4"`
	UserID     string          `json:"user_id" validate:"required,uuid4"`
	Note       string          `json:"note" validate:"required"`
}

// LedgerEntryResponse asiento en respuestas.
type LedgerEntryResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	PostingDate string          `json:"posting_date"`
	DueDate     string          `json:"due_date,omitempty"`
	PaidDate    string          `json:"paid_date,omitempty"`
	Paid        bool            `json:"paid"`
	Method      string          `json:"method,omitempty"`
	PurchaseID  *string         `json:"purchase_id,omitempty"`
	SaleID      *string         `json:"sale_id,omitempty"`
	EmployeeID  *string         `json:"employee_id,omitempty"`
	Note        string          `json:"note,omitempty"`
}

// SummaryResponse resumen financiero de un período.
type SummaryResponse struct {
	TotalCredits      decimal.Decimal `json:"total_credits"`
	TotalDebits       decimal.Decimal `json:"total_debits"`
	Net               decimal.Decimal `json:"net"`
	CreditsReceived   decimal.Decimal `json:"credits_received"`
	CreditsReceivable decimal.Decimal `json:"credits_receivable"`
	DebitsPaid        decimal.Decimal `json:"debits_paid"`
	DebitsPayable     decimal.Decimal `json:"debits_payable"`
	EntryCount        int             `json:"entry_count"`
}

// FromLedgerEntry arma la respuesta de un asiento.
func FromLedgerEntry(e *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:          e.ID,
		Type:        e.Type,
		Amount:      e.Amount,
		PostingDate: FormatDate(e.PostingDate),
		DueDate:     FormatOptionalDate(e.DueDate),
		PaidDate:    FormatOptionalDate(e.PaidDate),
		Paid:        e.Paid(),
		Method:      e.Method,
		PurchaseID:  e.PurchaseID,
		SaleID:      e.SaleID,
		EmployeeID:  e.EmployeeID,
		Note:        e.Note,
	}
}

// FromSummary arma la respuesta del resumen financiero.
func FromSummary(s *finance.Summary) SummaryResponse {
	return SummaryResponse{
		TotalCredits:      s.TotalCredits,
		TotalDebits:       s.TotalDebits,
		Net:               s.Net,
		CreditsReceived:   s.CreditsReceived,
		CreditsReceivable: s.CreditsReceivable,
		DebitsPaid:        s.DebitsPaid,
		DebitsPayable:     s.DebitsPayable,
		EntryCount:        s.EntryCount,
	}
}
