package http

import (
	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/application/posting"
)

func toItemInputs(items []dto.DocumentItemRequest) []posting.ItemInput {
	out := make([]posting.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, posting.ItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return out
}

func toPaymentInputs(payments []dto.DocumentPaymentRequest) ([]posting.PaymentInput, error) {
	out := make([]posting.PaymentInput, 0, len(payments))
	for _, p := range payments {
		due, err := dto.ParseDate(p.DueDate)
		if err != nil {
			return nil, err
		}
		paid, err := dto.ParseOptionalDate(p.PaidDate)
		if err != nil {
			return nil, err
		}
		out = append(out, posting.PaymentInput{
			Method:       p.Method,
			Amount:       p.Amount,
			DueDate:      due,
			PaidDate:     paid,
			Installments: p.Installments,
			Note:         p.Note,
		})
	}
	return out, nil
}
