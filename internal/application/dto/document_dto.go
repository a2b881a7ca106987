package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

// DocumentItemRequest línea de una compra o venta. El total de línea se
// recalcula siempre en el servidor.
type DocumentItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

// DocumentPaymentRequest pago lógico de una compra o venta. Installments <= 1
// es pago único; N > 1 genera N cuotas mensuales.
type DocumentPaymentRequest struct {
	Method       string          `json:"method" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	DueDate      string          `json:"due_date" validate:"required"`
	PaidDate     string          `json:"paid_date,omitempty"`
	Installments int             `json:"installments" validate:"min=0,max=120"`
	Note         string          `json:"note,omitempty"`
}

// CreatePurchaseRequest body para POST /api/purchases. UserID identifica al
// operador (sin capa de autenticación, viaja en el body).
type CreatePurchaseRequest struct {
	SupplierName string                   `json:"supplier_name" validate:"required"`
	UserID       string                   `json:"user_id" validate:"required,uuid4"`
	Date         string                   `json:"date" validate:"required"`
	Discount     decimal.Decimal          `json:"discount"`
	Note         string                   `json:"note,omitempty"`
	Items        []DocumentItemRequest    `json:"items" validate:"required,min=1,dive"`
	Payments     []DocumentPaymentRequest `json:"payments" validate:"required,min=1,dive"`
}

// CreateSaleRequest body para POST /api/sales y PUT /api/sales/:id.
type CreateSaleRequest struct {
	CustomerName string                   `json:"customer_name" validate:"required"`
	Street       string                   `json:"street,omitempty"`
	District     string                   `json:"district,omitempty"`
	City         string                   `json:"city,omitempty"`
	Number       string                   `json:"number,omitempty"`
	Date         string                   `json:"date" validate:"required"`
	Discount     decimal.Decimal          `json:"discount"`
	EmployeeID   string                   `json:"employee_id" validate:"required,uuid4"`
	UserID       string                   `json:"user_id" validate:"required,uuid4"`
	Note         string                   `json:"note,omitempty"`
	Items        []DocumentItemRequest    `json:"items" validate:"required,min=1,dive"`
	Payments     []DocumentPaymentRequest `json:"payments" validate:"required,min=1,dive"`
}

// DocumentItemResponse línea en respuestas.
type DocumentItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID           string          `json:"id"`
	Method       string          `json:"method"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      string          `json:"due_date"`
	PaidDate     string          `json:"paid_date,omitempty"`
	Status       string          `json:"status"`
	Installments int             `json:"installments"`
	Note         string          `json:"note,omitempty"`
}

// PurchaseResponse compra con detalle.
type PurchaseResponse struct {
	ID           string                 `json:"id"`
	SupplierName string                 `json:"supplier_name"`
	Date         string                 `json:"date"`
	Total        decimal.Decimal        `json:"total"`
	Discount     decimal.Decimal        `json:"discount"`
	UserID       string                 `json:"user_id"`
	Note         string                 `json:"note,omitempty"`
	Items        []DocumentItemResponse `json:"items,omitempty"`
	Payments     []PaymentResponse      `json:"payments,omitempty"`
}

// SaleResponse venta con detalle.
type SaleResponse struct {
	ID           string                 `json:"id"`
	CustomerName string                 `json:"customer_name"`
	Street       string                 `json:"street,omitempty"`
	District     string                 `json:"district,omitempty"`
	City         string                 `json:"city,omitempty"`
	Number       string                 `json:"number,omitempty"`
	Date         string                 `json:"date"`
	Total        decimal.Decimal        `json:"total"`
	Discount     decimal.Decimal        `json:"discount"`
	EmployeeID   string                 `json:"employee_id"`
	UserID       string                 `json:"user_id"`
	Note         string                 `json:"note,omitempty"`
	Items        []DocumentItemResponse `json:"items,omitempty"`
	Payments     []PaymentResponse      `json:"payments,omitempty"`
}

// FromPurchase arma la respuesta de una compra.
func FromPurchase(p *entity.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		ID:           p.ID,
		SupplierName: p.SupplierName,
		Date:         FormatDate(p.Date),
		Total:        p.Total,
		Discount:     p.Discount,
		UserID:       p.UserID,
		Note:         p.Note,
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, DocumentItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}
	for _, pay := range p.Payments {
		resp.Payments = append(resp.Payments, FromPayment(pay))
	}
	return resp
}

// FromSale arma la respuesta de una venta.
func FromSale(s *entity.Sale) SaleResponse {
	resp := SaleResponse{
		ID:           s.ID,
		CustomerName: s.CustomerName,
		Street:       s.Street,
		District:     s.District,
		City:         s.City,
		Number:       s.Number,
		Date:         FormatDate(s.Date),
		Total:        s.Total,
		Discount:     s.Discount,
		EmployeeID:   s.EmployeeID,
		UserID:       s.UserID,
		Note:         s.Note,
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, DocumentItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}
	for _, pay := range s.Payments {
		resp.Payments = append(resp.Payments, FromPayment(pay))
	}
	return resp
}

// FromPayment arma la respuesta de un pago.
func FromPayment(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		Method:       p.Method,
		Amount:       p.Amount,
		DueDate:      FormatDate(p.DueDate),
		PaidDate:     FormatOptionalDate(p.PaidDate),
		Status:       p.Status,
		Installments: p.Installments,
		Note:         p.Note,
	}
}
