package repository

import "github.com/tu-usuario/retail-backoffice/internal/domain/entity"

// PaymentRepository puerto de persistencia para pagos de compras y ventas.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	ListByPurchase(purchaseID string) ([]*entity.Payment, error)
	ListBySale(saleID string) ([]*entity.Payment, error)
	// DeleteBySale elimina los pagos de una venta (flujo de edición).
	DeleteBySale(saleID string) error
}
