package repository

import "github.com/tu-usuario/retail-backoffice/internal/domain/entity"

// PurchaseRepository puerto de persistencia para compras y sus líneas.
// Las líneas y pagos se eliminan en cascada con la compra (esquema).
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	ListItems(purchaseID string) ([]*entity.PurchaseItem, error)
	List(limit, offset int) ([]*entity.Purchase, int, error)
	Delete(id string) error
}
