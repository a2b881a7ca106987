package repository

import (
	"time"

	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

// SaleFilter filtros de listado de ventas.
type SaleFilter struct {
	CustomerName string // búsqueda parcial, case-insensitive
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// SaleRepository puerto de persistencia para ventas y sus líneas.
// Las líneas y pagos se eliminan en cascada con la venta (esquema).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	Update(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	ListItems(saleID string) ([]*entity.SaleItem, error)
	DeleteItems(saleID string) error
	List(filter SaleFilter) ([]*entity.Sale, int, error)
	Delete(id string) error
}
