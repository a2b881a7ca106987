package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// El motor lo usa para verificar existencia y persistir el costo promedio.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate obtiene el producto bloqueando su fila dentro de la
	// transacción del llamador. El par (saldo, costo promedio) se lee y
	// escribe bajo ese candado.
	GetByIDForUpdate(id string) (*entity.Product, error)
	UpdateAverageCost(productID string, cost decimal.Decimal) error
	// ListTracked devuelve los productos con control de inventario activo.
	ListTracked() ([]*entity.Product, error)
}
