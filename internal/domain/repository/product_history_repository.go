package repository

import "github.com/tu-usuario/retail-backoffice/internal/domain/entity"

// ProductHistoryRepository puerto del historial de cambios de producto.
// El motor de compras registra aquí los cambios de costo promedio, dentro de
// la misma transacción del registro de la compra.
type ProductHistoryRepository interface {
	Create(change *entity.ProductChange) error
	ListByProduct(productID string, limit, offset int) ([]*entity.ProductChange, error)
}
