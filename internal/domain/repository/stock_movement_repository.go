package repository

import (
	"time"

	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

// StockMovementRepository puerto de persistencia para el libro de stock.
// Solo el orquestador de compras/ventas escribe movimientos.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// Balance devuelve Σ(IN) − Σ(OUT) para un producto.
	Balance(productID string) (int, error)
	// Balances devuelve el saldo por producto para todos los productos con
	// movimientos.
	Balances() (map[string]int, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	DeleteByPurchase(purchaseID string) error
	DeleteBySale(saleID string) error
}
