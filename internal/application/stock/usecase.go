package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
	"github.com/tu-usuario/retail-backoffice/internal/domain/schedule"
)

// ProductStock saldo de un producto junto con su catálogo.
type ProductStock struct {
	Product *entity.Product
	Balance int
	Low     bool // saldo <= stock mínimo
}

// UseCase lado de lectura del libro de stock: saldos, extractos por producto
// y alertas de stock bajo. Los saldos nunca se almacenan: siempre se derivan
// de los movimientos. También registra ajustes manuales de inventario.
type UseCase struct {
	movements repository.StockMovementRepository
	products  repository.ProductRepository
	history   repository.ProductHistoryRepository
	now       func() time.Time
}

// NewUseCase construye el caso de uso. now permite fijar el reloj en tests;
// nil usa time.Now.
func NewUseCase(
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	history repository.ProductHistoryRepository,
	now func() time.Time,
) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{movements: movements, products: products, history: history, now: now}
}

// Balance devuelve el saldo actual y el extracto paginado de un producto.
func (uc *UseCase) Balance(ctx context.Context, productID string, from, to *time.Time, limit, offset int) (*ProductStock, []*entity.StockMovement, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	balance, err := uc.movements.Balance(productID)
	if err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	moves, err := uc.movements.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	ps := &ProductStock{
		Product: product,
		Balance: balance,
		Low:     product.TracksInventory && balance <= product.MinStock,
	}
	return ps, moves, nil
}

// Overview devuelve el saldo de todos los productos: los que tienen control
// de inventario aunque no registren movimientos (saldo cero), y los que sin
// control de inventario acumularon movimientos (su saldo existe pero no
// genera alertas de stock bajo).
func (uc *UseCase) Overview(ctx context.Context) ([]*ProductStock, error) {
	products, err := uc.products.ListTracked()
	if err != nil {
		return nil, err
	}
	balances, err := uc.movements.Balances()
	if err != nil {
		return nil, err
	}
	out := make([]*ProductStock, 0, len(products))
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		seen[p.ID] = true
		balance := balances[p.ID]
		out = append(out, &ProductStock{
			Product: p,
			Balance: balance,
			Low:     balance <= p.MinStock,
		})
	}
	for productID, balance := range balances {
		if seen[productID] {
			continue
		}
		p, err := uc.products.GetByID(productID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		out = append(out, &ProductStock{Product: p, Balance: balance, Low: false})
	}
	return out, nil
}

// LowStock devuelve solo los productos con saldo en o por debajo de su stock
// mínimo.
func (uc *UseCase) LowStock(ctx context.Context) ([]*ProductStock, error) {
	all, err := uc.Overview(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]*ProductStock, 0)
	for _, ps := range all {
		if ps.Low {
			low = append(low, ps)
		}
	}
	return low, nil
}

// History devuelve el historial de cambios de un producto (incluye los
// cambios de costo promedio que deja el motor de compras).
func (uc *UseCase) History(ctx context.Context, productID string, limit, offset int) ([]*entity.ProductChange, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.history.ListByProduct(productID, limit, offset)
}

// Adjust registra una corrección manual de inventario. delta positivo entra
// stock, negativo lo saca; cero es inválido. No toca el costo promedio.
func (uc *UseCase) Adjust(ctx context.Context, productID string, delta int, userID, note string) (*entity.StockMovement, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: el ajuste no puede ser cero", domain.ErrInvalidInput)
	}
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	movType := entity.MovementIn
	qty := delta
	if delta < 0 {
		movType = entity.MovementOut
		qty = -delta
	}
	if note == "" {
		note = "Ajuste manual de inventario"
	} else {
		note = "Ajuste manual de inventario - " + note
	}
	mov := &entity.StockMovement{
		ProductID: productID,
		Type:      movType,
		Quantity:  qty,
		UnitPrice: decimal.Zero,
		Date:      schedule.NormalizeDate(uc.now()),
		UserID:    userID,
		Note:      note,
	}
	if err := uc.movements.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
