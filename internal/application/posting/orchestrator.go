package posting

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/inventory"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

// tolerance holgura de conciliación entre pagos y total del documento.
var tolerance = decimal.New(1, -2) // 0.01

// processedItem línea validada con su total recalculado en el servidor.
type processedItem struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// docOps parte específica del documento dentro del núcleo compartido de
// registro: cómo persistir una línea y cómo anotar sus movimientos.
type docOps struct {
	kind         DocumentKind
	docID        string
	counterparty string
	date         time.Time
	userID       string
	movementNote string
	saveItem     func(processedItem) error
}

// validateDocument valida la forma de la entrada antes de abrir transacción.
// Cualquier fallo aborta sin escribir nada.
func validateDocument(in DocumentInput) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: informe al menos un ítem", domain.ErrInvalidInput)
	}
	if len(in.Payments) == 0 {
		return fmt.Errorf("%w: informe al menos una forma de pago", domain.ErrInvalidInput)
	}
	if in.UserID == "" {
		return fmt.Errorf("%w: usuario operador requerido", domain.ErrInvalidInput)
	}
	if in.Discount.IsNegative() {
		return fmt.Errorf("%w: el descuento no puede ser negativo", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.ProductID == "" {
			return fmt.Errorf("%w: ítem sin producto", domain.ErrInvalidInput)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: cantidad inválida (%d)", domain.ErrInvalidInput, it.Quantity)
		}
		if !it.UnitPrice.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: valor unitario inválido", domain.ErrInvalidInput)
		}
	}
	for _, p := range in.Payments {
		if !entity.ValidPaymentMethod(p.Method) {
			return fmt.Errorf("%w: forma de pago desconocida (%s)", domain.ErrInvalidInput, p.Method)
		}
		if !p.Amount.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: valor de pago inválido", domain.ErrInvalidInput)
		}
		if p.Installments < 0 {
			return fmt.Errorf("%w: cantidad de cuotas inválida", domain.ErrInvalidInput)
		}
		if p.DueDate.IsZero() {
			return fmt.Errorf("%w: fecha de vencimiento requerida", domain.ErrInvalidInput)
		}
	}
	return nil
}

// processItems verifica que cada producto exista y recalcula los totales de
// línea. Devuelve las líneas procesadas y la suma de sus totales.
func processItems(products repository.ProductRepository, items []ItemInput) ([]processedItem, decimal.Decimal, error) {
	processed := make([]processedItem, 0, len(items))
	sum := decimal.Zero
	for _, it := range items {
		product, err := products.GetByID(it.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if product == nil {
			return nil, decimal.Zero, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
		}
		total := decimal.NewFromInt(int64(it.Quantity)).Mul(it.UnitPrice).Round(2)
		sum = sum.Add(total)
		processed = append(processed, processedItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     total,
		})
	}
	return processed, sum, nil
}

// documentTotal aplica el descuento y recorta a cero.
func documentTotal(itemsTotal, discount decimal.Decimal) decimal.Decimal {
	total := itemsTotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// reconcilePayments exige que la suma de los pagos iguale el total del
// documento dentro de la holgura de 0.01.
func reconcilePayments(payments []PaymentInput, total decimal.Decimal) error {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	if sum.Sub(total).Abs().GreaterThan(tolerance) {
		return fmt.Errorf("%w: pagos %s vs total %s", domain.ErrPaymentMismatch,
			sum.StringFixed(2), total.StringFixed(2))
	}
	return nil
}

// costSnapshot instantánea de costo para el historial de producto.
type costSnapshot struct {
	AverageCost string `json:"costo_promedio"`
}

// postItems persiste las líneas y sus movimientos de stock. En compras
// (updateCost), y solo para productos con control de inventario, aplica el
// costo promedio ponderado calculado con el saldo ANTERIOR al movimiento de
// la propia línea y deja el cambio en el historial del producto, todo dentro
// de la misma transacción.
func postItems(r Repos, ops docOps, items []processedItem, updateCost bool) error {
	purchaseID, saleID := ops.kind.refs(ops.docID)
	for _, it := range items {
		if err := ops.saveItem(it); err != nil {
			return err
		}

		// En compras la fila del producto se bloquea: dos compras
		// concurrentes del mismo producto serializan la lectura-escritura
		// de (saldo, costo promedio).
		var product *entity.Product
		var err error
		if updateCost {
			product, err = r.Products.GetByIDForUpdate(it.ProductID)
		} else {
			product, err = r.Products.GetByID(it.ProductID)
		}
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
		}

		applyCost := updateCost && product.TracksInventory
		balance := 0
		if applyCost {
			// Saldo antes de registrar el movimiento de esta línea.
			balance, err = r.Movements.Balance(it.ProductID)
			if err != nil {
				return err
			}
		}

		mov := &entity.StockMovement{
			ProductID:  it.ProductID,
			Type:       ops.kind.StockType,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Date:       ops.date,
			PurchaseID: purchaseID,
			SaleID:     saleID,
			UserID:     ops.userID,
			Note:       ops.movementNote,
		}
		if err := r.Movements.Create(mov); err != nil {
			return err
		}

		if applyCost {
			newCost := inventory.AverageCost(balance, product.AverageCost, it.Quantity, it.UnitPrice)
			if err := r.Products.UpdateAverageCost(it.ProductID, newCost); err != nil {
				return err
			}
			before, _ := json.Marshal(costSnapshot{AverageCost: product.AverageCost.StringFixed(2)})
			after, _ := json.Marshal(costSnapshot{AverageCost: newCost.StringFixed(2)})
			change := &entity.ProductChange{
				ProductID:   it.ProductID,
				UserID:      ops.userID,
				Kind:        entity.ChangeUpdated,
				Description: "Actualización de costo promedio por compra",
				Before:      before,
				After:       after,
				Note:        fmt.Sprintf("%s %s", ops.kind.Label, ops.docID),
			}
			if err := r.History.Create(change); err != nil {
				return err
			}
		}
	}
	return nil
}

// postPayments expande cada pago lógico y persiste el pago y sus asientos.
func postPayments(r Repos, ops docOps, payments []PaymentInput, today time.Time) error {
	for _, in := range payments {
		payment, entries := ExpandPayment(ops.kind, ops.docID, ops.counterparty, ops.date, ops.userID, in, today)
		if err := r.Payments.Create(payment); err != nil {
			return err
		}
		for _, entry := range entries {
			if err := r.Ledger.Create(entry); err != nil {
				return err
			}
		}
	}
	return nil
}
