package posting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
	"github.com/tu-usuario/retail-backoffice/internal/domain/schedule"
)

// PurchaseUseCase registra compras: cabecera, líneas, entradas de stock con
// actualización de costo promedio y pagos con sus asientos financieros, todo
// en una sola transacción. Las compras son inmutables: se corrigen borrando
// y registrando de nuevo.
type PurchaseUseCase struct {
	txRunner  TxRunner
	purchases repository.PurchaseRepository
	payments  repository.PaymentRepository
	now       func() time.Time
}

// NewPurchaseUseCase construye el caso de uso. now permite fijar el reloj en
// tests; nil usa time.Now.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchases repository.PurchaseRepository,
	payments repository.PaymentRepository,
	now func() time.Time,
) *PurchaseUseCase {
	if now == nil {
		now = time.Now
	}
	return &PurchaseUseCase{
		txRunner:  txRunner,
		purchases: purchases,
		payments:  payments,
		now:       now,
	}
}

// Create valida la entrada, registra la compra completa y la devuelve con sus
// relaciones cargadas. Cualquier fallo revierte todas las escrituras.
func (uc *PurchaseUseCase) Create(ctx context.Context, in DocumentInput) (*entity.Purchase, error) {
	if err := validateDocument(in); err != nil {
		return nil, err
	}
	if in.Counterparty == "" {
		return nil, fmt.Errorf("%w: proveedor requerido", domain.ErrInvalidInput)
	}

	var created *entity.Purchase
	err := uc.txRunner.RunPosting(ctx, func(r Repos) error {
		user, err := r.Users.GetByID(in.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

		items, itemsTotal, err := processItems(r.Products, in.Items)
		if err != nil {
			return err
		}
		total := documentTotal(itemsTotal, in.Discount)
		if err := reconcilePayments(in.Payments, total); err != nil {
			return err
		}

		date := schedule.NormalizeDate(in.Date)
		purchase := &entity.Purchase{
			ID:           uuid.New().String(),
			SupplierName: in.Counterparty,
			Date:         date,
			Total:        total,
			Discount:     in.Discount,
			UserID:       in.UserID,
			Note:         in.Note,
		}
		if err := r.Purchases.Create(purchase); err != nil {
			return err
		}

		ops := docOps{
			kind:         PurchaseKind,
			docID:        purchase.ID,
			counterparty: purchase.SupplierName,
			date:         date,
			userID:       in.UserID,
			movementNote: fmt.Sprintf("Entrada por compra - Proveedor: %s", purchase.SupplierName),
			saveItem: func(it processedItem) error {
				return r.Purchases.CreateItem(&entity.PurchaseItem{
					ID:         uuid.New().String(),
					PurchaseID: purchase.ID,
					ProductID:  it.ProductID,
					Quantity:   it.Quantity,
					UnitPrice:  it.UnitPrice,
					Total:      it.Total,
				})
			},
		}
		if err := postItems(r, ops, items, true); err != nil {
			return err
		}
		if err := postPayments(r, ops, in.Payments, uc.now()); err != nil {
			return err
		}

		created, err = loadPurchase(r.Purchases, r.Payments, purchase.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID devuelve la compra con líneas y pagos, o ErrNotFound.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	return loadPurchase(uc.purchases, uc.payments, id)
}

// List devuelve compras paginadas (solo cabeceras) y el total de registros.
func (uc *PurchaseUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Purchase, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.purchases.List(limit, offset)
}

// Delete elimina la compra junto con sus movimientos de stock y asientos
// financieros, en una transacción. Las líneas y pagos caen en cascada.
// El costo promedio de los productos NO se recalcula hacia atrás.
func (uc *PurchaseUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunPosting(ctx, func(r Repos) error {
		existing, err := r.Purchases.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if err := r.Movements.DeleteByPurchase(id); err != nil {
			return err
		}
		if err := r.Ledger.DeleteByPurchase(id); err != nil {
			return err
		}
		return r.Purchases.Delete(id)
	})
}

// loadPurchase carga la compra con líneas y pagos usando los repositorios
// recibidos (atados a la tx o al pool, según el llamador).
func loadPurchase(purchases repository.PurchaseRepository, payments repository.PaymentRepository, id string) (*entity.Purchase, error) {
	purchase, err := purchases.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	items, err := purchases.ListItems(id)
	if err != nil {
		return nil, err
	}
	pays, err := payments.ListByPurchase(id)
	if err != nil {
		return nil, err
	}
	purchase.Items = items
	purchase.Payments = pays
	return purchase, nil
}
