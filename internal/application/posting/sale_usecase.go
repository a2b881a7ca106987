package posting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
	"github.com/tu-usuario/retail-backoffice/internal/domain/schedule"
)

// SaleUseCase registra ventas: cabecera, líneas, salidas de stock y pagos con
// sus asientos financieros, en una sola transacción. A diferencia de las
// compras, las ventas se pueden editar: la edición revierte el stock de las
// líneas anteriores, reemplaza líneas, pagos y asientos, y registra todo de
// nuevo.
type SaleUseCase struct {
	txRunner TxRunner
	sales    repository.SaleRepository
	payments repository.PaymentRepository
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso. now permite fijar el reloj en
// tests; nil usa time.Now.
func NewSaleUseCase(
	txRunner TxRunner,
	sales repository.SaleRepository,
	payments repository.PaymentRepository,
	now func() time.Time,
) *SaleUseCase {
	if now == nil {
		now = time.Now
	}
	return &SaleUseCase{
		txRunner: txRunner,
		sales:    sales,
		payments: payments,
		now:      now,
	}
}

func (uc *SaleUseCase) validate(in DocumentInput) error {
	if err := validateDocument(in); err != nil {
		return err
	}
	if in.Counterparty == "" {
		return fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	if in.EmployeeID == "" {
		return fmt.Errorf("%w: vendedor requerido", domain.ErrInvalidInput)
	}
	return nil
}

// Create valida la entrada, registra la venta completa y la devuelve con sus
// relaciones cargadas. Cualquier fallo revierte todas las escrituras.
// La sobreventa está permitida: el saldo de stock puede quedar negativo.
func (uc *SaleUseCase) Create(ctx context.Context, in DocumentInput) (*entity.Sale, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}

	var created *entity.Sale
	err := uc.txRunner.RunPosting(ctx, func(r Repos) error {
		items, total, err := uc.prepare(r, in)
		if err != nil {
			return err
		}

		date := schedule.NormalizeDate(in.Date)
		sale := &entity.Sale{
			ID:           uuid.New().String(),
			CustomerName: in.Counterparty,
			Street:       in.Street,
			District:     in.District,
			City:         in.City,
			Number:       in.Number,
			Date:         date,
			Total:        total,
			Discount:     in.Discount,
			EmployeeID:   in.EmployeeID,
			UserID:       in.UserID,
			Note:         in.Note,
		}
		if err := r.Sales.Create(sale); err != nil {
			return err
		}

		ops := uc.ops(r, sale, fmt.Sprintf("Salida por venta - Cliente: %s", sale.CustomerName))
		if err := postItems(r, ops, items, false); err != nil {
			return err
		}
		if err := postPayments(r, ops, in.Payments, uc.now()); err != nil {
			return err
		}

		created, err = loadSale(r.Sales, r.Payments, sale.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update edita una venta existente. Dentro de la transacción: registra
// movimientos IN que revierten las salidas de las líneas anteriores, elimina
// líneas, pagos y asientos anteriores, actualiza la cabecera y registra
// líneas, salidas y pagos nuevos como en Create. El efecto neto sobre el
// stock es la diferencia entre las cantidades viejas y nuevas.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in DocumentInput) (*entity.Sale, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}

	var updated *entity.Sale
	err := uc.txRunner.RunPosting(ctx, func(r Repos) error {
		sale, err := r.Sales.GetByID(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}

		items, total, err := uc.prepare(r, in)
		if err != nil {
			return err
		}

		// Revertir el stock de las líneas anteriores.
		oldItems, err := r.Sales.ListItems(id)
		if err != nil {
			return err
		}
		date := schedule.NormalizeDate(in.Date)
		saleRef := id
		for _, old := range oldItems {
			mov := &entity.StockMovement{
				ProductID: old.ProductID,
				Type:      entity.MovementIn,
				Quantity:  old.Quantity,
				UnitPrice: old.UnitPrice,
				Date:      date,
				SaleID:    &saleRef,
				UserID:    in.UserID,
				Note:      "Devolución por edición de venta",
			}
			if err := r.Movements.Create(mov); err != nil {
				return err
			}
		}
		if err := r.Sales.DeleteItems(id); err != nil {
			return err
		}
		if err := r.Payments.DeleteBySale(id); err != nil {
			return err
		}
		if err := r.Ledger.DeleteBySale(id); err != nil {
			return err
		}

		sale.CustomerName = in.Counterparty
		sale.Street = in.Street
		sale.District = in.District
		sale.City = in.City
		sale.Number = in.Number
		sale.Date = date
		sale.Total = total
		sale.Discount = in.Discount
		sale.EmployeeID = in.EmployeeID
		sale.Note = in.Note
		if err := r.Sales.Update(sale); err != nil {
			return err
		}

		ops := uc.ops(r, sale, fmt.Sprintf("Salida por venta (editada) - Cliente: %s", sale.CustomerName))
		ops.userID = in.UserID
		if err := postItems(r, ops, items, false); err != nil {
			return err
		}
		if err := postPayments(r, ops, in.Payments, uc.now()); err != nil {
			return err
		}

		updated, err = loadSale(r.Sales, r.Payments, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetByID devuelve la venta con líneas y pagos, o ErrNotFound.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return loadSale(uc.sales, uc.payments, id)
}

// List devuelve ventas paginadas (solo cabeceras) según el filtro y el total
// de registros.
func (uc *SaleUseCase) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.sales.List(filter)
}

// Delete elimina la venta junto con sus movimientos de stock y asientos
// financieros, en una transacción. Las líneas y pagos caen en cascada.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunPosting(ctx, func(r Repos) error {
		existing, err := r.Sales.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if err := r.Movements.DeleteBySale(id); err != nil {
			return err
		}
		if err := r.Ledger.DeleteBySale(id); err != nil {
			return err
		}
		return r.Sales.Delete(id)
	})
}

// prepare valida operador y vendedor, procesa las líneas y concilia pagos.
func (uc *SaleUseCase) prepare(r Repos, in DocumentInput) ([]processedItem, decimal.Decimal, error) {
	user, err := r.Users.GetByID(in.UserID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if user == nil {
		return nil, decimal.Zero, domain.ErrUserNotFound
	}
	employee, err := r.Employees.GetByID(in.EmployeeID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if employee == nil {
		return nil, decimal.Zero, fmt.Errorf("vendedor %s: %w", in.EmployeeID, domain.ErrNotFound)
	}

	items, itemsTotal, err := processItems(r.Products, in.Items)
	if err != nil {
		return nil, decimal.Zero, err
	}
	total := documentTotal(itemsTotal, in.Discount)
	if err := reconcilePayments(in.Payments, total); err != nil {
		return nil, decimal.Zero, err
	}
	return items, total, nil
}

// ops arma el docOps de una venta, con la persistencia de línea.
func (uc *SaleUseCase) ops(r Repos, sale *entity.Sale, note string) docOps {
	return docOps{
		kind:         SaleKind,
		docID:        sale.ID,
		counterparty: sale.CustomerName,
		date:         sale.Date,
		userID:       sale.UserID,
		movementNote: note,
		saveItem: func(it processedItem) error {
			return r.Sales.CreateItem(&entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Total:     it.Total,
			})
		},
	}
}

// loadSale carga la venta con líneas y pagos usando los repositorios
// recibidos (atados a la tx o al pool, según el llamador).
func loadSale(sales repository.SaleRepository, payments repository.PaymentRepository, id string) (*entity.Sale, error) {
	sale, err := sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := sales.ListItems(id)
	if err != nil {
		return nil, err
	}
	pays, err := payments.ListBySale(id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	sale.Payments = pays
	return sale, nil
}
