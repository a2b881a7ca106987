package posting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

// memStore almacén en memoria compartido por los repositorios fake.
type memStore struct {
	products      map[string]*entity.Product
	users         map[string]*entity.User
	employees     map[string]*entity.Employee
	purchases     map[string]*entity.Purchase
	purchaseItems []*entity.PurchaseItem
	sales         map[string]*entity.Sale
	saleItems     []*entity.SaleItem
	payments      []*entity.Payment
	movements     []*entity.StockMovement
	entries       []*entity.LedgerEntry
	changes       []*entity.ProductChange
	lockedReads   []string // productos leídos con bloqueo de fila
	nextID        int
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		users:     make(map[string]*entity.User),
		employees: make(map[string]*entity.Employee),
		purchases: make(map[string]*entity.Purchase),
		sales:     make(map[string]*entity.Sale),
	}
}

func (s *memStore) id() string {
	s.nextID++
	return fmt.Sprintf("mem-%d", s.nextID)
}

func (s *memStore) repos() Repos {
	return Repos{
		Purchases: &memPurchaseRepo{s},
		Sales:     &memSaleRepo{s},
		Payments:  &memPaymentRepo{s},
		Movements: &memMovementRepo{s},
		Ledger:    &memLedgerRepo{s},
		Products:  &memProductRepo{s},
		Users:     &memUserRepo{s},
		Employees: &memEmployeeRepo{s},
		History:   &memHistoryRepo{s},
	}
}

// memTxRunner ejecuta el callback directamente sobre el almacén. Los casos de
// error de los tests fallan antes de la primera escritura, así que no hace
// falta emular rollback.
type memTxRunner struct {
	store *memStore
}

func (m memTxRunner) RunPosting(_ context.Context, fn func(r Repos) error) error {
	return fn(m.store.repos())
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}

func (r *memProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	r.s.lockedReads = append(r.s.lockedReads, id)
	return r.s.products[id], nil
}

func (r *memProductRepo) UpdateAverageCost(productID string, cost decimal.Decimal) error {
	if p, ok := r.s.products[productID]; ok {
		p.AverageCost = cost
	}
	return nil
}

func (r *memProductRepo) ListTracked() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.TracksInventory && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	return r.s.users[id], nil
}

type memEmployeeRepo struct{ s *memStore }

func (r *memEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	return r.s.employees[id], nil
}

type memPurchaseRepo struct{ s *memStore }

func (r *memPurchaseRepo) Create(purchase *entity.Purchase) error {
	r.s.purchases[purchase.ID] = purchase
	return nil
}

func (r *memPurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	r.s.purchaseItems = append(r.s.purchaseItems, item)
	return nil
}

func (r *memPurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	return r.s.purchases[id], nil
}

func (r *memPurchaseRepo) ListItems(purchaseID string) ([]*entity.PurchaseItem, error) {
	var out []*entity.PurchaseItem
	for _, it := range r.s.purchaseItems {
		if it.PurchaseID == purchaseID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memPurchaseRepo) List(limit, offset int) ([]*entity.Purchase, int, error) {
	var out []*entity.Purchase
	for _, p := range r.s.purchases {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *memPurchaseRepo) Delete(id string) error {
	delete(r.s.purchases, id)
	var items []*entity.PurchaseItem
	for _, it := range r.s.purchaseItems {
		if it.PurchaseID != id {
			items = append(items, it)
		}
	}
	r.s.purchaseItems = items
	var payments []*entity.Payment
	for _, p := range r.s.payments {
		if p.PurchaseID == nil || *p.PurchaseID != id {
			payments = append(payments, p)
		}
	}
	r.s.payments = payments
	return nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	r.s.sales[sale.ID] = sale
	return nil
}

func (r *memSaleRepo) Update(sale *entity.Sale) error {
	r.s.sales[sale.ID] = sale
	return nil
}

func (r *memSaleRepo) CreateItem(item *entity.SaleItem) error {
	r.s.saleItems = append(r.s.saleItems, item)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.s.sales[id], nil
}

func (r *memSaleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.s.saleItems {
		if it.SaleID == saleID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memSaleRepo) DeleteItems(saleID string) error {
	var items []*entity.SaleItem
	for _, it := range r.s.saleItems {
		if it.SaleID != saleID {
			items = append(items, it)
		}
	}
	r.s.saleItems = items
	return nil
}

func (r *memSaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, int, error) {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r *memSaleRepo) Delete(id string) error {
	delete(r.s.sales, id)
	_ = r.DeleteItems(id)
	var payments []*entity.Payment
	for _, p := range r.s.payments {
		if p.SaleID == nil || *p.SaleID != id {
			payments = append(payments, p)
		}
	}
	r.s.payments = payments
	return nil
}

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) Create(payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = r.s.id()
	}
	r.s.payments = append(r.s.payments, payment)
	return nil
}

func (r *memPaymentRepo) ListByPurchase(purchaseID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.PurchaseID != nil && *p.PurchaseID == purchaseID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) ListBySale(saleID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.SaleID != nil && *p.SaleID == saleID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) DeleteBySale(saleID string) error {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.SaleID == nil || *p.SaleID != saleID {
			out = append(out, p)
		}
	}
	r.s.payments = out
	return nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = r.s.id()
	}
	r.s.movements = append(r.s.movements, movement)
	return nil
}

func (r *memMovementRepo) Balance(productID string) (int, error) {
	balance := 0
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if m.Type == entity.MovementIn {
			balance += m.Quantity
		} else {
			balance -= m.Quantity
		}
	}
	return balance, nil
}

func (r *memMovementRepo) Balances() (map[string]int, error) {
	out := make(map[string]int)
	for _, m := range r.s.movements {
		if m.Type == entity.MovementIn {
			out[m.ProductID] += m.Quantity
		} else {
			out[m.ProductID] -= m.Quantity
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) DeleteByPurchase(purchaseID string) error {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.PurchaseID == nil || *m.PurchaseID != purchaseID {
			out = append(out, m)
		}
	}
	r.s.movements = out
	return nil
}

func (r *memMovementRepo) DeleteBySale(saleID string) error {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.SaleID == nil || *m.SaleID != saleID {
			out = append(out, m)
		}
	}
	r.s.movements = out
	return nil
}

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Create(entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = r.s.id()
	}
	r.s.entries = append(r.s.entries, entry)
	return nil
}

func (r *memLedgerRepo) GetByID(id string) (*entity.LedgerEntry, error) {
	for _, e := range r.s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *memLedgerRepo) Update(entry *entity.LedgerEntry) error {
	for i, e := range r.s.entries {
		if e.ID == entry.ID {
			r.s.entries[i] = entry
		}
	}
	return nil
}

func (r *memLedgerRepo) Delete(id string) error {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	r.s.entries = out
	return nil
}

func (r *memLedgerRepo) List(filter repository.LedgerFilter) ([]*entity.LedgerEntry, int, error) {
	return r.s.entries, len(r.s.entries), nil
}

func (r *memLedgerRepo) ListByDueDateRange(from, to *time.Time) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.DueDate == nil {
			continue
		}
		if from != nil && e.DueDate.Before(*from) {
			continue
		}
		if to != nil && e.DueDate.After(*to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *memLedgerRepo) ListUnpaidDueBetween(from, to time.Time) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.PaidDate != nil || e.DueDate == nil {
			continue
		}
		if e.DueDate.Before(from) || e.DueDate.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *memLedgerRepo) ListByPurchase(purchaseID string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.PurchaseID != nil && *e.PurchaseID == purchaseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) ListBySale(saleID string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.SaleID != nil && *e.SaleID == saleID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) DeleteByPurchase(purchaseID string) error {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.PurchaseID == nil || *e.PurchaseID != purchaseID {
			out = append(out, e)
		}
	}
	r.s.entries = out
	return nil
}

func (r *memLedgerRepo) DeleteBySale(saleID string) error {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.SaleID == nil || *e.SaleID != saleID {
			out = append(out, e)
		}
	}
	r.s.entries = out
	return nil
}

type memHistoryRepo struct{ s *memStore }

func (r *memHistoryRepo) Create(change *entity.ProductChange) error {
	if change.ID == "" {
		change.ID = r.s.id()
	}
	r.s.changes = append(r.s.changes, change)
	return nil
}

func (r *memHistoryRepo) ListByProduct(productID string, limit, offset int) ([]*entity.ProductChange, error) {
	var out []*entity.ProductChange
	for _, c := range r.s.changes {
		if c.ProductID == productID {
			out = append(out, c)
		}
	}
	return out, nil
}
