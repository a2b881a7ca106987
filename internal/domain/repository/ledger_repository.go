package repository

import (
	"time"

	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

// LedgerFilter filtros de listado de asientos financieros. El rango de fechas
// filtra por fecha de VENCIMIENTO, no por fecha de registro.
type LedgerFilter struct {
	Type       string
	Method     string
	EmployeeID string
	PurchaseID string
	SaleID     string
	DueFrom    *time.Time
	DueTo      *time.Time
	Limit      int
	Offset     int
}

// LedgerRepository puerto de persistencia para el libro financiero.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	GetByID(id string) (*entity.LedgerEntry, error)
	Update(entry *entity.LedgerEntry) error
	Delete(id string) error
	List(filter LedgerFilter) ([]*entity.LedgerEntry, int, error)
	// ListByDueDateRange devuelve los asientos con vencimiento dentro del
	// rango (extremos opcionales), para los resúmenes financieros.
	ListByDueDateRange(from, to *time.Time) ([]*entity.LedgerEntry, error)
	// ListUnpaidDueBetween devuelve asientos sin pagar con vencimiento en el
	// rango, ordenados por vencimiento ascendente.
	ListUnpaidDueBetween(from, to time.Time) ([]*entity.LedgerEntry, error)
	ListByPurchase(purchaseID string) ([]*entity.LedgerEntry, error)
	ListBySale(saleID string) ([]*entity.LedgerEntry, error)
	DeleteByPurchase(purchaseID string) error
	DeleteBySale(saleID string) error
}
