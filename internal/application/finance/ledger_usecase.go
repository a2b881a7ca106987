package finance

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

// EntryInput entrada de un asiento manual (nómina, alquiler, gastos varios).
// Los asientos generados por compras y ventas no pasan por aquí.
type EntryInput struct {
	Type       string
	Amount     decimal.Decimal
	DueDate    *time.Time
	PaidDate   *time.Time
	Method     string
	EmployeeID string
	Note       string
}

// LedgerUseCase administra asientos financieros manuales y las consultas del
// libro. Los asientos atados a una compra o venta son inmutables: solo el
// motor de registro los crea y elimina.
type LedgerUseCase struct {
	ledger    repository.LedgerRepository
	employees repository.EmployeeRepository
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso. now permite fijar el reloj en
// tests; nil usa time.Now.
func NewLedgerUseCase(ledger repository.LedgerRepository, employees repository.EmployeeRepository, now func() time.Time) *LedgerUseCase {
	if now == nil {
		now = time.Now
	}
	return &LedgerUseCase{ledger: ledger, employees: employees, now: now}
}

func (uc *LedgerUseCase) validate(in EntryInput) error {
	if in.Type != entity.EntryDebit && in.Type != entity.EntryCredit {
		return fmt.Errorf("%w: tipo de asiento desconocido (%s)", domain.ErrInvalidInput, in.Type)
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: valor inválido", domain.ErrInvalidInput)
	}
	if in.Note == "" {
		return fmt.Errorf("%w: descripción requerida", domain.ErrInvalidInput)
	}
	if in.PaidDate != nil && in.Method == "" {
		return fmt.Errorf("%w: forma de pago requerida al informar fecha de pago", domain.ErrInvalidInput)
	}
	if in.Method != "" && !entity.ValidPaymentMethod(in.Method) {
		return fmt.Errorf("%w: forma de pago desconocida (%s)", domain.ErrInvalidInput, in.Method)
	}
	return nil
}

// Create registra un asiento manual. Si lleva EmployeeID, el empleado debe
// existir.
func (uc *LedgerUseCase) Create(ctx context.Context, userID string, in EntryInput) (*entity.LedgerEntry, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	var employeeID *string
	if in.EmployeeID != "" {
		employee, err := uc.employees.GetByID(in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if employee == nil {
			return nil, fmt.Errorf("empleado %s: %w", in.EmployeeID, domain.ErrNotFound)
		}
		employeeID = &in.EmployeeID
	}

	entry := &entity.LedgerEntry{
		ID:          uuid.New().String(),
		Type:        in.Type,
		Amount:      in.Amount,
		PostingDate: schedule.NormalizeDate(uc.now()),
		DueDate:     normalizeOptional(in.DueDate),
		PaidDate:    normalizeOptional(in.PaidDate),
		Method:      in.Method,
		EmployeeID:  employeeID,
		UserID:      userID,
		Note:        in.Note,
	}
	if err := uc.ledger.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update modifica un asiento manual. Los asientos generados por una compra o
// venta no se editan sueltos: se corrige el documento.
func (uc *LedgerUseCase) Update(ctx context.Context, id string, in EntryInput) (*entity.LedgerEntry, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	entry, err := uc.ledger.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	if entry.PurchaseID != nil || entry.SaleID != nil {
		return nil, fmt.Errorf("%w: el asiento pertenece a un documento", domain.ErrConflict)
	}

	var employeeID *string
	if in.EmployeeID != "" {
		employee, err := uc.employees.GetByID(in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if employee == nil {
			return nil, fmt.Errorf("empleado %s: %w", in.EmployeeID, domain.ErrNotFound)
		}
		employeeID = &in.EmployeeID
	}

	entry.Type = in.Type
	entry.Amount = in.Amount
	entry.DueDate = normalizeOptional(in.DueDate)
	entry.PaidDate = normalizeOptional(in.PaidDate)
	entry.Method = in.Method
	entry.EmployeeID = employeeID
	entry.Note = in.Note
	if err := uc.ledger.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete elimina un asiento manual. Los asientos de documentos se eliminan
// solo junto con su compra o venta.
func (uc *LedgerUseCase) Delete(ctx context.Context, id string) error {
	entry, err := uc.ledger.GetByID(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNotFound
	}
	if entry.PurchaseID != nil || entry.SaleID != nil {
		return fmt.Errorf("%w: el asiento pertenece a un documento", domain.ErrConflict)
	}
	return uc.ledger.Delete(id)
}

// GetByID devuelve el asiento o ErrNotFound.
func (uc *LedgerUseCase) GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	entry, err := uc.ledger.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// List devuelve asientos paginados según el filtro y el total de registros.
func (uc *LedgerUseCase) List(ctx context.Context, filter repository.LedgerFilter) ([]*entity.LedgerEntry, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.ledger.List(filter)
}

// ListUpcoming devuelve los asientos sin pagar con vencimiento entre hoy y
// hoy + days (30 por defecto), ordenados por vencimiento.
func (uc *LedgerUseCase) ListUpcoming(ctx context.Context, days int) ([]*entity.LedgerEntry, error) {
	if days <= 0 {
		days = 30
	}
	today := schedule.NormalizeDate(uc.now())
	return uc.ledger.ListUnpaidDueBetween(today, today.AddDate(0, 0, days))
}

func normalizeOptional(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	n := schedule.NormalizeDate(*t)
	return &n
}
