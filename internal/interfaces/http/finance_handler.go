package http

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/application/finance"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

// FinanceHandler maneja las peticiones HTTP del libro financiero: asientos
// manuales, listados, próximos vencimientos y resúmenes.
type FinanceHandler struct {
	ledger   *finance.LedgerUseCase
	summary  *finance.SummaryUseCase
	validate *validator.Validate
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(ledger *finance.LedgerUseCase, summary *finance.SummaryUseCase, validate *validator.Validate) *FinanceHandler {
	return &FinanceHandler{ledger: ledger, summary: summary, validate: validate}
}

// parseEntry interpreta y valida el body. No escribe la respuesta: el error
// devuelto es el que el handler traduce a 400.
func (h *FinanceHandler) parseEntry(c *fiber.Ctx) (finance.EntryInput, string, error) {
	var in dto.CreateLedgerEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return finance.EntryInput{}, "", errors.New("cuerpo inválido")
	}
	if err := h.validate.Struct(in); err != nil {
		return finance.EntryInput{}, "", err
	}
	due, err := dto.ParseOptionalDate(in.DueDate)
	if err != nil {
		return finance.EntryInput{}, "", err
	}
	paid, err := dto.ParseOptionalDate(in.PaidDate)
	if err != nil {
		return finance.EntryInput{}, "", err
	}
	return finance.EntryInput{
		Type:       in.Type,
		Amount:     in.Amount,
		DueDate:    due,
		PaidDate:   paid,
		Method:     in.Method,
		EmployeeID: in.EmployeeID,
		Note:       in.Note,
	}, in.UserID, nil
}

// CreateEntry registra un asiento manual.
func (h *FinanceHandler) CreateEntry(c *fiber.Ctx) error {
	in, userID, err := h.parseEntry(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	entry, err := h.ledger.Create(c.Context(), userID, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromLedgerEntry(entry))
}

// UpdateEntry modifica un asiento manual.
func (h *FinanceHandler) UpdateEntry(c *fiber.Ctx) error {
	in, _, err := h.parseEntry(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	entry, err := h.ledger.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.FromLedgerEntry(entry))
}

// DeleteEntry elimina un asiento manual.
func (h *FinanceHandler) DeleteEntry(c *fiber.Ctx) error {
	if err := h.ledger.Delete(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetEntry devuelve un asiento.
func (h *FinanceHandler) GetEntry(c *fiber.Ctx) error {
	entry, err := h.ledger.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.FromLedgerEntry(entry))
}

// ListEntries devuelve asientos paginados con filtros opcionales.
func (h *FinanceHandler) ListEntries(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()
	dueFrom, err := dto.ParseOptionalDate(c.Query("due_from"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	dueTo, err := dto.ParseOptionalDate(c.Query("due_to"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	entries, total, err := h.ledger.List(c.Context(), repository.LedgerFilter{
		Type:       c.Query("type"),
		Method:     c.Query("method"),
		EmployeeID: c.Query("employee_id"),
		PurchaseID: c.Query("purchase_id"),
		SaleID:     c.Query("sale_id"),
		DueFrom:    dueFrom,
		DueTo:      dueTo,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromLedgerEntry(e))
	}
	return c.JSON(fiber.Map{
		"entries": out,
		"page":    dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// Upcoming devuelve los asientos sin pagar con vencimiento en los próximos
// días (30 por defecto).
func (h *FinanceHandler) Upcoming(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))
	entries, err := h.ledger.ListUpcoming(c.Context(), days)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromLedgerEntry(e))
	}
	return c.JSON(fiber.Map{"entries": out})
}

// Summary devuelve el resumen financiero del rango de vencimientos.
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	from, err := dto.ParseOptionalDate(c.Query("from"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	to, err := dto.ParseOptionalDate(c.Query("to"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	summary, err := h.summary.Summarize(c.Context(), from, to)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.FromSummary(summary))
}
