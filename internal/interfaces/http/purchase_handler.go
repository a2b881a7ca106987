package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/application/posting"
)

// PurchaseHandler maneja las peticiones HTTP de compras.
type PurchaseHandler struct {
	uc       *posting.PurchaseUseCase
	validate *validator.Validate
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *posting.PurchaseUseCase, validate *validator.Validate) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, validate: validate}
}

// Create registra una compra completa: líneas, entradas de stock, costo
// promedio y pagos con sus asientos.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return badRequest(c, err.Error())
	}
	payments, err := toPaymentInputs(in.Payments)
	if err != nil {
		return badRequest(c, err.Error())
	}

	purchase, err := h.uc.Create(c.Context(), posting.DocumentInput{
		Counterparty: in.SupplierName,
		Date:         date,
		Discount:     in.Discount,
		UserID:       in.UserID,
		Note:         in.Note,
		Items:        toItemInputs(in.Items),
		Payments:     payments,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromPurchase(purchase))
}

// GetByID devuelve una compra con líneas y pagos.
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	purchase, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.FromPurchase(purchase))
}

// List devuelve compras paginadas.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()

	purchases, total, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, dto.FromPurchase(p))
	}
	return c.JSON(fiber.Map{
		"purchases": out,
		"page":      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// Delete elimina la compra con sus movimientos y asientos.
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
