package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/application/stock"
)

// StockHandler maneja las peticiones HTTP del lado de lectura de stock y los
// ajustes manuales.
type StockHandler struct {
	uc       *stock.UseCase
	validate *validator.Validate
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase, validate *validator.Validate) *StockHandler {
	return &StockHandler{uc: uc, validate: validate}
}

// Overview devuelve el saldo de todos los productos con control de inventario.
func (h *StockHandler) Overview(c *fiber.Ctx) error {
	all, err := h.uc.Overview(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.ProductStockResponse, 0, len(all))
	for _, ps := range all {
		out = append(out, dto.FromProductStock(ps))
	}
	return c.JSON(fiber.Map{"stock": out})
}

// LowStock devuelve los productos con saldo en o por debajo del mínimo.
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	low, err := h.uc.LowStock(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.ProductStockResponse, 0, len(low))
	for _, ps := range low {
		out = append(out, dto.FromProductStock(ps))
	}
	return c.JSON(fiber.Map{"stock": out})
}

// Balance devuelve el saldo y el extracto de un producto.
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	if page.Limit <= 0 {
		page.Limit = 50
	}
	from, err := dto.ParseOptionalDate(c.Query("from"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	to, err := dto.ParseOptionalDate(c.Query("to"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	ps, movements, err := h.uc.Balance(c.Context(), c.Params("productId"), from, to, page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	moves := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		moves = append(moves, dto.FromStockMovement(m))
	}
	return c.JSON(fiber.Map{
		"stock":     dto.FromProductStock(ps),
		"movements": moves,
	})
}

// History devuelve el historial de cambios de un producto.
func (h *StockHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	if page.Limit <= 0 {
		page.Limit = 50
	}
	changes, err := h.uc.History(c.Context(), c.Params("productId"), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.ProductChangeResponse, 0, len(changes))
	for _, ch := range changes {
		out = append(out, dto.FromProductChange(ch))
	}
	return c.JSON(fiber.Map{"history": out})
}

// Adjust registra una corrección manual de inventario.
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	mov, err := h.uc.Adjust(c.Context(), c.Params("productId"), in.Delta, in.UserID, in.Note)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromStockMovement(mov))
}
