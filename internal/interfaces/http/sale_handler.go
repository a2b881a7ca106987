package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/application/posting"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	uc       *posting.SaleUseCase
	validate *validator.Validate
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *posting.SaleUseCase, validate *validator.Validate) *SaleHandler {
	return &SaleHandler{uc: uc, validate: validate}
}

// parseInput interpreta y valida el body. No escribe la respuesta: el error
// devuelto es el que el handler traduce a 400.
func (h *SaleHandler) parseInput(c *fiber.Ctx) (posting.DocumentInput, error) {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return posting.DocumentInput{}, errors.New("cuerpo inválido")
	}
	if err := h.validate.Struct(in); err != nil {
		return posting.DocumentInput{}, err
	}
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return posting.DocumentInput{}, err
	}
	payments, err := toPaymentInputs(in.Payments)
	if err != nil {
		return posting.DocumentInput{}, err
	}
	return posting.DocumentInput{
		Counterparty: in.CustomerName,
		Street:       in.Street,
		District:     in.District,
		City:         in.City,
		Number:       in.Number,
		Date:         date,
		Discount:     in.Discount,
		EmployeeID:   in.EmployeeID,
		UserID:       in.UserID,
		Note:         in.Note,
		Items:        toItemInputs(in.Items),
		Payments:     payments,
	}, nil
}

// Create registra una venta completa: líneas, salidas de stock y pagos con
// sus asientos.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	sale, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromSale(sale))
}

// Update edita una venta: revierte stock anterior y reemplaza líneas, pagos y
// asientos.
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	sale, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.FromSale(sale))
}

// GetByID devuelve una venta con líneas y pagos.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.FromSale(sale))
}

// List devuelve ventas paginadas con filtros opcionales de cliente y rango de
// fechas.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()
	from, err := dto.ParseOptionalDate(c.Query("from"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	to, err := dto.ParseOptionalDate(c.Query("to"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	sales, total, err := h.uc.List(c.Context(), repository.SaleFilter{
		CustomerName: c.Query("customer"),
		From:         from,
		To:           to,
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.FromSale(s))
	}
	return c.JSON(fiber.Map{
		"sales": out,
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// Delete elimina la venta con sus movimientos y asientos.
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
