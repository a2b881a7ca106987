package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/application/stock"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

// AdjustStockRequest body para POST /api/stock/:productId/adjust.
// Delta positivo entra stock, negativo lo saca.
type AdjustStockRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	UserID string `json:"user_id" validate:"required,uuid4"`
	Note   string `json:"note,omitempty"`
}

// ProductStockResponse saldo de un producto.
type ProductStockResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Balance     int             `json:"balance"`
	MinStock    int             `json:"min_stock"`
	Low         bool            `json:"low"`
	AverageCost decimal.Decimal `json:"average_cost"`
}

// StockMovementResponse fila del extracto de stock.
type StockMovementResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Type       string          `json:"type"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Date       string          `json:"date"`
	PurchaseID *string         `json:"purchase_id,omitempty"`
	SaleID     *string         `json:"sale_id,omitempty"`
	Note       string          `json:"note,omitempty"`
}

// ProductChangeResponse fila del historial de cambios de un producto.
type ProductChangeResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	UserID      string          `json:"user_id"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Before      json.RawMessage `json:"before,omitempty"`
	After       json.RawMessage `json:"after,omitempty"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FromProductStock arma la respuesta de saldo de un producto.
func FromProductStock(ps *stock.ProductStock) ProductStockResponse {
	return ProductStockResponse{
		ProductID:   ps.Product.ID,
		ProductName: ps.Product.Name,
		Balance:     ps.Balance,
		MinStock:    ps.Product.MinStock,
		Low:         ps.Low,
		AverageCost: ps.Product.AverageCost,
	}
}

// FromProductChange arma la respuesta de una fila del historial.
func FromProductChange(c *entity.ProductChange) ProductChangeResponse {
	return ProductChangeResponse{
		ID:          c.ID,
		ProductID:   c.ProductID,
		UserID:      c.UserID,
		Kind:        c.Kind,
		Description: c.Description,
		Before:      c.Before,
		After:       c.After,
		Note:        c.Note,
		CreatedAt:   c.CreatedAt,
	}
}

// FromStockMovement arma la respuesta de un movimiento.
func FromStockMovement(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		Date:       FormatDate(m.Date),
		PurchaseID: m.PurchaseID,
		SaleID:     m.SaleID,
		Note:       m.Note,
	}
}
