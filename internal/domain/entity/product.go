package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// AverageCost es el costo promedio ponderado y solo lo muta el motor de
// compras; carece de significado cuando TracksInventory es false.
type Product struct {
	ID              string
	Name            string
	Description     string
	Brand           string
	Color           string
	SalePrice       decimal.Decimal
	AverageCost     decimal.Decimal
	TracksInventory bool
	MinStock        int // umbral mínimo para alertas de stock bajo
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
