package entity

import (
	"encoding/json"
	"time"
)

// Tipos de cambio registrados en el historial de producto.
const (
	ChangeCreated     = "CREATED"
	ChangeUpdated     = "UPDATED"
	ChangeDeleted     = "DELETED"
	ChangeActivated   = "ACTIVATED"
	ChangeDeactivated = "DEACTIVATED"
)

// ProductChange registro de auditoría de un producto (antes/después en JSON).
// El motor de compras lo usa para dejar rastro del cambio de costo promedio.
type ProductChange struct {
	ID          string
	ProductID   string
	UserID      string
	Kind        string
	Description string
	Before      json.RawMessage
	After       json.RawMessage
	Note        string
	CreatedAt   time.Time
}
