package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee representa un funcionario (vendedor, bodeguero, etc.). El CRUD de
// funcionarios vive fuera del motor; aquí solo se referencia.
type Employee struct {
	ID        string
	Name      string
	Role      string
	Salary    decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
