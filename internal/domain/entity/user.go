package entity

import "time"

// User representa un usuario operador del sistema. La autenticación queda
// fuera del motor; aquí solo se verifica existencia.
type User struct {
	ID        string
	Name      string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
