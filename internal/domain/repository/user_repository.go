package repository

import "github.com/tu-usuario/retail-backoffice/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios operadores.
// El motor solo necesita verificar existencia.
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
}
