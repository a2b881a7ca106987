package repository

import "github.com/tu-usuario/retail-backoffice/internal/domain/entity"

// EmployeeRepository puerto de persistencia para funcionarios (vendedores).
type EmployeeRepository interface {
	GetByID(id string) (*entity.Employee, error)
}
