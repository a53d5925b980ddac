package repository

import "github.com/jhoicas/tienda-archivo/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las búsquedas devuelven (nil, nil) cuando no existe el registro.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByCode(code int) (*entity.Product, error)
	SearchByName(prefix string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(code int) error
	ListAll() ([]*entity.Product, error)
	NextCode() (int, error)
}
