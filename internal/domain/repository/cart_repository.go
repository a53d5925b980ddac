package repository

import "github.com/jhoicas/tienda-archivo/internal/domain/entity"

// CartRepository define el puerto de persistencia para Cart.
// Create asigna Code (máximo existente + 1) sobre el carrito recibido.
type CartRepository interface {
	Create(cart *entity.Cart) error
	GetByCode(code int) (*entity.Cart, error)
	ListByUser(userID string) ([]*entity.Cart, error)
	Update(cart *entity.Cart) error
	Delete(code int) error
	ListAll() ([]*entity.Cart, error)
}
