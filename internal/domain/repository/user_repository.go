package repository

import "github.com/jhoicas/tienda-archivo/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	ListAll() ([]*entity.User, error)
}
