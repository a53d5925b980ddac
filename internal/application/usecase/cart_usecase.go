package usecase

import (
	"time"

	"github.com/jhoicas/tienda-archivo/internal/application/dto"
	"github.com/jhoicas/tienda-archivo/internal/domain"
	"github.com/jhoicas/tienda-archivo/internal/domain/entity"
	"github.com/jhoicas/tienda-archivo/internal/domain/repository"
)

// CartUseCase casos de uso de carritos. El dueño se valida al crear, pero después
// es solo una referencia: borrar el usuario no toca sus carritos.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	users    repository.UserRepository
	now      func() time.Time
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository, users repository.UserRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products, users: users, now: time.Now}
}

// Create crea un carrito con los items indicados. UserID vacío = carrito sin dueño.
func (uc *CartUseCase) Create(in dto.CreateCartRequest) (*dto.CartResponse, error) {
	if in.UserID != "" {
		owner, err := uc.users.GetByID(in.UserID)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, domain.ErrUserNotFound
		}
	}
	items, err := uc.resolveItems(in.Items)
	if err != nil {
		return nil, err
	}
	cart := &entity.Cart{
		CreatedAt: uc.now().UTC().Truncate(time.Millisecond),
		UserID:    in.UserID,
		Items:     items,
	}
	if err := uc.carts.Create(cart); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// GetByCode obtiene un carrito; (nil, nil) si no existe.
func (uc *CartUseCase) GetByCode(code int) (*dto.CartResponse, error) {
	cart, err := uc.carts.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, nil
	}
	return toCartResponse(cart), nil
}

// ListByUser carritos de un usuario.
func (uc *CartUseCase) ListByUser(userID string) ([]dto.CartResponse, error) {
	list, err := uc.carts.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return toCartResponses(list), nil
}

// List lista carritos con paginación.
func (uc *CartUseCase) List(limit, offset int) (*dto.CartListResponse, error) {
	list, err := uc.carts.ListAll()
	if err != nil {
		return nil, err
	}
	return &dto.CartListResponse{
		Items: toCartResponses(paginate(list, limit, offset)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(list)},
	}, nil
}

// ReplaceItems reemplaza los items del carrito. (nil, nil) si el carrito no existe.
func (uc *CartUseCase) ReplaceItems(code int, in dto.ReplaceCartItemsRequest) (*dto.CartResponse, error) {
	cart, err := uc.carts.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, nil
	}
	items, err := uc.resolveItems(in.Items)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	if err := uc.carts.Update(cart); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// Delete elimina un carrito. domain.ErrNotFound si no existe.
func (uc *CartUseCase) Delete(code int) error {
	cart, err := uc.carts.GetByCode(code)
	if err != nil {
		return err
	}
	if cart == nil {
		return domain.ErrNotFound
	}
	return uc.carts.Delete(code)
}

// Owner resuelve el dueño del carrito. (nil, nil) si el carrito no tiene dueño
// o el usuario ya no existe.
func (uc *CartUseCase) Owner(code int) (*dto.UserResponse, error) {
	cart, err := uc.carts.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.ErrNotFound
	}
	if !cart.HasOwner() {
		return nil, nil
	}
	user, err := uc.users.GetByID(cart.UserID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// resolveItems busca cada producto por código y agrupa códigos repetidos.
func (uc *CartUseCase) resolveItems(in []dto.CartItemRequest) ([]entity.CartItem, error) {
	items := make([]entity.CartItem, 0, len(in))
	index := make(map[int]int, len(in))
	for _, req := range in {
		if req.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		if i, ok := index[req.ProductCode]; ok {
			items[i].Quantity += req.Quantity
			continue
		}
		product, err := uc.products.GetByCode(req.ProductCode)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		index[req.ProductCode] = len(items)
		items = append(items, entity.CartItem{Product: *product, Quantity: req.Quantity})
	}
	return items, nil
}

func toCartResponse(c *entity.Cart) *dto.CartResponse {
	if c == nil {
		return nil
	}
	items := make([]dto.CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.CartItemResponse{
			Product:  *toProductResponse(&it.Product),
			Quantity: it.Quantity,
			Subtotal: it.Subtotal(),
		})
	}
	return &dto.CartResponse{
		Code:      c.Code,
		CreatedAt: c.CreatedAt,
		UserID:    c.UserID,
		Items:     items,
		Total:     c.Total(),
	}
}

func toCartResponses(list []*entity.Cart) []dto.CartResponse {
	out := make([]dto.CartResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCartResponse(c))
	}
	return out
}
