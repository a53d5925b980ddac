package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-archivo/internal/application/dto"
	"github.com/jhoicas/tienda-archivo/internal/domain"
	"github.com/jhoicas/tienda-archivo/internal/domain/entity"
	"github.com/jhoicas/tienda-archivo/internal/domain/repository"
)

// Producto que se crea cuando el catálogo arranca vacío.
const (
	SeedProductName  = "Balon Molten 7"
	SeedProductPrice = "30.00"
)

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. Si Code es 0 se usa el siguiente código libre.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() || in.Code < 0 {
		return nil, domain.ErrInvalidInput
	}
	code := in.Code
	if code == 0 {
		next, err := uc.repo.NextCode()
		if err != nil {
			return nil, err
		}
		code = next
	} else {
		existing, err := uc.repo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	product := &entity.Product{Code: code, Name: name, Price: in.Price}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByCode(code int) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Search busca por prefijo de nombre.
func (uc *ProductUseCase) Search(prefix string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.SearchByName(prefix)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(paginate(list, limit, offset)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(list)},
	}, nil
}

// Update reemplaza nombre y/o precio. (nil, nil) si el producto no existe.
func (uc *ProductUseCase) Update(code int, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. domain.ErrNotFound si no existe.
func (uc *ProductUseCase) Delete(code int) error {
	product, err := uc.repo.GetByCode(code)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(code)
}

// EnsureSeed crea el producto inicial si el catálogo está vacío. Devuelve true si lo creó.
func (uc *ProductUseCase) EnsureSeed() (bool, error) {
	list, err := uc.repo.ListAll()
	if err != nil {
		return false, err
	}
	if len(list) > 0 {
		return false, nil
	}
	seed := &entity.Product{Code: 1, Name: SeedProductName, Price: decimal.RequireFromString(SeedProductPrice)}
	if err := uc.repo.Create(seed); err != nil {
		return false, fmt.Errorf("producto inicial: %w", err)
	}
	return true, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{Code: p.Code, Name: p.Name, Price: p.Price}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}
