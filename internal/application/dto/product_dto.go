package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto. Code = 0 asigna el siguiente libre.
type CreateProductRequest struct {
	Code  int             `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// UpdateProductRequest reemplazo completo de un producto.
type UpdateProductRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	Code  int             `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductListResponse listado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
