package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItemRequest producto y cantidad a agregar.
type CartItemRequest struct {
	ProductCode int `json:"product_code"`
	Quantity    int `json:"quantity"`
}

// CreateCartRequest entrada para crear un carrito.
type CreateCartRequest struct {
	UserID string            `json:"user_id"`
	Items  []CartItemRequest `json:"items"`
}

// ReplaceCartItemsRequest reemplaza todos los items del carrito.
type ReplaceCartItemsRequest struct {
	Items []CartItemRequest `json:"items"`
}

// CartItemResponse línea del carrito.
type CartItemResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartResponse salida de un carrito.
type CartResponse struct {
	Code      int                `json:"code"`
	CreatedAt time.Time          `json:"created_at"`
	UserID    string             `json:"user_id,omitempty"`
	Items     []CartItemResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
}

// CartListResponse listado de carritos.
type CartListResponse struct {
	Items []CartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
