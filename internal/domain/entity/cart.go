package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem línea de un carrito. No se persiste por separado: vive dentro de Cart.
type CartItem struct {
	Product  Product
	Quantity int // >= 1
}

// Subtotal precio del producto por la cantidad.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart carrito de compras.
// UserID es una referencia débil al dueño (solo la cédula); se resuelve bajo demanda
// contra el repositorio de usuarios y puede quedar colgando.
type Cart struct {
	Code      int
	CreatedAt time.Time
	UserID    string
	Items     []CartItem
}

// Total suma de subtotales de los items.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// HasOwner indica si el carrito tiene un usuario asociado.
func (c *Cart) HasOwner() bool {
	return c.UserID != ""
}
