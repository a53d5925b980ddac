package entity

import "github.com/shopspring/decimal"

// Product representa un producto de la tienda. Code es la llave única.
// Se reemplaza completo; no hay actualización parcial.
type Product struct {
	Code  int
	Name  string
	Price decimal.Decimal
}
