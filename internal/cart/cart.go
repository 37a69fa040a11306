// Package cart mantiene la selección pendiente del cajero. Es estado
// puramente en memoria, propiedad de una sola sesión: nunca habla con
// la base ni valida stock (eso lo hace el checkout, que es la
// autoridad).
package cart

import (
	"github.com/shopspring/decimal"

	"retail-pos/internal/inventory"
	"retail-pos/internal/models"
	"retail-pos/internal/money"
)

// Item es una línea del carrito con nombre y precio congelados al
// momento de agregarla.
type Item struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// Cart es la colección ordenada de líneas seleccionadas.
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// AddItem suma cantidad a la línea existente del producto o agrega una
// nueva con snapshot de nombre y precio actuales.
func (c *Cart) AddItem(product *models.Product, quantity int64) {
	if quantity < 1 {
		quantity = 1
	}
	id := product.ID.Hex()
	for i := range c.items {
		if c.items[i].ProductID == id {
			c.items[i].Quantity += quantity
			return
		}
	}
	c.items = append(c.items, Item{
		ProductID: id,
		Name:      product.Name,
		SKU:       product.SKU,
		UnitPrice: money.FromCents(product.PriceCents),
		Quantity:  quantity,
	})
}

// UpdateQuantity fija la cantidad de una línea; con cantidad <= 0 la
// línea se elimina. Si el producto no está, no hace nada.
func (c *Cart) UpdateQuantity(productID string, quantity int64) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem quita la línea del producto si existe.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Subtotal acumula precio × cantidad con decimales de precisión fija,
// redondeado a 2 decimales.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.items {
		subtotal = subtotal.Add(money.Line(item.UnitPrice, item.Quantity))
	}
	return subtotal.Round(2)
}

// Items devuelve una copia de las líneas en orden de inserción.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Lines proyecta el carrito a las líneas que consume el checkout.
func (c *Cart) Lines() []inventory.Line {
	lines := make([]inventory.Line, 0, len(c.items))
	for _, item := range c.items {
		lines = append(lines, inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}

// Clear vacía el carrito (se llama tras un checkout exitoso).
func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}
