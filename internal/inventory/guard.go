// Package inventory es el único punto donde se lee y valida stock
// para un checkout. El descuento real ocurre dentro de la unidad
// atómica del repositorio de transacciones.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"retail-pos/internal/models"
)

var (
	// ErrProductNotFound indica un id inexistente, borrado o inactivo.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidQuantity indica una cantidad menor a 1 (cantidad 0 se
	// rechaza, no se saltea).
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// InsufficientStockError detalla la primera línea sin stock suficiente.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	name := e.Name
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("insufficient stock for %s: %d available, %d requested", name, e.Available, e.Requested)
}

// Line es una línea solicitada de checkout: producto y cantidad.
type Line struct {
	ProductID string
	Quantity  int64
}

// ProductStore es la vista mínima del catálogo que necesita el guard.
type ProductStore interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

// Guard valida disponibilidad de stock contra el catálogo.
type Guard struct {
	products ProductStore
}

func NewGuard(products ProductStore) *Guard {
	return &Guard{products: products}
}

// Lookup trae los productos de cada línea, en el orden recibido.
// Rechaza cantidades inválidas y productos inexistentes o inactivos
// antes de tocar nada más.
func (g *Guard) Lookup(ctx context.Context, lines []Line) ([]*models.Product, error) {
	products := make([]*models.Product, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, ErrInvalidQuantity)
		}
		product, err := g.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.IsDeleted || !product.IsActive {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, ErrProductNotFound)
		}
		products = append(products, product)
	}
	return products, nil
}

// CheckStock falla rápido en la primera línea cuya cantidad supera el
// stock disponible, siempre en el orden en que llegaron las líneas.
func (g *Guard) CheckStock(lines []Line, products []*models.Product) error {
	for i, line := range lines {
		if line.Quantity > products[i].Stock {
			return &InsufficientStockError{
				ProductID: line.ProductID,
				Name:      products[i].Name,
				Available: products[i].Stock,
				Requested: line.Quantity,
			}
		}
	}
	return nil
}

// Validate combina Lookup y CheckStock para quien solo necesita el
// resultado final.
func (g *Guard) Validate(ctx context.Context, lines []Line) ([]*models.Product, error) {
	products, err := g.Lookup(ctx, lines)
	if err != nil {
		return nil, err
	}
	if err := g.CheckStock(lines, products); err != nil {
		return nil, err
	}
	return products, nil
}
