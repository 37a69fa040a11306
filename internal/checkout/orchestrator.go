// Package checkout convierte un carrito enviado por el cliente en una
// venta durable: repreciado del lado servidor, validación de pago y
// stock, y persistencia atómica con número de referencia único.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"retail-pos/internal/inventory"
	"retail-pos/internal/models"
	"retail-pos/internal/money"
	"retail-pos/internal/refnum"
	"retail-pos/internal/repository"
)

var (
	// ErrEmptyCart: checkout sin líneas.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidDiscount: descuento negativo.
	ErrInvalidDiscount = errors.New("discount cannot be negative")
	// ErrDiscountExceedsTotal: el descuento supera subtotal + impuesto.
	// Política elegida: rechazar, no recortar a cero.
	ErrDiscountExceedsTotal = errors.New("discount exceeds total")
	// ErrInsufficientPayment: efectivo recibido menor al total.
	ErrInsufficientPayment = errors.New("insufficient payment")
	// ErrMissingReference: pago GCash sin código de referencia.
	ErrMissingReference = errors.New("gcash reference number is required")
	// ErrInvalidPaymentMethod: método distinto de cash/gcash.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Intentos de generación de referencia ante colisiones del índice único.
const maxReferenceAttempts = 5

// ItemInput es una línea enviada por el cliente. UnitPrice es solo
// informativo para la UI: los totales persistidos se recalculan con
// los precios actuales del catálogo.
type ItemInput struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Request es un intento de checkout completo.
type Request struct {
	Items          []ItemInput
	Discount       decimal.Decimal
	PaymentMethod  models.PaymentMethod
	AmountReceived decimal.Decimal
	GcashReference string
}

// TransactionStore persiste la venta, sus líneas y los descuentos de
// stock como una sola unidad: o se confirma todo o no queda nada.
type TransactionStore interface {
	InsertAtomic(ctx context.Context, tx *models.Transaction, decrements []inventory.Line) error
}

// Orchestrator coordina un intento de checkout de punta a punta.
type Orchestrator struct {
	guard *inventory.Guard
	store TransactionStore
	refs  *refnum.Generator
	now   func() time.Time
}

func New(guard *inventory.Guard, store TransactionStore, refs *refnum.Generator) *Orchestrator {
	return &Orchestrator{
		guard: guard,
		store: store,
		refs:  refs,
		now:   time.Now,
	}
}

// Checkout ejecuta un intento completo. Cualquier error se devuelve
// sin efectos secundarios: nada queda decrementado sin su venta
// persistida ni viceversa.
func (o *Orchestrator) Checkout(ctx context.Context, req Request) (*models.Transaction, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if req.Discount.IsNegative() {
		return nil, ErrInvalidDiscount
	}
	switch req.PaymentMethod {
	case models.PaymentCash:
	case models.PaymentGCash:
		// la referencia se exige antes de mirar stock
		if strings.TrimSpace(req.GcashReference) == "" {
			return nil, ErrMissingReference
		}
	default:
		return nil, ErrInvalidPaymentMethod
	}

	lines := make([]inventory.Line, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	products, err := o.guard.Lookup(ctx, lines)
	if err != nil {
		return nil, err
	}

	// precios autoritativos del catálogo, nunca los del request
	subtotal := decimal.Zero
	items := make([]models.TransactionItem, 0, len(lines))
	for i, product := range products {
		lineTotal := money.Line(money.FromCents(product.PriceCents), lines[i].Quantity)
		subtotal = subtotal.Add(lineTotal)
		items = append(items, models.TransactionItem{
			ProductID:      product.ID,
			Name:           product.Name,
			SKU:            product.SKU,
			Quantity:       lines[i].Quantity,
			UnitPriceCents: product.PriceCents,
			LineTotalCents: money.ToCents(lineTotal),
		})
	}
	subtotal = subtotal.Round(2)
	tax := money.Tax(subtotal)
	discount := req.Discount.Round(2)
	if discount.GreaterThan(subtotal.Add(tax)) {
		return nil, ErrDiscountExceedsTotal
	}
	total := subtotal.Add(tax).Sub(discount)

	tx := &models.Transaction{
		Items:         items,
		SubtotalCents: money.ToCents(subtotal),
		TaxCents:      money.ToCents(tax),
		DiscountCents: money.ToCents(discount),
		TotalCents:    money.ToCents(total),
		PaymentMethod: req.PaymentMethod,
	}

	switch req.PaymentMethod {
	case models.PaymentCash:
		received := req.AmountReceived.Round(2)
		if received.LessThan(total) {
			return nil, ErrInsufficientPayment
		}
		receivedCents := money.ToCents(received)
		changeCents := money.ToCents(received.Sub(total))
		tx.AmountReceivedCents = &receivedCents
		tx.ChangeCents = &changeCents
	case models.PaymentGCash:
		tx.GcashReference = strings.TrimSpace(req.GcashReference)
	}

	if err := o.guard.CheckStock(lines, products); err != nil {
		return nil, err
	}

	tx.CompletedAt = o.now()
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		tx.ReferenceNumber = o.refs.Next()
		err := o.store.InsertAtomic(ctx, tx, lines)
		if err == nil {
			return tx, nil
		}
		if errors.Is(err, repository.ErrDuplicateReference) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("could not allocate a unique reference number after %d attempts", maxReferenceAttempts)
}
