package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentMethod indica cómo pagó el cliente
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentGCash PaymentMethod = "gcash"
)

// Transaction es el registro durable de una venta completada.
// Los items viven embebidos en el documento: no existen sin su venta
// y se insertan junto con ella en una sola escritura.
type Transaction struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ReferenceNumber     string             `json:"reference_number" bson:"reference_number"`
	Items               []TransactionItem  `json:"items" bson:"items"`
	SubtotalCents       int64              `json:"subtotal_cents" bson:"subtotal_cents"`
	TaxCents            int64              `json:"tax_cents" bson:"tax_cents"`
	DiscountCents       int64              `json:"discount_cents" bson:"discount_cents"`
	TotalCents          int64              `json:"total_cents" bson:"total_cents"`
	PaymentMethod       PaymentMethod      `json:"payment_method" bson:"payment_method"`
	AmountReceivedCents *int64             `json:"amount_received_cents,omitempty" bson:"amount_received_cents,omitempty"`
	ChangeCents         *int64             `json:"change_cents,omitempty" bson:"change_cents,omitempty"`
	GcashReference      string             `json:"gcash_reference,omitempty" bson:"gcash_reference,omitempty"`
	CompletedAt         time.Time          `json:"completed_at" bson:"completed_at"`
}

// TransactionItem es una línea de venta. Nombre, SKU y precio quedan
// congelados al momento de la venta: ediciones posteriores del catálogo
// no alteran el historial.
type TransactionItem struct {
	ProductID      primitive.ObjectID `json:"product_id" bson:"product_id"`
	Name           string             `json:"name" bson:"name"`
	SKU            string             `json:"sku" bson:"sku"`
	Quantity       int64              `json:"quantity" bson:"quantity"`
	UnitPriceCents int64              `json:"unit_price_cents" bson:"unit_price_cents"`
	LineTotalCents int64              `json:"line_total_cents" bson:"line_total_cents"`
}
