package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"retail-pos/internal/models"
)

func cashTransaction() *models.Transaction {
	received := int64(25000)
	change := int64(2600)
	return &models.Transaction{
		ID:              primitive.NewObjectID(),
		ReferenceNumber: "TRX-20250115093042-4821",
		Items: []models.TransactionItem{
			{
				ProductID:      primitive.NewObjectID(),
				Name:           "Cola 1.5L",
				SKU:            "COLA-15",
				Quantity:       2,
				UnitPriceCents: 10000,
				LineTotalCents: 20000,
			},
		},
		SubtotalCents:       20000,
		TaxCents:            2400,
		DiscountCents:       0,
		TotalCents:          22400,
		PaymentMethod:       models.PaymentCash,
		AmountReceivedCents: &received,
		ChangeCents:         &change,
		CompletedAt:         time.Date(2025, time.January, 15, 9, 30, 42, 0, time.UTC),
	}
}

func TestAssembleCashReceipt(t *testing.T) {
	asm := NewAssembler("MY STORE", "Professional Point of Sale")
	r := asm.Assemble(cashTransaction())

	assert.Equal(t, "MY STORE", r.Header.StoreName)
	assert.Equal(t, "Professional Point of Sale", r.Header.Tagline)
	assert.Equal(t, "TRX-20250115093042-4821", r.Header.ReferenceNumber)
	assert.Equal(t, "1/15/2025, 9:30:42 AM", r.Header.Timestamp)

	require.Len(t, r.Lines, 1)
	assert.Equal(t, "Cola 1.5L", r.Lines[0].Name)
	assert.Equal(t, int64(2), r.Lines[0].Quantity)
	assert.Equal(t, "₱100.00", r.Lines[0].UnitPrice)
	assert.Equal(t, "₱200.00", r.Lines[0].LineTotal)

	assert.Equal(t, "₱200.00", r.Summary.Subtotal)
	assert.Equal(t, "Tax (12%)", r.Summary.TaxLabel)
	assert.Equal(t, "₱24.00", r.Summary.Tax)
	assert.Empty(t, r.Summary.Discount)
	assert.Equal(t, "₱224.00", r.Summary.Total)

	assert.Equal(t, "CASH", r.Payment.Method)
	assert.Equal(t, "₱250.00", r.Payment.AmountReceived)
	assert.Equal(t, "₱26.00", r.Payment.Change)
	assert.Empty(t, r.Payment.Reference)

	assert.Equal(t, "Thank You!", r.Footer)
}

func TestAssembleGcashReceipt(t *testing.T) {
	tx := cashTransaction()
	tx.PaymentMethod = models.PaymentGCash
	tx.AmountReceivedCents = nil
	tx.ChangeCents = nil
	tx.GcashReference = "GC-998877"

	r := NewAssembler("CELLUB", "Professional Point of Sale").Assemble(tx)

	assert.Equal(t, "GCASH", r.Payment.Method)
	assert.Equal(t, "GC-998877", r.Payment.Reference)
	assert.Empty(t, r.Payment.AmountReceived)
	assert.Empty(t, r.Payment.Change)
}

func TestAssembleShowsDiscount(t *testing.T) {
	tx := cashTransaction()
	tx.DiscountCents = 1000

	r := NewAssembler("MY STORE", "").Assemble(tx)
	assert.Equal(t, "-₱10.00", r.Summary.Discount)
}

func TestAssembleDisplaysPersistedValuesOnly(t *testing.T) {
	// montos deliberadamente inconsistentes: el recibo no recalcula,
	// muestra lo persistido tal cual
	tx := cashTransaction()
	tx.TotalCents = 99999

	r := NewAssembler("MY STORE", "").Assemble(tx)
	assert.Equal(t, "₱999.99", r.Summary.Total)
}

func TestAssembleIsIdempotent(t *testing.T) {
	asm := NewAssembler("MY STORE", "Professional Point of Sale")
	tx := cashTransaction()

	first := asm.Assemble(tx)
	second := asm.Assemble(tx)
	assert.Equal(t, first, second)
}
