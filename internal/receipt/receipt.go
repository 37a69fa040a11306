// Package receipt transforma una venta persistida en la estructura
// imprimible del recibo. No recalcula ningún monto: muestra exactamente
// lo que quedó en el registro durable, así el papel siempre coincide
// con la base.
package receipt

import (
	"strings"

	"retail-pos/internal/models"
	"retail-pos/internal/money"
)

const timestampLayout = "1/2/2006, 3:04:05 PM"

type Header struct {
	StoreName       string `json:"store_name"`
	Tagline         string `json:"tagline"`
	ReferenceNumber string `json:"reference_number"`
	Timestamp       string `json:"timestamp"`
}

type Line struct {
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type Summary struct {
	Subtotal string `json:"subtotal"`
	TaxLabel string `json:"tax_label"`
	Tax      string `json:"tax"`
	Discount string `json:"discount,omitempty"`
	Total    string `json:"total"`
}

// Payment muestra el bloque específico del método: efectivo lleva
// recibido y vuelto, gcash lleva el código de referencia.
type Payment struct {
	Method         string `json:"method"`
	AmountReceived string `json:"amount_received,omitempty"`
	Change         string `json:"change,omitempty"`
	Reference      string `json:"reference,omitempty"`
}

type Receipt struct {
	Header  Header  `json:"header"`
	Lines   []Line  `json:"lines"`
	Summary Summary `json:"summary"`
	Payment Payment `json:"payment"`
	Footer  string  `json:"footer"`
}

// Assembler arma recibos con la identidad del local.
type Assembler struct {
	storeName string
	tagline   string
}

func NewAssembler(storeName, tagline string) *Assembler {
	return &Assembler{storeName: storeName, tagline: tagline}
}

// Assemble es una transformación pura: misma venta, mismo recibo.
func (a *Assembler) Assemble(tx *models.Transaction) Receipt {
	lines := make([]Line, 0, len(tx.Items))
	for _, item := range tx.Items {
		lines = append(lines, Line{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: money.FormatCents(item.UnitPriceCents),
			LineTotal: money.FormatCents(item.LineTotalCents),
		})
	}

	summary := Summary{
		Subtotal: money.FormatCents(tx.SubtotalCents),
		TaxLabel: "Tax (12%)",
		Tax:      money.FormatCents(tx.TaxCents),
		Total:    money.FormatCents(tx.TotalCents),
	}
	if tx.DiscountCents > 0 {
		summary.Discount = "-" + money.FormatCents(tx.DiscountCents)
	}

	payment := Payment{Method: strings.ToUpper(string(tx.PaymentMethod))}
	switch tx.PaymentMethod {
	case models.PaymentCash:
		if tx.AmountReceivedCents != nil {
			payment.AmountReceived = money.FormatCents(*tx.AmountReceivedCents)
		}
		if tx.ChangeCents != nil {
			payment.Change = money.FormatCents(*tx.ChangeCents)
		}
	case models.PaymentGCash:
		payment.Reference = tx.GcashReference
	}

	return Receipt{
		Header: Header{
			StoreName:       a.storeName,
			Tagline:         a.tagline,
			ReferenceNumber: tx.ReferenceNumber,
			Timestamp:       tx.CompletedAt.Format(timestampLayout),
		},
		Lines:   lines,
		Summary: summary,
		Payment: payment,
		Footer:  "Thank You!",
	}
}
