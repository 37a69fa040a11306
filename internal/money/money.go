// Package money concentra la aritmética de moneda del POS.
// Los montos persistidos son centavos (int64); todo cálculo intermedio
// usa decimales de precisión fija, nunca acumulación binaria flotante.
package money

import (
	"github.com/shopspring/decimal"
)

// TaxRate es la tasa de impuesto aplicada a toda venta (12%).
var TaxRate = decimal.New(12, -2)

// FromCents convierte centavos persistidos a decimal.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCents redondea a 2 decimales y devuelve el monto en centavos.
func ToCents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// FromFloat convierte un número JSON del cliente a decimal redondeado
// a 2 decimales. Solo se usa para montos advisory del request.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// Line calcula el total de una línea: precio unitario × cantidad.
func Line(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity)).Round(2)
}

// Tax calcula el impuesto del 12% sobre el subtotal.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(2)
}

// Format presenta un monto para el recibo: ₱ y 2 decimales fijos.
func Format(d decimal.Decimal) string {
	return "₱" + d.StringFixed(2)
}

// FormatCents presenta centavos persistidos para el recibo.
func FormatCents(cents int64) string {
	return Format(FromCents(cents))
}
