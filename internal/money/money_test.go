package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFromCentsToCentsRoundTrip(t *testing.T) {
	assert.Equal(t, int64(22400), ToCents(FromCents(22400)))
	assert.Equal(t, "224", FromCents(22400).String())
	assert.Equal(t, int64(0), ToCents(decimal.Zero))
}

func TestToCentsRounds(t *testing.T) {
	// redondeo half-up a 2 decimales
	assert.Equal(t, int64(1001), ToCents(decimal.RequireFromString("10.005")))
	assert.Equal(t, int64(1000), ToCents(decimal.RequireFromString("10.004")))
}

func TestLine(t *testing.T) {
	unit := FromCents(10000) // ₱100.00
	assert.Equal(t, "200.00", Line(unit, 2).StringFixed(2))
	assert.Equal(t, "0.00", Line(unit, 0).StringFixed(2))
}

func TestTaxTwelvePercent(t *testing.T) {
	assert.Equal(t, "24.00", Tax(decimal.RequireFromString("200")).StringFixed(2))
	// 12% de 10.10 = 1.212 -> 1.21
	assert.Equal(t, "1.21", Tax(decimal.RequireFromString("10.10")).StringFixed(2))
}

func TestTaxAvoidsFloatDrift(t *testing.T) {
	// 0.1+0.2 clásico: con decimales el subtotal de 3 líneas de 0.10
	// da exactamente 0.30 y su impuesto 0.04
	subtotal := decimal.Zero
	for i := 0; i < 3; i++ {
		subtotal = subtotal.Add(Line(FromCents(10), 1))
	}
	assert.Equal(t, "0.30", subtotal.StringFixed(2))
	assert.Equal(t, "0.04", Tax(subtotal).StringFixed(2))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "₱224.00", FormatCents(22400))
	assert.Equal(t, "₱0.00", Format(decimal.Zero))
	assert.Equal(t, "₱26.00", Format(decimal.RequireFromString("26")))
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, "250.00", FromFloat(250.0).StringFixed(2))
	assert.Equal(t, "19.99", FromFloat(19.99).StringFixed(2))
}
