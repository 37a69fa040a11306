// Package refnum genera los números de referencia legibles de las
// ventas: TRX-20250115093042-4821. La unicidad real la garantiza el
// índice único del almacenamiento; ante colisión el checkout vuelve a
// generar.
package refnum

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	prefix       = "TRX"
	suffixMin    = 1000
	suffixSpread = 9000 // sufijo en [1000, 9999]
)

// Generator produce referencias con timestamp al segundo y sufijo
// numérico aleatorio de 4 dígitos.
type Generator struct {
	now  func() time.Time
	intN func(int) int
}

func New() *Generator {
	return &Generator{
		now:  time.Now,
		intN: rand.Intn,
	}
}

// Next devuelve la siguiente referencia candidata.
func (g *Generator) Next() string {
	stamp := g.now().Format("20060102150405")
	suffix := suffixMin + g.intN(suffixSpread)
	return fmt.Sprintf("%s-%s-%04d", prefix, stamp, suffix)
}
