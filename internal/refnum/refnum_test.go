package refnum

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refPattern = regexp.MustCompile(`^TRX-\d{14}-\d{4}$`)

func TestNextFormat(t *testing.T) {
	g := New()
	for i := 0; i < 50; i++ {
		ref := g.Next()
		assert.Regexp(t, refPattern, ref)
	}
}

func TestNextUsesClockAndRand(t *testing.T) {
	g := New()
	g.now = func() time.Time {
		return time.Date(2025, time.January, 15, 9, 30, 42, 0, time.UTC)
	}
	g.intN = func(n int) int {
		require.Equal(t, 9000, n)
		return 3821
	}

	assert.Equal(t, "TRX-20250115093042-4821", g.Next())
}

func TestSuffixBounds(t *testing.T) {
	g := New()
	g.now = func() time.Time { return time.Unix(0, 0).UTC() }

	g.intN = func(int) int { return 0 }
	assert.Regexp(t, `-1000$`, g.Next())

	g.intN = func(n int) int { return n - 1 }
	assert.Regexp(t, `-9999$`, g.Next())
}
