package imaging

import (
	"math/rand/v2"
	"strings"
)

const correlationIDTemplate = "xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx"

// NewCorrelationID produces a 36-character lowercase identifier in UUID v4
// layout. It is only a correlation token for the external workflow, not a
// credential, so a non-cryptographic source is enough.
func NewCorrelationID() string {
	var b strings.Builder
	b.Grow(len(correlationIDTemplate))

	for _, c := range correlationIDTemplate {
		switch c {
		case 'x':
			b.WriteByte(hexDigit(rand.IntN(16)))
		case 'y':
			// Variant nibble: one of 8, 9, a, b.
			b.WriteByte(hexDigit(8 + rand.IntN(4)))
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func hexDigit(n int) byte {
	if n < 10 {
		return byte('0' + n)
	}
	return byte('a' + n - 10)
}
