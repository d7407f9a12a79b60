package rental

import (
	"fmt"
	"math/rand"
	"time"
)

const invoicePrefix = "GLAORD"

// maxInvoiceAttempts bounds the random-suffix retry loop before the
// timestamp fallback kicks in.
const maxInvoiceAttempts = 10

// FormatInvoiceNumber renders GLAORD-YYYYMMDD-NNNN.
func FormatInvoiceNumber(t time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", invoicePrefix, t.Format("20060102"), seq)
}

// GenerateInvoiceNumber produces a unique invoice number, probing the
// store through exists. It retries with a fresh random suffix on
// collision and falls back to a timestamp-derived suffix once the
// attempts are exhausted.
func GenerateInvoiceNumber(now time.Time, exists func(string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxInvoiceAttempts; attempt++ {
		candidate := FormatInvoiceNumber(now, rand.Intn(10000))
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return FormatInvoiceNumber(now, int(now.UnixNano()%10000)), nil
}
