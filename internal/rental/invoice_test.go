package rental

import (
	"errors"
	"regexp"
	"testing"
	"time"
)

var invoicePattern = regexp.MustCompile(`^GLAORD-\d{8}-\d{4}$`)

func TestFormatInvoiceNumber(t *testing.T) {
	at := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	got := FormatInvoiceNumber(at, 42)
	if got != "GLAORD-20260315-0042" {
		t.Errorf("FormatInvoiceNumber = %q", got)
	}
}

func TestGenerateInvoiceNumber(t *testing.T) {
	at := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	got, err := GenerateInvoiceNumber(at, func(string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatal(err)
	}
	if !invoicePattern.MatchString(got) {
		t.Errorf("invoice %q does not match the expected format", got)
	}
}

func TestGenerateInvoiceNumberRetriesOnCollision(t *testing.T) {
	at := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	probes := 0
	got, err := GenerateInvoiceNumber(at, func(string) (bool, error) {
		probes++
		return probes < 3, nil // first two candidates collide
	})
	if err != nil {
		t.Fatal(err)
	}
	if probes != 3 {
		t.Errorf("expected 3 probes, got %d", probes)
	}
	if !invoicePattern.MatchString(got) {
		t.Errorf("invoice %q does not match the expected format", got)
	}
}

func TestGenerateInvoiceNumberTimestampFallback(t *testing.T) {
	at := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	probes := 0
	got, err := GenerateInvoiceNumber(at, func(string) (bool, error) {
		probes++
		return true, nil // everything collides
	})
	if err != nil {
		t.Fatal(err)
	}
	if probes != 10 {
		t.Errorf("expected 10 bounded attempts, got %d", probes)
	}
	if !invoicePattern.MatchString(got) {
		t.Errorf("fallback invoice %q does not match the expected format", got)
	}
}

func TestGenerateInvoiceNumberProbeError(t *testing.T) {
	at := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	probeErr := errors.New("store unavailable")
	_, err := GenerateInvoiceNumber(at, func(string) (bool, error) { return false, probeErr })
	if !errors.Is(err, probeErr) {
		t.Errorf("expected probe error to propagate, got %v", err)
	}
}
