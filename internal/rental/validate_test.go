package rental

import (
	"testing"
	"time"
)

func TestValidateDateRange(t *testing.T) {
	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		valid bool
	}{
		{"valid range", base, base.Add(24 * time.Hour), true},
		{"exactly one hour", base, base.Add(time.Hour), true},
		{"under one hour", base, base.Add(30 * time.Minute), false},
		{"end before start", base, base.Add(-time.Hour), false},
		{"end equals start", base, base, false},
		{"missing start", time.Time{}, base, false},
		{"missing end", base, time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateDateRange(tt.start, tt.end)
			if got.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (error: %q)", got.Valid, tt.valid, got.Error)
			}
			if !got.Valid && got.Error == "" {
				t.Error("invalid result must carry an error message")
			}
		})
	}
}

func TestClampReturnedQuantity(t *testing.T) {
	if got := ClampReturnedQuantity(-5, 10); got.Valid {
		t.Errorf("negative input must be invalid, got %+v", got)
	}

	got := ClampReturnedQuantity(15, 10)
	if !got.Valid || got.Clamped != 10 || got.Warning == "" {
		t.Errorf("over-max input should clamp with warning, got %+v", got)
	}

	got = ClampReturnedQuantity(7, 10)
	if !got.Valid || got.Clamped != 7 || got.Warning != "" {
		t.Errorf("in-range input should pass untouched, got %+v", got)
	}

	got = ClampReturnedQuantity(0, 10)
	if !got.Valid || got.Clamped != 0 {
		t.Errorf("zero is a valid returned quantity, got %+v", got)
	}
}

func TestValidateFee(t *testing.T) {
	if got := ValidateFee(-1); got.Valid {
		t.Errorf("negative fee must be an error, got %+v", got)
	}
	if got := ValidateFee(0); !got.Valid || got.Clamped != 0 {
		t.Errorf("zero fee should pass, got %+v", got)
	}
	if got := ValidateFee(150.50); !got.Valid || got.Clamped != 150.50 {
		t.Errorf("positive fee should pass unchanged, got %+v", got)
	}
}

func TestValidateDamageDescription(t *testing.T) {
	if ValidateDamageDescription(100, "") {
		t.Error("fee without description must fail")
	}
	if ValidateDamageDescription(100, "   ") {
		t.Error("whitespace-only description must fail")
	}
	if !ValidateDamageDescription(100, "bent tripod leg") {
		t.Error("fee with description must pass")
	}
	if !ValidateDamageDescription(0, "") {
		t.Error("no fee needs no description")
	}
}

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name    string
		product string
		qty     int
		price   float64
		photo   string
		valid   bool
	}{
		{"complete item", "DSLR Camera", 1, 500, "https://cdn.example.com/cam.jpg", true},
		{"empty name", "", 1, 500, "https://cdn.example.com/cam.jpg", false},
		{"zero quantity", "Tripod", 0, 100, "https://cdn.example.com/t.jpg", false},
		{"zero price", "Tripod", 1, 0, "https://cdn.example.com/t.jpg", false},
		{"missing photo", "Tripod", 1, 100, "", false},
		{"local preview photo", "Tripod", 1, 100, "blob:http://localhost/abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateItem(tt.product, tt.qty, tt.price, tt.photo)
			if got.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (error: %q)", got.Valid, tt.valid, got.Error)
			}
		})
	}
}
