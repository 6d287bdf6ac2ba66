package util

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a decimal amount string and validates it:
// at least 0.01, at most two decimal places, below an upper bound.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	if d.LessThan(decimal.NewFromFloat(0.01)) {
		return decimal.Zero, fmt.Errorf("amount must be at least 0.01, got %s", d)
	}
	if d.GreaterThanOrEqual(decimal.NewFromInt(100_000_000)) {
		return decimal.Zero, fmt.Errorf("amount too large, got %s", d)
	}
	return d, nil
}

// ParseDate parses a calendar date in YYYY-MM-DD form, normalized to
// midnight UTC so month-range queries compare cleanly.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t.UTC(), nil
}

// ValidateTransactionType checks the type is one of the two enumerated values.
func ValidateTransactionType(t string) error {
	if t != "income" && t != "expense" {
		return fmt.Errorf("type must be income or expense, got %q", t)
	}
	return nil
}

// ValidateCategoryName checks a category name is present and within bounds.
func ValidateCategoryName(name string) error {
	if name == "" {
		return fmt.Errorf("category name is empty")
	}
	if len(name) > 100 {
		return fmt.Errorf("category name too long, max 100 characters")
	}
	return nil
}
