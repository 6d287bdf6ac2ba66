package util

import (
	"testing"
)

func TestParseAmount_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0.01", "0.01"},
		{"1", "1.00"},
		{"100.5", "100.50"},
		{"9999999.99", "9999999.99"},
	}

	for _, tc := range cases {
		d, err := ParseAmount(tc.in)
		if err != nil {
			t.Errorf("ParseAmount(%q) error = %v, want nil", tc.in, err)
			continue
		}
		if got := d.StringFixed(2); got != tc.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	cases := []string{
		"",
		"0",
		"0.00",
		"-0.01",
		"-100",
		"0.001",   // three decimal places
		"1.005",   // three decimal places
		"abc",
		"1.2.3",
		"100000000", // upper bound
	}

	for _, in := range cases {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("ParseAmount(%q) error = nil, want error", in)
		}
	}
}

func TestParseDate_Valid(t *testing.T) {
	cases := []string{
		"2024-01-01",
		"2024-12-31",
		"2025-06-15",
	}

	for _, in := range cases {
		d, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v, want nil", in, err)
			continue
		}
		if got := d.Format("2006-01-02"); got != in {
			t.Errorf("ParseDate(%q) round-trips to %s", in, got)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	cases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, in := range cases {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", in)
		}
	}
}

func TestValidateTransactionType(t *testing.T) {
	if err := ValidateTransactionType("income"); err != nil {
		t.Errorf("income should be valid: %v", err)
	}
	if err := ValidateTransactionType("expense"); err != nil {
		t.Errorf("expense should be valid: %v", err)
	}
	for _, in := range []string{"", "savings", "Income", "EXPENSE"} {
		if err := ValidateTransactionType(in); err == nil {
			t.Errorf("ValidateTransactionType(%q) error = nil, want error", in)
		}
	}
}

func TestValidateCategoryName(t *testing.T) {
	if err := ValidateCategoryName("Food"); err != nil {
		t.Errorf("Food should be valid: %v", err)
	}
	if err := ValidateCategoryName(""); err == nil {
		t.Error("empty name should be rejected")
	}

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateCategoryName(string(long)); err == nil {
		t.Error("overlong name should be rejected")
	}
}
