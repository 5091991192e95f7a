package repositories

import (
	"fiber-tms/models"
	"fiber-tms/types"
	"testing"
	"time"
)

func TestDeriveInvoiceStatus(t *testing.T) {
	now := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		paid    float64
		total   float64
		dueDate *time.Time
		want    models.InvoiceStatus
	}{
		{"nothing paid", 0, 1000000, &future, models.InvoicePending},
		{"nothing paid no due date", 0, 1000000, nil, models.InvoicePending},
		{"nothing paid past due", 0, 1000000, &past, models.InvoiceOverdue},
		{"partially paid", 400000, 1000000, &future, models.InvoicePartial},
		{"partially paid past due stays partial", 400000, 1000000, &past, models.InvoicePartial},
		{"exactly paid", 1000000, 1000000, &future, models.InvoicePaid},
		{"paid past due", 1000000, 1000000, &past, models.InvoicePaid},
		{"zero total", 0, 0, nil, models.InvoicePending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveInvoiceStatus(tt.paid, tt.total, tt.dueDate, now)
			if got != tt.want {
				t.Errorf("deriveInvoiceStatus(%f, %f) = %s, want %s", tt.paid, tt.total, got, tt.want)
			}
		})
	}
}

func TestValidatePaymentPartialThenOverpayment(t *testing.T) {
	// Invoice total 1,000,000: a 400,000 payment passes, then a 700,000
	// payment against the updated paid amount must be rejected because
	// only 600,000 remains outstanding.
	if err := validatePayment(0, 1000000, 400000); err != nil {
		t.Fatalf("first partial payment rejected: %v", err)
	}

	err := validatePayment(400000, 1000000, 700000)
	if err == nil {
		t.Fatal("expected overpayment error")
	}
	if kindOf(t, err) != types.ErrOverpayment {
		t.Errorf("expected overpayment kind, got %v", err)
	}
}

func TestValidatePaymentExactSettlement(t *testing.T) {
	if err := validatePayment(400000, 1000000, 600000); err != nil {
		t.Errorf("paying the exact outstanding balance must pass: %v", err)
	}
}

func TestValidatePaymentNonPositiveAmount(t *testing.T) {
	for _, amount := range []float64{0, -100} {
		err := validatePayment(0, 1000000, amount)
		if err == nil {
			t.Fatalf("amount %f should be rejected", amount)
		}
		if kindOf(t, err) != types.ErrValidation {
			t.Errorf("amount %f: expected validation_failed, got %v", amount, err)
		}
	}
}

// paid_amount can only grow: every accepted payment moves it strictly
// upward and never past the total.
func TestPaymentMonotonicity(t *testing.T) {
	total := 1000000.0
	paid := 0.0

	for _, amount := range []float64{250000, 250000, 499999, 1} {
		if err := validatePayment(paid, total, amount); err != nil {
			t.Fatalf("payment %f at paid=%f rejected: %v", amount, paid, err)
		}
		next := paid + amount
		if next <= paid {
			t.Fatalf("paid amount did not increase: %f -> %f", paid, next)
		}
		if next > total {
			t.Fatalf("paid amount exceeded total: %f > %f", next, total)
		}
		paid = next
	}

	if deriveInvoiceStatus(paid, total, nil, time.Now()) != models.InvoicePaid {
		t.Errorf("fully settled invoice should derive paid, got %s", deriveInvoiceStatus(paid, total, nil, time.Now()))
	}
	if err := validatePayment(paid, total, 1); err == nil {
		t.Error("any further payment must be rejected once settled")
	}
}
