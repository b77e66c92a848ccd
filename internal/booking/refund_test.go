package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/renishkhadka4/Sajilofinder/internal/hostel"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRefundPercentage(t *testing.T) {
	policy := hostel.CancellationPolicy{
		FullRefundDays:          7,
		PartialRefundDays:       3,
		PartialRefundPercentage: 50,
	}

	tests := []struct {
		name    string
		checkIn time.Time
		now     time.Time
		want    int
	}{
		{"well before full refund window", date(2026, 3, 20), date(2026, 3, 1), 100},
		{"exactly at full refund boundary", date(2026, 3, 8), date(2026, 3, 1), 100},
		{"inside partial window", date(2026, 3, 6), date(2026, 3, 1), 50},
		{"exactly at partial boundary", date(2026, 3, 4), date(2026, 3, 1), 50},
		{"too close to check-in", date(2026, 3, 2), date(2026, 3, 1), 0},
		{"same day", date(2026, 3, 1), date(2026, 3, 1), 0},
		{"check-in already past", date(2026, 2, 25), date(2026, 3, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RefundPercentage(policy, tt.checkIn, tt.now))
		})
	}
}

func TestRefundPercentageIgnoresTimeOfDay(t *testing.T) {
	policy := hostel.CancellationPolicy{
		FullRefundDays:          7,
		PartialRefundDays:       3,
		PartialRefundPercentage: 40,
	}

	checkIn := date(2026, 3, 8)
	lateEvening := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	earlyMorning := time.Date(2026, 3, 1, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, RefundPercentage(policy, checkIn, earlyMorning), RefundPercentage(policy, checkIn, lateEvening))
	assert.Equal(t, 100, RefundPercentage(policy, checkIn, lateEvening))
}

func TestRefundAmount(t *testing.T) {
	policy := hostel.CancellationPolicy{
		FullRefundDays:          7,
		PartialRefundDays:       3,
		PartialRefundPercentage: 33,
	}

	paid := decimal.RequireFromString("1000.00")

	full := RefundAmount(policy, paid, date(2026, 3, 20), date(2026, 3, 1))
	assert.True(t, full.Equal(decimal.RequireFromString("1000.00")), "got %s", full)

	partial := RefundAmount(policy, paid, date(2026, 3, 5), date(2026, 3, 1))
	assert.True(t, partial.Equal(decimal.RequireFromString("330.00")), "got %s", partial)

	zero := RefundAmount(policy, paid, date(2026, 3, 2), date(2026, 3, 1))
	assert.True(t, zero.IsZero(), "got %s", zero)
}

func TestRefundAmountRounds(t *testing.T) {
	policy := hostel.CancellationPolicy{
		FullRefundDays:          7,
		PartialRefundDays:       3,
		PartialRefundPercentage: 33,
	}

	paid := decimal.RequireFromString("999.99")
	got := RefundAmount(policy, paid, date(2026, 3, 5), date(2026, 3, 1))
	assert.True(t, got.Equal(decimal.RequireFromString("330.00")), "got %s", got)
}
