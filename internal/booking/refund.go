package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/renishkhadka4/Sajilofinder/internal/hostel"
)

// RefundPercentage computes how much of a payment is returned when a
// confirmed booking is canceled, based on whole days between now and
// check-in. Both instants are truncated to calendar dates first, so
// canceling at 23:59 counts the same as canceling at 00:01.
//
//	days >= FullRefundDays    -> 100
//	days >= PartialRefundDays -> PartialRefundPercentage
//	otherwise                 -> 0
func RefundPercentage(policy hostel.CancellationPolicy, checkIn, now time.Time) int {
	days := daysUntil(checkIn, now)
	switch {
	case days >= policy.FullRefundDays:
		return 100
	case days >= policy.PartialRefundDays:
		return policy.PartialRefundPercentage
	default:
		return 0
	}
}

// RefundAmount applies RefundPercentage to the amount actually paid,
// rounded to 2 decimal places.
func RefundAmount(policy hostel.CancellationPolicy, paid decimal.Decimal, checkIn, now time.Time) decimal.Decimal {
	pct := RefundPercentage(policy, checkIn, now)
	return paid.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100)).Round(2)
}

// daysUntil returns the number of whole calendar days from now to checkIn.
// Negative when check-in is already past.
func daysUntil(checkIn, now time.Time) int {
	ci := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(ci.Sub(today).Hours() / 24)
}
