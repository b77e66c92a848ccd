package payment

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renishkhadka4/Sajilofinder/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "payment not found")
	ErrAlreadyPaid        = apperror.New(http.StatusConflict, "booking has already been paid")
	ErrVerificationFailed = apperror.New(http.StatusBadRequest, "payment verification failed")
	ErrPermissionDenied   = apperror.New(http.StatusForbidden, "permission denied")
	ErrMissingReference   = apperror.New(http.StatusBadRequest, "either token or pidx is required")
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Payment is the record of a verified transaction. At most one row exists
// per booking, enforced by a unique constraint.
type Payment struct {
	ID            string
	BookingID     string
	StudentID     string
	Amount        decimal.Decimal
	TransactionID string
	Status        Status
	PaymentMethod string
	CreatedAt     time.Time
}

// Filter defines parameters for listing payments.
type Filter struct {
	StudentID string
	HostelID  string

	Page     int
	PageSize int
}
