package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dashboard summarizes an owner's hostels for the management screen.
type Dashboard struct {
	TotalBookings     int             `json:"total_bookings"`
	PendingBookings   int             `json:"pending_bookings"`
	ConfirmedBookings int             `json:"confirmed_bookings"`
	RejectedBookings  int             `json:"rejected_bookings"`
	CanceledBookings  int             `json:"canceled_bookings"`
	TotalEarnings     decimal.Decimal `json:"total_earnings"`
	TotalRooms        int             `json:"total_rooms"`
	AvailableRooms    int             `json:"available_rooms"`
	AverageRating     decimal.Decimal `json:"average_rating"`
	FeedbackCount     int             `json:"feedback_count"`

	MonthlyEarnings []MonthlyEarning `json:"monthly_earnings"`
}

// MonthlyEarning is one month of confirmed revenue, month as "YYYY-MM".
type MonthlyEarning struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// BookingRow is one line of the bookings export.
type BookingRow struct {
	BookingID   string
	StudentName string
	HostelName  string
	RoomNumber  string
	CheckIn     time.Time
	CheckOut    time.Time
	Status      string
	AmountPaid  decimal.Decimal
	CreatedAt   time.Time
}

// FeedbackRow is one line of the feedback export. Owner replies are
// not exported.
type FeedbackRow struct {
	FeedbackID  string
	StudentName string
	HostelName  string
	Rating      int
	Comment     string
	CreatedAt   time.Time
}

// Filter scopes report queries. OwnerID is always set from the
// authenticated caller; HostelID optionally narrows to one hostel.
type Filter struct {
	OwnerID  string
	HostelID string
	RoomID   string
	From     *time.Time
	To       *time.Time
	Status   string

	// SortOrder orders export rows by creation time, "asc" or "desc"
	// (default desc).
	SortOrder string
}
