package booking

import (
	"net/http"
	"time"

	"github.com/renishkhadka4/Sajilofinder/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "check_out must be after check_in")
	ErrCheckInPast      = apperror.New(http.StatusBadRequest, "check_in cannot be in the past")
	ErrRoomUnavailable  = apperror.New(http.StatusConflict, "room is not available for the requested dates")
	ErrNotPending       = apperror.New(http.StatusConflict, "booking has already been decided")
	ErrNotCancelable    = apperror.New(http.StatusConflict, "booking can no longer be canceled")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusCanceled  Status = "canceled"
)

// IsTerminal reports whether no further transition is allowed from s.
// Rejected and canceled are distinct ends: rejected is the owner declining
// a request, canceled is a withdrawal after the fact.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCanceled
}

// Booking is a student's stay request for a room. Display fields are
// resolved via joins on reads and not persisted on the row.
type Booking struct {
	ID        string
	StudentID string
	RoomID    string
	CheckIn   time.Time
	CheckOut  time.Time
	Status    Status

	// Pidx is the Khalti payment identifier attached when the student
	// initiates checkout. Empty until then.
	Pidx *string

	StudentName   string
	StudentEmail  string
	RoomNumber    string
	HostelID      string
	HostelName    string
	HostelOwnerID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	StudentID string
	RoomID    string
	HostelID  string
	OwnerID   string
	Status    string
	From      *time.Time
	To        *time.Time

	Page      int
	PageSize  int
	SortOrder string
}
