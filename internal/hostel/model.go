package hostel

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renishkhadka4/Sajilofinder/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "hostel not found")
	ErrFloorNotFound    = apperror.New(http.StatusNotFound, "floor not found")
	ErrImageNotFound    = apperror.New(http.StatusNotFound, "image not found")
	ErrNotOwner         = apperror.New(http.StatusForbidden, "only the hostel owner can do this")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "name is required")
	ErrAddressRequired  = apperror.New(http.StatusBadRequest, "address is required")
	ErrDuplicateFloor   = apperror.New(http.StatusConflict, "floor number already exists for this hostel")
	ErrInvalidPolicy    = apperror.New(http.StatusBadRequest, "invalid cancellation policy")
	ErrInvalidRentRange = apperror.New(http.StatusBadRequest, "rent_min must not exceed rent_max")
)

// CancellationPolicy controls how much of a payment is returned when a
// confirmed booking is canceled. Stored as JSONB on the hostel row and
// read-only from the booking module's perspective.
type CancellationPolicy struct {
	FullRefundDays          int `json:"full_refund_days"`
	PartialRefundDays       int `json:"partial_refund_days"`
	PartialRefundPercentage int `json:"partial_refund_percentage"`
}

// Validate checks the policy's internal consistency.
func (p CancellationPolicy) Validate() error {
	if p.FullRefundDays < 0 || p.PartialRefundDays < 0 {
		return ErrInvalidPolicy
	}
	if p.PartialRefundDays > p.FullRefundDays {
		return ErrInvalidPolicy
	}
	if p.PartialRefundPercentage < 0 || p.PartialRefundPercentage > 100 {
		return ErrInvalidPolicy
	}
	return nil
}

// Hostel is a property listed by a hostel owner.
type Hostel struct {
	ID              string
	OwnerID         string
	Name            string
	Address         string
	Description     string
	ContactNumber   *string
	Email           *string
	City            *string
	State           *string
	ZipCode         *string
	GoogleMapsLink  *string
	EstablishedYear *int

	// Amenities
	Wifi             bool
	Parking          bool
	Laundry          bool
	SecurityGuard    bool
	MessService      bool
	AttachedBathroom bool
	AirConditioning  bool
	Heater           bool
	Balcony          bool

	RentMin         *decimal.Decimal
	RentMax         *decimal.Decimal
	SecurityDeposit *decimal.Decimal

	// House rules
	SmokingAllowed bool
	AlcoholAllowed bool
	PetsAllowed    bool
	VisitingHours  *string

	NearbyColleges *string
	NearbyMarkets  *string

	CancellationPolicy CancellationPolicy

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Floor groups rooms inside a hostel. (hostel_id, floor_number) is unique.
type Floor struct {
	ID          string
	HostelID    string
	FloorNumber int
	Description *string
}

// Image is a stored hostel gallery image.
type Image struct {
	ID        string
	HostelID  string
	Path      string
	ThumbPath string
	Position  int
	CreatedAt time.Time
}

// Filter defines parameters for searching hostels.
type Filter struct {
	OwnerID string
	City    string
	Keyword string

	Page     int
	PageSize int
}
