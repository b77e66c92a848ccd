package room

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renishkhadka4/Sajilofinder/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "room not found")
	ErrImageNotFound   = apperror.New(http.StatusNotFound, "image not found")
	ErrInvalidType     = apperror.New(http.StatusBadRequest, "invalid room type")
	ErrInvalidPrice    = apperror.New(http.StatusBadRequest, "price must be positive")
	ErrNumberRequired  = apperror.New(http.StatusBadRequest, "room number is required")
	ErrDuplicateNumber = apperror.New(http.StatusConflict, "room number already exists on this floor")
)

// Type is the closed set of room categories.
type Type string

const (
	TypeSingle Type = "single"
	TypeDouble Type = "double"
	TypeSuite  Type = "suite"
)

// ParseType validates a room type string coming from the outside.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeSingle, TypeDouble, TypeSuite:
		return Type(s), nil
	default:
		return "", ErrInvalidType
	}
}

// Room is a bookable unit on a hostel floor.
//
// IsAvailable is an owner-controlled listing switch: it gates new booking
// creation but is never flipped by the booking lifecycle itself. Actual
// double-booking prevention is the overlap check in the booking module.
type Room struct {
	ID          string
	FloorID     string
	HostelID    string // resolved via floor join on reads
	HostelName  string
	RoomNumber  string
	RoomType    Type
	Price       decimal.Decimal
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Image is a stored room gallery image.
type Image struct {
	ID        string
	RoomID    string
	Path      string
	ThumbPath string
	CreatedAt time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	FloorID       string
	HostelID      string
	AvailableOnly bool

	Page     int
	PageSize int
}
