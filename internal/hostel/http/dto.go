package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/renishkhadka4/Sajilofinder/internal/hostel"
)

type HostelResponse struct {
	ID              string  `json:"id"`
	OwnerID         string  `json:"owner_id"`
	Name            string  `json:"name"`
	Address         string  `json:"address"`
	Description     string  `json:"description"`
	ContactNumber   *string `json:"contact_number"`
	Email           *string `json:"email"`
	City            *string `json:"city"`
	State           *string `json:"state"`
	ZipCode         *string `json:"zip_code"`
	GoogleMapsLink  *string `json:"google_maps_link"`
	EstablishedYear *int    `json:"established_year"`

	Wifi             bool `json:"wifi"`
	Parking          bool `json:"parking"`
	Laundry          bool `json:"laundry"`
	SecurityGuard    bool `json:"security_guard"`
	MessService      bool `json:"mess_service"`
	AttachedBathroom bool `json:"attached_bathroom"`
	AirConditioning  bool `json:"air_conditioning"`
	Heater           bool `json:"heater"`
	Balcony          bool `json:"balcony"`

	RentMin         *decimal.Decimal `json:"rent_min"`
	RentMax         *decimal.Decimal `json:"rent_max"`
	SecurityDeposit *decimal.Decimal `json:"security_deposit"`

	SmokingAllowed bool    `json:"smoking_allowed"`
	AlcoholAllowed bool    `json:"alcohol_allowed"`
	PetsAllowed    bool    `json:"pets_allowed"`
	VisitingHours  *string `json:"visiting_hours"`
	NearbyColleges *string `json:"nearby_colleges"`
	NearbyMarkets  *string `json:"nearby_markets"`

	CancellationPolicy PolicyRequest `json:"cancellation_policy"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewResponse(h *hostel.Hostel) HostelResponse {
	return HostelResponse{
		ID:               h.ID,
		OwnerID:          h.OwnerID,
		Name:             h.Name,
		Address:          h.Address,
		Description:      h.Description,
		ContactNumber:    h.ContactNumber,
		Email:            h.Email,
		City:             h.City,
		State:            h.State,
		ZipCode:          h.ZipCode,
		GoogleMapsLink:   h.GoogleMapsLink,
		EstablishedYear:  h.EstablishedYear,
		Wifi:             h.Wifi,
		Parking:          h.Parking,
		Laundry:          h.Laundry,
		SecurityGuard:    h.SecurityGuard,
		MessService:      h.MessService,
		AttachedBathroom: h.AttachedBathroom,
		AirConditioning:  h.AirConditioning,
		Heater:           h.Heater,
		Balcony:          h.Balcony,
		RentMin:          h.RentMin,
		RentMax:          h.RentMax,
		SecurityDeposit:  h.SecurityDeposit,
		SmokingAllowed:   h.SmokingAllowed,
		AlcoholAllowed:   h.AlcoholAllowed,
		PetsAllowed:      h.PetsAllowed,
		VisitingHours:    h.VisitingHours,
		NearbyColleges:   h.NearbyColleges,
		NearbyMarkets:    h.NearbyMarkets,
		CancellationPolicy: PolicyRequest{
			FullRefundDays:          h.CancellationPolicy.FullRefundDays,
			PartialRefundDays:       h.CancellationPolicy.PartialRefundDays,
			PartialRefundPercentage: h.CancellationPolicy.PartialRefundPercentage,
		},
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

type CreateRequest struct {
	Name            string  `json:"name" binding:"required"`
	Address         string  `json:"address" binding:"required"`
	Description     string  `json:"description"`
	ContactNumber   *string `json:"contact_number"`
	Email           *string `json:"email" binding:"omitempty,email"`
	City            *string `json:"city"`
	State           *string `json:"state"`
	ZipCode         *string `json:"zip_code"`
	GoogleMapsLink  *string `json:"google_maps_link"`
	EstablishedYear *int    `json:"established_year"`

	Wifi             bool `json:"wifi"`
	Parking          bool `json:"parking"`
	Laundry          bool `json:"laundry"`
	SecurityGuard    bool `json:"security_guard"`
	MessService      bool `json:"mess_service"`
	AttachedBathroom bool `json:"attached_bathroom"`
	AirConditioning  bool `json:"air_conditioning"`
	Heater           bool `json:"heater"`
	Balcony          bool `json:"balcony"`

	RentMin         *decimal.Decimal `json:"rent_min"`
	RentMax         *decimal.Decimal `json:"rent_max"`
	SecurityDeposit *decimal.Decimal `json:"security_deposit"`

	SmokingAllowed bool    `json:"smoking_allowed"`
	AlcoholAllowed bool    `json:"alcohol_allowed"`
	PetsAllowed    bool    `json:"pets_allowed"`
	VisitingHours  *string `json:"visiting_hours"`
	NearbyColleges *string `json:"nearby_colleges"`
	NearbyMarkets  *string `json:"nearby_markets"`
}

func (b CreateRequest) toService(ownerID string) hostel.CreateRequest {
	return hostel.CreateRequest{
		OwnerID:          ownerID,
		Name:             b.Name,
		Address:          b.Address,
		Description:      b.Description,
		ContactNumber:    b.ContactNumber,
		Email:            b.Email,
		City:             b.City,
		State:            b.State,
		ZipCode:          b.ZipCode,
		GoogleMapsLink:   b.GoogleMapsLink,
		EstablishedYear:  b.EstablishedYear,
		Wifi:             b.Wifi,
		Parking:          b.Parking,
		Laundry:          b.Laundry,
		SecurityGuard:    b.SecurityGuard,
		MessService:      b.MessService,
		AttachedBathroom: b.AttachedBathroom,
		AirConditioning:  b.AirConditioning,
		Heater:           b.Heater,
		Balcony:          b.Balcony,
		RentMin:          b.RentMin,
		RentMax:          b.RentMax,
		SecurityDeposit:  b.SecurityDeposit,
		SmokingAllowed:   b.SmokingAllowed,
		AlcoholAllowed:   b.AlcoholAllowed,
		PetsAllowed:      b.PetsAllowed,
		VisitingHours:    b.VisitingHours,
		NearbyColleges:   b.NearbyColleges,
		NearbyMarkets:    b.NearbyMarkets,
	}
}

type PolicyRequest struct {
	FullRefundDays          int `json:"full_refund_days" binding:"min=0"`
	PartialRefundDays       int `json:"partial_refund_days" binding:"min=0"`
	PartialRefundPercentage int `json:"partial_refund_percentage" binding:"min=0,max=100"`
}

type ListHostelsRequest struct {
	OwnerID  string `form:"owner_id" binding:"omitempty,uuid"`
	City     string `form:"city"`
	Keyword  string `form:"keyword"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
}

type FloorResponse struct {
	ID          string  `json:"id"`
	HostelID    string  `json:"hostel_id"`
	FloorNumber int     `json:"floor_number"`
	Description *string `json:"description"`
}

func NewFloorResponse(f *hostel.Floor) FloorResponse {
	return FloorResponse{
		ID:          f.ID,
		HostelID:    f.HostelID,
		FloorNumber: f.FloorNumber,
		Description: f.Description,
	}
}

type CreateFloorRequest struct {
	FloorNumber int     `json:"floor_number" binding:"min=0"`
	Description *string `json:"description"`
}

type ImageResponse struct {
	ID        string    `json:"id"`
	HostelID  string    `json:"hostel_id"`
	Path      string    `json:"path"`
	ThumbPath string    `json:"thumb_path"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func NewImageResponse(img *hostel.Image) ImageResponse {
	return ImageResponse{
		ID:        img.ID,
		HostelID:  img.HostelID,
		Path:      img.Path,
		ThumbPath: img.ThumbPath,
		Position:  img.Position,
		CreatedAt: img.CreatedAt,
	}
}
