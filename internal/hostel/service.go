package hostel

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/renishkhadka4/Sajilofinder/internal/pkg/storage"
)

type CreateRequest struct {
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

	SmokingAllowed bool
	AlcoholAllowed bool
	PetsAllowed    bool
	VisitingHours  *string
	NearbyColleges *string
	NearbyMarkets  *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Hostel, error)
	GetByID(ctx context.Context, id string) (*Hostel, error)
	GetByRoomID(ctx context.Context, roomID string) (*Hostel, error)
	List(ctx context.Context, filter Filter) ([]*Hostel, int, error)
	Update(ctx context.Context, id, requesterID string, req CreateRequest) (*Hostel, error)
	SetCancellationPolicy(ctx context.Context, id, requesterID string, policy CancellationPolicy) error
	Delete(ctx context.Context, id, requesterID string) error

	AddFloor(ctx context.Context, hostelID, requesterID string, floorNumber int, description *string) (*Floor, error)
	GetFloorByID(ctx context.Context, id string) (*Floor, error)
	ListFloors(ctx context.Context, hostelID string) ([]*Floor, error)
	DeleteFloor(ctx context.Context, floorID, requesterID string) error

	UploadImage(ctx context.Context, hostelID, requesterID string, content io.Reader) (*Image, error)
	ListImages(ctx context.Context, hostelID string) ([]*Image, error)
	DeleteImage(ctx context.Context, imageID, requesterID string) error
}

type service struct {
	repo   Repository
	images *storage.ImageStore
}

func NewService(repo Repository, images *storage.ImageStore) Service {
	return &service{repo: repo, images: images}
}

func validateCreate(req CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(req.Address) == "" {
		return ErrAddressRequired
	}
	if req.RentMin != nil && req.RentMax != nil && req.RentMin.GreaterThan(*req.RentMax) {
		return ErrInvalidRentRange
	}
	return nil
}

func apply(h *Hostel, req CreateRequest) {
	h.Name = strings.TrimSpace(req.Name)
	h.Address = strings.TrimSpace(req.Address)
	h.Description = req.Description
	h.ContactNumber = req.ContactNumber
	h.Email = req.Email
	h.City = req.City
	h.State = req.State
	h.ZipCode = req.ZipCode
	h.GoogleMapsLink = req.GoogleMapsLink
	h.EstablishedYear = req.EstablishedYear
	h.Wifi = req.Wifi
	h.Parking = req.Parking
	h.Laundry = req.Laundry
	h.SecurityGuard = req.SecurityGuard
	h.MessService = req.MessService
	h.AttachedBathroom = req.AttachedBathroom
	h.AirConditioning = req.AirConditioning
	h.Heater = req.Heater
	h.Balcony = req.Balcony
	h.RentMin = req.RentMin
	h.RentMax = req.RentMax
	h.SecurityDeposit = req.SecurityDeposit
	h.SmokingAllowed = req.SmokingAllowed
	h.AlcoholAllowed = req.AlcoholAllowed
	h.PetsAllowed = req.PetsAllowed
	h.VisitingHours = req.VisitingHours
	h.NearbyColleges = req.NearbyColleges
	h.NearbyMarkets = req.NearbyMarkets
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Hostel, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	h := &Hostel{OwnerID: req.OwnerID}
	apply(h, req)

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Hostel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByRoomID(ctx context.Context, roomID string) (*Hostel, error) {
	return s.repo.GetByRoomID(ctx, roomID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Hostel, int, error) {
	return s.repo.List(ctx, filter)
}

// requireOwner loads the hostel and checks the requester owns it.
func (s *service) requireOwner(ctx context.Context, hostelID, requesterID string) (*Hostel, error) {
	h, err := s.repo.GetByID(ctx, hostelID)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != requesterID {
		return nil, ErrNotOwner
	}
	return h, nil
}

func (s *service) Update(ctx context.Context, id, requesterID string, req CreateRequest) (*Hostel, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	h, err := s.requireOwner(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	apply(h, req)

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) SetCancellationPolicy(ctx context.Context, id, requesterID string, policy CancellationPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	if _, err := s.requireOwner(ctx, id, requesterID); err != nil {
		return err
	}

	return s.repo.SetCancellationPolicy(ctx, id, policy)
}

func (s *service) Delete(ctx context.Context, id, requesterID string) error {
	if _, err := s.requireOwner(ctx, id, requesterID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) AddFloor(ctx context.Context, hostelID, requesterID string, floorNumber int, description *string) (*Floor, error) {
	if _, err := s.requireOwner(ctx, hostelID, requesterID); err != nil {
		return nil, err
	}

	f := &Floor{
		HostelID:    hostelID,
		FloorNumber: floorNumber,
		Description: description,
	}
	if err := s.repo.CreateFloor(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) GetFloorByID(ctx context.Context, id string) (*Floor, error) {
	return s.repo.GetFloorByID(ctx, id)
}

func (s *service) ListFloors(ctx context.Context, hostelID string) ([]*Floor, error) {
	return s.repo.ListFloors(ctx, hostelID)
}

func (s *service) DeleteFloor(ctx context.Context, floorID, requesterID string) error {
	f, err := s.repo.GetFloorByID(ctx, floorID)
	if err != nil {
		return err
	}
	if _, err := s.requireOwner(ctx, f.HostelID, requesterID); err != nil {
		return err
	}
	return s.repo.DeleteFloor(ctx, floorID)
}

func (s *service) UploadImage(ctx context.Context, hostelID, requesterID string, content io.Reader) (*Image, error) {
	if _, err := s.requireOwner(ctx, hostelID, requesterID); err != nil {
		return nil, err
	}

	saved, err := s.images.SaveImage(ctx, "hostel_images/"+hostelID, content)
	if err != nil {
		return nil, err
	}

	img := &Image{
		HostelID:  hostelID,
		Path:      saved.Path,
		ThumbPath: saved.ThumbPath,
	}
	if err := s.repo.AddImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *service) ListImages(ctx context.Context, hostelID string) ([]*Image, error) {
	return s.repo.ListImages(ctx, hostelID)
}

func (s *service) DeleteImage(ctx context.Context, imageID, requesterID string) error {
	img, err := s.repo.GetImageByID(ctx, imageID)
	if err != nil {
		return err
	}
	if _, err := s.requireOwner(ctx, img.HostelID, requesterID); err != nil {
		return err
	}

	if err := s.repo.DeleteImage(ctx, imageID); err != nil {
		return err
	}
	// Files go last: a stray file is recoverable, a dangling DB row is not.
	return s.images.DeleteImage(ctx, storage.SavedImage{Path: img.Path, ThumbPath: img.ThumbPath})
}
