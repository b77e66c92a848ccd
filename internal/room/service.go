package room

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/renishkhadka4/Sajilofinder/internal/hostel"
	"github.com/renishkhadka4/Sajilofinder/internal/pkg/storage"
)

type CreateRequest struct {
	FloorID     string
	RoomNumber  string
	RoomType    string
	Price       decimal.Decimal
	IsAvailable bool
}

type UpdateRequest struct {
	RoomNumber  *string
	RoomType    *string
	Price       *decimal.Decimal
	IsAvailable *bool
}

type Service interface {
	Create(ctx context.Context, requesterID string, req CreateRequest) (*Room, error)
	// BulkCreate adds several rooms to one floor in a single call.
	BulkCreate(ctx context.Context, requesterID string, reqs []CreateRequest) ([]*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, id, requesterID string, req UpdateRequest) (*Room, error)
	SetAvailability(ctx context.Context, id, requesterID string, available bool) error
	Delete(ctx context.Context, id, requesterID string) error

	UploadImage(ctx context.Context, roomID, requesterID string, content io.Reader) (*Image, error)
	ListImages(ctx context.Context, roomID string) ([]*Image, error)
	DeleteImage(ctx context.Context, imageID, requesterID string) error
}

type service struct {
	repo          Repository
	hostelService hostel.Service
	images        *storage.ImageStore
}

func NewService(repo Repository, hostelService hostel.Service, images *storage.ImageStore) Service {
	return &service{
		repo:          repo,
		hostelService: hostelService,
		images:        images,
	}
}

// requireFloorOwner checks the requester owns the hostel the floor belongs to.
func (s *service) requireFloorOwner(ctx context.Context, floorID, requesterID string) error {
	f, err := s.hostelService.GetFloorByID(ctx, floorID)
	if err != nil {
		return err
	}
	h, err := s.hostelService.GetByID(ctx, f.HostelID)
	if err != nil {
		return err
	}
	if h.OwnerID != requesterID {
		return hostel.ErrNotOwner
	}
	return nil
}

// requireRoomOwner checks the requester owns the hostel the room belongs to.
func (s *service) requireRoomOwner(ctx context.Context, roomID, requesterID string) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	h, err := s.hostelService.GetByID(ctx, rm.HostelID)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != requesterID {
		return nil, hostel.ErrNotOwner
	}
	return rm, nil
}

func buildRoom(req CreateRequest) (*Room, error) {
	if strings.TrimSpace(req.RoomNumber) == "" {
		return nil, ErrNumberRequired
	}
	roomType, err := ParseType(req.RoomType)
	if err != nil {
		return nil, err
	}
	if !req.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	return &Room{
		FloorID:     req.FloorID,
		RoomNumber:  strings.TrimSpace(req.RoomNumber),
		RoomType:    roomType,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
	}, nil
}

func (s *service) Create(ctx context.Context, requesterID string, req CreateRequest) (*Room, error) {
	if err := s.requireFloorOwner(ctx, req.FloorID, requesterID); err != nil {
		return nil, err
	}

	rm, err := buildRoom(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) BulkCreate(ctx context.Context, requesterID string, reqs []CreateRequest) ([]*Room, error) {
	// Validate everything up front so a bad row does not leave a partial batch.
	rooms := make([]*Room, 0, len(reqs))
	for _, req := range reqs {
		if err := s.requireFloorOwner(ctx, req.FloorID, requesterID); err != nil {
			return nil, err
		}
		rm, err := buildRoom(req)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}

	for _, rm := range rooms {
		if err := s.repo.Create(ctx, rm); err != nil {
			return nil, err
		}
	}
	return rooms, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id, requesterID string, req UpdateRequest) (*Room, error) {
	rm, err := s.requireRoomOwner(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		if strings.TrimSpace(*req.RoomNumber) == "" {
			return nil, ErrNumberRequired
		}
		rm.RoomNumber = strings.TrimSpace(*req.RoomNumber)
	}
	if req.RoomType != nil {
		roomType, err := ParseType(*req.RoomType)
		if err != nil {
			return nil, err
		}
		rm.RoomType = roomType
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, ErrInvalidPrice
		}
		rm.Price = *req.Price
	}
	if req.IsAvailable != nil {
		rm.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) SetAvailability(ctx context.Context, id, requesterID string, available bool) error {
	if _, err := s.requireRoomOwner(ctx, id, requesterID); err != nil {
		return err
	}
	return s.repo.SetAvailability(ctx, id, available)
}

func (s *service) Delete(ctx context.Context, id, requesterID string) error {
	if _, err := s.requireRoomOwner(ctx, id, requesterID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) UploadImage(ctx context.Context, roomID, requesterID string, content io.Reader) (*Image, error) {
	if _, err := s.requireRoomOwner(ctx, roomID, requesterID); err != nil {
		return nil, err
	}

	saved, err := s.images.SaveImage(ctx, "room_images/"+roomID, content)
	if err != nil {
		return nil, err
	}

	img := &Image{
		RoomID:    roomID,
		Path:      saved.Path,
		ThumbPath: saved.ThumbPath,
	}
	if err := s.repo.AddImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *service) ListImages(ctx context.Context, roomID string) ([]*Image, error) {
	return s.repo.ListImages(ctx, roomID)
}

func (s *service) DeleteImage(ctx context.Context, imageID, requesterID string) error {
	img, err := s.repo.GetImageByID(ctx, imageID)
	if err != nil {
		return err
	}
	if _, err := s.requireRoomOwner(ctx, img.RoomID, requesterID); err != nil {
		return err
	}

	if err := s.repo.DeleteImage(ctx, imageID); err != nil {
		return err
	}
	return s.images.DeleteImage(ctx, storage.SavedImage{Path: img.Path, ThumbPath: img.ThumbPath})
}
