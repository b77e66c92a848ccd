package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/renishkhadka4/Sajilofinder/internal/room"
)

type RoomResponse struct {
	ID          string          `json:"id"`
	FloorID     string          `json:"floor_id"`
	HostelID    string          `json:"hostel_id"`
	HostelName  string          `json:"hostel_name"`
	RoomNumber  string          `json:"room_number"`
	RoomType    string          `json:"room_type"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:          r.ID,
		FloorID:     r.FloorID,
		HostelID:    r.HostelID,
		HostelName:  r.HostelName,
		RoomNumber:  r.RoomNumber,
		RoomType:    string(r.RoomType),
		Price:       r.Price,
		IsAvailable: r.IsAvailable,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type CreateRequest struct {
	FloorID     string          `json:"floor_id" binding:"required,uuid"`
	RoomNumber  string          `json:"room_number" binding:"required"`
	RoomType    string          `json:"room_type" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	IsAvailable *bool           `json:"is_available"`
}

func (b CreateRequest) toService() room.CreateRequest {
	available := true
	if b.IsAvailable != nil {
		available = *b.IsAvailable
	}
	return room.CreateRequest{
		FloorID:     b.FloorID,
		RoomNumber:  b.RoomNumber,
		RoomType:    b.RoomType,
		Price:       b.Price,
		IsAvailable: available,
	}
}

type BulkCreateRequest struct {
	Rooms []CreateRequest `json:"rooms" binding:"required,min=1,dive"`
}

type UpdateRequest struct {
	RoomNumber  *string          `json:"room_number"`
	RoomType    *string          `json:"room_type"`
	Price       *decimal.Decimal `json:"price"`
	IsAvailable *bool            `json:"is_available"`
}

type ListRoomsRequest struct {
	FloorID       string `form:"floor_id" binding:"omitempty,uuid"`
	HostelID      string `form:"hostel_id" binding:"omitempty,uuid"`
	AvailableOnly bool   `form:"available_only"`
	Page          int    `form:"page,default=1" binding:"min=1"`
	PageSize      int    `form:"page_size,default=20" binding:"min=1,max=100"`
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

type ImageResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Path      string    `json:"path"`
	ThumbPath string    `json:"thumb_path"`
	CreatedAt time.Time `json:"created_at"`
}

func NewImageResponse(img *room.Image) ImageResponse {
	return ImageResponse{
		ID:        img.ID,
		RoomID:    img.RoomID,
		Path:      img.Path,
		ThumbPath: img.ThumbPath,
		CreatedAt: img.CreatedAt,
	}
}
