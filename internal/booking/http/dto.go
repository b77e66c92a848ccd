package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/renishkhadka4/Sajilofinder/internal/booking"
)

const dateLayout = "2006-01-02"

type BookingResponse struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	RoomID      string    `json:"room_id"`
	RoomNumber  string    `json:"room_number"`
	HostelID    string    `json:"hostel_id"`
	HostelName  string    `json:"hostel_name"`
	CheckIn     string    `json:"check_in"`
	CheckOut    string    `json:"check_out"`
	Status      string    `json:"status"`
	Pidx        *string   `json:"pidx,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		StudentID:   b.StudentID,
		StudentName: b.StudentName,
		RoomID:      b.RoomID,
		RoomNumber:  b.RoomNumber,
		HostelID:    b.HostelID,
		HostelName:  b.HostelName,
		CheckIn:     b.CheckIn.Format(dateLayout),
		CheckOut:    b.CheckOut.Format(dateLayout),
		Status:      string(b.Status),
		Pidx:        b.Pidx,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

type CancelResponse struct {
	Booking          BookingResponse `json:"booking"`
	RefundPercentage int             `json:"refund_percentage"`
	RefundAmount     decimal.Decimal `json:"refund_amount"`
}

type CreateRequest struct {
	RoomID   string `json:"room_id" binding:"required,uuid"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

type ListBookingsRequest struct {
	RoomID    string `form:"room_id" binding:"omitempty,uuid"`
	HostelID  string `form:"hostel_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=pending confirmed rejected canceled"`
	From      string `form:"from"`
	To        string `form:"to"`
	Page      int    `form:"page,default=1" binding:"min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"min=1,max=100"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}
