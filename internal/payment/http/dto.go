package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/renishkhadka4/Sajilofinder/internal/payment"
)

type PaymentResponse struct {
	ID            string          `json:"id"`
	BookingID     string          `json:"booking_id"`
	StudentID     string          `json:"student_id"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		StudentID:     p.StudentID,
		Amount:        p.Amount,
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		PaymentMethod: p.PaymentMethod,
		CreatedAt:     p.CreatedAt,
	}
}

type VerifyRequest struct {
	BookingID   string `json:"booking_id" binding:"required,uuid"`
	Token       string `json:"token"`
	AmountPaisa int64  `json:"amount" binding:"omitempty,min=1"`
	Pidx        string `json:"pidx"`
}

type VerifyResponse struct {
	BookingID     string          `json:"booking_id"`
	BookingStatus string          `json:"booking_status"`
	Payment       PaymentResponse `json:"payment"`
}

type ListPaymentsRequest struct {
	HostelID string `form:"hostel_id" binding:"omitempty,uuid"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
}
