package http

import (
	"time"

	"github.com/renishkhadka4/Sajilofinder/internal/chat"
)

type MessageResponse struct {
	ID         string    `json:"id"`
	HostelID   string    `json:"hostel_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	ReceiverID string    `json:"receiver_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewResponse(m *chat.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		HostelID:   m.HostelID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		ReceiverID: m.ReceiverID,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt,
	}
}

type SendRequest struct {
	HostelID   string `json:"hostel_id" binding:"required,uuid"`
	ReceiverID string `json:"receiver_id" binding:"omitempty,uuid"`
	Body       string `json:"body" binding:"required"`
}

type HistoryRequest struct {
	HostelID string `form:"hostel_id" binding:"required,uuid"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=50" binding:"min=1,max=200"`
}
