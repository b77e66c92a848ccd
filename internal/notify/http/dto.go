package http

import (
	"time"

	"github.com/renishkhadka4/Sajilofinder/internal/notify"
)

type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResponse(n *notify.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

type ListNotificationsRequest struct {
	UnreadOnly bool `form:"unread_only"`
	Page       int  `form:"page,default=1" binding:"min=1"`
	PageSize   int  `form:"page_size,default=20" binding:"min=1,max=100"`
}
