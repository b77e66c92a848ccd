package http

import (
	"time"

	"github.com/renishkhadka4/Sajilofinder/internal/feedback"
)

type FeedbackResponse struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	HostelID    string    `json:"hostel_id"`
	ParentID    *string   `json:"parent_id,omitempty"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`

	Replies []FeedbackResponse `json:"replies,omitempty"`
}

func NewResponse(f *feedback.Feedback) FeedbackResponse {
	resp := FeedbackResponse{
		ID:          f.ID,
		StudentID:   f.StudentID,
		StudentName: f.StudentName,
		HostelID:    f.HostelID,
		ParentID:    f.ParentID,
		Rating:      f.Rating,
		Comment:     f.Comment,
		CreatedAt:   f.CreatedAt,
	}
	for _, reply := range f.Replies {
		resp.Replies = append(resp.Replies, NewResponse(reply))
	}
	return resp
}

type CreateRequest struct {
	HostelID string `json:"hostel_id" binding:"required,uuid"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"required"`
}

type ReplyRequest struct {
	Comment string `json:"comment" binding:"required"`
}

type ListFeedbackRequest struct {
	HostelID string `form:"hostel_id" binding:"omitempty,uuid"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
}

type RatingResponse struct {
	HostelID      string `json:"hostel_id"`
	AverageRating string `json:"average_rating"`
	Count         int    `json:"count"`
}
