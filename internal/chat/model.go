package chat

import (
	"net/http"
	"time"

	"github.com/renishkhadka4/Sajilofinder/internal/pkg/apperror"
)

var (
	ErrBodyRequired     = apperror.New(http.StatusBadRequest, "message body is required")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Message is one line of conversation between a student and a hostel
// owner, scoped to a hostel.
type Message struct {
	ID         string
	HostelID   string
	SenderID   string
	SenderName string
	ReceiverID string
	Body       string
	CreatedAt  time.Time
}

// Filter defines parameters for reading a conversation history.
type Filter struct {
	HostelID      string
	ParticipantID string

	Page     int
	PageSize int
}
