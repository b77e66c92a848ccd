package notify

import (
	"net/http"
	"time"

	"github.com/renishkhadka4/Sajilofinder/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "notification not found")

// Notification is an in-app message shown to a user (e.g. "owner replied
// to your feedback").
type Notification struct {
	ID        string
	UserID    string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

// Filter defines parameters for listing notifications.
type Filter struct {
	UserID     string
	UnreadOnly bool
	Page       int
	PageSize   int
}
