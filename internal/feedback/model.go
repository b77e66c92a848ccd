package feedback

import (
	"net/http"
	"time"

	"github.com/renishkhadka4/Sajilofinder/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "feedback not found")
	ErrInvalidRating    = apperror.New(http.StatusBadRequest, "rating must be between 1 and 5")
	ErrCommentRequired  = apperror.New(http.StatusBadRequest, "comment is required")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrReplyToReply     = apperror.New(http.StatusBadRequest, "cannot reply to a reply")
)

// Feedback is a student's rating of a hostel, or an owner's reply to one.
// Replies reference their parent and carry no rating of their own.
type Feedback struct {
	ID          string
	StudentID   string
	StudentName string
	HostelID    string
	ParentID    *string
	Rating      int
	Comment     string
	CreatedAt   time.Time

	Replies []*Feedback
}

// Filter defines parameters for listing feedback.
type Filter struct {
	HostelID  string
	StudentID string

	Page     int
	PageSize int
}
