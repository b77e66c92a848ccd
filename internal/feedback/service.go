package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/renishkhadka4/Sajilofinder/internal/hostel"
	"github.com/renishkhadka4/Sajilofinder/internal/notify"
	"github.com/renishkhadka4/Sajilofinder/internal/user"
)

type Service interface {
	Create(ctx context.Context, studentID, hostelID string, rating int, comment string) (*Feedback, error)

	// Reply lets the hostel owner answer a top-level feedback. Replies
	// carry no rating and notify the original author.
	Reply(ctx context.Context, requesterID, feedbackID, comment string) (*Feedback, error)

	// List returns top-level feedback with replies attached.
	List(ctx context.Context, filter Filter) ([]*Feedback, int, error)

	Delete(ctx context.Context, id, requesterID string, isAdmin bool) error
	AverageRating(ctx context.Context, hostelID string) (decimal.Decimal, int, error)
}

type service struct {
	repo          Repository
	hostelService hostel.Service
	userService   user.Service
	notifier      notify.Service
	dispatcher    *notify.Dispatcher
}

func NewService(repo Repository, hostelService hostel.Service, userService user.Service, notifier notify.Service, dispatcher *notify.Dispatcher) Service {
	return &service{
		repo:          repo,
		hostelService: hostelService,
		userService:   userService,
		notifier:      notifier,
		dispatcher:    dispatcher,
	}
}

func (s *service) Create(ctx context.Context, studentID, hostelID string, rating int, comment string) (*Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if strings.TrimSpace(comment) == "" {
		return nil, ErrCommentRequired
	}
	if _, err := s.hostelService.GetByID(ctx, hostelID); err != nil {
		return nil, err
	}

	f := &Feedback{
		StudentID: studentID,
		HostelID:  hostelID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Reply(ctx context.Context, requesterID, feedbackID, comment string) (*Feedback, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, ErrCommentRequired
	}

	parent, err := s.repo.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if parent.ParentID != nil {
		return nil, ErrReplyToReply
	}

	h, err := s.hostelService.GetByID(ctx, parent.HostelID)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != requesterID {
		return nil, ErrPermissionDenied
	}

	reply := &Feedback{
		StudentID: requesterID,
		HostelID:  parent.HostelID,
		ParentID:  &parent.ID,
		Rating:    0,
		Comment:   strings.TrimSpace(comment),
	}
	if err := s.repo.Create(ctx, reply); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("The owner of %s replied to your feedback.", h.Name)
	s.notifier.Notify(ctx, parent.StudentID, body)
	if author, err := s.userService.GetByID(ctx, parent.StudentID); err == nil {
		s.dispatcher.SendAsync(author.Email, "New reply to your feedback", body)
	}

	return reply, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Feedback, int, error) {
	feedbacks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if len(feedbacks) == 0 {
		return feedbacks, total, nil
	}

	parentIDs := make([]string, len(feedbacks))
	byID := make(map[string]*Feedback, len(feedbacks))
	for i, f := range feedbacks {
		parentIDs[i] = f.ID
		byID[f.ID] = f
	}

	replies, err := s.repo.ListReplies(ctx, parentIDs)
	if err != nil {
		return nil, 0, err
	}
	for _, reply := range replies {
		if parent, ok := byID[*reply.ParentID]; ok {
			parent.Replies = append(parent.Replies, reply)
		}
	}

	return feedbacks, total, nil
}

func (s *service) Delete(ctx context.Context, id, requesterID string, isAdmin bool) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if f.StudentID != requesterID && !isAdmin {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) AverageRating(ctx context.Context, hostelID string) (decimal.Decimal, int, error) {
	return s.repo.AverageRating(ctx, hostelID)
}
