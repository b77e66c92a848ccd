package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/renishkhadka4/Sajilofinder/internal/hostel"
	"github.com/renishkhadka4/Sajilofinder/internal/notify"
	"github.com/renishkhadka4/Sajilofinder/internal/user"
)

type Service interface {
	// Send relays a message between a student and the hostel's owner.
	// When the sender is the owner, receiverID names the student;
	// otherwise the receiver is resolved to the owner automatically.
	Send(ctx context.Context, senderID, hostelID, receiverID, body string) (*Message, error)

	History(ctx context.Context, requesterID string, filter Filter) ([]*Message, int, error)
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

func (s *service) Send(ctx context.Context, senderID, hostelID, receiverID, body string) (*Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrBodyRequired
	}

	h, err := s.hostelService.GetByID(ctx, hostelID)
	if err != nil {
		return nil, err
	}

	if senderID == h.OwnerID {
		if receiverID == "" {
			return nil, ErrPermissionDenied
		}
	} else {
		// Students always talk to the owner.
		receiverID = h.OwnerID
	}

	m := &Message{
		HostelID:   hostelID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       strings.TrimSpace(body),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	note := fmt.Sprintf("New message about %s.", h.Name)
	s.notifier.Notify(ctx, receiverID, note)
	if receiver, err := s.userService.GetByID(ctx, receiverID); err == nil {
		s.dispatcher.SendAsync(receiver.Email, "New message", note)
	}

	return m, nil
}

func (s *service) History(ctx context.Context, requesterID string, filter Filter) ([]*Message, int, error) {
	h, err := s.hostelService.GetByID(ctx, filter.HostelID)
	if err != nil {
		return nil, 0, err
	}

	// Owners read any thread in their hostel; everyone else only their own.
	if requesterID != h.OwnerID {
		filter.ParticipantID = requesterID
	}

	return s.repo.History(ctx, filter)
}
