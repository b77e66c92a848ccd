package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renishkhadka4/Sajilofinder/internal/hostel"
	"github.com/renishkhadka4/Sajilofinder/internal/notify"
	"github.com/renishkhadka4/Sajilofinder/internal/room"
	"github.com/renishkhadka4/Sajilofinder/internal/user"
)

type CreateRequest struct {
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
}

// CancelResult reports the outcome of a cancellation, including the refund
// owed per the hostel's policy. Refund fields are zero when nothing was paid.
type CancelResult struct {
	Booking          *Booking
	RefundPercentage int
	RefundAmount     decimal.Decimal
}

// PaymentReader exposes the one fact the lifecycle needs from payments:
// how much, if anything, was successfully paid for a booking.
type PaymentReader interface {
	AmountPaid(ctx context.Context, bookingID string) (decimal.Decimal, bool, error)
}

type Service interface {
	Create(ctx context.Context, studentID string, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Approve and Reject decide a pending booking. Only the hostel owner
	// may decide, and concurrent deciders race on a conditional update so
	// at most one wins.
	Approve(ctx context.Context, id, requesterID string) (*Booking, error)
	Reject(ctx context.Context, id, requesterID string) (*Booking, error)

	Cancel(ctx context.Context, id, requesterID string) (*CancelResult, error)
}

type service struct {
	repo          Repository
	roomService   room.Service
	hostelService hostel.Service
	userService   user.Service
	payments      PaymentReader
	notifier      notify.Service
	dispatcher    *notify.Dispatcher
	now           func() time.Time
}

func NewService(
	repo Repository,
	roomService room.Service,
	hostelService hostel.Service,
	userService user.Service,
	payments PaymentReader,
	notifier notify.Service,
	dispatcher *notify.Dispatcher,
) Service {
	return &service{
		repo:          repo,
		roomService:   roomService,
		hostelService: hostelService,
		userService:   userService,
		payments:      payments,
		notifier:      notifier,
		dispatcher:    dispatcher,
		now:           time.Now,
	}
}

func (s *service) Create(ctx context.Context, studentID string, req CreateRequest) (*Booking, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrInvalidDateRange
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.CheckIn.Before(today) {
		return nil, ErrCheckInPast
	}

	rm, err := s.roomService.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if !rm.IsAvailable {
		return nil, ErrRoomUnavailable
	}

	hasOverlap, err := s.repo.HasOverlap(ctx, req.RoomID, req.CheckIn, req.CheckOut, "")
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrRoomUnavailable
	}

	b := &Booking{
		StudentID: studentID,
		RoomID:    req.RoomID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Status:    StatusPending,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// Re-read to resolve joined display fields.
	b, err = s.repo.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, b, "New booking request",
		fmt.Sprintf("A new booking request for room %s at %s (%s to %s) is awaiting your approval.",
			b.RoomNumber, b.HostelName, b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02")))

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Approve(ctx context.Context, id, requesterID string) (*Booking, error) {
	return s.decide(ctx, id, requesterID, StatusConfirmed,
		"Booking confirmed",
		"Your booking for room %s at %s has been confirmed. You can now proceed to payment.")
}

func (s *service) Reject(ctx context.Context, id, requesterID string) (*Booking, error) {
	return s.decide(ctx, id, requesterID, StatusRejected,
		"Booking rejected",
		"Your booking for room %s at %s has been rejected by the owner.")
}

func (s *service) decide(ctx context.Context, id, requesterID string, to Status, subject, bodyFormat string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.HostelOwnerID != requesterID {
		return nil, ErrPermissionDenied
	}
	if b.Status != StatusPending {
		return nil, ErrNotPending
	}

	ok, err := s.repo.UpdateStatusIfCurrent(ctx, id, StatusPending, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Someone else decided first.
		return nil, ErrNotPending
	}
	b.Status = to

	s.notifyStudent(ctx, b, subject, fmt.Sprintf(bodyFormat, b.RoomNumber, b.HostelName))
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id, requesterID string) (*CancelResult, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.StudentID != requesterID && b.HostelOwnerID != requesterID {
		return nil, ErrPermissionDenied
	}
	if b.Status.IsTerminal() {
		return nil, ErrNotCancelable
	}
	from := b.Status

	result := &CancelResult{Booking: b, RefundAmount: decimal.Zero}

	// Refunds only apply to confirmed bookings that were actually paid.
	if from == StatusConfirmed {
		paid, hasPaid, err := s.payments.AmountPaid(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		if hasPaid {
			h, err := s.hostelService.GetByID(ctx, b.HostelID)
			if err != nil {
				return nil, err
			}
			result.RefundPercentage = RefundPercentage(h.CancellationPolicy, b.CheckIn, s.now())
			result.RefundAmount = RefundAmount(h.CancellationPolicy, paid, b.CheckIn, s.now())
		}
	}

	ok, err := s.repo.UpdateStatusIfCurrent(ctx, id, from, StatusCanceled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotCancelable
	}
	b.Status = StatusCanceled

	s.notifyOwner(ctx, b, "Booking canceled",
		fmt.Sprintf("The booking for room %s at %s (%s to %s) has been canceled.",
			b.RoomNumber, b.HostelName, b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02")))

	return result, nil
}

// notifyStudent records an in-app notification and emails the student.
// Both are best-effort and never block or fail the transition.
func (s *service) notifyStudent(ctx context.Context, b *Booking, subject, body string) {
	s.notifier.Notify(ctx, b.StudentID, body)
	s.dispatcher.SendAsync(b.StudentEmail, subject, body)
}

func (s *service) notifyOwner(ctx context.Context, b *Booking, subject, body string) {
	s.notifier.Notify(ctx, b.HostelOwnerID, body)

	owner, err := s.userService.GetByID(ctx, b.HostelOwnerID)
	if err != nil {
		return
	}
	s.dispatcher.SendAsync(owner.Email, subject, body)
}
