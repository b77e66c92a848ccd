package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/renishkhadka4/Sajilofinder/internal/booking"
	"github.com/renishkhadka4/Sajilofinder/internal/notify"
)

type VerifyRequest struct {
	BookingID string
	// Token plus AmountPaisa for the older verify flow, Pidx for the newer
	// lookup flow. Exactly one of Token/Pidx must be set.
	Token       string
	AmountPaisa int64
	Pidx        string
}

// VerifyResult pairs the confirmed booking with its payment record.
type VerifyResult struct {
	Booking *booking.Booking
	Payment *Payment
}

type Service interface {
	// VerifyAndConfirm checks the transaction with the processor, then
	// promotes the booking from pending to confirmed and records the
	// payment exactly once. Verification happens before the transition so
	// no row is held while waiting on the processor.
	VerifyAndConfirm(ctx context.Context, studentID string, req VerifyRequest) (*VerifyResult, error)

	GetByBookingID(ctx context.Context, bookingID string) (*Payment, error)
	List(ctx context.Context, filter Filter) ([]*Payment, int, error)
}

type service struct {
	repo        Repository
	bookingRepo booking.Repository
	verifier    Verifier
	dispatcher  *notify.Dispatcher
	notifier    notify.Service
}

func NewService(repo Repository, bookingRepo booking.Repository, verifier Verifier, notifier notify.Service, dispatcher *notify.Dispatcher) Service {
	return &service{
		repo:        repo,
		bookingRepo: bookingRepo,
		verifier:    verifier,
		notifier:    notifier,
		dispatcher:  dispatcher,
	}
}

func (s *service) VerifyAndConfirm(ctx context.Context, studentID string, req VerifyRequest) (*VerifyResult, error) {
	b, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.StudentID != studentID {
		return nil, ErrPermissionDenied
	}
	if b.Status == booking.StatusConfirmed {
		return nil, ErrAlreadyPaid
	}
	if b.Status != booking.StatusPending {
		return nil, booking.ErrNotPending
	}

	var verification *Verification
	switch {
	case req.Pidx != "":
		verification, err = s.verifier.LookupPidx(ctx, req.Pidx)
	case req.Token != "":
		verification, err = s.verifier.VerifyToken(ctx, req.Token, req.AmountPaisa)
	default:
		return nil, ErrMissingReference
	}
	if err != nil {
		return nil, err
	}

	if req.Pidx != "" {
		if err := s.bookingRepo.SetPidx(ctx, b.ID, req.Pidx); err != nil {
			return nil, err
		}
	}

	ok, err := s.bookingRepo.UpdateStatusIfCurrent(ctx, b.ID, booking.StatusPending, booking.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent approval or payment confirmed the booking first.
		return nil, ErrAlreadyPaid
	}
	b.Status = booking.StatusConfirmed

	p := &Payment{
		BookingID:     b.ID,
		StudentID:     b.StudentID,
		Amount:        PaisaToRupees(verification.AmountPaisa),
		TransactionID: verification.TransactionID,
		Status:        StatusSuccess,
		PaymentMethod: "Khalti",
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Your payment of Rs. %s for room %s at %s was received. The booking is confirmed.",
		p.Amount.StringFixed(2), b.RoomNumber, b.HostelName)
	s.notifier.Notify(ctx, b.StudentID, body)
	s.dispatcher.SendAsync(b.StudentEmail, "Payment received", body)

	return &VerifyResult{Booking: b, Payment: p}, nil
}

func (s *service) GetByBookingID(ctx context.Context, bookingID string) (*Payment, error) {
	return s.repo.GetByBookingID(ctx, bookingID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Payment, int, error) {
	return s.repo.List(ctx, filter)
}

// PaisaToRupees converts the provider's paisa amounts to rupees with 2
// decimal places. 1800 paisa is Rs. 18.00.
func PaisaToRupees(paisa int64) decimal.Decimal {
	return decimal.NewFromInt(paisa).Div(decimal.NewFromInt(100)).Round(2)
}
