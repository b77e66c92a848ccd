package payment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renishkhadka4/Sajilofinder/internal/booking"
	"github.com/renishkhadka4/Sajilofinder/internal/notify"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*booking.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*booking.Booking)}
}

func (f *fakeBookingRepo) seed(status booking.Status) *booking.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := &booking.Booking{
		ID:           uuid.NewString(),
		StudentID:    "student-1",
		StudentEmail: "student@example.com",
		RoomNumber:   "101",
		HostelName:   "Sunrise Hostel",
		Status:       status,
	}
	f.bookings[b.ID] = b
	return b
}

func (f *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = uuid.NewString()
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*booking.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) List(_ context.Context, _ booking.Filter) ([]*booking.Booking, int, error) {
	return nil, 0, nil
}

func (f *fakeBookingRepo) UpdateStatusIfCurrent(_ context.Context, id string, from, to booking.Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (f *fakeBookingRepo) SetPidx(_ context.Context, id, pidx string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	b.Pidx = &pidx
	return nil
}

func (f *fakeBookingRepo) HasOverlap(_ context.Context, _ string, _, _ time.Time, _ string) (bool, error) {
	return false, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*Payment)}
}

func (f *fakePaymentRepo) Create(_ context.Context, p *Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.payments[p.BookingID]; exists {
		return ErrAlreadyPaid
	}
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	clone := *p
	f.payments[p.BookingID] = &clone
	return nil
}

func (f *fakePaymentRepo) GetByBookingID(_ context.Context, bookingID string) (*Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakePaymentRepo) List(_ context.Context, _ Filter) ([]*Payment, int, error) {
	return nil, 0, nil
}

func (f *fakePaymentRepo) AmountPaid(_ context.Context, bookingID string) (decimal.Decimal, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[bookingID]
	if !ok || p.Status != StatusSuccess {
		return decimal.Zero, false, nil
	}
	return p.Amount, true, nil
}

type fakeVerifier struct {
	verification *Verification
	err          error
}

func (f *fakeVerifier) VerifyToken(_ context.Context, _ string, _ int64) (*Verification, error) {
	return f.verification, f.err
}

func (f *fakeVerifier) LookupPidx(_ context.Context, _ string) (*Verification, error) {
	return f.verification, f.err
}

type noopNotifier struct{}

func (noopNotifier) Notify(_ context.Context, _, _ string) {}

func (noopNotifier) List(_ context.Context, _ notify.Filter) ([]*notify.Notification, int, error) {
	return nil, 0, nil
}
func (noopNotifier) MarkRead(_ context.Context, _, _ string) error { return nil }
func (noopNotifier) MarkAllRead(_ context.Context, _ string) error { return nil }

func newTestService(bookings *fakeBookingRepo, payments *fakePaymentRepo, verifier Verifier) Service {
	return NewService(payments, bookings, verifier, noopNotifier{}, notify.NewDispatcher(notify.LogMailer{}))
}

func TestVerifyAndConfirm(t *testing.T) {
	bookings := newFakeBookingRepo()
	payments := newFakePaymentRepo()
	b := bookings.seed(booking.StatusPending)

	verifier := &fakeVerifier{verification: &Verification{TransactionID: "txn-1", AmountPaisa: 1800}}
	svc := newTestService(bookings, payments, verifier)

	result, err := svc.VerifyAndConfirm(context.Background(), "student-1", VerifyRequest{
		BookingID:   b.ID,
		Token:       "tok-abc",
		AmountPaisa: 1800,
	})
	require.NoError(t, err)

	assert.Equal(t, booking.StatusConfirmed, result.Booking.Status)
	assert.Equal(t, "txn-1", result.Payment.TransactionID)
	assert.True(t, result.Payment.Amount.Equal(decimal.RequireFromString("18.00")),
		"1800 paisa must convert to Rs. 18.00, got %s", result.Payment.Amount)
	assert.Equal(t, StatusSuccess, result.Payment.Status)

	stored, err := bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, stored.Status)
}

func TestVerifyAndConfirmPidxFlow(t *testing.T) {
	bookings := newFakeBookingRepo()
	payments := newFakePaymentRepo()
	b := bookings.seed(booking.StatusPending)

	verifier := &fakeVerifier{verification: &Verification{TransactionID: "txn-9", AmountPaisa: 250000}}
	svc := newTestService(bookings, payments, verifier)

	result, err := svc.VerifyAndConfirm(context.Background(), "student-1", VerifyRequest{
		BookingID: b.ID,
		Pidx:      "pidx-9",
	})
	require.NoError(t, err)
	assert.True(t, result.Payment.Amount.Equal(decimal.RequireFromString("2500.00")))

	stored, err := bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Pidx)
	assert.Equal(t, "pidx-9", *stored.Pidx)
}

func TestVerifyAndConfirmGuards(t *testing.T) {
	verifier := &fakeVerifier{verification: &Verification{TransactionID: "txn-1", AmountPaisa: 1800}}

	t.Run("unknown booking", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(), newFakePaymentRepo(), verifier)
		_, err := svc.VerifyAndConfirm(context.Background(), "student-1", VerifyRequest{
			BookingID: uuid.NewString(), Token: "tok",
		})
		assert.ErrorIs(t, err, booking.ErrNotFound)
	})

	t.Run("someone else's booking", func(t *testing.T) {
		bookings := newFakeBookingRepo()
		b := bookings.seed(booking.StatusPending)
		svc := newTestService(bookings, newFakePaymentRepo(), verifier)

		_, err := svc.VerifyAndConfirm(context.Background(), "student-2", VerifyRequest{
			BookingID: b.ID, Token: "tok",
		})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("already confirmed", func(t *testing.T) {
		bookings := newFakeBookingRepo()
		b := bookings.seed(booking.StatusConfirmed)
		svc := newTestService(bookings, newFakePaymentRepo(), verifier)

		_, err := svc.VerifyAndConfirm(context.Background(), "student-1", VerifyRequest{
			BookingID: b.ID, Token: "tok",
		})
		assert.ErrorIs(t, err, ErrAlreadyPaid)
	})

	t.Run("rejected booking", func(t *testing.T) {
		bookings := newFakeBookingRepo()
		b := bookings.seed(booking.StatusRejected)
		svc := newTestService(bookings, newFakePaymentRepo(), verifier)

		_, err := svc.VerifyAndConfirm(context.Background(), "student-1", VerifyRequest{
			BookingID: b.ID, Token: "tok",
		})
		assert.ErrorIs(t, err, booking.ErrNotPending)
	})

	t.Run("no token or pidx", func(t *testing.T) {
		bookings := newFakeBookingRepo()
		b := bookings.seed(booking.StatusPending)
		svc := newTestService(bookings, newFakePaymentRepo(), verifier)

		_, err := svc.VerifyAndConfirm(context.Background(), "student-1", VerifyRequest{BookingID: b.ID})
		assert.ErrorIs(t, err, ErrMissingReference)
	})
}

func TestVerifyAndConfirmVerificationFailure(t *testing.T) {
	bookings := newFakeBookingRepo()
	b := bookings.seed(booking.StatusPending)

	verifier := &fakeVerifier{err: ErrVerificationFailed}
	svc := newTestService(bookings, newFakePaymentRepo(), verifier)

	_, err := svc.VerifyAndConfirm(context.Background(), "student-1", VerifyRequest{
		BookingID: b.ID, Token: "tok-bad",
	})
	assert.ErrorIs(t, err, ErrVerificationFailed)

	// A failed verification never mutates booking state.
	stored, err := bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, stored.Status)
}

// A payment racing an owner approval must not produce a duplicate
// confirmation or a second payment row.
func TestVerifyAndConfirmLosesRace(t *testing.T) {
	bookings := newFakeBookingRepo()
	payments := newFakePaymentRepo()
	b := bookings.seed(booking.StatusPending)

	verifier := &fakeVerifier{verification: &Verification{TransactionID: "txn-1", AmountPaisa: 1800}}

	// Owner approval lands between the status read and the conditional update.
	raceVerifier := &raceyVerifier{inner: verifier, onVerify: func() {
		ok, err := bookings.UpdateStatusIfCurrent(context.Background(), b.ID, booking.StatusPending, booking.StatusConfirmed)
		require.NoError(t, err)
		require.True(t, ok)
	}}
	svc := newTestService(bookings, payments, raceVerifier)

	_, err := svc.VerifyAndConfirm(context.Background(), "student-1", VerifyRequest{
		BookingID: b.ID, Token: "tok",
	})
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	_, err = payments.GetByBookingID(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

type raceyVerifier struct {
	inner    Verifier
	onVerify func()
}

func (r *raceyVerifier) VerifyToken(ctx context.Context, token string, amount int64) (*Verification, error) {
	r.onVerify()
	return r.inner.VerifyToken(ctx, token, amount)
}

func (r *raceyVerifier) LookupPidx(ctx context.Context, pidx string) (*Verification, error) {
	r.onVerify()
	return r.inner.LookupPidx(ctx, pidx)
}

func TestPaisaToRupees(t *testing.T) {
	assert.True(t, PaisaToRupees(1800).Equal(decimal.RequireFromString("18.00")))
	assert.True(t, PaisaToRupees(250000).Equal(decimal.RequireFromString("2500.00")))
	assert.True(t, PaisaToRupees(1).Equal(decimal.RequireFromString("0.01")))
	assert.True(t, PaisaToRupees(0).IsZero())
}
