package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renishkhadka4/Sajilofinder/internal/hostel"
	"github.com/renishkhadka4/Sajilofinder/internal/notify"
	"github.com/renishkhadka4/Sajilofinder/internal/room"
	"github.com/renishkhadka4/Sajilofinder/internal/user"
)

type fakeRepo struct {
	mu       sync.Mutex
	bookings map[string]*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*Booking)}
}

func (f *fakeRepo) Create(_ context.Context, b *Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeRepo) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		clone := *b
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateStatusIfCurrent(_ context.Context, id string, from, to Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (f *fakeRepo) SetPidx(_ context.Context, id, pidx string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Pidx = &pidx
	return nil
}

func (f *fakeRepo) HasOverlap(_ context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.RoomID != roomID || b.ID == excludeBookingID || b.Status.IsTerminal() {
			continue
		}
		if b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn) {
			return true, nil
		}
	}
	return false, nil
}

type fakeRoomService struct {
	room.Service
	rooms map[string]*room.Room
}

func (f *fakeRoomService) GetByID(_ context.Context, id string) (*room.Room, error) {
	rm, ok := f.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return rm, nil
}

type fakeHostelService struct {
	hostel.Service
	hostels map[string]*hostel.Hostel
}

func (f *fakeHostelService) GetByID(_ context.Context, id string) (*hostel.Hostel, error) {
	h, ok := f.hostels[id]
	if !ok {
		return nil, hostel.ErrNotFound
	}
	return h, nil
}

type fakeUserService struct {
	user.Service
	users map[string]*user.User
}

func (f *fakeUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

type fakePayments struct {
	amounts map[string]decimal.Decimal
}

func (f *fakePayments) AmountPaid(_ context.Context, bookingID string) (decimal.Decimal, bool, error) {
	amount, ok := f.amounts[bookingID]
	if !ok {
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(_ context.Context, _, _ string) {}

func (noopNotifier) List(_ context.Context, _ notify.Filter) ([]*notify.Notification, int, error) {
	return nil, 0, nil
}
func (noopNotifier) MarkRead(_ context.Context, _, _ string) error { return nil }
func (noopNotifier) MarkAllRead(_ context.Context, _ string) error { return nil }

type fixture struct {
	repo     *fakeRepo
	rooms    *fakeRoomService
	hostels  *fakeHostelService
	payments *fakePayments
	svc      *service
}

const (
	ownerID   = "owner-1"
	studentID = "student-1"
	roomID    = "room-1"
	hostelID  = "hostel-1"
)

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	repo := newFakeRepo()
	rooms := &fakeRoomService{rooms: map[string]*room.Room{
		roomID: {ID: roomID, HostelID: hostelID, RoomNumber: "101", IsAvailable: true},
	}}
	hostels := &fakeHostelService{hostels: map[string]*hostel.Hostel{
		hostelID: {
			ID:      hostelID,
			OwnerID: ownerID,
			CancellationPolicy: hostel.CancellationPolicy{
				FullRefundDays:          7,
				PartialRefundDays:       3,
				PartialRefundPercentage: 50,
			},
		},
	}}
	users := &fakeUserService{users: map[string]*user.User{
		ownerID:   {ID: ownerID, Email: "owner@example.com"},
		studentID: {ID: studentID, Email: "student@example.com"},
	}}
	payments := &fakePayments{amounts: make(map[string]decimal.Decimal)}

	svc := NewService(repo, rooms, hostels, users, payments, noopNotifier{}, notify.NewDispatcher(notify.LogMailer{})).(*service)
	svc.now = func() time.Time { return now }

	return &fixture{repo: repo, rooms: rooms, hostels: hostels, payments: payments, svc: svc}
}

func (f *fixture) seedBooking(t *testing.T, status Status, checkIn, checkOut time.Time) *Booking {
	t.Helper()
	b := &Booking{
		StudentID:     studentID,
		RoomID:        roomID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Status:        status,
		StudentEmail:  "student@example.com",
		RoomNumber:    "101",
		HostelID:      hostelID,
		HostelName:    "Sunrise Hostel",
		HostelOwnerID: ownerID,
	}
	require.NoError(t, f.repo.Create(context.Background(), b))
	return b
}

func TestCreateBooking(t *testing.T) {
	now := date(2026, 3, 1)
	f := newFixture(t, now)

	b, err := f.svc.Create(context.Background(), studentID, CreateRequest{
		RoomID:   roomID,
		CheckIn:  date(2026, 3, 10),
		CheckOut: date(2026, 3, 15),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
	assert.NotEmpty(t, b.ID)
}

func TestCreateBookingValidation(t *testing.T) {
	now := date(2026, 3, 1)

	t.Run("check_out before check_in", func(t *testing.T) {
		f := newFixture(t, now)
		_, err := f.svc.Create(context.Background(), studentID, CreateRequest{
			RoomID:   roomID,
			CheckIn:  date(2026, 3, 15),
			CheckOut: date(2026, 3, 10),
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("zero-night stay", func(t *testing.T) {
		f := newFixture(t, now)
		_, err := f.svc.Create(context.Background(), studentID, CreateRequest{
			RoomID:   roomID,
			CheckIn:  date(2026, 3, 10),
			CheckOut: date(2026, 3, 10),
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("check_in in the past", func(t *testing.T) {
		f := newFixture(t, now)
		_, err := f.svc.Create(context.Background(), studentID, CreateRequest{
			RoomID:   roomID,
			CheckIn:  date(2026, 2, 20),
			CheckOut: date(2026, 2, 25),
		})
		assert.ErrorIs(t, err, ErrCheckInPast)
	})

	t.Run("room switched off", func(t *testing.T) {
		f := newFixture(t, now)
		f.rooms.rooms[roomID].IsAvailable = false
		_, err := f.svc.Create(context.Background(), studentID, CreateRequest{
			RoomID:   roomID,
			CheckIn:  date(2026, 3, 10),
			CheckOut: date(2026, 3, 15),
		})
		assert.ErrorIs(t, err, ErrRoomUnavailable)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t, now)
		_, err := f.svc.Create(context.Background(), studentID, CreateRequest{
			RoomID:   "room-unknown",
			CheckIn:  date(2026, 3, 10),
			CheckOut: date(2026, 3, 15),
		})
		assert.ErrorIs(t, err, room.ErrNotFound)
	})
}

func TestCreateBookingOverlap(t *testing.T) {
	now := date(2026, 3, 1)
	f := newFixture(t, now)
	f.seedBooking(t, StatusConfirmed, date(2026, 3, 10), date(2026, 3, 20))

	// Intersecting range is blocked.
	_, err := f.svc.Create(context.Background(), studentID, CreateRequest{
		RoomID:   roomID,
		CheckIn:  date(2026, 3, 15),
		CheckOut: date(2026, 3, 25),
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	// Back-to-back is fine: previous guest leaves the day the next arrives.
	_, err = f.svc.Create(context.Background(), studentID, CreateRequest{
		RoomID:   roomID,
		CheckIn:  date(2026, 3, 20),
		CheckOut: date(2026, 3, 25),
	})
	assert.NoError(t, err)
}

func TestCreateBookingIgnoresTerminalOverlap(t *testing.T) {
	now := date(2026, 3, 1)
	f := newFixture(t, now)
	f.seedBooking(t, StatusCanceled, date(2026, 3, 10), date(2026, 3, 20))
	f.seedBooking(t, StatusRejected, date(2026, 3, 10), date(2026, 3, 20))

	_, err := f.svc.Create(context.Background(), studentID, CreateRequest{
		RoomID:   roomID,
		CheckIn:  date(2026, 3, 12),
		CheckOut: date(2026, 3, 18),
	})
	assert.NoError(t, err)
}

func TestApprove(t *testing.T) {
	now := date(2026, 3, 1)

	t.Run("owner approves pending", func(t *testing.T) {
		f := newFixture(t, now)
		b := f.seedBooking(t, StatusPending, date(2026, 3, 10), date(2026, 3, 15))

		got, err := f.svc.Approve(context.Background(), b.ID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, got.Status)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		f := newFixture(t, now)
		b := f.seedBooking(t, StatusPending, date(2026, 3, 10), date(2026, 3, 15))

		_, err := f.svc.Approve(context.Background(), b.ID, "someone-else")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("already decided", func(t *testing.T) {
		f := newFixture(t, now)
		b := f.seedBooking(t, StatusRejected, date(2026, 3, 10), date(2026, 3, 15))

		_, err := f.svc.Approve(context.Background(), b.ID, ownerID)
		assert.ErrorIs(t, err, ErrNotPending)
	})
}

func TestReject(t *testing.T) {
	now := date(2026, 3, 1)
	f := newFixture(t, now)
	b := f.seedBooking(t, StatusPending, date(2026, 3, 10), date(2026, 3, 15))

	got, err := f.svc.Reject(context.Background(), b.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, got.Status)
}

// Two concurrent decisions on the same pending booking must resolve to
// exactly one winner.
func TestConcurrentDecisions(t *testing.T) {
	now := date(2026, 3, 1)

	for i := 0; i < 50; i++ {
		f := newFixture(t, now)
		b := f.seedBooking(t, StatusPending, date(2026, 3, 10), date(2026, 3, 15))

		var wg sync.WaitGroup
		results := make([]error, 2)

		wg.Add(2)
		go func() {
			defer wg.Done()
			_, results[0] = f.svc.Approve(context.Background(), b.ID, ownerID)
		}()
		go func() {
			defer wg.Done()
			_, results[1] = f.svc.Reject(context.Background(), b.ID, ownerID)
		}()
		wg.Wait()

		var wins, losses int
		for _, err := range results {
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, ErrNotPending):
				losses++
			}
		}
		require.Equal(t, 1, wins, "exactly one decision must win")
		require.Equal(t, 1, losses)

		stored, err := f.repo.GetByID(context.Background(), b.ID)
		require.NoError(t, err)
		assert.NotEqual(t, StatusPending, stored.Status)
	}
}

func TestCancel(t *testing.T) {
	now := date(2026, 3, 1)

	t.Run("pending cancels with no refund", func(t *testing.T) {
		f := newFixture(t, now)
		b := f.seedBooking(t, StatusPending, date(2026, 3, 10), date(2026, 3, 15))

		result, err := f.svc.Cancel(context.Background(), b.ID, studentID)
		require.NoError(t, err)
		assert.Equal(t, StatusCanceled, result.Booking.Status)
		assert.Equal(t, 0, result.RefundPercentage)
		assert.True(t, result.RefundAmount.IsZero())
	})

	t.Run("confirmed and paid refunds per policy", func(t *testing.T) {
		f := newFixture(t, now)
		b := f.seedBooking(t, StatusConfirmed, date(2026, 3, 10), date(2026, 3, 15))
		f.payments.amounts[b.ID] = decimal.RequireFromString("5000.00")

		result, err := f.svc.Cancel(context.Background(), b.ID, studentID)
		require.NoError(t, err)
		assert.Equal(t, 100, result.RefundPercentage)
		assert.True(t, result.RefundAmount.Equal(decimal.RequireFromString("5000.00")), "got %s", result.RefundAmount)
	})

	t.Run("confirmed close to check-in refunds partially", func(t *testing.T) {
		f := newFixture(t, now)
		b := f.seedBooking(t, StatusConfirmed, date(2026, 3, 5), date(2026, 3, 9))
		f.payments.amounts[b.ID] = decimal.RequireFromString("5000.00")

		result, err := f.svc.Cancel(context.Background(), b.ID, studentID)
		require.NoError(t, err)
		assert.Equal(t, 50, result.RefundPercentage)
		assert.True(t, result.RefundAmount.Equal(decimal.RequireFromString("2500.00")), "got %s", result.RefundAmount)
	})

	t.Run("confirmed but unpaid refunds nothing", func(t *testing.T) {
		f := newFixture(t, now)
		b := f.seedBooking(t, StatusConfirmed, date(2026, 3, 10), date(2026, 3, 15))

		result, err := f.svc.Cancel(context.Background(), b.ID, studentID)
		require.NoError(t, err)
		assert.Equal(t, 0, result.RefundPercentage)
		assert.True(t, result.RefundAmount.IsZero())
	})

	t.Run("terminal booking cannot cancel", func(t *testing.T) {
		f := newFixture(t, now)
		b := f.seedBooking(t, StatusCanceled, date(2026, 3, 10), date(2026, 3, 15))

		_, err := f.svc.Cancel(context.Background(), b.ID, studentID)
		assert.ErrorIs(t, err, ErrNotCancelable)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		f := newFixture(t, now)
		b := f.seedBooking(t, StatusPending, date(2026, 3, 10), date(2026, 3, 15))

		_, err := f.svc.Cancel(context.Background(), b.ID, "someone-else")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}
