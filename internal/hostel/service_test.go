package hostel

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	Repository

	mu      sync.Mutex
	nextID  int
	hostels map[string]*Hostel
	floors  map[string]*Floor
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		hostels: make(map[string]*Hostel),
		floors:  make(map[string]*Floor),
	}
}

func (r *fakeRepo) id(prefix string) string {
	r.nextID++
	return fmt.Sprintf("%s-%d", prefix, r.nextID)
}

func (r *fakeRepo) Create(ctx context.Context, h *Hostel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h.ID = r.id("hostel")
	clone := *h
	r.hostels[h.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Hostel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hostels[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *h
	return &clone, nil
}

func (r *fakeRepo) Update(ctx context.Context, h *Hostel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hostels[h.ID]; !ok {
		return ErrNotFound
	}
	clone := *h
	r.hostels[h.ID] = &clone
	return nil
}

func (r *fakeRepo) SetCancellationPolicy(ctx context.Context, id string, policy CancellationPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hostels[id]
	if !ok {
		return ErrNotFound
	}
	h.CancellationPolicy = policy
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hostels[id]; !ok {
		return ErrNotFound
	}
	delete(r.hostels, id)
	return nil
}

func (r *fakeRepo) CreateFloor(ctx context.Context, f *Floor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.floors {
		if existing.HostelID == f.HostelID && existing.FloorNumber == f.FloorNumber {
			return ErrDuplicateFloor
		}
	}
	f.ID = r.id("floor")
	clone := *f
	r.floors[f.ID] = &clone
	return nil
}

func (r *fakeRepo) GetFloorByID(ctx context.Context, id string) (*Floor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.floors[id]
	if !ok {
		return nil, ErrFloorNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *fakeRepo) DeleteFloor(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.floors[id]; !ok {
		return ErrFloorNotFound
	}
	delete(r.floors, id)
	return nil
}

const (
	ownerID    = "owner-1"
	strangerID = "stranger-1"
)

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, nil), repo
}

func createHostel(t *testing.T, svc Service) *Hostel {
	t.Helper()
	h, err := svc.Create(context.Background(), CreateRequest{
		OwnerID: ownerID,
		Name:    "Everest Hostel",
		Address: "Kathmandu",
	})
	require.NoError(t, err)
	return h
}

func TestCreateHostelValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	low := decimal.NewFromInt(5000)
	high := decimal.NewFromInt(9000)

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name:    "missing name",
			req:     CreateRequest{OwnerID: ownerID, Name: "  ", Address: "Kathmandu"},
			wantErr: ErrNameRequired,
		},
		{
			name:    "missing address",
			req:     CreateRequest{OwnerID: ownerID, Name: "Everest", Address: ""},
			wantErr: ErrAddressRequired,
		},
		{
			name:    "rent min above max",
			req:     CreateRequest{OwnerID: ownerID, Name: "Everest", Address: "Kathmandu", RentMin: &high, RentMax: &low},
			wantErr: ErrInvalidRentRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("valid", func(t *testing.T) {
		h, err := svc.Create(ctx, CreateRequest{OwnerID: ownerID, Name: " Everest ", Address: "Kathmandu", RentMin: &low, RentMax: &high})
		require.NoError(t, err)
		assert.Equal(t, "Everest", h.Name)
		assert.NotEmpty(t, h.ID)
	})
}

func TestUpdateHostelOwnership(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	h := createHostel(t, svc)

	req := CreateRequest{OwnerID: ownerID, Name: "Renamed", Address: "Pokhara"}

	_, err := svc.Update(ctx, h.ID, strangerID, req)
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.Update(ctx, h.ID, ownerID, req)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "Pokhara", updated.Address)
}

func TestSetCancellationPolicy(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	h := createHostel(t, svc)

	t.Run("invalid policies", func(t *testing.T) {
		bad := []CancellationPolicy{
			{FullRefundDays: -1},
			{FullRefundDays: 3, PartialRefundDays: 7},
			{FullRefundDays: 7, PartialRefundDays: 3, PartialRefundPercentage: 120},
			{FullRefundDays: 7, PartialRefundDays: 3, PartialRefundPercentage: -5},
		}
		for _, p := range bad {
			assert.ErrorIs(t, svc.SetCancellationPolicy(ctx, h.ID, ownerID, p), ErrInvalidPolicy)
		}
	})

	t.Run("stranger", func(t *testing.T) {
		p := CancellationPolicy{FullRefundDays: 7, PartialRefundDays: 3, PartialRefundPercentage: 50}
		assert.ErrorIs(t, svc.SetCancellationPolicy(ctx, h.ID, strangerID, p), ErrNotOwner)
	})

	t.Run("owner sets policy", func(t *testing.T) {
		p := CancellationPolicy{FullRefundDays: 7, PartialRefundDays: 3, PartialRefundPercentage: 50}
		require.NoError(t, svc.SetCancellationPolicy(ctx, h.ID, ownerID, p))

		got, err := repo.GetByID(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, p, got.CancellationPolicy)
	})
}

func TestFloors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	h := createHostel(t, svc)

	f, err := svc.AddFloor(ctx, h.ID, ownerID, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, h.ID, f.HostelID)

	_, err = svc.AddFloor(ctx, h.ID, strangerID, 2, nil)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.AddFloor(ctx, h.ID, ownerID, 1, nil)
	assert.ErrorIs(t, err, ErrDuplicateFloor)

	err = svc.DeleteFloor(ctx, f.ID, strangerID)
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.DeleteFloor(ctx, f.ID, ownerID))
	_, err = svc.GetFloorByID(ctx, f.ID)
	assert.ErrorIs(t, err, ErrFloorNotFound)
}
