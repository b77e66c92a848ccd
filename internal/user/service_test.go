package user

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/renishkhadka4/Sajilofinder/internal/auth"
	"github.com/renishkhadka4/Sajilofinder/internal/notify"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	nextID  int
	byID    map[string]*User
	byEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now().UTC()
	clone := *u
	r.byID[u.ID] = &clone
	r.byEmail[u.Email] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*User
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeUserRepo) SetVerified(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.IsVerified = true
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

type fakeTokenStore struct {
	mu     sync.Mutex
	otps   map[string]string
	resets map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		otps:   make(map[string]string),
		resets: make(map[string]string),
	}
}

func (s *fakeTokenStore) SetOTP(ctx context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps[email] = code
	return nil
}

func (s *fakeTokenStore) CheckOTP(ctx context.Context, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.otps[email]
	if !ok || stored != code {
		return false, nil
	}
	delete(s.otps, email)
	return true, nil
}

func (s *fakeTokenStore) SetResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets[token] = userID
	return nil
}

func (s *fakeTokenStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.resets[token]
	if !ok {
		return "", nil
	}
	delete(s.resets, token)
	return userID, nil
}

func (s *fakeTokenStore) otpFor(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.otps[email]
}

func (s *fakeTokenStore) resetTokenFor(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, id := range s.resets {
		if id == userID {
			return token
		}
	}
	return ""
}

type quietMailer struct{}

func (quietMailer) Send(ctx context.Context, to, subject, body string) error { return nil }

type userFixture struct {
	repo   *fakeUserRepo
	tokens *fakeTokenStore
	svc    Service
}

func newUserFixture() *userFixture {
	repo := newFakeUserRepo()
	tokens := newFakeTokenStore()
	hasher := auth.NewBcryptPasswordHasherWithCost(bcrypt.MinCost)
	dispatcher := notify.NewDispatcher(quietMailer{})
	svc := NewService(repo, hasher, tokens, dispatcher, 10*time.Minute, 30*time.Minute)
	return &userFixture{repo: repo, tokens: tokens, svc: svc}
}

func (f *userFixture) register(t *testing.T, email, role string) *User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), RegisterRequest{
		Email:    email,
		Username: "tester",
		Password: "secret-password",
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	f := newUserFixture()

	u := f.register(t, "Student@Example.com ", "student")

	assert.Equal(t, "student@example.com", u.Email)
	assert.Equal(t, RoleStudent, u.Role)
	assert.False(t, u.IsVerified)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret-password", u.PasswordHash)

	code := f.tokens.otpFor("student@example.com")
	assert.Len(t, code, 6)
}

func TestRegisterValidation(t *testing.T) {
	f := newUserFixture()
	f.register(t, "taken@example.com", "student")

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr error
	}{
		{
			name:    "duplicate email",
			req:     RegisterRequest{Email: "taken@example.com", Username: "x", Password: "secret-password", Role: "student"},
			wantErr: ErrEmailAlreadyUsed,
		},
		{
			name:    "duplicate email different case",
			req:     RegisterRequest{Email: "TAKEN@example.com", Username: "x", Password: "secret-password", Role: "student"},
			wantErr: ErrEmailAlreadyUsed,
		},
		{
			name:    "admin not self registrable",
			req:     RegisterRequest{Email: "admin@example.com", Username: "x", Password: "secret-password", Role: "admin"},
			wantErr: ErrInvalidRole,
		},
		{
			name:    "unknown role",
			req:     RegisterRequest{Email: "new@example.com", Username: "x", Password: "secret-password", Role: "landlord"},
			wantErr: ErrInvalidRole,
		},
		{
			name:    "short password",
			req:     RegisterRequest{Email: "new@example.com", Username: "x", Password: "short", Role: "student"},
			wantErr: ErrPasswordTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerifyOTP(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	u := f.register(t, "student@example.com", "student")
	code := f.tokens.otpFor(u.Email)

	t.Run("wrong code", func(t *testing.T) {
		err := f.svc.VerifyOTP(ctx, u.Email, "000000")
		assert.ErrorIs(t, err, ErrInvalidOTP)
	})

	t.Run("unknown email", func(t *testing.T) {
		err := f.svc.VerifyOTP(ctx, "nobody@example.com", code)
		assert.ErrorIs(t, err, ErrInvalidOTP)
	})

	t.Run("correct code verifies", func(t *testing.T) {
		require.NoError(t, f.svc.VerifyOTP(ctx, u.Email, code))

		got, err := f.repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, got.IsVerified)
	})

	t.Run("already verified is a no-op", func(t *testing.T) {
		assert.NoError(t, f.svc.VerifyOTP(ctx, u.Email, "whatever"))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	u := f.register(t, "student@example.com", "student")
	require.NoError(t, f.repo.SetVerified(ctx, u.ID))

	t.Run("success", func(t *testing.T) {
		got, err := f.svc.Login(ctx, "Student@Example.com", "secret-password")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, u.Email, "not-the-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Login(ctx, "nobody@example.com", "secret-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unverified account", func(t *testing.T) {
		other := f.register(t, "pending@example.com", "student")
		_, err := f.svc.Login(ctx, other.Email, "secret-password")
		assert.ErrorIs(t, err, ErrNotVerified)
	})

	t.Run("inactive account", func(t *testing.T) {
		f.repo.mu.Lock()
		f.repo.byEmail[u.Email].IsActive = false
		f.repo.mu.Unlock()

		_, err := f.svc.Login(ctx, u.Email, "secret-password")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	u := f.register(t, "student@example.com", "student")
	require.NoError(t, f.repo.SetVerified(ctx, u.ID))

	t.Run("unknown email reports success without a token", func(t *testing.T) {
		require.NoError(t, f.svc.RequestPasswordReset(ctx, "nobody@example.com"))
		assert.Empty(t, f.tokens.resets)
	})

	t.Run("reset flow", func(t *testing.T) {
		require.NoError(t, f.svc.RequestPasswordReset(ctx, u.Email))
		token := f.tokens.resetTokenFor(u.ID)
		require.NotEmpty(t, token)

		require.NoError(t, f.svc.ResetPassword(ctx, token, "brand-new-password"))

		_, err := f.svc.Login(ctx, u.Email, "secret-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = f.svc.Login(ctx, u.Email, "brand-new-password")
		assert.NoError(t, err)

		// The token is single use.
		err = f.svc.ResetPassword(ctx, token, "another-password")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("short new password", func(t *testing.T) {
		err := f.svc.ResetPassword(ctx, "any-token", "short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestGenerateOTPFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}
