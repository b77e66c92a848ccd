package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/renishkhadka4/Sajilofinder/internal/auth"
	"github.com/renishkhadka4/Sajilofinder/internal/notify"
)

type RegisterRequest struct {
	Email       string
	Username    string
	Password    string
	Role        string
	PhoneNumber string
}

// Service defines business logic related to accounts.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	VerifyOTP(ctx context.Context, email, code string) error
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type service struct {
	repo       Repository
	hasher     auth.PasswordHasher
	tokens     TokenStore
	dispatcher *notify.Dispatcher

	otpTTL            time.Duration
	resetTokenTTL     time.Duration
	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher, tokens TokenStore, dispatcher *notify.Dispatcher, otpTTL, resetTokenTTL time.Duration) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		tokens:            tokens,
		dispatcher:        dispatcher,
		otpTTL:            otpTTL,
		resetTokenTTL:     resetTokenTTL,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	cleanEmail := normalizeEmail(req.Email)
	if cleanEmail == "" {
		return nil, fmt.Errorf("email is required")
	}

	role, err := ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	// Admin accounts are provisioned out of band.
	if role == RoleAdmin {
		return nil, ErrInvalidRole
	}

	if len(req.Password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Check if email is already used.
	_, err = s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var phonePtr *string
	if p := strings.TrimSpace(req.PhoneNumber); p != "" {
		phonePtr = &p
	}

	u := &User{
		Email:        cleanEmail,
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Role:         role,
		PhoneNumber:  phonePtr,
		IsVerified:   false,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	// Account stays unverified until the emailed OTP is confirmed.
	code, err := GenerateOTP()
	if err != nil {
		return nil, err
	}
	if err := s.tokens.SetOTP(ctx, cleanEmail, code, s.otpTTL); err != nil {
		return nil, err
	}

	s.dispatcher.SendAsync(cleanEmail, "Verify your SajiloFinder account",
		fmt.Sprintf("Hello %s,\n\nYour verification code is %s. It expires in %s.\n\nThank you for using SajiloFinder!",
			u.Username, code, s.otpTTL))

	return u, nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) error {
	cleanEmail := normalizeEmail(email)

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidOTP
		}
		return err
	}
	if u.IsVerified {
		return nil
	}

	ok, err := s.tokens.CheckOTP(ctx, cleanEmail, strings.TrimSpace(code))
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOTP
	}

	return s.repo.SetVerified(ctx, u.ID)
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}
	if !u.IsVerified {
		return nil, ErrNotVerified
	}

	// Update last_login_at (best effort; do not fail login if update fails).
	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		log.Warn().Err(err).Str("user_id", u.ID).Msg("failed to update last login")
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

// RequestPasswordReset issues a one-time reset token with a TTL. It reports
// success even for unknown emails so the endpoint can not be used to probe
// which addresses have accounts.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	cleanEmail := normalizeEmail(email)

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := GenerateResetToken()
	if err != nil {
		return err
	}
	if err := s.tokens.SetResetToken(ctx, token, u.ID, s.resetTokenTTL); err != nil {
		return err
	}

	s.dispatcher.SendAsync(u.Email, "Reset your SajiloFinder password",
		fmt.Sprintf("Hello %s,\n\nUse this token to reset your password: %s\nIt expires in %s.\n\nIf you did not request a reset, you can ignore this mail.",
			u.Username, token, s.resetTokenTTL))

	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < s.minPasswordLength {
		return ErrPasswordTooShort
	}

	userID, err := s.tokens.ConsumeResetToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return err
	}
	if userID == "" {
		return ErrInvalidResetToken
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, hash)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
