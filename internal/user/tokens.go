package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore holds short-lived one-time secrets: signup OTPs and password
// reset tokens. Expiry is enforced by the store itself (Redis TTL), not by
// a process-lifetime sweep.
type TokenStore interface {
	SetOTP(ctx context.Context, email, code string, ttl time.Duration) error
	CheckOTP(ctx context.Context, email, code string) (bool, error)
	SetResetToken(ctx context.Context, token, userID string, ttl time.Duration) error
	// ConsumeResetToken returns the user ID bound to token and deletes it
	// in the same operation. Returns "" when the token is unknown or expired.
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func otpKey(email string) string   { return "otp:" + email }
func resetKey(token string) string { return "pwreset:" + token }

func (s *redisTokenStore) SetOTP(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, otpKey(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

func (s *redisTokenStore) CheckOTP(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, otpKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read otp: %w", err)
	}
	if stored != code {
		return false, nil
	}

	// One shot: a matched OTP is gone.
	if err := s.client.Del(ctx, otpKey(email)).Err(); err != nil {
		return false, fmt.Errorf("failed to delete otp: %w", err)
	}
	return true, nil
}

func (s *redisTokenStore) SetResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, resetKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return nil
}

func (s *redisTokenStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, resetKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to consume reset token: %w", err)
	}
	return userID, nil
}

// GenerateOTP returns a random 6-digit code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// GenerateResetToken returns a random URL-safe token.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
