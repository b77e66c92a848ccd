package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Verification is the processor's answer for a transaction. Amounts are in
// paisa, the provider's smallest currency unit.
type Verification struct {
	TransactionID string
	AmountPaisa   int64
}

// Verifier talks to the payment processor. Two flows exist: the older
// token+amount verify call and the newer pidx lookup.
type Verifier interface {
	VerifyToken(ctx context.Context, token string, amountPaisa int64) (*Verification, error)
	LookupPidx(ctx context.Context, pidx string) (*Verification, error)
}

// KhaltiClient verifies transactions against the Khalti API using a
// shared-secret key. All calls carry a bounded timeout so a stalled
// processor surfaces as a verification failure the client may retry.
type KhaltiClient struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewKhaltiClient(baseURL, secretKey string, timeout time.Duration) *KhaltiClient {
	return &KhaltiClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: timeout},
	}
}

func (k *KhaltiClient) VerifyToken(ctx context.Context, token string, amountPaisa int64) (*Verification, error) {
	payload := map[string]any{
		"token":  token,
		"amount": amountPaisa,
	}

	var result struct {
		Idx    string `json:"idx"`
		Amount int64  `json:"amount"`
	}
	if err := k.post(ctx, "/payment/verify/", payload, &result); err != nil {
		return nil, err
	}
	if result.Idx == "" {
		return nil, ErrVerificationFailed
	}

	return &Verification{TransactionID: result.Idx, AmountPaisa: result.Amount}, nil
}

func (k *KhaltiClient) LookupPidx(ctx context.Context, pidx string) (*Verification, error) {
	payload := map[string]any{"pidx": pidx}

	var result struct {
		Status        string `json:"status"`
		TotalAmount   int64  `json:"total_amount"`
		TransactionID string `json:"transaction_id"`
	}
	if err := k.post(ctx, "/epayment/lookup/", payload, &result); err != nil {
		return nil, err
	}
	if result.Status != "Completed" {
		return nil, ErrVerificationFailed
	}

	return &Verification{TransactionID: result.TransactionID, AmountPaisa: result.TotalAmount}, nil
}

func (k *KhaltiClient) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal khalti payload failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build khalti request failed: %w", err)
	}
	req.Header.Set("Authorization", "Key "+k.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := k.client.Do(req)
	if err != nil {
		// Network failures and timeouts are retryable by the caller with
		// the same token, so report them as verification failures.
		log.Warn().Err(err).Str("path", path).Msg("khalti request failed")
		return ErrVerificationFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("khalti rejected transaction")
		return ErrVerificationFailed
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("khalti response malformed")
		return ErrVerificationFailed
	}
	return nil
}
