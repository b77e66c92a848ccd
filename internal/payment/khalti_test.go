package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKhaltiVerifyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/verify/", r.URL.Path)
		assert.Equal(t, "Key test-secret", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok-abc", body["token"])
		assert.EqualValues(t, 1800, body["amount"])

		json.NewEncoder(w).Encode(map[string]any{"idx": "txn-1", "amount": 1800})
	}))
	defer srv.Close()

	client := NewKhaltiClient(srv.URL, "test-secret", 5*time.Second)
	v, err := client.VerifyToken(context.Background(), "tok-abc", 1800)
	require.NoError(t, err)
	assert.Equal(t, "txn-1", v.TransactionID)
	assert.EqualValues(t, 1800, v.AmountPaisa)
}

func TestKhaltiVerifyTokenRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"detail": "invalid token"})
	}))
	defer srv.Close()

	client := NewKhaltiClient(srv.URL, "test-secret", 5*time.Second)
	_, err := client.VerifyToken(context.Background(), "tok-bad", 1800)
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestKhaltiLookupPidx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/epayment/lookup/", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pidx-9", body["pidx"])

		json.NewEncoder(w).Encode(map[string]any{
			"status":         "Completed",
			"total_amount":   250000,
			"transaction_id": "txn-9",
		})
	}))
	defer srv.Close()

	client := NewKhaltiClient(srv.URL, "test-secret", 5*time.Second)
	v, err := client.LookupPidx(context.Background(), "pidx-9")
	require.NoError(t, err)
	assert.Equal(t, "txn-9", v.TransactionID)
	assert.EqualValues(t, 250000, v.AmountPaisa)
}

func TestKhaltiLookupPidxNotCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":       "Pending",
			"total_amount": 250000,
		})
	}))
	defer srv.Close()

	client := NewKhaltiClient(srv.URL, "test-secret", 5*time.Second)
	_, err := client.LookupPidx(context.Background(), "pidx-9")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestKhaltiMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewKhaltiClient(srv.URL, "test-secret", 5*time.Second)
	_, err := client.VerifyToken(context.Background(), "tok", 100)
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestKhaltiUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewKhaltiClient(srv.URL, "test-secret", time.Second)
	_, err := client.VerifyToken(context.Background(), "tok", 100)
	assert.ErrorIs(t, err, ErrVerificationFailed)
}
