package ledger

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	return &Client{
		APIURL: url,
		Secret: "test-secret",
		HTTP:   &http.Client{Timeout: time.Second},
	}
}

func TestChangeBalanceSignsRequest(t *testing.T) {
	backoffUnit = time.Millisecond

	var gotBody []byte
	var gotSignature, gotKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get("X-Signature")
		gotKey = r.Header.Get("X-Idempotency-Key")
		json.NewEncoder(w).Encode(map[string]int64{"new_balance": 900})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	newBalance, err := client.ChangeBalance(context.Background(), 42, -100, "open_case_x1")
	if err != nil {
		t.Fatalf("ChangeBalance failed: %v", err)
	}
	if newBalance != 900 {
		t.Errorf("newBalance = %d, want 900", newBalance)
	}

	var req changeRequest
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}
	if req.UserID != 42 || req.Delta != -100 || req.Reason != "open_case_x1" {
		t.Errorf("unexpected request body: %+v", req)
	}

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write(gotBody)
	want := hex.EncodeToString(mac.Sum(nil))
	if gotSignature != want {
		t.Errorf("signature = %s, want %s", gotSignature, want)
	}
	if gotKey == "" {
		t.Error("idempotency key header missing")
	}
}

func TestChangeBalanceRetriesServerErrors(t *testing.T) {
	backoffUnit = time.Millisecond

	var keys []string
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		keys = append(keys, r.Header.Get("X-Idempotency-Key"))
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]int64{"new_balance": 150})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	newBalance, err := client.ChangeBalance(context.Background(), 7, 50, "sell_item_3")
	if err != nil {
		t.Fatalf("ChangeBalance failed: %v", err)
	}
	if newBalance != 150 {
		t.Errorf("newBalance = %d, want 150", newBalance)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}

	// One logical wager keeps one idempotency key across every retry, so
	// an attempt that silently succeeded cannot be applied twice.
	for i := 1; i < len(keys); i++ {
		if keys[i] != keys[0] {
			t.Errorf("idempotency key rotated between retries: %q vs %q", keys[0], keys[i])
		}
	}
}

func TestChangeBalanceDoesNotRetryClientErrors(t *testing.T) {
	backoffUnit = time.Millisecond

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "unknown user"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ChangeBalance(context.Background(), 7, -50, "coinflip_bet")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Detail != "unknown user" {
		t.Errorf("detail = %q, want %q", apiErr.Detail, "unknown user")
	}
	if attempts != 1 {
		t.Errorf("4xx was retried: attempts = %d, want 1", attempts)
	}
}

func TestChangeBalanceInsufficientFunds(t *testing.T) {
	backoffUnit = time.Millisecond

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Insufficient funds"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ChangeBalance(context.Background(), 7, -5000, "tower_start")
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestChangeBalanceUnreachableAfterRetries(t *testing.T) {
	backoffUnit = time.Millisecond

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ChangeBalance(context.Background(), 7, -10, "slots_bet")
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestChangeBalanceMalformedResponseRetried(t *testing.T) {
	backoffUnit = time.Millisecond

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Write([]byte("not json"))
			return
		}
		json.NewEncoder(w).Encode(map[string]int64{"new_balance": 10})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	newBalance, err := client.ChangeBalance(context.Background(), 7, 10, "miner_cashout")
	if err != nil {
		t.Fatalf("ChangeBalance failed: %v", err)
	}
	if newBalance != 10 {
		t.Errorf("newBalance = %d, want 10", newBalance)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}
