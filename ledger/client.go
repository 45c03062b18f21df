package ledger

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxAttempts    = 3
	attemptTimeout = 7 * time.Second
)

// backoffUnit scales the inter-attempt delay (attempt-1 units).
var backoffUnit = time.Second

// ErrUnreachable means every attempt failed on network, timeout or 5xx.
// No local effect may be applied once it is returned.
var ErrUnreachable = errors.New("ledger unreachable")

// ErrInsufficientFunds is the ledger refusing a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// APIError is any other client-side rejection from the ledger (4xx).
// It is never retried.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("ledger rejected request with status %d", e.Status)
}

// Client signs and sends balance changes to the external ledger service.
// The ledger is the system of record for balances; callers must not apply
// any local mutation before ChangeBalance succeeds.
type Client struct {
	APIURL string
	Secret string
	HTTP   *http.Client
}

func New() *Client {
	return &Client{
		APIURL: os.Getenv("LEDGER_API_URL"),
		Secret: os.Getenv("LEDGER_SECRET_KEY"),
		HTTP:   &http.Client{Timeout: attemptTimeout},
	}
}

type changeRequest struct {
	UserID int64  `json:"user_id"`
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
}

type changeResponse struct {
	NewBalance int64 `json:"new_balance"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// ChangeBalance applies delta (negative = debit) to the user's ledger
// balance and returns the resulting balance. One idempotency key is
// generated per call and reused across every retry of that call, so a
// request that succeeded ledger-side before a timeout cannot be applied
// twice. 4xx responses are surfaced immediately; network errors, 5xx and
// malformed bodies are retried with increasing backoff.
func (c *Client) ChangeBalance(ctx context.Context, telegramID int64, delta int64, reason string) (int64, error) {
	body, err := json.Marshal(changeRequest{
		UserID: telegramID,
		Delta:  delta,
		Reason: reason,
	})
	if err != nil {
		return 0, err
	}

	mac := hmac.New(sha256.New, []byte(c.Secret))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	idempotencyKey := uuid.New().String()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(time.Duration(attempt-1) * backoffUnit):
			case <-ctx.Done():
				return 0, fmt.Errorf("%w: %v", ErrUnreachable, ctx.Err())
			}
		}

		newBalance, retry, err := c.attempt(ctx, body, signature, idempotencyKey)
		if err == nil {
			return newBalance, nil
		}
		if !retry {
			return 0, err
		}
		log.Printf("⚠️  Ledger attempt %d/%d failed: %v", attempt, maxAttempts, err)
		lastErr = err
	}

	return 0, fmt.Errorf("%w: %v", ErrUnreachable, lastErr)
}

func (c *Client) attempt(ctx context.Context, body []byte, signature, idempotencyKey string) (int64, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(body))
	if err != nil {
		return 0, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", signature)
	req.Header.Set("X-Idempotency-Key", idempotencyKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		var eb errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		if resp.StatusCode == http.StatusPaymentRequired ||
			strings.Contains(strings.ToLower(eb.Detail), "insufficient") {
			return 0, false, ErrInsufficientFunds
		}
		return 0, false, &APIError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, true, fmt.Errorf("ledger returned status %d", resp.StatusCode)
	}

	var ok changeResponse
	if err := json.NewDecoder(resp.Body).Decode(&ok); err != nil {
		return 0, true, fmt.Errorf("malformed ledger response: %v", err)
	}
	return ok.NewBalance, false, nil
}
