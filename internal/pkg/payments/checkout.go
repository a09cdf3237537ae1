package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hangarline/hangarline/internal/pkg/env"
)

const (
	defaultCheckoutBaseURL = "https://pay.hangarline.example/api/v1"

	SessionStatusOpen     = "open"
	SessionStatusComplete = "complete"
	SessionStatusExpired  = "expired"
)

// CheckoutClient talks to the hosted payment page provider. Invoices are paid
// off-site: we create a session, redirect the owner to its URL and reconcile
// through the signed webhook (or an explicit resync).
type CheckoutClient struct {
	APIKey        string
	WebhookSecret string
	BaseURL       string

	HTTPClient *http.Client
}

// CheckoutSession is the provider's session resource.
type CheckoutSession struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Reference   string `json:"reference"`
}

// WebhookEvent is a parsed provider webhook payload.
type WebhookEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Reference string `json:"reference"`
	PaidAt    int64  `json:"paid_at"`
}

func NewCheckoutClientFromEnv() *CheckoutClient {
	return &CheckoutClient{
		APIKey:        strings.TrimSpace(env.GetEnv("CHECKOUT_API_KEY", "")),
		WebhookSecret: strings.TrimSpace(env.GetEnv("CHECKOUT_WEBHOOK_SECRET", "")),
		BaseURL:       strings.TrimRight(env.GetEnv("CHECKOUT_API_BASE_URL", defaultCheckoutBaseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateSession opens a hosted checkout session for the given invoice
// reference and amount. successURL and cancelURL are where the provider sends
// the owner afterwards.
func (c *CheckoutClient) CreateSession(ctx context.Context, reference string, amountCents int64, currency, successURL, cancelURL string) (*CheckoutSession, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("CHECKOUT_API_KEY is not configured")
	}
	if strings.TrimSpace(reference) == "" {
		return nil, errors.New("invoice reference is required")
	}
	if amountCents <= 0 {
		return nil, errors.New("amount must be positive")
	}

	form := url.Values{}
	form.Set("reference", strings.TrimSpace(reference))
	form.Set("amount_cents", fmt.Sprintf("%d", amountCents))
	form.Set("currency", currency)
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, providerError(resp, body)
	}

	var out CheckoutSession
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.ID) == "" || strings.TrimSpace(out.URL) == "" {
		return nil, errors.New("checkout session response missing id or url")
	}
	return &out, nil
}

// GetSession fetches the current state of a session, used by the manual
// "resync payment" action when a webhook was missed.
func (c *CheckoutClient) GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("CHECKOUT_API_KEY is not configured")
	}
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return nil, errors.New("session id is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/checkout/sessions/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, providerError(resp, body)
	}

	var out CheckoutSession
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// providerError builds an error from a non-2xx provider response. Preference
// order: the structured error message if the body parses as the provider's
// error envelope, else the raw body, else the bare HTTP status line.
func providerError(resp *http.Response, body []byte) error {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && strings.TrimSpace(envelope.Error.Message) != "" {
		return fmt.Errorf("checkout provider: %s", envelope.Error.Message)
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		return fmt.Errorf("checkout provider: %s", trimmed)
	}
	return fmt.Errorf("checkout provider: HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// VerifyWebhookSignature checks the HMAC-SHA256 hex signature the provider
// sends in X-Checkout-Signature.
func VerifyWebhookSignature(payload []byte, signature, secret string) bool {
	sig := strings.TrimSpace(signature)
	if sig == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(sig)))
}

// ParseWebhookEvent decodes a webhook payload after signature verification.
func ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ev.SessionID) == "" {
		return nil, errors.New("webhook payload missing session id")
	}
	if strings.TrimSpace(ev.Type) == "" {
		return nil, errors.New("webhook payload missing event type")
	}
	return &ev, nil
}
