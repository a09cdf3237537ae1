package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(serverURL string) *CheckoutClient {
	return &CheckoutClient{
		APIKey:        "test-key",
		WebhookSecret: "top-secret",
		BaseURL:       serverURL,
		HTTPClient:    &http.Client{Timeout: 5 * time.Second},
	}
}

func TestCreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/checkout/sessions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("reference"); got != "INV-202609-0001" {
			t.Errorf("unexpected reference: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_123","url":"https://pay.example/cs_123","status":"open","amount_cents":79750,"currency":"USD","reference":"INV-202609-0001"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	sess, err := client.CreateSession(context.Background(), "INV-202609-0001", 79750, "USD", "https://app/billing/success", "https://app/billing")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.ID != "cs_123" || sess.Status != SessionStatusOpen {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestCreateSessionErrorFallbacks(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "structured provider message",
			status:      http.StatusUnprocessableEntity,
			body:        `{"error":{"message":"amount below minimum"}}`,
			wantMessage: "checkout provider: amount below minimum",
		},
		{
			name:        "raw body",
			status:      http.StatusBadGateway,
			body:        "upstream acquirer unavailable",
			wantMessage: "checkout provider: upstream acquirer unavailable",
		},
		{
			name:        "bare status line",
			status:      http.StatusServiceUnavailable,
			body:        "",
			wantMessage: "checkout provider: HTTP 503: Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(srv.URL)
			_, err := client.CreateSession(context.Background(), "INV-1", 1000, "USD", "s", "c")
			if err == nil {
				t.Fatalf("expected error")
			}
			if err.Error() != tt.wantMessage {
				t.Fatalf("error = %q, want %q", err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestGetSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/checkout/sessions/cs_9") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_9","url":"https://pay.example/cs_9","status":"complete","reference":"INV-2"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	sess, err := client.GetSession(context.Background(), "cs_9")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess.Status != SessionStatusComplete {
		t.Fatalf("unexpected status: %q", sess.Status)
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"type":"checkout.completed","session_id":"cs_1"}`)
	secret := "top-secret"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	validSig := hex.EncodeToString(mac.Sum(nil))

	if !VerifyWebhookSignature(payload, validSig, secret) {
		t.Fatalf("expected signature to validate")
	}
	if !VerifyWebhookSignature(payload, strings.ToUpper(validSig), secret) {
		t.Fatalf("expected uppercase signature to validate")
	}
	if VerifyWebhookSignature(payload, "deadbeef", secret) {
		t.Fatalf("expected invalid signature to fail")
	}
	if VerifyWebhookSignature(payload, validSig, "") {
		t.Fatalf("expected empty secret to fail")
	}
}

func TestParseWebhookEvent(t *testing.T) {
	ev, err := ParseWebhookEvent([]byte(`{"type":"checkout.completed","session_id":"cs_1","reference":"INV-3","paid_at":1767225600}`))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if ev.Type != "checkout.completed" || ev.SessionID != "cs_1" || ev.Reference != "INV-3" {
		t.Fatalf("unexpected event: %+v", ev)
	}

	if _, err := ParseWebhookEvent([]byte(`{"type":"checkout.completed"}`)); err == nil {
		t.Fatalf("expected missing session id to fail")
	}
	if _, err := ParseWebhookEvent([]byte(`not json`)); err == nil {
		t.Fatalf("expected invalid json to fail")
	}
}
