package hcaptcha

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hangarline/hangarline/internal/pkg/env"
)

// verifyURL is a variable so tests can point it at a local server.
var verifyURL = "https://hcaptcha.com/siteverify"

var httpClient = &http.Client{Timeout: 10 * time.Second}

type verifyResponse struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// Verify checks a submitted captcha token against the hCaptcha API. An empty
// token or missing secret fails closed.
func Verify(token string) (bool, error) {
	if token == "" {
		return false, fmt.Errorf("captcha token is empty")
	}

	secret := env.GetEnv("HCAPTCHA_SECRET", "")
	if secret == "" {
		return false, fmt.Errorf("HCAPTCHA_SECRET is not configured")
	}

	form := url.Values{
		"secret":   {secret},
		"response": {token},
	}

	resp, err := httpClient.PostForm(verifyURL, form)
	if err != nil {
		return false, fmt.Errorf("captcha verify request: %w", err)
	}
	defer resp.Body.Close()

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("captcha verify response: %w", err)
	}

	if !result.Success {
		if len(result.ErrorCodes) > 0 {
			return false, fmt.Errorf("captcha rejected: %s", strings.Join(result.ErrorCodes, ", "))
		}
		return false, fmt.Errorf("captcha rejected")
	}
	return true, nil
}
