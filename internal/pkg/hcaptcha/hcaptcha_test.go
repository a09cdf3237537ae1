package hcaptcha

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyEmptyToken(t *testing.T) {
	ok, err := Verify("")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestVerifyMissingSecret(t *testing.T) {
	t.Setenv("HCAPTCHA_SECRET", "")

	ok, err := Verify("some-token")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestVerifySuccess(t *testing.T) {
	t.Setenv("HCAPTCHA_SECRET", "test-secret")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-secret", r.FormValue("secret"))
		assert.Equal(t, "some-token", r.FormValue("response"))
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	orig := verifyURL
	verifyURL = srv.URL
	defer func() { verifyURL = orig }()

	ok, err := Verify("some-token")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectedWithCodes(t *testing.T) {
	t.Setenv("HCAPTCHA_SECRET", "test-secret")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer srv.Close()

	orig := verifyURL
	verifyURL = srv.URL
	defer func() { verifyURL = orig }()

	ok, err := Verify("some-token")
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid-input-response")
}
