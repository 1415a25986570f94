package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yxy-sys/stocksync/internal/webhooks"
	"github.com/yxy-sys/stocksync/pkg/config"
	"github.com/yxy-sys/stocksync/pkg/logger"
)

func newWebhookService(t *testing.T) webhooks.Service {
	t.Helper()

	svc, err := webhooks.NewService(config.WebhookConfig{
		VerificationToken:    "ebay_webhook_verify",
		AccountDeletionToken: "deletion_verify",
	})
	require.NoError(t, err)
	return svc
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "api-test", Output: io.Discard})
}

func TestEbayChallengeEchoesOnValidToken(t *testing.T) {
	handler := EbayChallenge(newWebhookService(t), testLogger())

	req := httptest.NewRequest(http.MethodGet,
		"/webhooks/ebay?verification_token=ebay_webhook_verify&challenge_code=abc123", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "abc123", body["challengeResponse"])
}

func TestEbayChallengeRejectsBadToken(t *testing.T) {
	handler := EbayChallenge(newWebhookService(t), testLogger())

	req := httptest.NewRequest(http.MethodGet,
		"/webhooks/ebay?verification_token=EBAY_WEBHOOK_VERIFY&challenge_code=abc123", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid token", rec.Body.String())
}

func TestEbayNotificationAlwaysAccepts(t *testing.T) {
	handler := EbayNotification(testLogger())

	req := httptest.NewRequest(http.MethodPost, "/webhooks/ebay",
		strings.NewReader(`{"topic":"ITEM_SOLD"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestEbayAccountDeletion(t *testing.T) {
	handler := EbayAccountDeletion(newWebhookService(t), testLogger())

	req := httptest.NewRequest(http.MethodGet,
		"/webhooks/ebay/account-deletion?verification_token=deletion_verify", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Verification success", rec.Body.String())

	// The subscription token must not unlock the deletion endpoint.
	req = httptest.NewRequest(http.MethodGet,
		"/webhooks/ebay/account-deletion?verification_token=ebay_webhook_verify", nil)
	rec = httptest.NewRecorder()
	handler(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Verification failed", rec.Body.String())
}
