package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/yxy-sys/stocksync/api/responses"
	"github.com/yxy-sys/stocksync/api/validators"
	"github.com/yxy-sys/stocksync/internal/webhooks"
	"github.com/yxy-sys/stocksync/pkg/logger"
)

// The webhook endpoints reproduce the marketplace's expected bodies exactly
// instead of the API envelope.

// EbayChallenge answers the subscription handshake: on a valid token the
// challenge code is echoed back as {"challengeResponse": ...}.
func EbayChallenge(svc webhooks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := validators.QueryString(r, "verification_token")
		challenge := validators.QueryString(r, "challenge_code")

		echo, err := svc.VerifyChallenge(token, challenge)
		if err != nil {
			responses.WriteText(w, http.StatusBadRequest, "Invalid token")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if encodeErr := json.NewEncoder(w).Encode(map[string]string{"challengeResponse": echo}); encodeErr != nil && logg != nil {
			logg.Error(r.Context(), "failed to encode challenge response", encodeErr)
		}
	}
}

// EbayNotification accepts event deliveries. Bodies are logged and
// discarded; the marketplace only needs the 200.
func EbayNotification(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil && logg != nil {
			logg.Error(r.Context(), "failed to read notification body", err)
		}
		if logg != nil {
			ctx := logg.WithField(r.Context(), "payload", string(body))
			logg.Info(ctx, "ebay notification received")
		}
		w.WriteHeader(http.StatusOK)
	}
}

// EbayAccountDeletion answers marketplace account deletion notices, which
// verify against their own token.
func EbayAccountDeletion(svc webhooks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := validators.QueryString(r, "verification_token")

		if err := svc.VerifyAccountDeletion(token); err != nil {
			responses.WriteText(w, http.StatusBadRequest, "Verification failed")
			return
		}
		if logg != nil {
			logg.Info(r.Context(), "ebay account deletion notice verified")
		}
		responses.WriteText(w, http.StatusOK, "Verification success")
	}
}
