package webhooks

import (
	"fmt"
	"strings"

	"github.com/yxy-sys/stocksync/pkg/config"
	pkgerrors "github.com/yxy-sys/stocksync/pkg/errors"
)

// Service verifies marketplace webhook tokens. Tokens are compared exactly,
// case included.
type Service interface {
	VerifyChallenge(token, challenge string) (string, error)
	VerifyAccountDeletion(token string) error
}

type service struct {
	cfg config.WebhookConfig
}

// NewService constructs a webhook verification service.
func NewService(cfg config.WebhookConfig) (Service, error) {
	if strings.TrimSpace(cfg.VerificationToken) == "" {
		return nil, fmt.Errorf("webhook verification token required")
	}
	if strings.TrimSpace(cfg.AccountDeletionToken) == "" {
		return nil, fmt.Errorf("webhook account deletion token required")
	}
	return &service{cfg: cfg}, nil
}

// VerifyChallenge checks the subscription token and echoes the challenge
// back so the marketplace can confirm endpoint ownership.
func (s *service) VerifyChallenge(token, challenge string) (string, error) {
	if token != s.cfg.VerificationToken {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid verification token")
	}
	return challenge, nil
}

// VerifyAccountDeletion checks the token on marketplace account deletion
// notices, which carry their own secret.
func (s *service) VerifyAccountDeletion(token string) error {
	if token != s.cfg.AccountDeletionToken {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid account deletion token")
	}
	return nil
}
