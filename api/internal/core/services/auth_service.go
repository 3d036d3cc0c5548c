package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ecourts/api/internal/infrastructure/ecourts"
)

// tokenTimeout stretches the default request deadline for token issuance,
// which is the slowest endpoint the backend exposes.
const tokenTimeout = 30 * time.Second

type AuthService struct {
	client *ecourts.Client
	logger *slog.Logger
}

func NewAuthService(client *ecourts.Client, logger *slog.Logger) *AuthService {
	return &AuthService{client: client, logger: logger}
}

// FetchToken obtains a fresh bearer token from the backend. The token is an
// opaque string: it is never parsed or validated here, only re-encrypted
// into the Authorization header of later requests.
func (s *AuthService) FetchToken(ctx context.Context) (string, error) {
	data, err := s.client.Do(ctx, ecourts.Request{
		Script:   "appReleaseWebService.php",
		Resource: "token",
		Params: map[string]string{
			"version": "3.0",
			"uid":     s.client.UID(),
		},
		Timeout: tokenTimeout,
	})
	if err != nil {
		return "", err
	}

	token, _ := data["token"].(string)
	if token == "" {
		s.logger.Error("token missing in response")
		return "", errors.New("token missing in response")
	}
	return token, nil
}
