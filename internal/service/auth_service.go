package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/suar-net/iberbanco-go/internal/auth"
	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/sdkerr"
	"github.com/suar-net/iberbanco-go/internal/transport"
)

type authService struct {
	base
}

func NewAuthService(doer transport.Doer, a *auth.Authenticator, opts ...Option) IAuthService {
	return &authService{base: newBase(doer, a, opts)}
}

// Authenticate exchanges credentials for a session token. The login call is
// the only unsigned request. The token is returned, not stored.
func (s *authService) Authenticate(ctx context.Context, username, password string) (model.Envelope, error) {
	creds, err := model.FromMap[model.AuthLogin](map[string]any{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	res, err := s.doer.Do(ctx, http.MethodPost, "auth", model.ToMap(creds, false), nil)
	if err != nil {
		var apiErr *sdkerr.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusUnprocessableEntity) {
			return nil, sdkerr.InvalidCredentials(apiErr.Message)
		}
		return nil, err
	}

	env := model.Envelope(res)
	if !env.IsSuccess() {
		msg := env.Message()
		if msg == "" {
			msg = "Authentication failed"
		}
		return nil, sdkerr.InvalidCredentials(msg)
	}
	return env, nil
}

func (s *authService) IsTokenValid() bool {
	return strings.TrimSpace(s.auth.Token()) != ""
}

func (s *authService) Token() string {
	return s.auth.Token()
}

func (s *authService) SetToken(token string) {
	s.auth.SetToken(token)
}

func (s *authService) ClearToken() {
	s.auth.ClearToken()
}

func (s *authService) GenerateAuthHeaders(token string, timestamp int64) (auth.SignedHeaders, error) {
	return s.auth.GenerateAuthHeaders(token, timestamp)
}

func (s *authService) VerifyHash(token string, timestamp int64, username, hash string) bool {
	return auth.VerifyHash(token, timestamp, username, hash)
}

func (s *authService) ValidateTimestamp(timestamp int64, tolerance time.Duration) bool {
	return s.auth.ValidateTimestamp(timestamp, tolerance)
}
