package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/suar-net/iberbanco-go/internal/auth"
	"github.com/suar-net/iberbanco-go/internal/sdkerr"
)

type contextKey string

const agentContextKey = contextKey("agent")

type AuthMiddleware struct {
	bank   *Bank
	logger *zap.Logger
}

func NewAuthMiddleware(b *Bank, l *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		bank:   b,
		logger: l,
	}
}

// Authenticate checks the signed header set: a live session token, a
// timestamp near the server clock and a hash keyed by the session's agent.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(auth.HeaderToken)
		if token == "" {
			respondWithError(w, http.StatusUnauthorized, sdkerr.MissingToken().Message)
			return
		}

		username, ok := m.bank.Session(token)
		if !ok {
			respondWithError(w, http.StatusUnauthorized, sdkerr.TokenExpired().Message)
			return
		}

		ts, err := strconv.ParseInt(r.Header.Get(auth.HeaderTimestamp), 10, 64)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, sdkerr.InvalidTimestamp().Message)
			return
		}

		signer := auth.New(username, auth.WithClock(m.bank.Now))
		err = signer.Verify(auth.SignedHeaders{
			Token:     token,
			Timestamp: ts,
			Hash:      r.Header.Get(auth.HeaderHash),
		})
		if err != nil {
			var authErr *sdkerr.AuthenticationError
			msg := "Unauthorized"
			if errors.As(err, &authErr) {
				msg = authErr.Message
			}
			m.logger.Info("signature rejected", zap.String("agent", username), zap.String("reason", msg))
			respondWithError(w, http.StatusUnauthorized, msg)
			return
		}

		ctx := context.WithValue(r.Context(), agentContextKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AgentFromContext returns the agent a signed request was verified for.
func AgentFromContext(ctx context.Context) (string, bool) {
	agent, ok := ctx.Value(agentContextKey).(string)
	return agent, ok
}
