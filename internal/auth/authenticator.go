// Package auth signs platform requests. A signature is the hex HMAC-SHA256 of
// token+timestamp keyed by the username, so the username must be treated as a
// secret wherever it is stored.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/suar-net/iberbanco-go/internal/sdkerr"
)

// DefaultTolerance is how far a request timestamp may drift from the clock.
const DefaultTolerance = 300 * time.Second

const (
	HeaderToken     = "token"
	HeaderTimestamp = "timestamp"
	HeaderHash      = "hash"
	HeaderPin       = "pin"
)

// SignedHeaders is the header set attached to every signed call.
type SignedHeaders struct {
	Token     string
	Timestamp int64
	Hash      string
}

func (h SignedHeaders) Map() map[string]string {
	return map[string]string{
		HeaderToken:     h.Token,
		HeaderTimestamp: strconv.FormatInt(h.Timestamp, 10),
		HeaderHash:      h.Hash,
	}
}

func (h SignedHeaders) Apply(header http.Header) {
	for k, v := range h.Map() {
		header.Set(k, v)
	}
}

// Authenticator holds the signing identity and the session token. It is safe
// for concurrent use.
type Authenticator struct {
	mu       sync.RWMutex
	username string
	token    string
	now      func() time.Time
}

type Option func(*Authenticator)

func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) { a.now = now }
}

func New(username string, opts ...Option) *Authenticator {
	a := &Authenticator{username: username, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GenerateHash returns hex(HMAC-SHA256(key=username, msg=token+timestamp)).
func GenerateHash(token string, timestamp int64, username string) string {
	mac := hmac.New(sha256.New, []byte(username))
	mac.Write([]byte(token + strconv.FormatInt(timestamp, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHash recomputes the signature and compares it in constant time.
func VerifyHash(token string, timestamp int64, username, hash string) bool {
	expected := GenerateHash(token, timestamp, username)
	return hmac.Equal([]byte(expected), []byte(hash))
}

// GenerateAuthHeaders signs with token, or the stored token when token is
// empty, at timestamp, or the current time when timestamp is zero.
func (a *Authenticator) GenerateAuthHeaders(token string, timestamp int64) (SignedHeaders, error) {
	a.mu.RLock()
	username := a.username
	if token == "" {
		token = a.token
	}
	a.mu.RUnlock()

	if token == "" {
		return SignedHeaders{}, sdkerr.MissingToken()
	}
	if username == "" {
		return SignedHeaders{}, sdkerr.MissingUsername()
	}
	if timestamp == 0 {
		timestamp = a.now().Unix()
	}
	return SignedHeaders{
		Token:     token,
		Timestamp: timestamp,
		Hash:      GenerateHash(token, timestamp, username),
	}, nil
}

// Verify checks a received header set against this identity and the clock.
func (a *Authenticator) Verify(h SignedHeaders) error {
	if !a.ValidateTimestamp(h.Timestamp, DefaultTolerance) {
		return sdkerr.InvalidTimestamp()
	}
	if !VerifyHash(h.Token, h.Timestamp, a.Username(), h.Hash) {
		return sdkerr.InvalidHash()
	}
	return nil
}

// ValidateTimestamp accepts ts when |now - ts| <= tolerance.
func (a *Authenticator) ValidateTimestamp(ts int64, tolerance time.Duration) bool {
	diff := a.now().Unix() - ts
	if diff < 0 {
		diff = -diff
	}
	return diff <= int64(tolerance/time.Second)
}

func (a *Authenticator) IsTokenExpired(expiresAt time.Time) bool {
	return a.now().After(expiresAt)
}

// IsSessionExpired reads the exp claim of the stored token. Tokens that are
// not JWTs, or carry no exp, are never reported as expired.
func (a *Authenticator) IsSessionExpired() bool {
	exp, ok := TokenExpiry(a.Token())
	return ok && a.IsTokenExpired(exp)
}

func (a *Authenticator) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

func (a *Authenticator) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *Authenticator) ClearToken() {
	a.SetToken("")
}

func (a *Authenticator) IsAuthenticated() bool {
	return a.Token() != ""
}

func (a *Authenticator) Username() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.username
}

func (a *Authenticator) SetUsername(username string) {
	a.mu.Lock()
	a.username = username
	a.mu.Unlock()
}

// AgentAdminHeaders is the header set for agent administration endpoints.
func AgentAdminHeaders(token, pin string) (map[string]string, error) {
	if token == "" {
		return nil, sdkerr.MissingToken()
	}
	if pin == "" {
		return nil, sdkerr.MissingPin()
	}
	return map[string]string{HeaderToken: token, HeaderPin: pin}, nil
}

// DashboardHeaders is the header set for dashboard endpoints.
func DashboardHeaders(token string) (map[string]string, error) {
	if token == "" {
		return nil, sdkerr.MissingToken()
	}
	return map[string]string{HeaderToken: token}, nil
}

// TokenExpiry returns the exp claim of a JWT session token without checking
// its signature. The platform signs tokens with a key the client never sees.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

var expiryLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

// ParseExpiresAt reads the expires_at value of a login response.
func ParseExpiresAt(value string) (time.Time, error) {
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized expiry time %q", value)
}
