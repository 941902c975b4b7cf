// Package auth implements credential verification and the signed
// session token the gate middleware checks on every protected route.
//
// The authenticator is a capability interface so the static pair can be
// swapped for a real credential store without touching the redirect
// logic. The token is an HMAC-SHA256 over username and expiry: presence
// alone is never enough, the signature and the expiry must both hold.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidCredentials is deliberately generic: unknown user and
	// wrong password are indistinguishable to avoid user enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")
)

type Credentials struct {
	Username string
	Password string
}

type Session struct {
	Username  string
	ExpiresAt time.Time
}

// Authenticator verifies credentials and mints a session on success.
type Authenticator interface {
	Verify(creds Credentials) (Session, error)
}

// Static verifies against one configured credential pair.
type Static struct {
	username string
	password string
	ttl      time.Duration
	now      func() time.Time
}

func NewStatic(username, password string, ttl time.Duration) *Static {
	return &Static{username: username, password: password, ttl: ttl, now: time.Now}
}

func (s *Static) Verify(creds Credentials) (Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return Session{}, ErrInvalidCredentials
	}
	return Session{Username: creds.Username, ExpiresAt: s.now().Add(s.ttl)}, nil
}

// TokenCodec signs and verifies session tokens.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec builds a codec from the configured secret. An empty
// secret gets a random one: sessions then survive only one process
// lifetime, which is fine for a portal with no durable state.
func NewTokenCodec(secret string) *TokenCodec {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	return &TokenCodec{secret: key, now: time.Now}
}

// Sign encodes the session as payload.signature where the payload is
// base64(username|expiryUnix).
func (c *TokenCodec) Sign(s Session) string {
	payload := base64.RawURLEncoding.EncodeToString(
		[]byte(s.Username + "|" + strconv.FormatInt(s.ExpiresAt.Unix(), 10)))
	return payload + "." + c.sign(payload)
}

// Verify checks the signature and the expiry and returns the embedded
// session.
func (c *TokenCodec) Verify(token string) (Session, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok {
		return Session{}, ErrInvalidToken
	}
	if !hmac.Equal([]byte(c.sign(payload)), []byte(sig)) {
		return Session{}, ErrInvalidToken
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return Session{}, ErrInvalidToken
	}
	username, expStr, ok := strings.Cut(string(decoded), "|")
	if !ok || username == "" {
		return Session{}, ErrInvalidToken
	}
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	expiresAt := time.Unix(exp, 0)
	if c.now().After(expiresAt) {
		return Session{}, fmt.Errorf("%w: expired at %s", ErrTokenExpired, expiresAt.UTC().Format(time.RFC3339))
	}
	return Session{Username: username, ExpiresAt: expiresAt}, nil
}

func (c *TokenCodec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
