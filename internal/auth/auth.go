// Package auth issues and verifies the bearer tokens of the HTTP API and
// guards the bot bridge endpoints with a shared secret.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/dompetku/internal/http/httpx"
)

// BotSecretHeader carries the shared secret of the bot bridge.
const BotSecretHeader = "X-Bot-Secret"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrUserIDEmpty  = errors.New("user id is required")
)

type ctxKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

type Authenticator struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func New(secret, issuer string, ttl time.Duration) *Authenticator {
	return &Authenticator{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Issue signs an HS256 token whose subject is userID.
func (a *Authenticator) Issue(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", ErrUserIDEmpty
	}

	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    a.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}

// Verify returns the user id of a valid token.
func (a *Authenticator) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// token's user id in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			httpx.Message(w, http.StatusUnauthorized, ErrMissingToken.Error())
			return
		}

		userID, err := a.Verify(strings.TrimSpace(raw))
		if err != nil {
			httpx.Message(w, http.StatusUnauthorized, ErrInvalidToken.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// SharedSecret only lets through requests whose BotSecretHeader equals
// secret. An empty secret rejects everything.
func SharedSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(BotSecretHeader)
			if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				httpx.Message(w, http.StatusUnauthorized, "invalid bot secret")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserID returns the authenticated user of r, or "" outside Middleware.
func UserID(r *http.Request) string {
	id, _ := UserIDFromContext(r.Context())
	return id
}
