package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"drivent_booking/internal/domain"
)

type ctxKey int

const userIDKey ctxKey = iota

type sessionClaims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// Authenticate verifies the Bearer token two ways: the JWT signature
// must check out against the shared secret, and the exact token must
// still have a live session row. Tokens survive a signature check after
// logout; the session lookup is what actually revokes them.
func Authenticate(secret string, sessions domain.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims := &sessionClaims{}
			tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}

			uid, err := sessions.UserIDByToken(r.Context(), raw)
			if err != nil || uid != claims.UserID {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "session not found")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id injected by Authenticate.
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// SignToken issues a session JWT for userID. Used by the seeder and tests;
// in production tokens come from the auth service sharing the same secret.
func SignToken(secret string, userID int64, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
