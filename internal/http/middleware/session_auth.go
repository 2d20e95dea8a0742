package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const sessionUserKey contextKey = "sessionUser"

// SessionClaims are carried in HMAC-signed session tokens issued at login.
type SessionClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SessionUser identifies the authenticated console user.
type SessionUser struct {
	ID   string
	Name string
	Role string
}

// SessionJWT enforces a signed session token on protected endpoints.
func SessionJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, "session auth disabled", http.StatusUnauthorized)
				return
			}
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(auth, "Bearer ")
			claims := SessionClaims{}
			token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			user := SessionUser{
				ID:   claims.Subject,
				Name: claims.Name,
				Role: claims.Role,
			}
			ctx := context.WithValue(r.Context(), sessionUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSessionUser returns a context carrying the given user.
func WithSessionUser(ctx context.Context, user SessionUser) context.Context {
	return context.WithValue(ctx, sessionUserKey, user)
}

// SessionUserFromContext returns the authenticated user if present.
func SessionUserFromContext(ctx context.Context) (SessionUser, bool) {
	user, ok := ctx.Value(sessionUserKey).(SessionUser)
	return user, ok
}
