package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"trustaes/internal/models"

	"gorm.io/gorm"
)

var ErrSessionInactive = errors.New("session expired/revoked")

// Sessions checks that a token id is still live.
type Sessions interface {
	Active(ctx context.Context, jti string) error
}

// DBSessions looks sessions up in the sessions table.
type DBSessions struct{ DB *gorm.DB }

func (s DBSessions) Active(ctx context.Context, jti string) error {
	var sess models.Session
	if err := s.DB.WithContext(ctx).First(&sess, "jti = ?", jti).Error; err != nil {
		return err
	}
	if sess.RevokedAt != nil || time.Now().After(sess.ExpiresAt) {
		return ErrSessionInactive
	}
	return nil
}

func JWTAuth(signer *Signer, sessions Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			claims, err := signer.Verify(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			if err := sessions.Active(r.Context(), claims.JWTID); err != nil {
				if errors.Is(err, ErrSessionInactive) {
					http.Error(w, err.Error(), http.StatusUnauthorized)
					return
				}
				http.Error(w, "session not found", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !FromContext(r.Context()).HasRole(role) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
