package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"trustaes/internal/auth"
	"trustaes/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(db *gorm.DB, signer *auth.Signer, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var u models.User
		if err := db.Preload("Roles").First(&u, "email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Error; err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if !u.IsActive || auth.CheckPassword(u.PasswordHash, req.Password) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		tok, claims, err := signer.Sign(u.ID, u.RoleNames())
		if err != nil {
			respondErr(w, lg, r, err)
			return
		}
		sess := models.Session{JTI: claims.JWTID, UserID: u.ID, ExpiresAt: claims.ExpiresAt, CreatedAt: time.Now()}
		if err := db.Create(&sess).Error; err != nil {
			respondErr(w, lg, r, err)
			return
		}
		lg.Infow("login", "user_id", u.ID)
		audit(db, lg, r.WithContext(auth.WithClaims(r.Context(), claims)), "", actionLogin, nil)
		respondJSON(w, map[string]any{"token": tok, "expires_at": claims.ExpiresAt})
	}
}

func Logout(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := auth.FromContext(r.Context())
		now := time.Now()
		if err := db.Model(&models.Session{}).Where("jti = ?", c.JWTID).Update("revoked_at", &now).Error; err != nil {
			respondErr(w, lg, r, err)
			return
		}
		audit(db, lg, r, "", actionLogout, nil)
		respondJSON(w, map[string]any{"logged_out": true})
	}
}

func Me(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.User
		if err := db.Preload("Roles").First(&u, "id = ?", auth.Subject(r.Context())).Error; err != nil {
			respondErr(w, lg, r, err)
			return
		}
		respondJSON(w, map[string]any{
			"id": u.ID, "email": u.Email, "roles": u.RoleNames(), "is_active": u.IsActive,
		})
	}
}
