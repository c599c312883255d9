package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"trustaes/internal/auth"
	"trustaes/internal/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func ListUsers(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var users []models.User
		if err := db.Preload("Roles").Order("created_at desc").Find(&users).Error; err != nil {
			respondErr(w, lg, r, err)
			return
		}
		respondJSON(w, users)
	}
}

type createUserReq struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles,omitempty"` // default ["User"]
}

func CreateUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" || req.Password == "" {
			http.Error(w, "email/password required", http.StatusBadRequest)
			return
		}
		if len(req.Roles) == 0 {
			req.Roles = []string{auth.RoleUser}
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondErr(w, lg, r, err)
			return
		}
		var roles []models.Role
		if err := db.Where("name IN ?", req.Roles).Find(&roles).Error; err != nil {
			respondErr(w, lg, r, err)
			return
		}
		if len(roles) != len(req.Roles) {
			http.Error(w, "unknown role", http.StatusBadRequest)
			return
		}
		u := models.User{Email: req.Email, PasswordHash: hash, IsActive: true, Roles: roles, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		if err := db.Create(&u).Error; err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		lg.Infow("user created", "user_id", u.ID, "roles", req.Roles)
		respondJSON(w, map[string]any{"id": u.ID, "email": u.Email, "roles": u.RoleNames()})
	}
}

func UpdateUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IsActive *bool    `json:"is_active"`
			Password *string  `json:"password"`
			Roles    []string `json:"roles"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var u models.User
		if err := db.Preload("Roles").First(&u, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondErr(w, lg, r, err)
			return
		}
		if req.IsActive != nil {
			u.IsActive = *req.IsActive
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				respondErr(w, lg, r, err)
				return
			}
			u.PasswordHash = hash
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if req.Roles != nil {
				var roles []models.Role
				if err := tx.Where("name IN ?", req.Roles).Find(&roles).Error; err != nil {
					return err
				}
				if err := tx.Model(&u).Association("Roles").Replace(roles); err != nil {
					return err
				}
			}
			u.UpdatedAt = time.Now()
			return tx.Omit("Roles").Save(&u).Error
		})
		if err != nil {
			respondErr(w, lg, r, err)
			return
		}
		respondJSON(w, map[string]any{"updated": true})
	}
}

func DeleteUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == auth.Subject(r.Context()) {
			http.Error(w, "cannot delete yourself", http.StatusBadRequest)
			return
		}
		if err := db.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			respondErr(w, lg, r, err)
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}
