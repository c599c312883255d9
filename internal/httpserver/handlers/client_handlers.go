package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"trustaes/internal/auth"
	"trustaes/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type createClientReq struct {
	CompanyName    string `json:"company_name"`
	ProductName    string `json:"product_name,omitempty"`
	ProductVersion string `json:"product_version,omitempty"`
}

func (req createClientReq) toModel(owner string) (models.Client, error) {
	c := models.Client{
		CompanyName:    strings.TrimSpace(req.CompanyName),
		ProductName:    strings.TrimSpace(req.ProductName),
		ProductVersion: strings.TrimSpace(req.ProductVersion),
		CreatedBy:      owner,
	}
	if c.CompanyName == "" {
		return c, badRequest("company_name required")
	}
	if c.ProductName == "" {
		c.ProductName = "UNKNOWN"
	}
	if c.ProductVersion == "" {
		c.ProductVersion = "0.0"
	}
	if utf8.RuneCountInString(c.ProductName) > 30 {
		return c, badRequest("product_name must be <= 30 characters")
	}
	if utf8.RuneCountInString(c.ProductVersion) > 16 {
		return c, badRequest("product_version must be <= 16 characters")
	}
	return c, nil
}

func CreateClient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createClientReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c, err := req.toModel(auth.Subject(r.Context()))
		if err != nil {
			respondErr(w, lg, r, err)
			return
		}
		c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
		if err := db.Create(&c).Error; err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		audit(db, lg, r, c.ID, actionClientCreate, map[string]any{"company_name": c.CompanyName})
		respondJSON(w, c)
	}
}

func ListClients(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cs []models.Client
		if err := db.Order("created_at desc").Find(&cs).Error; err != nil {
			respondErr(w, lg, r, err)
			return
		}
		respondJSON(w, cs)
	}
}

func DeleteClient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if uuid.Validate(id) != nil {
			http.Error(w, "id must be a valid UUID", http.StatusBadRequest)
			return
		}
		res := db.Delete(&models.Client{}, "id = ?", id)
		if res.Error != nil {
			respondErr(w, lg, r, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		audit(db, lg, r, id, actionClientDelete, nil)
		respondJSON(w, map[string]any{"deleted": true})
	}
}

// loadClient resolves the {client_id} path parameter.
func loadClient(db *gorm.DB, r *http.Request) (models.Client, error) {
	var c models.Client
	id := chi.URLParam(r, "client_id")
	if uuid.Validate(id) != nil {
		return c, badRequest("client_id must be a valid UUID")
	}
	err := db.WithContext(r.Context()).First(&c, "id = ?", id).Error
	return c, err
}
