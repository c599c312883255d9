package handlers

import (
	"net/http"
	"strconv"

	"trustaes/internal/auth"
	"trustaes/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MyLogs returns recent audit rows for the caller. Administrators may pass
// ?all=1 to see everyone's, and ?limit=N (max 500) for a different window.
func MyLogs(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 200
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 500 {
				http.Error(w, "limit must be 1..500", http.StatusBadRequest)
				return
			}
			limit = n
		}
		q := db.Order("created_at desc").Limit(limit)
		if !(r.URL.Query().Get("all") == "1" && auth.FromContext(r.Context()).HasRole(auth.RoleAdmin)) {
			q = q.Where("user_id = ?", auth.Subject(r.Context()))
		}
		var logs []models.AuditLog
		if err := q.Find(&logs).Error; err != nil {
			respondErr(w, lg, r, err)
			return
		}
		respondJSON(w, logs)
	}
}
