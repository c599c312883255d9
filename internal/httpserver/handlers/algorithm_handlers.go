package handlers

import (
	"net/http"

	"trustaes/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GET /v1/algorithms
func ListAlgorithms(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rows []models.Algorithm
		if err := db.Order("category, name").Find(&rows).Error; err != nil {
			respondErr(w, lg, r, err)
			return
		}
		respondJSON(w, map[string]any{"data": rows, "count": len(rows)})
	}
}
