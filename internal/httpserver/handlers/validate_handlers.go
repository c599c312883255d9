package handlers

import (
	"net/http"

	"trustaes/internal/modes"
	"trustaes/internal/services/vector"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ValidateVectors serves POST /v1/clients/{client_id}/vectors/validate. The
// multipart form carries the .rsp upload in "file" plus "mode" and "test_mode".
func ValidateVectors(db *gorm.DB, lg *zap.SugaredLogger, maxUpload int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := loadClient(db, r)
		if err != nil {
			respondErr(w, lg, r, err)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			http.Error(w, "multipart parse error", http.StatusBadRequest)
			return
		}
		m, err := modes.ParseMode(r.FormValue("mode"))
		if err != nil {
			respondErr(w, lg, r, err)
			return
		}
		tm, err := vector.ParseTestMode(r.FormValue("test_mode"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		recs, err := vector.ParseRSP(file)
		if err != nil {
			http.Error(w, "parse error: "+err.Error(), http.StatusBadRequest)
			return
		}
		if len(recs) == 0 {
			http.Error(w, "no records found", http.StatusBadRequest)
			return
		}
		result, err := vector.Validate(m, tm, recs)
		if err != nil {
			http.Error(w, "validate error: "+err.Error(), http.StatusBadRequest)
			return
		}
		lg.Infow("vectors validated", "client_id", client.ID, "mode", m.String(), "test_mode", tm,
			"passed", result.Passed, "failed", result.Failed)
		audit(db, lg, r, client.ID, actionValidate, map[string]any{
			"mode": m.String(), "test_mode": tm, "total": result.Total, "passed": result.Passed, "failed": result.Failed,
		})
		respondJSON(w, result)
	}
}
