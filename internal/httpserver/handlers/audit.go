package handlers

import (
	"encoding/json"
	"net/http"

	"trustaes/internal/auth"
	"trustaes/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	actionLogin        = "LOGIN"
	actionLogout       = "LOGOUT"
	actionEncrypt      = "AES_ENCRYPT"
	actionDecrypt      = "AES_DECRYPT"
	actionCTRVector    = "AES_CTR_VECTOR"
	actionGenerate     = "VECTOR_GENERATE"
	actionValidate     = "VECTOR_VALIDATE"
	actionSelfTest     = "SELFTEST"
	actionClientCreate = "CLIENT_CREATE"
	actionClientDelete = "CLIENT_DELETE"
)

// audit records an action for the calling user. A nil db skips the write.
// Failures are logged and never fail the request.
func audit(db *gorm.DB, lg *zap.SugaredLogger, r *http.Request, clientID, action string, md map[string]any) {
	if db == nil {
		return
	}
	row := models.AuditLog{Action: action}
	if uid := auth.Subject(r.Context()); uid != "" {
		row.UserID = &uid
	}
	if clientID != "" {
		row.ClientID = &clientID
	}
	if md != nil {
		b, err := json.Marshal(md)
		if err == nil {
			row.Metadata = b
		}
	}
	if err := db.WithContext(r.Context()).Create(&row).Error; err != nil {
		lg.Warnw("audit write failed", "action", action, "error", err)
	}
}
