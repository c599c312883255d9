package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"trustaes/internal/auth"
	"trustaes/internal/models"
	"trustaes/internal/services/vector"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxVectorCount = 100

type generateReq struct {
	Algorithm       string `json:"algorithm"` // AES only; defaults to AES
	Mode            string `json:"mode"`
	TestMode        string `json:"test_mode"`
	KatVariant      string `json:"kat_variant"` // GFSBOX | KEYSBOX | VARKEY | VARTXT
	KeyBits         int    `json:"key_bits"`
	Count           int    `json:"count"`
	IncludeExpected bool   `json:"include_expected"`
	Format          string `json:"format"` // json | txt
}

// normalize checks the request against the catalogue row and fills defaults.
func (req *generateReq) normalize(cat models.Algorithm) error {
	req.Algorithm = strings.ToUpper(strings.TrimSpace(req.Algorithm))
	if req.Algorithm == "" {
		req.Algorithm = "AES"
	}
	req.Mode = strings.ToUpper(strings.TrimSpace(req.Mode))
	req.TestMode = strings.ToUpper(strings.TrimSpace(req.TestMode))
	req.KatVariant = strings.ToUpper(strings.TrimSpace(req.KatVariant))
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))

	if req.Algorithm != strings.ToUpper(cat.Name) {
		return badRequest(fmt.Sprintf("algorithm %q not in catalogue", req.Algorithm))
	}
	if !cat.Supports(req.Mode, req.TestMode, req.KeyBits) {
		return badRequest(fmt.Sprintf("unsupported combination %s/%s/%d for %s; see /v1/algorithms",
			req.Mode, req.TestMode, req.KeyBits, cat.Name))
	}
	if req.TestMode == string(vector.KAT) && !containsString(vector.KatVariants, req.KatVariant) {
		return badRequest(fmt.Sprintf("for AES KAT, kat_variant must be one of %v", vector.KatVariants))
	}
	if req.Count < 0 || req.Count > maxVectorCount {
		return badRequest(fmt.Sprintf("count must be between 0 and %d (0 means 10)", maxVectorCount))
	}
	switch req.Format {
	case "":
		req.Format = "json"
	case "json", "txt":
	default:
		return badRequest("format must be json or txt")
	}
	return nil
}

func containsString(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}

// vectorRows flattens a generated set into one row per direction and COUNT.
func vectorRows(userID, clientID string, v vector.AESTestVector) []models.Vector {
	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	params := func(key, iv string) models.JSONB {
		m := map[string]string{"key": key}
		if iv != "" {
			m["iv"] = iv
		}
		if v.KatVariant != "" {
			m["kat_variant"] = v.KatVariant
		}
		return models.MustJSONB(m)
	}
	base := models.Vector{UserID: userID, ClientID: clientID, Algorithm: v.Algorithm, Mode: v.Mode, TestMode: v.TestMode, KeyBits: v.KeyBits}

	rows := make([]models.Vector, 0, len(v.Encrypt)+len(v.Decrypt))
	for _, e := range v.Encrypt {
		row := base
		row.Direction, row.Count = string(vector.Encrypt), e.Count
		row.Params, row.InputHex, row.OutputHex = params(e.KeyHex, e.IVHex), e.Plaintext, opt(e.Ciphertext)
		rows = append(rows, row)
	}
	for _, d := range v.Decrypt {
		row := base
		row.Direction, row.Count = string(vector.Decrypt), d.Count
		row.Params, row.InputHex, row.OutputHex = params(d.KeyHex, d.IVHex), d.Ciphertext, opt(d.Plaintext)
		rows = append(rows, row)
	}
	return rows
}

// GenerateVectors serves POST /v1/clients/{client_id}/vectors.
func GenerateVectors(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := loadClient(db, r)
		if err != nil {
			respondErr(w, lg, r, err)
			return
		}
		var req generateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var cat models.Algorithm
		name := strings.ToUpper(strings.TrimSpace(req.Algorithm))
		if name == "" {
			name = "AES"
		}
		if err := db.Where("upper(name) = ?", name).First(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "algorithm not found in catalogue", http.StatusBadRequest)
				return
			}
			respondErr(w, lg, r, err)
			return
		}
		if err := req.normalize(cat); err != nil {
			respondErr(w, lg, r, err)
			return
		}

		// Expected outputs are always stored so uploads can be checked later.
		vec, err := vector.GenerateAESTestVectors(req.Mode, req.TestMode, vector.AESGenParams{
			KeyBits:         req.KeyBits,
			Count:           req.Count,
			IncludeExpected: true,
			KatVariant:      req.KatVariant,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rows := vectorRows(auth.Subject(r.Context()), client.ID, vec)
		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.CreateInBatches(rows, 100).Error
		}); err != nil {
			respondErr(w, lg, r, err)
			return
		}
		lg.Infow("vectors generated", "client_id", client.ID, "mode", vec.Mode, "test_mode", vec.TestMode,
			"key_bits", vec.KeyBits, "records", len(rows))
		audit(db, lg, r, client.ID, actionGenerate, map[string]any{
			"mode": vec.Mode, "test_mode": vec.TestMode, "kat_variant": vec.KatVariant, "key_bits": vec.KeyBits, "records": len(rows),
		})

		if !req.IncludeExpected {
			vec = vec.WithoutExpected()
		}
		if req.Format == "txt" {
			w.Header().Set("Content-Type", "text/plain")
			w.Header().Set("Content-Disposition",
				fmt.Sprintf("attachment; filename=aes_%s_%s_%d.rsp",
					strings.ToLower(vec.Mode), strings.ToLower(vec.TestMode), vec.KeyBits))
			_, _ = w.Write([]byte(vec.ToTXT()))
			return
		}
		respondJSON(w, vec)
	}
}
