package handlers

import (
	"encoding/hex"
	"encoding/json"
	"net/http"

	"trustaes/internal/modes"
	"trustaes/internal/padding"
	"trustaes/internal/services/vector"
	"trustaes/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type cryptReq struct {
	Mode      string `json:"mode"`
	KeyHex    string `json:"key_hex"`
	IVHex     string `json:"iv_hex,omitempty"`    // CBC: 16 bytes, CTR: 8 bytes
	NonceHex  string `json:"nonce_hex,omitempty"` // CTR: 4 bytes
	InputHex  string `json:"input_hex,omitempty"`
	InputText string `json:"input_text,omitempty"` // raw bytes, used when input_hex is empty
	Pad       bool   `json:"pad,omitempty"`        // PKCS#7, ECB and CBC only
}

type cryptResp struct {
	Mode      string `json:"mode"`
	OutputHex string `json:"output_hex"`
}

// run applies the request in the given direction.
func (req cryptReq) run(dir vector.Direction) (cryptResp, error) {
	m, err := modes.ParseMode(req.Mode)
	if err != nil {
		return cryptResp{}, err
	}
	if req.Pad && !m.Aligned() {
		return cryptResp{}, badRequest("pad applies to ECB and CBC only")
	}
	key, err := util.DecodeHex("key_hex", req.KeyHex)
	if err != nil {
		return cryptResp{}, badRequest(err.Error())
	}
	iv, err := util.DecodeHex("iv_hex", req.IVHex)
	if err != nil {
		return cryptResp{}, badRequest(err.Error())
	}
	nonce, err := util.DecodeHex("nonce_hex", req.NonceHex)
	if err != nil {
		return cryptResp{}, badRequest(err.Error())
	}
	in, err := util.DecodeHex("input_hex", req.InputHex)
	if err != nil {
		return cryptResp{}, badRequest(err.Error())
	}
	if in == nil && req.InputText != "" {
		in = []byte(req.InputText)
	}

	p := modes.Params{IV: iv, Nonce: nonce}
	var out []byte
	if dir == vector.Encrypt {
		if req.Pad {
			in = padding.PKCS7Pad(in, modes.BlockSize)
		}
		out, err = modes.Encrypt(m, key, in, p)
	} else {
		out, err = modes.Decrypt(m, key, in, p)
		if err == nil && req.Pad {
			out, err = padding.PKCS7Unpad(out, modes.BlockSize)
		}
	}
	if err != nil {
		return cryptResp{}, err
	}
	return cryptResp{Mode: m.String(), OutputHex: hex.EncodeToString(out)}, nil
}

// AESCrypt serves POST /v1/aes/encrypt and /v1/aes/decrypt.
func AESCrypt(db *gorm.DB, lg *zap.SugaredLogger, dir vector.Direction) http.HandlerFunc {
	action := actionEncrypt
	if dir == vector.Decrypt {
		action = actionDecrypt
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req cryptReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp, err := req.run(dir)
		if err != nil {
			respondErr(w, lg, r, err)
			return
		}
		audit(db, lg, r, "", action, map[string]any{"mode": resp.Mode, "pad": req.Pad})
		respondJSON(w, resp)
	}
}

// CTRVector serves POST /v1/aes/ctr-vector.
func CTRVector(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p vector.AESCTRParams
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if p.Size > 1<<20 {
			http.Error(w, "size must be <= 1048576", http.StatusBadRequest)
			return
		}
		v, err := vector.GenerateAESCTR(p)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		audit(db, lg, r, "", actionCTRVector, map[string]any{"key_bits": len(v.KeyHex) * 4, "bytes": len(v.InputHex) / 2})
		respondJSON(w, v)
	}
}

// SelfTest serves GET /v1/selftest. Any failing vector turns the response
// into a 500 with the full report.
func SelfTest(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kas, err := vector.RunKnownAnswers()
		if err != nil {
			respondErr(w, lg, r, err)
			return
		}
		passed := 0
		for _, ka := range kas {
			if ka.OK {
				passed++
				continue
			}
			lg.Errorw("known answer mismatch", "name", ka.Name, "expected", ka.Expected, "computed", ka.Computed)
		}
		ok := passed == len(kas)
		audit(db, lg, r, "", actionSelfTest, map[string]any{"passed": passed, "total": len(kas)})
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": ok, "passed": passed, "total": len(kas), "vectors": kas})
	}
}
