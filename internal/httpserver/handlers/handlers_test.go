package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trustaes/internal/aes"
	"trustaes/internal/models"
	"trustaes/internal/padding"
	"trustaes/internal/services/vector"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var nop = zap.NewNop().Sugar()

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAESCrypt(t *testing.T) {
	enc := AESCrypt(nil, nop, vector.Encrypt)
	dec := AESCrypt(nil, nop, vector.Decrypt)
	tests := []struct {
		name string
		h    http.Handler
		body string
		code int
		out  string
	}{
		{"fips-197 c.1", enc, `{"mode":"ecb","key_hex":"000102030405060708090a0b0c0d0e0f","input_hex":"00112233445566778899aabbccddeeff"}`,
			200, "69c4e0d86a7b0430d8cdb78070b4c55a"},
		{"fips-197 c.1 inverse", dec, `{"mode":"ECB","key_hex":"000102030405060708090a0b0c0d0e0f","input_hex":"69c4e0d86a7b0430d8cdb78070b4c55a"}`,
			200, "00112233445566778899aabbccddeeff"},
		{"rfc 3686 #1 text", enc, `{"mode":"CTR","key_hex":"ae6852f8121067cc4bf7a5765577f39e","nonce_hex":"00000030","iv_hex":"0000000000000000","input_text":"Single block msg"}`,
			200, "e4095d4fb7a7b3792d6175a3261311b8"},
		{"cbc f.2.1 spaced hex", enc, `{"mode":"CBC","key_hex":"2b7e1516 28aed2a6 abf71588 09cf4f3c","iv_hex":"000102030405060708090a0b0c0d0e0f","input_hex":"6bc1bee22e409f96e93d7e117393172a"}`,
			200, "7649abac8119b246cee98e9b12e9197d"},
		{"bad key size", enc, `{"mode":"ECB","key_hex":"0011","input_hex":"00112233445566778899aabbccddeeff"}`, 400, ""},
		{"unaligned", enc, `{"mode":"ECB","key_hex":"000102030405060708090a0b0c0d0e0f","input_hex":"0011"}`, 400, ""},
		{"bad iv", enc, `{"mode":"CBC","key_hex":"000102030405060708090a0b0c0d0e0f","iv_hex":"00","input_hex":"00112233445566778899aabbccddeeff"}`, 400, ""},
		{"bad hex", enc, `{"mode":"ECB","key_hex":"xyz"}`, 400, ""},
		{"unknown mode", enc, `{"mode":"OFB","key_hex":"000102030405060708090a0b0c0d0e0f"}`, 400, ""},
		{"pad with ctr", enc, `{"mode":"CTR","pad":true}`, 400, ""},
		{"not json", enc, `{`, 400, ""},
	}
	for _, tt := range tests {
		rec := post(t, tt.h, tt.body)
		if rec.Code != tt.code {
			t.Errorf("%s: status %d (%s)", tt.name, rec.Code, rec.Body.String())
			continue
		}
		if tt.code != 200 {
			continue
		}
		var resp cryptResp
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if resp.OutputHex != tt.out {
			t.Errorf("%s: output %s, want %s", tt.name, resp.OutputHex, tt.out)
		}
	}
}

func TestAESCryptPaddedRoundTrip(t *testing.T) {
	body := `{"mode":"CBC","key_hex":"000102030405060708090a0b0c0d0e0f","iv_hex":"0f0e0d0c0b0a09080706050403020100","input_text":"attack at dawn","pad":true}`
	rec := post(t, AESCrypt(nil, nop, vector.Encrypt), body)
	var ct cryptResp
	if err := json.NewDecoder(rec.Body).Decode(&ct); err != nil || len(ct.OutputHex) != 32 {
		t.Fatalf("encrypt: %v %+v", err, ct)
	}
	body = fmt.Sprintf(`{"mode":"CBC","key_hex":"000102030405060708090a0b0c0d0e0f","iv_hex":"0f0e0d0c0b0a09080706050403020100","input_hex":%q,"pad":true}`, ct.OutputHex)
	rec = post(t, AESCrypt(nil, nop, vector.Decrypt), body)
	var pt cryptResp
	if err := json.NewDecoder(rec.Body).Decode(&pt); err != nil {
		t.Fatal(err)
	}
	if want := fmt.Sprintf("%x", "attack at dawn"); pt.OutputHex != want {
		t.Errorf("decrypt = %s, want %s", pt.OutputHex, want)
	}
}

func TestCTRVector(t *testing.T) {
	rec := post(t, CTRVector(nil, nop), `{"key_hex":"ae6852f8121067cc4bf7a5765577f39e","nonce_hex":"00000030","iv_hex":"0000000000000000","input_hex":"53696e676c6520626c6f636b206d7367"}`)
	if rec.Code != 200 {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var v vector.AESCTRVector
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	if v.OutputHex != "e4095d4fb7a7b3792d6175a3261311b8" {
		t.Errorf("output = %s", v.OutputHex)
	}
	if rec := post(t, CTRVector(nil, nop), `{"nonce_hex":"00"}`); rec.Code != 400 {
		t.Errorf("bad nonce: status %d", rec.Code)
	}
	if rec := post(t, CTRVector(nil, nop), `{"size":99999999}`); rec.Code != 400 {
		t.Errorf("oversize: status %d", rec.Code)
	}
}

func TestSelfTest(t *testing.T) {
	rec := httptest.NewRecorder()
	SelfTest(nil, nop).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/selftest", nil))
	if rec.Code != 200 {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		OK     bool `json:"ok"`
		Passed int  `json:"passed"`
		Total  int  `json:"total"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.OK || resp.Passed != resp.Total || resp.Total == 0 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGenerateReqNormalize(t *testing.T) {
	cat := models.AESCatalogue()
	ok := generateReq{Mode: "cbc", TestMode: "kat", KatVariant: "varkey", KeyBits: 192}
	if err := ok.normalize(cat); err != nil {
		t.Fatal(err)
	}
	if ok.Algorithm != "AES" || ok.Mode != "CBC" || ok.KatVariant != "VARKEY" || ok.Format != "json" {
		t.Errorf("normalized = %+v", ok)
	}
	for _, req := range []generateReq{
		{Algorithm: "TDEA", Mode: "CBC", TestMode: "MMT", KeyBits: 128},
		{Mode: "GCM", TestMode: "MMT", KeyBits: 128},
		{Mode: "CBC", TestMode: "MMT", KeyBits: 100},
		{Mode: "CBC", TestMode: "KAT", KeyBits: 128},
		{Mode: "CBC", TestMode: "KAT", KatVariant: "nope", KeyBits: 128},
		{Mode: "CBC", TestMode: "MMT", KeyBits: 128, Count: 1000},
		{Mode: "CBC", TestMode: "MMT", KeyBits: 128, Format: "xml"},
	} {
		req := req
		err := req.normalize(cat)
		if statusFor(err) != http.StatusBadRequest {
			t.Errorf("%+v: err = %v", req, err)
		}
	}
}

func TestVectorRows(t *testing.T) {
	v, err := vector.GenerateAESTestVectors("CBC", "MMT", vector.AESGenParams{KeyBits: 128, Count: 2, IncludeExpected: true})
	if err != nil {
		t.Fatal(err)
	}
	rows := vectorRows("u", "c", v)
	if len(rows) != 4 {
		t.Fatalf("%d rows", len(rows))
	}
	if rows[0].Direction != "ENCRYPT" || rows[2].Direction != "DECRYPT" || rows[3].Count != 1 {
		t.Errorf("rows = %+v", rows)
	}
	if rows[0].OutputHex == nil || *rows[0].OutputHex != v.Encrypt[0].Ciphertext {
		t.Error("encrypt row lost its expected output")
	}
	var params map[string]string
	if err := rows[2].Params.Decode(&params); err != nil || params["iv"] != v.Decrypt[0].IVHex {
		t.Errorf("params = %v, %v", params, err)
	}
	stripped := vectorRows("u", "c", v.WithoutExpected())
	if stripped[0].OutputHex != nil {
		t.Error("stripped row kept an output")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{badRequest("x"), 400},
		{aes.KeySizeError(5), 400},
		{fmt.Errorf("wrap: %w", padding.ErrInvalidPadding), 400},
		{gorm.ErrRecordNotFound, 404},
		{errors.New("boom"), 500},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestCreateClientReq(t *testing.T) {
	c, err := createClientReq{CompanyName: "  Acme "}.toModel("u1")
	if err != nil || c.CompanyName != "Acme" || c.ProductName != "UNKNOWN" || c.ProductVersion != "0.0" || c.CreatedBy != "u1" {
		t.Errorf("toModel = %+v, %v", c, err)
	}
	for _, req := range []createClientReq{
		{},
		{CompanyName: "a", ProductName: strings.Repeat("p", 31)},
		{CompanyName: "a", ProductVersion: strings.Repeat("9", 17)},
	} {
		if _, err := req.toModel(""); statusFor(err) != 400 {
			t.Errorf("%+v accepted", req)
		}
	}
}
