package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignVerify(t *testing.T) {
	s := NewSigner("k", time.Hour)
	tok, c, err := s.Sign("user-1", []string{RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if c.JWTID == "" {
		t.Fatal("no jti")
	}
	got, err := s.Verify(tok)
	if err != nil {
		t.Fatal(err)
	}
	if got.Subject != "user-1" || got.JWTID != c.JWTID || !got.HasRole(RoleAdmin) || got.HasRole(RoleUser) {
		t.Errorf("claims = %+v", got)
	}
}

func TestVerifyRejects(t *testing.T) {
	s := NewSigner("k", time.Hour)
	tok, _, _ := s.Sign("u", nil)
	if _, err := NewSigner("other", time.Hour).Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong key: %v", err)
	}
	if _, err := s.Verify(tok + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered: %v", err)
	}
	expired := NewSigner("k", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, _, _ := expired.Sign("u", nil)
	if _, err := s.Verify(old); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired: %v", err)
	}
}

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if CheckPassword(h, "hunter2") != nil || CheckPassword(h, "hunter3") == nil {
		t.Error("bcrypt round trip failed")
	}
}

type fakeSessions map[string]error

func (f fakeSessions) Active(_ context.Context, jti string) error {
	err, ok := f[jti]
	if !ok {
		return errors.New("record not found")
	}
	return err
}

func TestJWTAuth(t *testing.T) {
	s := NewSigner("k", time.Hour)
	live, lc, _ := s.Sign("u", []string{RoleUser})
	revoked, rc, _ := s.Sign("u", []string{RoleUser})
	unknown, _, _ := s.Sign("u", []string{RoleUser})
	sessions := fakeSessions{lc.JWTID: nil, rc.JWTID: ErrSessionInactive}

	var seen Claims
	h := JWTAuth(s, sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"live", "Bearer " + live, http.StatusOK},
		{"revoked", "Bearer " + revoked, http.StatusUnauthorized},
		{"unknown session", "Bearer " + unknown, http.StatusUnauthorized},
		{"no header", "", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s: status %d, want %d", tt.name, rec.Code, tt.want)
		}
	}
	if seen.JWTID != lc.JWTID {
		t.Errorf("handler saw %+v", seen)
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(RoleAdmin)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	for _, tt := range []struct {
		roles []string
		want  int
	}{{[]string{RoleAdmin}, http.StatusOK}, {[]string{RoleUser}, http.StatusForbidden}, {nil, http.StatusForbidden}} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithClaims(req.Context(), Claims{Roles: tt.roles}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("roles %v: status %d", tt.roles, rec.Code)
		}
	}
}

func TestRandomPassword(t *testing.T) {
	a, b := RandomPassword(), RandomPassword()
	if len(a) != 32 || a == b {
		t.Errorf("RandomPassword = %q, %q", a, b)
	}
}
