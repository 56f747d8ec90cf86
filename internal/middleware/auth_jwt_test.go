package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignAndVerifyJWT(t *testing.T) {
	claims := TokenClaims{
		Sub:  "artisan-1",
		Role: RoleArtisan,
		Exp:  time.Now().Add(time.Hour).Unix(),
	}
	token, err := SignJWT("secret", claims)
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}

	got, err := VerifyJWT("secret", token)
	if err != nil {
		t.Fatalf("VerifyJWT() error: %v", err)
	}
	if got.Sub != "artisan-1" || got.Role != RoleArtisan {
		t.Fatalf("VerifyJWT() claims = %+v", got)
	}
}

func TestVerifyJWTRejectsTamperedToken(t *testing.T) {
	token, err := SignJWT("secret", TokenClaims{Sub: "artisan-1", Role: RoleArtisan})
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	if _, err := VerifyJWT("other-secret", token); err == nil {
		t.Fatalf("VerifyJWT() accepted token signed with different secret")
	}
	if _, err := VerifyJWT("secret", token+"x"); err == nil {
		t.Fatalf("VerifyJWT() accepted tampered signature")
	}
	if _, err := VerifyJWT("secret", "not-a-token"); err == nil {
		t.Fatalf("VerifyJWT() accepted malformed token")
	}
}

func TestVerifyJWTRejectsExpiredToken(t *testing.T) {
	token, err := SignJWT("secret", TokenClaims{
		Sub:  "artisan-1",
		Role: RoleArtisan,
		Exp:  time.Now().Add(-time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	if _, err := VerifyJWT("secret", token); err == nil {
		t.Fatalf("VerifyJWT() accepted expired token")
	}
}

func TestAuthJWTRoleGate(t *testing.T) {
	var sawUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	artisanToken, err := SignJWT("secret", TokenClaims{Sub: "artisan-1", Role: RoleArtisan})
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}

	tests := []struct {
		name       string
		role       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "matching role passes",
			role:       RoleArtisan,
			authHeader: "Bearer " + artisanToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong role forbidden",
			role:       RoleAdmin,
			authHeader: "Bearer " + artisanToken,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing header",
			role:       RoleArtisan,
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			role:       RoleArtisan,
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sawUserID = ""
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			AuthJWT("secret", tc.role)(next).ServeHTTP(rr, req)
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK && sawUserID != "artisan-1" {
				t.Fatalf("UserIDFromContext() = %q, want %q", sawUserID, "artisan-1")
			}
		})
	}
}
