package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loomcraft/internal/auth"
	"loomcraft/internal/middleware"
	"loomcraft/internal/sqlinline"
)

type adminTestSQL struct {
	adminHash    string
	knownArtisan string
	gotStatus    string
}

func (s *adminTestSQL) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (s *adminTestSQL) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("unexpected query: %s", query)
}

func (s *adminTestSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	switch query {
	case sqlinline.QSelectAdminByUsername:
		username, _ := args[0].(string)
		if username != "admin" || s.adminHash == "" {
			return NewSimpleRow(nil)
		}
		return NewSimpleRow(func(dest ...any) error {
			*(dest[0].(*string)) = "admin-1"
			*(dest[1].(*string)) = "admin"
			*(dest[2].(*string)) = s.adminHash
			*(dest[3].(*time.Time)) = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			return nil
		})
	case sqlinline.QUpdateArtisanStatus:
		id, _ := args[0].(string)
		if id != s.knownArtisan {
			return NewSimpleRow(nil)
		}
		s.gotStatus, _ = args[1].(string)
		return NewSimpleRow(func(dest ...any) error {
			*(dest[0].(*string)) = id
			return nil
		})
	case sqlinline.QPlatformStats:
		return NewSimpleRow(func(dest ...any) error {
			*(dest[0].(*int64)) = 12
			*(dest[1].(*int64)) = 4
			*(dest[2].(*int64)) = 7
			*(dest[3].(*int64)) = 31
			*(dest[4].(*float64)) = 912.5
			return nil
		})
	}
	return NewSimpleRow(func(dest ...any) error {
		return fmt.Errorf("unexpected query: %s", query)
	})
}

func adminTestApp(sql *adminTestSQL) *App {
	return &App{
		SQL:       sql,
		Logger:    zerolog.Nop(),
		JWTSecret: "test-secret",
	}
}

func TestAdminLogin(t *testing.T) {
	hash, err := auth.HashPassword("admin-password")
	require.NoError(t, err)
	app := adminTestApp(&adminTestSQL{adminHash: hash})

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/login",
		strings.NewReader(`{"username":"admin","password":"admin-password"}`))
	rr := httptest.NewRecorder()
	app.AdminLogin(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "admin", resp.Username)

	claims, err := middleware.VerifyJWT("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, middleware.RoleAdmin, claims.Role)
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("admin-password")
	require.NoError(t, err)
	app := adminTestApp(&adminTestSQL{adminHash: hash})

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/login",
		strings.NewReader(`{"username":"admin","password":"wrong"}`))
	rr := httptest.NewRecorder()
	app.AdminLogin(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminVerifyArtisan(t *testing.T) {
	sql := &adminTestSQL{knownArtisan: "artisan-1"}
	app := adminTestApp(sql)

	tests := []struct {
		name       string
		artisanID  string
		action     string
		wantStatus int
		wantSet    string
	}{
		{name: "verify", artisanID: "artisan-1", action: "verify", wantStatus: http.StatusOK, wantSet: "verified"},
		{name: "reject", artisanID: "artisan-1", action: "reject", wantStatus: http.StatusOK, wantSet: "rejected"},
		{name: "bad action", artisanID: "artisan-1", action: "promote", wantStatus: http.StatusBadRequest},
		{name: "unknown artisan", artisanID: "ghost", action: "verify", wantStatus: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sql.gotStatus = ""
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tc.artisanID)
			req := httptest.NewRequest(http.MethodPost, "/v1/admin/artisans/"+tc.artisanID+"/verify",
				strings.NewReader(fmt.Sprintf(`{"action":%q}`, tc.action)))
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rr := httptest.NewRecorder()
			app.AdminVerifyArtisan(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code, rr.Body.String())
			if tc.wantSet != "" {
				assert.Equal(t, tc.wantSet, sql.gotStatus)
			}
		})
	}
}

func TestAdminStats(t *testing.T) {
	app := adminTestApp(&adminTestSQL{})

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	rr := httptest.NewRecorder()
	app.AdminStats(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.EqualValues(t, 12, resp["total_artisans"])
	assert.EqualValues(t, 4, resp["pending_artisans"])
	assert.EqualValues(t, 31, resp["total_products"])
	assert.EqualValues(t, 912.5, resp["avg_price_mid"])
}
