// Package handlers implements the HTTP API: artisan accounts, product
// uploads with generated captions and price bands, the public catalog, and
// the admin verification dashboard.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"loomcraft/internal/infra"
	"loomcraft/internal/middleware"
	"loomcraft/internal/storage"
)

type App struct {
	SQL       infra.SQLExecutor
	Logger    zerolog.Logger
	Config    infra.Config
	Store     *storage.FileStore
	JWTSecret string
}

func NewApp(sql infra.SQLExecutor, logger zerolog.Logger, cfg infra.Config, store *storage.FileStore) *App {
	return &App{
		SQL:       sql,
		Logger:    logger,
		Config:    cfg,
		Store:     store,
		JWTSecret: cfg.JWTSecret,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]errorResponse{"error": {Code: code, Message: message}})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// assetURL maps a storage key to its public URL under the static file mount.
func (a *App) assetURL(storageKey string) string {
	storageKey = strings.TrimLeft(strings.TrimSpace(storageKey), "/")
	if storageKey == "" {
		return ""
	}
	base := strings.TrimRight(a.Config.StorageBaseURL, "/")
	return base + "/" + storageKey
}
