package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"loomcraft/internal/auth"
	"loomcraft/internal/domain"
	"loomcraft/internal/middleware"
	"loomcraft/internal/sqlinline"
)

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *App) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectAdminByUsername, strings.TrimSpace(req.Username))
	var id, username, passwordHash string
	var createdAt time.Time
	if err := row.Scan(&id, &username, &passwordHash, &createdAt); err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}
	if !auth.VerifyPassword(req.Password, passwordHash) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}
	token, err := middleware.SignJWT(a.JWTSecret, middleware.TokenClaims{
		Sub:      id,
		Role:     middleware.RoleAdmin,
		Exp:      time.Now().Add(8 * time.Hour).Unix(),
		Issuer:   "loomcraft",
		Audience: "loomcraft-admin",
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign admin jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"token":    token,
		"username": username,
	})
}

// AdminListArtisans returns the verification queue, optionally filtered by
// status (pending, verified, rejected).
func (a *App) AdminListArtisans(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	switch status {
	case "", string(domain.VerificationPending), string(domain.VerificationVerified), string(domain.VerificationRejected):
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "unknown status filter")
		return
	}

	rows, err := a.SQL.Query(r.Context(), sqlinline.QListArtisans, status)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list artisans failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load artisans")
		return
	}
	defer rows.Close()

	items := []artisanDTO{}
	for rows.Next() {
		var artisan domain.Artisan
		var artisanStatus string
		if err := rows.Scan(&artisan.ID, &artisan.Name, &artisan.Location, &artisan.Email,
			&artisan.CertificatePath, &artisanStatus, &artisan.CreatedAt, &artisan.ProductCount); err != nil {
			continue
		}
		items = append(items, artisanDTO{
			ID:             artisan.ID,
			Name:           artisan.Name,
			Location:       artisan.Location,
			Email:          artisan.Email,
			Status:         artisanStatus,
			CertificateURL: a.assetURL(artisan.CertificatePath),
			ProductCount:   artisan.ProductCount,
			CreatedAt:      artisan.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// AdminGetArtisan returns one artisan with their product count.
func (a *App) AdminGetArtisan(w http.ResponseWriter, r *http.Request) {
	artisanID := chi.URLParam(r, "id")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectArtisanDetail, artisanID)
	var artisan domain.Artisan
	var status string
	if err := row.Scan(&artisan.ID, &artisan.Name, &artisan.Location, &artisan.Email,
		&artisan.CertificatePath, &status, &artisan.CreatedAt, &artisan.ProductCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "artisan not found")
			return
		}
		a.Logger.Error().Err(err).Msg("select artisan detail failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load artisan")
		return
	}
	a.json(w, http.StatusOK, artisanDTO{
		ID:             artisan.ID,
		Name:           artisan.Name,
		Location:       artisan.Location,
		Email:          artisan.Email,
		Status:         status,
		CertificateURL: a.assetURL(artisan.CertificatePath),
		ProductCount:   artisan.ProductCount,
		CreatedAt:      artisan.CreatedAt.UTC().Format(time.RFC3339),
	})
}

type verifyRequest struct {
	Action string `json:"action"`
}

// AdminVerifyArtisan applies a verify or reject decision to an artisan.
func (a *App) AdminVerifyArtisan(w http.ResponseWriter, r *http.Request) {
	artisanID := chi.URLParam(r, "id")
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	var status domain.VerificationStatus
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "verify":
		status = domain.VerificationVerified
	case "reject":
		status = domain.VerificationRejected
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "action must be verify or reject")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QUpdateArtisanStatus, artisanID, string(status))
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "artisan not found")
			return
		}
		a.Logger.Error().Err(err).Msg("update artisan status failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update artisan")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id, "status": string(status)})
}

// AdminStats summarizes platform activity for the dashboard.
func (a *App) AdminStats(w http.ResponseWriter, r *http.Request) {
	row := a.SQL.QueryRow(r.Context(), sqlinline.QPlatformStats)
	var totalArtisans, pendingArtisans, verifiedArtisans, totalProducts int64
	var avgPriceMid float64
	if err := row.Scan(&totalArtisans, &pendingArtisans, &verifiedArtisans, &totalProducts, &avgPriceMid); err != nil {
		a.Logger.Error().Err(err).Msg("load stats failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"total_artisans":    totalArtisans,
		"pending_artisans":  pendingArtisans,
		"verified_artisans": verifiedArtisans,
		"total_products":    totalProducts,
		"avg_price_mid":     avgPriceMid,
	})
}
