package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"loomcraft/internal/auth"
	"loomcraft/internal/domain"
	"loomcraft/internal/middleware"
	"loomcraft/internal/sqlinline"
)

type registerRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string     `json:"token"`
	Artisan artisanDTO `json:"artisan"`
}

type artisanDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Location       string `json:"location"`
	Email          string `json:"email"`
	Status         string `json:"status"`
	CertificateURL string `json:"certificate_url,omitempty"`
	ProductCount   int    `json:"product_count,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// ArtisanRegister creates a pending artisan account. Registration accepts
// multipart form data so a craft certificate can be attached, or plain JSON
// when there is no file.
func (a *App) ArtisanRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	var certFile multipart.File
	var certHeader *multipart.FileHeader

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(a.Config.MaxUploadBytes); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
			return
		}
		req.Name = r.FormValue("name")
		req.Location = r.FormValue("location")
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
		if f, h, err := r.FormFile("certificate"); err == nil {
			certFile = f
			certHeader = h
			defer f.Close()
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
			return
		}
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name and email required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid email")
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	var certKey string
	if certFile != nil {
		data, err := io.ReadAll(io.LimitReader(certFile, a.Config.MaxUploadBytes+1))
		if err != nil || int64(len(data)) > a.Config.MaxUploadBytes {
			a.error(w, http.StatusBadRequest, "bad_request", "certificate too large")
			return
		}
		ext := strings.ToLower(filepath.Ext(certHeader.Filename))
		key := fmt.Sprintf("certificates/%s%s", uuid.NewString(), ext)
		certKey, err = a.Store.Write(r.Context(), key, data)
		if err != nil {
			a.Logger.Error().Err(err).Msg("store certificate failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to store certificate")
			return
		}
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertArtisan, req.Name, req.Location, req.Email, hash, certKey)
	var artisanID string
	if err := row.Scan(&artisanID); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			a.error(w, http.StatusConflict, "conflict", "email already registered")
			return
		}
		a.Logger.Error().Err(err).Msg("insert artisan failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register artisan")
		return
	}

	token, err := a.signArtisanToken(artisanID, r)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusCreated, authResponse{
		Token: token,
		Artisan: artisanDTO{
			ID:             artisanID,
			Name:           req.Name,
			Location:       req.Location,
			Email:          req.Email,
			Status:         string(domain.VerificationPending),
			CertificateURL: a.assetURL(certKey),
		},
	})
}

func (a *App) ArtisanLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectArtisanByEmail, strings.TrimSpace(req.Email))
	artisan, err := scanArtisan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		a.Logger.Error().Err(err).Msg("select artisan failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load artisan")
		return
	}
	if !auth.VerifyPassword(req.Password, artisan.PasswordHash) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}
	token, err := a.signArtisanToken(artisan.ID, r)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, authResponse{Token: token, Artisan: artisanToDTO(artisan, a)})
}

func (a *App) ArtisanMe(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectArtisanByID, userID)
	artisan, err := scanArtisan(row)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "artisan not found")
		return
	}
	a.json(w, http.StatusOK, artisanToDTO(artisan, a))
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (a *App) ArtisanUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QUpdateArtisanProfile, userID, strings.TrimSpace(req.Name), strings.TrimSpace(req.Location))
	var id string
	if err := row.Scan(&id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "artisan not found")
		return
	}
	a.ArtisanMe(w, r)
}

func (a *App) signArtisanToken(artisanID string, r *http.Request) (string, error) {
	return middleware.SignJWT(a.JWTSecret, middleware.TokenClaims{
		Sub:      artisanID,
		Role:     middleware.RoleArtisan,
		Locale:   middleware.LocaleFromContext(r.Context()),
		Exp:      time.Now().Add(24 * time.Hour).Unix(),
		Issuer:   "loomcraft",
		Audience: "loomcraft-clients",
	})
}

func scanArtisan(row pgx.Row) (domain.Artisan, error) {
	var artisan domain.Artisan
	var status string
	err := row.Scan(&artisan.ID, &artisan.Name, &artisan.Location, &artisan.Email,
		&artisan.PasswordHash, &artisan.CertificatePath, &status,
		&artisan.CreatedAt, &artisan.UpdatedAt)
	if err != nil {
		return domain.Artisan{}, err
	}
	artisan.Status = domain.VerificationStatus(status)
	return artisan, nil
}

func artisanToDTO(artisan domain.Artisan, a *App) artisanDTO {
	return artisanDTO{
		ID:             artisan.ID,
		Name:           artisan.Name,
		Location:       artisan.Location,
		Email:          artisan.Email,
		Status:         string(artisan.Status),
		CertificateURL: a.assetURL(artisan.CertificatePath),
		CreatedAt:      artisan.CreatedAt.UTC().Format(time.RFC3339),
	}
}
