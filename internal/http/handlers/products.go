package handlers

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"loomcraft/internal/domain"
	"loomcraft/internal/metrics"
	"loomcraft/internal/middleware"
	"loomcraft/internal/recommend"
	"loomcraft/internal/sqlinline"
)

type productDTO struct {
	ID            string     `json:"id"`
	ImageURL      string     `json:"image_url"`
	Material      string     `json:"material"`
	TimeHours     float64    `json:"time_hours"`
	Caption       string     `json:"caption"`
	PriceLow      int        `json:"price_low"`
	PriceHigh     int        `json:"price_high"`
	PriceDisplay  string     `json:"price_display"`
	CertificateID string     `json:"certificate_id"`
	CreatedAt     string     `json:"created_at"`
	Artisan       *sellerDTO `json:"artisan,omitempty"`
}

type sellerDTO struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Verified bool   `json:"verified"`
}

// ProductUpload accepts a multipart form with the product image and craft
// details, runs the caption and price engine, and persists the listing with
// the generated output frozen in.
func (a *App) ProductUpload(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	if err := r.ParseMultipartForm(a.Config.MaxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}

	material := strings.TrimSpace(r.FormValue("material"))
	if material == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "material required")
		return
	}
	timeValue, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("time_value")), 64)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_input", "time_value must be a number")
		return
	}
	unit, err := recommend.ParseUnit(r.FormValue("time_unit"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_input", "time_unit must be hours or days")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image file required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, a.Config.MaxUploadBytes+1))
	if err != nil || int64(len(data)) > a.Config.MaxUploadBytes {
		a.error(w, http.StatusBadRequest, "bad_request", "image too large")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectArtisanByID, userID)
	artisan, err := scanArtisan(row)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "artisan not found")
		return
	}

	hours, err := recommend.NormalizeHours(timeValue, unit)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_input", "time must be a positive finite number")
		return
	}
	certificateID := domain.NewCertificateID()

	// The engine fills caption and price band unless the artisan supplied
	// their own values.
	caption := strings.TrimSpace(r.FormValue("caption"))
	if caption == "" {
		selectionKey := selectionKeyFor(certificateID)
		if variant := strings.TrimSpace(r.FormValue("caption_variant")); variant != "" {
			key, err := strconv.Atoi(variant)
			if err != nil {
				a.error(w, http.StatusBadRequest, "invalid_input", "caption_variant must be an integer")
				return
			}
			selectionKey = key
		}
		caption, err = recommend.Caption(recommend.CaptionRequest{
			Material:     material,
			ArtisanName:  artisan.Name,
			Location:     artisan.Location,
			TimeValue:    timeValue,
			TimeUnit:     unit,
			SelectionKey: selectionKey,
		})
		if err != nil {
			a.error(w, http.StatusBadRequest, "invalid_input", "invalid craft details")
			return
		}
	}

	band, err := recommend.Price(recommend.PriceRequest{Material: material, TimeValue: timeValue, TimeUnit: unit})
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_input", "invalid craft details")
		return
	}
	if lowRaw, highRaw := r.FormValue("price_low"), r.FormValue("price_high"); lowRaw != "" || highRaw != "" {
		low, lowErr := strconv.Atoi(strings.TrimSpace(lowRaw))
		high, highErr := strconv.Atoi(strings.TrimSpace(highRaw))
		if lowErr != nil || highErr != nil || low <= 0 || high < low {
			a.error(w, http.StatusBadRequest, "invalid_input", "price overrides must satisfy 0 < price_low <= price_high")
			return
		}
		band = recommend.PriceBand{Low: low, High: high}
	}
	if !recommend.KnownMaterial(material) {
		metrics.RecommendationFallbacks.Inc()
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	imageKey, err := a.Store.Write(r.Context(), fmt.Sprintf("products/%s%s", uuid.NewString(), ext), data)
	if err != nil {
		a.Logger.Error().Err(err).Msg("store product image failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store image")
		return
	}

	insert := a.SQL.QueryRow(r.Context(), sqlinline.QInsertProduct,
		userID, imageKey, recommend.NormalizeMaterial(material), hours, caption, band.Low, band.High, certificateID)
	var productID string
	if err := insert.Scan(&productID); err != nil {
		a.Logger.Error().Err(err).Msg("insert product failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save product")
		return
	}
	metrics.ProductsUploaded.Inc()

	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusCreated, productDTO{
		ID:            productID,
		ImageURL:      a.assetURL(imageKey),
		Material:      recommend.NormalizeMaterial(material),
		TimeHours:     hours,
		Caption:       caption,
		PriceLow:      band.Low,
		PriceHigh:     band.High,
		PriceDisplay:  priceDisplay(locale, band.Low, band.High),
		CertificateID: certificateID,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Artisan: &sellerDTO{
			Name:     artisan.Name,
			Location: artisan.Location,
			Verified: artisan.IsVerified(),
		},
	})
}

// MyProducts lists the authenticated artisan's own products.
func (a *App) MyProducts(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListProductsByArtisan, userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load products")
		return
	}
	defer rows.Close()

	locale := middleware.LocaleFromContext(r.Context())
	items := []productDTO{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.ArtisanID, &p.ImagePath, &p.Material, &p.TimeHours,
			&p.Caption, &p.PriceLow, &p.PriceHigh, &p.CertificateID, &p.CreatedAt); err != nil {
			continue
		}
		items = append(items, a.productToDTO(p, locale, false))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// ProductDelete removes one of the artisan's own products along with its
// stored image.
func (a *App) ProductDelete(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	productID := chi.URLParam(r, "id")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QDeleteProduct, productID, userID)
	var imagePath string
	if err := row.Scan(&imagePath); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		a.Logger.Error().Err(err).Msg("delete product failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete product")
		return
	}
	if err := a.Store.Remove(r.Context(), imagePath); err != nil {
		a.Logger.Warn().Err(err).Str("image_path", imagePath).Msg("remove product image failed")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) productToDTO(p domain.Product, locale string, withSeller bool) productDTO {
	dto := productDTO{
		ID:            p.ID,
		ImageURL:      a.assetURL(p.ImagePath),
		Material:      p.Material,
		TimeHours:     p.TimeHours,
		Caption:       p.Caption,
		PriceLow:      p.PriceLow,
		PriceHigh:     p.PriceHigh,
		PriceDisplay:  priceDisplay(locale, p.PriceLow, p.PriceHigh),
		CertificateID: p.CertificateID,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if withSeller {
		dto.Artisan = &sellerDTO{
			Name:     p.ArtisanName,
			Location: p.ArtisanLocation,
			Verified: p.ArtisanVerified,
		}
	}
	return dto
}

// selectionKeyFor spreads caption template choice across products while
// staying reproducible for a given certificate ID.
func selectionKeyFor(certificateID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(certificateID))
	return int(h.Sum32() % 1000)
}
