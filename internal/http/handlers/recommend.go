package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"loomcraft/internal/metrics"
	"loomcraft/internal/middleware"
	"loomcraft/internal/recommend"
	"loomcraft/internal/sqlinline"
)

type captionPreviewRequest struct {
	Material     string  `json:"material"`
	ArtisanName  string  `json:"artisan_name"`
	Location     string  `json:"location"`
	TimeValue    float64 `json:"time_value"`
	TimeUnit     string  `json:"time_unit"`
	SelectionKey int     `json:"selection_key"`
}

type pricePreviewRequest struct {
	Material  string  `json:"material"`
	TimeValue float64 `json:"time_value"`
	TimeUnit  string  `json:"time_unit"`
}

// RecommendCaption previews a caption without persisting anything. Artisans
// use it to cycle through templates before uploading.
func (a *App) RecommendCaption(w http.ResponseWriter, r *http.Request) {
	var req captionPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	unit, err := recommend.ParseUnit(req.TimeUnit)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_input", "time_unit must be hours or days")
		return
	}
	// Authenticated artisans get their profile woven into the byline
	// unless the request spells out something else.
	if req.ArtisanName == "" && req.Location == "" {
		if userID := a.currentUserID(r); userID != "" {
			row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectArtisanByID, userID)
			if artisan, err := scanArtisan(row); err == nil {
				req.ArtisanName = artisan.Name
				req.Location = artisan.Location
			}
		}
	}
	caption, err := recommend.Caption(recommend.CaptionRequest{
		Material:     req.Material,
		ArtisanName:  req.ArtisanName,
		Location:     req.Location,
		TimeValue:    req.TimeValue,
		TimeUnit:     unit,
		SelectionKey: req.SelectionKey,
	})
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidInput) {
			a.error(w, http.StatusBadRequest, "invalid_input", "time must be a positive finite number")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to build caption")
		return
	}
	metrics.RecommendationsTotal.WithLabelValues("caption", materialLabel(req.Material)).Inc()
	a.json(w, http.StatusOK, map[string]any{
		"caption":        caption,
		"template_count": recommend.TemplateCount(),
	})
}

// RecommendPrice previews the rule-based price band for given craft details.
func (a *App) RecommendPrice(w http.ResponseWriter, r *http.Request) {
	var req pricePreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	unit, err := recommend.ParseUnit(req.TimeUnit)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_input", "time_unit must be hours or days")
		return
	}
	band, err := recommend.Price(recommend.PriceRequest{
		Material:  req.Material,
		TimeValue: req.TimeValue,
		TimeUnit:  unit,
	})
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidInput) {
			a.error(w, http.StatusBadRequest, "invalid_input", "time must be a positive finite number")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to compute price")
		return
	}
	if !recommend.KnownMaterial(req.Material) {
		metrics.RecommendationFallbacks.Inc()
	}
	metrics.RecommendationsTotal.WithLabelValues("price", materialLabel(req.Material)).Inc()

	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, map[string]any{
		"price_low":     band.Low,
		"price_high":    band.High,
		"price_display": priceDisplay(locale, band.Low, band.High),
		"base_price":    recommend.BasePrice(req.Material),
		"known":         recommend.KnownMaterial(req.Material),
	})
}

// materialLabel bounds metric label cardinality to the known material set.
func materialLabel(material string) string {
	if recommend.KnownMaterial(material) {
		return recommend.NormalizeMaterial(material)
	}
	return "other"
}
