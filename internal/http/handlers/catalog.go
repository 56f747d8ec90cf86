package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"loomcraft/internal/domain"
	"loomcraft/internal/middleware"
	"loomcraft/internal/recommend"
	"loomcraft/internal/sqlinline"
)

// CatalogList serves the public product feed with optional filters:
// material, min_price, max_price, verified_only, limit and offset.
func (a *App) CatalogList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	material := recommend.NormalizeMaterial(q.Get("material"))
	minPrice := -1
	if v := q.Get("min_price"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			a.error(w, http.StatusBadRequest, "bad_request", "min_price must be a non-negative integer")
			return
		}
		minPrice = n
	}
	maxPrice := -1
	if v := q.Get("max_price"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			a.error(w, http.StatusBadRequest, "bad_request", "max_price must be a non-negative integer")
			return
		}
		maxPrice = n
	}
	verifiedOnly := false
	if v := q.Get("verified_only"); v != "" {
		verifiedOnly = v == "true" || v == "1"
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset < 0 {
		offset = 0
	}

	rows, err := a.SQL.Query(r.Context(), sqlinline.QListProducts,
		material, minPrice, maxPrice, verifiedOnly, limit, offset)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list products failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load catalog")
		return
	}
	defer rows.Close()

	locale := middleware.LocaleFromContext(r.Context())
	items := []productDTO{}
	for rows.Next() {
		p, err := scanCatalogProduct(rows)
		if err != nil {
			continue
		}
		items = append(items, a.productToDTO(p, locale, true))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) CatalogGet(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectProductByID, productID)
	p, err := scanCatalogProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		a.Logger.Error().Err(err).Msg("select product failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load product")
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, a.productToDTO(p, locale, true))
}

// Materials lists the recognized material identifiers with their base
// prices, merged with any extra materials already present in the catalog.
func (a *App) Materials(w http.ResponseWriter, r *http.Request) {
	known := recommend.Materials()
	seen := make(map[string]struct{}, len(known))
	items := make([]map[string]any, 0, len(known))
	for _, m := range known {
		seen[m] = struct{}{}
		items = append(items, map[string]any{
			"material":   m,
			"base_price": recommend.BasePrice(m),
			"known":      true,
		})
	}

	rows, err := a.SQL.Query(r.Context(), sqlinline.QListDistinctMaterials)
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var m string
			if err := rows.Scan(&m); err != nil {
				continue
			}
			m = strings.TrimSpace(m)
			if _, ok := seen[m]; ok || m == "" {
				continue
			}
			items = append(items, map[string]any{
				"material":   m,
				"base_price": recommend.BasePrice(m),
				"known":      false,
			})
		}
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func scanCatalogProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.ArtisanID, &p.ImagePath, &p.Material, &p.TimeHours,
		&p.Caption, &p.PriceLow, &p.PriceHigh, &p.CertificateID, &p.CreatedAt,
		&p.ArtisanName, &p.ArtisanLocation, &p.ArtisanVerified)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
