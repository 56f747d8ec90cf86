package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loomcraft/internal/infra"
	"loomcraft/internal/sqlinline"
)

type catalogRow struct {
	id              string
	artisanID       string
	imagePath       string
	material        string
	timeHours       float64
	caption         string
	priceLow        int
	priceHigh       int
	certificateID   string
	createdAt       time.Time
	artisanName     string
	artisanLocation string
	artisanVerified bool
}

type catalogTestSQL struct {
	rows      []catalogRow
	materials []string
	gotArgs   []any
}

func (c *catalogTestSQL) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (c *catalogTestSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	if query != sqlinline.QSelectProductByID {
		return NewSimpleRow(func(dest ...any) error {
			return fmt.Errorf("unexpected query: %s", query)
		})
	}
	id, _ := args[0].(string)
	for _, row := range c.rows {
		if row.id == id {
			row := row
			return NewSimpleRow(func(dest ...any) error {
				return scanCatalogRowInto(row, dest)
			})
		}
	}
	return NewSimpleRow(nil)
}

func (c *catalogTestSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	switch query {
	case sqlinline.QListProducts:
		c.gotArgs = args
		return &catalogRowsIterator{rows: c.rows}, nil
	case sqlinline.QListDistinctMaterials:
		return &materialsIterator{materials: c.materials}, nil
	}
	return nil, fmt.Errorf("unexpected query: %s", query)
}

type catalogRowsIterator struct {
	TestRowsBase
	rows []catalogRow
	idx  int
}

func (it *catalogRowsIterator) Next() bool {
	if it.idx >= len(it.rows) {
		return false
	}
	it.idx++
	return true
}

func (it *catalogRowsIterator) Scan(dest ...any) error {
	if it.idx == 0 || it.idx > len(it.rows) {
		return pgx.ErrNoRows
	}
	return scanCatalogRowInto(it.rows[it.idx-1], dest)
}

func (it *catalogRowsIterator) Err() error { return nil }

func (it *catalogRowsIterator) Close() {}

func scanCatalogRowInto(row catalogRow, dest []any) error {
	if len(dest) != 13 {
		return fmt.Errorf("unexpected scan args: %d", len(dest))
	}
	*(dest[0].(*string)) = row.id
	*(dest[1].(*string)) = row.artisanID
	*(dest[2].(*string)) = row.imagePath
	*(dest[3].(*string)) = row.material
	*(dest[4].(*float64)) = row.timeHours
	*(dest[5].(*string)) = row.caption
	*(dest[6].(*int)) = row.priceLow
	*(dest[7].(*int)) = row.priceHigh
	*(dest[8].(*string)) = row.certificateID
	*(dest[9].(*time.Time)) = row.createdAt
	*(dest[10].(*string)) = row.artisanName
	*(dest[11].(*string)) = row.artisanLocation
	*(dest[12].(*bool)) = row.artisanVerified
	return nil
}

type materialsIterator struct {
	TestRowsBase
	materials []string
	idx       int
}

func (it *materialsIterator) Next() bool {
	if it.idx >= len(it.materials) {
		return false
	}
	it.idx++
	return true
}

func (it *materialsIterator) Scan(dest ...any) error {
	if it.idx == 0 || it.idx > len(it.materials) {
		return pgx.ErrNoRows
	}
	*(dest[0].(*string)) = it.materials[it.idx-1]
	return nil
}

func (it *materialsIterator) Err() error { return nil }

func (it *materialsIterator) Close() {}

func catalogApp(sql infra.SQLExecutor) *App {
	return &App{
		SQL:    sql,
		Logger: zerolog.Nop(),
		Config: infra.Config{StorageBaseURL: "http://localhost:8080/static"},
	}
}

func sampleCatalogRow() catalogRow {
	return catalogRow{
		id:              "prod-1",
		artisanID:       "artisan-1",
		imagePath:       "products/a.jpg",
		material:        "silk",
		timeHours:       24,
		caption:         "Handwoven from lustrous silk by artisan Lakshmi of Varanasi.",
		priceLow:        1576,
		priceHigh:       2132,
		certificateID:   "TOT-1A2B3C4D",
		createdAt:       time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		artisanName:     "Lakshmi",
		artisanLocation: "Varanasi",
		artisanVerified: true,
	}
}

func TestCatalogListReturnsProducts(t *testing.T) {
	sql := &catalogTestSQL{rows: []catalogRow{sampleCatalogRow()}}
	app := catalogApp(sql)

	req := httptest.NewRequest(http.MethodGet, "/v1/products?material=Silk&min_price=500&verified_only=true", nil)
	rr := httptest.NewRecorder()
	app.CatalogList(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var payload struct {
		Items []productDTO `json:"items"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	require.Len(t, payload.Items, 1)

	item := payload.Items[0]
	assert.Equal(t, "prod-1", item.ID)
	assert.Equal(t, "http://localhost:8080/static/products/a.jpg", item.ImageURL)
	assert.Equal(t, 1576, item.PriceLow)
	assert.Contains(t, item.PriceDisplay, "₹")
	require.NotNil(t, item.Artisan)
	assert.Equal(t, "Lakshmi", item.Artisan.Name)
	assert.True(t, item.Artisan.Verified)

	// Filters are forwarded normalized: material lowercased, unset
	// max_price sent as -1.
	require.Len(t, sql.gotArgs, 6)
	assert.Equal(t, "silk", sql.gotArgs[0])
	assert.Equal(t, 500, sql.gotArgs[1])
	assert.Equal(t, -1, sql.gotArgs[2])
	assert.Equal(t, true, sql.gotArgs[3])
}

func TestCatalogListRejectsBadPriceFilter(t *testing.T) {
	app := catalogApp(&catalogTestSQL{})

	req := httptest.NewRequest(http.MethodGet, "/v1/products?min_price=abc", nil)
	rr := httptest.NewRecorder()
	app.CatalogList(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCatalogGetNotFound(t *testing.T) {
	app := catalogApp(&catalogTestSQL{})

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "missing")
	req := httptest.NewRequest(http.MethodGet, "/v1/products/missing", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()
	app.CatalogGet(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCatalogGetReturnsProduct(t *testing.T) {
	app := catalogApp(&catalogTestSQL{rows: []catalogRow{sampleCatalogRow()}})

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "prod-1")
	req := httptest.NewRequest(http.MethodGet, "/v1/products/prod-1", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()
	app.CatalogGet(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var item productDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&item))
	assert.Equal(t, "TOT-1A2B3C4D", item.CertificateID)
	assert.Equal(t, "silk", item.Material)
}

func TestMaterialsMergesCatalogExtras(t *testing.T) {
	app := catalogApp(&catalogTestSQL{materials: []string{"silk", "banana fibre"}})

	req := httptest.NewRequest(http.MethodGet, "/v1/materials", nil)
	rr := httptest.NewRecorder()
	app.Materials(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var payload struct {
		Items []struct {
			Material  string `json:"material"`
			BasePrice int    `json:"base_price"`
			Known     bool   `json:"known"`
		} `json:"items"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))

	byName := map[string]struct {
		base  int
		known bool
	}{}
	for _, item := range payload.Items {
		byName[item.Material] = struct {
			base  int
			known bool
		}{item.BasePrice, item.Known}
	}

	// Known materials appear once with their configured base price.
	silk, ok := byName["silk"]
	require.True(t, ok)
	assert.Equal(t, 800, silk.base)
	assert.True(t, silk.known)

	// Catalog-only materials surface with the fallback base price.
	extra, ok := byName["banana fibre"]
	require.True(t, ok)
	assert.Equal(t, 200, extra.base)
	assert.False(t, extra.known)
}
