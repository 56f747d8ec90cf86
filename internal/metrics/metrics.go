// Package metrics exposes Prometheus collectors for the API surface and
// the recommendation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route", "method"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of caption and price recommendations served",
		},
		[]string{"kind", "material"},
	)

	RecommendationFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_material_fallbacks_total",
			Help: "Recommendations that used the fallback base price for an unknown material",
		},
	)

	ProductsUploaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "products_uploaded_total",
			Help: "Total number of product uploads accepted",
		},
	)
)
