package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_tokens_issued_total",
			Help: "Total number of session tokens issued",
		},
	)

	JWTValidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jwt_validations_total",
			Help: "Total number of JWT validations",
		},
	)

	JWTValidationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jwt_validations_failed_total",
			Help: "Total number of failed JWT validations",
		},
	)

	PlacesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "places_created_total",
			Help: "Total number of places created",
		},
	)

	PlacesUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "places_updated_total",
			Help: "Total number of places updated",
		},
	)

	PlacesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "places_deleted_total",
			Help: "Total number of places deleted",
		},
	)

	GeocodeRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geocode_requests_total",
			Help: "Total number of geocoding requests",
		},
	)

	GeocodeFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_failures_total",
			Help: "Total number of failed geocoding requests",
		},
		[]string{"reason"},
	)

	AssetsStaged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assets_staged_total",
			Help: "Total number of uploaded assets staged",
		},
	)

	AssetsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assets_discarded_total",
			Help: "Total number of assets discarded",
		},
	)

	AssetDiscardFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "asset_discard_failures_total",
			Help: "Total number of failed asset discards",
		},
	)
)
