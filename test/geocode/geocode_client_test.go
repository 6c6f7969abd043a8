package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
	"github.com/migfernandes01/places-share-API/internal/common/logger"
	"github.com/migfernandes01/places-share-API/internal/geocode"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *geocode.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log, _ := logger.New("", "test", "info")
	return geocode.NewClient(server.URL, "test-key", 5*time.Second, log)
}

func TestGeocodeClient_Resolve_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "20 W 34th St, New York" {
			t.Errorf("unexpected query: %s", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("unexpected key: %s", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("unexpected format: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"40.7484405","lon":"-73.9856644"},{"lat":"0","lon":"0"}]`))
	})

	location, err := client.Resolve(context.Background(), "20 W 34th St, New York")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if location.Lat != 40.7484405 || location.Lng != -73.9856644 {
		t.Errorf("unexpected location: %+v", location)
	}
}

func TestGeocodeClient_Resolve_NotFoundStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Unable to geocode"}`, http.StatusNotFound)
	})

	_, err := client.Resolve(context.Background(), "no such address")
	if !errors.Is(err, commonerrors.ErrGeocodeNoMatch) {
		t.Fatalf("expected ErrGeocodeNoMatch, got %v", err)
	}

	domainErr, _ := commonerrors.AsDomainError(err)
	if domainErr.HTTPStatus() != 422 {
		t.Errorf("expected status 422, got %d", domainErr.HTTPStatus())
	}
	if domainErr.Message() != "Could not find location for the specified address." {
		t.Errorf("unexpected message: %s", domainErr.Message())
	}
}

func TestGeocodeClient_Resolve_EmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.Resolve(context.Background(), "no such address")
	if !errors.Is(err, commonerrors.ErrGeocodeNoMatch) {
		t.Fatalf("expected ErrGeocodeNoMatch, got %v", err)
	}
}

func TestGeocodeClient_Resolve_ProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := client.Resolve(context.Background(), "20 W 34th St, New York")
	if !errors.Is(err, commonerrors.ErrGeocodeProvider) {
		t.Fatalf("expected ErrGeocodeProvider, got %v", err)
	}

	domainErr, _ := commonerrors.AsDomainError(err)
	if domainErr.HTTPStatus() != 502 {
		t.Errorf("expected status 502, got %d", domainErr.HTTPStatus())
	}
}

func TestGeocodeClient_Resolve_MalformedCoordinates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"not-a-number","lon":"-73.98"}]`))
	})

	_, err := client.Resolve(context.Background(), "20 W 34th St, New York")
	if !errors.Is(err, commonerrors.ErrGeocodeProvider) {
		t.Fatalf("expected ErrGeocodeProvider, got %v", err)
	}
}

func TestGeocodeClient_Resolve_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	})

	_, err := client.Resolve(context.Background(), "20 W 34th St, New York")
	if !errors.Is(err, commonerrors.ErrGeocodeProvider) {
		t.Fatalf("expected ErrGeocodeProvider, got %v", err)
	}
}
