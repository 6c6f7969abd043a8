package place

import (
	"context"
	"errors"
	"testing"

	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
	"github.com/migfernandes01/places-share-API/internal/place/domain"
	placerepo "github.com/migfernandes01/places-share-API/internal/place/repository"
	"github.com/migfernandes01/places-share-API/internal/place/service"
)

func TestPlaceService_GetByID_Success(t *testing.T) {
	svc, places, _, _, _, _, _ := setupPlaceService(t)

	places.findByIDFunc = func(ctx context.Context, id domain.ID) (domain.Place, error) {
		if id != "place-123" {
			t.Errorf("unexpected id: %s", id)
		}
		return storedPlace(), nil
	}

	place, err := svc.GetPlaceByID(context.Background(), "place-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if place.Title != "Empire State Building" {
		t.Errorf("unexpected place: %+v", place)
	}
}

func TestPlaceService_GetByID_NotFound(t *testing.T) {
	svc, places, _, _, _, _, _ := setupPlaceService(t)

	places.findByIDFunc = func(ctx context.Context, id domain.ID) (domain.Place, error) {
		return domain.Place{}, placerepo.ErrPlaceNotFound
	}

	_, err := svc.GetPlaceByID(context.Background(), "missing")
	if !errors.Is(err, commonerrors.ErrPlaceNotFound) {
		t.Fatalf("expected ErrPlaceNotFound, got %v", err)
	}

	domainErr, _ := commonerrors.AsDomainError(err)
	if domainErr.HTTPStatus() != 404 {
		t.Errorf("expected status 404, got %d", domainErr.HTTPStatus())
	}
	if domainErr.Message() != "Could not find a place with that id." {
		t.Errorf("unexpected message: %s", domainErr.Message())
	}
}

func TestPlaceService_GetByID_StoreFailure(t *testing.T) {
	svc, places, _, _, _, _, _ := setupPlaceService(t)

	places.findByIDFunc = func(ctx context.Context, id domain.ID) (domain.Place, error) {
		return domain.Place{}, errors.New("connection refused")
	}

	_, err := svc.GetPlaceByID(context.Background(), "place-123")
	if !errors.Is(err, service.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestPlaceService_GetByUser_Success(t *testing.T) {
	svc, places, _, _, _, _, _ := setupPlaceService(t)

	places.findByCreatorFunc = func(ctx context.Context, creatorID string) ([]domain.Place, error) {
		return []domain.Place{storedPlace()}, nil
	}

	found, err := svc.GetPlacesByUser(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 place, got %d", len(found))
	}
}

func TestPlaceService_GetByUser_Empty(t *testing.T) {
	svc, places, _, _, _, _, _ := setupPlaceService(t)

	places.findByCreatorFunc = func(ctx context.Context, creatorID string) ([]domain.Place, error) {
		return nil, nil
	}

	_, err := svc.GetPlacesByUser(context.Background(), "user-123")
	if !errors.Is(err, commonerrors.ErrNoPlacesForUser) {
		t.Fatalf("expected ErrNoPlacesForUser, got %v", err)
	}

	domainErr, _ := commonerrors.AsDomainError(err)
	if domainErr.HTTPStatus() != 404 {
		t.Errorf("expected status 404, got %d", domainErr.HTTPStatus())
	}
}

func TestPlaceService_GetByUser_StoreFailure(t *testing.T) {
	svc, places, _, _, _, _, _ := setupPlaceService(t)

	places.findByCreatorFunc = func(ctx context.Context, creatorID string) ([]domain.Place, error) {
		return nil, errors.New("connection refused")
	}

	_, err := svc.GetPlacesByUser(context.Background(), "user-123")
	if !errors.Is(err, service.ErrFetchByUserFailed) {
		t.Fatalf("expected ErrFetchByUserFailed, got %v", err)
	}
}
