package place

import (
	"context"
	"errors"
	"testing"

	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
	"github.com/migfernandes01/places-share-API/internal/place/domain"
	placerepo "github.com/migfernandes01/places-share-API/internal/place/repository"
	"github.com/migfernandes01/places-share-API/internal/place/service"
	userdomain "github.com/migfernandes01/places-share-API/internal/user/domain"
)

func TestPlaceService_Delete_Success(t *testing.T) {
	svc, places, users, _, assets, _, _ := setupPlaceService(t)

	places.findByIDFunc = func(ctx context.Context, id domain.ID) (domain.Place, error) {
		return storedPlace(), nil
	}
	users.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		return userdomain.User{ID: id, PlaceIDs: []string{"place-123"}}, nil
	}

	var deleted domain.Place
	places.deleteWithOwnerFunc = func(ctx context.Context, place domain.Place) error {
		deleted = place
		return nil
	}

	err := svc.DeletePlace(context.Background(), "place-123", "user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if deleted.ID != "place-123" {
		t.Errorf("expected place-123 deleted, got %s", deleted.ID)
	}
	if len(assets.discarded) != 1 || assets.discarded[0] != "uploads/images/esb.png" {
		t.Errorf("expected image discarded, got %v", assets.discarded)
	}
}

func TestPlaceService_Delete_NonOwnerRefused(t *testing.T) {
	svc, places, users, _, assets, _, _ := setupPlaceService(t)

	places.findByIDFunc = func(ctx context.Context, id domain.ID) (domain.Place, error) {
		return storedPlace(), nil
	}
	users.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		return userdomain.User{ID: id}, nil
	}
	places.deleteWithOwnerFunc = func(ctx context.Context, place domain.Place) error {
		t.Error("delete must not run for a non-owner")
		return nil
	}

	err := svc.DeletePlace(context.Background(), "place-123", "someone-else")
	if !errors.Is(err, service.ErrDeleteForbidden) {
		t.Fatalf("expected ErrDeleteForbidden, got %v", err)
	}

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok {
		t.Fatalf("expected domain error, got %v", err)
	}
	if domainErr.HTTPStatus() != 401 {
		t.Errorf("expected status 401, got %d", domainErr.HTTPStatus())
	}
	if domainErr.Message() != "You are not allowed to delete this place" {
		t.Errorf("unexpected message: %s", domainErr.Message())
	}
	if len(assets.discarded) != 0 {
		t.Errorf("image must survive a refused delete, got %v", assets.discarded)
	}
}

func TestPlaceService_Delete_NotFound(t *testing.T) {
	svc, places, _, _, _, _, _ := setupPlaceService(t)

	places.findByIDFunc = func(ctx context.Context, id domain.ID) (domain.Place, error) {
		return domain.Place{}, placerepo.ErrPlaceNotFound
	}

	err := svc.DeletePlace(context.Background(), "missing", "user-123")
	if !errors.Is(err, commonerrors.ErrPlaceNotFound) {
		t.Fatalf("expected ErrPlaceNotFound, got %v", err)
	}
}

func TestPlaceService_Delete_RepeatedDeleteIs404(t *testing.T) {
	svc, places, users, _, _, _, _ := setupPlaceService(t)

	places.findByIDFunc = func(ctx context.Context, id domain.ID) (domain.Place, error) {
		return storedPlace(), nil
	}
	users.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		return userdomain.User{ID: id}, nil
	}
	places.deleteWithOwnerFunc = func(ctx context.Context, place domain.Place) error {
		// Raced with another delete between lookup and mutation.
		return placerepo.ErrPlaceNotFound
	}

	err := svc.DeletePlace(context.Background(), "place-123", "user-123")
	if !errors.Is(err, commonerrors.ErrPlaceNotFound) {
		t.Fatalf("expected ErrPlaceNotFound, got %v", err)
	}
}

func TestPlaceService_Delete_OwnerLookupFailure(t *testing.T) {
	svc, places, users, _, assets, _, _ := setupPlaceService(t)

	places.findByIDFunc = func(ctx context.Context, id domain.ID) (domain.Place, error) {
		return storedPlace(), nil
	}
	users.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		return userdomain.User{}, errors.New("connection refused")
	}

	err := svc.DeletePlace(context.Background(), "place-123", "user-123")
	if !errors.Is(err, service.ErrDeleteFailed) {
		t.Fatalf("expected ErrDeleteFailed, got %v", err)
	}
	if len(assets.discarded) != 0 {
		t.Errorf("image must survive a failed delete, got %v", assets.discarded)
	}
}
