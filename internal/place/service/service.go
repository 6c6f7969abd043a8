package service

import (
	"context"
	"errors"

	"github.com/migfernandes01/places-share-API/internal/asset"
	"github.com/migfernandes01/places-share-API/internal/common/clock"
	commoncrypto "github.com/migfernandes01/places-share-API/internal/common/crypto"
	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
	"github.com/migfernandes01/places-share-API/internal/common/logger"
	"github.com/migfernandes01/places-share-API/internal/geocode"
	"github.com/migfernandes01/places-share-API/internal/observability/metrics"
	"github.com/migfernandes01/places-share-API/internal/place/domain"
	placerepo "github.com/migfernandes01/places-share-API/internal/place/repository"
	userdomain "github.com/migfernandes01/places-share-API/internal/user/domain"
	userrepo "github.com/migfernandes01/places-share-API/internal/user/repository"
)

// PlaceService orchestrates the place mutations. Each operation is a strict
// sequence: no step runs unless the one before it succeeded, and the
// Place/User dual writes go through the repository's transactional methods.
type PlaceService struct {
	places      placerepo.Repository
	users       userrepo.Repository
	geocoder    geocode.Resolver
	assets      asset.Store
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewPlaceService(
	places placerepo.Repository,
	users userrepo.Repository,
	geocoder geocode.Resolver,
	assets asset.Store,
	idGenerator commoncrypto.IDGenerator,
	clock clock.Clock,
	log *logger.Logger,
) *PlaceService {
	return &PlaceService{
		places:      places,
		users:       users,
		geocoder:    geocoder,
		assets:      assets,
		idGenerator: idGenerator,
		clock:       clock,
		log:         log,
	}
}

type CreateInput struct {
	Title       string
	Description string
	Address     string
	Image       string
	CreatorID   string
}

type UpdateInput struct {
	PlaceID     string
	Title       string
	Description string
	ActorID     string
}

func (s *PlaceService) GetPlaceByID(ctx context.Context, id string) (domain.Place, error) {
	place, err := s.places.FindByID(ctx, domain.ID(id))
	if err != nil {
		if errors.Is(err, placerepo.ErrPlaceNotFound) {
			return domain.Place{}, commonerrors.ErrPlaceNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"place_id": id,
			"action":   "get_place_failed",
		}).Errorf("get place failed: %v", err)
		return domain.Place{}, ErrFetchFailed.WithCause(err)
	}
	return place, nil
}

func (s *PlaceService) GetPlacesByUser(ctx context.Context, userID string) ([]domain.Place, error) {
	places, err := s.places.FindByCreator(ctx, userID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "get_places_by_user_failed",
		}).Errorf("get places by user failed: %v", err)
		return nil, ErrFetchByUserFailed.WithCause(err)
	}
	if len(places) == 0 {
		return nil, commonerrors.ErrNoPlacesForUser
	}
	return places, nil
}

// CreatePlace runs the create saga: geocode, verify the acting user still
// exists, then persist the place and the owner's list in one transaction.
// Nothing is written before the geocode succeeds.
func (s *PlaceService) CreatePlace(ctx context.Context, input CreateInput) (domain.Place, error) {
	s.log.WithFields(ctx, logger.Fields{
		"creator": input.CreatorID,
		"action":  "create_place_attempt",
	}).Info("create place attempt")

	location, err := s.geocoder.Resolve(ctx, input.Address)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"creator": input.CreatorID,
			"action":  "create_place_geocode_failed",
		}).Warnf("create place failed: geocode: %v", err)
		return domain.Place{}, err
	}

	user, err := s.users.FindByID(ctx, userdomain.ID(input.CreatorID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			// The id came from a valid token, so a missing row is a
			// data-integrity failure, not a client error.
			s.log.WithFields(ctx, logger.Fields{
				"creator": input.CreatorID,
				"action":  "create_place_user_missing",
			}).Error("create place failed: acting user has no store record")
			return domain.Place{}, commonerrors.ErrInconsistentIdentity
		}
		s.log.WithFields(ctx, logger.Fields{
			"creator": input.CreatorID,
			"action":  "create_place_user_lookup_failed",
		}).Errorf("create place failed: user lookup: %v", err)
		return domain.Place{}, ErrCreateFailed.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Place{}, ErrCreateFailed.WithCause(err)
	}

	place := domain.Place{
		ID:          domain.ID(id),
		Title:       input.Title,
		Description: input.Description,
		Address:     input.Address,
		Location:    location,
		Image:       input.Image,
		Creator:     user.ID,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.places.CreateWithOwner(ctx, place); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"creator":  input.CreatorID,
			"place_id": id,
			"action":   "create_place_persist_failed",
		}).Errorf("create place failed: %v", err)
		return domain.Place{}, ErrCreateFailed.WithCause(err)
	}

	metrics.PlacesCreated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"creator":  input.CreatorID,
		"place_id": id,
		"action":   "create_place_success",
	}).Info("create place success")

	return place, nil
}

// UpdatePlace changes title and description only. Address, location and
// creator are never touched.
func (s *PlaceService) UpdatePlace(ctx context.Context, input UpdateInput) (domain.Place, error) {
	place, err := s.places.FindByID(ctx, domain.ID(input.PlaceID))
	if err != nil {
		if errors.Is(err, placerepo.ErrPlaceNotFound) {
			return domain.Place{}, commonerrors.ErrPlaceNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"place_id": input.PlaceID,
			"action":   "update_place_lookup_failed",
		}).Errorf("update place failed: %v", err)
		return domain.Place{}, ErrUpdateFailed.WithCause(err)
	}

	if string(place.Creator) != input.ActorID {
		s.log.WithFields(ctx, logger.Fields{
			"place_id": input.PlaceID,
			"actor":    input.ActorID,
			"action":   "update_place_forbidden",
		}).Warn("update place refused: actor is not the creator")
		return domain.Place{}, ErrEditForbidden
	}

	place.Title = input.Title
	place.Description = input.Description

	if err := s.places.Update(ctx, place); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"place_id": input.PlaceID,
			"action":   "update_place_persist_failed",
		}).Errorf("update place failed: %v", err)
		return domain.Place{}, ErrUpdateFailed.WithCause(err)
	}

	metrics.PlacesUpdated.Inc()
	return place, nil
}

// DeletePlace removes the place and the owner's reference in one
// transaction, then discards the stored image. The discard is best-effort:
// once the store mutation committed, the delete is complete from the
// client's perspective.
func (s *PlaceService) DeletePlace(ctx context.Context, placeID, actorID string) error {
	place, err := s.places.FindByID(ctx, domain.ID(placeID))
	if err != nil {
		if errors.Is(err, placerepo.ErrPlaceNotFound) {
			return commonerrors.ErrPlaceNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"place_id": placeID,
			"action":   "delete_place_lookup_failed",
		}).Errorf("delete place failed: %v", err)
		return ErrDeleteFailed.WithCause(err)
	}

	// Resolve the creator reference to the owning user before mutating
	// anything.
	owner, err := s.users.FindByID(ctx, place.Creator)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"place_id": placeID,
			"creator":  string(place.Creator),
			"action":   "delete_place_owner_lookup_failed",
		}).Errorf("delete place failed: owner lookup: %v", err)
		return ErrDeleteFailed.WithCause(err)
	}

	if string(owner.ID) != actorID {
		s.log.WithFields(ctx, logger.Fields{
			"place_id": placeID,
			"actor":    actorID,
			"action":   "delete_place_forbidden",
		}).Warn("delete place refused: actor is not the creator")
		return ErrDeleteForbidden
	}

	if err := s.places.DeleteWithOwner(ctx, place); err != nil {
		if errors.Is(err, placerepo.ErrPlaceNotFound) {
			return commonerrors.ErrPlaceNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"place_id": placeID,
			"action":   "delete_place_persist_failed",
		}).Errorf("delete place failed: %v", err)
		return ErrDeleteFailed.WithCause(err)
	}

	s.assets.Discard(ctx, place.Image)

	metrics.PlacesDeleted.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"place_id": placeID,
		"actor":    actorID,
		"action":   "delete_place_success",
	}).Info("delete place success")

	return nil
}
