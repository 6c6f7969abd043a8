package place

import (
	"context"
	"io"

	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
	"github.com/migfernandes01/places-share-API/internal/geocode"
	"github.com/migfernandes01/places-share-API/internal/place/domain"
	placerepo "github.com/migfernandes01/places-share-API/internal/place/repository"
	userdomain "github.com/migfernandes01/places-share-API/internal/user/domain"
	userrepo "github.com/migfernandes01/places-share-API/internal/user/repository"
)

type mockPlaceRepo struct {
	findByIDFunc        func(ctx context.Context, id domain.ID) (domain.Place, error)
	findByCreatorFunc   func(ctx context.Context, creatorID string) ([]domain.Place, error)
	createWithOwnerFunc func(ctx context.Context, place domain.Place) error
	updateFunc          func(ctx context.Context, place domain.Place) error
	deleteWithOwnerFunc func(ctx context.Context, place domain.Place) error
}

func (m *mockPlaceRepo) FindByID(ctx context.Context, id domain.ID) (domain.Place, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Place{}, placerepo.ErrPlaceNotFound
}

func (m *mockPlaceRepo) FindByCreator(ctx context.Context, creatorID string) ([]domain.Place, error) {
	if m.findByCreatorFunc != nil {
		return m.findByCreatorFunc(ctx, creatorID)
	}
	return nil, nil
}

func (m *mockPlaceRepo) CreateWithOwner(ctx context.Context, place domain.Place) error {
	if m.createWithOwnerFunc != nil {
		return m.createWithOwnerFunc(ctx, place)
	}
	return nil
}

func (m *mockPlaceRepo) Update(ctx context.Context, place domain.Place) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, place)
	}
	return nil
}

func (m *mockPlaceRepo) DeleteWithOwner(ctx context.Context, place domain.Place) error {
	if m.deleteWithOwnerFunc != nil {
		return m.deleteWithOwnerFunc(ctx, place)
	}
	return nil
}

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user userdomain.User) error
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFunc    func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	listAllFunc     func(ctx context.Context) ([]userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) ListAll(ctx context.Context) ([]userdomain.User, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, nil
}

type mockGeocoder struct {
	resolveFunc func(ctx context.Context, address string) (geocode.Location, error)
}

func (m *mockGeocoder) Resolve(ctx context.Context, address string) (geocode.Location, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, address)
	}
	return geocode.Location{}, commonerrors.ErrGeocodeNoMatch
}

type mockAssetStore struct {
	stageFunc   func(ctx context.Context, upload io.Reader) (string, error)
	discardFunc func(ctx context.Context, ref string)

	discarded []string
}

func (m *mockAssetStore) Stage(ctx context.Context, upload io.Reader) (string, error) {
	if m.stageFunc != nil {
		return m.stageFunc(ctx, upload)
	}
	return "uploads/images/staged.png", nil
}

func (m *mockAssetStore) Discard(ctx context.Context, ref string) {
	m.discarded = append(m.discarded, ref)
	if m.discardFunc != nil {
		m.discardFunc(ctx, ref)
	}
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "generated-id", nil
}
