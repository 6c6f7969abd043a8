package user

import (
	"context"
	"io"

	"github.com/migfernandes01/places-share-API/internal/user/domain"
	userrepo "github.com/migfernandes01/places-share-API/internal/user/repository"
)

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user domain.User) error
	findByEmailFunc func(ctx context.Context, email string) (domain.User, error)
	findByIDFunc    func(ctx context.Context, id domain.ID) (domain.User, error)
	listAllFunc     func(ctx context.Context) ([]domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return domain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
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
	return "uploads/images/avatar.png", nil
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
