package asset

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/migfernandes01/places-share-API/internal/asset"
	"github.com/migfernandes01/places-share-API/internal/common/constants"
	commoncrypto "github.com/migfernandes01/places-share-API/internal/common/crypto"
	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
	"github.com/migfernandes01/places-share-API/internal/common/logger"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func newLocalStore(t *testing.T) (*asset.LocalStore, string) {
	t.Helper()
	dir := t.TempDir()
	log, _ := logger.New("", "test", "info")

	store, err := asset.NewLocalStore(dir, commoncrypto.NewUUIDGenerator(), log)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store, dir
}

func TestLocalStore_StagePNG(t *testing.T) {
	store, dir := newLocalStore(t)

	upload := append(append([]byte{}, pngMagic...), []byte("image payload")...)
	ref, err := store.Stage(context.Background(), bytes.NewReader(upload))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.HasSuffix(ref, ".png") {
		t.Errorf("expected .png ref, got %s", ref)
	}

	stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(ref)))
	if err != nil {
		t.Fatalf("staged file missing: %v", err)
	}
	if !bytes.Equal(stored, upload) {
		t.Error("staged bytes differ from upload")
	}
}

func TestLocalStore_StageJPEG(t *testing.T) {
	store, _ := newLocalStore(t)

	upload := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, []byte("jpeg payload")...)
	ref, err := store.Stage(context.Background(), bytes.NewReader(upload))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasSuffix(ref, ".jpeg") {
		t.Errorf("expected .jpeg ref, got %s", ref)
	}
}

func TestLocalStore_StageRejectsOversize(t *testing.T) {
	store, _ := newLocalStore(t)

	upload := make([]byte, constants.MaxImageSizeBytes+1)
	copy(upload, pngMagic)

	_, err := store.Stage(context.Background(), bytes.NewReader(upload))
	if !errors.Is(err, commonerrors.ErrFileSizeExceeded) {
		t.Fatalf("expected ErrFileSizeExceeded, got %v", err)
	}
}

func TestLocalStore_StageAcceptsExactLimit(t *testing.T) {
	store, _ := newLocalStore(t)

	upload := make([]byte, constants.MaxImageSizeBytes)
	copy(upload, pngMagic)

	if _, err := store.Stage(context.Background(), bytes.NewReader(upload)); err != nil {
		t.Fatalf("expected no error at the exact size limit, got %v", err)
	}
}

func TestLocalStore_StageRejectsDisallowedType(t *testing.T) {
	store, _ := newLocalStore(t)

	_, err := store.Stage(context.Background(), strings.NewReader("plain text masquerading as an image"))
	if !errors.Is(err, commonerrors.ErrMimeTypeNotAllowed) {
		t.Fatalf("expected ErrMimeTypeNotAllowed, got %v", err)
	}

	domainErr, _ := commonerrors.AsDomainError(err)
	if domainErr.Message() != "Invalid file type." {
		t.Errorf("unexpected message: %s", domainErr.Message())
	}
}

func TestLocalStore_StageRejectsGIF(t *testing.T) {
	store, _ := newLocalStore(t)

	upload := append([]byte("GIF89a"), make([]byte, 32)...)
	_, err := store.Stage(context.Background(), bytes.NewReader(upload))
	if !errors.Is(err, commonerrors.ErrMimeTypeNotAllowed) {
		t.Fatalf("expected ErrMimeTypeNotAllowed, got %v", err)
	}
}

func TestLocalStore_StageRejectsEmpty(t *testing.T) {
	store, _ := newLocalStore(t)

	_, err := store.Stage(context.Background(), bytes.NewReader(nil))
	if !errors.Is(err, commonerrors.ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
}

func TestLocalStore_DiscardRemovesFile(t *testing.T) {
	store, dir := newLocalStore(t)

	upload := append(append([]byte{}, pngMagic...), []byte("image payload")...)
	ref, err := store.Stage(context.Background(), bytes.NewReader(upload))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	store.Discard(context.Background(), ref)

	if _, err := os.Stat(filepath.Join(dir, filepath.Base(ref))); !os.IsNotExist(err) {
		t.Errorf("expected staged file removed, stat err: %v", err)
	}
}

func TestLocalStore_DiscardIgnoresEmptyRef(t *testing.T) {
	store, _ := newLocalStore(t)
	store.Discard(context.Background(), "")
}
