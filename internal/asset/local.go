package asset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	commoncrypto "github.com/migfernandes01/places-share-API/internal/common/crypto"
	"github.com/migfernandes01/places-share-API/internal/common/logger"
	"github.com/migfernandes01/places-share-API/internal/observability/metrics"
)

// LocalStore keeps staged images on the local filesystem under dir. The
// reference is the relative path the static file server exposes.
type LocalStore struct {
	dir         string
	idGenerator commoncrypto.IDGenerator
	log         *logger.Logger
}

func NewLocalStore(dir string, idGenerator commoncrypto.IDGenerator, log *logger.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalStore{
		dir:         dir,
		idGenerator: idGenerator,
		log:         log,
	}, nil
}

func (s *LocalStore) Stage(ctx context.Context, upload io.Reader) (string, error) {
	data, ext, err := readImage(upload)
	if err != nil {
		return "", err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return "", err
	}

	name := id + "." + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}

	metrics.AssetsStaged.Inc()
	return filepath.ToSlash(filepath.Join(s.dir, name)), nil
}

func (s *LocalStore) Discard(ctx context.Context, ref string) {
	if ref == "" {
		return
	}

	// Refs are produced by Stage, but guard against traversal anyway.
	name := filepath.Base(filepath.FromSlash(ref))
	if strings.Contains(name, "..") {
		s.log.Warnf("asset discard refused suspicious ref: %s", ref)
		return
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		metrics.AssetDiscardFailures.Inc()
		s.log.Errorf("failed to discard asset %s: %v", ref, err)
		return
	}

	metrics.AssetsDiscarded.Inc()
	s.log.Infof("asset discarded: %s", ref)
}
