// Package asset owns the lifecycle of uploaded image files. A staged asset is
// already persisted to its backend before any workflow logic runs; the
// workflow only ever sees the opaque reference string.
package asset

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/migfernandes01/places-share-API/internal/common/constants"
	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
)

type Store interface {
	// Stage persists the upload and returns its opaque reference. The
	// content type is sniffed from the bytes, never taken from the request.
	Stage(ctx context.Context, upload io.Reader) (string, error)
	// Discard removes the underlying bytes. Best-effort: failures are
	// logged, never surfaced to the caller.
	Discard(ctx context.Context, ref string)
}

var allowedImageTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
}

// readImage buffers the upload, enforcing the size cap and the png/jpeg
// allow-list. Returns the bytes and the extension for the detected type.
func readImage(upload io.Reader) ([]byte, string, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(upload, constants.MaxImageSizeBytes+1))
	if err != nil {
		return nil, "", err
	}
	if n > constants.MaxImageSizeBytes {
		return nil, "", commonerrors.ErrFileSizeExceeded
	}
	if n == 0 {
		return nil, "", commonerrors.ErrMissingFile
	}

	contentType := http.DetectContentType(buf.Bytes())
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, "", commonerrors.ErrMimeTypeNotAllowed
	}

	return buf.Bytes(), ext, nil
}
