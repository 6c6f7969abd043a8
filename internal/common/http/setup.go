package http

import (
	"net/http"

	"github.com/migfernandes01/places-share-API/internal/common/httpmetrics"
	"github.com/migfernandes01/places-share-API/internal/common/logger"
)

// BuildBaseHandler wires the cross-cutting middleware chain around the routed
// handler. The byte limit is generous enough for multipart image uploads.
func BuildBaseHandler(log *logger.Logger, maxRequestSize int64, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	limit := MaxRequestSizeMiddleware(maxRequestSize)
	securityHeaders := SecurityHeadersMiddleware
	cors := CORSMiddleware

	return securityHeaders(cors(recovery(traceID(limit(metrics.Wrap(handler))))))
}
