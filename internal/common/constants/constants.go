package constants

import "time"

const (
	JWTSecretMinLength = 32

	// Uploaded images are capped at 500 kB before any workflow step runs.
	MaxImageSizeBytes     = 500 * 1024
	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBQueryTimeout        = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "5000"
	DefaultRequestTimeout = 5 * time.Second
	DefaultGeocodeTimeout = 10 * time.Second
	DefaultTokenTTL       = 48 * time.Hour

	DefaultUploadDir = "uploads/images"
	UploadsURLPrefix = "/uploads/images/"

	RateLimitCleanupInterval           = 5 * time.Minute
	RateLimitLoginRequestsPerSecond    = 1
	RateLimitLoginBurst                = 5
	RateLimitSignupRequestsPerSecond   = 0.5
	RateLimitSignupBurst               = 3
	RateLimitGeneralRequestsPerSecond  = 20
	RateLimitGeneralBurst              = 40
	RateLimitMutationRequestsPerSecond = 5
	RateLimitMutationBurst             = 10
)
