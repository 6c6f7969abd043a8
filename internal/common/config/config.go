package config

import (
	"fmt"
	"os"
	"time"

	"github.com/migfernandes01/places-share-API/internal/common/constants"
	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
)

// AssetBackend selects where staged images live.
type AssetBackend string

const (
	AssetBackendLocal AssetBackend = "local"
	AssetBackendS3    AssetBackend = "s3"
)

// Config is built once in main and passed by reference. Nothing re-reads the
// environment after startup.
type Config struct {
	HTTPPort       string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	RequestTimeout time.Duration

	GeocoderBaseURL string
	GeocoderAPIKey  string
	GeocodeTimeout  time.Duration

	AssetBackend AssetBackend
	UploadDir    string

	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BaseEndpoint    string
}

func Load() (Config, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}
	if len(jwtSecret) < constants.JWTSecretMinLength {
		return Config{}, fmt.Errorf("%w: got %d bytes", commonerrors.ErrInvalidJWTSecret, len(jwtSecret))
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	geocoderKey, err := mustEnv("GEOCODER_API_KEY")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		HTTPPort:       getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:    databaseURL,
		JWTSecret:      jwtSecret,
		TokenTTL:       getDurationEnv("TOKEN_TTL", constants.DefaultTokenTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),

		GeocoderBaseURL: getEnv("GEOCODER_BASE_URL", "https://us1.locationiq.com/v1/search.php"),
		GeocoderAPIKey:  geocoderKey,
		GeocodeTimeout:  getDurationEnv("GEOCODE_TIMEOUT", constants.DefaultGeocodeTimeout),

		AssetBackend: AssetBackend(getEnv("ASSET_BACKEND", string(AssetBackendLocal))),
		UploadDir:    getEnv("UPLOAD_DIR", constants.DefaultUploadDir),
	}

	if cfg.AssetBackend == AssetBackendS3 {
		if cfg.S3Bucket, err = mustEnv("AWS_BUCKET_NAME"); err != nil {
			return Config{}, err
		}
		if cfg.S3Region, err = mustEnv("AWS_REGION"); err != nil {
			return Config{}, err
		}
		if cfg.S3AccessKeyID, err = mustEnv("AWS_ACCESS_KEY_ID"); err != nil {
			return Config{}, err
		}
		if cfg.S3SecretAccessKey, err = mustEnv("AWS_SECRET_ACCESS_KEY"); err != nil {
			return Config{}, err
		}
		cfg.S3BaseEndpoint = getEnv("AWS_S3_ENDPOINT", "")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
