package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authservice "github.com/migfernandes01/places-share-API/internal/auth/service"
	"github.com/migfernandes01/places-share-API/internal/asset"
	"github.com/migfernandes01/places-share-API/internal/common/clock"
	"github.com/migfernandes01/places-share-API/internal/common/config"
	"github.com/migfernandes01/places-share-API/internal/common/constants"
	commoncrypto "github.com/migfernandes01/places-share-API/internal/common/crypto"
	"github.com/migfernandes01/places-share-API/internal/common/db"
	commonhttp "github.com/migfernandes01/places-share-API/internal/common/http"
	"github.com/migfernandes01/places-share-API/internal/common/logger"
	srv "github.com/migfernandes01/places-share-API/internal/common/server"
	"github.com/migfernandes01/places-share-API/internal/geocode"
	placehttp "github.com/migfernandes01/places-share-API/internal/place/http"
	placerepo "github.com/migfernandes01/places-share-API/internal/place/repository"
	placeservice "github.com/migfernandes01/places-share-API/internal/place/service"
	userhttp "github.com/migfernandes01/places-share-API/internal/user/http"
	userrepo "github.com/migfernandes01/places-share-API/internal/user/repository"
	userservice "github.com/migfernandes01/places-share-API/internal/user/service"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	txManager := db.NewTxManager(pool)
	userRepo := userrepo.NewPgRepository(pool)
	placeRepo := placerepo.NewPgRepository(pool, txManager)

	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := &commoncrypto.UUIDGenerator{}
	appClock := clock.NewRealClock()

	assets, err := buildAssetStore(ctx, cfg, idGenerator, log)
	if err != nil {
		log.Fatalf("failed to initialize asset store: %v", err)
	}

	geocoder := geocode.NewClient(cfg.GeocoderBaseURL, cfg.GeocoderAPIKey, cfg.GeocodeTimeout, log)
	tokenIssuer := authservice.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, appClock)

	userService := userservice.NewUserService(userRepo, hasher, idGenerator, tokenIssuer, appClock, log)
	placeService := placeservice.NewPlaceService(placeRepo, userRepo, geocoder, assets, idGenerator, appClock, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())
	userHandler := userhttp.NewHandler(userService, assets, cfg.RequestTimeout, log)
	placeHandler := placehttp.NewHandler(placeService, assets, cfg.JWTSecret, log)
	mux.Handle("/api/users", userHandler)
	mux.Handle("/api/users/", userHandler)
	mux.Handle("/api/places", placeHandler)
	mux.Handle("/api/places/", placeHandler)

	if cfg.AssetBackend == config.AssetBackendLocal {
		fileServer := http.FileServer(http.Dir(cfg.UploadDir))
		mux.Handle(constants.UploadsURLPrefix, http.StripPrefix(constants.UploadsURLPrefix, fileServer))
	}

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler(log, constants.DefaultMaxRequestSize, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.MiddlewareForPath(path, r.Method)(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	srv.StartWithGracefulShutdown(server, log, "api")
}

func buildAssetStore(ctx context.Context, cfg config.Config, idGenerator commoncrypto.IDGenerator, log *logger.Logger) (asset.Store, error) {
	switch cfg.AssetBackend {
	case config.AssetBackendS3:
		return asset.NewS3Store(ctx, cfg, idGenerator, log)
	case config.AssetBackendLocal:
		return asset.NewLocalStore(cfg.UploadDir, idGenerator, log)
	default:
		return nil, fmt.Errorf("unknown asset backend: %q", cfg.AssetBackend)
	}
}
