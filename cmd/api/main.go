package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"pet-adoption-api/internal/adapters/auth/jwtauth"
	"pet-adoption-api/internal/adapters/storage/bucket"
	pg "pet-adoption-api/internal/adapters/storage/postgres"
	"pet-adoption-api/internal/domain/applications"
	"pet-adoption-api/internal/migrate"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/ports/objectstore"
	"pet-adoption-api/internal/router"

	"go.uber.org/zap"
)

// @title Pet Adoption API
// @version 1.0
// @description API del marketplace de adopción: ONGs publican mascotas, adoptantes postulan.
// @BasePath /
func main() {
	log := logger.New(os.Getenv("LOG_LEVEL"))
	defer func() { _ = log.Sync() }()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	opts := router.Options{
		Logger:         log,
		ApprovalPolicy: applications.ApprovalPolicy(os.Getenv("APPROVAL_POLICY")),
	}

	// Sin JWT_SECRET arranca en modo dev: headers X-Debug-User-*.
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		tokens := jwtauth.New([]byte(secret), jwtauth.DefaultTTL)
		opts.TokenIssuer = tokens
		opts.AuthVerifier = tokens
	} else {
		log.Warn("JWT_SECRET not set, running in dev auth mode")
	}

	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := migrate.Up(ctx, dsn); err != nil {
			cancel()
			log.Fatal("migrations failed", zap.Error(err))
		}
		cancel()

		db, err := pg.Open(dsn)
		if err != nil {
			log.Fatal("db connection failed", zap.Error(err))
		}
		defer func() { _ = db.Close() }()
		opts.DB = db
	} else {
		log.Warn("DB_DSN not set, using in-memory storage")
	}

	if store := bucketFromEnv(log); store != nil {
		opts.Store = store
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server error", zap.Error(err))
	}
}

func bucketFromEnv(log *zap.Logger) objectstore.ObjectStore {
	baseURL := os.Getenv("STORAGE_URL")
	if baseURL == "" {
		log.Warn("STORAGE_URL not set, image uploads disabled")
		return nil
	}

	client, err := bucket.NewClient(bucket.Config{
		BaseURL:    baseURL,
		ServiceKey: os.Getenv("STORAGE_KEY"),
		Bucket:     os.Getenv("STORAGE_BUCKET"),
	})
	if err != nil {
		log.Warn("bucket client not configured, image uploads disabled", zap.Error(err))
		return nil
	}
	return client
}
