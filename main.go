package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/askbook/askbook-api/handlers"
	"github.com/askbook/askbook-api/internal/artifacts"
	"github.com/askbook/askbook-api/internal/catalog/repository"
	catalogservice "github.com/askbook/askbook-api/internal/catalog/service"
	"github.com/askbook/askbook-api/internal/config"
	"github.com/askbook/askbook-api/internal/database"
	"github.com/askbook/askbook-api/internal/identity"
	"github.com/askbook/askbook-api/internal/storage"
	"github.com/askbook/askbook-api/pkg/logger"
	"github.com/askbook/askbook-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: project=%q mongo=%v identity=%s storage=%v", cfg.Project.ID, cfg.MongoDB.URI != "", cfg.Identity.Backend, cfg.Storage.Endpoint != "")

	ctx := context.Background()
	checks := map[string]handlers.ReadinessCheck{}

	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		mongoClient, err = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			logger.Fatalf("failed to connect to MongoDB: %v", err)
		}
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()
		checks["mongo"] = func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }
		logger.Infof("connected to MongoDB database %q", cfg.MongoDB.Database)
	}

	// identity provider directory
	var dir identity.Directory
	switch cfg.Identity.Backend {
	case config.BackendMongo:
		if mongoClient == nil {
			logger.Fatalf("IDENTITY_BACKEND=mongo requires MONGODB_URI")
		}
		dir, err = identity.NewMongoDirectory(ctx, mongoClient.Database(cfg.MongoDB.Database).Collection("users"))
		if err != nil {
			logger.Fatalf("failed to prepare users collection: %v", err)
		}
	case config.BackendRedis:
		rc, err := database.ConnectRedis(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatalf("failed to connect to Redis: %v", err)
		}
		defer rc.Close()
		checks["redis"] = func(ctx context.Context) error { return rc.Ping(ctx).Err() }
		dir = identity.NewRedisDirectory(rc, "user:")
	default:
		logger.Warnf("using in-memory identity directory; accounts are lost on restart")
		dir = identity.NewMemoryDirectory()
	}
	identitySvc := identity.NewService(dir, cfg)
	if !cfg.Identity.VerifyPassword {
		logger.Warnf("login does not verify passwords; set IDENTITY_VERIFY_PASSWORD=true to require them")
	}

	// catalog
	var catalogSvc catalogservice.Service
	if mongoClient != nil {
		catalogSvc = catalogservice.NewMongoService(mongoClient.Database(cfg.MongoDB.Database).Collection("books"))
	} else {
		logger.Warnf("MONGODB_URI not set; serving an empty in-memory catalog")
		catalogSvc = catalogservice.NewMemoryService(repository.NewMemoryRepo())
	}

	// model artifacts
	var fetcher *artifacts.Fetcher
	if blob, err := storage.NewMinIOStorage(storage.FromConfig(cfg)); err != nil {
		logger.Warnf("blob storage unavailable, model downloads disabled: %v", err)
	} else {
		fetcher = artifacts.NewFetcher(blob, cfg.Models.RemotePrefix, cfg.Models.Dir)
		checks["storage"] = func(ctx context.Context) error {
			ok, err := blob.BucketExists(ctx)
			if err == nil && !ok {
				err = errors.New("bucket " + blob.Bucket() + " does not exist")
			}
			return err
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r := handlers.NewRouter(handlers.Dependencies{
		Identity: identitySvc,
		Catalog:  catalogSvc,
		Fetcher:  fetcher,
		Checks:   checks,
		Gatherer: prometheus.DefaultGatherer,
		Started:  startTime,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Server is running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
