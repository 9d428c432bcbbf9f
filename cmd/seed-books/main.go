package main

import (
	"context"
	"flag"
	"os"

	"github.com/askbook/askbook-api/internal/catalog"
	"github.com/askbook/askbook-api/internal/catalog/repository"
	"github.com/askbook/askbook-api/internal/config"
	"github.com/askbook/askbook-api/internal/database"
	"github.com/askbook/askbook-api/pkg/logger"
)

// seed-books imports the book spreadsheet (.xlsx, or a CSV export) into the catalog collection.
func main() {
	file := flag.String("file", "bookall.xlsx", "spreadsheet (.xlsx or .csv) with title, rating and author columns")
	collection := flag.String("collection", "books", "target collection")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.MongoDB.URI == "" {
		logger.Fatalf("MONGODB_URI is required")
	}

	books, skipped, err := catalog.ReadFile(*file)
	if err != nil {
		logger.Fatalf("failed to read %s: %v", *file, err)
	}
	for _, row := range skipped {
		logger.Warnf("row %d: missing title, skipped", row)
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	repo := repository.NewMongoRepo(client.Database(cfg.MongoDB.Database).Collection(*collection))
	n, err := repo.InsertMany(ctx, books)
	if err != nil {
		logger.Fatalf("upload stopped after %d of %d books: %v", n, len(books), err)
	}
	logger.Infof("uploaded %d books to %s.%s", n, cfg.MongoDB.Database, *collection)
}
