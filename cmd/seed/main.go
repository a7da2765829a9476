package main

import (
	"context"
	"fmt"
	"os"
	"time"
	"wellcheck/internal/catalog"
	"wellcheck/internal/config"
	"wellcheck/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Seeds the catalogs collection with CATALOG_FILE, or the built-in catalog
// when no file is given, so servers started afterwards load it from MongoDB.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	repo := repository.NewCatalogRepo(client.Database(cfg.MongoDB))

	cat, err := catalog.Resolve(ctx, logger, cfg.CatalogFile, nil, "")
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	if err := repo.Save(ctx, &cat); err != nil {
		logger.Fatal("failed to save catalog", zap.String("name", cat.Name), zap.Error(err))
	}

	names, err := repo.List(ctx)
	if err != nil {
		logger.Fatal("failed to list catalogs", zap.Error(err))
	}

	fmt.Printf("Successfully seeded catalog '%s' (%d categories, %d questions)\n", cat.Name, len(cat.Categories), cat.QuestionCount())
	fmt.Printf("Stored catalogs: %v\n", names)
}
