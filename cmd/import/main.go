// Package main provides the one-shot recipe catalog importer
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/pantrychef/v1/internal/application/importer"
	"github.com/pantrychef/v1/internal/infrastructure/config"
	"github.com/pantrychef/v1/internal/infrastructure/container"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "", "path to the structured recipes JSON file (defaults to importer.recipes_file)")
	flag.Parse()

	app := fx.New(
		fx.NopLogger,
		container.ImportModule,
		fx.Invoke(func(cfg *config.Config, svc *importer.Service, logger *zap.Logger, shutdowner fx.Shutdowner) {
			path := *file
			if path == "" {
				path = cfg.Importer.RecipesFile
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			count, err := svc.ImportFile(ctx, path)
			if err != nil {
				logger.Fatal("Import failed", zap.String("file", path), zap.Error(err))
			}

			logger.Info("Import complete",
				zap.String("file", path),
				zap.Int("recipes", count),
			)

			if err := shutdowner.Shutdown(); err != nil {
				logger.Error("Shutdown failed", zap.Error(err))
			}
		}),
	)

	if err := app.Err(); err != nil {
		log.Fatalf("Failed to initialize importer: %v", err)
	}

	app.Run()
}
