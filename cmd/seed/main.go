// Command seed loads the default category and product type taxonomy.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/swiftsupply/backend/internal/infrastructure/config"
	"github.com/swiftsupply/backend/internal/infrastructure/logger"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
)

func main() {
	var logLevel string
	var timeout time.Duration
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", time.Minute, "Abort the seed run after this long")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel), 0))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(models.All()...); err != nil {
			log.Fatal("Failed to auto-migrate schema", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := seedTaxonomy(ctx, persistence.NewGormTaxonomyRepository(db.DB), log)
	if err != nil {
		log.Fatal("Seed failed", zap.Error(err))
	}
	log.Info("Taxonomy seeded",
		zap.Int("categories_created", result.CategoriesCreated),
		zap.Int("categories_existing", result.CategoriesExisting),
		zap.Int("product_types", result.ProductTypesEnsured),
	)
}
