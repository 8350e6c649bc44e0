// Command load_ingredients imports ingredients from a CSV file with
// "name,measurement_unit" rows. Rows that already exist are skipped.
package main

import (
	"context"
	"flag"
	"fmt"
	"foodgram/internal/config"
	"foodgram/internal/model"
	"foodgram/internal/service"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	path := flag.String("file", "data/ingredients.csv", "path to the ingredients CSV file")
	timeout := flag.Duration("timeout", 5*time.Minute, "import timeout")
	flag.Parse()

	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to parse config")
	}

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialise repository")
	}
	if repo == nil {
		logrus.Fatal("DB_TYPE is empty, a database is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	catalog := service.NewCatalogService(repo, service.NewValidator())
	inserted, err := importFile(ctx, catalog, *path)
	cancel()
	if err != nil {
		logrus.WithError(err).WithField("file", *path).Error("import failed")
		os.Exit(1)
	}
	logrus.WithFields(logrus.Fields{"file": *path, "inserted": inserted}).Info("import finished")
}

// importFile opens path and loads it through the catalog. The file is closed
// before returning.
func importFile(ctx context.Context, catalog *service.CatalogService, path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	return catalog.ImportIngredientsCSV(ctx, file)
}
