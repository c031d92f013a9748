package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/angelmondragon/bestprice-backend/internal/catalog"
	"github.com/angelmondragon/bestprice-backend/pkg/config"
	"github.com/angelmondragon/bestprice-backend/pkg/db"
	"github.com/angelmondragon/bestprice-backend/pkg/enums"
	"github.com/angelmondragon/bestprice-backend/pkg/logger"
	"github.com/angelmondragon/bestprice-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "import"})

	_ = godotenv.Load()

	source := flag.String("source", "csv", "catalog file source: csv|xlsx")
	dir := flag.String("dir", "", "directory holding the catalog csv files (defaults to the configured catalog dir)")
	workbook := flag.String("workbook", "", "catalog workbook path (defaults to the configured workbook)")
	strict := flag.Bool("strict", false, "refuse to import when validation reports issues")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "import",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	opts := catalog.SourceOptions{Dir: cfg.Catalog.Dir, Workbook: cfg.Catalog.Workbook}
	if *dir != "" {
		opts.Dir = *dir
	}
	if *workbook != "" {
		opts.Workbook = *workbook
	}

	kind, err := enums.ParseCatalogSource(*source)
	if err == nil && kind == enums.CatalogSourceDB {
		err = fmt.Errorf("import reads files; %q is the destination", kind)
	}
	requireResource(ctx, logg, "catalog source", err)

	loader, err := catalog.NewLoader(kind, opts)
	requireResource(ctx, logg, "catalog loader", err)

	ctx = logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"catalog_source": loader.Source(),
		"driver":         cfg.DB.Driver.String(),
	})

	snap, err := loader.Load(ctx)
	requireResource(ctx, logg, "catalog file", err)

	issues := catalog.Validate(snap)
	for _, issue := range issues {
		logg.Warn(logg.WithField(ctx, "issue", issue.String()), "catalog.data_issue")
	}
	if *strict && len(issues) > 0 {
		fmt.Fprintf(os.Stderr, "refusing to import: %d validation issue(s)\n", len(issues))
		os.Exit(1)
	}

	requireResource(ctx, logg, "database config", cfg.DB.EnsureDSN())
	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	requireResource(ctx, logg, "migrations", migrate.MaybeAutoRun(ctx, cfg, logg, dbClient))

	repo := catalog.NewRepository(dbClient.DB())
	err = dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return repo.WithTx(tx).Replace(ctx, snap)
	})
	requireResource(ctx, logg, "catalog import", err)

	logg.Info(logg.WithFields(ctx, snap.Counts()), "catalog imported")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
