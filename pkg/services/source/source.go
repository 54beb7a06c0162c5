package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	appconfig "github.com/de-tools/sales-atlas/pkg/config"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	profiles "github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dataset"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/transactions"
	"github.com/de-tools/sales-atlas/pkg/store/warehouse"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	// DuckDB backs the "duckdb" source; it is owned by the caller.
	DuckDB     *sql.DB
	HTTPClient *http.Client
}

// Source is a resolved dataset loader plus whatever connection it opened.
type Source struct {
	Loader dataset.Loader
	closer func() error
}

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// New resolves the configured dataset source into a loader.
func New(ctx context.Context, cfg appconfig.DatasetConfig, deps Dependencies) (*Source, error) {
	logger := zerolog.Ctx(ctx)
	location := strings.TrimSpace(cfg.Source)
	if location == "" {
		location = dataset.DefaultSourceURL
	}
	logger.Debug().Str("source", location).Msg("resolving dataset source")

	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return &Source{Loader: dataset.NewHTTPLoader(location, cfg.Encoding, deps.HTTPClient)}, nil

	case strings.HasPrefix(location, "s3://"):
		loader, err := dataset.NewS3LoaderFromURI(ctx, location, cfg.AWSProfile, cfg.Encoding)
		if err != nil {
			return nil, err
		}
		return &Source{Loader: loader}, nil

	case location == warehouse.DriverDuckDB:
		if deps.DuckDB == nil {
			return nil, fmt.Errorf("%w: duckdb source needs a database", domain.ErrUnsupportedSource)
		}
		if cfg.Query != "" {
			loader, err := warehouse.NewLoader(deps.DuckDB, warehouse.DriverDuckDB, cfg.Query)
			if err != nil {
				return nil, err
			}
			return &Source{Loader: loader}, nil
		}
		store, err := transactions.NewStore(deps.DuckDB)
		if err != nil {
			return nil, err
		}
		return &Source{Loader: transactions.NewLoader(store, cfg.ImportSource)}, nil

	case location == warehouse.DriverSnowflake:
		db, err := openSnowflake(cfg)
		if err != nil {
			return nil, err
		}
		return newWarehouseSource(db, warehouse.DriverSnowflake, cfg.Query)

	case location == warehouse.DriverDatabricks:
		db, err := openDatabricks(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return newWarehouseSource(db, warehouse.DriverDatabricks, cfg.Query)

	default:
		return &Source{Loader: dataset.NewFileLoader(strings.TrimPrefix(location, "file://"), cfg.Encoding)}, nil
	}
}

func newWarehouseSource(db *sql.DB, driverName, query string) (*Source, error) {
	loader, err := warehouse.NewLoader(db, driverName, query)
	if err != nil {
		return nil, err
	}
	return &Source{Loader: loader, closer: db.Close}, nil
}

func openSnowflake(cfg appconfig.DatasetConfig) (*sql.DB, error) {
	if cfg.DSN != "" {
		return warehouse.Open(warehouse.DriverSnowflake, cfg.DSN)
	}
	if cfg.SnowflakeProfile == "" {
		return nil, fmt.Errorf("snowflake source needs dataset.dsn or dataset.snowflake_profile")
	}
	sfCfg, err := warehouse.LoadSnowflakeConfig(cfg.SnowflakeProfile)
	if err != nil {
		return nil, err
	}
	return warehouse.OpenSnowflake(sfCfg)
}

func openDatabricks(ctx context.Context, cfg appconfig.DatasetConfig) (*sql.DB, error) {
	if cfg.DSN != "" {
		return warehouse.OpenDatabricks(cfg.DSN)
	}

	path := cfg.DatabricksConfig
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".databrickscfg")
	}

	registry, err := profiles.NewRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create config registry: %w", err)
	}
	profile, err := registry.GetProfile(ctx, cfg.DatabricksProfile)
	if err != nil {
		return nil, err
	}

	httpPath := firstNonEmpty(cfg.HTTPPath, profile.HTTPPath)
	catalog := firstNonEmpty(cfg.Catalog, profile.Catalog)
	schema := firstNonEmpty(cfg.Schema, profile.Schema)

	dsn, err := warehouse.DatabricksDSN(profile.Config, httpPath, catalog, schema)
	if err != nil {
		return nil, err
	}
	return warehouse.OpenDatabricks(dsn)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
