package warehouse

import (
	"database/sql"
	"fmt"
	"net/url"

	"github.com/databricks/databricks-sdk-go/config"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	_ "github.com/databricks/databricks-sql-go"
	sf "github.com/snowflakedb/gosnowflake"
	"github.com/spf13/viper"
)

const (
	DriverDuckDB     = "duckdb"
	DriverSnowflake  = "snowflake"
	DriverDatabricks = "databricks"
)

// SnowflakeConfig mirrors a snowflake connection profile file.
type SnowflakeConfig struct {
	Account   string `mapstructure:"account"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	Database  string `mapstructure:"database"`
	Schema    string `mapstructure:"schema"`
	Warehouse string `mapstructure:"warehouse"`
	Role      string `mapstructure:"role"`
}

// LoadSnowflakeConfig reads a snowflake profile file.
func LoadSnowflakeConfig(profilePath string) (*sf.Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg SnowflakeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse snowflake config: %w", err)
	}

	return &sf.Config{
		Account:   cfg.Account,
		User:      cfg.User,
		Password:  cfg.Password,
		Database:  cfg.Database,
		Schema:    cfg.Schema,
		Warehouse: cfg.Warehouse,
		Role:      cfg.Role,
	}, nil
}

func OpenSnowflake(cfg *sf.Config) (*sql.DB, error) {
	dsn, err := sf.DSN(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DSN: %w", err)
	}
	db, err := sql.Open(DriverSnowflake, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to snowflake: %w", err)
	}
	return db, nil
}

// DatabricksDSN builds a databricks-sql-go DSN from a workspace profile.
func DatabricksDSN(cfg *config.Config, httpPath, catalog, schema string) (string, error) {
	if cfg == nil || cfg.Host == "" || cfg.Token == "" {
		return "", fmt.Errorf("databricks profile needs host and token")
	}
	if httpPath == "" {
		return "", fmt.Errorf("databricks http_path is required")
	}

	host := cfg.Host
	if u, err := url.Parse(host); err == nil && u.Host != "" {
		host = u.Host
	}

	dsn := fmt.Sprintf("token:%s@%s%s", cfg.Token, host, httpPath)

	params := url.Values{}
	if catalog != "" {
		params.Set("catalog", catalog)
	}
	if schema != "" {
		params.Set("schema", schema)
	}
	if qp := params.Encode(); qp != "" {
		dsn = dsn + "?" + qp
	}
	return dsn, nil
}

func OpenDatabricks(dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverDatabricks, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Databricks: %w", err)
	}
	return db, nil
}

// Open connects to driverName. DuckDB paths go through the shared connector
// so the transactions schema exists.
func Open(driverName, dsn string) (*sql.DB, error) {
	switch driverName {
	case DriverDuckDB:
		return duckdb.NewDB(duckdb.Settings{DbPath: dsn})
	case DriverSnowflake:
		cfg, err := sf.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse snowflake dsn: %w", err)
		}
		return OpenSnowflake(cfg)
	case DriverDatabricks:
		return OpenDatabricks(dsn)
	default:
		return nil, fmt.Errorf("%w: driver %q", domain.ErrUnsupportedSource, driverName)
	}
}
