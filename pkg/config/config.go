package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "ATLAS"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	DuckDB  DuckDBConfig  `mapstructure:"duckdb"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatasetConfig selects where the raw dataset comes from. Source is a URL,
// a local path, an s3://bucket/key URI or one of duckdb, snowflake, databricks.
type DatasetConfig struct {
	Source            string `mapstructure:"source"`
	Encoding          string `mapstructure:"encoding"`
	DSN               string `mapstructure:"dsn"`
	Query             string `mapstructure:"query"`
	ImportSource      string `mapstructure:"import_source"`
	AWSProfile        string `mapstructure:"aws_profile"`
	SnowflakeProfile  string `mapstructure:"snowflake_profile"`
	DatabricksProfile string `mapstructure:"databricks_profile"`
	DatabricksConfig  string `mapstructure:"databricks_config"`
	HTTPPath          string `mapstructure:"http_path"`
	Catalog           string `mapstructure:"catalog"`
	Schema            string `mapstructure:"schema"`
}

type DuckDBConfig struct {
	Path    string `mapstructure:"path"`
	Threads int    `mapstructure:"threads"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("dataset.source", "https://raw.githubusercontent.com/atharvayeola/superstore-analytics-pipeline/main/superstore.csv")
	v.SetDefault("dataset.encoding", "latin1")
	v.SetDefault("dataset.databricks_profile", "DEFAULT")
	v.SetDefault("duckdb.path", "sales-atlas.db")
	v.SetDefault("duckdb.threads", 4)
	v.SetDefault("log.level", "info")
}

// Load reads configuration from path (optional), then ATLAS_* environment
// variables, on top of the defaults. A missing config file is not an error
// when path is empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("atlas")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
