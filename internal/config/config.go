package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Query     QueryConfig     `mapstructure:"query"`
	Cron      CronConfig      `mapstructure:"cron"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

// QueryConfig pins down behavior the browsing layer must not guess.
// ReportDateSource picks where an omitted report_date defaults from:
// "performance" (latest date with at least one snapshot) or "metadata"
// (latest report_metadata entry).
type QueryConfig struct {
	ReportDateSource string `mapstructure:"report_date_source"`
	DefaultPageSize  int    `mapstructure:"default_page_size"`
	MaxPageSize      int    `mapstructure:"max_page_size"`
}

type CronConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	IngestScan string `mapstructure:"ingest_scan"`
	Reconcile  string `mapstructure:"reconcile"`
}

type IngestConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Dir          string `mapstructure:"dir"`
	ProcessedDir string `mapstructure:"processed_dir"`
}

type ReconcileConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

const (
	ReportDateSourcePerformance = "performance"
	ReportDateSourceMetadata    = "metadata"
)

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("query.report_date_source", ReportDateSourcePerformance)
	v.SetDefault("query.default_page_size", 20)
	v.SetDefault("query.max_page_size", 100)
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.ingest_scan", "@every 5m")
	v.SetDefault("cron.reconcile", "@every 6h")
	v.SetDefault("ingest.enabled", true)
	v.SetDefault("ingest.dir", "data/reports")
	v.SetDefault("ingest.processed_dir", "data/reports/processed")
	v.SetDefault("reconcile.enabled", true)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
