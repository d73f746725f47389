package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Search    SearchConfig    `mapstructure:"search"`
	Rasters   RastersConfig   `mapstructure:"rasters"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig configures the HTTP listener. Timeouts are in seconds.
type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// SearchConfig bounds and tunes path searches.
type SearchConfig struct {
	MaxRequestSpan   float64 `mapstructure:"max_request_span"` // |Δlon|+|Δlat| in degrees
	TimeoutSeconds   int     `mapstructure:"timeout_seconds"`
	CircularAspect   bool    `mapstructure:"circular_aspect"`
	ForecastCacheTTL int     `mapstructure:"forecast_cache_ttl"` // seconds
}

// RasterLayer locates one Parquet raster and its geotransform.
type RasterLayer struct {
	Path        string  `mapstructure:"path"`
	OriginLon   float64 `mapstructure:"origin_lon"`
	OriginLat   float64 `mapstructure:"origin_lat"`
	PixelWidth  float64 `mapstructure:"pixel_width"`  // degrees per column
	PixelHeight float64 `mapstructure:"pixel_height"` // degrees per row
}

// RastersConfig holds the three co-registered layers.
type RastersConfig struct {
	Elevation      RasterLayer `mapstructure:"elevation"`
	Aspect         RasterLayer `mapstructure:"aspect"`
	Risk           RasterLayer `mapstructure:"risk"`
	PixelResMeters float64     `mapstructure:"pixel_res_meters"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "avaroute")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "avaroute")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("search.max_request_span", 0.5)
	v.SetDefault("search.timeout_seconds", 20)
	v.SetDefault("search.circular_aspect", false)
	v.SetDefault("search.forecast_cache_ttl", 300)
	v.SetDefault("rasters.pixel_res_meters", 5.0)
	for _, layer := range []string{"elevation", "aspect", "risk"} {
		v.SetDefault("rasters."+layer+".path", "data/"+layer+".parquet")
		v.SetDefault("rasters."+layer+".origin_lon", -8.0)
		v.SetDefault("rasters."+layer+".origin_lat", 61.0)
		v.SetDefault("rasters."+layer+".pixel_width", 0.00008)
		v.SetDefault("rasters."+layer+".pixel_height", 0.000045)
	}
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: AVAROUTE_DATABASE_HOST → database.host
	v.SetEnvPrefix("AVAROUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Database.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
	}
	if c.Database.User == "" {
		errs = append(errs, "database.user is required")
	}
	if c.Database.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	if c.NATS.URL == "" {
		errs = append(errs, "nats.url is required")
	}
	if c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required")
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}

	if c.Search.MaxRequestSpan <= 0 {
		errs = append(errs, "search.max_request_span must be positive")
	}
	if c.Search.TimeoutSeconds <= 0 {
		errs = append(errs, "search.timeout_seconds must be positive")
	}
	if c.Rasters.PixelResMeters <= 0 {
		errs = append(errs, "rasters.pixel_res_meters must be positive")
	}
	for name, l := range map[string]RasterLayer{
		"elevation": c.Rasters.Elevation,
		"aspect":    c.Rasters.Aspect,
		"risk":      c.Rasters.Risk,
	} {
		if l.Path == "" {
			errs = append(errs, fmt.Sprintf("rasters.%s.path is required", name))
		}
		if l.PixelWidth <= 0 || l.PixelHeight <= 0 {
			errs = append(errs, fmt.Sprintf("rasters.%s pixel size must be positive", name))
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
