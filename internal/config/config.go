package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Phone  PhoneConfig  `yaml:"phone" mapstructure:"phone"`
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	Report ReportConfig `yaml:"report" mapstructure:"report"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// PhoneConfig configures phone-number canonicalization.
type PhoneConfig struct {
	// DefaultCountryCode is prepended to bare 10-digit numbers. Either a calling
	// code ("91") or an ISO region ("IN").
	DefaultCountryCode string `yaml:"default_country_code" mapstructure:"default_country_code"`
}

// InputConfig configures how the CRM and dialer exports are read.
type InputConfig struct {
	AttributionColumn string `yaml:"attribution_column" mapstructure:"attribution_column"`
	SheetIndex        int    `yaml:"sheet_index" mapstructure:"sheet_index"`
	CSVEncoding       string `yaml:"csv_encoding" mapstructure:"csv_encoding"`
}

// ReportConfig configures report output.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	Format    string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the upload server.
type ServerConfig struct {
	Port              int      `yaml:"port" mapstructure:"port"`
	MaxUploadMB       int      `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
	RequestsPerSecond float64  `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int      `yaml:"burst" mapstructure:"burst"`
	AllowedOrigins    []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CONNECTIVITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("phone.default_country_code", "91")
	v.SetDefault("input.attribution_column", "utm_hit")
	v.SetDefault("input.sheet_index", 0)
	v.SetDefault("input.csv_encoding", "utf-8")
	v.SetDefault("report.output_dir", "reports")
	v.SetDefault("report.format", "csv")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_mb", 32)
	v.SetDefault("server.requests_per_second", 5.0)
	v.SetDefault("server.burst", 10)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

// Validate checks that the settings needed by the given mode are usable.
// Modes: "report", "serve".
func (c *Config) Validate(mode string) error {
	var errs []string

	if strings.TrimSpace(c.Phone.DefaultCountryCode) == "" {
		errs = append(errs, "phone.default_country_code is required")
	}
	if c.Input.SheetIndex < 0 {
		errs = append(errs, "input.sheet_index must be >= 0")
	}

	switch mode {
	case "report":
		switch c.Report.Format {
		case "csv", "xlsx", "json", "table":
		default:
			errs = append(errs, "report.format must be one of csv, xlsx, json, table")
		}
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		if c.Server.MaxUploadMB <= 0 {
			errs = append(errs, "server.max_upload_mb must be > 0")
		}
		if c.Server.RequestsPerSecond <= 0 || c.Server.Burst <= 0 {
			errs = append(errs, "server.requests_per_second and server.burst must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}
