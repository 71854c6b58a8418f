package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/cre-datagen/internal/export"
	"github.com/sells-group/cre-datagen/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Generate GenerateConfig `yaml:"generate" mapstructure:"generate"`
	Export   ExportConfig   `yaml:"export" mapstructure:"export"`
	Ledger   LedgerConfig   `yaml:"ledger" mapstructure:"ledger"`
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// RangeConfig is an inclusive integer range.
type RangeConfig struct {
	Min int `yaml:"min" mapstructure:"min"`
	Max int `yaml:"max" mapstructure:"max"`
}

// CountsConfig holds the batch-size range drawn for each dataset kind. NOI is
// measured in years of monthly periods.
type CountsConfig struct {
	RentRoll          RangeConfig `yaml:"rent_roll" mapstructure:"rent_roll"`
	Comparables       RangeConfig `yaml:"comparables" mapstructure:"comparables"`
	OperatingExpenses RangeConfig `yaml:"operating_expenses" mapstructure:"operating_expenses"`
	TenantRoster      RangeConfig `yaml:"tenant_roster" mapstructure:"tenant_roster"`
	NOIYears          RangeConfig `yaml:"noi_years" mapstructure:"noi_years"`
	MarketAnalysis    RangeConfig `yaml:"market_analysis" mapstructure:"market_analysis"`
}

// For returns the range configured for kind k.
func (c CountsConfig) For(k model.Kind) RangeConfig {
	switch k {
	case model.KindRentRoll:
		return c.RentRoll
	case model.KindComparables:
		return c.Comparables
	case model.KindOperatingExpenses:
		return c.OperatingExpenses
	case model.KindTenantRoster:
		return c.TenantRoster
	case model.KindNOI:
		return c.NOIYears
	case model.KindMarketAnalysis:
		return c.MarketAnalysis
	}
	return RangeConfig{}
}

// GenerateConfig configures a generation run.
type GenerateConfig struct {
	Seed            uint64       `yaml:"seed" mapstructure:"seed"` // 0 draws a random seed
	Today           string       `yaml:"today" mapstructure:"today"`
	ExpenseFrom     string       `yaml:"expense_from" mapstructure:"expense_from"` // default: a year before expense_to
	ExpenseTo       string       `yaml:"expense_to" mapstructure:"expense_to"`     // default: today
	OutputDir       string       `yaml:"output_dir" mapstructure:"output_dir"`
	Categories      []string     `yaml:"categories" mapstructure:"categories"`
	Kinds           []string     `yaml:"kinds" mapstructure:"kinds"`
	EdgeCases       bool         `yaml:"edge_cases" mapstructure:"edge_cases"`
	EdgeProbability float64      `yaml:"edge_probability" mapstructure:"edge_probability"`
	Errors          bool         `yaml:"errors" mapstructure:"errors"`
	Verify          bool         `yaml:"verify" mapstructure:"verify"`
	Concurrency     int          `yaml:"concurrency" mapstructure:"concurrency"`
	Counts          CountsConfig `yaml:"counts" mapstructure:"counts"`
}

// TodayDate parses Today. An empty value means the current date.
func (c GenerateConfig) TodayDate() (time.Time, error) {
	if c.Today == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(model.DateLayout, c.Today)
	if err != nil {
		return time.Time{}, eris.Wrapf(err, "config: parse generate.today %q", c.Today)
	}
	return d, nil
}

// ExpenseWindow resolves the window operating-expense periods start in,
// relative to today. A window ending before it starts is an error.
func (c GenerateConfig) ExpenseWindow(today time.Time) (time.Time, time.Time, error) {
	to := today
	if c.ExpenseTo != "" {
		d, err := time.Parse(model.DateLayout, c.ExpenseTo)
		if err != nil {
			return time.Time{}, time.Time{}, eris.Wrapf(err, "config: parse generate.expense_to %q", c.ExpenseTo)
		}
		to = d
	}
	from := to.AddDate(0, 0, -365)
	if c.ExpenseFrom != "" {
		d, err := time.Parse(model.DateLayout, c.ExpenseFrom)
		if err != nil {
			return time.Time{}, time.Time{}, eris.Wrapf(err, "config: parse generate.expense_from %q", c.ExpenseFrom)
		}
		from = d
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, eris.Errorf("config: expense window starts %s after it ends %s",
			from.Format(model.DateLayout), to.Format(model.DateLayout))
	}
	return from, to, nil
}

// ExportConfig selects output formats.
type ExportConfig struct {
	Encodings    []string `yaml:"encodings" mapstructure:"encodings"`
	XLSX         bool     `yaml:"xlsx" mapstructure:"xlsx"`
	JSON         bool     `yaml:"json" mapstructure:"json"`
	Formatted    bool     `yaml:"formatted" mapstructure:"formatted"`
	Dictionaries bool     `yaml:"dictionaries" mapstructure:"dictionaries"`
}

// LedgerConfig configures the local run ledger.
type LedgerConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// PostgresConfig configures the optional bulk load of generated datasets.
type PostgresConfig struct {
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Schema      string `yaml:"schema" mapstructure:"schema"`
	Load        bool   `yaml:"load" mapstructure:"load"`
	MaxAttempts int    `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// ServerConfig configures the fixture API server.
type ServerConfig struct {
	Port     int `yaml:"port" mapstructure:"port"`
	MaxCount int `yaml:"max_count" mapstructure:"max_count"`
	// RateLimit is generation requests per second across all clients;
	// 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Validate checks the settings a command mode depends on and reports every
// problem at once. Modes: generate, serve, runs, dictionary.
func (c *Config) Validate(mode string) error {
	var errs []string
	switch mode {
	case "generate":
		errs = append(errs, c.validateGenerate()...)
		if c.Postgres.Load && c.Postgres.DatabaseURL == "" {
			errs = append(errs, "postgres.database_url is required when postgres.load is set")
		}
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		if c.Server.MaxCount < 1 {
			errs = append(errs, "server.max_count must be > 0")
		}
		if c.Server.RateLimit < 0 {
			errs = append(errs, "server.rate_limit must be >= 0")
		}
		if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
			errs = append(errs, "server.rate_burst must be > 0 when server.rate_limit is set")
		}
	case "runs":
		if c.Ledger.Path == "" {
			errs = append(errs, "ledger.path is required")
		}
	case "dictionary":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateGenerate() []string {
	var errs []string
	g := c.Generate
	if g.EdgeProbability < 0 || g.EdgeProbability > 1 {
		errs = append(errs, fmt.Sprintf("generate.edge_probability must be between 0 and 1, got %v", g.EdgeProbability))
	}
	if g.Concurrency < 1 || g.Concurrency > 64 {
		errs = append(errs, fmt.Sprintf("generate.concurrency must be between 1 and 64, got %d", g.Concurrency))
	}
	if g.OutputDir == "" {
		errs = append(errs, "generate.output_dir is required")
	}
	if _, err := model.ParseCategories(g.Categories); err != nil {
		errs = append(errs, "generate.categories: "+err.Error())
	}
	for _, k := range g.Kinds {
		if _, err := model.ParseKind(k); err != nil {
			errs = append(errs, "generate.kinds: "+err.Error())
		}
	}
	for _, k := range model.AllKinds() {
		r := g.Counts.For(k)
		if r.Min < 0 || r.Max < r.Min {
			errs = append(errs, fmt.Sprintf("generate.counts.%s has invalid range [%d, %d]", countKey(k), r.Min, r.Max))
		}
	}
	if today, err := g.TodayDate(); err != nil {
		errs = append(errs, "generate.today must be YYYY-MM-DD")
	} else if _, _, err := g.ExpenseWindow(today); err != nil {
		errs = append(errs, "generate.expense_from/expense_to: "+err.Error())
	}
	if len(c.Export.Encodings) == 0 {
		errs = append(errs, "export.encodings must list at least one encoding")
	}
	if _, err := export.ParseEncodings(c.Export.Encodings); err != nil {
		errs = append(errs, "export.encodings: "+err.Error())
	}
	return errs
}

func countKey(k model.Kind) string {
	if k == model.KindNOI {
		return "noi_years"
	}
	return string(k)
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CREGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("generate.seed", 0)
	v.SetDefault("generate.today", "")
	v.SetDefault("generate.expense_from", "")
	v.SetDefault("generate.expense_to", "")
	v.SetDefault("generate.output_dir", "test-data")
	v.SetDefault("generate.categories", []string{"multifamily", "office", "retail"})
	v.SetDefault("generate.kinds", []string{})
	v.SetDefault("generate.edge_cases", true)
	v.SetDefault("generate.edge_probability", 0.1)
	v.SetDefault("generate.errors", true)
	v.SetDefault("generate.verify", true)
	v.SetDefault("generate.concurrency", 4)
	v.SetDefault("generate.counts.rent_roll.min", 50)
	v.SetDefault("generate.counts.rent_roll.max", 500)
	v.SetDefault("generate.counts.comparables.min", 20)
	v.SetDefault("generate.counts.comparables.max", 50)
	v.SetDefault("generate.counts.operating_expenses.min", 100)
	v.SetDefault("generate.counts.operating_expenses.max", 300)
	v.SetDefault("generate.counts.tenant_roster.min", 100)
	v.SetDefault("generate.counts.tenant_roster.max", 200)
	v.SetDefault("generate.counts.noi_years.min", 3)
	v.SetDefault("generate.counts.noi_years.max", 5)
	v.SetDefault("generate.counts.market_analysis.min", 8)
	v.SetDefault("generate.counts.market_analysis.max", 15)
	v.SetDefault("export.encodings", []string{"utf-8", "ascii", "utf-16"})
	v.SetDefault("export.xlsx", true)
	v.SetDefault("export.json", false)
	v.SetDefault("export.formatted", true)
	v.SetDefault("export.dictionaries", true)
	v.SetDefault("ledger.enabled", true)
	v.SetDefault("ledger.path", ".cre-datagen/ledger.db")
	v.SetDefault("postgres.database_url", "")
	v.SetDefault("postgres.schema", "synthetic")
	v.SetDefault("postgres.load", false)
	v.SetDefault("postgres.max_attempts", 3)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_count", 1000)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
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
