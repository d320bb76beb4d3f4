// Package config loads rightsizer settings from defaults, an optional YAML
// file, an optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrInvalid wraps every validation failure returned by Load
var ErrInvalid = errors.New("invalid configuration")

// Config is the resolved configuration of a run.
// Optional collaborators are nil when not configured.
type Config struct {
	Region          string
	LookbackDays    int
	ReportFormat    string
	OutputDir       string
	LogLevel        string
	MetricsTextfile string
	Pricing         PricingConfig

	Storage    *StorageConfig
	RecordLog  *RecordLogConfig
	Summarizer *SummarizerConfig
}

// PricingConfig tunes Pricing API lookups
type PricingConfig struct {
	RequestsPerSecond float64 `mapstructure:"requestsPerSecond" validate:"gt=0"`
	CacheWithinRun    bool    `mapstructure:"cacheWithinRun"`
}

// StorageConfig selects the S3 bucket reports and summaries are uploaded to
type StorageConfig struct {
	Bucket string
}

// RecordLogConfig selects where report rows and summary records are written
type RecordLogConfig struct {
	Backend       string
	Table         string
	RedisAddr     string
	RedisPassword string
	LogGroup      string
}

// SummarizerConfig holds the Together API settings
type SummarizerConfig struct {
	APIKey        string
	Endpoint      string
	Model         string
	MaxTokens     int
	MaxInputChars int
	Timeout       time.Duration
}

// fileConfig mirrors the flat key layout of the config file and environment
type fileConfig struct {
	Region          string        `mapstructure:"region" validate:"required"`
	LookbackDays    int           `mapstructure:"lookbackDays" validate:"min=1,max=455"`
	ReportFormat    string        `mapstructure:"reportFormat" validate:"oneof=csv json yaml"`
	OutputDir       string        `mapstructure:"outputDir"`
	LogLevel        string        `mapstructure:"logLevel" validate:"oneof=debug info"`
	MetricsTextfile string        `mapstructure:"metricsTextfile"`
	Pricing         PricingConfig `mapstructure:"pricing"`

	S3Bucket string `mapstructure:"s3Bucket"`

	DynamoTable      string `mapstructure:"dynamoTable"`
	RecordLogBackend string `mapstructure:"recordLogBackend" validate:"oneof=dynamodb redis cloudwatchlogs"`
	RedisAddr        string `mapstructure:"redisAddr" validate:"required_if=RecordLogBackend redis"`
	RedisPassword    string `mapstructure:"redisPassword"`
	LogGroup         string `mapstructure:"logGroup" validate:"required_if=RecordLogBackend cloudwatchlogs"`

	TogetherAPIKey    string        `mapstructure:"togetherApiKey"`
	TogetherEndpoint  string        `mapstructure:"togetherEndpoint" validate:"url"`
	TogetherModel     string        `mapstructure:"togetherModel" validate:"required"`
	MaxTokens         int           `mapstructure:"maxTokens" validate:"gt=0"`
	MaxInputChars     int           `mapstructure:"maxInputChars" validate:"gt=0"`
	SummarizerTimeout time.Duration `mapstructure:"summarizerTimeout" validate:"gt=0"`
}

// LoadOptions controls where Load reads settings from
type LoadOptions struct {
	// ConfigFile is an optional YAML file
	ConfigFile string

	// EnvFile is an optional dotenv file; missing files are ignored
	EnvFile string

	// Overrides take precedence over every other source, keyed like the config file
	Overrides map[string]any
}

// Load resolves the configuration. Precedence from lowest to highest is
// defaults, config file, .env file, environment, overrides.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("region", DefaultRegion)
	v.SetDefault("lookbackDays", DefaultLookbackDays)
	v.SetDefault("reportFormat", DefaultReportFormat)
	v.SetDefault("outputDir", ".")
	v.SetDefault("logLevel", DefaultLogLevel)
	v.SetDefault("s3Bucket", DefaultBucket)
	v.SetDefault("recordLogBackend", DefaultRecordLogBackend)
	v.SetDefault("logGroup", DefaultLogGroup)
	v.SetDefault("togetherEndpoint", DefaultTogetherEndpoint)
	v.SetDefault("togetherModel", DefaultTogetherModel)
	v.SetDefault("maxTokens", DefaultMaxTokens)
	v.SetDefault("maxInputChars", DefaultMaxInputChars)
	v.SetDefault("summarizerTimeout", DefaultSummarizerTimeout)
	v.SetDefault("pricing.requestsPerSecond", DefaultRequestsPerSecond)
	v.SetDefault("pricing.cacheWithinRun", false)

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	}

	if opts.EnvFile != "" {
		if err := applyEnvFile(v, opts.EnvFile); err != nil {
			return nil, err
		}
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := raw.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return raw.resolve(), nil
}

// applyEnvFile reads a dotenv file and applies the variables that are not
// already set to a non-empty value in the process environment
func applyEnvFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	dotenv := viper.New()
	dotenv.SetConfigFile(path)
	dotenv.SetConfigType("env")
	if err := dotenv.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	for key, env := range envBindings {
		if os.Getenv(env) != "" {
			continue
		}
		// dotenv keys are lower-cased by viper
		if value := dotenv.GetString(strings.ToLower(env)); value != "" {
			v.Set(key, value)
		}
	}
	return nil
}

func (c *fileConfig) validate() error {
	return validator.New().Struct(c)
}

func (c *fileConfig) resolve() *Config {
	cfg := &Config{
		Region:          c.Region,
		LookbackDays:    c.LookbackDays,
		ReportFormat:    c.ReportFormat,
		OutputDir:       c.OutputDir,
		LogLevel:        c.LogLevel,
		MetricsTextfile: c.MetricsTextfile,
		Pricing:         c.Pricing,
	}

	if c.S3Bucket != "" {
		cfg.Storage = &StorageConfig{Bucket: c.S3Bucket}
	}

	if c.DynamoTable != "" {
		cfg.RecordLog = &RecordLogConfig{
			Backend:       c.RecordLogBackend,
			Table:         c.DynamoTable,
			RedisAddr:     c.RedisAddr,
			RedisPassword: c.RedisPassword,
			LogGroup:      c.LogGroup,
		}
	}

	if c.TogetherAPIKey != "" {
		cfg.Summarizer = &SummarizerConfig{
			APIKey:        c.TogetherAPIKey,
			Endpoint:      c.TogetherEndpoint,
			Model:         c.TogetherModel,
			MaxTokens:     c.MaxTokens,
			MaxInputChars: c.MaxInputChars,
			Timeout:       c.SummarizerTimeout,
		}
	}

	return cfg
}
