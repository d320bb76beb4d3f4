package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every bound variable; viper ignores empty values
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, 14, cfg.LookbackDays)
	assert.Equal(t, "csv", cfg.ReportFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5.0, cfg.Pricing.RequestsPerSecond)
	assert.False(t, cfg.Pricing.CacheWithinRun)

	require.NotNil(t, cfg.Storage)
	assert.Equal(t, "smart-notes-uploads", cfg.Storage.Bucket)
	assert.Nil(t, cfg.RecordLog)
	assert.Nil(t, cfg.Summarizer)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_REGION", "ap-northeast-2")
	t.Setenv("LOOKBACK_DAYS", "30")
	t.Setenv("DYNAMO_TABLE", "smart_notes")
	t.Setenv("TOGETHER_API_KEY", "secret")
	t.Setenv("PRICING_CACHE_WITHIN_RUN", "true")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "ap-northeast-2", cfg.Region)
	assert.Equal(t, 30, cfg.LookbackDays)
	assert.True(t, cfg.Pricing.CacheWithinRun)

	require.NotNil(t, cfg.RecordLog)
	assert.Equal(t, BackendDynamoDB, cfg.RecordLog.Backend)
	assert.Equal(t, "smart_notes", cfg.RecordLog.Table)

	require.NotNil(t, cfg.Summarizer)
	assert.Equal(t, "secret", cfg.Summarizer.APIKey)
	assert.Equal(t, DefaultTogetherModel, cfg.Summarizer.Model)
	assert.Equal(t, 350, cfg.Summarizer.MaxTokens)
	assert.Equal(t, 3000, cfg.Summarizer.MaxInputChars)
	assert.Equal(t, DefaultTogetherEndpoint, cfg.Summarizer.Endpoint)
}

func TestLoad_RegionOutsidePricingTable(t *testing.T) {
	for _, region := range []string{"il-central-1", "ap-southeast-5", "mx-central-1"} {
		t.Run(region, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("AWS_REGION", region)

			cfg, err := Load(LoadOptions{})
			require.NoError(t, err)
			assert.Equal(t, region, cfg.Region)
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "rightsizer.yaml", `region: eu-west-1
lookbackDays: 7
reportFormat: yaml
s3Bucket: ""
dynamoTable: records
recordLogBackend: redis
redisAddr: localhost:6379
summarizerTimeout: 15s
pricing:
  requestsPerSecond: 2
  cacheWithinRun: true
`)

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, 7, cfg.LookbackDays)
	assert.Equal(t, "yaml", cfg.ReportFormat)
	assert.Nil(t, cfg.Storage)
	require.NotNil(t, cfg.RecordLog)
	assert.Equal(t, BackendRedis, cfg.RecordLog.Backend)
	assert.Equal(t, "localhost:6379", cfg.RecordLog.RedisAddr)
	assert.Equal(t, 2.0, cfg.Pricing.RequestsPerSecond)
	assert.True(t, cfg.Pricing.CacheWithinRun)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	file := writeFile(t, "rightsizer.yaml", "lookbackDays: 7\nreportFormat: json\nlogLevel: debug\n")
	envFile := writeFile(t, ".env", "LOOKBACK_DAYS=21\nREPORT_FORMAT=yaml\nS3_BUCKET=from-dotenv\n")
	t.Setenv("REPORT_FORMAT", "csv")

	cfg, err := Load(LoadOptions{
		ConfigFile: file,
		EnvFile:    envFile,
		Overrides:  map[string]any{"lookbackDays": 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.LookbackDays)
	assert.Equal(t, "csv", cfg.ReportFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.NotNil(t, cfg.Storage)
	assert.Equal(t, "from-dotenv", cfg.Storage.Bucket)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), ".env")})
	assert.NoError(t, err)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		errMsg    string
	}{
		{name: "empty region", overrides: map[string]any{"region": ""}, errMsg: "Region"},
		{name: "zero lookback", overrides: map[string]any{"lookbackDays": 0}, errMsg: "LookbackDays"},
		{name: "unknown format", overrides: map[string]any{"reportFormat": "xml"}, errMsg: "ReportFormat"},
		{name: "unknown backend", overrides: map[string]any{"recordLogBackend": "kafka"}, errMsg: "RecordLogBackend"},
		{name: "redis without address", overrides: map[string]any{"recordLogBackend": "redis"}, errMsg: "RedisAddr"},
		{name: "non-positive rate", overrides: map[string]any{"pricing.requestsPerSecond": 0}, errMsg: "RequestsPerSecond"},
		{name: "bad log level", overrides: map[string]any{"logLevel": "trace"}, errMsg: "LogLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			_, err := Load(LoadOptions{Overrides: tt.overrides})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_SummarizerTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOGETHER_API_KEY", "k")

	cfg, err := Load(LoadOptions{Overrides: map[string]any{"summarizerTimeout": "5s"}})
	require.NoError(t, err)
	require.NotNil(t, cfg.Summarizer)
	assert.Equal(t, 5*time.Second, cfg.Summarizer.Timeout)
}
