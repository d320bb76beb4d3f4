package config

import "time"

// Record log backends
const (
	BackendDynamoDB       = "dynamodb"
	BackendRedis          = "redis"
	BackendCloudWatchLogs = "cloudwatchlogs"
)

// Defaults applied before the config file, .env file and environment are read
const (
	DefaultRegion            = "us-east-1"
	DefaultBucket            = "smart-notes-uploads"
	DefaultLookbackDays      = 14
	DefaultReportFormat      = "csv"
	DefaultLogLevel          = "info"
	DefaultRecordLogBackend  = BackendDynamoDB
	DefaultLogGroup          = "/rightsizer/records"
	DefaultTogetherEndpoint  = "https://api.together.xyz/v1/chat/completions"
	DefaultTogetherModel     = "meta-llama/Llama-3-8b-chat-hf"
	DefaultMaxTokens         = 350
	DefaultMaxInputChars     = 3000
	DefaultSummarizerTimeout = 60 * time.Second
	DefaultRequestsPerSecond = 5.0
)

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = ".env"

// envBindings maps config keys to the environment variables that set them
var envBindings = map[string]string{
	"region":                    "AWS_REGION",
	"lookbackDays":              "LOOKBACK_DAYS",
	"reportFormat":              "REPORT_FORMAT",
	"outputDir":                 "OUTPUT_DIR",
	"logLevel":                  "LOG_LEVEL",
	"metricsTextfile":           "METRICS_TEXTFILE",
	"s3Bucket":                  "S3_BUCKET",
	"dynamoTable":               "DYNAMO_TABLE",
	"recordLogBackend":          "RECORD_LOG_BACKEND",
	"redisAddr":                 "REDIS_ADDR",
	"redisPassword":             "REDIS_PASSWORD",
	"logGroup":                  "LOG_GROUP",
	"togetherApiKey":            "TOGETHER_API_KEY",
	"togetherModel":             "TOGETHER_MODEL",
	"togetherEndpoint":          "TOGETHER_ENDPOINT",
	"pricing.requestsPerSecond": "PRICING_REQUESTS_PER_SECOND",
	"pricing.cacheWithinRun":    "PRICING_CACHE_WITHIN_RUN",
}
