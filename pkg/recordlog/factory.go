package recordlog

import (
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/redis/go-redis/v9"

	"github.com/younsl/rightsizer/pkg/aws"
	"github.com/younsl/rightsizer/pkg/config"
)

// NewWriter builds the Writer selected by cfg. A nil cfg returns a nil Writer.
func NewWriter(cfg *config.RecordLogConfig, awsCfg awssdk.Config) (Writer, error) {
	if cfg == nil {
		return nil, nil
	}

	switch cfg.Backend {
	case config.BackendDynamoDB:
		return aws.NewDynamoDBRecordWriterFromConfig(awsCfg), nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		return NewRedisWriter(client), nil
	case config.BackendCloudWatchLogs:
		return aws.NewLogsRecordWriterFromConfig(awsCfg, cfg.LogGroup), nil
	default:
		return nil, fmt.Errorf("unknown record log backend %q", cfg.Backend)
	}
}
