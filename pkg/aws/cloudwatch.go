package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/younsl/rightsizer/internal/models"
	"github.com/younsl/rightsizer/pkg/utils"
)

// ErrNoDatapoints is returned when CloudWatch has no samples for the window.
// It means missing data, not a failed query.
var ErrNoDatapoints = errors.New("no datapoints")

const (
	ec2Namespace     = "AWS/EC2"
	cpuMetricName    = "CPUUtilization"
	dailyPeriodInSec = 86400
)

// CloudWatchAPI is the subset of the CloudWatch API used by CloudWatchClient
type CloudWatchAPI interface {
	GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

// CloudWatchClient samples EC2 utilization metrics
type CloudWatchClient struct {
	client CloudWatchAPI
	now    func() time.Time
}

// NewCloudWatchClient creates a new CloudWatchClient
func NewCloudWatchClient(client CloudWatchAPI) *CloudWatchClient {
	return &CloudWatchClient{
		client: client,
		now:    time.Now,
	}
}

// NewCloudWatchClientFromConfig creates a new CloudWatchClient from a loaded AWS config
func NewCloudWatchClientFromConfig(cfg aws.Config) *CloudWatchClient {
	return NewCloudWatchClient(cloudwatch.NewFromConfig(cfg))
}

// WithClock overrides the time source used to compute the lookback window
func (c *CloudWatchClient) WithClock(now func() time.Time) *CloudWatchClient {
	c.now = now
	return c
}

// CPUUtilization summarizes daily CPUUtilization of an instance over the last days.
// The average is the mean of the daily averages and the max is the largest daily maximum.
func (c *CloudWatchClient) CPUUtilization(ctx context.Context, instanceID string, days int) (models.UtilizationSummary, error) {
	startTime, endTime := utils.LookbackWindow(c.now(), days)

	input := &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(ec2Namespace),
		MetricName: aws.String(cpuMetricName),
		Dimensions: []cwtypes.Dimension{
			{
				Name:  aws.String("InstanceId"),
				Value: aws.String(instanceID),
			},
		},
		StartTime:  aws.Time(startTime),
		EndTime:    aws.Time(endTime),
		Period:     aws.Int32(dailyPeriodInSec),
		Statistics: []cwtypes.Statistic{cwtypes.StatisticAverage, cwtypes.StatisticMaximum},
		Unit:       cwtypes.StandardUnitPercent,
	}

	resp, err := c.client.GetMetricStatistics(ctx, input)
	if err != nil {
		return models.UtilizationSummary{}, fmt.Errorf("failed to get CloudWatch metric %s for %s: %w",
			cpuMetricName, instanceID, err)
	}

	return summarizeDatapoints(resp.Datapoints, days)
}

func summarizeDatapoints(datapoints []cwtypes.Datapoint, days int) (models.UtilizationSummary, error) {
	var sum, maxCPU float64
	count := 0

	for _, dp := range datapoints {
		avg, okAvg := utils.SafeDerefFloat(dp.Average)
		peak, okMax := utils.SafeDerefFloat(dp.Maximum)
		if !okAvg || !okMax {
			continue
		}

		sum += avg
		if count == 0 || peak > maxCPU {
			maxCPU = peak
		}
		count++
	}

	if count == 0 {
		return models.UtilizationSummary{}, ErrNoDatapoints
	}

	avgCPU := sum / float64(count)
	if maxCPU < avgCPU {
		maxCPU = avgCPU
	}

	return models.UtilizationSummary{
		AverageCPU:   avgCPU,
		MaxCPU:       maxCPU,
		Datapoints:   count,
		LookbackDays: days,
	}, nil
}
