package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/younsl/rightsizer/internal/models"
	"github.com/younsl/rightsizer/pkg/utils"
)

// EC2Client struct for EC2 client
type EC2Client struct {
	client ec2.DescribeInstancesAPIClient
	region string
}

// NewEC2Client creates a new EC2Client on top of a DescribeInstances implementation
func NewEC2Client(client ec2.DescribeInstancesAPIClient, region string) *EC2Client {
	return &EC2Client{
		client: client,
		region: region,
	}
}

// NewEC2ClientFromConfig creates a new EC2Client from a loaded AWS config
func NewEC2ClientFromConfig(cfg aws.Config) *EC2Client {
	return NewEC2Client(ec2.NewFromConfig(cfg), cfg.Region)
}

// ListRunningInstances returns all EC2 instances in running state, in API order
func (c *EC2Client) ListRunningInstances(ctx context.Context) ([]models.Instance, error) {
	input := &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("instance-state-name"),
				Values: []string{"running"},
			},
		},
	}

	instances := []models.Instance{}

	paginator := ec2.NewDescribeInstancesPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying EC2 instances: %w", err)
		}

		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				instances = append(instances, c.toModel(instance))
			}
		}
	}

	return instances, nil
}

func (c *EC2Client) toModel(instance types.Instance) models.Instance {
	az := ""
	if instance.Placement != nil {
		az = utils.SafeDeref(instance.Placement.AvailabilityZone)
	}

	return models.Instance{
		InstanceID:       utils.SafeDeref(instance.InstanceId),
		InstanceType:     string(instance.InstanceType),
		Region:           c.region,
		AvailabilityZone: az,
		LaunchTime:       utils.SafeDerefTime(instance.LaunchTime),
		Tags:             utils.GetTagsMap(instance.Tags),
	}
}
