package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CallerIdentityAPI is the subset of the STS API used by AccountID
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// NewSTSClientFromConfig creates an STS client from a loaded AWS config
func NewSTSClientFromConfig(cfg aws.Config) *sts.Client {
	return sts.NewFromConfig(cfg)
}

// AccountID returns the account of the credentials in use
func AccountID(ctx context.Context, client CallerIdentityAPI) (string, error) {
	resp, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting caller identity: %w", err)
	}
	return aws.ToString(resp.Account), nil
}
