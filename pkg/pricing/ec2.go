package pricing

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
)

// EC2ServiceCode is the Pricing API service code for EC2
const EC2ServiceCode = "AmazonEC2"

// EC2Filters returns the filters for Linux, shared-tenancy, on-demand pricing
// of instanceType at location
func EC2Filters(instanceType, location string) []types.Filter {
	return []types.Filter{
		termMatch("instanceType", instanceType),
		termMatch("location", location),
		termMatch("operatingSystem", "Linux"),
		termMatch("preInstalledSw", "NA"),
		termMatch("tenancy", "Shared"),
		termMatch("capacitystatus", "Used"),
	}
}

func termMatch(field, value string) types.Filter {
	return types.Filter{
		Type:  types.FilterTypeTermMatch,
		Field: aws.String(field),
		Value: aws.String(value),
	}
}

// OnDemandHourly returns the hourly on-demand price of an instance type.
// Failures of any kind are reported as an Unknown quote and never returned as errors.
func (c *Client) OnDemandHourly(ctx context.Context, instanceType string) Quote {
	if c.cacheEnabled {
		c.cacheLock.RLock()
		quote, exists := c.cache[instanceType]
		c.cacheLock.RUnlock()
		if exists {
			c.stats.recordCacheHit(instanceType)
			quote.Source = PricingSourceCache
			return quote
		}
	}

	quote := c.lookup(ctx, instanceType)

	if quote.IsKnown() {
		c.stats.recordSuccess(instanceType)
	} else {
		c.stats.recordFailure(instanceType)
		c.log.V(1).Info("price lookup failed",
			"instanceType", instanceType,
			"location", c.location,
			"reason", quote.Reason)
	}

	if c.cacheEnabled {
		c.cacheLock.Lock()
		c.cache[instanceType] = quote
		c.cacheLock.Unlock()
	}

	return quote
}

func (c *Client) lookup(ctx context.Context, instanceType string) Quote {
	priceJSON, err := c.getProduct(ctx, EC2ServiceCode, EC2Filters(instanceType, c.location))
	if err != nil {
		return Unknown(err.Error())
	}

	price, err := ExtractOnDemandPrice(priceJSON)
	if err != nil {
		return Unknown(err.Error())
	}

	return Known(price)
}
