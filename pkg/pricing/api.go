package pricing

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/go-logr/logr"
	"golang.org/x/time/rate"

	"github.com/younsl/rightsizer/pkg/utils"
)

// PricingRegion is where the Pricing API client is created.
// The AWS Pricing API is only available in us-east-1 and ap-south-1.
const PricingRegion = "us-east-1"

// DefaultRequestsPerSecond bounds calls to GetProducts
const DefaultRequestsPerSecond = 5.0

// ProductsAPI is the subset of the Pricing API used by Client
type ProductsAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// Options configures a Client
type Options struct {
	// Region is the EC2 region whose prices are looked up
	Region string

	// RequestsPerSecond limits GetProducts calls, zero means DefaultRequestsPerSecond
	RequestsPerSecond float64

	// CacheWithinRun memoizes quotes by instance type for the life of the Client
	CacheWithinRun bool

	Log logr.Logger
}

// Client looks up EC2 on-demand prices from the AWS Pricing API
type Client struct {
	api      ProductsAPI
	region   string
	location string
	limiter  *rate.Limiter
	log      logr.Logger
	stats    *Stats

	cacheEnabled bool
	cacheLock    sync.RWMutex
	cache        map[string]Quote
}

// NewClient creates a Client on top of a ProductsAPI implementation.
// A nil api yields a client whose lookups all return Unknown.
func NewClient(api ProductsAPI, opts Options) *Client {
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}

	if !utils.IsValidRegion(opts.Region) {
		opts.Log.V(1).Info("region has no pricing location, using default",
			"region", opts.Region, "location", utils.DefaultPricingLocation)
	}

	return &Client{
		api:          api,
		region:       opts.Region,
		location:     utils.GetRegionDescriptiveName(opts.Region),
		limiter:      rate.NewLimiter(rate.Limit(rps), 1),
		log:          opts.Log,
		stats:        NewStats(),
		cacheEnabled: opts.CacheWithinRun,
		cache:        make(map[string]Quote),
	}
}

// NewFromConfig creates a Client backed by the AWS SDK, pinned to PricingRegion
func NewFromConfig(cfg aws.Config, opts Options) *Client {
	pricingCfg := cfg.Copy()
	pricingCfg.Region = PricingRegion
	return NewClient(pricing.NewFromConfig(pricingCfg), opts)
}

// InitMessage describes the endpoint prices are read from
func (c *Client) InitMessage() string {
	return fmt.Sprintf("AWS Pricing API initialized in %s region (https://api.pricing.%s.amazonaws.com)", PricingRegion, PricingRegion)
}

// Location returns the Pricing API location name used in filters
func (c *Client) Location() string {
	return c.location
}

// Stats returns the lookup counters of this client
func (c *Client) Stats() *Stats {
	return c.stats
}

// getProduct returns the first PriceList entry matching the filters.
// MaxResults is 1, so when several products match only the first is seen.
func (c *Client) getProduct(ctx context.Context, serviceCode string, filters []types.Filter) (string, error) {
	if c.api == nil {
		return "", fmt.Errorf("AWS pricing client not initialized")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("pricing rate limiter: %w", err)
	}

	input := &pricing.GetProductsInput{
		ServiceCode: aws.String(serviceCode),
		Filters:     filters,
		MaxResults:  aws.Int32(1),
	}

	resp, err := c.api.GetProducts(ctx, input)
	if err != nil {
		return "", fmt.Errorf("error calling AWS Pricing API: %w", err)
	}

	if len(resp.PriceList) == 0 {
		return "", fmt.Errorf("no pricing found in %s", c.location)
	}

	return resp.PriceList[0], nil
}
