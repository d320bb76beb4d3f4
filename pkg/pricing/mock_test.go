package pricing

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/pricing"
)

// fakeProductsAPI answers GetProducts from a map keyed by instance type
type fakeProductsAPI struct {
	priceLists map[string][]string
	errs       map[string]error
	calls      []*pricing.GetProductsInput
}

func newFakeProductsAPI() *fakeProductsAPI {
	return &fakeProductsAPI{
		priceLists: make(map[string][]string),
		errs:       make(map[string]error),
	}
}

func (f *fakeProductsAPI) GetProducts(_ context.Context, params *pricing.GetProductsInput, _ ...func(*pricing.Options)) (*pricing.GetProductsOutput, error) {
	f.calls = append(f.calls, params)

	instanceType := ""
	for _, filter := range params.Filters {
		if filter.Field != nil && *filter.Field == "instanceType" && filter.Value != nil {
			instanceType = *filter.Value
		}
	}

	if err, ok := f.errs[instanceType]; ok {
		return nil, err
	}
	return &pricing.GetProductsOutput{PriceList: f.priceLists[instanceType]}, nil
}

// productDocument builds a minimal Pricing API product document
func productDocument(usd string) string {
	return fmt.Sprintf(`{
  "product": {"attributes": {"instanceType": "m5.large"}},
  "terms": {
    "OnDemand": {
      "SKU.JRTCKXETXF": {
        "priceDimensions": {
          "SKU.JRTCKXETXF.6YS6EN2CT7": {
            "unit": "Hrs",
            "pricePerUnit": {"USD": %q}
          }
        }
      }
    }
  }
}`, usd)
}
