package pricing

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/younsl/rightsizer/pkg/utils"
)

// ExtractOnDemandPrice extracts the hourly USD price from a Pricing API product document.
// It reads terms.OnDemand, takes the first offer and its first price dimension
// in document order, and parses pricePerUnit.USD.
func ExtractOnDemandPrice(priceJSON string) (float64, error) {
	raw := json.RawMessage(priceJSON)

	terms, err := utils.ObjectMember(raw, "terms")
	if err != nil {
		return 0, fmt.Errorf("error parsing pricing data: %w", err)
	}

	onDemand, err := utils.ObjectMember(terms, "OnDemand")
	if err != nil {
		return 0, fmt.Errorf("error parsing terms: %w", err)
	}

	_, skuOffer, err := utils.FirstObjectMember(onDemand)
	if err != nil {
		return 0, fmt.Errorf("no SKU offer found: %w", err)
	}

	priceDimensions, err := utils.ObjectMember(skuOffer, "priceDimensions")
	if err != nil {
		return 0, fmt.Errorf("error parsing SKU offer: %w", err)
	}

	_, dimension, err := utils.FirstObjectMember(priceDimensions)
	if err != nil {
		return 0, fmt.Errorf("no price dimension found: %w", err)
	}

	var parsed struct {
		PricePerUnit map[string]string `json:"pricePerUnit"`
	}
	if err := json.Unmarshal(dimension, &parsed); err != nil {
		return 0, fmt.Errorf("price dimension is invalid: %w", err)
	}

	usd, ok := parsed.PricePerUnit["USD"]
	if !ok {
		return 0, fmt.Errorf("USD price not found")
	}

	price, err := strconv.ParseFloat(usd, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing price: %w", err)
	}

	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, fmt.Errorf("invalid price %q", usd)
	}

	return price, nil
}
