package pricing

import "fmt"

// PricingSource represents the source of pricing information
type PricingSource string

const (
	// PricingSourceAPI indicates pricing data came from AWS API
	PricingSourceAPI PricingSource = "API"

	// PricingSourceCache indicates pricing data came from the in-run cache
	PricingSourceCache PricingSource = "Cache"

	// PricingSourceNA indicates pricing data is not available
	PricingSourceNA PricingSource = "N/A"
)

// Quote is the result of a price lookup. It holds either a known hourly
// USD price or the reason the price could not be resolved.
type Quote struct {
	price  float64
	known  bool
	Source PricingSource
	Reason string
}

// Known returns a quote for a resolved hourly price
func Known(price float64) Quote {
	return Quote{price: price, known: true, Source: PricingSourceAPI}
}

// Unknown returns a quote for an unresolved price
func Unknown(reason string) Quote {
	return Quote{Source: PricingSourceNA, Reason: reason}
}

// Value returns the hourly price and whether it is known
func (q Quote) Value() (float64, bool) {
	return q.price, q.known
}

// IsKnown reports whether the quote holds a price
func (q Quote) IsKnown() bool {
	return q.known
}

func (q Quote) String() string {
	if !q.known {
		return string(PricingSourceNA)
	}
	return fmt.Sprintf("$%.4f/hr", q.price)
}
