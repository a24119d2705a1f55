package offer

import (
	"fmt"
	"slices"
)

// Catalog is an immutable set of offers keyed by code.
type Catalog struct {
	offers map[string]Offer
}

// NewCatalog builds a catalog. Codes must be unique.
func NewCatalog(offers ...Offer) (*Catalog, error) {
	byCode := make(map[string]Offer, len(offers))
	for _, o := range offers {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if _, ok := byCode[o.code]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, o.code)
		}
		byCode[o.code] = o
	}
	return &Catalog{offers: byCode}, nil
}

// DefaultCatalog returns the standard offers:
//
//	OFR001 10%  weight 70-200 kg   distance 0-200 km
//	OFR002  7%  weight 10-<150 kg  distance 50-250 km
//	OFR003  5%  weight 10-250 kg   distance 50-250 km
func DefaultCatalog() *Catalog {
	return &Catalog{offers: map[string]Offer{
		"OFR001": mustOffer("OFR001", 0.10, Closed(70, 200), Closed(0, 200)),
		"OFR002": mustOffer("OFR002", 0.07, HalfOpen(10, 150), Closed(50, 250)),
		"OFR003": mustOffer("OFR003", 0.05, Closed(10, 250), Closed(50, 250)),
	}}
}

// Lookup returns the offer registered under code.
func (c *Catalog) Lookup(code string) (Offer, bool) {
	o, ok := c.offers[code]
	return o, ok
}

// Codes returns the registered codes in ascending order.
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.offers))
	for code := range c.offers {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// DiscountRate returns the rate of the offer named by code when the parcel
// meets its criteria, and 0 otherwise. Unknown and empty codes give 0.
func (c *Catalog) DiscountRate(code string, weight, distance float64) float64 {
	o, ok := c.offers[code]
	if !ok || !o.Applies(weight, distance) {
		return 0
	}
	return o.rate
}

func mustOffer(code string, rate float64, weight, distance Range) Offer {
	o, err := NewOffer(code, rate, weight, distance)
	if err != nil {
		panic(err)
	}
	return o
}
