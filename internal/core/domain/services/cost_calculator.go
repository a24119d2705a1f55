package services

import (
	"errors"
	"math"

	"fleetdelivery/internal/core/domain/model/offer"
	"fleetdelivery/internal/core/domain/model/parcel"
	"fleetdelivery/internal/pkg/errs"
)

const (
	costPerKg = 10
	costPerKm = 5
)

var (
	// ErrBaseCostIsInvalid is returned for a negative or non-finite base cost.
	ErrBaseCostIsInvalid = errs.NewValueIsInvalidErrorWithCause("base cost", errors.New("must be a non-negative number"))
	// ErrCatalogIsRequired is returned when a calculator is built without offers.
	ErrCatalogIsRequired = errs.NewValueIsRequiredError("offer catalog")
)

// CostCalculator prices parcels: base + weight × 10 + distance × 5, less the
// discount of the parcel's offer when the parcel meets its criteria.
type CostCalculator struct {
	catalog *offer.Catalog
}

// NewCostCalculator creates a calculator backed by catalog.
func NewCostCalculator(catalog *offer.Catalog) (CostCalculator, error) {
	if catalog == nil {
		return CostCalculator{}, ErrCatalogIsRequired
	}
	return CostCalculator{catalog: catalog}, nil
}

// Catalog returns the offers the calculator applies.
func (c CostCalculator) Catalog() *offer.Catalog {
	return c.catalog
}

// Quote returns the discount and the total cost for a parcel of the given
// weight and distance without touching any parcel.
func (c CostCalculator) Quote(baseCost, weight, distance float64, offerCode string) (discount, total float64, err error) {
	if !(baseCost >= 0) || math.IsInf(baseCost, 0) {
		return 0, 0, ErrBaseCostIsInvalid
	}

	cost := baseCost + weight*costPerKg + distance*costPerKm
	discount = cost * c.catalog.DiscountRate(offerCode, weight, distance)
	return discount, cost - discount, nil
}

// Apply prices p and records the result on it.
func (c CostCalculator) Apply(p *parcel.Parcel, baseCost float64) error {
	if err := p.Validate(); err != nil {
		return err
	}

	discount, total, err := c.Quote(baseCost, p.Weight(), p.Distance(), p.OfferCode())
	if err != nil {
		return err
	}
	return p.ApplyCost(discount, total)
}
