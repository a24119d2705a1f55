package parcel

import (
	"errors"
	"math"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var (
	// ErrIDIsRequired is returned when a parcel is created without an identity.
	ErrIDIsRequired = errs.NewValueIsRequiredError("parcel id")
	// ErrWeightIsInvalid is returned for a weight that is not a positive number.
	ErrWeightIsInvalid = errs.NewValueIsInvalidErrorWithCause("weight", errors.New("must be a positive number"))
	// ErrDistanceIsInvalid is returned for a distance that is not a positive number.
	ErrDistanceIsInvalid = errs.NewValueIsInvalidErrorWithCause("distance", errors.New("must be a positive number"))
	// ErrDeliveryTimeIsInvalid is returned for a negative or non-finite delivery time.
	ErrDeliveryTimeIsInvalid = errs.NewValueIsInvalidError("delivery time")
	// ErrCostIsInvalid is returned when pricing produces a negative or non-finite amount.
	ErrCostIsInvalid = errs.NewValueIsInvalidError("cost")
	// ErrDeliveryTimeAlreadySet is returned when a parcel is dispatched a second time.
	ErrDeliveryTimeAlreadySet = errors.New("delivery time is already set")
	// ErrParcelIsNotConstructed is returned when using a zero-value Parcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")
)

// Parcel is a single package handed to the scheduler.
//
// Invariants:
//   - ID is non-empty and unique within its batch (the batch enforces uniqueness)
//   - Weight (kg) and distance (km) are finite and greater than zero
//   - The delivery time is absent until dispatch, then fixed forever
//   - A recorded delivery time is non-negative and rounded to 2 decimal places
//
// The scheduler reads only ID, Weight and Distance and writes the delivery
// time. Discount and total cost belong to pricing, which runs before
// scheduling.
//
// Example usage:
//
//	p, err := parcel.NewParcel("PKG1", 50, 30, "OFR001")
//	if err != nil {
//	    return err
//	}
//	// after dispatch
//	if t := p.DeliveryTime(); t != nil {
//	    fmt.Printf("%s arrives after %.2fh\n", p.ID(), *t)
//	}
type Parcel struct {
	id        string
	weight    float64
	distance  float64
	offerCode string

	discount  float64
	totalCost float64

	// deliveryTime is nil until the parcel is dispatched
	deliveryTime *float64

	guard guard.ConstructorGuard
}

// NewParcel creates an undispatched, unpriced parcel. All validation
// failures are reported together.
func NewParcel(id string, weight, distance float64, offerCode string) (*Parcel, error) {
	p := &Parcel{
		offerCode: offerCode,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setWeight(weight),
		p.setDistance(distance),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel rebuilds a parcel from persisted state, including its cost
// fields and, when already dispatched, its delivery time.
func RestoreParcel(
	id string,
	weight, distance float64,
	offerCode string,
	discount, totalCost float64,
	deliveryTime *float64,
) (*Parcel, error) {
	p, err := NewParcel(id, weight, distance, offerCode)
	if err != nil {
		return nil, err
	}

	if err = p.ApplyCost(discount, totalCost); err != nil {
		return nil, err
	}

	if deliveryTime != nil {
		if err = p.SetDeliveryTime(*deliveryTime); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Validate reports whether the parcel was built by NewParcel or RestoreParcel.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// ID returns the opaque parcel identity.
func (p *Parcel) ID() string {
	return p.id
}

// Weight returns the weight in kilograms.
func (p *Parcel) Weight() float64 {
	return p.weight
}

// Distance returns the distance from the depot in kilometres.
func (p *Parcel) Distance() float64 {
	return p.distance
}

// OfferCode returns the offer code supplied with the parcel, possibly empty.
func (p *Parcel) OfferCode() string {
	return p.offerCode
}

// Discount returns the discount amount applied by pricing.
func (p *Parcel) Discount() float64 {
	return p.discount
}

// TotalCost returns the delivery cost after discount.
func (p *Parcel) TotalCost() float64 {
	return p.totalCost
}

// ApplyCost records the result of pricing.
func (p *Parcel) ApplyCost(discount, totalCost float64) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !isNonNegative(discount) || !isNonNegative(totalCost) {
		return ErrCostIsInvalid
	}

	p.discount = discount
	p.totalCost = totalCost
	return nil
}

// DeliveryTime returns a copy of the delivery time in hours, or nil when the
// parcel has not been dispatched.
func (p *Parcel) DeliveryTime() *float64 {
	if p.deliveryTime == nil {
		return nil
	}
	t := *p.deliveryTime
	return &t
}

// IsDispatched reports whether a delivery time has been recorded.
func (p *Parcel) IsDispatched() bool {
	return p.deliveryTime != nil
}

// SetDeliveryTime records the delivery time, rounded to 2 decimal places.
// It succeeds at most once per parcel.
func (p *Parcel) SetDeliveryTime(hours float64) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.deliveryTime != nil {
		return ErrDeliveryTimeAlreadySet
	}
	if !isNonNegative(hours) {
		return ErrDeliveryTimeIsInvalid
	}

	rounded := kernel.RoundHours(hours)
	p.deliveryTime = &rounded
	return nil
}

func (p *Parcel) setID(id string) error {
	if id == "" {
		return ErrIDIsRequired
	}

	p.id = id
	return nil
}

func (p *Parcel) setWeight(weight float64) error {
	if !isPositive(weight) {
		return ErrWeightIsInvalid
	}

	p.weight = weight
	return nil
}

func (p *Parcel) setDistance(distance float64) error {
	if !isPositive(distance) {
		return ErrDistanceIsInvalid
	}

	p.distance = distance
	return nil
}

// isPositive is false for NaN and the infinities.
func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func isNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
