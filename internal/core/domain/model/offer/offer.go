// Package offer holds the discount offers that pricing can apply to a
// parcel, each gated by weight and distance criteria.
package offer

import (
	"errors"
	"fmt"

	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var (
	ErrCodeIsRequired        = errs.NewValueIsRequiredError("offer code")
	ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer constructor")
	ErrDuplicateCode         = errors.New("duplicate offer code")
	ErrRangeIsInvalid        = errs.NewValueIsInvalidErrorWithCause("range", errors.New("min must not exceed max"))
)

// Range is an interval over a parcel attribute. Min is always inclusive;
// Max is inclusive unless the range was built with HalfOpen.
type Range struct {
	min          float64
	max          float64
	maxExclusive bool
}

// Closed returns [minValue, maxValue].
func Closed(minValue, maxValue float64) Range {
	return Range{min: minValue, max: maxValue}
}

// HalfOpen returns [minValue, maxValue).
func HalfOpen(minValue, maxValue float64) Range {
	return Range{min: minValue, max: maxValue, maxExclusive: true}
}

func (r Range) Min() float64       { return r.min }
func (r Range) Max() float64       { return r.max }
func (r Range) MaxExclusive() bool { return r.maxExclusive }

// Contains reports whether v lies in the range.
func (r Range) Contains(v float64) bool {
	if v < r.min {
		return false
	}
	if r.maxExclusive {
		return v < r.max
	}
	return v <= r.max
}

func (r Range) validate() error {
	if r.min > r.max {
		return ErrRangeIsInvalid
	}
	return nil
}

// Offer is a discount rate that applies when both the parcel weight and the
// parcel distance fall inside the offer's ranges.
type Offer struct {
	code     string
	rate     float64
	weight   Range
	distance Range

	guard guard.ConstructorGuard
}

// NewOffer validates and returns an offer. The rate is a fraction in [0, 1).
func NewOffer(code string, rate float64, weight, distance Range) (Offer, error) {
	var errList []error
	if code == "" {
		errList = append(errList, ErrCodeIsRequired)
	}
	if !(rate >= 0 && rate < 1) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("discount rate", rate, 0, 1))
	}
	if err := weight.validate(); err != nil {
		errList = append(errList, fmt.Errorf("weight: %w", err))
	}
	if err := distance.validate(); err != nil {
		errList = append(errList, fmt.Errorf("distance: %w", err))
	}
	if err := errors.Join(errList...); err != nil {
		return Offer{}, err
	}

	return Offer{
		code:     code,
		rate:     rate,
		weight:   weight,
		distance: distance,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the offer was built by NewOffer.
func (o Offer) Validate() error {
	return o.guard.Validate(ErrOfferIsNotConstructed)
}

func (o Offer) Code() string    { return o.code }
func (o Offer) Rate() float64   { return o.rate }
func (o Offer) Weight() Range   { return o.weight }
func (o Offer) Distance() Range { return o.distance }

// Applies reports whether a parcel of the given weight and distance meets
// the offer criteria.
func (o Offer) Applies(weight, distance float64) bool {
	return o.weight.Contains(weight) && o.distance.Contains(distance)
}
