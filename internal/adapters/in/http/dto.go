package http

import (
	"fleetdelivery/internal/core/application/usecases/commands"
	"fleetdelivery/internal/core/application/usecases/queries"
	"fleetdelivery/internal/core/domain/model/batch"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Fleet struct {
	Count    int     `json:"count"`
	MaxLoad  float64 `json:"max_load"`
	MaxSpeed float64 `json:"max_speed"`
}

type Parcel struct {
	ID        string  `json:"id"`
	Weight    float64 `json:"weight"`
	Distance  float64 `json:"distance"`
	OfferCode string  `json:"offer_code,omitempty"`
}

// DeliveryRequest is shared by POST /estimates and POST /batches.
type DeliveryRequest struct {
	BaseCost float64  `json:"base_cost"`
	Fleet    Fleet    `json:"fleet"`
	Parcels  []Parcel `json:"parcels"`
}

func (r DeliveryRequest) parcelInputs() []batch.ParcelInput {
	inputs := make([]batch.ParcelInput, len(r.Parcels))
	for i, p := range r.Parcels {
		inputs[i] = batch.ParcelInput{
			ID:        p.ID,
			Weight:    p.Weight,
			Distance:  p.Distance,
			OfferCode: p.OfferCode,
		}
	}
	return inputs
}

type CreatedBatch struct {
	ID           string   `json:"id"`
	SkipMessages []string `json:"skip_messages"`
}

type ParcelState struct {
	ID           string   `json:"id"`
	Weight       float64  `json:"weight"`
	Distance     float64  `json:"distance"`
	OfferCode    string   `json:"offer_code,omitempty"`
	Discount     float64  `json:"discount"`
	TotalCost    float64  `json:"total_cost"`
	DeliveryTime *float64 `json:"delivery_time"`
}

type BatchState struct {
	ID                    string        `json:"id"`
	Status                string        `json:"status"`
	Failure               string        `json:"failure,omitempty"`
	BaseCost              float64       `json:"base_cost"`
	Fleet                 Fleet         `json:"fleet"`
	Parcels               []ParcelState `json:"parcels"`
	SkipMessages          []string      `json:"skip_messages"`
	OversizeIDs           []string      `json:"oversize_ids"`
	VehicleAvailableTimes []float64     `json:"vehicle_available_times"`
}

func batchStateFromQuery(resp *queries.GetBatchQueryResponse) BatchState {
	state := BatchState{
		ID:       resp.ID.String(),
		Status:   resp.Status,
		Failure:  resp.Failure,
		BaseCost: resp.BaseCost,
		Fleet: Fleet{
			Count:    resp.VehicleCount,
			MaxLoad:  resp.MaxLoad,
			MaxSpeed: resp.MaxSpeed,
		},
		Parcels:               make([]ParcelState, len(resp.Parcels)),
		SkipMessages:          nonNil(resp.SkipMessages),
		OversizeIDs:           nonNil(resp.OversizeIDs),
		VehicleAvailableTimes: nonNil(resp.VehicleAvailableTimes),
	}
	for i, p := range resp.Parcels {
		state.Parcels[i] = ParcelState(p)
	}
	return state
}

func estimateBody(result commands.EstimateDeliveryResult) commands.EstimateDeliveryResult {
	result.Parcels = nonNil(result.Parcels)
	result.OversizeIDs = nonNil(result.OversizeIDs)
	result.SkipMessages = nonNil(result.SkipMessages)
	result.VehicleAvailableTimes = nonNil(result.VehicleAvailableTimes)
	return result
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
