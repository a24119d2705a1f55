// Package services provides the domain services that plan deliveries for a
// batch of parcels. They work across several entities and do not belong to a
// single aggregate.
//
// The package includes:
//   - TripSelector: picks the next vehicle load from the pending parcels
//   - TripDispatcher: hands a trip to the earliest free vehicle and records
//     delivery times
//   - DeliveryScheduler: runs selection and dispatch until every deliverable
//     parcel has a delivery time
//   - CostCalculator: prices a parcel against the offer catalog before it is
//     scheduled
//
// Trip selection follows three priorities in order: carry as many parcels as
// possible, then as much weight as possible, then keep the furthest stop as
// close as possible.
package services
