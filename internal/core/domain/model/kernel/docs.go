// Package kernel provides the value objects shared by the delivery model:
//   - UUID: identity of a scheduling batch, wrapping github.com/google/uuid
//   - timeline helpers: travel time and the two-decimal rounding applied to
//     reported delivery times
package kernel
