// Package parcel holds the Parcel entity: one package of a delivery batch,
// with the weight and distance the scheduler plans against, the cost fields
// filled in by pricing, and the delivery time written once by dispatch.
package parcel
