package batch

import (
	"fmt"

	"fleetdelivery/internal/pkg/errs"
)

// Status is the lifecycle state of a batch.
//
//	Created ──> Scheduled
//	   └──────> Failed
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	// Created batches wait in the queue for the scheduling job.
	Created
	// Scheduled batches carry costs and delivery times. Final.
	Scheduled
	// Failed batches could not be scheduled and leave the queue. Final.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Scheduled: "Scheduled",
		Failed:    "Failed",
	}
}

// Validate checks that s is a known non-Unknown status.
func (s Status) Validate() error {
	if s != Created && s != Scheduled && s != Failed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Schedule transitions Created to Scheduled.
func (s Status) Schedule() (Status, error) {
	if s != Created {
		return 0, fmt.Errorf("%w: status is %s", ErrBatchAlreadyScheduled, s)
	}
	return Scheduled, nil
}

// Fail transitions Created to Failed.
func (s Status) Fail() (Status, error) {
	if s != Created {
		return 0, fmt.Errorf("%w: status is %s", ErrBatchAlreadyScheduled, s)
	}
	return Failed, nil
}

// StatusFromString parses the persisted name of a status.
func StatusFromString(name string) (Status, error) {
	for s, str := range getStatusStrings() {
		if str == name && s != Unknown {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}
