package stop

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// DeliveryStatus is the delivery state of a stop. It is persisted by name, so renaming a
// value is a schema change.
//
// The sequencing operations carry the status through without reading it.
type DeliveryStatus int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized DeliveryStatus values.
	Unknown DeliveryStatus = iota

	// Pending is the initial status of a stop: the order is planned but not yet on its way.
	Pending

	// EnRoute means the vehicle serving the route is heading to this stop.
	EnRoute

	// Delivered means the order was handed over.
	Delivered

	// Failed means the delivery attempt did not succeed.
	Failed
)

// MaxDeliveryStatusLength bounds the persisted name.
const MaxDeliveryStatusLength = 20

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		EnRoute:   "EnRoute",
		Delivered: "Delivered",
		Failed:    "Failed",
	}
}

func getValidDeliveryStatusStrings() map[DeliveryStatus]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[DeliveryStatus]string{
		Pending:   "Pending",
		EnRoute:   "EnRoute",
		Delivered: "Delivered",
		Failed:    "Failed",
	}
}

// ParseDeliveryStatus resolves a persisted or transmitted status name.
// Unknown names, including "Unknown", are rejected.
func ParseDeliveryStatus(name string) (DeliveryStatus, error) {
	for status, str := range getValidDeliveryStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery status is invalid",
		fmt.Errorf("%q is not a known delivery status", name),
	)
}

// Validate checks that s is one of Pending, EnRoute, Delivered or Failed.
func (s DeliveryStatus) Validate() error {
	if _, ok := getValidDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status; "Unknown" for invalid values.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether no further delivery attempt is expected for the stop.
func (s DeliveryStatus) IsFinal() bool {
	return s == Delivered || s == Failed
}
