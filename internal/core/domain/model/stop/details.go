package stop

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	MaxProofPhotoURLLength = 300
	MaxNotesLength         = 500
)

// ErrDetailsAreNotConstructed is returned when Details were not created through NewDetails
// or PendingDetails.
var ErrDetailsAreNotConstructed = errs.NewValueIsRequiredError(
	"details must be created via NewDetails or PendingDetails constructors")

// Details is the payload of a stop. The sequencing operations store and return it as-is.
type Details struct { //nolint:recvcheck //using for validation
	eta           *time.Time
	etd           *time.Time
	status        DeliveryStatus
	proofPhotoURL string
	notes         string

	guard guard.ConstructorGuard
}

// NewDetails validates and builds a stop payload.
//
// Rules:
//   - status must be valid
//   - when both are set, etd must not precede eta
//   - proofPhotoURL is at most 300 characters, notes at most 500
func NewDetails(eta, etd *time.Time, status DeliveryStatus, proofPhotoURL, notes string) (Details, error) {
	d := Details{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setWindow(eta, etd),
		d.setStatus(status),
		d.setProofPhotoURL(proofPhotoURL),
		d.setNotes(notes),
	); err != nil {
		return Details{}, err
	}

	return d, nil
}

// PendingDetails returns the payload of a freshly planned stop.
func PendingDetails() Details {
	return Details{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}
}

func (d Details) Validate() error {
	return d.guard.Validate(ErrDetailsAreNotConstructed)
}

// ETA returns a copy of the estimated arrival time, nil when not planned.
func (d Details) ETA() *time.Time {
	return copyTime(d.eta)
}

// ETD returns a copy of the estimated departure time, nil when not planned.
func (d Details) ETD() *time.Time {
	return copyTime(d.etd)
}

func (d Details) Status() DeliveryStatus {
	return d.status
}

func (d Details) ProofPhotoURL() string {
	return d.proofPhotoURL
}

func (d Details) Notes() string {
	return d.notes
}

func (d *Details) setWindow(eta, etd *time.Time) error {
	if eta != nil && etd != nil && etd.Before(*eta) {
		return errs.NewValueIsInvalidErrorWithCause(
			"etd is invalid",
			fmt.Errorf("%s is before eta %s", etd.Format(time.RFC3339), eta.Format(time.RFC3339)),
		)
	}
	d.eta = copyTime(eta)
	d.etd = copyTime(etd)
	return nil
}

func (d *Details) setStatus(status DeliveryStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Details) setProofPhotoURL(url string) error {
	if n := utf8.RuneCountInString(url); n > MaxProofPhotoURLLength {
		return errs.NewValueIsOutOfRangeError("proof photo url length", n, 0, MaxProofPhotoURLLength)
	}
	d.proofPhotoURL = url
	return nil
}

func (d *Details) setNotes(notes string) error {
	if n := utf8.RuneCountInString(notes); n > MaxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", n, 0, MaxNotesLength)
	}
	d.notes = notes
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
