// Package stop provides the route stop aggregate of the dispatch system: the placement of an
// order within a route's ordered list of stops.
//
// The package includes:
//   - Stop: The aggregate keyed by (route, order) carrying a 1-based sequence and delivery details
//   - Details: The payload of a stop (ETA/ETD, delivery status, proof of delivery, notes)
//   - DeliveryStatus: The delivery state of a stop
//   - Change, Plan and Range: The vocabulary used to describe a resequencing of a route
//
// Key business rules:
//   - Within a route, sequences always form exactly {1..N} between transactions
//   - A stop's sequence only changes through append, insert, move and remove
//   - Updating details never touches the sequence
//
// Resequencing arithmetic lives in the services package; this package only validates and
// carries the values.
package stop
