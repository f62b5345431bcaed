// Package stoprepo persists route stops with GORM. It maps the stop domain entity to the
// route_stops table and back.
package stoprepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"

	"github.com/google/uuid"
)

const (
	// TableName is the table holding route stops.
	TableName = "route_stops"

	// SequenceIndexName is the unique index on (route_id, stop_sequence).
	SequenceIndexName = "ux_route_stops_route_sequence"

	// PrimaryKeyName is the constraint name PostgreSQL assigns to the (route_id, order_id) key.
	PrimaryKeyName = TableName + "_pkey"
)

// StopDTO represents one row of route_stops.
// The composite primary key identifies the stop; the unique index keeps sequences distinct
// within a route.
type StopDTO struct {
	RouteID        uuid.UUID  `gorm:"column:route_id;type:uuid;primaryKey;index:ux_route_stops_route_sequence,unique,priority:1"`
	OrderID        uuid.UUID  `gorm:"column:order_id;type:uuid;primaryKey"`
	StopSequence   int        `gorm:"column:stop_sequence;not null;index:ux_route_stops_route_sequence,unique,priority:2"`
	ETA            *time.Time `gorm:"column:eta"`
	ETD            *time.Time `gorm:"column:etd"`
	DeliveryStatus string     `gorm:"column:delivery_status;size:20;not null"`
	ProofPhotoURL  string     `gorm:"column:proof_photo_url;size:300"`
	Notes          string     `gorm:"column:notes;size:500"`
}

// TableName overrides GORM's default naming convention.
func (StopDTO) TableName() string {
	return TableName
}

func fromDomain(s *stop.Stop) StopDTO {
	details := s.Details()

	return StopDTO{
		RouteID:        s.RouteID().Bytes(),
		OrderID:        s.OrderID().Bytes(),
		StopSequence:   s.Sequence(),
		ETA:            details.ETA(),
		ETD:            details.ETD(),
		DeliveryStatus: details.Status().String(),
		ProofPhotoURL:  details.ProofPhotoURL(),
		Notes:          details.Notes(),
	}
}

// detailsColumns lists what UpdateDetails writes. stop_sequence is deliberately absent.
func detailsColumns(dto StopDTO) map[string]any {
	return map[string]any{
		"eta":             dto.ETA,
		"etd":             dto.ETD,
		"delivery_status": dto.DeliveryStatus,
		"proof_photo_url": dto.ProofPhotoURL,
		"notes":           dto.Notes,
	}
}

// ToDomain rebuilds a stop from a row. It is exported for the query handlers, which read
// route_stops without a unit of work.
func ToDomain(dto StopDTO) (*stop.Stop, error) {
	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	status, err := stop.ParseDeliveryStatus(dto.DeliveryStatus)
	if err != nil {
		return nil, err
	}

	details, err := stop.NewDetails(dto.ETA, dto.ETD, status, dto.ProofPhotoURL, dto.Notes)
	if err != nil {
		return nil, err
	}

	return stop.RestoreStop(routeID, orderID, dto.StopSequence, details)
}

func toDomainList(dtos []StopDTO) ([]*stop.Stop, error) {
	stops := make([]*stop.Stop, 0, len(dtos))
	for _, dto := range dtos {
		s, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, nil
}
