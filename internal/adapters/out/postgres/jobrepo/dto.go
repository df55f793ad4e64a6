// Package jobrepo persists job aggregates with GORM. The atomic
// single-claim update and the at-most-one-active-return-job index live
// here.
package jobrepo

import (
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO is the database representation of a job aggregate.
type JobDTO struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// The partial unique index tolerates the storage job sharing the
	// order id: it only covers non-cancelled return rows.
	OrderID   uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_jobs_one_active_return,where:job_type = 'Return' AND status <> 'Cancelled'"`
	StudentID uuid.UUID  `gorm:"type:uuid;index"`
	MoverID   *uuid.UUID `gorm:"type:uuid;index"`

	JobType string
	Status  string `gorm:"index"`

	Volume     int
	PriceCents int64

	Pickup  AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff AddressDTO `gorm:"embedded;embeddedPrefix:dropoff_"`

	ScheduledTime time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to "jobs".
func (JobDTO) TableName() string {
	return "jobs"
}

// AddressDTO is an embedded point-plus-text address.
type AddressDTO struct {
	Lat  float64
	Lon  float64
	Text string
}

func addressFromDomain(address kernel.Address) AddressDTO {
	return AddressDTO{
		Lat:  address.Point().Lat(),
		Lon:  address.Point().Lon(),
		Text: address.Text(),
	}
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(point, dto.Text)
}

func fromDomain(aggregate *job.Job) JobDTO {
	var moverID *uuid.UUID
	if id := aggregate.Mover(); id != nil {
		raw := id.Bytes()
		moverID = &raw
	}

	return JobDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		StudentID:     aggregate.StudentID().Bytes(),
		MoverID:       moverID,
		JobType:       aggregate.JobType().String(),
		Status:        aggregate.Status().String(),
		Volume:        aggregate.Volume(),
		PriceCents:    aggregate.Price().Cents(),
		Pickup:        addressFromDomain(aggregate.PickupAddress()),
		Dropoff:       addressFromDomain(aggregate.DropoffAddress()),
		ScheduledTime: aggregate.ScheduledTime(),
	}
}

func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	studentID, err := kernel.UUIDFromBytes(dto.StudentID[:])
	if err != nil {
		return nil, err
	}

	var moverID *kernel.UUID
	if dto.MoverID != nil {
		mID, moverErr := kernel.UUIDFromBytes((*dto.MoverID)[:])
		if moverErr != nil {
			return nil, moverErr
		}
		moverID = &mID
	}

	jobType, err := job.TypeFromString(dto.JobType)
	if err != nil {
		return nil, err
	}

	status, err := job.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceCents)
	if err != nil {
		return nil, err
	}

	pickup, err := addressToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}

	dropoff, err := addressToDomain(dto.Dropoff)
	if err != nil {
		return nil, err
	}

	return job.RestoreJob(
		id,
		orderID,
		studentID,
		moverID,
		jobType,
		status,
		dto.Volume,
		price,
		pickup,
		dropoff,
		dto.ScheduledTime,
	)
}
