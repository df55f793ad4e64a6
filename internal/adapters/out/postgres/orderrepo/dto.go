// Package orderrepo persists order aggregates with GORM. The two
// store-level uniqueness rules live here as partial unique indexes: at most
// one pending order per student, and at most one order per idempotency key.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate.
type OrderDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StudentID uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_orders_one_pending,where:status = 'Pending'"`
	MoverID   *uuid.UUID `gorm:"type:uuid;index"`
	Status    string     `gorm:"index"`

	Volume     int
	PriceCents int64

	Student   AddressDTO `gorm:"embedded;embeddedPrefix:student_"`
	Warehouse AddressDTO `gorm:"embedded;embeddedPrefix:warehouse_"`

	// Return address is set once the student schedules the return leg.
	ReturnLat  *float64
	ReturnLon  *float64
	ReturnText *string

	PickupTime time.Time
	ReturnTime time.Time

	// IdempotencyKey is null when the client sent none; nulls never
	// collide in a Postgres unique index.
	IdempotencyKey   *string `gorm:"uniqueIndex"`
	PaymentReference string
}

// TableName overrides GORM's default naming to "orders".
func (OrderDTO) TableName() string {
	return "orders"
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

func fromDomain(aggregate *order.Order) OrderDTO {
	var moverID *uuid.UUID
	if id := aggregate.Mover(); id != nil {
		raw := id.Bytes()
		moverID = &raw
	}

	var idempotencyKey *string
	if key := aggregate.IdempotencyKey(); key != "" {
		idempotencyKey = &key
	}

	dto := OrderDTO{
		ID:               aggregate.ID().Bytes(),
		StudentID:        aggregate.StudentID().Bytes(),
		MoverID:          moverID,
		Status:           aggregate.Status().String(),
		Volume:           aggregate.Volume(),
		PriceCents:       aggregate.Price().Cents(),
		Student:          addressFromDomain(aggregate.StudentAddress()),
		Warehouse:        addressFromDomain(aggregate.WarehouseAddress()),
		PickupTime:       aggregate.PickupTime(),
		ReturnTime:       aggregate.ReturnTime(),
		IdempotencyKey:   idempotencyKey,
		PaymentReference: aggregate.PaymentReference(),
	}

	if returnAddress := aggregate.ReturnAddress(); returnAddress != nil {
		lat := returnAddress.Point().Lat()
		lon := returnAddress.Point().Lon()
		text := returnAddress.Text()
		dto.ReturnLat, dto.ReturnLon, dto.ReturnText = &lat, &lon, &text
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceCents)
	if err != nil {
		return nil, err
	}

	studentAddress, err := addressToDomain(dto.Student)
	if err != nil {
		return nil, err
	}

	warehouseAddress, err := addressToDomain(dto.Warehouse)
	if err != nil {
		return nil, err
	}

	var returnAddress *kernel.Address
	if dto.ReturnLat != nil && dto.ReturnLon != nil && dto.ReturnText != nil {
		address, addrErr := addressToDomain(AddressDTO{
			Lat:  *dto.ReturnLat,
			Lon:  *dto.ReturnLon,
			Text: *dto.ReturnText,
		})
		if addrErr != nil {
			return nil, addrErr
		}
		returnAddress = &address
	}

	var idempotencyKey string
	if dto.IdempotencyKey != nil {
		idempotencyKey = *dto.IdempotencyKey
	}

	return order.RestoreOrder(
		id,
		studentID,
		moverID,
		status,
		dto.Volume,
		price,
		studentAddress,
		warehouseAddress,
		returnAddress,
		dto.PickupTime,
		dto.ReturnTime,
		idempotencyKey,
		dto.PaymentReference,
	)
}
