package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderVolumeIsInvalid = errors.New("volume must be greater than 0")
	ErrOrderPriceIsInvalid  = errors.New("total price must be greater than 0")
)

// CreateOrderCommand represents a student's request to open a storage
// engagement: what to store, where to collect it, and the pickup/return
// schedule. The warehouse side of the route is resolved by the handler.
//
// The idempotency key, when present, makes the command safe to replay:
// repeated submissions return the order created by the first one.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	studentID        kernel.UUID
	volume           int
	totalPrice       kernel.Money
	studentAddress   kernel.Address
	pickupTime       time.Time
	returnTime       time.Time
	idempotencyKey   string
	paymentReference string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a new storage order.
// idempotencyKey and paymentReference are optional and may be empty.
func NewCreateOrderCommand(
	studentID kernel.UUID,
	volume int,
	totalPrice kernel.Money,
	studentAddress kernel.Address,
	pickupTime time.Time,
	returnTime time.Time,
	idempotencyKey string,
	paymentReference string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		idempotencyKey:   idempotencyKey,
		paymentReference: paymentReference,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStudentID(studentID),
		cmd.setVolume(volume),
		cmd.setTotalPrice(totalPrice),
		cmd.setStudentAddress(studentAddress),
		cmd.setSchedule(pickupTime, returnTime),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// StudentID returns the requesting student's identifier.
func (c CreateOrderCommand) StudentID() kernel.UUID { return c.studentID }

// Volume returns the storage volume in cubic units.
func (c CreateOrderCommand) Volume() int { return c.volume }

// TotalPrice returns the agreed total price for the engagement.
func (c CreateOrderCommand) TotalPrice() kernel.Money { return c.totalPrice }

// StudentAddress returns the pickup address.
func (c CreateOrderCommand) StudentAddress() kernel.Address { return c.studentAddress }

// PickupTime returns when the goods should be collected.
func (c CreateOrderCommand) PickupTime() time.Time { return c.pickupTime }

// ReturnTime returns the expected return instant.
func (c CreateOrderCommand) ReturnTime() time.Time { return c.returnTime }

// IdempotencyKey returns the client-supplied replay token, empty if none.
func (c CreateOrderCommand) IdempotencyKey() string { return c.idempotencyKey }

// PaymentReference returns the gateway payment reference, empty if none.
func (c CreateOrderCommand) PaymentReference() string { return c.paymentReference }

func (c *CreateOrderCommand) setStudentID(studentID kernel.UUID) error {
	if err := studentID.Validate(); err != nil {
		return err
	}
	c.studentID = studentID
	return nil
}

func (c *CreateOrderCommand) setVolume(volume int) error {
	if volume <= 0 {
		return ErrOrderVolumeIsInvalid
	}
	c.volume = volume
	return nil
}

func (c *CreateOrderCommand) setTotalPrice(totalPrice kernel.Money) error {
	if totalPrice <= 0 {
		return ErrOrderPriceIsInvalid
	}
	c.totalPrice = totalPrice
	return nil
}

func (c *CreateOrderCommand) setStudentAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.studentAddress = address
	return nil
}

func (c *CreateOrderCommand) setSchedule(pickupTime, returnTime time.Time) error {
	if pickupTime.IsZero() {
		return errs.NewValueIsRequiredError("pickupTime")
	}
	if returnTime.IsZero() {
		return errs.NewValueIsRequiredError("returnTime")
	}
	if !returnTime.After(pickupTime) {
		return errs.NewValueIsInvalidError("returnTime")
	}
	c.pickupTime = pickupTime
	c.returnTime = returnTime
	return nil
}
