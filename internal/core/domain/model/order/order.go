package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrVolumeIsInvalid is returned when an order volume is not positive.
	ErrVolumeIsInvalid = errs.NewValueIsInvalidError("volume")

	// ErrReturnBeforePickup is returned when the expected return time does
	// not come after the pickup time.
	ErrReturnBeforePickup = errs.NewValueIsInvalidError("returnTime must be after pickupTime")
)

// Order represents a student's end-to-end storage engagement, spanning
// pickup, storage, and the eventual return. It is the aggregate root the
// jobs hang off.
//
// Invariants:
//   - at most one non-terminal order per student (enforced by a partial
//     uniqueness constraint in the store, scoped to Pending)
//   - at most one order per idempotency key when one is supplied
//   - status transitions follow the table in status.go and are driven
//     exclusively by job status changes
type Order struct {
	id               kernel.UUID
	studentID        kernel.UUID
	moverID          *kernel.UUID
	status           Status
	volume           int
	price            kernel.Money
	studentAddress   kernel.Address
	warehouseAddress kernel.Address
	returnAddress    *kernel.Address
	pickupTime       time.Time
	returnTime       time.Time
	idempotencyKey   string
	paymentReference string
	guard            guard.ConstructorGuard
}

// NewOrder creates an Order in Pending status. idempotencyKey and
// paymentReference are optional and may be empty.
func NewOrder(
	id kernel.UUID,
	studentID kernel.UUID,
	volume int,
	price kernel.Money,
	studentAddress kernel.Address,
	warehouseAddress kernel.Address,
	pickupTime time.Time,
	returnTime time.Time,
	idempotencyKey string,
	paymentReference string,
) (*Order, error) {
	o := &Order{
		status:           StatusPending,
		idempotencyKey:   idempotencyKey,
		paymentReference: paymentReference,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setStudentID(studentID),
		o.setVolume(volume),
		o.setPrice(price),
		o.setAddresses(studentAddress, warehouseAddress),
		o.setSchedule(pickupTime, returnTime),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence with its full state.
func RestoreOrder(
	id kernel.UUID,
	studentID kernel.UUID,
	moverID *kernel.UUID,
	status Status,
	volume int,
	price kernel.Money,
	studentAddress kernel.Address,
	warehouseAddress kernel.Address,
	returnAddress *kernel.Address,
	pickupTime time.Time,
	returnTime time.Time,
	idempotencyKey string,
	paymentReference string,
) (*Order, error) {
	o, err := NewOrder(id, studentID, volume, price, studentAddress, warehouseAddress,
		pickupTime, returnTime, idempotencyKey, paymentReference)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if moverID != nil {
		if err = moverID.Validate(); err != nil {
			return nil, err
		}
	}

	if returnAddress != nil {
		if err = returnAddress.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.moverID = moverID
	o.returnAddress = returnAddress
	return o, nil
}

// Validate ensures the Order was constructed via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// StudentID returns the owning student's identifier.
func (o *Order) StudentID() kernel.UUID { return o.studentID }

// Mover returns the assigned mover's identifier, nil until the storage job
// is claimed.
func (o *Order) Mover() *kernel.UUID { return o.moverID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Volume returns the order's volume.
func (o *Order) Volume() int { return o.volume }

// Price returns the total agreed price.
func (o *Order) Price() kernel.Money { return o.price }

// StudentAddress returns the student's pickup address.
func (o *Order) StudentAddress() kernel.Address { return o.studentAddress }

// WarehouseAddress returns the warehouse address.
func (o *Order) WarehouseAddress() kernel.Address { return o.warehouseAddress }

// ReturnAddress returns the return delivery address, nil until scheduled.
func (o *Order) ReturnAddress() *kernel.Address { return o.returnAddress }

// PickupTime returns the scheduled storage pickup instant.
func (o *Order) PickupTime() time.Time { return o.pickupTime }

// ReturnTime returns the expected return instant.
func (o *Order) ReturnTime() time.Time { return o.returnTime }

// IdempotencyKey returns the client-supplied idempotency key, or "".
func (o *Order) IdempotencyKey() string { return o.idempotencyKey }

// PaymentReference returns the payment gateway reference, or "".
func (o *Order) PaymentReference() string { return o.paymentReference }

// IsActive reports whether the order is in a non-terminal status.
func (o *Order) IsActive() bool {
	return !o.status.IsTerminal()
}

// AssignMover records the mover that claimed the storage job and moves the
// order to Accepted.
func (o *Order) AssignMover(moverID kernel.UUID) error {
	if err := moverID.Validate(); err != nil {
		return err
	}

	next, err := o.status.TransitionTo(StatusAccepted)
	if err != nil {
		return err
	}

	o.status = next
	o.moverID = &moverID
	return nil
}

// ChangeStatus applies a job-driven status transition against the table.
func (o *Order) ChangeStatus(next Status) error {
	applied, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = applied
	return nil
}

// ScheduleReturn resolves the return address and instant at return-job
// creation time. The order must still be active.
func (o *Order) ScheduleReturn(address kernel.Address, at time.Time) error {
	if !o.IsActive() {
		return errs.NewInvalidTransitionError("order", o.status.String(), "ScheduleReturn")
	}

	if err := address.Validate(); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("returnTime")
	}
	if !at.After(o.pickupTime) {
		return ErrReturnBeforePickup
	}

	o.returnAddress = &address
	o.returnTime = at
	return nil
}

// Cancel transitions the order to Cancelled. Only legal from Pending; any
// other status yields an InvalidTransitionError the caller converts into a
// rejection message rather than a failure.
func (o *Order) Cancel() error {
	next, err := o.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStudentID(studentID kernel.UUID) error {
	if err := studentID.Validate(); err != nil {
		return err
	}
	o.studentID = studentID
	return nil
}

func (o *Order) setVolume(volume int) error {
	if volume <= 0 {
		return ErrVolumeIsInvalid
	}
	o.volume = volume
	return nil
}

func (o *Order) setPrice(price kernel.Money) error {
	if price <= 0 {
		return errs.NewValueIsInvalidError("price")
	}
	o.price = price
	return nil
}

func (o *Order) setAddresses(student, warehouse kernel.Address) error {
	if err := errors.Join(student.Validate(), warehouse.Validate()); err != nil {
		return err
	}
	o.studentAddress = student
	o.warehouseAddress = warehouse
	return nil
}

func (o *Order) setSchedule(pickupTime, returnTime time.Time) error {
	if pickupTime.IsZero() {
		return errs.NewValueIsRequiredError("pickupTime")
	}
	if returnTime.IsZero() {
		return errs.NewValueIsRequiredError("returnTime")
	}
	if !returnTime.After(pickupTime) {
		return ErrReturnBeforePickup
	}
	o.pickupTime = pickupTime
	o.returnTime = returnTime
	return nil
}
