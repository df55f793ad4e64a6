package job

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created
	// through NewJob or RestoreJob.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")

	// ErrScheduledTimeIsRequired is returned when a job has no scheduled time.
	ErrScheduledTimeIsRequired = errs.NewValueIsRequiredError("scheduledTime")

	// ErrVolumeIsInvalid is returned when a job volume is not positive.
	ErrVolumeIsInvalid = errs.NewValueIsInvalidError("volume")
)

// Job is a unit of physical work derived from an Order: either the initial
// move into storage or the eventual return delivery. It is an aggregate root
// whose lifecycle is governed by the transition table in status.go.
//
// Invariants:
//   - moverID is set exactly when the job has left Available through a claim
//   - a job transitions to Accepted at most once and only from Available
//   - student confirmation, not mover assertion, advances handoff states
type Job struct {
	id             kernel.UUID
	orderID        kernel.UUID
	studentID      kernel.UUID
	moverID        *kernel.UUID
	jobType        Type
	status         Status
	volume         int
	price          kernel.Money
	pickupAddress  kernel.Address
	dropoffAddress kernel.Address
	scheduledTime  time.Time
	guard          guard.ConstructorGuard
}

// NewJob creates a Job in Available status with no mover assigned.
// Price is this job's share of the order price, already fee-adjusted by the
// caller for return jobs.
func NewJob(
	id kernel.UUID,
	orderID kernel.UUID,
	studentID kernel.UUID,
	jobType Type,
	volume int,
	price kernel.Money,
	pickupAddress kernel.Address,
	dropoffAddress kernel.Address,
	scheduledTime time.Time,
) (*Job, error) {
	j := &Job{
		status: StatusAvailable,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setOrderID(orderID),
		j.setStudentID(studentID),
		j.setType(jobType),
		j.setVolume(volume),
		j.setPrice(price),
		j.setAddresses(pickupAddress, dropoffAddress),
		j.setScheduledTime(scheduledTime),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// RestoreJob reconstructs a Job from persistence, including its status and
// mover assignment. It re-checks the mover/status consistency rule so corrupt
// rows cannot re-enter the domain.
func RestoreJob(
	id kernel.UUID,
	orderID kernel.UUID,
	studentID kernel.UUID,
	moverID *kernel.UUID,
	jobType Type,
	status Status,
	volume int,
	price kernel.Money,
	pickupAddress kernel.Address,
	dropoffAddress kernel.Address,
	scheduledTime time.Time,
) (*Job, error) {
	j, err := NewJob(id, orderID, studentID, jobType, volume, price, pickupAddress, dropoffAddress, scheduledTime)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if err = validateMoverConsistency(status, moverID); err != nil {
		return nil, err
	}

	if moverID != nil {
		if err = moverID.Validate(); err != nil {
			return nil, err
		}
	}

	j.status = status
	j.moverID = moverID
	return j, nil
}

// validateMoverConsistency enforces that moverID is present exactly for
// statuses a claim has already passed through. Cancelled jobs may carry a
// mover or not, depending on when the cancellation happened.
func validateMoverConsistency(status Status, moverID *kernel.UUID) error {
	switch status {
	case StatusAvailable:
		if moverID != nil {
			return errs.NewValueIsInvalidError("moverId must be empty for an available job")
		}
	case StatusAccepted, StatusAwaitingStudentConfirmation, StatusPickedUp, StatusInStorage, StatusCompleted:
		if moverID == nil {
			return errs.NewValueIsRequiredError("moverId")
		}
	case StatusCancelled, StatusUnknown:
	}
	return nil
}

// Validate ensures the Job was constructed via NewJob or RestoreJob.
func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

// ID returns the job's unique identifier.
func (j *Job) ID() kernel.UUID { return j.id }

// OrderID returns the identifier of the parent order.
func (j *Job) OrderID() kernel.UUID { return j.orderID }

// StudentID returns the owning student's identifier.
func (j *Job) StudentID() kernel.UUID { return j.studentID }

// Mover returns the assigned mover's identifier, nil while unclaimed.
func (j *Job) Mover() *kernel.UUID { return j.moverID }

// JobType returns Storage or Return.
func (j *Job) JobType() Type { return j.jobType }

// Status returns the current lifecycle status.
func (j *Job) Status() Status { return j.status }

// Volume returns the job's volume.
func (j *Job) Volume() int { return j.volume }

// Price returns this job's share of the order price.
func (j *Job) Price() kernel.Money { return j.price }

// PickupAddress returns where the mover collects the goods.
func (j *Job) PickupAddress() kernel.Address { return j.pickupAddress }

// DropoffAddress returns where the mover delivers the goods.
func (j *Job) DropoffAddress() kernel.Address { return j.dropoffAddress }

// ScheduledTime returns when the pickup is scheduled.
func (j *Job) ScheduledTime() time.Time { return j.scheduledTime }

// Claim transitions the job from Available to Accepted and assigns the
// mover. This is the in-memory form of the single-claim rule; under
// concurrency the persistence layer enforces the same rule with one atomic
// conditional update, and a failed precondition surfaces as a ConflictError
// there rather than here.
func (j *Job) Claim(moverID kernel.UUID) error {
	if err := moverID.Validate(); err != nil {
		return err
	}

	next, err := j.status.Apply(j.jobType, EventClaim)
	if err != nil {
		return errs.NewConflictErrorWithCause("job", "already accepted", err)
	}

	j.status = next
	j.moverID = &moverID
	return nil
}

// RequestConfirmation records the assigned mover's arrival at the handoff
// location and moves the job to AwaitingStudentConfirmation. The event is
// RequestPickup for storage jobs and RequestDelivery for return jobs.
// Only the assigned mover may call this.
func (j *Job) RequestConfirmation(moverID kernel.UUID) error {
	if err := j.authorizeMover(moverID, "request confirmation"); err != nil {
		return err
	}

	event := EventRequestPickup
	if j.jobType == TypeReturn {
		event = EventRequestDelivery
	}

	next, err := j.status.Apply(j.jobType, event)
	if err != nil {
		return err
	}

	j.status = next
	return nil
}

// ConfirmHandoff records the owning student's confirmation of the handoff.
// Storage jobs advance to PickedUp; return jobs complete. The mover cannot
// unilaterally assert completion; this confirmation is the trust mechanism.
func (j *Job) ConfirmHandoff(studentID kernel.UUID) error {
	if !j.studentID.IsEqual(studentID) {
		return errs.NewUnauthorizedError(studentID.String(), "confirm handoff for job "+j.id.String())
	}

	event := EventConfirmPickup
	if j.jobType == TypeReturn {
		event = EventConfirmDelivery
	}

	next, err := j.status.Apply(j.jobType, event)
	if err != nil {
		return err
	}

	j.status = next
	return nil
}

// MarkStored records that the goods reached the warehouse (storage jobs).
// Only the assigned mover may call this.
func (j *Job) MarkStored(moverID kernel.UUID) error {
	if err := j.authorizeMover(moverID, "mark stored"); err != nil {
		return err
	}

	next, err := j.status.Apply(j.jobType, EventMarkStored)
	if err != nil {
		return err
	}

	j.status = next
	return nil
}

// Complete closes a storage job when its goods leave the warehouse for the
// return trip.
func (j *Job) Complete() error {
	next, err := j.status.Apply(j.jobType, EventComplete)
	if err != nil {
		return err
	}

	j.status = next
	return nil
}

// Cancel transitions the job to Cancelled from any non-terminal status,
// typically through the order-cancellation cascade.
func (j *Job) Cancel() error {
	next, err := j.status.Apply(j.jobType, EventCancel)
	if err != nil {
		return err
	}

	j.status = next
	return nil
}

func (j *Job) authorizeMover(moverID kernel.UUID, action string) error {
	if j.moverID == nil || !j.moverID.IsEqual(moverID) {
		return errs.NewUnauthorizedError(moverID.String(), action+" for job "+j.id.String())
	}
	return nil
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	j.orderID = orderID
	return nil
}

func (j *Job) setStudentID(studentID kernel.UUID) error {
	if err := studentID.Validate(); err != nil {
		return err
	}
	j.studentID = studentID
	return nil
}

func (j *Job) setType(jobType Type) error {
	if err := jobType.Validate(); err != nil {
		return err
	}
	j.jobType = jobType
	return nil
}

func (j *Job) setVolume(volume int) error {
	if volume <= 0 {
		return ErrVolumeIsInvalid
	}
	j.volume = volume
	return nil
}

func (j *Job) setPrice(price kernel.Money) error {
	if price < 0 {
		return errs.NewValueIsInvalidError("price")
	}
	j.price = price
	return nil
}

func (j *Job) setAddresses(pickup, dropoff kernel.Address) error {
	if err := errors.Join(pickup.Validate(), dropoff.Validate()); err != nil {
		return err
	}
	j.pickupAddress = pickup
	j.dropoffAddress = dropoff
	return nil
}

func (j *Job) setScheduledTime(t time.Time) error {
	if t.IsZero() {
		return ErrScheduledTimeIsRequired
	}
	j.scheduledTime = t
	return nil
}
