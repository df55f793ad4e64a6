package mover

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrMoverIsNotConstructed is returned when using an improperly initialized Mover.
var ErrMoverIsNotConstructed = errors.New("Mover must be created via RestoreMover constructor")

// Mover is the read-only profile of a carrier, owned by the user-management
// collaborator and consumed here for route planning: weekly availability
// windows, remaining capacity, and the accumulated earnings ledger.
//
// The dispatch engine never mutates movers; there is deliberately no NewMover,
// only reconstruction from the store.
type Mover struct {
	id           kernel.UUID
	availability WeeklyAvailability
	capacity     int
	credits      kernel.Money
	guard        guard.ConstructorGuard
}

// RestoreMover reconstructs a mover profile from persistence.
func RestoreMover(
	id kernel.UUID,
	availability WeeklyAvailability,
	capacity int,
	credits kernel.Money,
) (*Mover, error) {
	m := &Mover{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setAvailability(availability),
		m.setCapacity(capacity),
		m.setCredits(credits),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate ensures the Mover was constructed via RestoreMover.
func (m *Mover) Validate() error {
	if m == nil {
		return ErrMoverIsNotConstructed
	}
	return m.guard.Validate(ErrMoverIsNotConstructed)
}

// ID returns the mover's unique identifier.
func (m *Mover) ID() kernel.UUID { return m.id }

// Availability returns the declared weekly availability windows.
func (m *Mover) Availability() WeeklyAvailability { return m.availability }

// Capacity returns the mover's current carrying capacity.
func (m *Mover) Capacity() int { return m.capacity }

// Credits returns the accumulated earnings ledger.
func (m *Mover) Credits() kernel.Money { return m.credits }

func (m *Mover) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Mover) setAvailability(availability WeeklyAvailability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	m.availability = availability
	return nil
}

func (m *Mover) setCapacity(capacity int) error {
	if capacity < 0 {
		return errs.NewValueIsInvalidError("capacity")
	}
	m.capacity = capacity
	return nil
}

func (m *Mover) setCredits(credits kernel.Money) error {
	if credits < 0 {
		return errs.NewValueIsInvalidError("credits")
	}
	m.credits = credits
	return nil
}
