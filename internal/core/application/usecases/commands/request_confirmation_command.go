package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRequestConfirmationCommandIsNotConstructed = errors.New(
	"RequestConfirmationCommand must be created via NewRequestConfirmationCommand constructor",
)

// RequestConfirmationCommand is the assigned mover's "I am at the location"
// signal, asking the student to confirm the handoff.
type RequestConfirmationCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	moverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestConfirmationCommand creates a command announcing the mover's arrival.
func NewRequestConfirmationCommand(jobID, moverID kernel.UUID) (RequestConfirmationCommand, error) {
	cmd := RequestConfirmationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setMoverID(moverID),
	); err != nil {
		return RequestConfirmationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestConfirmationCommand) Validate() error {
	return c.guard.Validate(ErrRequestConfirmationCommandIsNotConstructed)
}

// JobID returns the job the mover arrived for.
func (c RequestConfirmationCommand) JobID() kernel.UUID { return c.jobID }

// MoverID returns the announcing mover.
func (c RequestConfirmationCommand) MoverID() kernel.UUID { return c.moverID }

func (c *RequestConfirmationCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}
	c.jobID = jobID
	return nil
}

func (c *RequestConfirmationCommand) setMoverID(moverID kernel.UUID) error {
	if err := moverID.Validate(); err != nil {
		return err
	}
	c.moverID = moverID
	return nil
}
