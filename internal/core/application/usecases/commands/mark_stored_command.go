package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkStoredCommandIsNotConstructed = errors.New(
	"MarkStoredCommand must be created via NewMarkStoredCommand constructor",
)

// MarkStoredCommand is the assigned mover's report that the goods reached
// the warehouse.
type MarkStoredCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	moverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkStoredCommand creates a command marking the goods as stored.
func NewMarkStoredCommand(jobID, moverID kernel.UUID) (MarkStoredCommand, error) {
	cmd := MarkStoredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setMoverID(moverID),
	); err != nil {
		return MarkStoredCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkStoredCommand) Validate() error {
	return c.guard.Validate(ErrMarkStoredCommandIsNotConstructed)
}

// JobID returns the storage job.
func (c MarkStoredCommand) JobID() kernel.UUID { return c.jobID }

// MoverID returns the reporting mover.
func (c MarkStoredCommand) MoverID() kernel.UUID { return c.moverID }

func (c *MarkStoredCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}
	c.jobID = jobID
	return nil
}

func (c *MarkStoredCommand) setMoverID(moverID kernel.UUID) error {
	if err := moverID.Validate(); err != nil {
		return err
	}
	c.moverID = moverID
	return nil
}
