package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrClaimJobCommandIsNotConstructed = errors.New(
	"ClaimJobCommand must be created via NewClaimJobCommand constructor",
)

// ClaimJobCommand represents a mover's attempt to take an available job.
type ClaimJobCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	moverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimJobCommand creates a command to claim a job for a mover.
func NewClaimJobCommand(jobID, moverID kernel.UUID) (ClaimJobCommand, error) {
	cmd := ClaimJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setMoverID(moverID),
	); err != nil {
		return ClaimJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimJobCommand) Validate() error {
	return c.guard.Validate(ErrClaimJobCommandIsNotConstructed)
}

// JobID returns the job being claimed.
func (c ClaimJobCommand) JobID() kernel.UUID { return c.jobID }

// MoverID returns the claiming mover.
func (c ClaimJobCommand) MoverID() kernel.UUID { return c.moverID }

func (c *ClaimJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}
	c.jobID = jobID
	return nil
}

func (c *ClaimJobCommand) setMoverID(moverID kernel.UUID) error {
	if err := moverID.Validate(); err != nil {
		return err
	}
	c.moverID = moverID
	return nil
}
