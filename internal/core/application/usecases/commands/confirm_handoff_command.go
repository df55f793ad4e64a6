package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrConfirmHandoffCommandIsNotConstructed = errors.New(
	"ConfirmHandoffCommand must be created via NewConfirmHandoffCommand constructor",
)

// ConfirmHandoffCommand is the student's side of the handshake: confirming
// that the mover actually picked up or delivered the goods.
type ConfirmHandoffCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	studentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmHandoffCommand creates a command confirming a handoff.
func NewConfirmHandoffCommand(jobID, studentID kernel.UUID) (ConfirmHandoffCommand, error) {
	cmd := ConfirmHandoffCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setStudentID(studentID),
	); err != nil {
		return ConfirmHandoffCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmHandoffCommand) Validate() error {
	return c.guard.Validate(ErrConfirmHandoffCommandIsNotConstructed)
}

// JobID returns the job being confirmed.
func (c ConfirmHandoffCommand) JobID() kernel.UUID { return c.jobID }

// StudentID returns the confirming student.
func (c ConfirmHandoffCommand) StudentID() kernel.UUID { return c.studentID }

func (c *ConfirmHandoffCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}
	c.jobID = jobID
	return nil
}

func (c *ConfirmHandoffCommand) setStudentID(studentID kernel.UUID) error {
	if err := studentID.Validate(); err != nil {
		return err
	}
	c.studentID = studentID
	return nil
}
