package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateReturnJobCommandIsNotConstructed = errors.New(
	"CreateReturnJobCommand must be created via NewCreateReturnJobCommand constructor",
)

// CreateReturnJobCommand represents a student's request to get their goods
// back: when, and optionally where if the destination differs from the
// original pickup address.
type CreateReturnJobCommand struct { //nolint:recvcheck //using for validation
	studentID     kernel.UUID
	returnAddress *kernel.Address
	returnTime    time.Time

	guard guard.ConstructorGuard
}

// NewCreateReturnJobCommand creates a command to request the return
// delivery. returnAddress may be nil, in which case the goods go back to
// the order's pickup address.
func NewCreateReturnJobCommand(
	studentID kernel.UUID,
	returnAddress *kernel.Address,
	returnTime time.Time,
) (CreateReturnJobCommand, error) {
	cmd := CreateReturnJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStudentID(studentID),
		cmd.setReturnAddress(returnAddress),
		cmd.setReturnTime(returnTime),
	); err != nil {
		return CreateReturnJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateReturnJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateReturnJobCommandIsNotConstructed)
}

// StudentID returns the requesting student's identifier.
func (c CreateReturnJobCommand) StudentID() kernel.UUID { return c.studentID }

// ReturnAddress returns the requested destination, nil meaning the order's
// pickup address.
func (c CreateReturnJobCommand) ReturnAddress() *kernel.Address { return c.returnAddress }

// ReturnTime returns the requested return instant.
func (c CreateReturnJobCommand) ReturnTime() time.Time { return c.returnTime }

func (c *CreateReturnJobCommand) setStudentID(studentID kernel.UUID) error {
	if err := studentID.Validate(); err != nil {
		return err
	}
	c.studentID = studentID
	return nil
}

func (c *CreateReturnJobCommand) setReturnAddress(address *kernel.Address) error {
	if address == nil {
		return nil
	}
	if err := address.Validate(); err != nil {
		return err
	}
	c.returnAddress = address
	return nil
}

func (c *CreateReturnJobCommand) setReturnTime(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("returnTime")
	}
	c.returnTime = t
	return nil
}
