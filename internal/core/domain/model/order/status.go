package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Accepted ──> PickedUp ──> InStorage ──> Returned ──> Completed
//	   │
//	   └──> Cancelled
//
// Cancellation is only legal from Pending: the student-initiated path covers
// pre-dispatch cancellation only. Every transition is checked against an
// explicit table; anything outside it is an InvalidTransitionError.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the initial status: the order exists, its storage job
	// is available, and no mover has claimed it yet.
	StatusPending

	// StatusAccepted means a mover claimed the storage job.
	StatusAccepted

	// StatusPickedUp means the student confirmed the storage pickup.
	StatusPickedUp

	// StatusInStorage means the goods are at the warehouse.
	StatusInStorage

	// StatusReturned means the student confirmed the return delivery.
	StatusReturned

	// StatusCompleted is terminal.
	StatusCompleted

	// StatusCancelled is terminal, reachable from Pending only.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusAccepted:  "Accepted",
		StatusPickedUp:  "PickedUp",
		StatusInStorage: "InStorage",
		StatusReturned:  "Returned",
		StatusCompleted: "Completed",
		StatusCancelled: "Cancelled",
	}
}

// transitions lists the legal next statuses for each status.
var transitions = map[Status][]Status{
	StatusPending:   {StatusAccepted, StatusCancelled},
	StatusAccepted:  {StatusPickedUp},
	StatusPickedUp:  {StatusInStorage},
	StatusInStorage: {StatusReturned},
	StatusReturned:  {StatusCompleted},
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a persisted status name back into a Status.
func StatusFromString(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == name && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", name))
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether moving to next is in the transition table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next if the move is legal, or an
// InvalidTransitionError otherwise.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return StatusUnknown, errs.NewInvalidTransitionError("order", s.String(), next.String())
	}
	return next, nil
}
