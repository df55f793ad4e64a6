package job

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a job.
//
// Storage jobs:
//
//	Available ──> Accepted ──> AwaitingStudentConfirmation ──> PickedUp ──> InStorage ──> Completed
//
// Return jobs:
//
//	Available ──> Accepted ──> AwaitingStudentConfirmation ──> Completed
//
// Cancelled is reachable from every non-terminal status. All transitions are
// driven by events through an explicit table; any (status, event) pair not in
// the table is rejected with an InvalidTransitionError.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusAvailable means the job is unclaimed and visible to movers.
	StatusAvailable

	// StatusAccepted means exactly one mover has claimed the job.
	StatusAccepted

	// StatusAwaitingStudentConfirmation means the mover reported arrival and
	// is waiting for the student to confirm the handoff.
	StatusAwaitingStudentConfirmation

	// StatusPickedUp means the student confirmed the pickup (storage jobs).
	StatusPickedUp

	// StatusInStorage means the goods are at the warehouse (storage jobs).
	StatusInStorage

	// StatusCompleted is terminal.
	StatusCompleted

	// StatusCancelled is terminal, reachable from any non-terminal status.
	StatusCancelled
)

// Event is a lifecycle trigger applied against the transition table.
type Event int

const (
	EventUnknown Event = iota

	// EventClaim is the atomic Available -> Accepted claim.
	EventClaim

	// EventRequestPickup is the mover's "I am at the pickup location" signal.
	EventRequestPickup

	// EventConfirmPickup is the student's confirmation of the pickup handoff.
	EventConfirmPickup

	// EventMarkStored is the mover's report that goods reached the warehouse.
	EventMarkStored

	// EventRequestDelivery is the mover's "I am at the dropoff location" signal.
	EventRequestDelivery

	// EventConfirmDelivery is the student's confirmation of the return handoff.
	EventConfirmDelivery

	// EventComplete closes a storage job when its goods leave storage.
	EventComplete

	// EventCancel cancels the job, typically via order-cancellation cascade.
	EventCancel
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:                     "Unknown",
		StatusAvailable:                   "Available",
		StatusAccepted:                    "Accepted",
		StatusAwaitingStudentConfirmation: "AwaitingStudentConfirmation",
		StatusPickedUp:                    "PickedUp",
		StatusInStorage:                   "InStorage",
		StatusCompleted:                   "Completed",
		StatusCancelled:                   "Cancelled",
	}
}

func getEventStrings() map[Event]string {
	return map[Event]string{
		EventUnknown:         "Unknown",
		EventClaim:           "Claim",
		EventRequestPickup:   "RequestPickup",
		EventConfirmPickup:   "ConfirmPickup",
		EventMarkStored:      "MarkStored",
		EventRequestDelivery: "RequestDelivery",
		EventConfirmDelivery: "ConfirmDelivery",
		EventComplete:        "Complete",
		EventCancel:          "Cancel",
	}
}

// storageTransitions is the transition table for storage jobs.
var storageTransitions = map[Status]map[Event]Status{
	StatusAvailable: {
		EventClaim:  StatusAccepted,
		EventCancel: StatusCancelled,
	},
	StatusAccepted: {
		EventRequestPickup: StatusAwaitingStudentConfirmation,
		EventCancel:        StatusCancelled,
	},
	StatusAwaitingStudentConfirmation: {
		EventConfirmPickup: StatusPickedUp,
		EventCancel:        StatusCancelled,
	},
	StatusPickedUp: {
		EventMarkStored: StatusInStorage,
		EventCancel:     StatusCancelled,
	},
	StatusInStorage: {
		EventComplete: StatusCompleted,
		EventCancel:   StatusCancelled,
	},
}

// returnTransitions is the transition table for return jobs.
var returnTransitions = map[Status]map[Event]Status{
	StatusAvailable: {
		EventClaim:  StatusAccepted,
		EventCancel: StatusCancelled,
	},
	StatusAccepted: {
		EventRequestDelivery: StatusAwaitingStudentConfirmation,
		EventCancel:          StatusCancelled,
	},
	StatusAwaitingStudentConfirmation: {
		EventConfirmDelivery: StatusCompleted,
		EventCancel:          StatusCancelled,
	},
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
		fmt.Errorf("%q is not a valid job status", name))
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid job status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid job status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// String returns the human-readable name of the event.
func (e Event) String() string {
	if str, ok := getEventStrings()[e]; ok {
		return str
	}
	return "Unknown"
}

// Apply resolves the (status, event) pair against the transition table for
// the given job type. Returns the next status, or an InvalidTransitionError
// when the pair is not in the table.
func (s Status) Apply(jobType Type, event Event) (Status, error) {
	table := storageTransitions
	if jobType == TypeReturn {
		table = returnTransitions
	}

	if next, ok := table[s][event]; ok {
		return next, nil
	}

	return StatusUnknown, errs.NewInvalidTransitionError("job", s.String(), event.String())
}
