package job

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Type distinguishes the two kinds of physical work an order spawns.
type Type int

const (
	// TypeUnknown represents an invalid or undefined job type.
	TypeUnknown Type = iota

	// TypeStorage moves goods from the student's address to the warehouse.
	// Exactly one per order, created together with the order.
	TypeStorage

	// TypeReturn moves goods from the warehouse back to the student.
	// At most one active (non-cancelled) per order.
	TypeReturn
)

// String returns the human-readable name of the job type.
func (t Type) String() string {
	switch t {
	case TypeStorage:
		return "Storage"
	case TypeReturn:
		return "Return"
	default:
		return "Unknown"
	}
}

// TypeFromString parses a persisted type name back into a Type.
func TypeFromString(name string) (Type, error) {
	switch name {
	case "Storage":
		return TypeStorage, nil
	case "Return":
		return TypeReturn, nil
	default:
		return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("jobType",
			fmt.Errorf("%q is not a valid job type", name))
	}
}

// Validate checks that the type is Storage or Return.
func (t Type) Validate() error {
	if t != TypeStorage && t != TypeReturn {
		return errs.NewValueIsInvalidErrorWithCause("jobType",
			fmt.Errorf("%d is not a valid job type", t))
	}
	return nil
}
