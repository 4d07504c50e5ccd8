package errors

import (
	"github.com/cockroachdb/errors"
)

// Kind classifies a failure. Errors carry a Kind through Builder.Mark and keep
// it across fmt.Errorf wrapping.
type Kind struct {
	name string
}

func (k *Kind) Error() string { return k.name }

// Is compares by name, so a Kind rebuilt elsewhere still matches.
func (k *Kind) Is(target error) bool {
	t, ok := target.(*Kind)
	return ok && t.name == k.name
}

var (
	// ErrConfiguration: the catalog or the run settings cannot be used.
	ErrConfiguration = &Kind{name: "configuration"}
	// ErrInvariantViolation: the engine reached a state it never should.
	ErrInvariantViolation = &Kind{name: "invariant violation"}
	ErrValidation         = &Kind{name: "validation"}
	ErrDatabase           = &Kind{name: "database"}
)

var kinds = []*Kind{ErrConfiguration, ErrInvariantViolation, ErrValidation, ErrDatabase}

// KindOf returns the first known Kind err is marked with, or nil.
func KindOf(err error) *Kind {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// Hints collects the hints attached anywhere in the chain.
func Hints(err error) []string {
	return errors.GetAllHints(err)
}
