package scene2d

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is the base of every configuration error. Configuration
	// errors are fatal for the render that reports them.
	ErrConfig = errors.New("scene2d: configuration error")

	ErrMissingAttribute   = errors.New("missing mandatory attribute")
	ErrDuplicateAdaptor   = errors.New("duplicate adaptor id")
	ErrDuplicateID        = errors.New("duplicate id")
	ErrUnknownAdaptorType = errors.New("unknown adaptor type")
	ErrBadConnection      = errors.New("malformed signal/slot reference")

	// ErrUnknownAdaptor is returned when an operation names an adaptor id
	// that was never configured.
	ErrUnknownAdaptor = errors.New("scene2d: unknown adaptor")
	// ErrNotStarted is returned by operations that need a started render.
	ErrNotStarted = errors.New("scene2d: render not started")
	// ErrAlreadyStarted is returned by Start on a running render.
	ErrAlreadyStarted = errors.New("scene2d: render already started")
	// ErrMissingObject is returned by StartAdaptor when the adaptor's object
	// is not present in the observed composite.
	ErrMissingObject = errors.New("scene2d: bound object not present")
)

// ConfigError describes a configuration problem in one section of the
// configuration tree. It matches both ErrConfig and its wrapped cause
// under errors.Is.
type ConfigError struct {
	Section string // "scene", "viewport", "axis", "adaptor" or "connect"
	ID      string // offending element id, empty when unknown
	Err     error
}

func (e *ConfigError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("scene2d: %s: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("scene2d: %s %q: %v", e.Section, e.ID, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is makes every ConfigError match ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func configErr(section, id string, err error) error {
	return &ConfigError{Section: section, ID: id, Err: err}
}
