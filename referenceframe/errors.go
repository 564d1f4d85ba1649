package referenceframe

import "github.com/pkg/errors"

// NewFrameMismatchError returns an error indicating that a pose was given in a frame other than the one expected.
func NewFrameMismatchError(expected, actual string) error {
	return errors.Errorf("only poses in the %q frame are accepted, but got a pose in the %q frame", expected, actual)
}

// NewMissingPoseError returns an error indicating that a required pose was nil.
func NewMissingPoseError(name string) error {
	return errors.Errorf("%s pose is nil", name)
}
