package handviz

import (
	"errors"
	"fmt"

	"github.com/Faultbox/handviz/pkg/hand"
)

var (
	// ErrMalformedHierarchy means the authored hand hierarchy does not follow
	// the joint naming convention well enough to bind.
	ErrMalformedHierarchy = errors.New("malformed hand hierarchy")
	// ErrMissingAsset means a required prefab was not supplied.
	ErrMissingAsset = errors.New("missing asset")
	// ErrInvalidJointNames means the joint name table has empty entries.
	ErrInvalidJointNames = errors.New("invalid joint name table")
)

// MissingJointError reports a joint the binder could not find.
type MissingJointError struct {
	Hand  hand.Handedness
	Joint hand.JointID
	Name  string
}

func (e *MissingJointError) Error() string {
	return fmt.Sprintf("%s hand: couldn't find %s joint (no node ending with %q)", e.Hand, e.Joint, e.Name)
}

// Unwrap makes errors.Is(err, ErrMalformedHierarchy) hold.
func (e *MissingJointError) Unwrap() error {
	return ErrMalformedHierarchy
}
