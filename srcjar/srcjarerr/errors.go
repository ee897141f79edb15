package srcjarerr

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProject indicates that no project could be selected to run against (e.g. a project filter matched nothing).
	ErrNoProject = errors.New("no project selected")

	// ErrUnknownGoal indicates a goal name that does not map to any packaging goal.
	ErrUnknownGoal = errors.New("unknown goal")
)

// DuplicateAttachmentError indicates that an artifact with the same key was already attached to the project but
// backed by a different file.
type DuplicateAttachmentError struct {
	Key           string
	AttachedPath  string
	RequestedPath string
}

func (e *DuplicateAttachmentError) Error() string {
	return "presumably srcjar was configured to execute twice in the build with different output files: configure a classifier for at least one of them"
}

// IsDuplicateAttachment reports whether the error (or any error it wraps) is a DuplicateAttachmentError.
func IsDuplicateAttachment(err error) bool {
	var target *DuplicateAttachmentError
	return errors.As(err, &target)
}

// InvalidTimestampError indicates a configured output timestamp that cannot be used for a reproducible archive.
type InvalidTimestampError struct {
	Value  string
	Reason string
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("invalid project.build.outputTimestamp value %q: %s", e.Value, e.Reason)
}
