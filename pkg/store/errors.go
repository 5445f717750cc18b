package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jobdesk/jobdesk-terminal/pkg/api"
)

// ErrNotConfirmed is returned by Delete when the caller did not obtain
// the user's confirmation first. No request is made.
var ErrNotConfirmed = errors.New("delete not confirmed")

// ValidationError reports required fields that are missing. It is raised
// before any network call.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid job"
	}
	return fmt.Sprintf("invalid job: %s", strings.Join(e.Fields, ", "))
}

// NotFoundError reports an id that is not in the local collection
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("job %q not found", e.ID)
}

// RemoteError carries what the API or transport reported for a failed call
type RemoteError struct {
	Op      string
	ID      string
	Status  int    // HTTP status, 0 for transport and decode failures
	Message string // response body text when the server sent one
	Err     error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.ID != "" {
		fmt.Fprintf(&b, " %s", e.ID)
	}
	b.WriteString(" failed")
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// LoadError is returned when the collection cannot be fetched
type LoadError struct{ RemoteError }

// CreateError is returned when the server rejects or fails a create
type CreateError struct{ RemoteError }

// UpdateError is returned when the server rejects or fails an update
type UpdateError struct{ RemoteError }

// DeleteError is returned when the server rejects or fails a delete
type DeleteError struct{ RemoteError }

func remote(op, id string, err error) RemoteError {
	re := RemoteError{Op: op, ID: id, Err: err}
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		re.Status = statusErr.Status
		re.Message = statusErr.Body
	}
	return re
}
