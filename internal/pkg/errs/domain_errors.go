package errs

import "errors"

// Error kinds surfaced by the use case layer. Concrete errors are marked with
// one of these so callers can branch with Is.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrConflict       = errors.New("resource conflict")
	ErrNotFound       = errors.New("entity not found")
	ErrForbidden      = errors.New("operation forbidden")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

func InvalidRequest(err error) error { return Mark(err, ErrInvalidRequest) }

func Conflict(err error) error { return Mark(err, ErrConflict) }

func NotFound(err error) error { return Mark(err, ErrNotFound) }

func Forbidden(err error) error { return Mark(err, ErrForbidden) }

func DatabaseFailure(err error) error { return Mark(err, ErrDatabaseOperationFailed) }
