package syncerr

import (
	"errors"
)

var (
	ErrSourceUnavailable  = errors.New("source unavailable")
	ErrEmptySubmissionSet = errors.New("empty submission set")
	ErrMalformedAnswer    = errors.New("malformed answer")
	ErrUnknownOption      = errors.New("unknown option")
	ErrCrmRequestFailed   = errors.New("crm request failed")
	ErrNotFound           = errors.New("not found")
)

type wrapError struct {
	underlying error
	msg        string
	cause      error
}

var _ error = (*wrapError)(nil)

// Wrap ties an error to one of the sentinel failures above so callers can
// branch with errors.Is while keeping the original cause in the chain.
func Wrap(underlying error, msg string, cause error) error {
	return &wrapError{
		underlying: underlying,
		msg:        msg,
		cause:      cause,
	}
}

func (err *wrapError) Error() string {
	if err == nil {
		return "(*wrapError)(nil)"
	}
	message := err.underlying.Error() + ": " + err.msg
	if err.cause != nil {
		message += ": " + err.cause.Error()
	}
	return message
}

func (err *wrapError) Unwrap() []error {
	if err.cause == nil {
		return []error{err.underlying}
	}
	return []error{err.underlying, err.cause}
}
