package signup

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submission has not finished.
	ErrSubmitInFlight = errors.New("signup: submission already in flight")
	// ErrUnknownCountry is returned when selecting a country that is not in
	// the dataset.
	ErrUnknownCountry = errors.New("signup: unknown country")
	// ErrUnknownRegion is returned when selecting a region that is not
	// offered for the current country.
	ErrUnknownRegion = errors.New("signup: unknown region")
	// ErrMissingSubmitter is returned by NewForm without a Submitter.
	ErrMissingSubmitter = errors.New("signup: missing submitter")
)

// StatusNoError is the ServerError status of a form without a server error.
const StatusNoError = http.StatusOK

// ServerError is the outcome of a failed submission. Status 0 means the
// request never produced a response.
type ServerError struct {
	Status        int      `json:"status"`
	ErrorMessages []string `json:"errorMessages,omitempty"`
}

// NoServerError returns the sentinel "no error" value.
func NoServerError() ServerError {
	return ServerError{Status: StatusNoError}
}

// Active reports whether e describes a failure.
func (e ServerError) Active() bool {
	return e.Status != StatusNoError
}

// IsFatal reports whether the failure is a server fault (500) or a transport
// failure, as opposed to a validation rejection.
func (e ServerError) IsFatal() bool {
	return e.Status == http.StatusInternalServerError || e.Status == 0
}

func (e ServerError) clone() ServerError {
	e.ErrorMessages = append([]string(nil), e.ErrorMessages...)
	if len(e.ErrorMessages) == 0 {
		e.ErrorMessages = nil
	}
	return e
}

// SubmissionError is returned by Form.Submit when the endpoint rejects the
// submission or cannot be reached. Its message is the newline-joined list of
// server messages.
type SubmissionError struct {
	ServerError
	Err error
}

func (e *SubmissionError) Error() string {
	if len(e.ErrorMessages) > 0 {
		return strings.Join(e.ErrorMessages, "\n")
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("signup: submission failed with status %d", e.Status)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ValidationError is returned by Form.Submit when local validation blocks
// the request.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 1 {
		return e.Fields[keys[0]]
	}
	return fmt.Sprintf("%d validation errors", len(keys))
}

// TransitionError is returned by Reduce for an action the current phase does
// not accept.
type TransitionError struct {
	From   Phase
	Action string
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("signup: cannot apply %s in phase %s: %s", e.Action, e.From, e.Reason)
	}
	return fmt.Sprintf("signup: cannot apply %s in phase %s", e.Action, e.From)
}
