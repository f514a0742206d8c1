package signup

import "fmt"

// Phase is the submission phase of the form.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseSubmitting  Phase = "submitting"
	PhaseSuccess     Phase = "success"
	PhaseServerError Phase = "server-error"
)

// State is the complete form state. Values are copied in and out of Reduce;
// a State is never shared between goroutines by this package.
type State struct {
	Values        FormValues  `json:"values"`
	RegionOptions []string    `json:"regionOptions"`
	Phase         Phase       `json:"phase"`
	SubmitCount   int         `json:"submitCount"`
	FieldErrors   FieldErrors `json:"fieldErrors,omitempty"`
	ServerError   ServerError `json:"serverError"`
}

// NewState returns the state of a freshly mounted form.
func NewState() State {
	return State{
		Values:        DefaultValues(),
		RegionOptions: []string{RegionPlaceholder},
		Phase:         PhaseIdle,
		ServerError:   NoServerError(),
	}
}

// Valid reports whether the last local validation passed.
func (s State) Valid() bool { return len(s.FieldErrors) == 0 }

// ErrorStyle reports whether the form should be drawn in its error style:
// after a failed local validation or while a server error is shown.
func (s State) ErrorStyle() bool {
	return (s.SubmitCount > 0 && !s.Valid()) || s.ServerError.Active()
}

// SubmitDisabled reports whether the submit control is disabled.
func (s State) SubmitDisabled() bool { return s.Phase == PhaseSubmitting }

// ShowForm reports whether the input fields are shown.
func (s State) ShowForm() bool { return s.Phase != PhaseSuccess }

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.RegionOptions = append([]string(nil), s.RegionOptions...)
	s.FieldErrors = s.FieldErrors.clone()
	s.ServerError = s.ServerError.clone()
	return s
}

// Action is a state transition request handled by Reduce.
type Action interface {
	Name() string
}

// FieldChanged sets the name or email field.
type FieldChanged struct {
	Field string
	Value string
}

// CountrySelected sets the country, resets the region and replaces the
// region options with Regions preceded by the placeholder.
type CountrySelected struct {
	Country string
	Regions []string
}

// RegionSelected sets the region. It must be one of the current options.
type RegionSelected struct {
	Region string
}

// SubmitStarted marks the start of a network submission.
type SubmitStarted struct{}

// ValidationFailed records a submit attempt blocked by local validation.
type ValidationFailed struct {
	Errors FieldErrors
}

// SubmitSucceeded records a successful response.
type SubmitSucceeded struct{}

// SubmitFailed records a failed response or transport failure.
type SubmitFailed struct {
	Error ServerError
}

func (FieldChanged) Name() string     { return "field-changed" }
func (CountrySelected) Name() string  { return "country-selected" }
func (RegionSelected) Name() string   { return "region-selected" }
func (SubmitStarted) Name() string    { return "submit-started" }
func (ValidationFailed) Name() string { return "validation-failed" }
func (SubmitSucceeded) Name() string  { return "submit-succeeded" }
func (SubmitFailed) Name() string     { return "submit-failed" }

// Transition is one allowed (phase, action) pair and its resulting phase.
type Transition struct {
	From   Phase
	Action string
	To     Phase
}

// AllTransitions returns the complete transition table of the form.
func AllTransitions() []Transition {
	var out []Transition
	// Input stays live while a submission is pending; the form is gone after
	// success.
	for _, phase := range []Phase{PhaseIdle, PhaseSubmitting, PhaseServerError} {
		out = append(out,
			Transition{From: phase, Action: FieldChanged{}.Name(), To: phase},
			Transition{From: phase, Action: CountrySelected{}.Name(), To: phase},
			Transition{From: phase, Action: RegionSelected{}.Name(), To: phase},
		)
	}
	return append(out,
		// From idle
		Transition{From: PhaseIdle, Action: ValidationFailed{}.Name(), To: PhaseIdle},
		Transition{From: PhaseIdle, Action: SubmitStarted{}.Name(), To: PhaseSubmitting},

		// From submitting
		Transition{From: PhaseSubmitting, Action: SubmitSucceeded{}.Name(), To: PhaseSuccess},
		Transition{From: PhaseSubmitting, Action: SubmitFailed{}.Name(), To: PhaseServerError},

		// From server-error
		Transition{From: PhaseServerError, Action: ValidationFailed{}.Name(), To: PhaseServerError},
		Transition{From: PhaseServerError, Action: SubmitStarted{}.Name(), To: PhaseSubmitting},
	)
}

// Allowed reports whether action may be applied in phase.
func Allowed(phase Phase, action string) bool {
	_, ok := lookupTransition(phase, action)
	return ok
}

func lookupTransition(phase Phase, action string) (Transition, bool) {
	for _, t := range AllTransitions() {
		if t.From == phase && t.Action == action {
			return t, true
		}
	}
	return Transition{}, false
}

// Reduce applies action to s and returns the new state. s is not modified.
// Actions the current phase does not accept yield a *TransitionError.
func Reduce(s State, action Action) (State, error) {
	if action == nil {
		return s, fmt.Errorf("signup: nil action")
	}
	t, ok := lookupTransition(s.Phase, action.Name())
	if !ok {
		return s, &TransitionError{From: s.Phase, Action: action.Name()}
	}

	next := s.Clone()
	next.Phase = t.To

	switch a := action.(type) {
	case FieldChanged:
		switch a.Field {
		case FieldName:
			next.Values.Name = a.Value
		case FieldEmail:
			next.Values.Email = a.Value
		default:
			return s, &TransitionError{From: s.Phase, Action: a.Name(), Reason: fmt.Sprintf("unknown field %q", a.Field)}
		}

	case CountrySelected:
		next.Values.Country = a.Country
		next.Values.Region = RegionPlaceholder
		next.RegionOptions = append([]string{RegionPlaceholder}, a.Regions...)

	case RegionSelected:
		if !contains(next.RegionOptions, a.Region) {
			return s, fmt.Errorf("%w: %q for %q", ErrUnknownRegion, a.Region, s.Values.Country)
		}
		next.Values.Region = a.Region

	case ValidationFailed:
		next.SubmitCount++
		next.FieldErrors = a.Errors.clone()

	case SubmitStarted:
		next.SubmitCount++
		next.FieldErrors = nil

	case SubmitSucceeded:
		next.ServerError = NoServerError()

	case SubmitFailed:
		se := a.Error.clone()
		if !se.Active() {
			return s, &TransitionError{From: s.Phase, Action: a.Name(), Reason: "failure without an error status"}
		}
		next.ServerError = se

	default:
		return s, &TransitionError{From: s.Phase, Action: action.Name(), Reason: "unsupported action"}
	}

	return next, nil
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
