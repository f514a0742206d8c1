package signup

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-signup/components/regions"
)

// Response is what a Submitter reports back for a completed HTTP exchange.
type Response struct {
	Status        int
	ErrorMessages []string
}

// Succeeded reports whether the status is 2xx.
func (r Response) Succeeded() bool {
	return r.Status >= 200 && r.Status < 300
}

// Submitter delivers a payload to the signup endpoint. A non-nil error means
// no response was received.
type Submitter interface {
	Submit(ctx context.Context, payload Payload) (Response, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, payload Payload) (Response, error)

func (f SubmitterFunc) Submit(ctx context.Context, payload Payload) (Response, error) {
	return f(ctx, payload)
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithDataset replaces the embedded country/region dataset.
func WithDataset(ds *regions.Dataset) FormOption {
	return func(f *Form) {
		if ds != nil {
			f.dataset = ds
		}
	}
}

// WithLogger sets the logger used for submission events.
func WithLogger(logger *slog.Logger) FormOption {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithValues restores previously entered values. The country and region go
// through the usual selection rules; values that no longer match the
// dataset fall back to the placeholders.
func WithValues(values FormValues) FormOption {
	return func(f *Form) {
		f.restore = &values
	}
}

// WithSubmitCount restores the number of earlier submit attempts, as carried
// by a server-rendered form between requests. Field errors are recomputed so
// the error style matches the restored values.
func WithSubmitCount(n int) FormOption {
	return func(f *Form) {
		if n > 0 {
			f.submitCount = n
		}
	}
}

// Form is the stateful controller used by the renderers. It is safe for
// concurrent use; at most one submission runs at a time.
type Form struct {
	mu        sync.Mutex
	state     State
	dataset   *regions.Dataset
	submitter Submitter
	logger    *slog.Logger
	restore   *FormValues

	submitCount int
}

// NewForm returns an idle form that submits through submitter.
func NewForm(submitter Submitter, opts ...FormOption) (*Form, error) {
	if submitter == nil {
		return nil, ErrMissingSubmitter
	}
	f := &Form{
		state:     NewState(),
		submitter: submitter,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.dataset == nil {
		ds, err := regions.DefaultDataset()
		if err != nil {
			return nil, err
		}
		f.dataset = ds
	}
	if f.restore != nil {
		f.restoreValues(*f.restore)
		f.restore = nil
	}
	if f.submitCount > 0 {
		f.state.SubmitCount = f.submitCount
		if errs := Validate(f.state.Values); len(errs) > 0 {
			f.state.FieldErrors = errs
		}
	}
	return f, nil
}

func (f *Form) restoreValues(values FormValues) {
	f.state.Values.Name = values.Name
	f.state.Values.Email = values.Email
	if err := f.selectCountry(values.Country); err != nil {
		return
	}
	_ = f.apply(RegionSelected{Region: values.Region})
}

// State returns a copy of the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone()
}

// Dataset returns the dataset backing the selectors.
func (f *Form) Dataset() *regions.Dataset { return f.dataset }

// Countries returns the country options: the placeholder followed by every
// dataset country.
func (f *Form) Countries() []string {
	return append([]string{CountryPlaceholder}, f.dataset.Countries()...)
}

// RegionOptions returns the region options for the selected country.
func (f *Form) RegionOptions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.state.RegionOptions...)
}

// RegionLabel returns the label of the region selector for the selected
// country.
func (f *Form) RegionLabel() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return regions.RegionLabel(f.state.Values.Country)
}

// SetName updates the name field.
func (f *Form) SetName(name string) error {
	return f.dispatch(FieldChanged{Field: FieldName, Value: name})
}

// SetEmail updates the email field.
func (f *Form) SetEmail(email string) error {
	return f.dispatch(FieldChanged{Field: FieldEmail, Value: email})
}

// SelectCountry selects country, resets the region and repopulates the
// region options. The placeholder itself is accepted and leaves only the
// region placeholder.
func (f *Form) SelectCountry(country string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selectCountry(country)
}

func (f *Form) selectCountry(country string) error {
	country = strings.TrimSpace(country)
	if country == "" || country == CountryPlaceholder {
		return f.apply(CountrySelected{Country: CountryPlaceholder})
	}
	entry, ok := f.dataset.Lookup(country)
	if !ok {
		return ErrUnknownCountry
	}
	return f.apply(CountrySelected{
		Country: entry.CountryName,
		Regions: f.dataset.RegionNames(entry.CountryName),
	})
}

// SelectRegion selects one of the current region options.
func (f *Form) SelectRegion(region string) error {
	return f.dispatch(RegionSelected{Region: region})
}

// Dispatch applies an arbitrary action.
func (f *Form) Dispatch(action Action) error {
	return f.dispatch(action)
}

func (f *Form) dispatch(action Action) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.apply(action)
}

func (f *Form) apply(action Action) error {
	next, err := Reduce(f.state, action)
	if err != nil {
		return err
	}
	f.state = next
	return nil
}

// Submit validates the form and, when valid, sends it through the
// Submitter. It blocks until the response arrives or ctx is done.
//
// Local validation failures return *ValidationError without contacting the
// endpoint. Non-2xx responses and transport failures return
// *SubmissionError; the entered values are always kept.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state.Phase == PhaseSubmitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	values := f.state.Values
	if errs := Validate(values); len(errs) > 0 {
		err := f.apply(ValidationFailed{Errors: errs})
		f.mu.Unlock()
		if err != nil {
			return err
		}
		return &ValidationError{Fields: errs}
	}
	if err := f.apply(SubmitStarted{}); err != nil {
		f.mu.Unlock()
		return err
	}
	f.mu.Unlock()

	payload := NewPayload(values)
	resp, err := f.submitter.Submit(ctx, payload)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.logger.Warn("signup submission failed", "country", payload.Country, "error", err)
		se := ServerError{Status: 0, ErrorMessages: []string{err.Error()}}
		if applyErr := f.apply(SubmitFailed{Error: se}); applyErr != nil {
			return applyErr
		}
		return &SubmissionError{ServerError: f.state.ServerError.clone(), Err: err}
	}

	if resp.Succeeded() {
		f.logger.Info("signup submitted", "status", resp.Status, "country", payload.Country)
		return f.apply(SubmitSucceeded{})
	}

	f.logger.Info("signup rejected", "status", resp.Status, "messages", len(resp.ErrorMessages))
	se := ServerError{Status: resp.Status, ErrorMessages: resp.ErrorMessages}
	if err := f.apply(SubmitFailed{Error: se}); err != nil {
		return err
	}
	return &SubmissionError{ServerError: f.state.ServerError.clone()}
}
