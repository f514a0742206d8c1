package signup

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReduce_CountrySelectedResetsRegion(t *testing.T) {
	s := NewState()
	s, err := Reduce(s, CountrySelected{Country: "Canada", Regions: []string{"Alberta", "Ontario"}})
	if err != nil {
		t.Fatalf("select country: %v", err)
	}
	s, err = Reduce(s, RegionSelected{Region: "Ontario"})
	if err != nil {
		t.Fatalf("select region: %v", err)
	}

	s, err = Reduce(s, CountrySelected{Country: "Iceland"})
	if err != nil {
		t.Fatalf("select country: %v", err)
	}
	if s.Values.Region != RegionPlaceholder {
		t.Fatalf("expected region reset to placeholder, got %q", s.Values.Region)
	}
	if diff := cmp.Diff([]string{RegionPlaceholder}, s.RegionOptions); diff != "" {
		t.Fatalf("region options mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_RegionMustBeOffered(t *testing.T) {
	s, _ := Reduce(NewState(), CountrySelected{Country: "Canada", Regions: []string{"Ontario"}})

	_, err := Reduce(s, RegionSelected{Region: "Texas"})
	if !errors.Is(err, ErrUnknownRegion) {
		t.Fatalf("expected ErrUnknownRegion, got %v", err)
	}
	if _, err := Reduce(s, RegionSelected{Region: RegionPlaceholder}); err != nil {
		t.Fatalf("placeholder must stay selectable: %v", err)
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s, _ := Reduce(NewState(), CountrySelected{Country: "Canada", Regions: []string{"Ontario"}})
	before := s.Clone()

	if _, err := Reduce(s, CountrySelected{Country: "Iceland"}); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if diff := cmp.Diff(before, s); diff != "" {
		t.Fatalf("input state mutated (-want +got):\n%s", diff)
	}
}

func TestReduce_SubmissionLifecycle(t *testing.T) {
	s := NewState()

	s, err := Reduce(s, ValidationFailed{Errors: FieldErrors{FieldName: "Name is required"}})
	if err != nil {
		t.Fatalf("validation failed: %v", err)
	}
	if s.SubmitCount != 1 || s.Valid() || !s.ErrorStyle() {
		t.Fatalf("unexpected state after validation failure: %+v", s)
	}

	s, _ = Reduce(s, SubmitStarted{})
	if s.Phase != PhaseSubmitting || !s.SubmitDisabled() || s.SubmitCount != 2 || !s.Valid() {
		t.Fatalf("unexpected submitting state: %+v", s)
	}

	s, _ = Reduce(s, SubmitFailed{Error: ServerError{Status: 400, ErrorMessages: []string{" Email is invalid ", "Email is invalid"}}})
	if s.Phase != PhaseServerError || !s.ErrorStyle() || !s.ShowForm() {
		t.Fatalf("unexpected server-error state: %+v", s)
	}
	if diff := cmp.Diff([]string{" Email is invalid ", "Email is invalid"}, s.ServerError.ErrorMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}

	s, _ = Reduce(s, SubmitStarted{})
	if !s.ServerError.Active() {
		t.Fatalf("server error must persist while resubmitting")
	}
	s, _ = Reduce(s, SubmitSucceeded{})
	if s.Phase != PhaseSuccess || s.ShowForm() || s.ServerError.Active() {
		t.Fatalf("unexpected success state: %+v", s)
	}

	_, err = Reduce(s, FieldChanged{Field: FieldName, Value: "x"})
	var transitionErr *TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected TransitionError after success, got %v", err)
	}
	if transitionErr.From != PhaseSuccess {
		t.Fatalf("unexpected from phase %q", transitionErr.From)
	}
}

func TestReduce_RejectsIllegalTransitions(t *testing.T) {
	cases := []struct {
		phase  Phase
		action Action
	}{
		{PhaseIdle, SubmitSucceeded{}},
		{PhaseIdle, SubmitFailed{Error: ServerError{Status: 500}}},
		{PhaseSubmitting, SubmitStarted{}},
		{PhaseSubmitting, ValidationFailed{}},
		{PhaseSuccess, SubmitStarted{}},
		{PhaseServerError, SubmitSucceeded{}},
	}
	for _, tc := range cases {
		s := NewState()
		s.Phase = tc.phase
		if _, err := Reduce(s, tc.action); err == nil {
			t.Fatalf("%s in %s: expected error", tc.action.Name(), tc.phase)
		}
		if Allowed(tc.phase, tc.action.Name()) {
			t.Fatalf("%s in %s: expected not allowed", tc.action.Name(), tc.phase)
		}
	}

	s := NewState()
	s.Phase = PhaseSubmitting
	if _, err := Reduce(s, SubmitFailed{Error: NoServerError()}); err == nil {
		t.Fatalf("expected error for failure without status")
	}
	if _, err := Reduce(NewState(), FieldChanged{Field: "age", Value: "3"}); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestNewPayload_OnlyRegionPlaceholderBecomesNull(t *testing.T) {
	tests := []struct {
		name   string
		values FormValues
		want   string
	}{
		{
			name: "placeholders",
			values: FormValues{
				Name:    " Ada ",
				Email:   "ada@example.com",
				Country: CountryPlaceholder,
				Region:  RegionPlaceholder,
			},
			want: `{"name":" Ada ","email":"ada@example.com","country":"Select a country","region":null}`,
		},
		{
			name: "chosen region",
			values: FormValues{
				Name:    "Ada",
				Email:   "ada@example.com",
				Country: "Canada",
				Region:  "Ontario",
			},
			want: `{"name":"Ada","email":"ada@example.com","country":"Canada","region":"Ontario"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(NewPayload(tt.values))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(raw) != tt.want {
				t.Fatalf("payload mismatch:\nwant %s\ngot  %s", tt.want, raw)
			}
		})
	}
}

func TestValidate_RequiresNameAndEmail(t *testing.T) {
	got := Validate(FormValues{Name: "  ", Email: ""})
	want := FieldErrors{FieldName: "Name is required", FieldEmail: "Email is required"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if Validate(FormValues{Name: "Ada", Email: "ada@example.com"}) != nil {
		t.Fatalf("expected no errors")
	}
}

func TestServerError_Classification(t *testing.T) {
	cases := map[int]bool{500: true, 0: true, 400: false, 422: false}
	for status, fatal := range cases {
		if got := (ServerError{Status: status}).IsFatal(); got != fatal {
			t.Fatalf("status %d: IsFatal=%v, want %v", status, got, fatal)
		}
	}
	if NoServerError().Active() {
		t.Fatalf("sentinel must not be active")
	}
}
