package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/signup"
)

var testCountries = []string{signup.CountryPlaceholder, "Canada", "Iceland"}

func canadaState(t *testing.T) signup.State {
	t.Helper()
	s, err := signup.Reduce(signup.NewState(), signup.CountrySelected{Country: "Canada", Regions: []string{"Alberta", "Ontario"}})
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	s, err = signup.Reduce(s, signup.FieldChanged{Field: signup.FieldName, Value: "Ada"})
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	return s
}

func TestBuild_DefaultView(t *testing.T) {
	view := Build(signup.NewState(), testCountries, RenderOptions{Action: "/"})

	if view.Header != "Newsletter" || view.ErrorStyle || !view.ShowForm {
		t.Fatalf("unexpected default view: %+v", view)
	}
	if view.SubmitLabel != "Sign me up" || view.RequiredNote != "* required fields" {
		t.Fatalf("unexpected labels: %q %q", view.SubmitLabel, view.RequiredNote)
	}
	if view.Region.Label != "State *" || !view.Region.Disabled {
		t.Fatalf("unexpected region select: %+v", view.Region)
	}
	if view.ContainerClass() != "newsletter-signup-form-container" {
		t.Fatalf("unexpected container class %q", view.ContainerClass())
	}
	wantFields := []string{"Name *", "Email *"}
	for i, field := range view.Fields {
		if field.Label != wantFields[i] {
			t.Fatalf("field %d label %q, want %q", i, field.Label, wantFields[i])
		}
	}
	if view.Fields[0].Placeholder != "Johnny Appleseed" || view.Fields[1].Type != "email" {
		t.Fatalf("unexpected fields: %+v", view.Fields)
	}
}

func TestBuild_CanadaUsesProvinceLabel(t *testing.T) {
	view := Build(canadaState(t), testCountries, RenderOptions{})

	if view.Region.Label != "Province *" || view.Region.Disabled {
		t.Fatalf("unexpected region select: %+v", view.Region)
	}
	want := []OptionView{
		{Value: signup.RegionPlaceholder, Label: signup.RegionPlaceholder, Selected: true},
		{Value: "Alberta", Label: "Alberta"},
		{Value: "Ontario", Label: "Ontario"},
	}
	if diff := cmp.Diff(want, view.Region.Options); diff != "" {
		t.Fatalf("region options mismatch (-want +got):\n%s", diff)
	}
	if !view.Country.Options[1].Selected {
		t.Fatalf("expected Canada selected: %+v", view.Country.Options)
	}
}

func TestBuild_FatalKeepsValues(t *testing.T) {
	s := canadaState(t)
	s, _ = signup.Reduce(s, signup.SubmitStarted{})
	s, _ = signup.Reduce(s, signup.SubmitFailed{Error: signup.ServerError{Status: 500}})

	view := Build(s, testCountries, RenderOptions{})
	if !view.Fatal || !view.ShowForm || !view.ErrorStyle {
		t.Fatalf("unexpected fatal view: %+v", view)
	}
	if view.Header != "Our server returned an error (it's us, not you)" {
		t.Fatalf("unexpected header %q", view.Header)
	}
	if view.Fields[0].Value != "Ada" || view.Country.Value != "Canada" {
		t.Fatalf("values not kept: %+v", view)
	}
	if len(view.Messages) != 0 {
		t.Fatalf("fatal view must not list messages: %v", view.Messages)
	}
	if view.ContainerClass() != "newsletter-signup-form-container error" {
		t.Fatalf("unexpected container class %q", view.ContainerClass())
	}
}

func TestBuild_RejectedListsMessages(t *testing.T) {
	s := canadaState(t)
	s, _ = signup.Reduce(s, signup.SubmitStarted{})
	s, _ = signup.Reduce(s, signup.SubmitFailed{Error: signup.ServerError{Status: 400, ErrorMessages: []string{"Email is invalid"}}})

	view := Build(s, testCountries, RenderOptions{})
	if view.Header != "Something went wrong :(" || view.Intro != "Please review the following fields:" {
		t.Fatalf("unexpected header: %q / %q", view.Header, view.Intro)
	}
	if diff := cmp.Diff([]string{"Email is invalid"}, view.Messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if !view.ShowForm {
		t.Fatalf("expected fields visible")
	}
}

func TestBuild_SuccessHidesForm(t *testing.T) {
	s := canadaState(t)
	s, _ = signup.Reduce(s, signup.SubmitStarted{})
	submitting := Build(s, testCountries, RenderOptions{})
	if !submitting.SubmitDisabled || submitting.SubmitLabel != "Signing you up..." {
		t.Fatalf("unexpected submitting view: %+v", submitting)
	}

	s, _ = signup.Reduce(s, signup.SubmitSucceeded{})
	view := Build(s, testCountries, RenderOptions{})
	if view.ShowForm || len(view.Fields) != 0 || !view.Success {
		t.Fatalf("expected success view without fields: %+v", view)
	}
	if view.Header != "Successfully signed up to the newsletter" || view.Intro != "See you soon in an inbox near you ;)" {
		t.Fatalf("unexpected success text: %q / %q", view.Header, view.Intro)
	}
	if view.ContainerClass() != "newsletter-signup-form-container success" {
		t.Fatalf("unexpected container class %q", view.ContainerClass())
	}
}

func TestBuild_LocalValidationErrors(t *testing.T) {
	s, _ := signup.Reduce(signup.NewState(), signup.ValidationFailed{Errors: signup.Validate(signup.FormValues{})})

	view := Build(s, testCountries, RenderOptions{})
	if !view.ErrorStyle {
		t.Fatalf("expected error style after failed validation")
	}
	if view.Fields[0].Error != "Name is required" || view.Fields[1].Error != "Email is required" {
		t.Fatalf("unexpected field errors: %+v", view.Fields)
	}
}

func TestBuild_TranslatorOverrides(t *testing.T) {
	catalog := DefaultCatalog()
	catalog["fr"] = map[string]string{KeyHeaderDefault: "Infolettre", KeySubmit: "Je m'inscris"}

	view := Build(signup.NewState(), testCountries, RenderOptions{Locale: "fr-CA", Translator: catalog})
	if view.Header != "Infolettre" || view.SubmitLabel != "Je m'inscris" {
		t.Fatalf("expected french overrides, got %q / %q", view.Header, view.SubmitLabel)
	}
	if view.RequiredNote != "* required fields" {
		t.Fatalf("expected english fallback, got %q", view.RequiredNote)
	}
}

func TestBuild_MissingTranslationHandler(t *testing.T) {
	var missing []string
	view := Build(signup.NewState(), testCountries, RenderOptions{
		Translator: Catalog{},
		OnMissing: func(_ string, key string, _ []any, _ error) string {
			missing = append(missing, key)
			return "[" + key + "]"
		},
	})
	if view.Header != "[header.default]" {
		t.Fatalf("unexpected header %q", view.Header)
	}
	if len(missing) == 0 {
		t.Fatalf("expected missing handler calls")
	}
}

func TestSortedHiddenFields(t *testing.T) {
	got := SortedHiddenFields([]HiddenField{
		SubmitCount(2),
		CSRFToken("abc"),
		{Name: "  ", Value: "x"},
		SubmitCount(3),
	})
	want := []HiddenField{{Name: "_csrf", Value: "abc"}, {Name: "submit_count", Value: "3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestPlainText(t *testing.T) {
	cases := map[string]string{
		"Please click the <strong>Sign me up</strong> button": "Please click the Sign me up button",
		"it's us, not you":                  "it's us, not you",
		"<script>alert(1)</script>Hi & bye": "Hi & bye",
		"  ":                                "",
	}
	for input, want := range cases {
		if got := PlainText(input); got != want {
			t.Errorf("PlainText(%q) = %q, want %q", input, got, want)
		}
	}
}
