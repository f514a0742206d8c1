package render

import (
	"strings"

	"github.com/goliatone/go-signup/components/regions"
	"github.com/goliatone/go-signup/pkg/signup"
)

// Container classes applied to the form wrapper.
const (
	ClassError   = "error"
	ClassSuccess = "success"
)

// View is the renderer-neutral presentation of a form State. Renderers only
// read it; all wording and visibility rules are decided here.
type View struct {
	Locale string `json:"locale"`

	Header string `json:"header"`
	// Intro may contain inline markup (see DefaultMessages).
	Intro string `json:"intro"`
	// Messages lists server-reported problems for non-fatal rejections.
	Messages []string `json:"messages,omitempty"`

	Success     bool `json:"success"`
	ServerError bool `json:"serverError"`
	Fatal       bool `json:"fatal"`
	ErrorStyle  bool `json:"errorStyle"`
	ShowForm    bool `json:"showForm"`

	Fields  []FieldView `json:"fields,omitempty"`
	Country SelectView  `json:"country"`
	Region  SelectView  `json:"region"`

	SubmitLabel    string `json:"submitLabel"`
	SubmitDisabled bool   `json:"submitDisabled"`
	UpdateLabel    string `json:"updateLabel"`
	RequiredNote   string `json:"requiredNote"`

	Action string        `json:"action"`
	Hidden []HiddenField `json:"hidden,omitempty"`
}

// ContainerClass returns the space-separated classes of the form wrapper.
func (v View) ContainerClass() string {
	classes := []string{"newsletter-signup-form-container"}
	if v.ErrorStyle {
		classes = append(classes, ClassError)
	}
	if v.Success {
		classes = append(classes, ClassSuccess)
	}
	return strings.Join(classes, " ")
}

// FieldView describes a text input.
type FieldView struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder"`
	Value       string `json:"value"`
	Error       string `json:"error,omitempty"`
	Required    bool   `json:"required"`
}

// SelectView describes a single-select control.
type SelectView struct {
	ID       string       `json:"id"`
	Label    string       `json:"label"`
	Value    string       `json:"value"`
	Options  []OptionView `json:"options"`
	Disabled bool         `json:"disabled"`
}

// OptionView is one option of a SelectView.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Build derives the View of state. countries is the full country option list
// (placeholder first), usually signup.Form.Countries.
func Build(state signup.State, countries []string, opts RenderOptions) View {
	locale := strings.TrimSpace(opts.Locale)
	if locale == "" {
		locale = DefaultLocale
	}
	msg := func(key string) string {
		return translate(locale, key, opts.Translator, opts.OnMissing)
	}

	view := View{
		Locale:         locale,
		Success:        state.Phase == signup.PhaseSuccess,
		ErrorStyle:     state.ErrorStyle(),
		ShowForm:       state.ShowForm(),
		SubmitDisabled: state.SubmitDisabled(),
		UpdateLabel:    msg(KeyUpdateRegions),
		RequiredNote:   msg(KeyRequiredNote),
		Action:         opts.Action,
		Hidden:         SortedHiddenFields(opts.Hidden),
	}
	view.SubmitLabel = msg(KeySubmit)
	if view.SubmitDisabled {
		view.SubmitLabel = msg(KeySubmitting)
	}

	switch {
	case view.Success:
		view.Header = msg(KeyHeaderSuccess)
		view.Intro = msg(KeyIntroSuccess)
		view.ErrorStyle = false
		return view
	case state.ServerError.Active() && state.ServerError.IsFatal():
		view.ServerError = true
		view.Fatal = true
		view.Header = msg(KeyHeaderFatal)
		view.Intro = msg(KeyIntroFatal)
	case state.ServerError.Active():
		view.ServerError = true
		view.Header = msg(KeyHeaderRejected)
		view.Intro = msg(KeyIntroRejected)
		view.Messages = normalizeMessages(state.ServerError.ErrorMessages)
	default:
		view.Header = msg(KeyHeaderDefault)
		view.Intro = msg(KeyIntroDefault)
	}

	values := state.Values
	view.Fields = []FieldView{
		{
			ID:          signup.FieldName,
			Label:       required(msg(KeyLabelName)),
			Type:        "text",
			Placeholder: msg(KeyPlaceholderName),
			Value:       values.Name,
			Error:       state.FieldErrors[signup.FieldName],
			Required:    true,
		},
		{
			ID:          signup.FieldEmail,
			Label:       required(msg(KeyLabelEmail)),
			Type:        "email",
			Placeholder: msg(KeyPlaceholderEmail),
			Value:       values.Email,
			Error:       state.FieldErrors[signup.FieldEmail],
			Required:    true,
		},
	}

	view.Country = SelectView{
		ID:      signup.FieldCountry,
		Label:   required(msg(KeyLabelCountry)),
		Value:   values.Country,
		Options: optionViews(countries, values.Country),
	}

	regionKey := KeyLabelState
	if regions.RegionLabel(values.Country) == "Province" {
		regionKey = KeyLabelProvince
	}
	view.Region = SelectView{
		ID:       signup.FieldRegion,
		Label:    required(msg(regionKey)),
		Value:    values.Region,
		Options:  optionViews(state.RegionOptions, values.Region),
		Disabled: len(state.RegionOptions) <= 1,
	}
	return view
}

func required(label string) string {
	return label + " *"
}

func optionViews(items []string, selected string) []OptionView {
	out := make([]OptionView, 0, len(items))
	for _, item := range items {
		out = append(out, OptionView{Value: item, Label: item, Selected: item == selected})
	}
	return out
}

// normalizeMessages trims, drops blanks and collapses repeats for display.
// The server's list itself is kept as sent on the form state.
func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
