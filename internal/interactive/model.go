// Package interactive is a full-screen terminal rendition of the signup
// form. Both dropdowns are listbox state machines; the country menu filters
// as you type.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-signup/components/regions"
	"github.com/goliatone/go-signup/pkg/listbox"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/signup"
)

type field int

const (
	fieldName field = iota
	fieldEmail
	fieldCountry
	fieldRegion
	fieldSubmit
	fieldCount
)

const (
	maxVisibleOptions = 8
	maxWidth          = 72
)

var (
	// ErrMissingForm is returned when no form is supplied.
	ErrMissingForm = errors.New("interactive: missing form")
	// ErrNotSubmitted is returned by Run when the user quit before a
	// successful signup.
	ErrNotSubmitted = errors.New("interactive: quit before signing up")
)

type submitResultMsg struct {
	err error
}

// Option configures a Model.
type Option func(*Model)

// WithRenderOptions sets the locale and translator used for labels and
// messages.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(m *Model) {
		m.renderOptions = opts
	}
}

// WithSearchOptions tunes the country filter.
func WithSearchOptions(opts regions.Options) Option {
	return func(m *Model) {
		m.searchOptions = opts
	}
}

// WithLogger sets the logger used for rejected selections.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Model is the bubbletea model of the signup form.
type Model struct {
	ctx           context.Context
	form          *signup.Form
	renderOptions render.RenderOptions
	searchOptions regions.Options
	logger        *slog.Logger

	name   textinput.Model
	email  textinput.Model
	filter textinput.Model

	countries *listbox.Listbox
	regions   *listbox.Listbox

	focus    field
	width    int
	pending  bool
	err      error
	quitting bool
}

// New builds a model around form. ctx bounds each submission.
func New(ctx context.Context, form *signup.Form, opts ...Option) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		ctx:           ctx,
		form:          form,
		searchOptions: regions.NewOptions(),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}

	state := form.State()
	view := render.Build(state, form.Countries(), m.renderOptions)
	m.name = newInput(view.Fields[0].Placeholder, state.Values.Name)
	m.email = newInput(view.Fields[1].Placeholder, state.Values.Email)

	m.filter = textinput.New()
	m.filter.Prompt = "/ "
	m.filter.Placeholder = "type to filter"

	logger := m.logger
	regionBox := listbox.New(state.RegionOptions,
		listbox.WithSelected(state.Values.Region),
		listbox.WithOnSelectedItemChange(func(item string) {
			if err := form.SelectRegion(item); err != nil {
				logger.Warn("region selection rejected", "region", item, "error", err)
			}
		}),
	)
	m.regions = regionBox
	m.countries = listbox.New(form.Countries(),
		listbox.WithSelected(state.Values.Country),
		listbox.WithOnSelectedItemChange(func(item string) {
			if err := form.SelectCountry(item); err != nil {
				logger.Warn("country selection rejected", "country", item, "error", err)
				return
			}
			regionBox.SetItems(form.RegionOptions())
			regionBox.SetSelected(signup.RegionPlaceholder)
		}),
	)

	m.setFocus(fieldName)
	return m
}

func newInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.SetValue(value)
	return in
}

// Run starts a full-screen program for form. It returns ErrNotSubmitted when
// the user quits before signing up.
func Run(ctx context.Context, form *signup.Form, opts ...Option) error {
	if form == nil {
		return ErrMissingForm
	}
	p := tea.NewProgram(New(ctx, form, opts...), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive: %w", err)
	}
	if form.State().Phase != signup.PhaseSuccess {
		return ErrNotSubmitted
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case submitResultMsg:
		return m.handleSubmitResult(msg), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateFocusedInput(msg)
}

func (m Model) handleSubmitResult(msg submitResultMsg) Model {
	m.pending = false
	m.err = nil

	var validationErr *signup.ValidationError
	var submissionErr *signup.SubmissionError
	switch {
	case msg.err == nil, errors.As(msg.err, &submissionErr):
	case errors.As(msg.err, &validationErr):
		if _, ok := validationErr.Fields[signup.FieldName]; ok {
			m.setFocus(fieldName)
		} else {
			m.setFocus(fieldEmail)
		}
	case errors.Is(msg.err, signup.ErrSubmitInFlight):
	default:
		m.err = msg.err
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.form.State().Phase {
	case signup.PhaseSuccess:
		switch key {
		case "enter", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case signup.PhaseSubmitting:
		return m, nil
	}
	if m.pending {
		return m, nil
	}

	switch key {
	case "ctrl+s":
		cmd := m.submit()
		return m, cmd
	case "tab":
		m.closeMenus()
		m.setFocus(m.next(1))
		return m, nil
	case "shift+tab":
		m.closeMenus()
		m.setFocus(m.next(-1))
		return m, nil
	}

	switch m.focus {
	case fieldName, fieldEmail:
		switch key {
		case "enter", "down":
			m.setFocus(m.next(1))
			return m, nil
		case "up":
			m.setFocus(m.next(-1))
			return m, nil
		}
		return m.updateFocusedInput(msg)
	case fieldCountry:
		return m.updateCountry(msg)
	case fieldRegion:
		if m.regions.Len() > 1 {
			m.regions.HandleKey(key)
		}
		return m, nil
	case fieldSubmit:
		switch key {
		case "enter", " ":
			cmd := m.submit()
			return m, cmd
		case "up":
			m.setFocus(m.next(-1))
		}
	}
	return m, nil
}

func (m Model) updateCountry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if !m.countries.IsOpen() {
		m.countries.HandleKey(key)
		if m.countries.IsOpen() {
			m.filter.SetValue("")
			m.filter.Focus()
		}
		return m, nil
	}

	switch key {
	case "up", "down", "home", "end", "esc":
		m.countries.HandleKey(key)
		if !m.countries.IsOpen() {
			m.resetFilter()
		}
		return m, nil
	case "enter":
		m.countries.SelectHighlighted()
		if !m.countries.IsOpen() {
			m.resetFilter()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
		_ = m.form.SetName(m.name.Value())
	case fieldEmail:
		m.email, cmd = m.email.Update(msg)
		_ = m.form.SetEmail(m.email.Value())
	case fieldCountry:
		if m.countries.IsOpen() {
			m.filter, cmd = m.filter.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	m.closeMenus()
	m.pending = true
	form, ctx := m.form, m.ctx
	return func() tea.Msg {
		return submitResultMsg{err: form.Submit(ctx)}
	}
}

// applyFilter narrows the open country menu to fuzzy matches of the filter.
func (m *Model) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.countries.SetItems(m.form.Countries())
		return
	}
	m.countries.SetItems(regions.Search(m.form.Dataset().Countries(), query, 0, m.searchOptions))
}

func (m *Model) resetFilter() {
	m.filter.SetValue("")
	m.filter.Blur()
	m.countries.SetItems(m.form.Countries())
}

func (m *Model) closeMenus() {
	if m.countries.IsOpen() {
		m.countries.Close()
		m.resetFilter()
	}
	m.regions.Close()
}

func (m *Model) setFocus(f field) {
	m.focus = f
	m.name.Blur()
	m.email.Blur()
	switch f {
	case fieldName:
		m.name.Focus()
	case fieldEmail:
		m.email.Focus()
	}
}

// next returns the field delta steps away, skipping the region selector
// while it has nothing to choose.
func (m Model) next(delta int) field {
	f := m.focus
	for i := 0; i < int(fieldCount); i++ {
		f = field((int(f) + delta + int(fieldCount)) % int(fieldCount))
		if f == fieldRegion && m.regions.Len() <= 1 {
			continue
		}
		return f
	}
	return m.focus
}
