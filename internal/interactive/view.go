package interactive

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-signup/pkg/listbox"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/signup"
)

const helpText = "tab next • shift+tab back • enter choose • ctrl+s sign up • ctrl+c quit"

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.form.State()
	view := render.Build(state, m.form.Countries(), m.renderOptions)

	var b strings.Builder
	b.WriteString(m.header(view))

	if view.Success {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("press enter to quit"))
		return m.frame(containerStyle).Render(b.String())
	}

	b.WriteString("\n")
	m.writeInput(&b, fieldName, view.Fields[0], m.name)
	m.writeInput(&b, fieldEmail, view.Fields[1], m.email)
	m.writeSelect(&b, fieldCountry, view.Country, m.countries, true)
	m.writeSelect(&b, fieldRegion, view.Region, m.regions, false)

	button := buttonStyle
	if m.focus == fieldSubmit {
		button = buttonFocusedStyle
	}
	b.WriteString(button.Render(view.SubmitLabel))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(view.RequiredNote))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorTextStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(helpText))

	style := containerStyle
	if view.ErrorStyle {
		style = errorContainerStyle
	}
	return m.frame(style).Render(b.String())
}

func (m Model) frame(style lipgloss.Style) lipgloss.Style {
	if m.width <= 0 {
		return style
	}
	return style.Width(min(m.width-2, maxWidth))
}

func (m Model) header(view render.View) string {
	style := headerStyle
	switch {
	case view.Success:
		style = successHeaderStyle
	case view.ServerError:
		style = errorHeaderStyle
	}

	var b strings.Builder
	b.WriteString(style.Render(view.Header))
	b.WriteString("\n")
	if intro := render.PlainText(view.Intro); intro != "" {
		b.WriteString(mutedStyle.Render(intro))
		b.WriteString("\n")
	}
	for _, message := range view.Messages {
		b.WriteString(errorTextStyle.Render("• " + render.PlainText(message)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) label(f field, text string) string {
	if m.focus == f {
		return focusedLabelStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func (m Model) writeInput(b *strings.Builder, f field, fv render.FieldView, input textinput.Model) {
	b.WriteString(m.label(f, fv.Label))
	b.WriteString("\n")
	b.WriteString(input.View())
	b.WriteString("\n")
	if fv.Error != "" {
		b.WriteString(errorTextStyle.Render(fv.Error))
		b.WriteString("\n")
	}
}

func (m Model) writeSelect(b *strings.Builder, f field, sv render.SelectView, lb *listbox.Listbox, filterable bool) {
	b.WriteString(m.label(f, sv.Label))
	b.WriteString("\n")

	style := selectStyle
	switch {
	case sv.Disabled:
		style = disabledSelectStyle
	case m.focus == f:
		style = focusedSelectStyle
	}
	value := sv.Value
	if value == "" {
		value = signup.RegionPlaceholder
	}
	b.WriteString(style.Render(value + " ▾"))
	b.WriteString("\n")

	if !lb.IsOpen() {
		return
	}
	if filterable {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	b.WriteString(renderMenu(lb))
}

func renderMenu(lb *listbox.Listbox) string {
	items := lb.Items()
	if len(items) == 0 {
		return mutedStyle.Render("  no matches") + "\n"
	}

	start, end := lb.Window(maxVisibleOptions)
	highlighted := lb.Highlighted()

	var b strings.Builder
	for i := start; i < end; i++ {
		if i == highlighted {
			b.WriteString(cursorStyle.Render("> "))
			b.WriteString(highlightedItemStyle.Render(items[i]))
		} else {
			b.WriteString("  ")
			b.WriteString(itemStyle.Render(items[i]))
		}
		b.WriteString("\n")
	}
	if end < len(items) || start > 0 {
		b.WriteString(mutedStyle.Render("  …"))
		b.WriteString("\n")
	}
	return b.String()
}
