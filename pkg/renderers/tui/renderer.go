package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-signup/pkg/render"
)

// Renderer prints signup views to a terminal and drives the prompt flow.
type Renderer struct {
	driver        PromptDriver
	outputFormat  OutputFormat
	theme         Theme
	renderOptions render.RenderOptions
	logger        *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, pretty text).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatPrettyText,
		theme:        DefaultTheme(),
		logger:       slog.Default(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

// Render serializes view as plain text, or JSON when configured.
func (r *Renderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.outputFormat == OutputFormatJSON {
		out, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode view: %w", err)
		}
		return out, nil
	}
	return []byte(r.text(view)), nil
}

func (r *Renderer) text(view render.View) string {
	var b strings.Builder

	prefix := r.theme.InfoPrefix
	if view.ServerError {
		prefix = r.theme.ErrorPrefix
	}
	b.WriteString(prefix)
	b.WriteString(render.PlainText(view.Header))
	b.WriteString("\n")
	if intro := render.PlainText(view.Intro); intro != "" {
		b.WriteString(intro)
		b.WriteString("\n")
	}
	for _, message := range view.Messages {
		if message = render.PlainText(message); message == "" {
			continue
		}
		b.WriteString("  - ")
		b.WriteString(message)
		b.WriteString("\n")
	}
	for _, field := range view.Fields {
		if field.Error == "" {
			continue
		}
		b.WriteString(r.theme.ErrorPrefix)
		b.WriteString(field.Error)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
