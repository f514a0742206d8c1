package tui

import (
	"log/slog"

	"github.com/goliatone/go-signup/pkg/render"
)

// OutputFormat controls how Render serializes a view.
type OutputFormat string

const (
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
	// OutputFormatJSON emits the view as application/json.
	OutputFormatJSON OutputFormat = "json"
)

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// DefaultTheme is applied when no theme is configured.
func DefaultTheme() Theme {
	return Theme{ErrorPrefix: "! ", InfoPrefix: ""}
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithRenderOptions sets the locale and translator used to build views
// during Run.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(r *Renderer) {
		r.renderOptions = opts
	}
}

// WithLogger sets the logger used for flow events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
