// Package html renders the signup form as a server-side HTML page that
// works without JavaScript.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-signup/pkg/render"
	rendertemplate "github.com/goliatone/go-signup/pkg/render/template"
	"github.com/goliatone/go-signup/pkg/render/template/pongo"
)

const (
	pageTemplate     = "templates/page.tmpl"
	fragmentTemplate = "templates/form.tmpl"
	defaultTitle     = "Newsletter signup"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	title            string
	fragment         bool
	stylesheet       *string
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// templates/page.tmpl and templates/form.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies a go-theme renderer configuration. CSS variables are
// emitted in a :root block and the "stylesheet" asset, when resolvable, is
// linked.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// WithFragment renders only the form section, without the page shell.
func WithFragment(fragment bool) Option {
	return func(cfg *config) {
		cfg.fragment = fragment
	}
}

// WithStylesheet replaces the inline default stylesheet. An empty string
// disables it.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

// Renderer implements render.Renderer for HTML output.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	theme      rendererTheme
	title      string
	fragment   bool
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), title: defaultTitle}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	stylesheet := defaultStylesheet()
	if cfg.stylesheet != nil {
		stylesheet = *cfg.stylesheet
	}

	return &Renderer{
		templates:  renderer,
		theme:      buildThemeContext(cfg.theme),
		title:      cfg.title,
		fragment:   cfg.fragment,
		stylesheet: stylesheet,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders view. Intro text and server messages are sanitised to
// inline markup before they reach the template.
func (r *Renderer) Render(_ context.Context, view render.View) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	name := pageTemplate
	if r.fragment {
		name = fragmentTemplate
	}

	result, err := r.templates.RenderTemplate(name, map[string]any{
		"view":           view,
		"title":          r.title,
		"containerClass": view.ContainerClass(),
		"introHTML":      sanitizeInline(view.Intro),
		"messagesHTML":   sanitizeAll(view.Messages),
		"stylesheet":     r.stylesheet,
		"theme":          r.theme,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type rendererTheme struct {
	Name          string            `json:"name,omitempty"`
	Variant       string            `json:"variant,omitempty"`
	CSSVars       map[string]string `json:"cssVars,omitempty"`
	CSSVarsStyle  string            `json:"cssVarsStyle,omitempty"`
	StylesheetURL string            `json:"stylesheetURL,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	ctx := rendererTheme{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		CSSVars: copyStringMap(cfg.CSSVars),
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	if cfg.AssetURL != nil {
		ctx.StylesheetURL = cfg.AssetURL("stylesheet")
	}
	return ctx
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		name := sanitizeCSSToken(key)
		value := sanitizeCSSToken(vars[key])
		if name == "" || value == "" {
			continue
		}
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// sanitizeCSSToken drops characters that could close the declaration or the
// surrounding style element.
func sanitizeCSSToken(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\n', '\r':
			return -1
		}
		return r
	}, s))
}
