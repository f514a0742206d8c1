package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/components/regions"
	"github.com/goliatone/go-signup/internal/config"
	"github.com/goliatone/go-signup/pkg/client"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/signup"
)

// app carries the resolved configuration shared by all subcommands.
type app struct {
	configPath string
	logLevel   string
	endpoint   string
	dataset    string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:     "signup",
		Short:   "Newsletter signup form for the terminal and the browser",
		Version: Version,
		Long: `signup collects a name, an email address, a country and a region and
posts them to a newsletter endpoint.

Configuration is read from signup.yaml (or --config) and SIGNUP_* environment
variables; flags override both.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./signup.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.endpoint, "endpoint", "", "signup endpoint URL")
	flags.StringVar(&a.dataset, "dataset", "", "country/region dataset file (.json or .yaml)")

	root.AddCommand(
		newTUICmd(a),
		newPromptCmd(a),
		newSubmitCmd(a),
		newRegionsCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.endpoint != "" {
		cfg.Client.Endpoint = a.endpoint
	}
	if a.dataset != "" {
		cfg.Dataset.Path = a.dataset
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) loadDataset() (*regions.Dataset, error) {
	if a.cfg.Dataset.Path == "" {
		return regions.DefaultDataset()
	}
	return regions.LoadDatasetFile(a.cfg.Dataset.Path)
}

func (a *app) client() *client.Client {
	return client.New(
		client.WithEndpoint(a.cfg.Client.Endpoint),
		client.WithTimeout(a.cfg.Client.Timeout),
		client.WithLogger(a.logger),
	)
}

func (a *app) newForm(ds *regions.Dataset) (*signup.Form, error) {
	return signup.NewForm(a.client(),
		signup.WithDataset(ds),
		signup.WithLogger(a.logger),
	)
}

func (a *app) renderOptions() render.RenderOptions {
	return render.RenderOptions{
		Locale:     a.cfg.Render.Locale,
		Translator: render.DefaultCatalog(),
	}
}

// themeConfig maps the render.theme settings onto a go-theme renderer
// configuration. Nil when no theme is configured.
func (a *app) themeConfig() *theme.RendererConfig {
	rc := a.cfg.Render
	if rc.Theme == "" && rc.Variant == "" && len(rc.Vars) == 0 {
		return nil
	}
	vars := make(map[string]string, len(rc.Vars))
	for key, value := range rc.Vars {
		if !strings.HasPrefix(key, "--") {
			key = "--" + key
		}
		vars[key] = value
	}
	return &theme.RendererConfig{
		Theme:   rc.Theme,
		Variant: rc.Variant,
		CSSVars: vars,
	}
}

// unknownCountry builds a friendly error, with a suggestion when one is
// close enough.
func unknownCountry(ds *regions.Dataset, name string) error {
	if suggestion, ok := ds.Suggest(name); ok {
		return fmt.Errorf("%w: %q (did you mean %q?)", signup.ErrUnknownCountry, name, suggestion)
	}
	return fmt.Errorf("%w: %q", signup.ErrUnknownCountry, name)
}

func isUnknownCountry(err error) bool {
	return errors.Is(err, signup.ErrUnknownCountry)
}
