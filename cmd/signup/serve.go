package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/internal/devserver"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/html"
	"github.com/goliatone/go-signup/pkg/renderers/tui"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr       string
		failStatus int
		remote     bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dev server: HTML form, option API and stub endpoint",
		Long: `Run a local HTTP server hosting the signup form at /, the country and
region option API under /api and a stub POST /newsletter-signup endpoint.

By default the form submits to the stub in process; --remote posts to the
configured endpoint instead. --fail-status makes the stub answer every
signup with the given status, e.g. 500 to preview the fatal error state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("fail-status") {
				cfg.FailStatus = failStatus
			}

			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			registry, err := a.rendererRegistry()
			if err != nil {
				return err
			}

			opts := []devserver.Option{
				devserver.WithDataset(ds),
				devserver.WithRegistry(registry),
				devserver.WithTranslator(render.DefaultCatalog()),
				devserver.WithLogger(a.logger),
			}
			if remote {
				opts = append(opts, devserver.WithSubmitter(a.client()))
			}

			srv, err := devserver.New(devserver.Config{
				Addr:            cfg.Addr,
				ShutdownTimeout: cfg.ShutdownTimeout,
				FailStatus:      cfg.FailStatus,
				Renderer:        a.cfg.Render.Renderer,
				Locale:          a.cfg.Render.Locale,
			}, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":3000", "listen address")
	cmd.Flags().IntVar(&failStatus, "fail-status", 0, "answer every stub signup with this status")
	cmd.Flags().BoolVar(&remote, "remote", false, "submit the form to the configured endpoint")
	return cmd
}

// rendererRegistry registers the page renderers selectable via
// render.renderer: "html" and the plain-text "tui" view.
func (a *app) rendererRegistry() (*render.Registry, error) {
	htmlRenderer, err := html.New(
		html.WithTemplatesDir(a.cfg.Render.TemplatesDir),
		html.WithTitle(a.cfg.Render.Title),
		html.WithTheme(a.themeConfig()),
	)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	if err := registry.Register(htmlRenderer, tui.New()); err != nil {
		return nil, err
	}
	return registry, nil
}
