package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/internal/interactive"
	"github.com/goliatone/go-signup/pkg/renderers/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Fill in the signup form in a full-screen terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			form, err := a.newForm(ds)
			if err != nil {
				return err
			}
			err = interactive.Run(cmd.Context(), form,
				interactive.WithRenderOptions(a.renderOptions()),
				interactive.WithLogger(a.logger),
			)
			if errors.Is(err, interactive.ErrNotSubmitted) {
				return nil
			}
			return err
		},
	}
}

func newPromptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the signup form one question at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			form, err := a.newForm(ds)
			if err != nil {
				return err
			}
			renderer := tui.New(
				tui.WithRenderOptions(a.renderOptions()),
				tui.WithLogger(a.logger),
				tui.WithTheme(tui.Theme{PromptPrefix: "", InfoPrefix: "", ErrorPrefix: "! "}),
			)
			err = renderer.Run(cmd.Context(), form)
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			return err
		},
	}
}
