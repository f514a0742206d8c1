package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/tui"
	"github.com/goliatone/go-signup/pkg/signup"
)

func newSubmitCmd(a *app) *cobra.Command {
	var (
		values signup.FormValues
		output string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a signup non-interactively",
		Long: `Submit a signup from flags and print the resulting form state.

The command exits non-zero when the endpoint rejects the signup or cannot be
reached.`,
		Example: `  signup submit --name Ada --email ada@example.com --country Canada --region Ontario`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := tui.OutputFormat(output)
			if format != tui.OutputFormatPrettyText && format != tui.OutputFormatJSON {
				return fmt.Errorf("unknown output format %q", output)
			}

			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			form, err := a.newForm(ds)
			if err != nil {
				return err
			}
			if err := form.SetName(values.Name); err != nil {
				return err
			}
			if err := form.SetEmail(values.Email); err != nil {
				return err
			}
			if err := form.SelectCountry(values.Country); err != nil {
				if isUnknownCountry(err) {
					return unknownCountry(ds, values.Country)
				}
				return err
			}
			if values.Region != "" {
				if err := form.SelectRegion(values.Region); err != nil {
					return err
				}
			}

			submitErr := form.Submit(cmd.Context())

			renderer := tui.New(tui.WithOutputFormat(format))
			view := render.Build(form.State(), form.Countries(), a.renderOptions())
			out, err := renderer.Render(cmd.Context(), view)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return submitErr
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&values.Name, "name", "", "subscriber name")
	flags.StringVar(&values.Email, "email", "", "subscriber email")
	flags.StringVar(&values.Country, "country", "", "country name")
	flags.StringVar(&values.Region, "region", "", "region name (optional)")
	flags.StringVarP(&output, "output", "o", string(tui.OutputFormatPrettyText), "output format: pretty or json")
	return cmd
}
