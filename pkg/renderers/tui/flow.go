package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/signup"
)

const (
	retryMessage = "Try again?"
	pageSize     = 12
)

// ErrMissingForm is returned by Run when no form is supplied.
var ErrMissingForm = errors.New("tui: missing form")

// Run prompts for every field, submits form and prints the outcome. After a
// failed submission it offers a retry with the previous answers as defaults.
// It returns nil once the signup succeeded.
func (r *Renderer) Run(ctx context.Context, form *signup.Form) error {
	if form == nil {
		return ErrMissingForm
	}

	shown := false
	for {
		if !shown {
			if err := r.show(ctx, form); err != nil {
				return err
			}
		}
		shown = false

		if form.State().Phase == signup.PhaseSuccess {
			return nil
		}
		if err := r.collect(ctx, form); err != nil {
			return err
		}

		err := form.Submit(ctx)
		var validationErr *signup.ValidationError
		var submissionErr *signup.SubmissionError
		switch {
		case err == nil, errors.As(err, &validationErr):
			continue
		case errors.As(err, &submissionErr):
			r.logger.Debug("signup prompt submission failed", "status", submissionErr.Status)
			if err := r.show(ctx, form); err != nil {
				return err
			}
			shown = true
			again, err := r.driver.Confirm(ctx, ConfirmConfig{
				Message: r.theme.PromptPrefix + retryMessage,
				Default: true,
			})
			if err != nil {
				return err
			}
			if !again {
				return fmt.Errorf("%w: %w", ErrGaveUp, submissionErr)
			}
		default:
			return err
		}
	}
}

func (r *Renderer) show(ctx context.Context, form *signup.Form) error {
	out, err := r.Render(ctx, r.view(form))
	if err != nil {
		return err
	}
	return r.driver.Info(ctx, string(out))
}

func (r *Renderer) view(form *signup.Form) render.View {
	return render.Build(form.State(), form.Countries(), r.renderOptions)
}

func (r *Renderer) collect(ctx context.Context, form *signup.Form) error {
	view := r.view(form)
	values := form.State().Values

	name, err := r.driver.Input(ctx, InputConfig{
		Message:   r.label(view.Fields[0].Label),
		Default:   values.Name,
		Validator: requiredValue("Name is required"),
	})
	if err != nil {
		return err
	}
	if err := form.SetName(name); err != nil {
		return err
	}

	email, err := r.driver.Input(ctx, InputConfig{
		Message:   r.label(view.Fields[1].Label),
		Default:   values.Email,
		Validator: requiredValue("Email is required"),
	})
	if err != nil {
		return err
	}
	if err := form.SetEmail(email); err != nil {
		return err
	}

	countries := form.Dataset().Countries()
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.label(view.Country.Label),
		Options:      countries,
		DefaultIndex: indexOf(countries, values.Country),
		PageSize:     pageSize,
		Filter:       fuzzyMatch,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(countries) {
		return fmt.Errorf("tui: country selection %d out of range", idx)
	}
	if countries[idx] != values.Country {
		if err := form.SelectCountry(countries[idx]); err != nil {
			return err
		}
	}

	options := form.RegionOptions()
	if len(options) <= 1 {
		return nil
	}
	choices := options[1:]
	view = r.view(form)
	idx, err = r.driver.Select(ctx, SelectConfig{
		Message:      r.label(view.Region.Label),
		Options:      choices,
		DefaultIndex: indexOf(choices, view.Region.Value),
		PageSize:     pageSize,
		Filter:       fuzzyMatch,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(choices) {
		return fmt.Errorf("tui: region selection %d out of range", idx)
	}
	return form.SelectRegion(choices[idx])
}

func (r *Renderer) label(label string) string {
	return r.theme.PromptPrefix + label
}

func requiredValue(message string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New(message)
		}
		return nil
	}
}

func fuzzyMatch(filter, value string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	return len(fuzzy.Find(filter, []string{value})) > 0
}
