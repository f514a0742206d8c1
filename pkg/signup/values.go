package signup

import (
	"strings"
)

const (
	// CountryPlaceholder is the country value before a choice is made.
	CountryPlaceholder = "Select a country"
	// RegionPlaceholder is the region value before a choice is made. It is
	// sent as null.
	RegionPlaceholder = "Select a region"
)

// Field names used as keys in FieldErrors.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldCountry = "country"
	FieldRegion  = "region"
)

// FormValues are the user-entered values. Region is only meaningful for the
// current Country.
type FormValues struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Country string `json:"country"`
	Region  string `json:"region"`
}

// DefaultValues returns the values of a fresh form.
func DefaultValues() FormValues {
	return FormValues{
		Country: CountryPlaceholder,
		Region:  RegionPlaceholder,
	}
}

// Payload is the JSON body posted to the signup endpoint.
type Payload struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Country string  `json:"country"`
	Region  *string `json:"region"`
}

// NewPayload builds the request body from values. Text fields and the
// country are sent as entered; only the region placeholder is replaced, by
// null.
func NewPayload(values FormValues) Payload {
	payload := Payload{
		Name:    values.Name,
		Email:   values.Email,
		Country: values.Country,
	}
	if values.Region != RegionPlaceholder {
		region := values.Region
		payload.Region = &region
	}
	return payload
}

// FieldErrors maps a field name to its local validation message.
type FieldErrors map[string]string

// Validate runs the local checks that gate a submit: name and email are
// required after trimming.
func Validate(values FormValues) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(values.Name) == "" {
		errs[FieldName] = "Name is required"
	}
	if strings.TrimSpace(values.Email) == "" {
		errs[FieldEmail] = "Email is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (e FieldErrors) clone() FieldErrors {
	if len(e) == 0 {
		return nil
	}
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
