package render

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultLocale is the locale of the built-in messages.
const DefaultLocale = "en"

// Message keys.
const (
	KeyHeaderDefault  = "header.default"
	KeyIntroDefault   = "intro.default"
	KeyHeaderFatal    = "header.fatal"
	KeyIntroFatal     = "intro.fatal"
	KeyHeaderRejected = "header.rejected"
	KeyIntroRejected  = "intro.rejected"
	KeyHeaderSuccess  = "header.success"
	KeyIntroSuccess   = "intro.success"

	KeyLabelName     = "label.name"
	KeyLabelEmail    = "label.email"
	KeyLabelCountry  = "label.country"
	KeyLabelProvince = "label.province"
	KeyLabelState    = "label.state"

	KeyPlaceholderName  = "placeholder.name"
	KeyPlaceholderEmail = "placeholder.email"

	KeySubmit        = "action.submit"
	KeySubmitting    = "action.submitting"
	KeyUpdateRegions = "action.updateRegions"
	KeyRequiredNote  = "note.required"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler returns the string to use when key could not be
// translated. args carries a map with the "default" fallback.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Catalog is a map-backed Translator keyed by locale and then message key.
// Locales missing a key fall back to DefaultLocale.
type Catalog map[string]map[string]string

// Translate implements Translator. Args, when present, are applied with
// fmt.Sprintf.
func (c Catalog) Translate(locale, key string, args ...any) (string, error) {
	msg, ok := c.lookup(locale, key)
	if !ok {
		return "", fmt.Errorf("render: no message %q for locale %q", key, locale)
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...), nil
	}
	return msg, nil
}

func (c Catalog) lookup(locale, key string) (string, bool) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		locale = DefaultLocale
	}
	if msgs, ok := c[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg, true
		}
	}
	if base, _, found := strings.Cut(locale, "-"); found {
		if msgs, ok := c[base]; ok {
			if msg, ok := msgs[key]; ok {
				return msg, true
			}
		}
	}
	msg, ok := c[DefaultLocale][key]
	return msg, ok
}

// DefaultMessages returns a copy of the built-in English messages. Values may
// carry inline <strong>/<em> markup; renderers sanitise before output.
func DefaultMessages() map[string]string {
	out := make(map[string]string, len(defaultMessages))
	for k, v := range defaultMessages {
		out[k] = v
	}
	return out
}

// DefaultCatalog returns a Catalog holding DefaultMessages.
func DefaultCatalog() Catalog {
	return Catalog{DefaultLocale: DefaultMessages()}
}

var defaultMessages = map[string]string{
	KeyHeaderDefault:  "Newsletter",
	KeyIntroDefault:   "I'm sending an update once a month. I'll never sell your email. And you can really, truly unsubscribe anytime.",
	KeyHeaderFatal:    "Our server returned an error (it's us, not you)",
	KeyIntroFatal:     "Please click the <strong>Sign me up</strong> button to try again. We saved your input below:",
	KeyHeaderRejected: "Something went wrong :(",
	KeyIntroRejected:  "Please review the following fields:",
	KeyHeaderSuccess:  "Successfully signed up to the newsletter",
	KeyIntroSuccess:   "See you soon in an inbox near you ;)",

	KeyLabelName:     "Name",
	KeyLabelEmail:    "Email",
	KeyLabelCountry:  "Country",
	KeyLabelProvince: "Province",
	KeyLabelState:    "State",

	KeyPlaceholderName:  "Johnny Appleseed",
	KeyPlaceholderEmail: "johnny@example.com",

	KeySubmit:        "Sign me up",
	KeySubmitting:    "Signing you up...",
	KeyUpdateRegions: "Update regions",
	KeyRequiredNote:  "* required fields",
}

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if m, ok := arg.(map[string]any); ok {
			if fallback, ok := m["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

// translate resolves key through t, falling back to the built-in message
// and finally to onMissing.
func translate(locale, key string, t Translator, onMissing MissingTranslationHandler) string {
	fallback := defaultMessages[key]
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	if t == nil {
		if fallback != "" {
			return fallback
		}
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
}
