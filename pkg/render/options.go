package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the form state.
type RenderOptions struct {
	// Locale selects the message catalog entry. Empty uses DefaultLocale.
	Locale string
	// Translator resolves message keys. Nil falls back to the built-in
	// English messages.
	Translator Translator
	// OnMissing controls the string used when a key cannot be translated.
	OnMissing MissingTranslationHandler
	// Action is the URL the HTML form posts to.
	Action string
	// Hidden fields are emitted alongside the visible inputs.
	Hidden []HiddenField
}
