package regions

import "net/http"

// Component bundles the dataset-backed handlers, their configuration and
// routing helpers.
type Component struct {
	opts Options
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Dataset returns the dataset the component serves.
func (c *Component) Dataset() (*Dataset, error) {
	if c == nil || c.opts.Dataset == nil {
		return DefaultDataset()
	}
	return c.opts.Dataset, nil
}

// CountriesHandler returns a net/http handler for country queries.
func (c *Component) CountriesHandler() http.Handler {
	if c == nil {
		return CountriesHandler()
	}
	return CountriesHandlerWithOptions(c.opts)
}

// RegionsHandler returns a net/http handler for region queries.
func (c *Component) RegionsHandler() http.Handler {
	if c == nil {
		return RegionsHandler()
	}
	return RegionsHandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component handlers under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) ([]string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
