package regions

import "net/http"

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	CountriesPath   string
	RegionsPath     string
	SearchParam     string
	LimitParam      string
	CountryParam    string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc

	Dataset *Dataset
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		CountriesPath:   "/api/countries",
		RegionsPath:     "/api/regions",
		SearchParam:     "q",
		LimitParam:      "limit",
		CountryParam:    "country",
		DefaultLimit:    250,
		MaxLimit:        500,
		EmptySearchMode: EmptySearchTop,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}

	defaults := DefaultOptions()
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaults.DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaults.MaxLimit
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = defaults.EmptySearchMode
	}
	if opts.CountriesPath == "" {
		opts.CountriesPath = defaults.CountriesPath
	}
	if opts.RegionsPath == "" {
		opts.RegionsPath = defaults.RegionsPath
	}
	if opts.SearchParam == "" {
		opts.SearchParam = defaults.SearchParam
	}
	if opts.LimitParam == "" {
		opts.LimitParam = defaults.LimitParam
	}
	if opts.CountryParam == "" {
		opts.CountryParam = defaults.CountryParam
	}
	return opts
}

func WithCountriesPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CountriesPath = path
	}
}

func WithRegionsPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RegionsPath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithCountryParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CountryParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithDataset serves ds instead of the embedded dataset.
func WithDataset(ds *Dataset) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Dataset = ds
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
