package regions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type optionsResponse struct {
	Data []Option `json:"data"`
}

type regionsResponse struct {
	Country string   `json:"country"`
	Label   string   `json:"label"`
	Data    []Option `json:"data"`
}

// CountriesHandler builds a handler that lists countries, optionally
// filtered by the search parameter.
func CountriesHandler(fns ...OptionFn) http.Handler {
	return CountriesHandlerWithOptions(NewOptions(fns...))
}

// CountriesHandlerWithOptions builds the countries handler from a
// pre-constructed Options value.
func CountriesHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return guarded(opts, func(w http.ResponseWriter, r *http.Request, ds *Dataset) {
		query := r.URL.Query().Get(opts.SearchParam)
		limit := parseInt(r.URL.Query().Get(opts.LimitParam))

		results := SearchOptions(ds.Countries(), query, limit, opts)
		if results == nil {
			results = []Option{}
		}
		writeJSON(w, r, http.StatusOK, optionsResponse{Data: results})
	})
}

// RegionsHandler builds a handler that lists the regions of the country
// named by the country parameter. The placeholder is never included; it is a
// client concern.
func RegionsHandler(fns ...OptionFn) http.Handler {
	return RegionsHandlerWithOptions(NewOptions(fns...))
}

// RegionsHandlerWithOptions builds the regions handler from a
// pre-constructed Options value.
func RegionsHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return guarded(opts, func(w http.ResponseWriter, r *http.Request, ds *Dataset) {
		country := strings.TrimSpace(r.URL.Query().Get(opts.CountryParam))
		if country == "" {
			http.Error(w, "missing "+opts.CountryParam+" parameter", http.StatusBadRequest)
			return
		}
		entry, ok := ds.Lookup(country)
		if !ok {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		results := toOptions(ds.RegionNames(entry.CountryName))
		if results == nil {
			results = []Option{}
		}
		writeJSON(w, r, http.StatusOK, regionsResponse{
			Country: entry.CountryName,
			Label:   RegionLabel(entry.CountryName),
			Data:    results,
		})
	})
}

func guarded(opts Options, serve func(http.ResponseWriter, *http.Request, *Dataset)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		ds := opts.Dataset
		if ds == nil {
			loaded, err := DefaultDataset()
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			ds = loaded
		}
		serve(w, r, ds)
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
