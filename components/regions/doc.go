// Package regions provides the embedded country/region dataset, the pure
// country→region derivation used by dependent selectors, search helpers and
// small net/http handlers that return JSON options for form inputs.
//
// The backing data is loaded once from data/country_regions.json. A dataset
// can be replaced with LoadDatasetFile for JSON or YAML overrides.
package regions
