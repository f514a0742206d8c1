package regions

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

//go:embed data/country_regions.json
var dataFS embed.FS

const defaultDatasetPath = "data/country_regions.json"

// maxSuggestDistance bounds how far a misspelt country name may be from a
// dataset entry before Suggest gives up.
const maxSuggestDistance = 3

var (
	defaultOnce    sync.Once
	defaultDataset *Dataset
	defaultErr     error
)

// Region is a single first-level subdivision of a country.
type Region struct {
	Name      string `json:"name" yaml:"name"`
	ShortCode string `json:"shortCode,omitempty" yaml:"shortCode,omitempty"`
}

// CountryRegionEntry maps a country to its ordered list of regions.
type CountryRegionEntry struct {
	CountryName      string   `json:"countryName" yaml:"countryName"`
	CountryShortCode string   `json:"countryShortCode,omitempty" yaml:"countryShortCode,omitempty"`
	Regions          []Region `json:"regions,omitempty" yaml:"regions,omitempty"`
}

// Dataset is an immutable, ordered collection of country entries. Accessors
// return copies so callers can never mutate the shared data.
type Dataset struct {
	entries []CountryRegionEntry
	index   map[string]int
}

// NewDataset builds a Dataset from entries. Blank country names are skipped
// and duplicates keep their first occurrence.
func NewDataset(entries []CountryRegionEntry) *Dataset {
	ds := &Dataset{
		entries: make([]CountryRegionEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, entry := range entries {
		name := strings.TrimSpace(entry.CountryName)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := ds.index[key]; ok {
			continue
		}
		entry.CountryName = name
		entry.Regions = cleanRegions(entry.Regions)
		ds.index[key] = len(ds.entries)
		ds.entries = append(ds.entries, entry)
	}
	return ds
}

// DefaultDataset returns the embedded country/region dataset. The file is
// parsed once per process.
func DefaultDataset() (*Dataset, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultDatasetPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		ds, err := LoadDataset(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultDataset = ds
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultDataset, nil
}

// LoadDataset parses a JSON array of country entries.
func LoadDataset(r io.Reader) (*Dataset, error) {
	if r == nil {
		return nil, fmt.Errorf("regions: missing reader")
	}
	var entries []CountryRegionEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("regions: decode dataset: %w", err)
	}
	return NewDataset(entries), nil
}

// LoadDatasetYAML parses a YAML list of country entries using the same field
// names as the JSON dataset.
func LoadDatasetYAML(r io.Reader) (*Dataset, error) {
	if r == nil {
		return nil, fmt.Errorf("regions: missing reader")
	}
	var entries []CountryRegionEntry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("regions: decode yaml dataset: %w", err)
	}
	return NewDataset(entries), nil
}

// LoadDatasetFile reads a dataset from disk, picking the decoder from the
// file extension (.yaml/.yml or JSON otherwise).
func LoadDatasetFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("regions: open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadDatasetYAML(f)
	default:
		return LoadDataset(f)
	}
}

// Len reports the number of countries.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Countries returns the country names in dataset order.
func (d *Dataset) Countries() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.entries))
	for _, entry := range d.entries {
		out = append(out, entry.CountryName)
	}
	return out
}

// Entries returns a copy of every entry in dataset order.
func (d *Dataset) Entries() []CountryRegionEntry {
	if d == nil {
		return nil
	}
	out := make([]CountryRegionEntry, 0, len(d.entries))
	for _, entry := range d.entries {
		out = append(out, copyEntry(entry))
	}
	return out
}

// Lookup finds a country entry by name, ignoring case and surrounding space.
func (d *Dataset) Lookup(country string) (CountryRegionEntry, bool) {
	if d == nil {
		return CountryRegionEntry{}, false
	}
	idx, ok := d.index[strings.ToLower(strings.TrimSpace(country))]
	if !ok {
		return CountryRegionEntry{}, false
	}
	return copyEntry(d.entries[idx]), true
}

// Has reports whether country is part of the dataset.
func (d *Dataset) Has(country string) bool {
	_, ok := d.Lookup(country)
	return ok
}

// RegionNames returns the region names of country in dataset order. Unknown
// countries and countries without regions yield an empty slice.
func (d *Dataset) RegionNames(country string) []string {
	entry, ok := d.Lookup(country)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(entry.Regions))
	for _, region := range entry.Regions {
		out = append(out, region.Name)
	}
	return out
}

// HasRegion reports whether region belongs to country.
func (d *Dataset) HasRegion(country, region string) bool {
	region = strings.TrimSpace(region)
	for _, name := range d.RegionNames(country) {
		if strings.EqualFold(name, region) {
			return true
		}
	}
	return false
}

// Suggest returns the country closest to name by edit distance. It reports
// false when nothing is within a small distance.
func (d *Dataset) Suggest(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return "", false
	}
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, entry := range d.entries {
		dist := levenshtein.ComputeDistance(query, strings.ToLower(entry.CountryName))
		if dist < bestDist {
			best, bestDist = entry.CountryName, dist
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// RegionOptions returns the selectable region list for country: the
// placeholder followed by the country's regions in dataset order.
func RegionOptions(d *Dataset, country, placeholder string) []string {
	names := d.RegionNames(country)
	out := make([]string, 0, len(names)+1)
	out = append(out, placeholder)
	return append(out, names...)
}

// RegionLabel returns the field label used for the region selector of country.
func RegionLabel(country string) string {
	if strings.EqualFold(strings.TrimSpace(country), "Canada") {
		return "Province"
	}
	return "State"
}

func cleanRegions(in []Region) []Region {
	if len(in) == 0 {
		return nil
	}
	out := make([]Region, 0, len(in))
	for _, region := range in {
		name := strings.TrimSpace(region.Name)
		if name == "" {
			continue
		}
		region.Name = name
		out = append(out, region)
	}
	return out
}

func copyEntry(entry CountryRegionEntry) CountryRegionEntry {
	if entry.Regions != nil {
		entry.Regions = append([]Region(nil), entry.Regions...)
	}
	return entry
}
