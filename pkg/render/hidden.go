package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Hidden field names understood by the server-rendered form.
const (
	HiddenSubmitCount = "submit_count"
	HiddenCSRF        = "_csrf"
)

// HiddenField is a hidden form input emitted alongside the visible fields.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs the hidden CSRF field.
func CSRFToken(token string) HiddenField {
	return Hidden(HiddenCSRF, token)
}

// SubmitCount constructs the hidden field that carries the number of submit
// attempts across server-rendered round trips.
func SubmitCount(n int) HiddenField {
	return Hidden(HiddenSubmitCount, strconv.Itoa(n))
}

// SortedHiddenFields drops empty names, lets later fields win on name
// collisions and sorts the result for deterministic rendering.
func SortedHiddenFields(fields []HiddenField) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	clean := make(map[string]string, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Name)
		if key == "" {
			continue
		}
		clean[key] = field.Value
	}
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}
