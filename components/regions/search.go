package regions

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Option is the value/label pair served to form inputs.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Search filters names with a fuzzy match on query. Prefix matches rank
// first; the rest keep the fuzzy score order. An empty query returns the
// leading names when opts.EmptySearchMode is EmptySearchTop.
func Search(names []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(names) <= limit {
				return append([]string{}, names...)
			}
			return append([]string{}, names[:limit]...)
		}
		return nil
	}

	found := fuzzy.Find(query, names)
	matches := make([]matchedName, 0, len(found))
	lowerQuery := strings.ToLower(query)
	for rank, match := range found {
		matches = append(matches, matchedName{
			name:     match.Str,
			rank:     rank,
			isPrefix: strings.HasPrefix(strings.ToLower(match.Str), lowerQuery),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].rank < matches[j].rank
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

// SearchOptions runs Search and maps each result to an Option.
func SearchOptions(names []string, query string, limit int, opts Options) []Option {
	return toOptions(Search(names, query, limit, opts))
}

func toOptions(names []string) []Option {
	if len(names) == 0 {
		return nil
	}
	out := make([]Option, 0, len(names))
	for _, name := range names {
		out = append(out, Option{Value: name, Label: name})
	}
	return out
}

type matchedName struct {
	name     string
	rank     int
	isPrefix bool
}
