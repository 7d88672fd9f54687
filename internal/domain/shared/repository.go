package shared

import (
	"strconv"
	"strings"
)

// Filter represents list query options.
// Search is interpreted per entity: a substring on text fields or an exact
// identifier match.
type Filter struct {
	Search string
}

// NewFilter returns a filter for the given search term
func NewFilter(search string) Filter {
	return Filter{Search: search}
}

// HasSearch reports whether a search term was supplied
func (f Filter) HasSearch() bool {
	return f.Search != ""
}

// SearchID parses the search term as an identifier for exact-match lookups.
// ok is false when the term is not an integer, in which case nothing matches.
func (f Filter) SearchID() (id int64, ok bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(f.Search), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
