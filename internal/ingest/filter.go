package ingest

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidFilter is returned for filter expressions that are not valid regular expressions.
var ErrInvalidFilter = errors.New("invalid filter expression")

// CompileFilter compiles a filter expression (a regular expression matched
// against each item's full text).
func CompileFilter(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidFilter, expr, err)
	}
	return re, nil
}

// FilterItems returns the items whose text matches re, keeping their order.
func FilterItems(items []Item, re *regexp.Regexp) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if re.MatchString(it.Text) {
			out = append(out, it)
		}
	}
	return out
}
