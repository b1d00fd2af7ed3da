package cli

import (
	"context"
	"regexp"

	"github.com/rshade/vlist/internal/ingest"
	"github.com/rshade/vlist/internal/logging"
)

// ApplyFilters validates and applies a slice of filter expressions to the items.
// It logs validation failures and filter application results for debugging.
//
// The function performs two passes:
//  1. Validation: All filters are compiled upfront. If any filter is invalid,
//     an error is returned immediately without applying any filters.
//  2. Application: Filters are applied sequentially, so an item must match all of them.
//
// An empty filter slice returns the original items unchanged; empty strings are ignored.
// A warning is logged if the filtered result is empty.
func ApplyFilters(ctx context.Context, items []ingest.Item, filters []string) ([]ingest.Item, error) {
	log := logging.FromContext(ctx)

	if len(filters) == 0 {
		return items, nil
	}

	compiled := make([]*regexp.Regexp, 0, len(filters))
	for _, f := range filters {
		if f == "" {
			continue
		}
		re, err := ingest.CompileFilter(f)
		if err != nil {
			log.Warn().
				Str("component", "cli").
				Str("operation", "apply_filters").
				Str("filter", f).
				Err(err).
				Msg("invalid filter expression")
			return nil, err
		}
		compiled = append(compiled, re)
	}

	result := items
	for _, re := range compiled {
		before := len(result)
		result = ingest.FilterItems(result, re)
		log.Debug().
			Str("component", "cli").
			Str("operation", "apply_filters").
			Str("filter", re.String()).
			Int("before", before).
			Int("after", len(result)).
			Msg("applied filter")
	}

	if len(result) == 0 && len(items) > 0 {
		log.Warn().
			Str("component", "cli").
			Str("operation", "apply_filters").
			Int("original_count", len(items)).
			Msg("no items match filter criteria")
	}

	return result, nil
}
