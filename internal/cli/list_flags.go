package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/vlist/internal/config"
	"github.com/rshade/vlist/internal/ingest"
	"github.com/rshade/vlist/internal/window"
)

// listFlags holds the list layout flags shared by view and frame.
type listFlags struct {
	itemHeight float64
	height     float64
	dynamic    bool
	markdown   bool
	split      string
	filters    []string
}

// listSettings is the effective list layout after config and flags are merged.
type listSettings struct {
	ItemHeight float64
	Height     float64
	Dynamic    bool
	Markdown   bool
	Split      ingest.SplitMode
	ClassName  string
	Styles     window.Style
	Filters    []string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.itemHeight, "item-height", 0,
		"fixed height of every item (overrides list.item_height)")
	cmd.Flags().Float64Var(&f.height, "height", 0,
		"viewport height (overrides list.height)")
	cmd.Flags().BoolVar(&f.dynamic, "dynamic", false,
		"size every item by its line count (overrides list.dynamic_height)")
	cmd.Flags().BoolVar(&f.markdown, "markdown", false,
		"render items as markdown before measuring them; implies --dynamic")
	cmd.Flags().StringVar(&f.split, "split", "",
		"how input is cut into items: lines or blocks (overrides list.split)")
	cmd.Flags().StringArrayVar(&f.filters, "filter", nil,
		"keep only items matching this regular expression (repeatable, all must match)")
}

// resolve merges explicitly set flags over the list section of the config.
func (f *listFlags) resolve(cmd *cobra.Command, cfg config.ListConfig) (listSettings, error) {
	s := listSettings{
		ItemHeight: cfg.ItemHeight,
		Height:     cfg.Height,
		Dynamic:    cfg.DynamicHeight,
		Markdown:   cfg.Markdown,
		ClassName:  cfg.ClassName,
		Styles:     window.Style(cfg.Styles),
	}
	split := cfg.Split
	s.Filters = f.filters

	if cmd.Flags().Changed("item-height") {
		s.ItemHeight = f.itemHeight
	}
	if cmd.Flags().Changed("height") {
		s.Height = f.height
	}
	if cmd.Flags().Changed("dynamic") {
		s.Dynamic = f.dynamic
	}
	if cmd.Flags().Changed("markdown") {
		s.Markdown = f.markdown
	}
	if cmd.Flags().Changed("split") {
		split = f.split
	}

	if s.ItemHeight < 0 {
		return s, fmt.Errorf("%w: got %v", window.ErrInvalidItemHeight, s.ItemHeight)
	}
	if s.Height < 0 {
		return s, fmt.Errorf("%w: got %v", window.ErrInvalidViewportHeight, s.Height)
	}
	mode, err := ingest.ParseSplitMode(split)
	if err != nil {
		return s, err
	}
	s.Split = mode
	if s.Markdown {
		s.Dynamic = true
	}
	return s, nil
}

// loadItems reads the items named by args (a file path, "-" or nothing for
// stdin) and applies the --filter expressions.
func loadItems(cmd *cobra.Command, args []string, s listSettings) ([]ingest.Item, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	items, err := ingest.LoadFile(path, s.Split, cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	return ApplyFilters(cmd.Context(), items, s.Filters)
}

// itemRows is the dynamic height function for ingest items: one unit per line.
func itemRows(item ingest.Item, _ int) float64 {
	return float64(item.Height())
}
