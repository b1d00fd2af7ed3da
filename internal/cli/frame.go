package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/vlist/internal/config"
	"github.com/rshade/vlist/internal/dom"
	"github.com/rshade/vlist/internal/ingest"
	"github.com/rshade/vlist/internal/logging"
	"github.com/rshade/vlist/internal/window"
)

// Output formats for the frame command.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// defaultMarkdownWidth is the wrap width used when frame renders markdown.
const defaultMarkdownWidth = 80

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// previewLimit bounds the item preview printed in table output.
const previewLimit = 40

var (
	errMissingHeight   = errors.New("a viewport height is required: pass --height or set list.height")
	errUnknownOutput   = errors.New("output must be 'table' or 'json'")
	errMissingScrollTo = errors.New("at least one --scroll-top value is required")
	errBadScrollTop    = errors.New("--scroll-top values must be finite numbers")
)

// FrameReport is the resolved frame for one scroll offset.
type FrameReport struct {
	ScrollTop    float64           `json:"scroll_top"`
	Start        int               `json:"start"`
	End          int               `json:"end"`
	TopSpacer    float64           `json:"top_spacer"`
	BottomSpacer float64           `json:"bottom_spacer"`
	TotalHeight  float64           `json:"total_height"`
	Items        []PlacementReport `json:"items"`
}

// PlacementReport is one rendered item inside a FrameReport.
type PlacementReport struct {
	Index   int     `json:"index"`
	Top     float64 `json:"top"`
	Height  float64 `json:"height"`
	Preview string  `json:"preview"`
}

// NewFrameCmd creates the frame command, which prints the frame the engine
// renders for each requested scroll offset without starting a terminal UI.
func NewFrameCmd() *cobra.Command {
	var (
		flags      listFlags
		scrollTops []float64
		output     string
		width      int
	)

	cmd := &cobra.Command{
		Use:   "frame [file]",
		Short: "Print the rendered frame for one or more scroll offsets",
		Long: `Loads items from a file (or stdin), builds the position table and prints,
for every --scroll-top value, the visible range, the spacer heights and the
placement of each rendered item.

Each offset is resolved on its own list instance; results are printed in the
order the offsets were given.`,
		Example: `  # Fixed 50-unit rows in a 500-unit viewport
  vlist frame --height 500 --item-height 50 --scroll-top 0 --scroll-top 120 items.txt

  # Per-item heights from blank-line separated blocks, as JSON
  vlist frame --split blocks --dynamic --height 10 --scroll-top 0,5 --output json notes.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != outputTable && output != outputJSON {
				return fmt.Errorf("%w: got %q", errUnknownOutput, output)
			}
			if len(scrollTops) == 0 {
				return errMissingScrollTo
			}
			for _, v := range scrollTops {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("%w: got %v", errBadScrollTop, v)
				}
			}

			settings, err := flags.resolve(cmd, config.GetGlobalConfig().List)
			if err != nil {
				return err
			}
			if settings.Height <= 0 {
				return errMissingHeight
			}

			items, err := loadItems(cmd, args, settings)
			if err != nil {
				return err
			}
			if settings.Markdown {
				items, err = ingest.RenderMarkdown(items, width, "notty")
				if err != nil {
					return err
				}
			}

			reports, err := computeFrames(cmd.Context(), items, settings, scrollTops)
			if err != nil {
				return err
			}

			if output == outputJSON {
				return renderFramesJSON(cmd.OutOrStdout(), reports)
			}
			return renderFramesTable(cmd.OutOrStdout(), reports)
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64SliceVar(&scrollTops, "scroll-top", nil, "scroll offset to resolve (repeatable or comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")
	cmd.Flags().IntVar(&width, "width", defaultMarkdownWidth, "wrap width for --markdown")

	return cmd
}

// computeFrames resolves one frame per scroll offset. Each offset gets its own
// container and list, so the work runs concurrently; reports keep input order.
func computeFrames(
	ctx context.Context,
	items []ingest.Item,
	settings listSettings,
	scrollTops []float64,
) ([]FrameReport, error) {
	log := logging.FromContext(ctx)
	engineLogger := logging.ComponentLogger(*log, "window")

	reports := make([]FrameReport, len(scrollTops))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, scrollTop := range scrollTops {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			report, err := frameAt(items, settings, scrollTop, &engineLogger)
			if err != nil {
				return fmt.Errorf("scroll-top %v: %w", scrollTop, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Int("frames", len(reports)).Int("items", len(items)).Msg("frames computed")
	return reports, nil
}

// frameAt builds a list on a fresh container scrolled to scrollTop and reports
// what its initial render produced.
func frameAt(
	items []ingest.Item,
	settings listSettings,
	scrollTop float64,
	engineLogger *zerolog.Logger,
) (FrameReport, error) {
	container := dom.NewElement("div")
	container.SetScrollTop(scrollTop)

	opts := window.Options[ingest.Item]{
		Data:       items,
		ItemHeight: settings.ItemHeight,
		Height:     settings.Height,
		RenderItem: func(item ingest.Item, _ int) window.Node {
			return dom.NewText(item.Text)
		},
		ClassName: settings.ClassName,
		Styles:    settings.Styles,
		Logger:    engineLogger,
	}
	if settings.Dynamic {
		opts.DynamicHeight = itemRows
	}

	list, err := window.New(container, opts)
	if err != nil {
		return FrameReport{}, err
	}

	frame := list.Frame()
	report := FrameReport{
		ScrollTop:    container.ScrollTop(),
		Start:        frame.Range.Start,
		End:          frame.Range.End,
		TopSpacer:    frame.TopSpacer,
		BottomSpacer: frame.BottomSpacer,
		TotalHeight:  frame.TotalHeight,
		Items:        make([]PlacementReport, 0, len(frame.Items)),
	}
	for _, p := range frame.Items {
		report.Items = append(report.Items, PlacementReport{
			Index:   p.Index,
			Top:     p.Top,
			Height:  p.Height,
			Preview: preview(items[p.Index].Text),
		})
	}
	return report, nil
}

// preview returns the first line of text, shortened to previewLimit runes.
func preview(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	runes := []rune(line)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit-1]) + "…"
	}
	return line
}

func renderFramesJSON(w io.Writer, reports []FrameReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

// renderFramesTable writes one summary block per frame followed by its item placements.
func renderFramesTable(w io.Writer, reports []FrameReport) error {
	p := message.NewPrinter(language.English)

	for i, r := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if _, err := p.Fprintf(w, "Scroll top %s: range %s  top spacer %s  bottom spacer %s  total %s\n",
			formatUnits(p, r.ScrollTop),
			window.Range{Start: r.Start, End: r.End},
			formatUnits(p, r.TopSpacer),
			formatUnits(p, r.BottomSpacer),
			formatUnits(p, r.TotalHeight),
		); err != nil {
			return err
		}

		if len(r.Items) == 0 {
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		if _, err := fmt.Fprintln(tw, "INDEX\tTOP\tHEIGHT\tITEM"); err != nil {
			return err
		}
		for _, item := range r.Items {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				p.Sprintf("%d", item.Index),
				formatUnits(p, item.Top),
				formatUnits(p, item.Height),
				item.Preview,
			); err != nil {
				return err
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// formatUnits prints whole values without decimals and others with two, both
// with digit grouping.
func formatUnits(p *message.Printer, v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < math.MaxInt64 {
		return p.Sprintf("%d", int64(v))
	}
	return p.Sprintf("%.2f", v)
}
