package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/vlist/internal/config"
	"github.com/rshade/vlist/internal/ingest"
	"github.com/rshade/vlist/internal/logging"
	listview "github.com/rshade/vlist/internal/tui/list"
)

// statusLineRows is the number of terminal rows reserved below the viewport.
const statusLineRows = 1

var errNotTerminal = errors.New("view requires an interactive terminal; use 'vlist frame' for non-interactive output")

// NewViewCmd creates the view command, which browses items in an interactive
// terminal list that renders only the rows in view.
func NewViewCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse items in an interactive windowed list",
		Long: `Loads items from a file (or stdin) and shows them in a scrollable terminal
list. Only the items inside the viewport are rendered.

Keys: up/down or j/k move the selection, pgup/pgdn page, home/end jump,
the mouse wheel scrolls, q quits.`,
		Example: `  # One item per line
  vlist view server.log

  # Blank-line separated records, each as tall as its text
  vlist view --split blocks --dynamic records.txt

  # Pipe input
  journalctl -n 100000 | vlist view`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdout) {
				return errNotTerminal
			}

			settings, err := flags.resolve(cmd, config.GetGlobalConfig().List)
			if err != nil {
				return err
			}

			items, err := loadItems(cmd, args, settings)
			if err != nil {
				return err
			}

			width, rows, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil {
				return fmt.Errorf("reading terminal size: %w", err)
			}

			engineLogger := viewEngineLogger(cmd)
			model, err := newViewModel(items, settings, width, rows, &engineLogger)
			if err != nil {
				return err
			}

			opts := []tea.ProgramOption{
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			}
			if !isTerminal(os.Stdin) {
				// Items were piped in; read keys from the controlling terminal.
				opts = append(opts, tea.WithInputTTY())
			}

			if _, err = tea.NewProgram(model, opts...).Run(); err != nil {
				return fmt.Errorf("running viewer: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// newViewModel builds the list model for a terminal of width x rows. A zero
// configured height fills the terminal above the status line.
func newViewModel(
	items []ingest.Item,
	settings listSettings,
	width, rows int,
	engineLogger *zerolog.Logger,
) (*listview.VirtualListModel[ingest.Item], error) {
	height := int(settings.Height)
	if height == 0 {
		height = max(rows-statusLineRows, 1)
	}

	if settings.Markdown {
		rendered, err := ingest.RenderMarkdown(items, width, ingest.DefaultMarkdownStyle)
		if err != nil {
			return nil, err
		}
		items = rendered
	}

	opts := listview.Options[ingest.Item]{
		Items:      items,
		Height:     height,
		Width:      width,
		ItemHeight: int(settings.ItemHeight),
		Render:     func(item ingest.Item, _ int) string { return item.Text },
		ClassName:  settings.ClassName,
		Styles:     settings.Styles,
		Logger:     engineLogger,
	}
	if settings.Dynamic {
		opts.Dynamic = itemRows
	}

	return listview.NewVirtualListModel(opts)
}

// viewEngineLogger returns the engine logger for the viewer. Logs written to
// the terminal would corrupt the screen, so they are dropped unless a log file
// is in use.
func viewEngineLogger(cmd *cobra.Command) zerolog.Logger {
	if !loggingToFile {
		return zerolog.Nop()
	}
	return logging.ComponentLogger(*logging.FromContext(cmd.Context()), "window")
}
