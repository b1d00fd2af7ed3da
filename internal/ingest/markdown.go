package ingest

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultMarkdownStyle is the glamour style used when none is given.
const DefaultMarkdownStyle = "dark"

// RenderMarkdown renders every item's text as markdown, word-wrapped to width,
// and returns new items holding the rendered output. Heights of the returned
// items are the rendered line counts.
func RenderMarkdown(items []Item, width int, style string) ([]Item, error) {
	if style == "" {
		style = DefaultMarkdownStyle
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}

	out := make([]Item, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.Text) == "" {
			out[i] = it
			continue
		}
		rendered, renderErr := renderer.Render(it.Text)
		if renderErr != nil {
			return nil, fmt.Errorf("rendering item %d: %w", i, renderErr)
		}
		// glamour pads with leading and trailing blank lines.
		out[i] = Item{Text: strings.Trim(rendered, "\n")}
	}
	return out, nil
}
