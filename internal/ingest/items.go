// Package ingest turns raw text input into list items.
//
// Input is split either one item per line or one item per blank-line separated
// block. Block items are multi-line and are the usual source of dynamic heights.
package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// SplitMode selects how input is cut into items.
type SplitMode string

// Supported split modes.
const (
	SplitLines  SplitMode = "lines"
	SplitBlocks SplitMode = "blocks"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1024 * 1024

// ErrUnknownSplitMode is returned for split modes other than lines or blocks.
var ErrUnknownSplitMode = errors.New("unknown split mode")

// Item is one list entry.
type Item struct {
	// Text is the item's content, possibly spanning several lines.
	Text string
}

// Lines returns the item's text split into lines. An empty item has one empty line.
func (it Item) Lines() []string {
	return strings.Split(it.Text, "\n")
}

// Height returns the number of lines the item occupies (at least 1).
func (it Item) Height() int {
	return len(it.Lines())
}

// ParseSplitMode validates a split mode name. The empty string selects SplitLines.
func ParseSplitMode(s string) (SplitMode, error) {
	switch SplitMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SplitLines:
		return SplitLines, nil
	case SplitBlocks:
		return SplitBlocks, nil
	default:
		return "", fmt.Errorf("%w: %q (use 'lines' or 'blocks')", ErrUnknownSplitMode, s)
	}
}

// LoadItems reads r to the end and splits it into items.
//
// In SplitLines mode every line is an item, including empty lines. In
// SplitBlocks mode runs of non-empty lines form one item and blank lines only
// separate items. Trailing carriage returns are stripped.
func LoadItems(r io.Reader, mode SplitMode) ([]Item, error) {
	if mode != SplitLines && mode != SplitBlocks {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplitMode, mode)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var items []Item
	var block []string

	flush := func() {
		if len(block) > 0 {
			items = append(items, Item{Text: strings.Join(block, "\n")})
			block = block[:0]
		}
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if mode == SplitLines {
			items = append(items, Item{Text: line})
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}
	flush()

	return items, nil
}

// LoadFile loads items from path, or from stdin when path is "" or "-".
func LoadFile(path string, mode SplitMode, stdin io.Reader) ([]Item, error) {
	if path == "" || path == "-" {
		return LoadItems(stdin, mode)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return LoadItems(f, mode)
}
