package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/tripgraph/tripgraph/vector"
)

var (
	colorHeader = lipgloss.Color("#3b82f6") // blue-500
	colorDim    = lipgloss.Color("#6b7280") // gray-500

	headerStyle = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

func styled() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// renderRows prints result rows as an aligned table. Column order is
// the sorted key union so output is stable across runs.
func renderRows(rows []map[string]any) string {
	if len(rows) == 0 {
		return dim("no results\n")
	}

	keySet := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			keySet[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	widths := make([]int, len(keys))
	for i, k := range keys {
		widths[i] = len(k)

		for _, row := range rows {
			if w := len(cell(row[k])); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	for i, k := range keys {
		b.WriteString(pad(header(k), len(k), widths[i]))

		if i < len(keys)-1 {
			b.WriteString("  ")
		}
	}

	b.WriteString("\n")

	for _, row := range rows {
		for i, k := range keys {
			c := cell(row[k])
			b.WriteString(pad(c, len(c), widths[i]))

			if i < len(keys)-1 {
				b.WriteString("  ")
			}
		}

		b.WriteString("\n")
	}

	return b.String()
}

// renderHits prints vector search results.
func renderHits(hits []vector.Hit) string {
	if len(hits) == 0 {
		return dim("no results\n")
	}

	var b strings.Builder

	b.WriteString(header("hotel") + "\n")

	for _, h := range hits {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			h.Hotel,
			dim(fmt.Sprintf("score=%.4f stars=%.1f rating=%.2f", h.Score, h.Stars, h.Rating))))
	}

	return b.String()
}

func header(s string) string {
	if styled() {
		return headerStyle.Render(s)
	}

	return s
}

func dim(s string) string {
	if styled() {
		return dimStyle.Render(s)
	}

	return s
}

func cell(v any) string {
	if v == nil {
		return "-"
	}

	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%.2f", n)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// pad right-pads to width using the visible length, so styled cells
// align with plain ones.
func pad(s string, visible, width int) string {
	if visible >= width {
		return s
	}

	return s + strings.Repeat(" ", width-visible)
}
