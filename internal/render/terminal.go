package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	minCardWidth = 16
	swatchHeight = 2
)

// Terminal renders gallery view-models with lipgloss for terminal output.
type Terminal struct {
	// CardWidth is the outer width of one card, border included.
	CardWidth int

	// Palette colors borders, accents and muted text.
	Palette Palette
}

// NewTerminal creates a terminal renderer.
func NewTerminal(cardWidth int, palette Palette) Terminal {
	if cardWidth < minCardWidth {
		cardWidth = minCardWidth
	}
	return Terminal{CardWidth: cardWidth, Palette: palette}
}

// Columns returns how many cards fit next to each other in width cells.
func (t Terminal) Columns(width int) int {
	cols := width / t.CardWidth
	if cols < 1 {
		return 1
	}
	return cols
}

// Cards renders the card grid.
//
// cursor is the index of the focused card (-1 for none). mark, if not nil,
// wraps each rendered card, which lets the caller register click zones.
func (t Terminal) Cards(g Gallery, width, cursor int, mark func(id int, card string) string) string {
	if g.IsEmpty() {
		return lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(t.Palette.Muted)).
			Render(g.Placeholder)
	}

	cols := t.Columns(width)
	var rows []string
	for start := 0; start < len(g.Cards); start += cols {
		end := start + cols
		if end > len(g.Cards) {
			end = len(g.Cards)
		}

		row := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			card := t.card(g.Cards[i], i == cursor)
			if mark != nil {
				card = mark(g.Cards[i].ID, card)
			}
			row = append(row, card)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (t Terminal) card(c Card, focused bool) string {
	inner := t.CardWidth - 4 // border and padding

	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(c.Swatch)).
		Foreground(lipgloss.Color(c.Ink)).
		Width(inner).
		Height(swatchHeight).
		Render(c.Swatch)

	title := truncate.StringWithTail(c.Title, uint(inner), "…")
	if c.Highlighted {
		title = truncate.StringWithTail("★ "+c.Title, uint(inner), "…")
	}

	lines := []string{
		swatch,
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Palette.Foreground)).Render(title),
		lipgloss.NewStyle().Foreground(lipgloss.Color(t.Palette.Muted)).Render(truncate.StringWithTail(c.Byline, uint(inner), "…")),
		lipgloss.NewStyle().Foreground(lipgloss.Color(t.Palette.Muted)).Render(truncate.StringWithTail(c.Tags, uint(inner), "…")),
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Palette.Muted)).
		Padding(0, 1).
		Width(t.CardWidth - 2)

	switch {
	case c.Highlighted:
		style = style.Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color(t.Palette.Accent))
	case focused:
		style = style.BorderForeground(lipgloss.Color(t.Palette.Accent))
	}

	return style.Render(strings.Join(lines, "\n"))
}

// Details renders the detail panel; nil renders a hint.
func (t Terminal) Details(d *Details, width int) string {
	if d == nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Palette.Muted)).
			Render("Select an artwork to see its details.")
	}

	inner := width - 4
	if inner < minCardWidth {
		inner = minCardWidth
	}

	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Palette.Accent))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Palette.Foreground))

	var b strings.Builder
	for i, f := range d.Fields {
		if i > 0 {
			b.WriteString("\n")
		}
		text := f.Label + ": " + f.Value
		wrapped := wordwrap.String(text, inner)
		head, rest, _ := strings.Cut(wrapped, ": ")
		b.WriteString(label.Render(head + ":"))
		b.WriteString(" ")
		b.WriteString(value.Render(rest))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(d.Swatch)).
		Padding(0, 1).
		Width(inner + 2).
		Render(b.String())
}

// Status renders the status line.
func (t Terminal) Status(status string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Palette.Accent)).Render(status)
}

// Plain renders a gallery as uncolored text, one card per block.
// Used for non-interactive output such as piping the CLI into a file.
func Plain(g Gallery) string {
	if g.IsEmpty() {
		return g.Placeholder + "\n"
	}

	var b strings.Builder
	for _, c := range g.Cards {
		marker := " "
		if c.Highlighted {
			marker = "*"
		}
		b.WriteString(marker + " [" + c.Swatch + "] " + c.Title + "\n")
		b.WriteString("    " + c.Byline + "\n")
		b.WriteString("    " + c.Tags + "\n")
	}
	return b.String()
}

// PlainDetails renders a detail panel as uncolored "Label: value" lines.
func PlainDetails(d Details) string {
	var b strings.Builder
	for _, f := range d.Fields {
		b.WriteString(f.Label + ": " + f.Value + "\n")
	}
	return b.String()
}
