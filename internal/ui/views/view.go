package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// CellHeight is the number of terminal rows a rendered cell occupies
const CellHeight = 4

// Cell is one padded slot of the strip
type Cell struct {
	Padded    int
	Title     string
	Subtitle  string
	Color     string
	Focused   bool // host focus is on this cell
	Preferred bool // focus would land here when entering the carousel
}

// MessageLevel selects the style of the message line
type MessageLevel int

const (
	MessageInfo MessageLevel = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// StatusField is one key/value pair on the status line
type StatusField struct {
	Key   string
	Value string
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Title        string
	Cells        []Cell
	Leading      int // strip column of the first cell's leading edge; negative when clipped
	StripWidth   int
	StripIndent  int
	ItemExtent   int
	ItemSpacing  int
	Status       []StatusField
	Message      string
	MessageLevel MessageLevel
	HelpView     string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.styles.Title.Render(state.Title))
	content.WriteString("\n")
	content.WriteString(r.RenderStrip(state))
	content.WriteString("\n")
	content.WriteString(r.renderStatus(state))

	if state.Message != "" {
		content.WriteString("\n")
		content.WriteString(r.messageStyle(state.MessageLevel).Render(state.Message))
	}
	if state.HelpView != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}
	return content.String()
}

// RenderStrip renders the visible cells clipped to the strip width. The result is always
// CellHeight lines of StripIndent+StripWidth columns.
func (r *Renderer) RenderStrip(state ViewState) string {
	width := state.StripWidth
	if width < 0 {
		width = 0
	}
	indent := strings.Repeat(" ", max(state.StripIndent, 0))

	lines := make([]string, CellHeight)
	if len(state.Cells) == 0 {
		for i := range lines {
			lines[i] = indent + strings.Repeat(" ", width)
		}
		return strings.Join(lines, "\n")
	}

	blocks := make([]string, 0, 2*len(state.Cells))
	spacer := strings.Repeat(" ", max(state.ItemSpacing, 0))
	for i, c := range state.Cells {
		if i > 0 && spacer != "" {
			blocks = append(blocks, spacer)
		}
		blocks = append(blocks, r.renderCell(c, state.ItemExtent))
	}
	row := strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, blocks...), "\n")

	// cells scrolled past the leading edge are cut; a gap before the first cell is padded
	cut, pad := 0, 0
	if state.Leading < 0 {
		cut = -state.Leading
	} else {
		pad = min(state.Leading, width)
	}
	for i := range lines {
		line := ""
		if i < len(row) {
			line = ansi.Cut(row[i], cut, cut+width-pad)
		}
		line = strings.Repeat(" ", pad) + line
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderCell(c Cell, extent int) string {
	style := r.styles.Cell
	switch {
	case c.Focused:
		style = r.styles.FocusedCell
	case c.Preferred:
		style = r.styles.PreferredCell
	}

	// border and padding take two columns on each side
	inner := max(extent-4, 1)
	title := r.styles.CellTitle.Render(ansi.Truncate(c.Title, inner, "…"))
	subtitle := r.styles.CellSubtitle.Render(ansi.Truncate(c.Subtitle, inner, "…"))

	return style.
		Width(max(extent-2, 1)).
		BorderForeground(CellColor(c.Color)).
		Render(title + "\n" + subtitle)
}

func (r *Renderer) renderStatus(state ViewState) string {
	parts := make([]string, 0, len(state.Status))
	for _, f := range state.Status {
		parts = append(parts, f.Key+" "+r.styles.StatusKey.Render(f.Value))
	}
	return r.styles.Status.Render(strings.Join(parts, "  "))
}

func (r *Renderer) messageStyle(level MessageLevel) lipgloss.Style {
	switch level {
	case MessageSuccess:
		return r.styles.StatusSuccess
	case MessageWarning:
		return r.styles.StatusWarning
	case MessageError:
		return r.styles.StatusError
	default:
		return r.styles.Message
	}
}
