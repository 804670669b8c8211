package tui

import (
	"fmt"
	"strings"

	"media-gallery/internal/mediatypes"
	"media-gallery/internal/session"

	"github.com/charmbracelet/lipgloss"
)

const (
	homeHelp     = "Enter load  Esc quit"
	galleryHelp  = "←↑↓→ move  Enter open  s shuffle  o order  2/3/4 columns  a autoscroll  f flatten  t theme  +/- speed  e settings  h home  q quit"
	carouselHelp = "←/→ previous/next  Space play/pause  Esc close  q quit"
	editorHelp   = "+/- speed  f flatten  t theme  c clear  Enter save  Esc discard"
)

// View renders the current screen.
func (m *Model) View() string {
	st := stylesFor(m.themes.Current())

	var body, help string
	switch {
	case !m.state.Loaded:
		body, help = m.homeView(st), homeHelp
	case m.state.Carousel.Open:
		body, help = m.carouselView(st), carouselHelp
	default:
		body, help = m.galleryView(st), galleryHelp
	}
	if m.editor != nil {
		body, help = m.editorView(st), editorHelp
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		st.title.Render(m.title()),
		body,
		m.statusLine(st),
		st.help.Render(help),
	)
}

func (m *Model) title() string {
	if !m.state.Loaded {
		return "Media Gallery"
	}
	t := fmt.Sprintf("Media Gallery: %s  (%d images, %d videos, %s view", m.state.RootName,
		m.state.Stats.Images, m.state.Stats.Videos, m.state.Mode)
	if m.state.Shuffled {
		t += ", shuffled"
	}
	if m.state.Autoscroll {
		t += fmt.Sprintf(", autoscroll %d", m.state.Settings.AutoscrollSpeed)
	}
	return t + ")"
}

func (m *Model) statusLine(st styles) string {
	switch {
	case m.loading:
		return st.status.Render(m.spin.View() + " " + m.status)
	case m.err != "":
		return st.errorText.Render("Error: " + m.err)
	default:
		return st.status.Render(m.status)
	}
}

func (m *Model) homeView(st styles) string {
	return st.panel.Render("Choose a directory to browse\n\n" + m.input.View())
}

func (m *Model) cellWidth() int {
	cols := max(m.state.Columns, 1)
	return max(14, m.width/cols)
}

func (m *Model) galleryView(st styles) string {
	if m.page.Total == 0 {
		return st.panel.Render("No images or videos in this directory")
	}
	cols := max(m.page.Columns, 1)
	width := m.cellWidth()
	inner := width - 4

	var rows []string
	for i := 0; i < len(m.page.Cells); i += cols {
		end := min(i+cols, len(m.page.Cells))
		cells := make([]string, 0, cols)
		for _, c := range m.page.Cells[i:end] {
			style := st.cell
			switch {
			case c.Slot == m.cursor:
				style = st.selected
			case c.Placeholder:
				style = st.placeholder
			}
			cells = append(cells, style.Width(width-2).Render(cellText(c, inner)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func cellText(c session.GridCell, width int) string {
	if c.Placeholder {
		return truncate("▸ "+c.Label, width) + "\n"
	}
	detail := humanBytes(c.Size)
	if c.Width > 0 {
		detail = fmt.Sprintf("%dx%d  %s", c.Width, c.Height, detail)
	}
	return truncate(kindIcon(c.Kind)+" "+c.Name, width) + "\n" + truncate(detail, width)
}

func (m *Model) carouselView(st styles) string {
	c := m.state.Carousel
	lines := []string{
		kindIcon(c.Kind) + " " + c.Name,
		"",
		c.Path,
		c.MimeType,
		"",
		fmt.Sprintf("%d / %d", c.Slot+1, c.Total),
	}
	if c.Kind == mediatypes.KindVideo {
		state := "paused"
		if c.Playing {
			state = "playing"
		}
		lines = append(lines, state)
	}
	width := max(20, m.width-4)
	return st.slide.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) editorView(st styles) string {
	d := m.editor.Draft()
	changed := m.editor.Changes()
	mark := func(on bool) string {
		if on {
			return " *"
		}
		return ""
	}
	return st.panel.Render(strings.Join([]string{
		"Settings",
		"",
		fmt.Sprintf("Autoscroll speed  %3d%s", d.AutoscrollSpeed, mark(changed.AutoscrollSpeed != nil)),
		fmt.Sprintf("Flatten files     %v%s", d.FlattenFiles, mark(changed.FlattenFiles != nil)),
		fmt.Sprintf("Theme             %s%s", d.Theme, mark(changed.Theme != nil)),
	}, "\n"))
}

func kindIcon(k mediatypes.Kind) string {
	switch k {
	case mediatypes.KindImage:
		return "▣"
	case mediatypes.KindVideo:
		return "▶"
	default:
		return "·"
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func humanBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
