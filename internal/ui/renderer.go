package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cmdcrafter/internal/display"
	"github.com/samdwyer/cmdcrafter/internal/gamedata"
)

const (
	panelWidth = 44
	prompt     = "> "
)

// Renderer draws a Terminal onto a Screen.
//
// Layout, top to bottom: status bar, transcript (with the miner type panel
// on the right when open), predictions, input line.
type Renderer struct {
	screen *Screen
	theme  *gamedata.Theme
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen, theme *gamedata.Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Render redraws the whole screen.
func (r *Renderer) Render(t *Terminal) {
	r.screen.Clear()
	width, height := r.screen.Size()
	if width < 10 || height < 4 {
		r.screen.Show()
		return
	}
	r.fill(0, 0, width, 1, r.theme.StatusBar)
	r.drawText(0, 0, width, t.StatusText(), r.theme.StatusBar)

	predictions, selected := t.Predictions()
	inputRow := height - 1
	bottom := inputRow - len(predictions)
	if bottom < 1 {
		bottom = 1
	}

	transcriptWidth := width
	if t.MinerTypesVisible() && width > panelWidth+20 {
		transcriptWidth = width - panelWidth
		r.renderPanel(t, transcriptWidth, 1, bottom)
	}
	r.renderTranscript(t, transcriptWidth, 1, bottom)

	for i, p := range predictions {
		y := bottom + i
		if y >= inputRow {
			break
		}
		style := r.theme.Prediction
		if i == selected {
			style = r.theme.Selected
		}
		r.fill(0, y, width, 1, style)
		r.drawText(2, y, width-2, p, style)
	}

	if t.InputEnabled() {
		line := prompt + t.Input()
		r.drawText(0, inputRow, width, line, r.theme.Style(display.Input.String()))
		r.screen.ShowCursor(min(len([]rune(line)), width-1), inputRow)
	} else {
		r.drawText(0, inputRow, width, "[input disabled]", r.theme.Locked)
		r.screen.ShowCursor(-1, -1)
	}

	r.screen.Show()
}

// renderTranscript draws the newest wrapped lines that fit between top
// and bottom.
func (r *Renderer) renderTranscript(t *Terminal, width, top, bottom int) {
	type row struct {
		text  string
		style tcell.Style
	}
	var rows []row
	for _, l := range t.lines {
		style := r.theme.Style(l.Kind.String())
		for _, w := range wrap(l.Text, width) {
			rows = append(rows, row{w, style})
		}
	}
	if visible := bottom - top; len(rows) > visible {
		rows = rows[len(rows)-visible:]
	}
	for i, rw := range rows {
		r.drawText(0, top+i, width, rw.text, rw.style)
	}
}

func (r *Renderer) renderPanel(t *Terminal, left, top, bottom int) {
	r.fill(left, top, panelWidth, bottom-top, r.theme.Panel)
	for i, row := range t.PanelRows() {
		y := top + i
		if y >= bottom {
			break
		}
		style := r.theme.Panel
		if !row.Unlocked {
			style = r.theme.Locked
		}
		r.drawText(left+1, y, panelWidth-1, row.Text, style)
	}
}

func (r *Renderer) fill(x, y, w, h int, style tcell.Style) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			r.screen.SetContent(x+dx, y+dy, ' ', style)
		}
	}
}

// drawText writes text on one row, truncated to limit cells.
func (r *Renderer) drawText(x, y, limit int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= limit {
			return
		}
		r.screen.SetContent(x+i, y, ch, style)
		i++
	}
}

// wrap splits text into rows of at most width runes, breaking at spaces
// where possible.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return []string{""}
	}
	var out []string
	for len(runes) > width {
		cut := width
		for i := width; i > width/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, string(runes[:cut]))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	return append(out, string(runes))
}
