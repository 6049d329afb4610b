package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// ColorPair is a foreground/background hex pair.
type ColorPair struct {
	FG string `json:"fg"`
	BG string `json:"bg"`
}

// ThemeFile represents the structure of theme.json.
type ThemeFile struct {
	Background string            `json:"background"`
	Text       string            `json:"text"`
	Transcript map[string]string `json:"transcript"`
	StatusBar  ColorPair         `json:"statusBar"`
	Panel      ColorPair         `json:"panel"`
	Locked     string            `json:"locked"`
	Prediction ColorPair         `json:"prediction"`
	Selected   ColorPair         `json:"selected"`
}

func (f *ThemeFile) validate() error {
	hexes := []string{
		f.Background, f.Text, f.Locked,
		f.StatusBar.FG, f.StatusBar.BG, f.Panel.FG, f.Panel.BG,
		f.Prediction.FG, f.Prediction.BG, f.Selected.FG, f.Selected.BG,
	}
	for _, h := range f.Transcript {
		hexes = append(hexes, h)
	}
	for _, h := range hexes {
		if _, err := ParseHexColor(h); err != nil {
			return err
		}
	}
	return nil
}

// Theme is the parsed terminal palette.
type Theme struct {
	Base       tcell.Style
	Transcript map[string]tcell.Style // keyed by message kind name
	StatusBar  tcell.Style
	Panel      tcell.Style
	Locked     tcell.Style
	Prediction tcell.Style
	Selected   tcell.Style
}

// LoadTheme loads the terminal palette from the embedded theme.json file.
func LoadTheme() (*Theme, error) {
	file, err := Load[ThemeFile]("theme.json")
	if err != nil {
		return nil, err
	}

	bg := MustParseHexColor(file.Background)
	base := tcell.StyleDefault.Background(bg).Foreground(MustParseHexColor(file.Text))
	pair := func(p ColorPair) tcell.Style {
		return tcell.StyleDefault.Foreground(MustParseHexColor(p.FG)).Background(MustParseHexColor(p.BG))
	}

	t := &Theme{
		Base:       base,
		Transcript: make(map[string]tcell.Style, len(file.Transcript)),
		StatusBar:  pair(file.StatusBar).Bold(true),
		Panel:      pair(file.Panel),
		Prediction: pair(file.Prediction),
		Selected:   pair(file.Selected),
	}
	t.Locked = t.Panel.Foreground(MustParseHexColor(file.Locked))
	for kind, hex := range file.Transcript {
		t.Transcript[kind] = base.Foreground(MustParseHexColor(hex))
	}
	return t, nil
}

// MustLoadTheme loads the theme, panicking on error.
func MustLoadTheme() *Theme {
	t, err := LoadTheme()
	if err != nil {
		panic(fmt.Errorf("load theme: %w", err))
	}
	return t
}

// Style returns the transcript style for a message kind name, falling back
// to the base style.
func (t *Theme) Style(kind string) tcell.Style {
	if s, ok := t.Transcript[kind]; ok {
		return s
	}
	return t.Base
}
