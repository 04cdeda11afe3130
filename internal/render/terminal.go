package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell"
	"github.com/paulmach/orb"
)

// Символы терминального режима
const (
	GlyphDoor    = '█'
	GlyphPerson  = '@'
	GlyphLeaving = 'x'
)

// Terminal рисует сцену на экране tcell.
// Комната масштабируется во весь экран, последняя строка - статус.
type Terminal struct {
	screen tcell.Screen
	base   tcell.Style
}

func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		base:   tcell.StyleDefault,
	}
}

// Draw перерисовывает экран целиком и вызывает Show
func (t *Terminal) Draw(s Scene) {
	t.screen.Clear()
	cols, rows := t.screen.Size()
	if cols < 2 || rows < 3 {
		t.screen.Show()
		return
	}
	fieldRows := rows - 1

	vp := viewport{
		cols: cols, rows: fieldRows,
		scaleX: float64(cols-1) / s.Width,
		scaleY: float64(fieldRows-1) / s.Height,
	}

	t.drawBorder(vp)
	t.fillBound(vp, s.Entry.Bound, GlyphDoor, t.base.Foreground(tcellColor(s.Entry.Fill)))
	t.fillBound(vp, s.Exit.Bound, GlyphDoor, t.base.Foreground(tcellColor(s.Exit.Fill)))

	labelStyle := t.base.Bold(true)
	for _, l := range s.Labels {
		x, y := vp.cell(orb.Point{l.At.X(), l.At.Y() - 5})
		// Подпись справа упирается в дверь
		x = min(x, cols-2-len(l.Text))
		t.puts(max(x, 1), y, l.Text, labelStyle)
	}

	for _, f := range s.Figures {
		glyph := GlyphPerson
		if f.Leaving {
			glyph = GlyphLeaving
		}
		x, y := vp.cell(f.Pos)
		t.screen.SetContent(x, y, glyph, nil, t.base.Foreground(tcellColor(f.Body.Fill)))
	}

	status := fmt.Sprintf("%s   interval: %d   frame: %d", s.Status(), s.Interval, s.Frame)
	t.puts(0, rows-1, status, t.base.Reverse(true))

	t.screen.Show()
}

type viewport struct {
	cols, rows     int
	scaleX, scaleY float64
}

// cell переводит координаты комнаты в ячейку экрана
func (vp viewport) cell(p orb.Point) (int, int) {
	x := int(math.Round(p.X() * vp.scaleX))
	y := int(math.Round(p.Y() * vp.scaleY))
	return clampInt(x, 0, vp.cols-1), clampInt(y, 0, vp.rows-1)
}

func (t *Terminal) drawBorder(vp viewport) {
	style := t.base.Foreground(tcellColor(ColorOutline))
	right, bottom := vp.cols-1, vp.rows-1

	for x := 1; x < right; x++ {
		t.screen.SetContent(x, 0, tcell.RuneHLine, nil, style)
		t.screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := 1; y < bottom; y++ {
		t.screen.SetContent(0, y, tcell.RuneVLine, nil, style)
		t.screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	t.screen.SetContent(0, 0, tcell.RuneULCorner, nil, style)
	t.screen.SetContent(right, 0, tcell.RuneURCorner, nil, style)
	t.screen.SetContent(0, bottom, tcell.RuneLLCorner, nil, style)
	t.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
}

// fillBound закрашивает ячейки, покрытые прямоугольником (минимум одну)
func (t *Terminal) fillBound(vp viewport, b orb.Bound, glyph rune, style tcell.Style) {
	x0, y0 := vp.cell(b.Min)
	x1, y1 := vp.cell(b.Max)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

func (t *Terminal) puts(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
