package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"wander-server/internal/domain"

	"github.com/gdamore/tcell"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame() domain.Frame {
	walker := domain.NewAgent(1, orb.Point{200, 200}, orb.Point{400, 300}, 1.5, 0, 1.2)
	stander := domain.NewAgent(2, orb.Point{400, 350}, orb.Point{400, 350}, 1.5, 240, 1.2)
	leaver := domain.NewAgent(3, orb.Point{100, 100}, orb.Point{300, 300}, 2, 120, 0)
	leaver.MarkLeaving()

	return domain.Frame{
		Number: 42,
		Agents: []domain.AgentState{
			{Agent: walker.Clone(), IsMoving: true},
			{Agent: stander.Clone(), IsMoving: false},
			{Agent: leaver.Clone(), IsMoving: true},
		},
		MaxPopulation: 20,
		Interval:      15,
	}
}

func TestBuildScene(t *testing.T) {
	room := domain.DefaultRoom()
	s := BuildScene(testFrame(), room)

	assert.Equal(t, 700.0, s.Width)
	assert.Equal(t, 500.0, s.Height)
	assert.Equal(t, RoomStroke, s.Room.Stroke)
	assert.Equal(t, room.EntryDoor, s.Entry.Bound)
	assert.Equal(t, ColorEntry, s.Entry.Fill)
	assert.Equal(t, ColorExit, s.Exit.Fill)
	require.Len(t, s.Labels, 2)
	assert.Equal(t, "ENTRY", s.Labels[0].Text)
	assert.Equal(t, "EXIT", s.Labels[1].Text)

	require.Len(t, s.Figures, 3)
	assert.Equal(t, "People inside: 3 / 20", s.Status())
	assert.True(t, s.Figures[2].Leaving)
}

func TestBuildScene_FigureGeometry(t *testing.T) {
	s := BuildScene(testFrame(), domain.DefaultRoom())
	walker, stander := s.Figures[0], s.Figures[1]

	assert.Equal(t, orb.Point{200, 184}, walker.Head.Center)
	assert.Equal(t, HeadRadius, walker.Head.Radius)
	assert.Equal(t, ColorHead, walker.Head.Fill)
	assert.Equal(t, orb.Bound{Min: orb.Point{194, 190}, Max: orb.Point{206, 210}}, walker.Body.Bound)

	// Стоящий - ноги вертикальные
	for _, leg := range stander.Legs {
		assert.Equal(t, leg.From.X(), leg.To.X())
		assert.Equal(t, LegLength, leg.To.Y()-leg.From.Y())
	}
	// Идущий - ноги разведены в разные стороны
	assert.Greater(t, walker.Legs[0].To.X(), walker.Legs[0].From.X())
	assert.Less(t, walker.Legs[1].To.X(), walker.Legs[1].From.X())
}

func TestHueColor(t *testing.T) {
	assert.Equal(t, uint8(0xff), HueColor(0).A)
	// hsl(0, 70%, 60%) = rgb(224, 82, 82)
	c := HueColor(0)
	assert.Equal(t, [3]uint8{224, 82, 82}, [3]uint8{c.R, c.G, c.B})
	assert.Equal(t, HueColor(0), HueColor(360))
	c = HueColor(120)
	assert.Greater(t, c.G, c.R)
}

func TestEncodePNG(t *testing.T) {
	room := domain.DefaultRoom()
	s := BuildScene(testFrame(), room)

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, s))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 700, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())

	// Середина двери входа зеленая, выхода красная
	r, g, b, _ := img.At(695, 200).RGBA()
	assert.Equal(t, [3]uint32{0x4a, 0xde, 0x80}, [3]uint32{r >> 8, g >> 8, b >> 8})
	r, g, b, _ = img.At(695, 300).RGBA()
	assert.Equal(t, [3]uint32{0xef, 0x44, 0x44}, [3]uint32{r >> 8, g >> 8, b >> 8})

	// Центр головы первого человека
	r, g, b, _ = img.At(200, 184).RGBA()
	assert.Equal(t, [3]uint32{0xff, 0xd1, 0xa3}, [3]uint32{r >> 8, g >> 8, b >> 8})

	// Пустой пол
	r, g, b, _ = img.At(500, 450).RGBA()
	assert.Equal(t, [3]uint32{0xff, 0xff, 0xff}, [3]uint32{r >> 8, g >> 8, b >> 8})
}

func screenLines(scr tcell.SimulationScreen) []string {
	cells, width, height := scr.GetContents()
	lines := make([]string, 0, height)
	var buf bytes.Buffer
	for i := 0; i < len(cells); i++ {
		if i > 0 && i%width == 0 {
			lines = append(lines, buf.String())
			buf.Reset()
		}
		buf.Write(cells[i].Bytes)
	}
	return append(lines, buf.String())
}

func TestTerminal_Draw(t *testing.T) {
	scr := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, scr.Init())
	defer scr.Fini()
	scr.SetSize(80, 24)

	s := BuildScene(testFrame(), domain.DefaultRoom())
	NewTerminal(scr).Draw(s)

	lines := screenLines(scr)
	require.Len(t, lines, 24)

	assert.True(t, strings.HasPrefix(lines[23], "People inside: 3 / 20"), lines[23])
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "ENTRY")
	assert.Contains(t, joined, "EXIT")

	// 200*79/700 = 22.6 -> 23; 200*22/500 = 8.8 -> 9
	mainc, _, _, _ := scr.GetContent(23, 9)
	assert.Equal(t, GlyphPerson, mainc)
	// Уходящий: 100*79/700 = 11.3 -> 11; 100*22/500 = 4.4 -> 4
	mainc, _, _, _ = scr.GetContent(11, 4)
	assert.Equal(t, GlyphLeaving, mainc)

	// Дверь входа у правой стены: 690*79/700 = 77.9 -> 78
	mainc, _, style, _ := scr.GetContent(78, 8)
	assert.Equal(t, GlyphDoor, mainc)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcellColor(ColorEntry), fg)
}

func TestTerminal_TinyScreen(t *testing.T) {
	scr := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, scr.Init())
	defer scr.Fini()
	scr.SetSize(1, 1)

	assert.NotPanics(t, func() {
		NewTerminal(scr).Draw(BuildScene(testFrame(), domain.DefaultRoom()))
	})
}

func TestParseKey(t *testing.T) {
	key := func(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

	cmd, ok := ParseKey(key('+'))
	require.True(t, ok)
	assert.Equal(t, 1, cmd.MaxDelta)

	cmd, ok = ParseKey(key('['))
	require.True(t, ok)
	assert.Equal(t, -1, cmd.IntervalDelta)

	cmd, ok = ParseKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	require.True(t, ok)
	assert.True(t, cmd.Quit)

	_, ok = ParseKey(key('z'))
	assert.False(t, ok)
}
