// Package render превращает кадр симуляции в список примитивов
// и рисует его в PNG или в терминал.
package render

import (
	"fmt"
	"image/color"
	"math"

	"wander-server/internal/domain"

	"github.com/paulmach/orb"
)

// Геометрия фигурки человека, в пикселях комнаты
const (
	BodyWidth  = 12.0
	BodyHeight = 20.0
	HeadRadius = 6.0
	LegLength  = 12.0
	LegSwing   = 8.0
	ArmReach   = 6.0

	RoomStroke = 3.0
)

var (
	ColorBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColorOutline    = color.RGBA{0x33, 0x33, 0x33, 0xff} // #333
	ColorLegs       = color.RGBA{0x55, 0x55, 0x55, 0xff} // #555
	ColorHead       = color.RGBA{0xff, 0xd1, 0xa3, 0xff} // #ffd1a3
	ColorEntry      = color.RGBA{0x4a, 0xde, 0x80, 0xff} // #4ade80
	ColorExit       = color.RGBA{0xef, 0x44, 0x44, 0xff} // #ef4444
)

// Rect - прямоугольник. Stroke == 0 - без рамки, Fill.A == 0 - без заливки.
type Rect struct {
	Bound  orb.Bound
	Fill   color.RGBA
	Line   color.RGBA
	Stroke float64
}

type Circle struct {
	Center orb.Point
	Radius float64
	Fill   color.RGBA
	Line   color.RGBA
	Stroke float64
}

type Segment struct {
	From, To orb.Point
	Color    color.RGBA
	Width    float64
}

// Label - текст, At - левая точка базовой линии
type Label struct {
	At    orb.Point
	Text  string
	Color color.RGBA
}

// Figure - нарисованный человек
type Figure struct {
	ID      domain.AgentID
	Pos     orb.Point
	Leaving bool
	Walking bool

	Head Circle
	Body Rect
	Arms [2]Segment
	Legs [2]Segment
}

// Scene - все, что нужно нарисовать для одного кадра
type Scene struct {
	Width, Height float64

	Room  Rect
	Entry Rect
	Exit  Rect

	Labels  []Label
	Figures []Figure

	Frame         uint64
	Population    int
	MaxPopulation int
	Interval      int
}

// Status - строка "People inside: N / MAX"
func (s Scene) Status() string {
	return fmt.Sprintf("People inside: %d / %d", s.Population, s.MaxPopulation)
}

// BuildScene строит список примитивов для кадра
func BuildScene(frame domain.Frame, room domain.Room) Scene {
	entry, exit := room.EntryDoor, room.ExitDoor
	doorMid := func(b orb.Bound) float64 { return (b.Min.Y() + b.Max.Y()) / 2 }

	s := Scene{
		Width:  room.Width(),
		Height: room.Height(),
		Room: Rect{
			Bound:  room.Bounds,
			Line:   ColorOutline,
			Stroke: RoomStroke,
		},
		Entry: Rect{Bound: entry, Fill: ColorEntry},
		Exit:  Rect{Bound: exit, Fill: ColorExit},
		Labels: []Label{
			{At: orb.Point{entry.Min.X() - 50, doorMid(entry) + 5}, Text: "ENTRY", Color: ColorOutline},
			{At: orb.Point{exit.Min.X() - 45, doorMid(exit) + 5}, Text: "EXIT", Color: ColorOutline},
		},
		Figures:       make([]Figure, 0, len(frame.Agents)),
		Frame:         frame.Number,
		Population:    frame.Population(),
		MaxPopulation: frame.MaxPopulation,
		Interval:      frame.Interval,
	}

	for _, st := range frame.Agents {
		s.Figures = append(s.Figures, buildFigure(st))
	}
	return s
}

func buildFigure(st domain.AgentState) Figure {
	x, y := st.Pos.X(), st.Pos.Y()
	top := y - BodyHeight/2
	bottom := y + BodyHeight/2
	left := x - BodyWidth/2
	right := x + BodyWidth/2

	// Стоя ноги прямые, в движении качаются в противофазе
	swing := 0.0
	if st.IsMoving {
		swing = math.Sin(st.LegPhase) * LegSwing
	}

	return Figure{
		ID:      st.ID,
		Pos:     st.Pos,
		Leaving: st.Leaving(),
		Walking: st.IsMoving,
		Head: Circle{
			Center: orb.Point{x, top - HeadRadius},
			Radius: HeadRadius,
			Fill:   ColorHead,
			Line:   ColorOutline,
			Stroke: 1.5,
		},
		Body: Rect{
			Bound:  orb.Bound{Min: orb.Point{left, top}, Max: orb.Point{right, bottom}},
			Fill:   HueColor(st.Hue),
			Line:   ColorOutline,
			Stroke: 1.5,
		},
		Arms: [2]Segment{
			{From: orb.Point{left, top + 5}, To: orb.Point{left - ArmReach, top + 12}, Color: ColorOutline, Width: 2},
			{From: orb.Point{right, top + 5}, To: orb.Point{right + ArmReach, top + 12}, Color: ColorOutline, Width: 2},
		},
		Legs: [2]Segment{
			{From: orb.Point{x - BodyWidth/4, bottom}, To: orb.Point{x - BodyWidth/4 + swing, bottom + LegLength}, Color: ColorLegs, Width: 2.5},
			{From: orb.Point{x + BodyWidth/4, bottom}, To: orb.Point{x + BodyWidth/4 - swing, bottom + LegLength}, Color: ColorLegs, Width: 2.5},
		},
	}
}

// HueColor - hsl(hue, 70%, 60%) в RGB
func HueColor(hue float64) color.RGBA {
	const s, l = 0.7, 0.6

	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	to8 := func(v float64) uint8 { return uint8(math.Round((v + m) * 255)) }
	return color.RGBA{to8(r), to8(g), to8(b), 0xff}
}
