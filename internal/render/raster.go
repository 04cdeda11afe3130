package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/paulmach/orb"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Rasterize рисует сцену в RGBA-картинку размером с комнату
func Rasterize(s Scene) *image.RGBA {
	w, h := int(math.Ceil(s.Width)), int(math.Ceil(s.Height))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(ColorBackground), image.Point{}, draw.Src)

	drawRect(img, s.Room)
	drawRect(img, s.Entry)
	drawRect(img, s.Exit)
	for _, l := range s.Labels {
		drawLabel(img, l)
	}

	for _, f := range s.Figures {
		drawCircle(img, f.Head)
		drawRect(img, f.Body)
		for _, seg := range f.Arms {
			drawSegment(img, seg)
		}
		for _, seg := range f.Legs {
			drawSegment(img, seg)
		}
	}
	return img
}

// EncodePNG рисует сцену и пишет PNG в w
func EncodePNG(w io.Writer, s Scene) error {
	return png.Encode(w, Rasterize(s))
}

func drawRect(img *image.RGBA, r Rect) {
	minX, minY := r.Bound.Min.X(), r.Bound.Min.Y()
	maxX, maxY := r.Bound.Max.X(), r.Bound.Max.Y()

	if r.Fill.A > 0 {
		fill(img, minX, minY, maxX, maxY, r.Fill)
	}
	if r.Stroke > 0 {
		// Рамка по центру контура, как у canvas strokeRect
		half := r.Stroke / 2
		fill(img, minX-half, minY-half, maxX+half, minY+half, r.Line)
		fill(img, minX-half, maxY-half, maxX+half, maxY+half, r.Line)
		fill(img, minX-half, minY-half, minX+half, maxY+half, r.Line)
		fill(img, maxX-half, minY-half, maxX+half, maxY+half, r.Line)
	}
}

func fill(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA) {
	rect := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1)), int(math.Ceil(y1)),
	).Intersect(img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawCircle(img *image.RGBA, c Circle) {
	outer := c.Radius + c.Stroke/2
	inner := c.Radius - c.Stroke/2
	cx, cy := c.Center.X(), c.Center.Y()

	forEachPixel(img, cx-outer, cy-outer, cx+outer, cy+outer, func(x, y int, px, py float64) {
		d := math.Hypot(px-cx, py-cy)
		switch {
		case c.Stroke > 0 && d <= outer && d >= inner:
			img.SetRGBA(x, y, c.Line)
		case d < c.Radius:
			img.SetRGBA(x, y, c.Fill)
		}
	})
}

func drawSegment(img *image.RGBA, s Segment) {
	half := s.Width / 2
	minX, maxX := math.Min(s.From.X(), s.To.X())-half, math.Max(s.From.X(), s.To.X())+half
	minY, maxY := math.Min(s.From.Y(), s.To.Y())-half, math.Max(s.From.Y(), s.To.Y())+half

	forEachPixel(img, minX, minY, maxX, maxY, func(x, y int, px, py float64) {
		if distToSegment(orb.Point{px, py}, s.From, s.To) <= half {
			img.SetRGBA(x, y, s.Color)
		}
	})
}

// forEachPixel обходит пиксели в рамке, передавая координаты центра пикселя
func forEachPixel(img *image.RGBA, x0, y0, x1, y1 float64, fn func(x, y int, px, py float64)) {
	rect := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1)), int(math.Ceil(y1)),
	).Intersect(img.Bounds())

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			fn(x, y, float64(x)+0.5, float64(y)+0.5)
		}
	}
}

func distToSegment(p, a, b orb.Point) float64 {
	dx, dy := b.X()-a.X(), b.Y()-a.Y()
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X()-a.X(), p.Y()-a.Y())
	}
	t := ((p.X()-a.X())*dx + (p.Y()-a.Y())*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X()-(a.X()+t*dx), p.Y()-(a.Y()+t*dy))
}

func drawLabel(img *image.RGBA, l Label) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(l.Color),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(l.At.X())), int(math.Round(l.At.Y()))),
	}
	d.DrawString(l.Text)
}
