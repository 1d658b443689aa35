package figure

import (
	"math"

	"gmr/canvas"
)

// fakeCanvas records primitives and measures text as fixed-width characters
// so layouts can be checked exactly.
type fakeCanvas struct {
	tr     canvas.Transform
	charPx float64
	linePx float64

	rects    []canvas.Rect
	styles   []canvas.BoxStyle
	paths    [][]canvas.Point
	lines    []canvas.LineStyle
	texts    []canvas.Text
	limits   canvas.Bounds
	measured int
}

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{
		tr:     canvas.Linear{ScaleX: 1000, ScaleY: 1000},
		charPx: 8,
		linePx: 20,
	}
}

func (c *fakeCanvas) AddRect(r canvas.Rect, s canvas.BoxStyle) {
	c.rects = append(c.rects, r)
	c.styles = append(c.styles, s)
}

func (c *fakeCanvas) AddPath(points []canvas.Point, s canvas.LineStyle) {
	c.paths = append(c.paths, points)
	c.lines = append(c.lines, s)
}

func (c *fakeCanvas) AddText(t canvas.Text) { c.texts = append(c.texts, t) }

func (c *fakeCanvas) MeasureText(content string, _ canvas.TextStyle, wrapPx float64) (float64, float64, error) {
	c.measured++
	w := float64(len(content)) * c.charPx
	lines := math.Max(1, math.Ceil(w/wrapPx))
	return math.Min(w, wrapPx), lines * c.linePx, nil
}

func (c *fakeCanvas) Transform() canvas.Transform { return c.tr }

func (c *fakeCanvas) SetLimits(b canvas.Bounds) { c.limits = b }

// squareTransform stretches x quadratically so pixel widths depend on position.
type squareTransform struct{}

func (squareTransform) DataToPixel(x, y float64) (float64, float64) {
	return 1000 * x * x, 1000 * y
}

func (squareTransform) PixelToData(px, py float64) (float64, float64) {
	return math.Sqrt(px / 1000), py / 1000
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
