// Package canvas holds the drawing surface the figure layout is placed onto.
//
// Positions and sizes are given in data units. The vertical axis is inverted:
// data y grows downward, so a rectangle's (X, Y) is its top-left corner on the
// rendered image. A Transform maps data units to device pixels; it is needed to
// bound text wrapping in pixels while geometry stays in data units.
package canvas

// Canvas is the set of primitives the layout engine draws with.
type Canvas interface {
	AddRect(r Rect, style BoxStyle)
	AddPath(points []Point, style LineStyle)
	AddText(t Text)
	// MeasureText returns the pixel extent of content wrapped to wrapPx pixels.
	MeasureText(content string, style TextStyle, wrapPx float64) (w, h float64, err error)
	Transform() Transform
	SetLimits(b Bounds)
}

// Transform converts between data units and device pixels.
type Transform interface {
	DataToPixel(x, y float64) (px, py float64)
	PixelToData(px, py float64) (x, y float64)
}

type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Bounds is the visible data window. YMin is drawn at the top of the image.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (b Bounds) Width() float64  { return b.XMax - b.XMin }
func (b Bounds) Height() float64 { return b.YMax - b.YMin }

// Corner selects square or rounded box corners. Radius is in data units.
type Corner struct {
	Rounded bool
	Radius  float64
}

var Square = Corner{}

func Rounded(radius float64) Corner {
	return Corner{Rounded: true, Radius: radius}
}

type BoxStyle struct {
	Fill      string
	Edge      string
	LineWidth float64
	Corner    Corner
}

type LineStyle struct {
	Color string
	Width float64
}

type TextStyle struct {
	Color  string
	Family string
	Size   float64 // points
}

type HAlign int

const (
	AlignCenter HAlign = iota
	AlignLeft
)

func (a HAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignLeft:
		return "left"
	}
	return "unknown"
}

// Text is a label anchored at (X, Y), vertically centered on Y. With
// AlignCenter X is the horizontal center, with AlignLeft it is the left edge.
// Lines are wrapped to WrapPx pixels; WrapPx <= 0 disables wrapping.
type Text struct {
	Content string
	X, Y    float64
	Align   HAlign
	WrapPx  float64
	Style   TextStyle
}
