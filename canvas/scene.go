package canvas

import "math"

// DefaultMargin is the blank border, in pixels, around rendered output.
const DefaultMargin = 8

type ItemKind int

const (
	KindRect ItemKind = iota
	KindPath
	KindText
)

// Item is one recorded drawing primitive. Only the fields of its Kind are set.
type Item struct {
	Kind   ItemKind
	Rect   Rect
	Box    BoxStyle
	Points []Point
	Line   LineStyle
	Text   Text
}

// Scene is a retained display list in data units. It implements Canvas and is
// rendered afterwards with WritePNG, WriteSVG or Cells.
type Scene struct {
	fonts  *Fonts
	tr     Linear
	limits Bounds
	margin float64
	items  []Item
}

// NewScene sizes a scene for a target of widthIn x heightIn inches at dpi.
// dataWidth data units span the target width and one data unit spans its height.
func NewScene(widthIn, heightIn, dpi, dataWidth float64) *Scene {
	return &Scene{
		fonts: NewFonts(dpi),
		tr: Linear{
			ScaleX: widthIn * dpi / dataWidth,
			ScaleY: heightIn * dpi,
		},
		limits: Bounds{XMax: dataWidth, YMax: 1},
		margin: DefaultMargin,
	}
}

func (s *Scene) Fonts() *Fonts { return s.fonts }

func (s *Scene) SetMargin(px float64) { s.margin = px }

func (s *Scene) AddRect(r Rect, style BoxStyle) {
	s.items = append(s.items, Item{Kind: KindRect, Rect: r, Box: style})
}

func (s *Scene) AddPath(points []Point, style LineStyle) {
	pts := make([]Point, len(points))
	copy(pts, points)
	s.items = append(s.items, Item{Kind: KindPath, Points: pts, Line: style})
}

func (s *Scene) AddText(t Text) {
	s.items = append(s.items, Item{Kind: KindText, Text: t})
}

func (s *Scene) MeasureText(content string, style TextStyle, wrapPx float64) (float64, float64, error) {
	return s.fonts.Measure(content, style, wrapPx)
}

func (s *Scene) Transform() Transform { return s.tr }

func (s *Scene) SetLimits(b Bounds) { s.limits = b }

func (s *Scene) Limits() Bounds { return s.limits }

// Count returns the number of recorded items of kind.
func (s *Scene) Count(kind ItemKind) int {
	n := 0
	for _, it := range s.items {
		if it.Kind == kind {
			n++
		}
	}
	return n
}

// ImageSize is the pixel size of the rendered limits, margins included.
func (s *Scene) ImageSize() (int, int) {
	w := math.Abs(s.limits.Width())*s.tr.ScaleX + 2*s.margin
	h := math.Abs(s.limits.Height())*s.tr.ScaleY + 2*s.margin
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// renderTransform places the limits' top-left corner inside the margin.
func (s *Scene) renderTransform() Linear {
	tr := s.tr.Shifted(math.Min(s.limits.XMin, s.limits.XMax), math.Min(s.limits.YMin, s.limits.YMax))
	tr.OriginX += s.margin
	tr.OriginY += s.margin
	return tr
}
