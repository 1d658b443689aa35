package figure

import (
	"fmt"
	"math"

	"gmr/canvas"
)

// LinkStyle holds the stroke for level anchors and the heavier stroke for
// stepped connectors.
type LinkStyle struct {
	Straight canvas.LineStyle
	Stepped  canvas.LineStyle
}

var DefaultLinkStyle = LinkStyle{
	Straight: canvas.LineStyle{Color: "#000000", Width: 1},
	Stepped:  canvas.LineStyle{Color: "#000000", Width: 2},
}

func (s LinkStyle) Validate() error {
	if err := s.Straight.Validate(); err != nil {
		return fmt.Errorf("straight: %w", err)
	}
	if err := s.Stepped.Validate(); err != nil {
		return fmt.Errorf("stepped: %w", err)
	}
	return nil
}

// LinkPath returns the connector from the middle of a's right edge to the
// middle of b's left edge. Aligned anchors give a straight segment; otherwise
// the path steps through two points at half the horizontal distance, leaving
// a and entering b horizontally.
func LinkPath(a, b Element) ([]canvas.Point, error) {
	ha, err := a.Height()
	if err != nil {
		return nil, err
	}
	hb, err := b.Height()
	if err != nil {
		return nil, err
	}
	xA, yA := a.X()+a.Width(), a.Y()+ha/2
	xB, yB := b.X(), b.Y()+hb/2

	if math.Abs(yA-yB) <= linkTolerance {
		return []canvas.Point{{X: xA, Y: yA}, {X: xB, Y: yB}}, nil
	}
	xMid := xA + 0.5*(xB-xA)
	return []canvas.Point{
		{X: xA, Y: yA},
		{X: xMid, Y: yA},
		{X: xMid, Y: yB},
		{X: xB, Y: yB},
	}, nil
}

// Link draws the connector between two drawn elements.
func Link(cv canvas.Canvas, a, b Element, style LinkStyle) error {
	if err := style.Validate(); err != nil {
		return invalid("link_style", style, "%v", err)
	}
	pts, err := LinkPath(a, b)
	if err != nil {
		return err
	}
	if len(pts) == 2 {
		cv.AddPath(pts, style.Straight)
	} else {
		cv.AddPath(pts, style.Stepped)
	}
	return nil
}
