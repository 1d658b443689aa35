package canvas

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, nil
}

// WriteSVG renders the scene as an SVG document sized like the PNG output.
func (s *Scene) WriteSVG(w io.Writer) error {
	width, height := s.ImageSize()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("nothing to render: image size %dx%d", width, height)
	}
	ew := &errWriter{w: w}
	doc := svg.New(ew)
	doc.Start(width, height)
	doc.Rect(0, 0, width, height, "fill:#ffffff")

	tr := s.renderTransform()
	for _, it := range s.items {
		switch it.Kind {
		case KindRect:
			drawRectSVG(doc, tr, it.Rect, it.Box)
		case KindPath:
			drawPathSVG(doc, tr, it.Points, it.Line)
		case KindText:
			if err := s.drawTextSVG(doc, tr, it.Text); err != nil {
				return err
			}
		}
	}
	doc.End()
	return ew.err
}

func px(v float64) int {
	return int(math.Round(v))
}

func drawRectSVG(doc *svg.SVG, tr Linear, r Rect, style BoxStyle) {
	x, y := tr.DataToPixel(r.X, r.Y)
	w := r.Width * tr.ScaleX
	h := r.Height * tr.ScaleY

	var attrs []string
	if style.Fill != "" {
		attrs = append(attrs, "fill:"+style.Fill)
	} else {
		attrs = append(attrs, "fill:none")
	}
	if style.Edge != "" {
		lw := style.LineWidth
		if lw == 0 {
			lw = 1
		}
		attrs = append(attrs, "stroke:"+style.Edge, fmt.Sprintf("stroke-width:%g", lw))
	}
	css := strings.Join(attrs, ";")

	if style.Corner.Rounded && style.Corner.Radius > 0 {
		radius := px(math.Min(style.Corner.Radius*tr.ScaleX, math.Min(w, h)/2))
		doc.Roundrect(px(x), px(y), px(w), px(h), radius, radius, css)
		return
	}
	doc.Rect(px(x), px(y), px(w), px(h), css)
}

func drawPathSVG(doc *svg.SVG, tr Linear, points []Point, style LineStyle) {
	if len(points) < 2 {
		return
	}
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		x, y := tr.DataToPixel(p.X, p.Y)
		xs[i], ys[i] = px(x), px(y)
	}
	doc.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", style.Color, style.Width))
}

func (s *Scene) drawTextSVG(doc *svg.SVG, tr Linear, t Text) error {
	lines, err := s.fonts.Wrap(t.Content, t.Style, t.WrapPx)
	if err != nil {
		return err
	}
	fh, err := s.fonts.FontHeight(t.Style)
	if err != nil {
		return err
	}
	family, _ := canonicalFamily(t.Style.Family)

	anchor := "middle"
	if t.Align == AlignLeft {
		anchor = "start"
	}
	css := fmt.Sprintf("font-family:'%s',sans-serif;font-size:%.1fpx;fill:%s;text-anchor:%s",
		family, s.fonts.PixelSize(t.Style.Size), t.Style.Color, anchor)

	x, y := tr.DataToPixel(t.X, t.Y)
	top := y - blockHeight(len(lines), fh)/2
	for i, line := range lines {
		doc.Text(px(x), px(top+float64(i)*fh*LineSpacing+fh), line, css)
	}
	return nil
}
