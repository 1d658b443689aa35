package canvas

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
)

func (s *Scene) WritePNG(w io.Writer) error {
	dc, err := s.rasterize()
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func (s *Scene) SavePNG(filename string) error {
	dc, err := s.rasterize()
	if err != nil {
		return err
	}
	return dc.SavePNG(filename)
}

func (s *Scene) rasterize() (*gg.Context, error) {
	width, height := s.ImageSize()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("nothing to render: image size %dx%d", width, height)
	}
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	tr := s.renderTransform()
	for _, it := range s.items {
		switch it.Kind {
		case KindRect:
			drawRectPNG(dc, tr, it.Rect, it.Box)
		case KindPath:
			drawPathPNG(dc, tr, it.Points, it.Line)
		case KindText:
			if err := s.drawTextPNG(dc, tr, it.Text); err != nil {
				return nil, err
			}
		}
	}
	return dc, nil
}

func drawRectPNG(dc *gg.Context, tr Linear, r Rect, style BoxStyle) {
	x, y := tr.DataToPixel(r.X, r.Y)
	w := r.Width * tr.ScaleX
	h := r.Height * tr.ScaleY

	if style.Corner.Rounded && style.Corner.Radius > 0 {
		radius := math.Min(style.Corner.Radius*tr.ScaleX, math.Min(w, h)/2)
		dc.DrawRoundedRectangle(x, y, w, h, radius)
	} else {
		dc.DrawRectangle(x, y, w, h)
	}
	if style.Fill != "" {
		dc.SetHexColor(style.Fill)
		dc.FillPreserve()
	}
	if style.Edge != "" {
		lw := style.LineWidth
		if lw == 0 {
			lw = 1
		}
		dc.SetHexColor(style.Edge)
		dc.SetLineWidth(lw)
		dc.StrokePreserve()
	}
	dc.ClearPath()
}

func drawPathPNG(dc *gg.Context, tr Linear, points []Point, style LineStyle) {
	if len(points) < 2 {
		return
	}
	for i, p := range points {
		x, y := tr.DataToPixel(p.X, p.Y)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.SetHexColor(style.Color)
	dc.SetLineWidth(style.Width)
	dc.Stroke()
}

func (s *Scene) drawTextPNG(dc *gg.Context, tr Linear, t Text) error {
	face, err := s.fonts.Face(t.Style.Family, t.Style.Size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetHexColor(t.Style.Color)

	x, y := tr.DataToPixel(t.X, t.Y)
	lines := wrapLines(dc, t.Content, t.WrapPx)
	fh := dc.FontHeight()
	top := y - blockHeight(len(lines), fh)/2

	ax := 0.5
	if t.Align == AlignLeft {
		ax = 0
	}
	for i, line := range lines {
		dc.DrawStringAnchored(line, x, top+float64(i)*fh*LineSpacing, ax, 1)
	}
	return nil
}
