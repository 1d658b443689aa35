package canvas

// Linear maps data units to pixels with an independent scale per axis.
// Both spaces grow downward, so no flip is applied.
type Linear struct {
	OriginX, OriginY float64 // pixel position of data (0, 0)
	ScaleX, ScaleY   float64 // pixels per data unit
}

func (l Linear) DataToPixel(x, y float64) (float64, float64) {
	return l.OriginX + x*l.ScaleX, l.OriginY + y*l.ScaleY
}

func (l Linear) PixelToData(px, py float64) (float64, float64) {
	return (px - l.OriginX) / l.ScaleX, (py - l.OriginY) / l.ScaleY
}

// Shifted returns the transform that puts data point (x, y) at pixel (0, 0).
func (l Linear) Shifted(x, y float64) Linear {
	return Linear{
		OriginX: -x * l.ScaleX,
		OriginY: -y * l.ScaleY,
		ScaleX:  l.ScaleX,
		ScaleY:  l.ScaleY,
	}
}
