package canvas

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

const dimTarget = "#d9d9d9"

// ParseColor parses a "#rrggbb" or "#rgb" color.
func ParseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// Dim blends hex toward a light grey by amount in [0, 1].
func Dim(hex string, amount float64) (string, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return "", err
	}
	grey, _ := colorful.Hex(dimTarget)
	return c.BlendRgb(grey, amount).Clamped().Hex(), nil
}

// validColor reports whether s is empty (no paint) or a parseable color.
func validColor(s string) bool {
	if s == "" {
		return true
	}
	_, err := colorful.Hex(s)
	return err == nil
}

// Validate checks the colors and sizes of a box style.
func (s BoxStyle) Validate() error {
	if !validColor(s.Fill) {
		return fmt.Errorf("invalid fill color %q", s.Fill)
	}
	if !validColor(s.Edge) {
		return fmt.Errorf("invalid edge color %q", s.Edge)
	}
	if s.LineWidth < 0 {
		return fmt.Errorf("negative line width %v", s.LineWidth)
	}
	if s.Corner.Radius < 0 {
		return fmt.Errorf("negative corner radius %v", s.Corner.Radius)
	}
	return nil
}

func (s LineStyle) Validate() error {
	if s.Color == "" || !validColor(s.Color) {
		return fmt.Errorf("invalid line color %q", s.Color)
	}
	if !(s.Width > 0) {
		return fmt.Errorf("line width must be positive, got %v", s.Width)
	}
	return nil
}

// Validate checks the color and size of a text style. The family is checked
// against a font registry separately.
func (s TextStyle) Validate() error {
	if s.Color == "" || !validColor(s.Color) {
		return fmt.Errorf("invalid text color %q", s.Color)
	}
	if !(s.Size > 0) {
		return fmt.Errorf("font size must be positive, got %v", s.Size)
	}
	return nil
}
