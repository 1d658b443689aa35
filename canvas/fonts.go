package canvas

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// LineSpacing is the baseline-to-baseline distance as a multiple of the font height.
const LineSpacing = 1.2

var fontData = map[string][]byte{
	"Go":        goregular.TTF,
	"Go Medium": gomedium.TTF,
	"Go Bold":   gobold.TTF,
	"Go Mono":   gomono.TTF,
}

// Common family names mapped to the closest embedded face.
var fontAliases = map[string]string{
	"dejavu sans": "Go",
	"sans-serif":  "Go",
	"corbel":      "Go Medium",
	"consolas":    "Go Mono",
	"monospace":   "Go Mono",
}

type faceKey struct {
	family string
	size   float64
}

// Fonts parses the embedded fonts on demand and caches faces per size.
// It is not safe for concurrent use.
type Fonts struct {
	dpi    float64
	parsed map[string]*truetype.Font
	faces  map[faceKey]font.Face
	dc     *gg.Context // measuring context
}

func NewFonts(dpi float64) *Fonts {
	return &Fonts{
		dpi:    dpi,
		parsed: make(map[string]*truetype.Font),
		faces:  make(map[faceKey]font.Face),
		dc:     gg.NewContext(1, 1),
	}
}

func canonicalFamily(family string) (string, bool) {
	if _, ok := fontData[family]; ok {
		return family, true
	}
	key := strings.ToLower(strings.TrimSpace(family))
	for name := range fontData {
		if strings.ToLower(name) == key {
			return name, true
		}
	}
	name, ok := fontAliases[key]
	return name, ok
}

// KnownFamily reports whether family, or one of its aliases, is embedded.
func KnownFamily(family string) bool {
	_, ok := canonicalFamily(family)
	return ok
}

func (f *Fonts) Has(family string) bool { return KnownFamily(family) }

// Face returns a face for family at size points.
func (f *Fonts) Face(family string, size float64) (font.Face, error) {
	name, ok := canonicalFamily(family)
	if !ok {
		return nil, fmt.Errorf("unknown font family %q", family)
	}
	key := faceKey{name, size}
	if face, ok := f.faces[key]; ok {
		return face, nil
	}
	tt, ok := f.parsed[name]
	if !ok {
		var err error
		tt, err = truetype.Parse(fontData[name])
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %v", name, err)
		}
		f.parsed[name] = tt
	}
	face := truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     f.dpi,
		Hinting: font.HintingFull,
	})
	f.faces[key] = face
	return face, nil
}

// Wrap breaks content into lines no wider than wrapPx pixels. Explicit newlines
// are kept; wrapPx <= 0 only splits on them.
func (f *Fonts) Wrap(content string, style TextStyle, wrapPx float64) ([]string, error) {
	face, err := f.Face(style.Family, style.Size)
	if err != nil {
		return nil, err
	}
	f.dc.SetFontFace(face)
	return wrapLines(f.dc, content, wrapPx), nil
}

// Measure returns the pixel extent of content once wrapped to wrapPx.
func (f *Fonts) Measure(content string, style TextStyle, wrapPx float64) (float64, float64, error) {
	face, err := f.Face(style.Family, style.Size)
	if err != nil {
		return 0, 0, err
	}
	f.dc.SetFontFace(face)
	lines := wrapLines(f.dc, content, wrapPx)
	var w float64
	for _, line := range lines {
		lw, _ := f.dc.MeasureString(line)
		if lw > w {
			w = lw
		}
	}
	return w, blockHeight(len(lines), f.dc.FontHeight()), nil
}

func wrapLines(dc *gg.Context, content string, wrapPx float64) []string {
	if wrapPx <= 0 {
		return strings.Split(content, "\n")
	}
	return dc.WordWrap(content, wrapPx)
}

// blockHeight is the height of n lines, measured from the top of the first
// line to the bottom of the last.
func blockHeight(n int, fontHeight float64) float64 {
	if n == 0 {
		return 0
	}
	return fontHeight * (float64(n) + float64(n-1)*(LineSpacing-1))
}

// FontHeight is the pixel height of one line of style, without line spacing.
func (f *Fonts) FontHeight(style TextStyle) (float64, error) {
	face, err := f.Face(style.Family, style.Size)
	if err != nil {
		return 0, err
	}
	return float64(face.Metrics().Height) / 64, nil
}

// PixelSize converts a size in points to pixels at the registry's DPI.
func (f *Fonts) PixelSize(points float64) float64 {
	return points * f.dpi / 72
}
