package figure

import (
	"math"

	"gmr/canvas"
)

// Height is either a fixed size in data units or Auto.
type Height struct {
	value float64
	auto  bool
}

// Auto sizes a box to its wrapped text when it is first drawn.
var Auto = Height{auto: true}

func Fixed(h float64) Height { return Height{value: h} }

func (h Height) IsAuto() bool { return h.auto }

type TextBox struct {
	text      string
	x, y      float64
	width     float64
	height    Height
	hpad      float64
	align     canvas.HAlign
	box       canvas.BoxStyle
	textStyle canvas.TextStyle
}

type TextBoxOption func(*TextBox)

func WithHPad(pad float64) TextBoxOption {
	return func(b *TextBox) { b.hpad = pad }
}

func WithAlignment(a canvas.HAlign) TextBoxOption {
	return func(b *TextBox) { b.align = a }
}

func WithBoxStyle(s canvas.BoxStyle) TextBoxOption {
	return func(b *TextBox) { b.box = s }
}

func WithTextStyle(s canvas.TextStyle) TextBoxOption {
	return func(b *TextBox) { b.textStyle = s }
}

var (
	defaultBoxStyle  = canvas.BoxStyle{Fill: "#ffffff", Edge: "#000000", Corner: canvas.Square}
	defaultTextStyle = canvas.TextStyle{Color: "#000000", Family: "DejaVu Sans", Size: 12}
)

// NewTextBox validates its parameters and returns an undrawn box at (x, y).
func NewTextBox(text string, x, y, width float64, height Height, opts ...TextBoxOption) (*TextBox, error) {
	b := &TextBox{
		text:      text,
		x:         x,
		y:         y,
		width:     width,
		height:    height,
		hpad:      DefaultHPad,
		align:     canvas.AlignCenter,
		box:       defaultBoxStyle,
		textStyle: defaultTextStyle,
	}
	for _, opt := range opts {
		opt(b)
	}

	switch {
	case text == "":
		return nil, invalid("text", `""`, "the text content cannot be empty")
	case !finite(x):
		return nil, invalid("x", x, "must be a finite number")
	case !finite(y):
		return nil, invalid("y", y, "must be a finite number")
	case !finite(width) || width <= 0:
		return nil, invalid("width", width, "must be a positive number")
	case !height.auto && (!finite(height.value) || height.value <= 0):
		return nil, invalid("height", height.value, "must be a positive number or Auto")
	case !finite(b.hpad) || b.hpad < 0:
		return nil, invalid("hpad", b.hpad, "must be a non-negative number")
	case 2*b.hpad >= width:
		return nil, invalid("hpad", b.hpad, "leaves no room for text in width %v", width)
	}
	if b.align != canvas.AlignCenter && b.align != canvas.AlignLeft {
		return nil, invalid("text_alignment", b.align, "must be center or left")
	}
	if err := b.box.Validate(); err != nil {
		return nil, invalid("box_style", b.box, "%v", err)
	}
	if err := b.textStyle.Validate(); err != nil {
		return nil, invalid("text_style", b.textStyle, "%v", err)
	}
	if !canvas.KnownFamily(b.textStyle.Family) {
		return nil, invalid("text_style", b.textStyle.Family, "unknown font family")
	}
	return b, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (b *TextBox) Text() string   { return b.text }
func (b *TextBox) X() float64     { return b.x }
func (b *TextBox) Y() float64     { return b.y }
func (b *TextBox) Width() float64 { return b.width }

// Height fails with ErrHeightUnresolved while an Auto box has not been drawn.
func (b *TextBox) Height() (float64, error) {
	if b.height.auto {
		return 0, ErrHeightUnresolved
	}
	return b.height.value, nil
}

// Bottom is Y plus the resolved height.
func (b *TextBox) Bottom() (float64, error) {
	h, err := b.Height()
	if err != nil {
		return 0, err
	}
	return b.y + h, nil
}

// wrapWidth is the pixel width available to text at the box's position.
func (b *TextBox) wrapWidth(tr canvas.Transform) float64 {
	x0, _ := tr.DataToPixel(b.x+b.hpad, 0)
	x1, _ := tr.DataToPixel(b.x+b.width-b.hpad, 0)
	return x1 - x0
}

// measureHeight converts the measured pixel height of the wrapped text back to data units.
func (b *TextBox) measureHeight(cv canvas.Canvas, wrapPx float64) (float64, error) {
	_, hPx, err := cv.MeasureText(b.text, b.textStyle, wrapPx)
	if err != nil {
		return 0, err
	}
	tr := cv.Transform()
	px, py := tr.DataToPixel(b.x, b.y)
	_, y0 := tr.PixelToData(px, py)
	_, y1 := tr.PixelToData(px, py+hPx)
	return math.Abs(y1 - y0), nil
}

// Draw resolves an Auto height from the measured text, then emits the box and its label.
func (b *TextBox) Draw(cv canvas.Canvas) error {
	wrapPx := b.wrapWidth(cv.Transform())
	if b.height.auto {
		h, err := b.measureHeight(cv, wrapPx)
		if err != nil {
			return err
		}
		b.height = Fixed(h)
	}
	h := b.height.value

	cv.AddRect(canvas.Rect{X: b.x, Y: b.y, Width: b.width, Height: h}, b.box)

	textX := b.x + b.width/2
	if b.align == canvas.AlignLeft {
		textX = b.x + b.hpad
	}
	cv.AddText(canvas.Text{
		Content: b.text,
		X:       textX,
		Y:       b.y + h/2,
		Align:   b.align,
		WrapPx:  wrapPx,
		Style:   b.textStyle,
	})
	return nil
}
