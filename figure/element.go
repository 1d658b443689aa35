package figure

// Element is anything placed on the figure that a link can attach to.
// X and Y locate the corner at the smallest data coordinates, which is the
// top-left corner on the rendered, y-inverted figure.
type Element interface {
	X() float64
	Y() float64
	Width() float64
	Height() (float64, error)
}
