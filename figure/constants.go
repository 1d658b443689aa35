package figure

// Column grid, in data units. Data y grows downward from the title at 0.
var ColumnWidths = [4]float64{0.14, 0.1, 0.3, 0.3}

// ColumnHeights holds the fixed row heights of the intervention and engagement
// columns; the what and how columns size to their text.
var ColumnHeights = [2]float64{0.04, 0.04}

const (
	HPad = 0.015
	VPad = 0.005

	TitleHeight  = 0.05
	HeaderHeight = 0.07

	// DefaultHPad is the text inset inside a box.
	DefaultHPad = 0.01

	// linkTolerance is the anchor height difference under which links are straight.
	linkTolerance = 1e-7
)

var headerTexts = [4]string{
	"Primary type of intervention",
	"Type of engagement",
	"What game design features support this engagement?",
	"Which design principles support this features?",
}

// columnX returns the left edge of column k.
func columnX(k int) float64 {
	x := 0.0
	for i := 0; i < k; i++ {
		x += ColumnWidths[i] + HPad
	}
	return x
}

// TotalWidth is the horizontal extent of the four columns and their gaps.
func TotalWidth() float64 {
	return columnX(len(ColumnWidths)-1) + ColumnWidths[len(ColumnWidths)-1]
}
