package canvas

import (
	"math"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// Cell is one character of a terminal rendering. Fill is the background color
// of the box covering it, empty outside boxes.
type Cell struct {
	Rune rune
	Fill string
	Ink  string
}

type cellGrid struct {
	cells  [][]Cell
	tr     Linear
	cols   int
	rows   int
	scaleX float64 // cells per pixel
}

// Cells renders the scene limits onto a cols x rows character grid.
func (s *Scene) Cells(cols, rows int) [][]Cell {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g := &cellGrid{
		cells: make([][]Cell, rows),
		cols:  cols,
		rows:  rows,
	}
	for i := range g.cells {
		g.cells[i] = make([]Cell, cols)
		for j := range g.cells[i] {
			g.cells[i][j] = Cell{Rune: ' '}
		}
	}

	b := s.limits
	bw, bh := math.Abs(b.Width()), math.Abs(b.Height())
	if bw == 0 || bh == 0 {
		return g.cells
	}
	g.tr = Linear{
		OriginX: -math.Min(b.XMin, b.XMax) * float64(cols) / bw,
		OriginY: -math.Min(b.YMin, b.YMax) * float64(rows) / bh,
		ScaleX:  float64(cols) / bw,
		ScaleY:  float64(rows) / bh,
	}
	g.scaleX = g.tr.ScaleX / s.tr.ScaleX

	// Boxes and labels first so links only fill the gaps between them
	for _, it := range s.items {
		switch it.Kind {
		case KindRect:
			g.drawBox(it.Rect, it.Box)
		case KindText:
			g.drawText(it.Text)
		}
	}
	for _, it := range s.items {
		if it.Kind == KindPath {
			g.drawPath(it.Points)
		}
	}
	return g.cells
}

// Lines flattens a cell grid to plain text, trailing blanks trimmed.
func Lines(cells [][]Cell) []string {
	out := make([]string, len(cells))
	for i, row := range cells {
		var sb strings.Builder
		for _, c := range row {
			sb.WriteRune(c.Rune)
		}
		out[i] = strings.TrimRight(sb.String(), " ")
	}
	return out
}

func (g *cellGrid) inBounds(x, y int) bool {
	return y >= 0 && y < g.rows && x >= 0 && x < g.cols
}

func (g *cellGrid) cellRect(r Rect) (x0, y0, x1, y1 int) {
	fx0, fy0 := g.tr.DataToPixel(r.X, r.Y)
	fx1, fy1 := g.tr.DataToPixel(r.X+r.Width, r.Y+r.Height)
	x0, y0 = int(math.Round(fx0)), int(math.Round(fy0))
	x1, y1 = int(math.Round(fx1))-1, int(math.Round(fy1))-1
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return
}

func (g *cellGrid) drawBox(r Rect, style BoxStyle) {
	x0, y0, x1, y1 := g.cellRect(r)

	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if style.Corner.Rounded {
		tl, tr, bl, br = '╭', '╮', '╰', '╯'
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !g.inBounds(x, y) {
				continue
			}
			ch := ' '
			switch {
			case y == y0 && x == x0:
				ch = tl
			case y == y0 && x == x1:
				ch = tr
			case y == y1 && x == x0:
				ch = bl
			case y == y1 && x == x1:
				ch = br
			case y == y0 || y == y1:
				ch = '─'
			case x == x0 || x == x1:
				ch = '│'
			}
			g.cells[y][x] = Cell{Rune: ch, Fill: style.Fill, Ink: style.Edge}
		}
	}
}

func (g *cellGrid) drawText(t Text) {
	x, y := g.tr.DataToPixel(t.X, t.Y)
	width := int(math.Floor(t.WrapPx * g.scaleX))
	if width < 1 {
		width = 1
	}
	lines := strings.Split(wordwrap.String(t.Content, width), "\n")
	top := int(math.Round(y - float64(len(lines))/2))

	for i, line := range lines {
		runes := []rune(line)
		if len(runes) > width {
			runes = runes[:width]
		}
		startX := int(math.Round(x))
		if t.Align == AlignCenter {
			startX = int(math.Round(x - float64(len(runes))/2))
		}
		row := top + i
		for j, r := range runes {
			if !g.inBounds(startX+j, row) {
				continue
			}
			cell := &g.cells[row][startX+j]
			cell.Rune = r
			cell.Ink = t.Style.Color
		}
	}
}

func (g *cellGrid) drawPath(points []Point) {
	if len(points) < 2 {
		return
	}
	pts := make([][2]int, len(points))
	for i, p := range points {
		x, y := g.tr.DataToPixel(p.X, p.Y)
		pts[i] = [2]int{int(math.Round(x)), int(math.Floor(y))}
	}
	for i := 0; i < len(pts)-1; i++ {
		x1, y1 := pts[i][0], pts[i][1]
		x2, y2 := pts[i+1][0], pts[i+1][1]
		if y1 == y2 {
			for x := min(x1, x2); x <= max(x1, x2); x++ {
				g.plot(x, y1, '─')
			}
		} else {
			for y := min(y1, y2); y <= max(y1, y2); y++ {
				g.plot(x1, y, '│')
			}
		}
	}
	// Corners where a vertical run meets horizontal ones
	for i := 1; i < len(pts)-1; i++ {
		prev, cur, next := pts[i-1], pts[i], pts[i+1]
		if prev[1] == cur[1] && cur[1] == next[1] {
			continue
		}
		var ch rune
		switch {
		case prev[1] == cur[1] && next[1] > cur[1]:
			ch = '┐'
		case prev[1] == cur[1] && next[1] < cur[1]:
			ch = '┘'
		case prev[1] < cur[1]:
			ch = '└'
		default:
			ch = '┌'
		}
		g.plot(cur[0], cur[1], ch)
	}
}

// plot draws only over blank cells outside boxes.
func (g *cellGrid) plot(x, y int, ch rune) {
	if !g.inBounds(x, y) {
		return
	}
	c := &g.cells[y][x]
	if c.Fill != "" || (c.Rune != ' ' && !isLinkRune(c.Rune)) {
		return
	}
	c.Rune = ch
}

func isLinkRune(r rune) bool {
	return strings.ContainsRune("─│┐┘└┌", r)
}
