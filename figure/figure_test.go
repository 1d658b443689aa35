package figure

import (
	"bytes"
	"errors"
	"image/png"
	"log"
	"math"
	"strings"
	"testing"
)

const headerBottomY = TitleHeight + HeaderHeight + 2*VPad

func newTestFigure(t *testing.T) (*Figure, *fakeCanvas) {
	t.Helper()
	cv := newFakeCanvas()
	f, err := New("Demo", WithCanvas(cv))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f, cv
}

func drawTitleAndHeader(t *testing.T, f *Figure) {
	t.Helper()
	if err := f.DrawTitle(); err != nil {
		t.Fatalf("DrawTitle: %v", err)
	}
	if err := f.DrawHeader(); err != nil {
		t.Fatalf("DrawHeader: %v", err)
	}
}

var demoEngagements = []Engagement{
	{Name: "Affective", Whats: []What{
		{Text: "Feature A", Hows: []string{"Principle 1", "Principle 2"}},
	}},
}

func TestNew_Validation(t *testing.T) {
	if _, err := New("  "); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("blank name: err = %v, want ErrInvalidValue", err)
	}
	if _, err := New("Demo", WithSize(0, 10)); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("zero width: err = %v, want ErrInvalidValue", err)
	}
	if _, err := New("Demo", WithDPI(-1)); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("negative dpi: err = %v, want ErrInvalidValue", err)
	}
	f, err := New("Demo")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if f.Scene() == nil || f.Canvas() == nil {
		t.Error("a figure without WithCanvas should own a scene")
	}
}

func TestStagePreconditions(t *testing.T) {
	f, _ := newTestFigure(t)

	if err := f.DrawHeader(); !errors.Is(err, ErrPrecondition) {
		t.Errorf("DrawHeader before title: err = %v, want ErrPrecondition", err)
	}
	if err := f.DrawInterventionColumn(nil); !errors.Is(err, ErrPrecondition) {
		t.Errorf("DrawInterventionColumn before headers: err = %v, want ErrPrecondition", err)
	}
	if err := f.DrawEngagementBlock("Affective", nil); !errors.Is(err, ErrPrecondition) {
		t.Errorf("DrawEngagementBlock before headers: err = %v, want ErrPrecondition", err)
	}
	if err := f.FinalizeBounds(); !errors.Is(err, ErrPrecondition) {
		t.Errorf("FinalizeBounds before headers: err = %v, want ErrPrecondition", err)
	}

	if err := f.DrawTitle(); err != nil {
		t.Fatalf("DrawTitle: %v", err)
	}
	if err := f.DrawEngagementBlock("Affective", nil); !errors.Is(err, ErrPrecondition) {
		t.Errorf("DrawEngagementBlock before headers: err = %v, want ErrPrecondition", err)
	}
}

func TestDrawHeader_Layout(t *testing.T) {
	f, cv := newTestFigure(t)
	drawTitleAndHeader(t, f)

	headers := f.Layout().Headers
	if len(headers) != 4 {
		t.Fatalf("headers = %d, want 4", len(headers))
	}
	x := 0.0
	for k, h := range headers {
		if !near(h.X(), x) || !near(h.Y(), TitleHeight+VPad) {
			t.Errorf("header %d at (%v, %v), want (%v, %v)", k, h.X(), h.Y(), x, TitleHeight+VPad)
		}
		if h.Width() != ColumnWidths[k] {
			t.Errorf("header %d width = %v, want %v", k, h.Width(), ColumnWidths[k])
		}
		x += ColumnWidths[k] + HPad
	}
	// rects: title, then the four headers; only the "what" header is square
	for k := 0; k < 4; k++ {
		rounded := cv.styles[k+1].Corner.Rounded
		if rounded == (k == 2) {
			t.Errorf("header %d rounded = %v", k, rounded)
		}
	}
}

func TestDrawInterventionColumn_AlwaysFourRows(t *testing.T) {
	inputs := [][]string{
		nil,
		{"CBT"},
		{" Distraction ", "Physical game"},
		{"CBT", "Distraction", "Cognitive training"},
		{"Physical game", "Cognitive training", "Distraction", "CBT"},
	}
	for _, in := range inputs {
		f, _ := newTestFigure(t)
		drawTitleAndHeader(t, f)
		if err := f.DrawInterventionColumn(in); err != nil {
			t.Fatalf("DrawInterventionColumn(%v): %v", in, err)
		}
		rows := f.Layout().Interventions
		if len(rows) != InterventionTypes.Len() {
			t.Fatalf("input %v: rows = %d, want %d", in, len(rows), InterventionTypes.Len())
		}
		active := 0
		for i, row := range rows {
			if row.Box.Text() != InterventionTypes.Names()[i] {
				t.Errorf("row %d = %q, want vocabulary order", i, row.Box.Text())
			}
			want := headerBottomY + float64(i)*(ColumnHeights[0]+VPad)
			if !near(row.Box.Y(), want) {
				t.Errorf("input %v: row %d y = %v, want %v", in, i, row.Box.Y(), want)
			}
			if row.Active {
				active++
			}
		}
		if active != len(in) {
			t.Errorf("input %v: active rows = %d, want %d", in, active, len(in))
		}
	}
}

func TestDrawInterventionColumn_DimsInactive(t *testing.T) {
	f, cv := newTestFigure(t)
	drawTitleAndHeader(t, f)
	if err := f.DrawInterventionColumn([]string{"Physical game"}); err != nil {
		t.Fatalf("DrawInterventionColumn: %v", err)
	}
	// title + 4 headers precede the rows
	if got := cv.styles[5].Fill; got != "#9bf6ff" {
		t.Errorf("active fill = %s, want #9bf6ff", got)
	}
	if got := cv.styles[6].Fill; got == "#bdb2ff" {
		t.Error("inactive row should be dimmed")
	}
}

func TestDrawInterventionColumn_UnknownType(t *testing.T) {
	f, _ := newTestFigure(t)
	drawTitleAndHeader(t, f)

	err := f.DrawInterventionColumn([]string{"Physical game", "Unknown type"})
	var ve *ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValueError", err)
	}
	if ve.Param != "intervention_type" {
		t.Errorf("param = %q, want intervention_type", ve.Param)
	}
	if !strings.Contains(err.Error(), "Unknown type") {
		t.Errorf("error %q should name the bad value", err)
	}
}

func TestDrawEngagementBlock_UnknownName(t *testing.T) {
	f, _ := newTestFigure(t)
	drawTitleAndHeader(t, f)

	err := f.DrawEngagementBlock("Emotional", nil)
	var ve *ValueError
	if !errors.As(err, &ve) || ve.Param != "engagement" {
		t.Errorf("err = %v, want *ValueError for engagement", err)
	}
}

func TestDraw_Demo(t *testing.T) {
	f, cv := newTestFigure(t)
	if err := f.Draw([]string{"Physical game"}, demoEngagements); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	l := f.Layout()

	if l.Title == nil || l.Title.Text() != "Demo" {
		t.Errorf("title = %v, want Demo", l.Title)
	}
	if len(l.Headers) != 4 {
		t.Errorf("headers = %d, want 4", len(l.Headers))
	}
	if len(l.Interventions) != 4 {
		t.Errorf("intervention rows = %d, want 4", len(l.Interventions))
	}
	if len(l.Engagements) != 1 {
		t.Fatalf("engagement chips = %d, want 1", len(l.Engagements))
	}
	block := l.Engagements[0]
	if len(block.Whats) != 1 || len(block.Whats[0].Hows) != 2 {
		t.Fatalf("whats/hows = %+v, want 1 what with 2 hows", block.Whats)
	}
	// title, 4 headers, 4 rows, chip, what, 2 hows
	if len(cv.rects) != 13 {
		t.Errorf("rects = %d, want 13", len(cv.rects))
	}
	// chip -> what, what -> each how
	if l.Links != 3 || len(cv.paths) != 3 {
		t.Errorf("links = %d (paths %d), want 3", l.Links, len(cv.paths))
	}
	// chip -> what and what -> second how step; what -> first how is level
	for i, want := range []float64{2, 1, 2} {
		if i < len(cv.lines) && cv.lines[i].Width != want {
			t.Errorf("link %d width = %v, want %v", i, cv.lines[i].Width, want)
		}
	}
	if l.Cursor <= headerBottomY {
		t.Errorf("cursor = %v, want below header bottom %v", l.Cursor, headerBottomY)
	}
	wantWidth := ColumnWidths[0] + ColumnWidths[1] + ColumnWidths[2] + ColumnWidths[3] + 3*HPad
	if !near(cv.limits.XMax, wantWidth) || cv.limits.XMin != 0 {
		t.Errorf("x limits = [%v, %v], want [0, %v]", cv.limits.XMin, cv.limits.XMax, wantWidth)
	}
	if cv.limits.YMin != 0 || cv.limits.YMax != l.Cursor {
		t.Errorf("y limits = [%v, %v], want [0, %v]", cv.limits.YMin, cv.limits.YMax, l.Cursor)
	}
	if !l.Finalized {
		t.Error("layout should be finalized")
	}
}

func TestDraw_HowsStackByHeight(t *testing.T) {
	f, _ := newTestFigure(t)
	engagements := []Engagement{{Name: "Cognitive", Whats: []What{{
		Text: "Puzzles",
		Hows: []string{
			"A principle long enough that it has to wrap onto a second line of the box",
			"Short",
		},
	}}}}
	if err := f.Draw(nil, engagements); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	hows := f.Layout().Engagements[0].Whats[0].Hows
	h0, _ := hows[0].Height()
	if !near(hows[1].Y()-hows[0].Y(), h0+VPad) {
		t.Errorf("second how offset = %v, want %v", hows[1].Y()-hows[0].Y(), h0+VPad)
	}
	what := f.Layout().Engagements[0].Whats[0].Box
	if what.Y() != hows[0].Y() {
		t.Errorf("what y = %v, want level with its first how %v", what.Y(), hows[0].Y())
	}
}

func TestDraw_CursorAdvancesPastTallestColumn(t *testing.T) {
	f, _ := newTestFigure(t)
	engagements := []Engagement{
		{Name: "Affective"},
		{Name: "Behavioral", Whats: []What{
			{Text: "Levels", Hows: []string{"One", "Two", "Three"}},
			{Text: "Rewards", Hows: []string{"Four"}},
		}},
		{Name: "Socio-cultural"},
	}
	if err := f.Draw(nil, engagements); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	blocks := f.Layout().Engagements

	// an empty block only reserves its chip
	if want := headerBottomY + ColumnHeights[1] + VPad; !near(blocks[1].Chip.Y(), want) {
		t.Errorf("second chip y = %v, want %v", blocks[1].Chip.Y(), want)
	}
	// four one-line hows at 0.02 each push the next block below the chip
	want := blocks[1].Chip.Y() + 4*(0.02+VPad)
	if !near(blocks[2].Chip.Y(), want) {
		t.Errorf("third chip y = %v, want %v", blocks[2].Chip.Y(), want)
	}
	rewards := blocks[1].Whats[1].Box
	if !near(rewards.Y(), blocks[1].Chip.Y()+3*(0.02+VPad)) {
		t.Errorf("second what y = %v, want after three hows", rewards.Y())
	}
}

func TestDraw_WhatCursorFollowsHows(t *testing.T) {
	f, _ := newTestFigure(t)
	engagements := []Engagement{{Name: "Affective", Whats: []What{
		{Text: "Story"},
		{Text: "A feature described at enough length to wrap over several lines of its box", Hows: []string{"Short"}},
		{Text: "Music", Hows: []string{"Adaptive soundtrack"}},
	}}}
	if err := f.Draw(nil, engagements); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	whats := f.Layout().Engagements[0].Whats
	if whats[1].Box.Y() != whats[0].Box.Y() {
		t.Errorf("what after one without hows at y = %v, want %v", whats[1].Box.Y(), whats[0].Box.Y())
	}
	h1, _ := whats[1].Box.Height()
	how, _ := whats[1].Hows[0].Height()
	if h1 <= how {
		t.Fatalf("what height %v should exceed its how height %v", h1, how)
	}
	if got := whats[2].Box.Y() - whats[1].Box.Y(); !near(got, how+VPad) {
		t.Errorf("next what offset = %v, want how height + VPad = %v", got, how+VPad)
	}
}

func TestDraw_WithWhatClearance(t *testing.T) {
	cv := newFakeCanvas()
	f, err := New("Demo", WithCanvas(cv), WithWhatClearance())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	engagements := []Engagement{{Name: "Affective", Whats: []What{
		{Text: "Story"},
		{Text: "A feature described at enough length to wrap over several lines of its box", Hows: []string{"Short"}},
		{Text: "Music", Hows: []string{"Adaptive soundtrack"}},
	}}}
	if err := f.Draw(nil, engagements); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	whats := f.Layout().Engagements[0].Whats
	for i := 1; i < len(whats); i++ {
		bottom, _ := whats[i-1].Box.Bottom()
		if !near(whats[i].Box.Y(), bottom+VPad) {
			t.Errorf("what %d y = %v, want previous bottom + VPad = %v", i, whats[i].Box.Y(), bottom+VPad)
		}
	}
	last, _ := whats[2].Box.Bottom()
	if !near(f.Layout().Cursor, last+VPad) {
		t.Errorf("cursor = %v, want %v", f.Layout().Cursor, last+VPad)
	}
}

func TestDraw_Errors(t *testing.T) {
	f, _ := newTestFigure(t)
	if err := f.Draw(nil, nil); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := f.Draw(nil, nil); !errors.Is(err, ErrAlreadyDrawn) {
		t.Errorf("second Draw: err = %v, want ErrAlreadyDrawn", err)
	}

	f, _ = newTestFigure(t)
	dup := []Engagement{{Name: "Affective"}, {Name: "Affective "}}
	if err := f.Draw(nil, dup); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("duplicate engagement: err = %v, want ErrInvalidValue", err)
	}

	f, _ = newTestFigure(t)
	empty := []Engagement{{Name: "Affective", Whats: []What{{Text: "Feature", Hows: []string{""}}}}}
	err := f.Draw(nil, empty)
	var ve *ValueError
	if !errors.As(err, &ve) || ve.Param != "text" {
		t.Errorf("empty how: err = %v, want *ValueError for text", err)
	}
}

func TestDraw_NoEngagements(t *testing.T) {
	f, cv := newTestFigure(t)
	if err := f.Draw([]string{"CBT"}, nil); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if !near(cv.limits.YMax, headerBottomY) {
		t.Errorf("y limit = %v, want header bottom %v", cv.limits.YMax, headerBottomY)
	}
}

func TestDraw_Logs(t *testing.T) {
	var buf bytes.Buffer
	f, err := New("Demo", WithCanvas(newFakeCanvas()), WithLogger(log.New(&buf, "", 0)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := f.Draw(nil, demoEngagements); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if !strings.Contains(buf.String(), `engagement "Affective"`) {
		t.Errorf("log = %q, want engagement trace", buf.String())
	}
}

func TestDraw_SceneRendersPNG(t *testing.T) {
	f, err := New("Demo", WithSize(8, 6), WithDPI(60))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := f.Draw([]string{"Physical game"}, demoEngagements); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	scene := f.Scene()
	w, h := scene.ImageSize()
	wantW := 8*60 + 2*16/2
	wantH := int(math.Ceil(f.Layout().Cursor*6*60 + 16))
	if w < wantW || w > wantW+1 || h != wantH {
		t.Errorf("image size = %dx%d, want %dx%d", w, h, wantW, wantH)
	}

	var buf bytes.Buffer
	if err := scene.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		t.Errorf("png = %dx%d, want %dx%d", b.Dx(), b.Dy(), w, h)
	}

	hows := f.Layout().Engagements[0].Whats[0].Hows
	for _, how := range hows {
		if h, err := how.Height(); err != nil || h <= 0 {
			t.Errorf("how %q height = %v, %v", how.Text(), h, err)
		}
	}
}
