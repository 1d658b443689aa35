// Package figure lays out a game's engagement model: a title, a header row,
// the intervention-type column and one block per engagement type, each a tree
// of "what" features and "how" design principles joined by links.
//
//	  Game Name
//	+-------------------+--------------------+------+-----------------+
//	| header            |                    |      |                 |
//	+-------------------+--------------------+------+-----------------+
//	| intervention type | type of engagement | what | design principle|
//	|                   |                    |      |                 |
//	+-------------------+--------------------+------+-----------------+
package figure

import (
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"gmr/canvas"
)

// Engagement is one engagement type with its features in display order.
type Engagement struct {
	Name  string
	Whats []What
}

// What is a game design feature and the design principles supporting it.
type What struct {
	Text string
	Hows []string
}

type InterventionRow struct {
	Box    *TextBox
	Active bool
}

type WhatStack struct {
	Box  *TextBox
	Hows []*TextBox
}

type EngagementBlock struct {
	Chip  *TextBox
	Whats []WhatStack
}

// Layout is a snapshot of everything placed so far.
type Layout struct {
	Title         *TextBox
	Headers       []*TextBox
	Interventions []InterventionRow
	Engagements   []EngagementBlock
	Links         int
	Cursor        float64
	Bounds        canvas.Bounds
	Finalized     bool
}

type Figure struct {
	name      string
	widthIn   float64
	heightIn  float64
	dpi       float64
	cv        canvas.Canvas
	scene     *canvas.Scene
	logger    *log.Logger
	linkStyle LinkStyle
	// clearance keeps each what below the bottom of the previous one.
	clearance bool

	title         *TextBox
	headers       []*TextBox
	interventions []InterventionRow
	engagements   []EngagementBlock
	links         int

	// cursor is where the engagement column currently ends.
	cursor    float64
	cursorSet bool
	bounds    canvas.Bounds
	finalized bool
	drawn     bool
}

type Option func(*Figure)

// WithSize sets the target size in inches. The width spans the four columns;
// the height spans one vertical data unit.
func WithSize(width, height float64) Option {
	return func(f *Figure) { f.widthIn, f.heightIn = width, height }
}

func WithDPI(dpi float64) Option {
	return func(f *Figure) { f.dpi = dpi }
}

// WithCanvas draws onto cv instead of a new Scene.
func WithCanvas(cv canvas.Canvas) Option {
	return func(f *Figure) { f.cv = cv }
}

func WithLogger(l *log.Logger) Option {
	return func(f *Figure) { f.logger = l }
}

func WithLinkStyle(s LinkStyle) Option {
	return func(f *Figure) { f.linkStyle = s }
}

// WithWhatClearance starts each what no higher than VPad below the previous
// one. By default the what cursor advances only by the heights of the hows,
// so a what with no hows shares its y with the next what.
func WithWhatClearance() Option {
	return func(f *Figure) { f.clearance = true }
}

func New(name string, opts ...Option) (*Figure, error) {
	f := &Figure{
		name:      name,
		widthIn:   15,
		heightIn:  10,
		dpi:       100,
		logger:    log.New(io.Discard, "", 0),
		linkStyle: DefaultLinkStyle,
	}
	for _, opt := range opts {
		opt(f)
	}

	if strings.TrimSpace(name) == "" {
		return nil, invalid("name", `""`, "the game name cannot be empty")
	}
	if !(f.widthIn > 0) || !(f.heightIn > 0) || math.IsInf(f.widthIn, 0) || math.IsInf(f.heightIn, 0) {
		return nil, invalid("size", fmt.Sprintf("%vx%v", f.widthIn, f.heightIn), "must be two positive numbers")
	}
	if !(f.dpi > 0) || math.IsInf(f.dpi, 0) {
		return nil, invalid("dpi", f.dpi, "must be a positive number")
	}
	if err := f.linkStyle.Validate(); err != nil {
		return nil, invalid("link_style", f.linkStyle, "%v", err)
	}
	if f.logger == nil {
		f.logger = log.New(io.Discard, "", 0)
	}
	if f.cv == nil {
		f.scene = canvas.NewScene(f.widthIn, f.heightIn, f.dpi, TotalWidth())
		f.cv = f.scene
	}
	return f, nil
}

func (f *Figure) Name() string { return f.name }

// Scene is the canvas the figure draws on, or nil when WithCanvas was used.
func (f *Figure) Scene() *canvas.Scene { return f.scene }

func (f *Figure) Canvas() canvas.Canvas { return f.cv }

// Draw runs every stage once: title, headers, intervention column, one block
// per engagement in order, and the final bounds.
func (f *Figure) Draw(interventionTypes []string, engagements []Engagement) error {
	if f.drawn {
		return ErrAlreadyDrawn
	}
	f.drawn = true

	seen := mapset.New[string]()
	for _, e := range engagements {
		name := strings.TrimSpace(e.Name)
		if seen.Has(name) {
			return invalid("engagement", e.Name, "listed more than once")
		}
		seen.Put(name)
	}

	if err := f.DrawTitle(); err != nil {
		return err
	}
	if err := f.DrawHeader(); err != nil {
		return err
	}
	if err := f.DrawInterventionColumn(interventionTypes); err != nil {
		return err
	}
	for _, e := range engagements {
		if err := f.DrawEngagementBlock(e.Name, e.Whats); err != nil {
			return err
		}
	}
	return f.FinalizeBounds()
}

func (f *Figure) DrawTitle() error {
	title, err := NewTextBox(f.name, 0, 0, ColumnWidths[0], Fixed(TitleHeight),
		WithBoxStyle(canvas.BoxStyle{Fill: "#eeeeee", Edge: "#000000", Corner: canvas.Square}),
		WithTextStyle(canvas.TextStyle{Color: "#000000", Family: "Consolas", Size: 20}),
	)
	if err != nil {
		return err
	}
	if err := title.Draw(f.cv); err != nil {
		return err
	}
	f.title = title
	f.logger.Printf("title %q drawn", f.name)
	return nil
}

func (f *Figure) DrawHeader() error {
	if f.title == nil {
		return stageError("header", "the title")
	}
	y := TitleHeight + VPad
	headers := make([]*TextBox, 0, len(headerTexts))
	for k, text := range headerTexts {
		corner := canvas.Rounded(0.01)
		if k == 2 {
			corner = canvas.Square
		}
		header, err := NewTextBox(text, columnX(k), y, ColumnWidths[k], Fixed(HeaderHeight),
			WithBoxStyle(canvas.BoxStyle{Fill: "#eeeeee", Edge: "#000000", Corner: corner}),
			WithTextStyle(canvas.TextStyle{Color: "#000000", Family: "Corbel", Size: 18}),
		)
		if err != nil {
			return err
		}
		if err := header.Draw(f.cv); err != nil {
			return err
		}
		headers = append(headers, header)
	}
	f.headers = headers
	f.logger.Printf("headers drawn at y=%.4f", y)
	return nil
}

// headerBottom is where the intervention and engagement columns start.
func (f *Figure) headerBottom(stage string) (float64, error) {
	if f.title == nil || len(f.headers) == 0 {
		return 0, stageError(stage, "the title and headers")
	}
	th, err := f.title.Height()
	if err != nil {
		return 0, err
	}
	hh, err := f.headers[0].Height()
	if err != nil {
		return 0, err
	}
	for _, h := range f.headers[1:] {
		if other, _ := h.Height(); other != hh {
			return 0, fmt.Errorf("headers differ in height: %v and %v", hh, other)
		}
	}
	return th + hh + 2*VPad, nil
}

// DrawInterventionColumn draws one row per intervention type in vocabulary
// order. Types absent from interventionTypes are drawn dimmed so every type
// keeps its slot.
func (f *Figure) DrawInterventionColumn(interventionTypes []string) error {
	y, err := f.headerBottom("intervention column")
	if err != nil {
		return err
	}
	active := mapset.New[string]()
	for _, it := range interventionTypes {
		if !InterventionTypes.Contains(it) {
			return invalid("intervention_type", fmt.Sprintf("%q", it),
				"must be one of %s", strings.Join(InterventionTypes.Names(), ", "))
		}
		active.Put(strings.TrimSpace(it))
	}

	rows := make([]InterventionRow, 0, InterventionTypes.Len())
	for _, entry := range InterventionTypes.Entries() {
		isActive := active.Has(entry.Name)
		fill, ink := entry.Color, "#000000"
		if !isActive {
			if fill, err = canvas.Dim(entry.Color, 0.75); err != nil {
				return err
			}
			ink = "#9e9e9e"
		}
		row, err := NewTextBox(entry.Name, 0, y, ColumnWidths[0], Fixed(ColumnHeights[0]),
			WithBoxStyle(canvas.BoxStyle{Fill: fill, Corner: canvas.Rounded(0.005)}),
			WithTextStyle(canvas.TextStyle{Color: ink, Family: "DejaVu Sans", Size: 14}),
		)
		if err != nil {
			return err
		}
		if err := row.Draw(f.cv); err != nil {
			return err
		}
		rows = append(rows, InterventionRow{Box: row, Active: isActive})
		f.logger.Printf("intervention %q active=%t y=%.4f", entry.Name, isActive, y)
		y += ColumnHeights[0] + VPad
	}
	f.interventions = rows
	return nil
}

// DrawEngagementBlock draws the engagement chip and, for each what in order,
// its box followed by its stack of hows. The what and how cursors advance
// together so each what stays level with its first how.
func (f *Figure) DrawEngagementBlock(name string, whats []What) error {
	color, ok := EngagementTypes.Color(name)
	if !ok {
		return invalid("engagement", fmt.Sprintf("%q", name),
			"must be one of %s", strings.Join(EngagementTypes.Names(), ", "))
	}
	if !f.cursorSet {
		y, err := f.headerBottom("engagement block")
		if err != nil {
			return err
		}
		f.cursor, f.cursorSet = y, true
	}
	name = strings.TrimSpace(name)

	chip, err := NewTextBox(name, columnX(1), f.cursor, ColumnWidths[1], Fixed(ColumnHeights[1]),
		WithBoxStyle(canvas.BoxStyle{Fill: color, Corner: canvas.Rounded(0.005)}),
		WithTextStyle(canvas.TextStyle{Color: "#000000", Family: "DejaVu Sans", Size: 14}),
	)
	if err != nil {
		return err
	}
	if err := chip.Draw(f.cv); err != nil {
		return err
	}
	block := EngagementBlock{Chip: chip}
	f.logger.Printf("engagement %q at y=%.4f", name, f.cursor)

	yWhat := f.cursor
	for _, w := range whats {
		stack, next, err := f.drawWhat(chip, w, yWhat)
		if err != nil {
			return fmt.Errorf("engagement %q: %w", name, err)
		}
		block.Whats = append(block.Whats, stack)
		yWhat = next
	}

	chipHeight, _ := chip.Height()
	f.cursor = math.Max(f.cursor+chipHeight+VPad, yWhat)
	f.engagements = append(f.engagements, block)
	f.logger.Printf("engagement %q done, cursor=%.4f", name, f.cursor)
	return nil
}

// drawWhat draws one what box at y, its hows and their links, and returns the
// y of the next what.
func (f *Figure) drawWhat(chip *TextBox, w What, y float64) (WhatStack, float64, error) {
	whatBox, err := NewTextBox(w.Text, columnX(2), y, ColumnWidths[2], Auto,
		WithAlignment(canvas.AlignLeft),
		WithBoxStyle(canvas.BoxStyle{Fill: "#ffffff", Edge: "#000000", Corner: canvas.Square}),
		WithTextStyle(canvas.TextStyle{Color: "#000000", Family: "DejaVu Sans", Size: 12}),
	)
	if err != nil {
		return WhatStack{}, 0, err
	}
	if err := whatBox.Draw(f.cv); err != nil {
		return WhatStack{}, 0, err
	}
	if err := f.link(chip, whatBox); err != nil {
		return WhatStack{}, 0, err
	}
	stack := WhatStack{Box: whatBox}

	yWhat, yHow := y, y
	for _, how := range w.Hows {
		howBox, err := NewTextBox(how, columnX(3), yHow, ColumnWidths[3], Auto,
			WithAlignment(canvas.AlignLeft),
			WithBoxStyle(canvas.BoxStyle{Fill: "#ffffff", Edge: "#000000", Corner: canvas.Rounded(0.005)}),
			WithTextStyle(canvas.TextStyle{Color: "#000000", Family: "DejaVu Sans", Size: 12}),
		)
		if err != nil {
			return WhatStack{}, 0, fmt.Errorf("what %q: %w", w.Text, err)
		}
		if err := howBox.Draw(f.cv); err != nil {
			return WhatStack{}, 0, err
		}
		if err := f.link(whatBox, howBox); err != nil {
			return WhatStack{}, 0, err
		}
		h, _ := howBox.Height()
		yHow += h + VPad
		yWhat += h + VPad
		stack.Hows = append(stack.Hows, howBox)
	}

	if f.clearance {
		if bottom, err := whatBox.Bottom(); err == nil && yWhat < bottom+VPad {
			yWhat = bottom + VPad
		}
	}
	return stack, yWhat, nil
}

func (f *Figure) link(a, b Element) error {
	if err := Link(f.cv, a, b, f.linkStyle); err != nil {
		return err
	}
	f.links++
	return nil
}

// FinalizeBounds fits the canvas to the four columns and to the bottom of the
// engagement column, with 0 at the top.
func (f *Figure) FinalizeBounds() error {
	if !f.cursorSet {
		y, err := f.headerBottom("bounds")
		if err != nil {
			return err
		}
		f.cursor, f.cursorSet = y, true
	}
	f.bounds = canvas.Bounds{XMin: 0, XMax: TotalWidth(), YMin: 0, YMax: f.cursor}
	f.cv.SetLimits(f.bounds)
	f.finalized = true
	f.logger.Printf("bounds x=[0, %.4f] y=[0, %.4f]", f.bounds.XMax, f.bounds.YMax)
	return nil
}

func (f *Figure) Layout() Layout {
	l := Layout{
		Title:         f.title,
		Headers:       append([]*TextBox(nil), f.headers...),
		Interventions: append([]InterventionRow(nil), f.interventions...),
		Engagements:   append([]EngagementBlock(nil), f.engagements...),
		Links:         f.links,
		Cursor:        f.cursor,
		Bounds:        f.bounds,
		Finalized:     f.finalized,
	}
	return l
}
