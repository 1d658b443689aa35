package main

import (
	"github.com/charmbracelet/bubbles/viewport"

	"gmr/canvas"
)

// saveFunc exports the previewed figure and returns the written path.
type saveFunc func(format OutputFormat) (string, error)

type model struct {
	width          int
	height         int
	title          string
	cells          [][]canvas.Cell
	panX           int
	viewport       viewport.Model
	ready          bool
	help           bool
	save           saveFunc
	errorMessage   string
	successMessage string
}
