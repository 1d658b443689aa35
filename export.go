package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gmr/canvas"
)

// exportScene writes the scene to filename in the given format.
func exportScene(scene *canvas.Scene, format OutputFormat, filename string) error {
	switch format {
	case FormatSVG:
		return exportSVG(scene, filename)
	case FormatTXT:
		return exportVisualTXT(scene, filename, textCols)
	default:
		return scene.SavePNG(filename)
	}
}

func exportSVG(scene *canvas.Scene, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := scene.WriteSVG(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// exportVisualTXT renders the scene on a character grid cols wide, keeping the
// image's aspect ratio with cells twice as tall as they are wide.
func exportVisualTXT(scene *canvas.Scene, filename string, cols int) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, line := range canvas.Lines(scene.Cells(gridSize(scene, cols))) {
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}

// gridSize returns cols and the row count matching the scene's aspect ratio.
func gridSize(scene *canvas.Scene, cols int) (int, int) {
	w, h := scene.ImageSize()
	if w <= 0 || h <= 0 {
		return cols, minRows
	}
	rows := int(float64(cols) * float64(h) / float64(w) / 2)
	if rows < minRows {
		rows = minRows
	}
	return cols, rows
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// defaultFilename derives an output name from the game name.
func defaultFilename(name string, format OutputFormat) string {
	base := strings.Trim(unsafeName.ReplaceAllString(strings.TrimSpace(name), "_"), "_")
	if base == "" {
		base = "game"
	}
	return base + format.Ext()
}
