package main

import (
	"fmt"
	"strings"
)

type OutputFormat int

const (
	FormatPNG OutputFormat = iota
	FormatSVG
	FormatTXT
)

func (f OutputFormat) String() string {
	switch f {
	case FormatSVG:
		return "svg"
	case FormatTXT:
		return "txt"
	default:
		return "png"
	}
}

// Ext is the file extension written for the format.
func (f OutputFormat) Ext() string {
	return "." + f.String()
}

func parseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png", "":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	case "txt", "text":
		return FormatTXT, nil
	}
	return FormatPNG, fmt.Errorf("unknown output format %q (want png, svg or txt)", s)
}

const (
	defaultWidthIn  = 15.0
	defaultHeightIn = 10.0
	defaultDPI      = 100.0

	// Character grid used for txt export and the preview.
	textCols = 160
	minRows  = 10

	panStep = 4
)
