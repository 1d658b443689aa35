package main

import (
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
)

// readClipboardText returns the clipboard as plain text.
func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return text, nil
}

// parseSize reads a "WxH" size in inches.
func parseSize(s string) (float64, float64, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (want WxH in inches)", s)
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q (want WxH in inches)", s)
	}
	return w, h, nil
}

// cleanClipboardText normalizes pasted text for the YAML parser. Tabs become
// two spaces since YAML rejects tab indentation.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t':
			result.WriteString("  ")
		case r == '\u00a0' || r == '\u202f':
			result.WriteRune(' ')
		case r == '\n' || r >= 32 && r != 0x7f:
			result.WriteRune(r)
		}
	}
	return result.String()
}
