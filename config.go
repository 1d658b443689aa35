package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	OutputDir string
	Format    OutputFormat
	WidthIn   float64
	HeightIn  float64
	DPI       float64
	Preview   bool
	Clearance bool
}

func defaultConfig() *Config {
	return &Config{
		Format:   FormatPNG,
		WidthIn:  defaultWidthIn,
		HeightIn: defaultHeightIn,
		DPI:      defaultDPI,
	}
}

// loadConfig reads ~/.gmrrc. A missing file yields the defaults.
func loadConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig(), nil
	}

	file, err := os.Open(filepath.Join(homeDir, ".gmrrc"))
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	defer file.Close()
	return parseConfig(file, homeDir)
}

func parseConfig(r io.Reader, homeDir string) (*Config, error) {
	config := defaultConfig()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "output_dir", "outputdir", "savedirectory", "save_directory":
			if strings.HasPrefix(value, "~") {
				value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
			}
			if !filepath.IsAbs(value) {
				if absPath, err := filepath.Abs(value); err == nil {
					value = absPath
				}
			}
			config.OutputDir = value
		case "format":
			format, err := parseFormat(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			config.Format = format
		case "size":
			w, h, err := parseSize(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			config.WidthIn, config.HeightIn = w, h
		case "dpi":
			dpi, err := strconv.ParseFloat(value, 64)
			if err != nil || dpi <= 0 {
				return nil, fmt.Errorf("line %d: invalid dpi %q", lineNo, value)
			}
			config.DPI = dpi
		case "preview":
			config.Preview = strings.ToLower(value) == "true"
		case "clearance", "what_clearance":
			config.Clearance = strings.ToLower(value) == "true"
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return config, nil
}

// GetOutputPath places filename in the configured output directory, creating it if needed.
func (c *Config) GetOutputPath(filename string) (string, error) {
	if c.OutputDir == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(c.OutputDir, filename), nil
}
