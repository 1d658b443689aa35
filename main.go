// Command gmr draws the engagement model of a game: its intervention type,
// the engagement types it targets, and for each the game design features and
// design principles supporting them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"gmr/canvas"
	"gmr/figure"
)

type options struct {
	output    string
	format    string
	size      string
	dpi       float64
	clipboard bool
	preview   bool
	verbose   bool
	clearance bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("gmr: ")

	var opts options
	flag.StringVar(&opts.output, "o", "", "Output filename (default: the game name with the format's extension)")
	flag.StringVar(&opts.format, "format", "", "Output format: png, svg or txt")
	flag.StringVar(&opts.size, "size", "", "Figure size in inches, WxH")
	flag.Float64Var(&opts.dpi, "dpi", 0, "Resolution in dots per inch")
	flag.BoolVar(&opts.clipboard, "clipboard", false, "Read the game file from the clipboard")
	flag.BoolVar(&opts.preview, "preview", false, "Preview the figure in the terminal")
	flag.BoolVar(&opts.verbose, "v", false, "Trace the layout on stderr")
	flag.BoolVar(&opts.clearance, "clearance", false, "Start each feature below the previous one even when it has no design principles")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] game.yaml\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample game file:\n")
		fmt.Fprintf(os.Stderr, "  name: Demo\n  interventions: [Physical game]\n  engagements:\n    Affective:\n      Feature A: [Principle 1, Principle 2]\n")
	}
	flag.Parse()

	config, err := loadConfig()
	if err != nil {
		log.Fatalf("reading ~/.gmrrc: %v", err)
	}
	if err := applyFlags(config, opts); err != nil {
		log.Fatal(err)
	}

	game, err := readGame(opts.clipboard, flag.Args())
	if err != nil {
		if errors.Is(err, errNoInput) {
			flag.Usage()
			os.Exit(2)
		}
		log.Fatal(err)
	}

	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(os.Stderr, "gmr: ", 0)
	}
	figOpts := []figure.Option{
		figure.WithSize(config.WidthIn, config.HeightIn),
		figure.WithDPI(config.DPI),
		figure.WithLogger(logger),
	}
	if config.Clearance {
		figOpts = append(figOpts, figure.WithWhatClearance())
	}
	fig, err := figure.New(game.Name, figOpts...)
	if err != nil {
		log.Fatal(err)
	}
	if err := fig.Draw(game.Interventions, game.Engagements); err != nil {
		log.Fatal(err)
	}
	logger.Printf("%d boxes, %d links", fig.Scene().Count(canvas.KindRect), fig.Scene().Count(canvas.KindPath))

	save := func(format OutputFormat) (string, error) {
		path, err := outputPath(config, opts.output, game.Name, format)
		if err != nil {
			return "", err
		}
		if err := exportScene(fig.Scene(), format, path); err != nil {
			return "", err
		}
		return path, nil
	}

	if config.Preview && !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Print("stdout is not a terminal, exporting instead of previewing")
		config.Preview = false
	}
	if config.Preview {
		p := tea.NewProgram(
			newPreviewModel(game.Name, fig.Scene().Cells(gridSize(fig.Scene(), textCols)), save),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		)
		if _, err := p.Run(); err != nil {
			log.Fatal(err)
		}
		return
	}

	path, err := save(config.Format)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Engagement model generated: %s\n", path)
}

var errNoInput = errors.New("no game file given")

func readGame(fromClipboard bool, args []string) (*Game, error) {
	if fromClipboard {
		text, err := readClipboardText()
		if err != nil {
			return nil, err
		}
		game, err := parseGame([]byte(cleanClipboardText(text)))
		if err != nil {
			return nil, fmt.Errorf("clipboard: %w", err)
		}
		return game, nil
	}
	if len(args) != 1 {
		return nil, errNoInput
	}
	return loadGame(args[0])
}

// applyFlags overrides rc values with the flags given on the command line.
// Without -format, an -o extension picks the format.
func applyFlags(config *Config, opts options) error {
	if opts.format != "" {
		format, err := parseFormat(opts.format)
		if err != nil {
			return err
		}
		config.Format = format
	} else if ext := filepath.Ext(opts.output); isFormatExt(ext) {
		config.Format, _ = parseFormat(ext[1:])
	}
	if opts.size != "" {
		w, h, err := parseSize(opts.size)
		if err != nil {
			return err
		}
		config.WidthIn, config.HeightIn = w, h
	}
	if opts.dpi < 0 {
		return fmt.Errorf("invalid dpi %v", opts.dpi)
	}
	if opts.dpi > 0 {
		config.DPI = opts.dpi
	}
	if opts.preview {
		config.Preview = true
	}
	if opts.clearance {
		config.Clearance = true
	}
	return nil
}

// outputPath is -o when given, otherwise a name derived from the game in the
// configured output directory. Exports from the preview in another format
// swap the extension.
func outputPath(config *Config, output, name string, format OutputFormat) (string, error) {
	if output == "" {
		return config.GetOutputPath(defaultFilename(name, format))
	}
	if ext := filepath.Ext(output); ext != format.Ext() {
		if isFormatExt(ext) {
			output = strings.TrimSuffix(output, ext)
		}
		output += format.Ext()
	}
	return config.GetOutputPath(output)
}

func isFormatExt(ext string) bool {
	if len(ext) < 2 {
		return false
	}
	_, err := parseFormat(ext[1:])
	return err == nil
}
