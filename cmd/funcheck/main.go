package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/tools/txtar"

	"github.com/funvibe/funcheck/internal/config"
	"github.com/funvibe/funcheck/internal/ice"
	"github.com/funvibe/funcheck/internal/loader"
	"github.com/funvibe/funcheck/internal/pipeline"
	"github.com/funvibe/funcheck/internal/unitsrc"
)

const (
	exitDiagnostics = 1
	exitInternal    = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) (code int) {
	fs := flag.NewFlagSet("funcheck", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultConfigName, "path to funcheck.yaml")
	noCache := fs.Bool("no-cache", false, "disable the export cache")
	colorFlag := fs.String("color", "", "diagnostic coloring: auto, always or never")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: funcheck [flags] file.unit ... | archive.txtar")
		return exitInternal
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "funcheck:", err)
		return exitInternal
	}
	if *colorFlag != "" {
		cfg.Color = *colorFlag
	}

	files, err := readInputs(fs.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "funcheck:", err)
		return exitInternal
	}

	ctx := pipeline.NewContext(cfg, files)
	if cfg.Cache.Enabled && !*noCache {
		cache, err := loader.OpenCache(cfg.Cache.Path)
		if err != nil {
			// The cache is an optimization; check uncached.
			fmt.Fprintln(os.Stderr, "funcheck:", err)
		} else {
			ctx.Cache = cache
			defer cache.Close()
		}
	}

	// An internal error aborts the whole pass; everything user-facing goes
	// through diagnostics instead.
	defer func() {
		if r := recover(); r != nil {
			iceErr, ok := r.(ice.Error)
			if !ok {
				panic(r)
			}
			fmt.Fprintln(os.Stderr, "funcheck:", iceErr.Error())
			code = exitInternal
		}
	}()

	ctx = pipeline.Default().Run(ctx)
	printDiagnostics(ctx)
	if ctx.Diags.HasErrors() {
		return exitDiagnostics
	}
	return 0
}

// readInputs accepts unit description files and txtar archives holding one
// unit description per archive entry.
func readInputs(paths []string) ([]unitsrc.SourceFile, error) {
	var files []unitsrc.SourceFile
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if strings.HasSuffix(path, config.ArchiveFileExt) {
			for _, f := range txtar.Parse(data).Files {
				files = append(files, unitsrc.SourceFile{Name: f.Name, Data: f.Data})
			}
			continue
		}
		files = append(files, unitsrc.SourceFile{Name: path, Data: data})
	}
	return files, nil
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiDim    = "\x1b[2m"
)

func printDiagnostics(ctx *pipeline.Context) {
	color := useColor(ctx.Config.Color)
	errs := ctx.Diags.Errors()

	shown := errs
	if len(shown) > ctx.Config.MaxErrors {
		shown = shown[:ctx.Config.MaxErrors]
	}
	for _, err := range shown {
		severity := err.Severity.String()
		if color {
			tint := ansiRed
			if severity == "warning" {
				tint = ansiYellow
			}
			severity = tint + severity + ansiReset
		}
		fmt.Printf("%s: %s[%s]: %s\n", err.Loc, severity, err.Code, err.Message)
		for _, note := range err.Notes {
			line := fmt.Sprintf("  note: %s (%s)", note.Message, note.Loc)
			if color {
				line = ansiDim + line + ansiReset
			}
			fmt.Println(line)
		}
	}
	if suppressed := len(errs) - len(shown); suppressed > 0 {
		fmt.Printf("... and %d more diagnostic(s)\n", suppressed)
	}
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}
