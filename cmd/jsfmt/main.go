// Command jsfmt formats JS-like source files using the github.com/arjunmenon/jsfmt pretty-printer
// core.
//
// Grounded on teleivo-dot/cmd/dotfmt/main.go's flag-parsing shape (a flag.FlagSet over os.Args,
// cpuprofile/memprofile hooks); -print-width additionally falls back to the terminal width via
// golang.org/x/term when the flag isn't given and stdout is a terminal, and multiple file
// arguments are formatted concurrently through a bounded golang.org/x/sync/errgroup pool, one
// ast.FormatSource session per file (parallelism across documents, never within one).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/arjunmenon/jsfmt/ast"
	"github.com/arjunmenon/jsfmt/format"
	"github.com/arjunmenon/jsfmt/options"
)

func main() {
	if err := run(os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes a syntax error in the input (2, matching gofmt's own convention) from
// every other failure (1), using errors.As against the *format.FormatError FormatSource returns
// so the distinction survives the path-context wrapping formatFiles adds on top.
func exitCode(err error) int {
	var fe *format.FormatError
	if errors.As(err, &fe) && fe.Kind == format.SyntaxError {
		return 2
	}
	return 1
}

func run(args []string, r io.Reader, w io.Writer, wErr io.Writer) error {
	flags := flag.NewFlagSet(args[0], flag.ExitOnError)
	flags.SetOutput(wErr)
	printWidth := flags.Uint("print-width", 0, "target line width; 0 auto-detects the terminal width, falling back to 80")
	indentWidth := flags.Uint("indent-width", uint(options.DefaultIndentWidth), "number of spaces one indent level represents when -use-tabs=false")
	useTabs := flags.Bool("use-tabs", true, "indent with tabs instead of spaces")
	write := flags.Bool("write", false, "write formatted output back to each file instead of stdout")
	concurrency := flags.Int("j", runtime.GOMAXPROCS(0), "maximum number of files to format concurrently")
	cpuProfile := flags.String("cpuprofile", "", "write cpu profile to `file`")
	memProfile := flags.String("memprofile", "", "write memory profile to `file`")

	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	opts := options.NewFormatOptions()
	if *printWidth > 0 {
		opts.LineWidth = options.LineWidth(*printWidth)
	} else if w, ok := terminalWidth(w); ok {
		opts.LineWidth = options.LineWidth(w)
	}
	opts.IndentWidth = options.IndentWidth(*indentWidth)
	if *useTabs {
		opts.IndentStyle = options.IndentTab
	} else {
		opts.IndentStyle = options.IndentSpace
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	paths := flags.Args()
	if len(paths) == 0 {
		if err := formatStream(r, w, opts); err != nil {
			return err
		}
	} else if err := formatFiles(paths, *concurrency, *write, w, opts); err != nil {
		return err
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			return fmt.Errorf("could not create memory profile: %v", err)
		}
		defer f.Close()
		runtime.GC() // materialize all statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("could not write memory profile: %v", err)
		}
	}
	return nil
}

// terminalWidth reports the terminal column width of w, if w is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	if !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

func formatStream(r io.Reader, w io.Writer, opts options.FormatOptions) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	out, err := ast.FormatSource(string(src), opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// formatFiles formats every path, at most concurrency at a time. Each file runs its own
// ast.FormatSource session; sessions share no state, so this is safe to run in parallel.
func formatFiles(paths []string, concurrency int, write bool, w io.Writer, opts options.FormatOptions) error {
	results := make([]string, len(paths))

	g := new(errgroup.Group)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			out, err := ast.FormatSource(string(src), opts)
			if err != nil {
				return fmt.Errorf("formatting %s: %w", path, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range paths {
		if write {
			if err := os.WriteFile(path, []byte(results[i]), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			continue
		}
		if _, err := io.WriteString(w, results[i]); err != nil {
			return err
		}
	}
	return nil
}
