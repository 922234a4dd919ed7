// Command textomml converts TeX math notation to MathML. It converts a
// single expression, typesets whole HTML files, or serves a live preview.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	texmath "github.com/dpotapov/go-texmath"
	"github.com/dpotapov/go-texmath/mml"
	"github.com/dpotapov/go-texmath/texparse"
)

const usage = `usage: textomml [-dpsvh] [-o file] [-n indent] [-a addr] [expression|file]

Converts a TeX math expression to MathML. With -p the argument is an HTML
file whose $...$ and \(...\) spans are typeset in place; with -s a live
preview server is started. An argument of "-" reads standard input.

  -d        display style
  -p        page mode: typeset an HTML file
  -s        serve a live preview
  -a addr   listen address for -s (default :8080)
  -o file   write output to file instead of standard output
  -n num    indent output by num spaces
  -v        verbose logging
  -h        show this help
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		display bool
		page    bool
		serve   bool
		addr    = ":8080"
		outFile string
		indent  int
		verbose bool
	)

	opts, optind, err := getopt.Getopts(args, "dpsa:o:n:vh")
	if err != nil {
		return err
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'd':
			display = true
		case 'p':
			page = true
		case 's':
			serve = true
		case 'a':
			addr = opt.Value
		case 'o':
			outFile = opt.Value
		case 'n':
			indent, err = strconv.Atoi(opt.Value)
			if err != nil {
				return fmt.Errorf("bad indent %q", opt.Value)
			}
		case 'v':
			verbose = true
		case 'h':
			fmt.Print(usage)
			return nil
		}
	}
	rest := args[optind:]

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(verbose),
	}))

	if serve {
		h := &texmath.Handler{Display: display, Logger: logger}
		logger.Info("Starting preview server", "address", addr)
		return http.ListenAndServe(addr, h)
	}

	if len(rest) != 1 {
		fmt.Print(usage)
		return fmt.Errorf("expected one argument")
	}

	out := io.Writer(os.Stdout)
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if page {
		in, err := openInput(rest[0])
		if err != nil {
			return err
		}
		defer in.Close()
		popts := &texmath.PageOptions{
			OnError: func(src string, err error) {
				logger.Warn("Skipping math span", "source", src, "error", err)
				printParseError(src, err)
			},
		}
		return texmath.TypesetHTML(in, out, popts)
	}

	src, err := readExpression(rest[0])
	if err != nil {
		return err
	}

	node, err := parseExpr(src, display, nil)
	if err != nil {
		printParseError(src, err)
		return fmt.Errorf("conversion failed")
	}
	mathml, err := mml.RenderMath(node, display, &mml.RenderOptions{Indent: indent})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, mathml)
	return err
}

func parseExpr(src string, display bool, opts *texparse.Options) (*mml.Node, error) {
	if display {
		return texparse.ParseDisplay(src, opts)
	}
	return texparse.Parse(src, opts)
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// openInput opens a file argument, with "-" meaning standard input.
func openInput(arg string) (io.ReadCloser, error) {
	if arg == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(arg)
}

// readExpression reads the TeX source: a literal expression, or standard
// input for "-".
func readExpression(arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// printParseError prints a structured parse failure with a caret marking
// the position in the source.
func printParseError(src string, err error) {
	pe, ok := err.(*texparse.ParseError)
	if !ok {
		color.Red("error: %v", err)
		return
	}
	color.Red("%s: %s", pe.Key, pe.Error())
	if pe.Pos >= 0 && pe.Pos <= len(src) {
		line := strings.ReplaceAll(src, "\n", " ")
		fmt.Fprintln(os.Stderr, "  "+line)
		fmt.Fprintln(os.Stderr, "  "+strings.Repeat(" ", pe.Pos)+color.YellowString("^"))
	}
}
