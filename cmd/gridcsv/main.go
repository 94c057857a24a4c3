package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/midbel/cli"
	"github.com/shapestone/gridcsv/pkg/csv"
)

var errFail = errors.New("fail")

var (
	summary = "gridcsv"
	help    = "parse CSV files into rectangular grids of cells"
)

func main() {
	var (
		set  = cli.NewFlagSet("gridcsv")
		root = prepare()
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"print"}, &printCmd)
	root.Register([]string{"check"}, &checkCmd)
	root.Register([]string{"normalize"}, &normalizeCmd)
	return root
}

var printCmd = cli.Command{
	Name:    "print",
	Alias:   []string{"view", "show", "dump"},
	Summary: "print the cells of a CSV file as a table",
	Usage:   "print [-s sep|auto] [-n none|first|max] [-e encoding] [-w width] [-l] [<file>]",
	Handler: &PrintGridCommand{},
}

var checkCmd = cli.Command{
	Name:    "check",
	Alias:   []string{"validate"},
	Summary: "report whether CSV files parse",
	Usage:   "check [-s sep|auto] [-e encoding] <file, [file,...]>",
	Handler: &CheckFilesCommand{},
}

var normalizeCmd = cli.Command{
	Name:    "normalize",
	Summary: "rewrite a CSV file with uniform row lengths",
	Usage:   "normalize [-s sep|auto] [-n none|first|max] [-e encoding] [-o file] [-crlf] [<file>]",
	Handler: &NormalizeFileCommand{},
}

type stringFlagger interface {
	StringVar(*string, string, string, string)
}

// parserFlags are the flags shared by every command.
type parserFlags struct {
	Sep       string
	Normalize string
	Encoding  string
}

func (p *parserFlags) register(set stringFlagger) {
	set.StringVar(&p.Sep, "s", ",", "fields separator, or auto to guess it")
	set.StringVar(&p.Normalize, "n", "max", "row normalization: none, first or max")
	set.StringVar(&p.Encoding, "e", csv.DefaultEncoding, "input character encoding")
}

func (p parserFlags) detect() bool {
	return p.Sep == "auto"
}

func (p parserFlags) options() (csv.ParserOptions, error) {
	var (
		opts = csv.DefaultParserOptions()
		err  error
	)
	if !p.detect() {
		if opts.Separator, err = parseSeparator(p.Sep); err != nil {
			return opts, err
		}
	}
	if opts.Normalization, err = csv.ParseNormalizeType(p.Normalize); err != nil {
		return opts, err
	}
	opts.Encoding = p.Encoding
	return opts, opts.Validate()
}

func parseSeparator(str string) (rune, error) {
	if str == `\t` || str == "tab" {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(str)
	if size == 0 || size != len(str) {
		return 0, fmt.Errorf("separator must be a single character: %q", str)
	}
	return r, nil
}

const sampleSize = 64 << 10

// parseInput parses the named file, or stdin when file is empty or "-".
// It returns the options used, with the separator resolved.
func parseInput(file string, flags parserFlags) (csv.Grid, csv.ParserOptions, error) {
	opts, err := flags.options()
	if err != nil {
		return nil, opts, err
	}
	if file == "" || file == "-" {
		in := bufio.NewReaderSize(os.Stdin, sampleSize)
		if flags.detect() {
			sample, err := in.Peek(sampleSize)
			if opts.Separator, err = detectSeparator(sample, err == nil, opts.Encoding); err != nil {
				return nil, opts, err
			}
		}
		grid, err := csv.ParseReader(in, opts)
		return grid, opts, err
	}
	if flags.detect() {
		sample, err := readSample(file)
		if err != nil {
			return nil, opts, err
		}
		if opts.Separator, err = detectSeparator(sample, len(sample) == sampleSize, opts.Encoding); err != nil {
			return nil, opts, err
		}
	}
	grid, err := csv.ParseFile(file, opts)
	return grid, opts, err
}

// detectSeparator guesses the separator of a sample in the given encoding.
// The last line of a truncated sample is left out.
func detectSeparator(sample []byte, truncated bool, encoding string) (rune, error) {
	text, err := csv.DecodeSample(sample, encoding)
	if err != nil {
		return 0, err
	}
	if truncated {
		if i := strings.LastIndexByte(text, '\n'); i > 0 {
			text = text[:i]
		}
	}
	return csv.DetectSeparator(text), nil
}

// readSample returns up to sampleSize bytes from the start of file.
func readSample(file string) ([]byte, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, sampleSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

type PrintGridCommand struct {
	parserFlags
	Width  int
	Column string
	Lino   bool
}

func (c PrintGridCommand) Run(args []string) error {
	set := cli.NewFlagSet("print")
	c.register(set)
	set.IntVar(&c.Width, "w", 12, "column width")
	set.StringVar(&c.Column, "c", "|", "column separator")
	set.BoolVar(&c.Lino, "l", false, "print line number")
	if err := set.Parse(args); err != nil {
		return err
	}
	grid, _, err := parseInput(set.Arg(0), c.parserFlags)
	if err != nil {
		return err
	}
	return c.printGrid(os.Stdout, grid)
}

func (c PrintGridCommand) printGrid(w io.Writer, grid csv.Grid) error {
	if c.Width <= 0 {
		c.Width = 16
	}
	for lino, row := range grid {
		if c.Lino {
			fmt.Fprintf(w, "%-5d ", lino+1)
			fmt.Fprint(w, c.Column)
		}
		for i, v := range row {
			if i > 0 {
				fmt.Fprint(w, c.Column)
			}
			fmt.Fprintf(w, " %-*s ", c.Width, v)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

type CheckFilesCommand struct {
	parserFlags
}

func (c CheckFilesCommand) Run(args []string) error {
	set := cli.NewFlagSet("check")
	c.register(set)
	if err := set.Parse(args); err != nil {
		return err
	}
	if _, err := c.options(); err != nil {
		return err
	}
	var failed bool
	for _, a := range set.Args() {
		grid, _, err := parseInput(a, c.parserFlags)
		if err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %s\n", a, describe(err))
			continue
		}
		report(os.Stdout, a, grid)
	}
	if failed {
		return errFail
	}
	return nil
}

func report(w io.Writer, file string, grid csv.Grid) {
	fmt.Fprintf(w, "%s: %s, %d rows, %d columns\n", file, csv.Format(), grid.Rows(), grid.Width())
}

// describe adds the position of a malformed field to its message.
func describe(err error) string {
	var merr *csv.MalformedInputError
	if errors.As(err, &merr) && merr.Line > 0 {
		return fmt.Sprintf("line %d, column %d: %s", merr.Line, merr.Column, merr.Error())
	}
	return err.Error()
}

type NormalizeFileCommand struct {
	parserFlags
	OutFile string
	CRLF    bool
}

func (c NormalizeFileCommand) Run(args []string) error {
	set := cli.NewFlagSet("normalize")
	c.register(set)
	set.StringVar(&c.OutFile, "o", "", "write result to output file")
	set.BoolVar(&c.CRLF, "crlf", false, "terminate rows with \\r\\n")
	if err := set.Parse(args); err != nil {
		return err
	}
	grid, opts, err := parseInput(set.Arg(0), c.parserFlags)
	if err != nil {
		return err
	}
	out, err := csv.RenderWithOptions(grid, csv.WriterOptions{
		Separator: opts.Separator,
		UseCRLF:   c.CRLF,
	})
	if err != nil {
		return err
	}
	if c.OutFile == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(c.OutFile, out, 0644)
}
