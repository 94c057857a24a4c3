// Package csv parses CSV text into a rectangular grid of string cells.
//
// The parser reads one character at a time with one character of lookahead.
// Quoted fields may contain separators, line breaks and doubled quotes.
// Spaces around unquoted and quoted fields are dropped; spaces between
// words are kept. CR characters outside quotes are ignored, so LF, CRLF and
// bare CR input all parse the same way.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each call creates its own parser with no shared mutable state.
//
//	// Safe: Concurrent parsing
//	go func() { csv.ParseText(input1) }()
//	go func() { csv.ParseFile("data.csv") }()
//
// # Parsing APIs
//
//   - ParseText(string) parses CSV held in memory
//   - ParseReader(io.Reader) decodes and parses bytes from any reader
//   - ParseReaderContext(ctx, io.Reader) is ParseReader with cancellation
//   - ParseFile(path) opens, parses and closes a file
//   - ParseSource(CharSource) parses from any peekable character source
//
// Each function takes an optional ParserOptions. Without it,
// DefaultParserOptions is used: ',' separator, rows padded to the longest
// row, UTF-8 input.
//
// # Example usage with ParseText:
//
//	grid, err := csv.ParseText("name,age\nAlice,30\nBob")
//	if err != nil {
//	    // handle error
//	}
//	// grid is [["name" "age"] ["Alice" "30"] ["Bob" ""]]
//
// # Errors
//
// A field that continues after its closing quote fails the whole parse
// with a *MalformedInputError. Failures of the underlying reader or file
// are returned as *SourceIOError.
package csv

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/shapestone/gridcsv/internal/parser"
	"github.com/shapestone/gridcsv/internal/tokenizer"
)

// CharSource is a peekable character stream. Streams from
// github.com/shapestone/shape-core/pkg/tokenizer satisfy it.
//
// NextChar consumes the next character; PeekChar returns it without
// consuming. Both report false at end of input.
type CharSource interface {
	NextChar() (rune, bool)
	PeekChar() (rune, bool)
}

// ParseText parses CSV from a string.
//
// Example:
//
//	grid, err := csv.ParseText("a, b, c\na, b", csv.ParserOptions{
//	    Separator:     ',',
//	    Normalization: csv.NormalizeNone,
//	})
//	// grid is [["a" "b" "c"] ["a" "b"]]
func ParseText(text string, opts ...ParserOptions) (Grid, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return parse(tokenizer.NewSource(text), o)
}

// ParseSource parses CSV from src. The caller keeps ownership of src and of
// whatever backs it. The Encoding option is ignored.
func ParseSource(src CharSource, opts ...ParserOptions) (Grid, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return parse(src, o)
}

// ParseReader parses CSV from an io.Reader, decoding its bytes with the
// Encoding option. The reader is not closed.
//
// Example parsing Latin-1 data:
//
//	opts := csv.DefaultParserOptions()
//	opts.Encoding = "iso-8859-1"
//	grid, err := csv.ParseReader(resp.Body, opts)
func ParseReader(reader io.Reader, opts ...ParserOptions) (Grid, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return parseReader(reader, o, "")
}

// ParseReaderContext is like ParseReader but stops reading once ctx is done.
// The context error is returned wrapped in a *SourceIOError.
func ParseReaderContext(ctx context.Context, reader io.Reader, opts ...ParserOptions) (Grid, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return parseReader(contextReader{ctx: ctx, r: reader}, o, "")
}

// ParseFile opens the file at path, parses it and closes it, including when
// parsing fails.
//
// Example:
//
//	grid, err := csv.ParseFile("data.csv")
//	if errors.Is(err, fs.ErrNotExist) {
//	    // no such file
//	}
func ParseFile(path string, opts ...ParserOptions) (grid Grid, err error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceIOError{Op: "open", Path: path, Err: unwrapPathError(err)}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			grid, err = nil, &SourceIOError{Op: "close", Path: path, Err: unwrapPathError(cerr)}
		}
	}()

	return parseReader(f, o, path)
}

func parseReader(reader io.Reader, o ParserOptions, path string) (Grid, error) {
	enc, err := lookupEncoding(o.Encoding)
	if err != nil {
		return nil, err
	}
	src, err := tokenizer.NewSourceFromReader(decodeReader(reader, enc))
	if err != nil {
		return nil, &SourceIOError{Op: "read", Path: path, Err: unwrapPathError(err)}
	}
	return parse(src, o)
}

// parse runs the row assembler and then the normalizer.
func parse(src tokenizer.Source, o ParserOptions) (Grid, error) {
	rows, err := parser.Parse(src, o.parserOptions())
	if err != nil {
		return nil, err
	}
	return Grid(Normalize(rows, o.Normalization)), nil
}

// unwrapPathError drops the *fs.PathError layer so the path is not repeated
// in SourceIOError messages.
func unwrapPathError(err error) error {
	if pe, ok := err.(*fs.PathError); ok {
		return pe.Err
	}
	return err
}

// Format returns the format identifier for this parser.
func Format() string {
	return "CSV"
}
