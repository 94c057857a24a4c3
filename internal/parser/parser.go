// Package parser implements the character-level state machine that assembles
// CSV cells and rows.
//
// The parser makes a single forward pass over a tokenizer.Source with one
// character of lookahead. Each character is classified (see
// tokenizer.Classify) and handled according to two flags: whether a quoted
// field is open, and whether a quoted field has just been closed so that only
// a separator, a line break or end of input may follow.
package parser

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/gridcsv/internal/tokenizer"
)

// ErrInvalidSeparator is returned when the separator cannot delimit fields.
var ErrInvalidSeparator = errors.New("invalid separator")

// Options configures the parser behavior.
type Options struct {
	// Separator is the field delimiter. Default: ','
	Separator rune
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{
		Separator: ',',
	}
}

// ValidSeparator reports whether sep can be used as a field delimiter.
// The quote, line breaks and space all carry their own meaning.
func ValidSeparator(sep rune) bool {
	switch sep {
	case tokenizer.Quote, tokenizer.CR, tokenizer.LF, tokenizer.Space, utf8.RuneError:
		return false
	}
	return sep > 0 && utf8.ValidRune(sep)
}

// Parser assembles rows of cells from a character source.
// A Parser is good for a single call to Parse.
type Parser struct {
	src tokenizer.Source
	sep rune

	quoted   bool // inside an open quote pair
	awaiting bool // a quoted field was just closed

	cell strings.Builder
	row  []string
	rows [][]string
}

// NewParser creates a parser over an in-memory string.
func NewParser(input string, opts Options) *Parser {
	return NewParserFromSource(tokenizer.NewSource(input), opts)
}

// NewParserFromSource creates a parser that borrows src. The parser never
// closes the resource backing src.
func NewParserFromSource(src tokenizer.Source, opts Options) *Parser {
	if opts.Separator == 0 {
		opts.Separator = DefaultOptions().Separator
	}
	return &Parser{
		src:  src,
		sep:  opts.Separator,
		rows: make([][]string, 0, 16),
	}
}

// Parse is a shorthand for NewParserFromSource(src, opts).Parse().
func Parse(src tokenizer.Source, opts Options) ([][]string, error) {
	return NewParserFromSource(src, opts).Parse()
}

// Parse consumes the whole source and returns the rows in input order.
//
// Parsing stops at the first violation and returns a *MalformedInputError;
// no partial result is returned.
func (p *Parser) Parse() ([][]string, error) {
	if !ValidSeparator(p.sep) {
		return nil, ErrInvalidSeparator
	}
	for {
		r, ok := p.src.NextChar()
		if !ok {
			break
		}
		closed, err := p.step(r)
		if err != nil {
			return nil, err
		}
		// The last row does not need a trailing line feed.
		if _, more := p.src.PeekChar(); !more && !closed {
			p.endRow()
		}
	}
	return p.rows, nil
}

// step handles one character. It reports whether the character closed a row.
func (p *Parser) step(r rune) (bool, error) {
	class := tokenizer.Classify(r, p.sep)
	if p.quoted {
		p.stepQuoted(r, class)
		return false, nil
	}

	switch class {
	case tokenizer.ClassQuote:
		if p.awaiting {
			return false, p.malformed(r)
		}
		p.quoted = true
	case tokenizer.ClassSeparator:
		p.endCell()
	case tokenizer.ClassCR:
		// line endings are driven by LF
	case tokenizer.ClassLF:
		p.endRow()
		return true, nil
	case tokenizer.ClassSpace:
		p.stepSpace()
	default:
		if p.awaiting {
			return false, p.malformed(r)
		}
		p.cell.WriteRune(r)
	}
	return false, nil
}

func (p *Parser) stepQuoted(r rune, class tokenizer.Class) {
	if class != tokenizer.ClassQuote {
		p.cell.WriteRune(r)
		return
	}
	if next, ok := p.src.PeekChar(); ok && next == tokenizer.Quote {
		p.src.NextChar()
		p.cell.WriteRune(tokenizer.Quote)
		return
	}
	p.quoted = false
	p.awaiting = true
}

// stepSpace handles a space outside quotes. Leading spaces are dropped
// outright. Otherwise the following run of spaces is consumed and kept only
// if something other than a field end comes after it.
func (p *Parser) stepSpace() {
	if p.cell.Len() == 0 {
		return
	}
	n := tokenizer.SkipSpaces(p.src)
	next, ok := p.src.PeekChar()
	if tokenizer.IsFieldEnd(next, ok, p.sep) {
		return
	}
	for i := 0; i <= n; i++ {
		p.cell.WriteByte(tokenizer.Space)
	}
}

func (p *Parser) endCell() {
	p.row = append(p.row, p.cell.String())
	p.cell.Reset()
	p.awaiting = false
}

func (p *Parser) endRow() {
	p.endCell()
	p.rows = append(p.rows, p.row)
	p.row = make([]string, 0, len(p.row))
}

// malformed builds the error for r, which was read where a separator was
// expected. The rest of the physical line is consumed into the message.
func (p *Parser) malformed(r rune) error {
	err := &MalformedInputError{
		Separator: p.sep,
	}
	if loc, ok := p.src.(tokenizer.Locator); ok {
		err.Line = loc.GetRow()
		err.Column = loc.GetColumn() - 1
	}
	err.Found = string(r) + tokenizer.RestOfLine(p.src)
	return err
}
