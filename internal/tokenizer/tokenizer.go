package tokenizer

import (
	"io"
	"strings"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Source is a peekable character stream.
//
// It is the read/peek subset of shape-core's tokenizer.Stream, so every
// shape-core stream is a Source. The assembler borrows a Source for one
// parse call and never closes it.
type Source interface {
	// NextChar consumes and returns the next character.
	NextChar() (rune, bool)
	// PeekChar returns the next character without consuming it.
	PeekChar() (rune, bool)
}

// Locator is implemented by sources that track their position.
// Rows and columns are 1-indexed and describe the next unread character.
type Locator interface {
	GetRow() int
	GetColumn() int
}

// NewSource returns an in-memory Source over text.
func NewSource(text string) Source {
	return tokenizer.NewStream(text)
}

// NewSourceFromReader reads r to the end and returns a Source over the UTF-8
// text it produced. The returned error is the first non-EOF read error.
func NewSourceFromReader(r io.Reader) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return tokenizer.NewStream(string(data)), nil
}

// RestOfLine consumes src up to, but not including, the next CR or LF and
// returns what it read.
func RestOfLine(src Source) string {
	var sb strings.Builder
	for {
		r, ok := src.PeekChar()
		if !ok || r == CR || r == LF {
			return sb.String()
		}
		src.NextChar()
		sb.WriteRune(r)
	}
}

// SkipSpaces consumes a run of spaces and returns how many were consumed.
func SkipSpaces(src Source) int {
	var n int
	for {
		r, ok := src.PeekChar()
		if !ok || r != Space {
			return n
		}
		src.NextChar()
		n++
	}
}
