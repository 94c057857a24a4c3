package parser

import "fmt"

// MalformedInputError reports content found right after a closed quoted
// field where only a separator, a line break or end of input may appear.
type MalformedInputError struct {
	// Separator is the separator that was expected.
	Separator rune
	// Found is the offending character followed by the rest of its
	// physical line.
	Found string
	// Line is the line of the offending character (1-indexed), or 0 when
	// the source does not track positions.
	Line int
	// Column is the column of the offending character (1-indexed), or 0
	// when the source does not track positions.
	Column int
}

// Error returns a message that echoes the rest of the offending line.
func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("Expecting '%c' but found '%s'", e.Separator, e.Found)
}
