// Package tokenizer provides the character source and character classes
// consumed by the CSV row assembler.
package tokenizer

// Class is the lexical category of a single character.
//
// The row assembler works one character at a time; it is the assembler, not
// the tokenizer, that decides what a class means inside or outside quotes.
type Class int

const (
	// ClassOther is any character without structural meaning.
	ClassOther Class = iota
	// ClassQuote is the double quote (").
	ClassQuote
	// ClassSeparator is the configured field separator.
	ClassSeparator
	// ClassCR is a carriage return (\r).
	ClassCR
	// ClassLF is a line feed (\n).
	ClassLF
	// ClassSpace is the ASCII space character.
	ClassSpace
)

// Structural characters.
const (
	Quote = '"'
	CR    = '\r'
	LF    = '\n'
	Space = ' '
)

var classNames = map[Class]string{
	ClassOther:     "Other",
	ClassQuote:     "Quote",
	ClassSeparator: "Separator",
	ClassCR:        "CR",
	ClassLF:        "LF",
	ClassSpace:     "Space",
}

// String returns the name of the class.
func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return "Unknown"
}

// Classify returns the class of r given the field separator sep.
// The quote takes precedence over sep, but callers reject a quote
// separator before parsing anyway.
func Classify(r, sep rune) Class {
	switch r {
	case Quote:
		return ClassQuote
	case sep:
		return ClassSeparator
	case CR:
		return ClassCR
	case LF:
		return ClassLF
	case Space:
		return ClassSpace
	default:
		return ClassOther
	}
}

// IsFieldEnd reports whether r, seen after a run of spaces, makes those
// spaces trailing whitespace. ok is false at end of input.
func IsFieldEnd(r rune, ok bool, sep rune) bool {
	if !ok {
		return true
	}
	switch Classify(r, sep) {
	case ClassSeparator, ClassCR, ClassLF:
		return true
	}
	return false
}
