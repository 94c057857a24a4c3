// Package csv provides configurable options for CSV parsing and writing.
package csv

import (
	"fmt"
	"strings"

	"github.com/shapestone/gridcsv/internal/parser"
)

// NormalizeType selects how rows of differing lengths are reconciled.
type NormalizeType int

const (
	// NormalizeDefault is the zero value. It selects NormalizeMatchMaxRow.
	NormalizeDefault NormalizeType = iota
	// NormalizeNone leaves rows as parsed.
	NormalizeNone
	// NormalizeMatchFirstRow pads or truncates every row to the length of
	// the first row.
	NormalizeMatchFirstRow
	// NormalizeMatchMaxRow pads every row to the length of the longest row.
	NormalizeMatchMaxRow
)

var normalizeNames = []string{"default", "none", "first", "max"}

// String returns the name of the policy.
func (n NormalizeType) String() string {
	if n >= 0 && int(n) < len(normalizeNames) {
		return normalizeNames[n]
	}
	return fmt.Sprintf("NormalizeType(%d)", n)
}

// ParseNormalizeType returns the policy named s. Besides the names returned
// by String it accepts "match-first-row" and "match-max-row". The empty
// string is NormalizeDefault.
func ParseNormalizeType(s string) (NormalizeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default", "":
		return NormalizeDefault, nil
	case "none":
		return NormalizeNone, nil
	case "first", "match-first-row":
		return NormalizeMatchFirstRow, nil
	case "max", "match-max-row":
		return NormalizeMatchMaxRow, nil
	}
	return NormalizeDefault, &OptionsError{Field: "Normalization", Message: fmt.Sprintf("unknown policy %q", s)}
}

// DefaultEncoding is the character encoding assumed when none is set.
const DefaultEncoding = "utf-8"

// ParserOptions configures CSV parsing behavior.
type ParserOptions struct {
	// Separator is the field delimiter. It must be a valid rune and not a
	// quote, \r, \n, space, or the Unicode replacement character (0xFFFD).
	// Default: ','
	Separator rune

	// Normalization is applied to the parsed rows. Set NormalizeNone to keep
	// rows as parsed.
	// Default: NormalizeMatchMaxRow (the zero value NormalizeDefault)
	Normalization NormalizeType

	// Encoding names the character encoding of byte input (ParseReader,
	// ParseFile). Any name known to the WHATWG encoding standard works:
	// "utf-8", "utf-16le", "windows-1252", "iso-8859-1", "shift_jis", ...
	// It has no effect on ParseText and ParseSource.
	// Default: "utf-8"
	Encoding string
}

// DefaultParserOptions returns the default parser configuration.
func DefaultParserOptions() ParserOptions {
	return ParserOptions{
		Separator:     ',',
		Normalization: NormalizeMatchMaxRow,
		Encoding:      DefaultEncoding,
	}
}

// Validate checks if the options are valid.
// Zero fields are valid and mean the default.
func (o ParserOptions) Validate() error {
	if o.Separator != 0 && !parser.ValidSeparator(o.Separator) {
		return &OptionsError{Field: "Separator", Message: fmt.Sprintf("%q cannot delimit fields", o.Separator), Err: ErrInvalidSeparator}
	}
	if o.Normalization < NormalizeDefault || o.Normalization > NormalizeMatchMaxRow {
		return &OptionsError{Field: "Normalization", Message: o.Normalization.String()}
	}
	if _, err := lookupEncoding(o.Encoding); err != nil {
		return err
	}
	return nil
}

// resolveOptions picks the caller's options, or the defaults when none are
// given, and fills zero fields with their default values.
func resolveOptions(opts []ParserOptions) (ParserOptions, error) {
	o := DefaultParserOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	if err := o.Validate(); err != nil {
		return o, err
	}
	if o.Separator == 0 {
		o.Separator = DefaultParserOptions().Separator
	}
	if o.Normalization == NormalizeDefault {
		o.Normalization = NormalizeMatchMaxRow
	}
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	return o, nil
}

func (o ParserOptions) parserOptions() parser.Options {
	return parser.Options{
		Separator: o.Separator,
	}
}

// WriterOptions configures CSV rendering behavior.
type WriterOptions struct {
	// Separator is the field delimiter.
	// Default: ','
	Separator rune

	// UseCRLF controls whether to use \r\n (true) or \n (false) as the line terminator.
	// Default: false (use \n)
	UseCRLF bool
}

// DefaultWriterOptions returns the default writer configuration.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		Separator: ',',
		UseCRLF:   false,
	}
}

// Validate checks if the writer options are valid.
func (o WriterOptions) Validate() error {
	if !parser.ValidSeparator(o.Separator) {
		return &OptionsError{Field: "Separator", Message: fmt.Sprintf("%q cannot delimit fields", o.Separator), Err: ErrInvalidSeparator}
	}
	return nil
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
	Err     error
}

func (e *OptionsError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}

// Unwrap returns the underlying error, if any.
func (e *OptionsError) Unwrap() error {
	return e.Err
}
