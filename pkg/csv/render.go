// Package csv provides Grid rendering to CSV bytes.
//
// Rendered output parses back to the same grid: cells the parser would
// otherwise alter are quoted.
package csv

import (
	"bytes"
	"strings"
)

// Render converts a grid to CSV bytes with default writer options.
//
// Rendering handles:
//   - Quoting of cells containing the separator, quotes, or line breaks
//   - Quoting of cells with leading or trailing spaces, which the parser
//     would otherwise drop
//   - Escaping of quotes (doubled)
//   - A line feed after every row
//
// Example:
//
//	grid, _ := csv.ParseText("name,age\nAlice,30")
//	out := csv.Render(grid)
//	// out: name,age\nAlice,30\n
func Render(grid Grid) []byte {
	out, _ := RenderWithOptions(grid, DefaultWriterOptions())
	return out
}

// RenderWithOptions converts a grid to CSV bytes with custom options.
//
// Example:
//
//	opts := csv.DefaultWriterOptions()
//	opts.Separator = '\t'
//	opts.UseCRLF = true
//	out, err := csv.RenderWithOptions(grid, opts)
func RenderWithOptions(grid Grid, opts WriterOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	lineEnding := "\n"
	if opts.UseCRLF {
		lineEnding = "\r\n"
	}

	var buf bytes.Buffer
	for _, row := range grid {
		for i, cell := range row {
			if i > 0 {
				buf.WriteRune(opts.Separator)
			}
			writeField(&buf, cell, opts.Separator)
		}
		buf.WriteString(lineEnding)
	}
	return buf.Bytes(), nil
}

// writeField writes a field to the buffer with proper escaping.
func writeField(buf *bytes.Buffer, value string, sep rune) {
	if !needsQuoting(value, sep) {
		buf.WriteString(value)
		return
	}
	buf.WriteByte('"')
	buf.WriteString(strings.ReplaceAll(value, `"`, `""`))
	buf.WriteByte('"')
}

func needsQuoting(value string, sep rune) bool {
	if value == "" {
		return false
	}
	if strings.ContainsRune(value, sep) || strings.ContainsAny(value, "\"\r\n") {
		return true
	}
	return value[0] == ' ' || value[len(value)-1] == ' '
}
