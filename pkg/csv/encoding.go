package csv

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// lookupEncoding resolves an encoding name. The empty name is UTF-8.
func lookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, &OptionsError{Field: "Encoding", Message: fmt.Sprintf("%q", name), Err: ErrUnknownEncoding}
	}
	return enc, nil
}

// decodeReader returns a reader producing UTF-8 from r encoded with enc.
// A byte order mark at the start of r is removed and, for UTF-16, takes
// precedence over enc.
func decodeReader(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
}

// DecodeSample decodes the leading bytes of some input with the named
// encoding, as ParseReader and ParseFile would. Use it to inspect input
// before parsing, for example with DetectSeparator. A sample cut inside a
// character ends with U+FFFD.
func DecodeSample(sample []byte, encoding string) (string, error) {
	enc, err := lookupEncoding(encoding)
	if err != nil {
		return "", err
	}
	text, err := io.ReadAll(decodeReader(bytes.NewReader(sample), enc))
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// contextReader fails every read once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
