package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		sep   rune
		want  [][]string
	}{
		{
			name:  "empty input",
			input: "",
			want:  [][]string{},
		},
		{
			name:  "header and row with trailing newline",
			input: "Year,Make\n1997,Ford\n",
			want:  [][]string{{"Year", "Make"}, {"1997", "Ford"}},
		},
		{
			name:  "no trailing newline",
			input: "a,b,c",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "escaped quotes and empty cell",
			input: `1999,Chevy,"Venture ""Extended Edition""",,4900.00`,
			want:  [][]string{{"1999", "Chevy", `Venture "Extended Edition"`, "", "4900.00"}},
		},
		{
			name:  "quoted empty cell",
			input: `a,"",b`,
			want:  [][]string{{"a", "", "b"}},
		},
		{
			name:  "consecutive escaped quotes",
			input: `""""""`,
			want:  [][]string{{`""`}},
		},
		{
			name:  "separator inside quotes",
			input: `1997,Ford,E350,"ac, abs, moon",3000.00`,
			want:  [][]string{{"1997", "Ford", "E350", "ac, abs, moon", "3000.00"}},
		},
		{
			name:  "newline inside quotes",
			input: "\"MUST SELL!\nair, moon roof\",4799.00",
			want:  [][]string{{"MUST SELL!\nair, moon roof", "4799.00"}},
		},
		{
			name:  "carriage return inside quotes",
			input: "\"a\r\nb\"",
			want:  [][]string{{"a\r\nb"}},
		},
		{
			name:  "crlf line endings",
			input: "a,b\r\nc,d\r\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "bare carriage return is ignored",
			input: "a\rb,c",
			want:  [][]string{{"ab", "c"}},
		},
		{
			name:  "single newline",
			input: "\n",
			want:  [][]string{{""}},
		},
		{
			name:  "trailing separator",
			input: "a,\n",
			want:  [][]string{{"a", ""}},
		},
		{
			name:  "only separators",
			input: ",,",
			want:  [][]string{{"", "", ""}},
		},
		{
			name:  "ragged rows are kept",
			input: "a, b, c\na, b, c, d, e\na, b",
			want:  [][]string{{"a", "b", "c"}, {"a", "b", "c", "d", "e"}, {"a", "b"}},
		},
		{
			name:  "space wrapping around unquoted cells",
			input: "  a,b,c\n d , e , f\n  g  ,  h  ,  i  ",
			want:  [][]string{{"a", "b", "c"}, {"d", "e", "f"}, {"g", "h", "i"}},
		},
		{
			name:  "space wrapping around quoted cells",
			input: "\"a\",\"b\",\"c\"\n \"d\" , \"e\" , \"f\"\n  \"g\"  ,  \"h\"  ,  \"i\"  ",
			want:  [][]string{{"a", "b", "c"}, {"d", "e", "f"}, {"g", "h", "i"}},
		},
		{
			name:  "internal spaces are kept",
			input: "New York, Los   Angeles ,Storage & Organization",
			want:  [][]string{{"New York", "Los   Angeles", "Storage & Organization"}},
		},
		{
			name:  "spaces before crlf are trailing",
			input: "a  \r\nb",
			want:  [][]string{{"a"}, {"b"}},
		},
		{
			name:  "spaces inside quotes are kept",
			input: `"  padded  ",x`,
			want:  [][]string{{"  padded  ", "x"}},
		},
		{
			name:  "only spaces",
			input: "   ,   ",
			want:  [][]string{{"", ""}},
		},
		{
			name:  "quote inside unquoted cell opens a quoted segment",
			input: `ab"c,d"`,
			want:  [][]string{{"abc,d"}},
		},
		{
			name:  "unterminated quote runs to end of input",
			input: `"abc`,
			want:  [][]string{{"abc"}},
		},
		{
			name:  "unterminated quote ending in newline",
			input: "\"abc\n",
			want:  [][]string{{"abc\n"}},
		},
		{
			name:  "tab separator",
			input: "a\tb, c\n1\t2",
			sep:   '\t',
			want:  [][]string{{"a", "b, c"}, {"1", "2"}},
		},
		{
			name:  "semicolon separator with quoted comma",
			input: `x;"1,5";y`,
			sep:   ';',
			want:  [][]string{{"x", "1,5", "y"}},
		},
		{
			name:  "multibyte content",
			input: "héllo,wörld\n日本,語",
			want:  [][]string{{"héllo", "wörld"}, {"日本", "語"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser(tt.input, Options{Separator: tt.sep}).Parse()
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_Wikipedia(t *testing.T) {
	input := `Year,Make,Model,Description,Price
1997,Ford,E350,"ac, abs, moon",3000.00
1999,Chevy,"Venture ""Extended Edition""","",4900.00
1999,Chevy,"Venture ""Extended Edition, Very Large""",,5000.00
1996,Jeep,Grand Cherokee,"MUST SELL!
air, moon roof, loaded",4799.00
`
	want := [][]string{
		{"Year", "Make", "Model", "Description", "Price"},
		{"1997", "Ford", "E350", "ac, abs, moon", "3000.00"},
		{"1999", "Chevy", `Venture "Extended Edition"`, "", "4900.00"},
		{"1999", "Chevy", `Venture "Extended Edition, Very Large"`, "", "5000.00"},
		{"1996", "Jeep", "Grand Cherokee", "MUST SELL!\nair, moon roof, loaded", "4799.00"},
	}

	got, err := NewParser(input, DefaultOptions()).Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %q, want %q", got, want)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "quote abutting closed quoted field",
			input:   `"a" "b", c`,
			wantMsg: `Expecting ',' but found '"b", c'`,
		},
		{
			name:    "quote directly after closed quoted field",
			input:   `"a""b`,
			wantMsg: ``, // "" is an escape, so this one parses
		},
		{
			name:    "content after closed quoted field",
			input:   "a, b, c\n\"a\" b, c, d, e\na, b",
			wantMsg: `Expecting ',' but found 'b, c, d, e'`,
		},
		{
			name:    "second quoted segment on later line",
			input:   "a, b, c\n\"a\" \"b\", c, d, e\r\na, b",
			wantMsg: `Expecting ',' but found '"b", c, d, e'`,
		},
		{
			name:    "letter right after closing quote",
			input:   `"abc"x`,
			wantMsg: `Expecting ',' but found 'x'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(tt.input, DefaultOptions()).Parse()
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("Parse() unexpected error = %v", err)
				}
				return
			}
			var merr *MalformedInputError
			if !errors.As(err, &merr) {
				t.Fatalf("Parse() error = %v, want *MalformedInputError", err)
			}
			if got := merr.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestParse_MalformedCustomSeparator(t *testing.T) {
	_, err := NewParser(`"a"b;c`, Options{Separator: ';'}).Parse()
	var merr *MalformedInputError
	if !errors.As(err, &merr) {
		t.Fatalf("Parse() error = %v, want *MalformedInputError", err)
	}
	if want := `Expecting ';' but found 'b;c'`; merr.Error() != want {
		t.Errorf("Error() = %q, want %q", merr.Error(), want)
	}
}

func TestParse_MalformedPosition(t *testing.T) {
	src := newLocatingSource("a,b\n\"x\"y,z\nlast")
	_, err := Parse(src, DefaultOptions())

	var merr *MalformedInputError
	if !errors.As(err, &merr) {
		t.Fatalf("Parse() error = %v, want *MalformedInputError", err)
	}
	if merr.Line != 2 || merr.Column != 4 {
		t.Errorf("position = %d:%d, want 2:4", merr.Line, merr.Column)
	}
	if merr.Found != "y,z" {
		t.Errorf("Found = %q, want %q", merr.Found, "y,z")
	}
	// The rest of the line is consumed, the next line is not.
	if r, _ := src.PeekChar(); r != '\n' {
		t.Errorf("next char = %q, want newline", r)
	}
}

func TestParse_InvalidSeparator(t *testing.T) {
	for _, sep := range []rune{'"', '\n', '\r', ' ', -1, 0xFFFD} {
		_, err := NewParser("a", Options{Separator: sep}).Parse()
		if !errors.Is(err, ErrInvalidSeparator) {
			t.Errorf("separator %q: error = %v, want ErrInvalidSeparator", sep, err)
		}
	}
}

func TestParse_ZeroSeparatorUsesDefault(t *testing.T) {
	got, err := NewParser("a,b", Options{}).Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if want := [][]string{{"a", "b"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %q, want %q", got, want)
	}
}

func TestParse_RowsDoNotAlias(t *testing.T) {
	got, err := NewParser("a,b\nc,d\n", DefaultOptions()).Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got[0][0] = "changed"
	if got[1][0] != "c" {
		t.Errorf("rows share storage: %q", got)
	}
}

func TestParse_RoundTripUnquoted(t *testing.T) {
	grids := [][][]string{
		{{"a"}},
		{{"1", "2", "3"}, {"4", "5", "6"}},
		{{"New York", "x"}, {"", "y"}},
		{{"α", "β"}, {"γ", ""}},
	}

	for _, grid := range grids {
		lines := make([]string, len(grid))
		for i, row := range grid {
			lines[i] = strings.Join(row, ",")
		}
		input := strings.Join(lines, "\n")

		got, err := NewParser(input, DefaultOptions()).Parse()
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", input, err)
		}
		if !reflect.DeepEqual(got, grid) {
			t.Errorf("Parse(%q) = %q, want %q", input, got, grid)
		}
	}
}

func TestParse_QuoteEscapingRoundTrip(t *testing.T) {
	cells := []string{
		`"`,
		`say "hi"`,
		`""`,
		`a "b", c`,
		"multi\nline \"quoted\"",
	}

	for _, cell := range cells {
		input := `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
		got, err := NewParser(input, DefaultOptions()).Parse()
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", input, err)
		}
		if len(got) != 1 || len(got[0]) != 1 || got[0][0] != cell {
			t.Errorf("Parse(%q) = %q, want [[%q]]", input, got, cell)
		}
	}
}

// locatingSource is a Source that tracks rows and columns like the
// shape-core streams do.
type locatingSource struct {
	data   []rune
	pos    int
	row    int
	column int
}

func newLocatingSource(s string) *locatingSource {
	return &locatingSource{data: []rune(s), row: 1, column: 1}
}

func (s *locatingSource) PeekChar() (rune, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	return s.data[s.pos], true
}

func (s *locatingSource) NextChar() (rune, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	r := s.data[s.pos]
	s.pos++
	s.column++
	if r == '\n' {
		s.row++
		s.column = 1
	}
	return r, true
}

func (s *locatingSource) GetRow() int {
	return s.row
}

func (s *locatingSource) GetColumn() int {
	return s.column
}
