package csv

import "strings"

// candidateSeparators are the separators DetectSeparator chooses from, in
// order of preference on ties.
var candidateSeparators = []rune{',', '\t', ';', '|'}

// DetectSeparator guesses the field separator of a CSV sample.
//
// Each candidate is counted outside quotes on every non-empty line of the
// sample. A candidate found the same number of times on every line scores
// ten times that count; otherwise it scores its count on the first line.
// The highest score wins. The result is ',' when nothing is found.
//
// The last line of a sample cut from a larger input is usually partial, so
// pass whole lines when possible.
func DetectSeparator(sample string) rune {
	lines := sampleLines(sample)
	if len(lines) == 0 {
		return ','
	}

	best, bestScore := ',', 0
	for _, sep := range candidateSeparators {
		if score := separatorScore(lines, sep); score > bestScore {
			best, bestScore = sep, score
		}
	}
	return best
}

func sampleLines(sample string) []string {
	var lines []string
	for _, line := range strings.Split(sample, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func separatorScore(lines []string, sep rune) int {
	first := countOutsideQuotes(lines[0], sep)
	if first == 0 {
		return 0
	}
	for _, line := range lines[1:] {
		if countOutsideQuotes(line, sep) != first {
			return first
		}
	}
	return first * 10
}

// countOutsideQuotes counts occurrences of sep, ignoring quoted sections.
func countOutsideQuotes(line string, sep rune) int {
	var (
		count  int
		quoted bool
	)
	for _, ch := range line {
		if ch == '"' {
			quoted = !quoted
		} else if ch == sep && !quoted {
			count++
		}
	}
	return count
}
