package csv

// Normalize reconciles rows of differing lengths according to policy.
//
//   - NormalizeNone returns rows unchanged.
//   - NormalizeMatchMaxRow and NormalizeDefault right-pad every row with ""
//     up to the longest row's length.
//   - NormalizeMatchFirstRow right-pads or truncates every row to the first
//     row's length.
//
// Zero or one row, or rows that already share the target length, are
// returned as is. Unknown policies behave like NormalizeNone. Normalize never
// modifies the cells of rows; padded rows are fresh slices.
func Normalize(rows [][]string, policy NormalizeType) [][]string {
	if len(rows) < 2 {
		return rows
	}

	var target int
	switch policy {
	case NormalizeMatchFirstRow:
		target = len(rows[0])
	case NormalizeDefault, NormalizeMatchMaxRow:
		for _, row := range rows {
			target = max(target, len(row))
		}
	default:
		return rows
	}

	if uniform(rows, target) {
		return rows
	}

	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = resize(row, target)
	}
	return out
}

func uniform(rows [][]string, width int) bool {
	for _, row := range rows {
		if len(row) != width {
			return false
		}
	}
	return true
}

// resize pads row with empty cells or drops its trailing cells.
func resize(row []string, width int) []string {
	switch {
	case len(row) == width:
		return row
	case len(row) > width:
		return row[:width:width]
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
