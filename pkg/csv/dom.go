// Package csv provides the Grid type and its conversion to Shape's AST.
//
// A Grid is the result of every parse call: rows in line order, each row a
// slice of cells in column order. After MatchFirstRow or MatchMaxRow
// normalization every row has the same length.
//
//	grid, _ := csv.ParseText("name,age\nAlice,30")
//	cell, ok := grid.Cell(1, 0) // "Alice", true
//
// # AST Interop
//
// Grid.Node converts to the representation shape-core parsers produce:
// an *ast.ArrayDataNode of records, each an *ast.ArrayDataNode of
// *ast.LiteralNode string fields. FromNode converts back.
package csv

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Grid is an ordered sequence of rows of string cells.
type Grid [][]string

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Width returns the length of the longest row.
func (g Grid) Width() int {
	var w int
	for _, row := range g {
		w = max(w, len(row))
	}
	return w
}

// IsRectangular reports whether all rows have the same length.
// An empty grid is rectangular.
func (g Grid) IsRectangular() bool {
	if len(g) == 0 {
		return true
	}
	return uniform(g, len(g[0]))
}

// Row returns the row at index i.
func (g Grid) Row(i int) ([]string, bool) {
	if i < 0 || i >= len(g) {
		return nil, false
	}
	return g[i], true
}

// Cell returns the cell at the given row and column.
func (g Grid) Cell(row, col int) (string, bool) {
	r, ok := g.Row(row)
	if !ok || col < 0 || col >= len(r) {
		return "", false
	}
	return r[col], true
}

// Column returns the cells at index col of every row; rows too short to
// have one contribute "".
func (g Grid) Column(col int) []string {
	cells := make([]string, len(g))
	for i, row := range g {
		if col >= 0 && col < len(row) {
			cells[i] = row[col]
		}
	}
	return cells
}

// Node converts the grid to a Shape AST.
func (g Grid) Node() ast.SchemaNode {
	records := make([]ast.SchemaNode, len(g))
	for i, row := range g {
		fields := make([]ast.SchemaNode, len(row))
		for j, cell := range row {
			fields[j] = ast.NewLiteralNode(cell, ast.ZeroPosition())
		}
		records[i] = ast.NewArrayDataNode(fields, ast.ZeroPosition())
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition())
}

// FromNode converts a Shape AST of records back into a Grid.
// Literal values that are not strings are formatted with %v; nil becomes "".
func FromNode(node ast.SchemaNode) (Grid, error) {
	file, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotGrid, node)
	}

	elements := file.Elements()
	grid := make(Grid, len(elements))
	for i, elem := range elements {
		record, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("%w: record %d is %T", ErrNotGrid, i, elem)
		}
		fields := record.Elements()
		row := make([]string, len(fields))
		for j, field := range fields {
			lit, ok := field.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("%w: field %d of record %d is %T", ErrNotGrid, j, i, field)
			}
			row[j] = literalString(lit)
		}
		grid[i] = row
	}
	return grid, nil
}

func literalString(lit *ast.LiteralNode) string {
	switch v := lit.Value().(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
