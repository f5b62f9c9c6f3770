package tabular

import "strconv"

// CellKind enumerates the value types a spreadsheet cell can carry.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
	CellBool
)

// Cell is a closed variant over the dynamically typed spreadsheet cell
// values. Conversion to string happens only at encode time, which keeps
// the round-trip contract testable independent of storage format.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Bool bool
}

func EmptyCell() Cell           { return Cell{Kind: CellEmpty} }
func StringCell(s string) Cell  { return Cell{Kind: CellString, Str: s} }
func NumberCell(n float64) Cell { return Cell{Kind: CellNumber, Num: n} }
func BoolCell(v bool) Cell      { return Cell{Kind: CellBool, Bool: v} }

// String returns the canonical string form the codec persists. Numbers
// use the shortest plain decimal representation, booleans render as
// true/false, empty cells as "". The conversion is lossy for non-string
// cells and deliberately irreversible.
func (c Cell) String() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellBool:
		return strconv.FormatBool(c.Bool)
	default:
		return ""
	}
}
