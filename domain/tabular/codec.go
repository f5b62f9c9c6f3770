package tabular

import (
	"fmt"
	"strconv"
)

// RowIndexKey records a row's original position inside its encoded
// record. Document-store field maps do not guarantee key order, so the
// positional col_<h> keys restore column order and rowIndex is available
// to restore row order.
const RowIndexKey = "rowIndex"

func columnKey(h int) string {
	return "col_" + strconv.Itoa(h)
}

// EncodeRows flattens positional rows into document-store records. Row i
// produces a map with rowIndex=i plus col_<h> for every header position
// h, holding the cell's string form. Rows shorter than the header count
// pad with ""; cells beyond the header count are intentionally truncated,
// not an error. Output length always equals len(rows).
func EncodeRows(headers []string, rows [][]Cell) []map[string]any {
	rowsData := make([]map[string]any, 0, len(rows))
	for i, row := range rows {
		record := make(map[string]any, len(headers)+1)
		record[RowIndexKey] = i
		for h := range headers {
			if h < len(row) {
				record[columnKey(h)] = row[h].String()
			} else {
				record[columnKey(h)] = ""
			}
		}
		rowsData = append(rowsData, record)
	}
	return rowsData
}

// DecodeRows rebuilds positional rows from encoded records. Records are
// consumed in the order given: the decoder trusts storage iteration order
// and does not re-sort by rowIndex. Missing column keys decode as "".
// Every output row has length len(headers) exactly.
func DecodeRows(headers []string, rowsData []map[string]any) [][]string {
	rows := make([][]string, 0, len(rowsData))
	for _, record := range rowsData {
		row := make([]string, len(headers))
		for h := range headers {
			if v, ok := record[columnKey(h)]; ok && v != nil {
				row[h] = cellString(v)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// cellString tolerates non-string values in stored records even though
// the encoder only ever writes strings.
func cellString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
