package tabular

import "time"

// Dataset is the in-memory form of one uploaded spreadsheet. It exists
// only for the duration of a single upload request.
type Dataset struct {
	FileName string
	Headers  []string
	Rows     [][]Cell
	RowCount int
}

// NewDataset builds a Dataset with RowCount kept in sync with Rows.
func NewDataset(fileName string, headers []string, rows [][]Cell) *Dataset {
	return &Dataset{
		FileName: fileName,
		Headers:  headers,
		Rows:     rows,
		RowCount: len(rows),
	}
}

// StoredTable is the decoded read-side view of a persisted table. Rows
// hold the stringified cell values restored to positional form.
type StoredTable struct {
	ID         string
	FileName   string
	Headers    []string
	Rows       [][]string
	RowCount   int
	UploadedAt time.Time
	UpdatedAt  time.Time
}
