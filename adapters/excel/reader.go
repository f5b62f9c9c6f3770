package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"sheetstore/domain/tabular"

	"github.com/xuri/excelize/v2"
)

// Parse reads an uploaded spreadsheet stream into a Dataset. The file
// name's extension routes .csv payloads through encoding/csv; everything
// else is treated as an OOXML workbook and read from its first sheet.
func Parse(fileName string, r io.Reader) (*tabular.Dataset, error) {
	var rows [][]string
	var err error
	if strings.ToLower(filepath.Ext(fileName)) == ".csv" {
		rows, err = readCSV(r)
	} else {
		rows, err = readWorkbook(r)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file %s contains no rows", fileName)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	dataRows := make([][]tabular.Cell, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make([]tabular.Cell, len(raw))
		for j, cell := range raw {
			row[j] = coerceCell(strings.TrimSpace(cell))
		}
		dataRows = append(dataRows, row)
	}

	return tabular.NewDataset(fileName, headers, dataRows), nil
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may be ragged
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rows, nil
}

// coerceCell maps a raw cell string onto the closed cell variant. The
// checks mirror how spreadsheet tools render values: booleans as
// TRUE/FALSE, numbers in plain decimal form.
func coerceCell(raw string) tabular.Cell {
	if raw == "" {
		return tabular.EmptyCell()
	}
	switch strings.ToLower(raw) {
	case "true":
		return tabular.BoolCell(true)
	case "false":
		return tabular.BoolCell(false)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return tabular.NumberCell(n)
	}
	return tabular.StringCell(raw)
}
