package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Format is the detected input container, mirroring the teacher's
// DetectBankFromFilename idea of inferring shape from the filename.
type Format int

const (
	FormatDelimitedText Format = iota
	FormatXLSX
	FormatXLSLegacy
)

// DetectFormat infers the container format from a filename, the way the
// teacher's DetectBankFromFilename infers the bank from a filename.
func DetectFormat(filename string) Format {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm"):
		return FormatXLSX
	case strings.HasSuffix(lower, ".xls"):
		return FormatXLSLegacy
	default:
		return FormatDelimitedText
	}
}

// grid is the raw string cell matrix of a tabular file, rows first.
type grid [][]string

func (g grid) row(i int) []string {
	if i < 0 || i >= len(g) {
		return nil
	}
	return g[i]
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// readGrid loads the full raw cell grid for a file in the given format.
func readGrid(path string, format Format) (grid, error) {
	switch format {
	case FormatXLSX:
		return readXLSXGrid(path)
	case FormatXLSLegacy:
		return readXLSLegacyGrid(path)
	default:
		return readCSVGrid(path)
	}
}

func readCSVGrid(path string) (grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IngestError{File: path, Reason: err.Error()}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, &IngestError{File: path, Reason: fmt.Sprintf("reading delimited text: %v", err)}
	}
	return grid(records), nil
}

func readXLSXGrid(path string) (grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &IngestError{File: path, Reason: fmt.Sprintf("opening xlsx: %v", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &IngestError{File: path, Reason: "no sheets in workbook"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &IngestError{File: path, Reason: fmt.Sprintf("reading sheet %s: %v", sheets[0], err)}
	}
	return grid(rows), nil
}

// readXLSLegacyGrid reads a legacy binary .xls workbook into a raw grid,
// generalizing the teacher's ParseBrouStatement/ParseItauStatement
// safe-row/safe-col scanning (extrame/xls panics on malformed rows, so every
// access is recover()-guarded exactly as the teacher does it).
func readXLSLegacyGrid(path string) (grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IngestError{File: path, Reason: err.Error()}
	}
	defer f.Close()

	xlsFile, err := xls.OpenReader(f, "utf-8")
	if err != nil {
		return nil, &IngestError{File: path, Reason: fmt.Sprintf("opening xls: %v", err)}
	}
	if xlsFile.NumSheets() == 0 {
		return nil, &IngestError{File: path, Reason: "no sheets in workbook"}
	}
	sheet := xlsFile.GetSheet(0)
	if sheet == nil {
		return nil, &IngestError{File: path, Reason: "could not get first sheet"}
	}

	maxRow := int(sheet.MaxRow)
	out := make(grid, 0, maxRow+1)
	for i := 0; i <= maxRow; i++ {
		var row *xls.Row
		func() {
			defer func() { recover() }()
			row = sheet.Row(i)
		}()
		if row == nil {
			out = append(out, nil)
			continue
		}

		var lastCol int
		func() {
			defer func() { recover() }()
			lastCol = row.LastCol()
		}()

		cells := make([]string, lastCol)
		for c := 0; c < lastCol; c++ {
			func() {
				defer func() { recover() }()
				cells[c] = row.Col(c)
			}()
		}
		out = append(out, cells)
	}
	return out, nil
}
