package combined

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// OutputError is a fatal §7(d) error: the workbook could not be written.
type OutputError struct {
	Path   string
	Reason string
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("writing %s: %s", e.Path, e.Reason)
}

const sheetName = "Kombinerad"

// header row (row 4) column order, A through N.
var headers = []string{
	"System",      // A
	"Bank",        // B (control label column, mirrors B2)
	"BankBelopp",  // C
	"Bokföring",   // D (control label column, mirrors D2)
	"BokfBelopp",  // E
	"Text",        // F
	"Diff",        // G
	"Verifikationsnummer", // H
	"Kategori",    // I
	"Källa",       // J
	"Datum",       // K
	"MatchCategory", // L
	"MatchGroupID", // M
	"Belopp",      // N
}

// Write emits the combined workbook per §6's external-interface layout:
// sheet "Kombinerad" first, control cells on row 2, headers on row 4, data
// from row 5, column K date-formatted, column N number-formatted, frozen
// panes at A5, autofilter over the full data range.
func Write(rows []Row, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return &OutputError{Path: path, Reason: err.Error()}
	}

	lastRow := 4 + len(rows)
	lastCol := "N"

	if err := writeControlRow(f, lastRow); err != nil {
		return &OutputError{Path: path, Reason: err.Error()}
	}
	if err := writeHeaderRow(f); err != nil {
		return &OutputError{Path: path, Reason: err.Error()}
	}
	if err := writeDataRows(f, rows); err != nil {
		return &OutputError{Path: path, Reason: err.Error()}
	}
	if err := applyFormatsAndLayout(f, lastRow, lastCol); err != nil {
		return &OutputError{Path: path, Reason: err.Error()}
	}

	if err := f.SaveAs(path); err != nil {
		return &OutputError{Path: path, Reason: err.Error()}
	}
	return nil
}

func writeControlRow(f *excelize.File, lastRow int) error {
	if err := f.SetCellValue(sheetName, "B2", "Bank"); err != nil {
		return err
	}
	if err := f.SetCellFormula(sheetName, "C2", fmt.Sprintf("SUBTOTAL(9,C5:C%d)", lastRow)); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, "D2", "Bokföring"); err != nil {
		return err
	}
	if err := f.SetCellFormula(sheetName, "E2", fmt.Sprintf("SUBTOTAL(9,E5:E%d)", lastRow)); err != nil {
		return err
	}
	if err := f.SetCellFormula(sheetName, "G2", "E2-C2"); err != nil {
		return err
	}
	if err := f.SetCellFormula(sheetName, "N2", "ROUND(SUBTOTAL(9,N5:N99999),2)"); err != nil {
		return err
	}
	return nil
}

func writeHeaderRow(f *excelize.File) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 4)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}
	return nil
}

func writeDataRows(f *excelize.File, rows []Row) error {
	for i, r := range rows {
		rowNum := 5 + i
		values := map[string]interface{}{
			"A": r.System,
		}
		if r.HasBank {
			values["C"] = r.BankAmount
		}
		if r.HasLedger {
			values["E"] = r.LedgerAmount
		}
		values["F"] = r.Text
		values["H"] = r.VoucherNo
		values["I"] = r.Category
		values["J"] = nySourceOrPassthrough(r)
		if r.DateOK {
			values["K"] = r.Date
		}
		values["L"] = r.MatchCategory
		values["M"] = r.GroupKey
		values["N"] = r.Amount

		for col, v := range values {
			cell := fmt.Sprintf("%s%d", col, rowNum)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// nySourceOrPassthrough surfaces the provenance tag in column J alongside
// the ledger's raw Source passthrough, since both share the same semantic
// slot in the unified schema (§4.10).
func nySourceOrPassthrough(r Row) string {
	if r.NySource != "" {
		return r.NySource
	}
	return r.Source
}

func applyFormatsAndLayout(f *excelize.File, lastRow int, lastCol string) error {
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("yyyy-mm-dd")})
	if err != nil {
		return err
	}
	if err := f.SetColStyle(sheetName, "K", dateStyle); err != nil {
		return err
	}

	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("#,##0.00")})
	if err != nil {
		return err
	}
	if err := f.SetColStyle(sheetName, "N", amountStyle); err != nil {
		return err
	}
	if err := f.SetColStyle(sheetName, "C", amountStyle); err != nil {
		return err
	}
	if err := f.SetColStyle(sheetName, "E", amountStyle); err != nil {
		return err
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      4,
		TopLeftCell: "A5",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	autofilterRange := fmt.Sprintf("A4:%s%d", lastCol, lastRow)
	if err := f.AutoFilter(sheetName, autofilterRange, nil); err != nil {
		return err
	}

	return f.SetActiveSheet(0)
}

func strPtr(s string) *string { return &s }
