package combined

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// TestScenarioS6N2Formula mirrors S6: the N2 control cell carries the exact
// SUBTOTAL formula, and the Kombinerad sheet comes first. The #,##0.00
// number format is not checked here.
func TestScenarioS6N2Formula(t *testing.T) {
	rows := []Row{
		{System: SystemBank, Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), DateOK: true, HasBank: true, BankAmount: 100, Amount: -100, NySource: NySourceManuell},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := Write(rows, path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	formula, err := f.GetCellFormula(sheetName, "N2")
	if err != nil {
		t.Fatalf("GetCellFormula: %v", err)
	}
	want := "ROUND(SUBTOTAL(9,N5:N99999),2)"
	if formula != want {
		t.Errorf("N2 formula = %q, want %q", formula, want)
	}

	sheetNames := f.GetSheetList()
	if len(sheetNames) == 0 || sheetNames[0] != sheetName {
		t.Errorf("sheet %q is not first: %v", sheetName, sheetNames)
	}
}

func TestWriteProducesHeaderRow(t *testing.T) {
	rows := []Row{
		{System: SystemBokf, Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), DateOK: true, HasLedger: true, LedgerAmount: 100, Amount: 100, NySource: NySourceMatch, GroupKey: "K1-B0-000001"},
	}
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := Write(rows, path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue(sheetName, "A4")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "System" {
		t.Errorf("A4 = %q, want %q", got, "System")
	}

	groupID, err := f.GetCellValue(sheetName, "M5")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if groupID != "K1-B0-000001" {
		t.Errorf("M5 = %q, want K1-B0-000001", groupID)
	}
}
