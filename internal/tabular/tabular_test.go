package tabular

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestLoadBankTableAssignsStableIDs(t *testing.T) {
	content := ",,\n,,\n,,\n,,\n" +
		"Bokföringsdatum,Text,Belopp\n" +
		"2025-07-15,BG53782751 inbetalning,1000.00\n" +
		"2025-07-16,LB utbetalning,-500.50\n"

	table, err := LoadBankTable(writeTemp(t, "bank.csv", content))
	if err != nil {
		t.Fatalf("LoadBankTable: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if table.Rows[0].BankRowID != 0 || table.Rows[1].BankRowID != 1 {
		t.Errorf("row IDs not stable/insertion-ordered: %+v", table.Rows)
	}
	if table.Rows[1].Amount >= 0 {
		t.Errorf("expected negative amount, got %v", table.Rows[1].Amount)
	}
}

func TestLoadBankTableMissingColumn(t *testing.T) {
	content := ",,\n,,\n,,\n,,\nDatum,Text,Belopp\n2025-07-15,x,1\n"
	_, err := LoadBankTable(writeTemp(t, "bank.csv", content))
	if err == nil {
		t.Fatalf("expected IngestError for missing Bokföringsdatum column")
	}
}

func bokfHeaderLine() string {
	return "Datum,IB Året SEK,Period SEK,Text1,Verifikationsnummer,Kategori,Källa\n"
}

func TestLoadBokfTableDropsOpeningBalanceRows(t *testing.T) {
	var content string
	for i := 0; i < bokfHeaderRow; i++ {
		content += ",,,,,,\n"
	}
	content += bokfHeaderLine()
	content += "2025-07-10,1000.00,0,Opening balance,V000,Inbetalningar,Orig\n"
	content += "2025-07-10,,700.00,Text,V001,Inbetalningar,Orig\n"
	content += "2025-07-10, ,300.00,Text,V002,Inbetalningar,Orig\n"

	table, err := LoadBokfTable(writeTemp(t, "bokf.csv", content))
	if err != nil {
		t.Fatalf("LoadBokfTable: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2 (opening-balance row dropped, whitespace-only retained): %+v", len(table.Rows), table.Rows)
	}
	if table.Rows[0].BokfRowID != 0 {
		t.Errorf("expected first retained row to have BokfRowID 0")
	}
}

func TestParseDateLenient(t *testing.T) {
	if _, ok := parseDate("2025-07-15"); !ok {
		t.Errorf("expected ISO date to parse")
	}
	if _, ok := parseDate("15/01/2025"); !ok {
		t.Errorf("expected DD/MM/YYYY date to parse")
	}
	if _, ok := parseDate("not-a-date"); ok {
		t.Errorf("expected garbage to be unparseable")
	}
	if _, ok := parseDate(""); ok {
		t.Errorf("expected empty string to be unparseable")
	}
}
