package tabular

import (
	"strings"

	"avstamning.dev/reconcile/internal/money"
	"avstamning.dev/reconcile/internal/obs"
)

// bankHeaderRow is the zero-based row index of the bank file's header:
// "header on the fifth row (skip 4)" per §6.
const bankHeaderRow = 4

// LoadBankTable reads a bank statement file (§6 ingest, C2) and assigns a
// stable BankRowID in file order starting at 0.
func LoadBankTable(path string) (*BankTable, error) {
	format := DetectFormat(path)
	g, err := readGrid(path, format)
	if err != nil {
		return nil, err
	}

	header := g.row(bankHeaderRow)
	if header == nil {
		return nil, &IngestError{File: path, Reason: "header row not found"}
	}

	cols := indexHeader(header)
	dateCol, ok := cols["bokföringsdatum"]
	if !ok {
		return nil, missingColumn(path, "Bokföringsdatum")
	}
	textCol, ok := cols["text"]
	if !ok {
		return nil, missingColumn(path, "Text")
	}
	amountCol, ok := cols["belopp"]
	if !ok {
		return nil, missingColumn(path, "Belopp")
	}

	table := &BankTable{}
	id := 0
	for i := bankHeaderRow + 1; i < len(g); i++ {
		row := g.row(i)
		if row == nil || allBlank(row) {
			continue
		}

		dateRaw := cell(row, dateCol)
		date, dateOK := parseDate(dateRaw)
		if dateRaw != "" && !dateOK {
			obs.Warn("bank row %d: unparseable date %q", id, dateRaw)
		}

		amountRaw := cell(row, amountCol)
		amount, amountOK := money.ParseAmount(amountRaw)
		if !amountOK {
			obs.Warn("bank row %d: unparseable amount %q", id, amountRaw)
		}

		passthrough := map[string]string{}
		for name, idx := range cols {
			if idx != dateCol && idx != textCol && idx != amountCol {
				passthrough[name] = cell(row, idx)
			}
		}

		table.Rows = append(table.Rows, BankRow{
			BankRowID:   id,
			BookingDate: date,
			DateOK:      dateOK,
			Text:        cell(row, textCol),
			Amount:      amount,
			Passthrough: passthrough,
		})
		id++
	}

	return table, nil
}

// indexHeader maps lower-cased, trimmed header names to column index.
func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" {
			continue
		}
		if _, exists := cols[name]; !exists {
			cols[name] = i
		}
	}
	return cols
}

func allBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

