package tabular

import (
	"strings"

	"avstamning.dev/reconcile/internal/money"
	"avstamning.dev/reconcile/internal/obs"
)

// bokfHeaderRow is the zero-based row index of the ledger file's header:
// "header on the eighteenth row (skip 17)" per §6.
const bokfHeaderRow = 17

// LoadBokfTable reads a general-ledger posting list (§6 ingest, C2).
// Rows whose "IB Året SEK" (opening balance) column is non-empty are
// aggregates, not transactions, and are dropped at ingest per §3. The
// Open Question in §9 is resolved literally: empty and whitespace-only
// cells are retained; any other content drops the row.
func LoadBokfTable(path string) (*BokfTable, error) {
	format := DetectFormat(path)
	g, err := readGrid(path, format)
	if err != nil {
		return nil, err
	}

	header := g.row(bokfHeaderRow)
	if header == nil {
		return nil, &IngestError{File: path, Reason: "header row not found"}
	}

	cols := indexHeader(header)
	dateCol, ok := cols["datum"]
	if !ok {
		return nil, missingColumn(path, "Datum")
	}
	ibCol, ok := cols["ib året sek"]
	if !ok {
		return nil, missingColumn(path, "IB Året SEK")
	}
	amountCol, ok := cols["period sek"]
	if !ok {
		return nil, missingColumn(path, "Period SEK")
	}
	text1Col, ok := cols["text1"]
	if !ok {
		return nil, missingColumn(path, "Text1")
	}
	voucherCol, ok := cols["verifikationsnummer"]
	if !ok {
		return nil, missingColumn(path, "Verifikationsnummer")
	}
	categoryCol, ok := cols["kategori"]
	if !ok {
		return nil, missingColumn(path, "Kategori")
	}
	sourceCol, hasSource := cols["källa"]

	table := &BokfTable{}
	id := 0
	for i := bokfHeaderRow + 1; i < len(g); i++ {
		row := g.row(i)
		if row == nil || allBlank(row) {
			continue
		}

		// Open Question resolution in §9: an IB Året SEK cell with
		// non-whitespace content marks the row an opening-balance
		// aggregate; empty and whitespace-only cells are treated as
		// transactions and retained.
		ibRaw := rawCell(row, ibCol)
		if strings.TrimSpace(ibRaw) != "" {
			continue
		}

		dateRaw := cell(row, dateCol)
		date, dateOK := parseDate(dateRaw)
		if dateRaw != "" && !dateOK {
			obs.Warn("bokf row %d: unparseable date %q", id, dateRaw)
		}

		amountRaw := cell(row, amountCol)
		amount, amountOK := money.ParseAmount(amountRaw)
		if !amountOK {
			obs.Warn("bokf row %d: unparseable amount %q", id, amountRaw)
		}

		source := ""
		if hasSource {
			source = cell(row, sourceCol)
		}

		passthrough := map[string]string{}
		for name, idx := range cols {
			switch idx {
			case dateCol, amountCol, text1Col, voucherCol, categoryCol, ibCol:
				continue
			}
			passthrough[name] = cell(row, idx)
		}

		table.Rows = append(table.Rows, BokfRow{
			BokfRowID:    id,
			Date:         date,
			DateOK:       dateOK,
			PeriodAmount: amount,
			Category:     strings.TrimSpace(cell(row, categoryCol)),
			VoucherNo:    cell(row, voucherCol),
			Text1:        cell(row, text1Col),
			Source:       source,
			Passthrough:  passthrough,
		})
		id++
	}

	return table, nil
}

func rawCell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
