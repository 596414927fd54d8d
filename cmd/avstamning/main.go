// Command avstamning reconciles a bank statement against a general-ledger
// posting list and writes the combined, annotated workbook (§6).
package main

import (
	"flag"
	"fmt"
	"os"

	"avstamning.dev/reconcile/internal/combined"
	"avstamning.dev/reconcile/internal/diag"
	"avstamning.dev/reconcile/internal/engine"
	"avstamning.dev/reconcile/internal/obs"
	"avstamning.dev/reconcile/internal/tabular"
)

func main() {
	bankPath := flag.String("bank", "", "path to the bank statement file (required)")
	bokfPath := flag.String("bokf", "", "path to the general-ledger posting list (required)")
	outPath := flag.String("out", "kombinerad.xlsx", "path to write the combined workbook")
	inspect := flag.String("inspect", "", "optional ad-hoc diagnostic query, e.g. \"show K2\"")
	flag.Parse()

	if *bankPath == "" || *bokfPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	bank, err := tabular.LoadBankTable(*bankPath)
	if err != nil {
		obs.Log("ingest error: %v", err)
		os.Exit(1)
	}
	bokf, err := tabular.LoadBokfTable(*bokfPath)
	if err != nil {
		obs.Log("ingest error: %v", err)
		os.Exit(1)
	}

	result := engine.Run(bank, bokf)

	summary := result.Summary()
	obs.Log("reconciliation complete: %s", summary)
	for category, count := range summary.CategoryCounts {
		obs.Log("  %s: %d groups", category, count)
	}

	if *inspect != "" {
		fmt.Println(diag.Run(result, *inspect))
	}

	rows := combined.Project(result)
	if err := combined.Write(rows, *outPath); err != nil {
		obs.Log("output error: %v", err)
		os.Exit(1)
	}
	obs.Log("wrote %s", *outPath)
}
