// Package diag implements the supplemented inspection command (SPEC_FULL
// §12): a read-only, in-process query surface over a completed
// engine.Result, grounded on the teacher's LedgerExec/LedgerAccounts
// pattern of letting an operator poke at loaded data ad hoc. Unlike the
// teacher, the parsed tokens never drive an external process — §1's
// Non-goals rule out consulting external services, so the query only ever
// walks in-memory state.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-shellwords"

	"avstamning.dev/reconcile/internal/engine"
	"avstamning.dev/reconcile/internal/money"
)

// Run tokenizes query the way the teacher's LedgerExec tokenizes a ledger
// CLI invocation, then dispatches to an in-process command instead of
// exec.Command.
func Run(result *engine.Result, query string) string {
	tokens, err := shellwords.Parse(query)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	if len(tokens) == 0 {
		return "usage: show <category> | day <yyyy-mm-dd> | used"
	}

	switch strings.ToLower(tokens[0]) {
	case "show":
		if len(tokens) < 2 {
			return "usage: show <category>"
		}
		return showCategory(result, strings.ToUpper(tokens[1]))
	case "day":
		if len(tokens) < 2 {
			return "usage: day <yyyy-mm-dd>"
		}
		return showDay(result, tokens[1])
	case "used":
		return showUsedCounts(result)
	default:
		return fmt.Sprintf("unknown command %q", tokens[0])
	}
}

func showCategory(result *engine.Result, category string) string {
	var b strings.Builder
	count := 0
	for _, g := range result.Groups {
		if g.Category != category {
			continue
		}
		count++
		fmt.Fprintf(&b, "%s bank=%v bokf=%v\n", g.GroupKey, g.BankIDs, g.BokfIDs)
	}
	if count == 0 {
		return fmt.Sprintf("no groups for category %s", category)
	}
	return b.String()
}

func showDay(result *engine.Result, day string) string {
	var b strings.Builder
	for _, r := range result.Bank.Rows {
		if !r.DateOK || r.BookingDate.Format("2006-01-02") != day {
			continue
		}
		fmt.Fprintf(&b, "bank #%d %q %s group=%s\n", r.BankRowID, r.Text, money.Format(r.Amount, ""), r.GroupKey)
	}
	for _, r := range result.Bokf.Rows {
		if !r.DateOK || r.Date.Format("2006-01-02") != day {
			continue
		}
		fmt.Fprintf(&b, "bokf #%d %q %s group=%s\n", r.BokfRowID, r.Text1, money.Format(r.PeriodAmount, ""), r.GroupKey)
	}
	if b.Len() == 0 {
		return fmt.Sprintf("no rows on %s", day)
	}
	return b.String()
}

func showUsedCounts(result *engine.Result) string {
	summary := result.Summary()
	var b strings.Builder
	fmt.Fprintf(&b, "bank: %d total, %d unmatched\n", summary.TotalBankRows, summary.UnmatchedBank)
	fmt.Fprintf(&b, "bokf: %d total, %d unmatched\n", summary.TotalBokfRows, summary.UnmatchedBokf)

	categories := make([]string, 0, len(summary.CategoryCounts))
	for c := range summary.CategoryCounts {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Fprintf(&b, "%s: %d groups\n", c, summary.CategoryCounts[c])
	}
	return b.String()
}
