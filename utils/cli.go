package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/samber/lo"
)

func getColumnsByIndexes[T any](row []T, indexes []int) []T {
	return lo.Filter(row, func(_ T, i int) bool {
		return lo.Contains(indexes, i)
	})
}

func columnsAsInterfaces[T any](row []T) []any {
	return lo.Map(row, func(c T, _ int) any {
		return c
	})
}

func fillRow[T any](val T, headers []string) []any {
	return lo.Map(headers, func(_ string, _ int) any {
		return val
	})
}

func getNonEmptyIndexes[T comparable](headers []string, data [][]T) []int {
	var zero T
	return lo.Filter(lo.Range(len(headers)), func(c int, i int) bool {
		return lo.SomeBy(data, func(d []T) bool {
			return len(d) > i && d[i] != zero
		})
	})
}

func newTable(w io.Writer, title string) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignLeft}})
	tw.SetOutputMirror(w)
	tw.SetTitle(title)
	tw.Style().Title.Align = text.AlignCenter
	return tw
}

func planRows(result *common.AccountPayoutResult, decimals int32) [][]string {
	account := common.ShortenAddress(result.Account)
	note := ""
	if result.Err != nil {
		note = result.Err.Error()
	}
	if result.Plan == nil || result.Plan.IsEmpty() {
		return [][]string{{account, result.Name, string(result.State), "", "", "", note}}
	}
	return lo.Map(result.Plan.Lines, func(line common.PayoutLine, _ int) []string {
		return []string{
			account,
			result.Name,
			string(result.State),
			line.GetLabel(),
			common.ShortenAddress(line.Recipient),
			common.FormatTokenAmount(line.Amount, decimals),
			note,
		}
	})
}

func renderPayoutPlans(w io.Writer, results common.AccountPayoutResults, symbol string, decimals int32) {
	headers := []string{"Account", "Name", "State", "Payee", "Recipient", "Amount", "Note"}
	data := lo.FlatMap(results, func(r common.AccountPayoutResult, _ int) [][]string {
		return planRows(&r, decimals)
	})
	indexes := getNonEmptyIndexes(headers, data)
	if len(data) == 0 {
		indexes = lo.Range(len(headers))
	}

	tw := newTable(w, fmt.Sprintf("Payouts (%s)", symbol))
	tw.AppendHeader(columnsAsInterfaces(getColumnsByIndexes(headers, indexes)), table.RowConfig{AutoMerge: true})
	for _, row := range data {
		tw.AppendRow(columnsAsInterfaces(getColumnsByIndexes(row, indexes)), table.RowConfig{AutoMerge: false})
	}
	if len(data) == 0 {
		tw.AppendRow(fillRow("-", headers))
	}
	tw.Render()
}

// PrintPayoutPlans prints computed plans of all accounts, one row per payout line
func PrintPayoutPlans(results common.AccountPayoutResults, symbol string, decimals int32) {
	renderPayoutPlans(os.Stdout, results, symbol, decimals)
}

func renderReports(w io.Writer, title string, reports []common.PayoutReport, decimals int32) {
	if len(reports) == 0 {
		fmt.Fprintf(w, "%s: nothing to report\n", title)
		return
	}
	headers := reports[0].GetTableHeaders()
	data := lo.Map(reports, func(r common.PayoutReport, _ int) []string {
		return r.ToTableRowData(decimals)
	})
	indexes := getNonEmptyIndexes(headers, data)

	tw := newTable(w, title)
	tw.AppendHeader(columnsAsInterfaces(getColumnsByIndexes(headers, indexes)), table.RowConfig{AutoMerge: true})
	for _, row := range data {
		tw.AppendRow(columnsAsInterfaces(getColumnsByIndexes(row, indexes)))
	}
	succeeded := lo.CountBy(reports, func(r common.PayoutReport) bool { return r.IsSuccess })
	tw.AppendSeparator()
	tw.AppendRow(table.Row{fmt.Sprintf("%d of %d succeeded", succeeded, len(reports))})
	tw.Render()
}

// PrintReports prints outcomes of sent transactions
func PrintReports(title string, reports []common.PayoutReport, decimals int32) {
	renderReports(os.Stdout, title, reports, decimals)
}

func renderSummary(w io.Writer, summary *common.PayoutSummaryReport) {
	tw := newTable(w, fmt.Sprintf("Summary of run %s", summary.RunId))
	tw.AppendHeader(table.Row{"Role", "Addresses", "Total"})
	for _, rs := range summary.Roles {
		tw.AppendRow(table.Row{string(rs.Role), rs.Count, fmt.Sprintf("%s %s", rs.Total, summary.Token)})
	}
	tw.Render()
	fmt.Fprint(w, color.YellowString(common.SUMMARY_DISCLAIMER))
}

func PrintSummary(summary *common.PayoutSummaryReport) {
	if summary == nil || len(summary.Roles) == 0 {
		return
	}
	renderSummary(os.Stdout, summary)
}

// PrintAccountStates prints one row per account which did not reach completion
func PrintAccountStates(results common.AccountPayoutResults) {
	unfinished := lo.Filter(results, func(r common.AccountPayoutResult, _ int) bool {
		return r.State != enums.ACCOUNT_STATE_COMPLETED
	})
	for _, r := range unfinished {
		line := fmt.Sprintf("%s %s", common.ToRoninAddress(r.Account), r.State)
		if r.Err != nil {
			line = fmt.Sprintf("%s: %s", line, r.Err.Error())
		}
		switch r.State {
		case enums.ACCOUNT_STATE_REJECTED:
			color.Red("%s", line)
		case enums.ACCOUNT_STATE_SKIPPED, enums.ACCOUNT_STATE_CANCELLED:
			color.Yellow("%s", line)
		default:
			fmt.Println(line)
		}
	}
}
