package reporter_engines

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ronin-capital/scholarpay/common"
)

// StdioReporter prints reports as json lines
type StdioReporter struct {
	output io.Writer
}

func NewStdioReporter() *StdioReporter {
	return &StdioReporter{
		output: os.Stdout,
	}
}

type PayoutsReport struct {
	Payouts []common.PayoutReport `json:"payouts"`
}

func (engine *StdioReporter) ReportPayouts(payouts []common.PayoutReport) error {
	data, err := json.Marshal(PayoutsReport{Payouts: sortReports(payouts)})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(engine.output, string(data))
	return err
}

type SummaryReport struct {
	Summary *common.PayoutSummaryReport `json:"summary"`
}

func (engine *StdioReporter) ReportSummary(summary *common.PayoutSummaryReport) error {
	data, err := json.Marshal(SummaryReport{Summary: summary})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(engine.output, string(data))
	return err
}
