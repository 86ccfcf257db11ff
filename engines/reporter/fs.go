package reporter_engines

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
)

// FsReporter writes reports of a run into <directory>/<run id>/
type FsReporter struct {
	directory string
	options   *common.ReporterEngineOptions
}

func NewFileSystemReporter(directory string, options *common.ReporterEngineOptions) *FsReporter {
	return &FsReporter{
		directory: directory,
		options:   options,
	}
}

func (engine *FsReporter) getRunDirectory() (string, error) {
	directory := filepath.Join(engine.directory, engine.options.RunId)
	return directory, os.MkdirAll(directory, 0700)
}

func (engine *FsReporter) ReportPayouts(payouts []common.PayoutReport) error {
	if len(payouts) == 0 {
		return nil
	}
	directory, err := engine.getRunDirectory()
	if err != nil {
		return err
	}
	csv, err := gocsv.MarshalBytes(sortReports(payouts))
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(directory, constants.PAYOUT_REPORT_FILE_NAME), csv, 0644)
}

func (engine *FsReporter) ReportSummary(summary *common.PayoutSummaryReport) error {
	directory, err := engine.getRunDirectory()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(summary, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(directory, constants.REPORT_SUMMARY_FILE_NAME), data, 0644)
}

// GetExistingReports reads back payout reports of a run
func (engine *FsReporter) GetExistingReports(runId string) ([]common.PayoutReport, error) {
	data, err := os.ReadFile(filepath.Join(engine.directory, runId, constants.PAYOUT_REPORT_FILE_NAME))
	if err != nil {
		return []common.PayoutReport{}, err
	}
	reports := make([]common.PayoutReport, 0)
	err = gocsv.UnmarshalBytes(data, &reports)
	return reports, err
}
