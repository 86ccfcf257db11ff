package mock

import (
	"sync"

	"github.com/ronin-capital/scholarpay/common"
)

// MemoryReporter keeps reports in memory.
type MemoryReporter struct {
	mtx     sync.Mutex
	Reports []common.PayoutReport
	Summary *common.PayoutSummaryReport
}

func (engine *MemoryReporter) ReportPayouts(reports []common.PayoutReport) error {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	engine.Reports = append(engine.Reports, reports...)
	return nil
}

func (engine *MemoryReporter) ReportSummary(summary *common.PayoutSummaryReport) error {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	engine.Summary = summary
	return nil
}
