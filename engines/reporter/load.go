package reporter_engines

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/configuration"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/ronin-capital/scholarpay/state"
)

// sortReports orders reports by account and nonce, lines of one account stay in sending order
func sortReports(reports []common.PayoutReport) []common.PayoutReport {
	sorted := slices.Clone(reports)
	slices.SortStableFunc(sorted, func(a, b common.PayoutReport) int {
		return cmp.Or(strings.Compare(a.Account, b.Account), cmp.Compare(a.Nonce, b.Nonce))
	})
	return sorted
}

func Load(ctx context.Context, config *configuration.RuntimeConfiguration, options *common.ReporterEngineOptions) (common.ReporterEngine, error) {
	switch config.Reporter.Kind {
	case enums.REPORTER_STDIO:
		return NewStdioReporter(), nil
	case enums.REPORTER_GCS:
		reporter, err := NewGCSReporter(ctx, config.Reporter.Bucket, config.Reporter.CredentialsFile, options)
		if err != nil {
			return nil, err
		}
		return reporter, nil
	case enums.REPORTER_FILE_SYSTEM, "":
		return NewFileSystemReporter(state.Global.GetReportsDirectory(options.DryRun), options), nil
	default:
		return nil, fmt.Errorf("unsupported reporter '%s'", config.Reporter.Kind)
	}
}
