package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/configuration"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/core/transaction"
	collector_engines "github.com/ronin-capital/scholarpay/engines/collector"
	reporter_engines "github.com/ronin-capital/scholarpay/engines/reporter"
	signer_engines "github.com/ronin-capital/scholarpay/engines/signer"
	transactor_engines "github.com/ronin-capital/scholarpay/engines/transactor"
	"github.com/ronin-capital/scholarpay/state"
	"github.com/ronin-capital/scholarpay/utils"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type ConfigurationAndEngines struct {
	Configuration *configuration.RuntimeConfiguration
	Secrets       *configuration.RuntimeSecrets
	Collector     common.CollectorEngine
	Signers       common.SignerProvider
	Executor      *transaction.Executor
}

func (cae *ConfigurationAndEngines) Unwrap() (*configuration.RuntimeConfiguration, common.CollectorEngine, common.SignerProvider, *transaction.Executor) {
	return cae.Configuration, cae.Collector, cae.Signers, cae.Executor
}

// newRunContext is canceled on the first interrupt, pending transactions are still awaited
func newRunContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	utils.CallbackOnInterrupt(ctx, func() {
		slog.Warn("interrupted, stopping after the transaction in flight")
		cancel()
	})
	return ctx, cancel
}

func newRunId() string {
	return uuid.NewString()
}

func loadExecutor(ctx context.Context, config *configuration.RuntimeConfiguration, collector common.CollectorEngine) (*transaction.Executor, error) {
	chainId, err := collector.GetChainId(ctx)
	if err != nil {
		return nil, err
	}
	if chainId.Cmp(config.Network.ChainId) != 0 {
		return nil, errors.Join(constants.ErrCollectorLoadFailed, fmt.Errorf("rpc reports chain id %s, configured %s", chainId, config.Network.ChainId))
	}

	transactor, err := transactor_engines.InitDefaultTransactor(ctx, config)
	if err != nil {
		return nil, err
	}
	waiter := transaction.NewConfirmationWaiter(collector, &transaction.ConfirmationWaiterOptions{
		PollInterval: config.Confirmations.PollInterval,
		Timeout:      config.Confirmations.Timeout,
		Clock:        clockwork.NewRealClock(),
	})
	return transaction.NewExecutor(
		transaction.NewBuilder(config.Network.ChainId, config.Network.GasLimit, config.Network.GasPrice),
		transaction.NewNonceSequencer(collector),
		transactor,
		waiter,
		config.Network.Explorer,
	), nil
}

// loadConfigurationAndEngines loads everything needed to send transactions, a dry run needs only the collector
func loadConfigurationAndEngines(ctx context.Context, dryRun bool) (*ConfigurationAndEngines, error) {
	config, err := configuration.Load()
	if err != nil {
		return nil, err
	}
	collector, err := collector_engines.InitDefaultRpcCollector(ctx, config)
	if err != nil {
		return nil, err
	}
	result := &ConfigurationAndEngines{
		Configuration: config,
		Collector:     collector,
	}
	if dryRun {
		return result, nil
	}

	secrets, err := configuration.LoadSecrets()
	if err != nil {
		return nil, err
	}
	executor, err := loadExecutor(ctx, config, collector)
	if err != nil {
		return nil, err
	}
	result.Secrets = secrets
	result.Signers = signer_engines.NewSecretsSignerProvider(ctx, secrets.Signers)
	result.Executor = executor
	return result, nil
}

func loadReporter(ctx context.Context, config *configuration.RuntimeConfiguration, runId string, dryRun bool, toStdout bool) common.ReporterEngine {
	if toStdout {
		return reporter_engines.NewStdioReporter()
	}
	return assertRunWithResultAndErrorMessage(func() (common.ReporterEngine, error) {
		return reporter_engines.Load(ctx, config, &common.ReporterEngineOptions{
			DryRun: dryRun,
			RunId:  runId,
		})
	}, common.EXIT_ENGINES_LOAD_FAILURE, "failed to load reporter")
}

// writeReports is best effort, a failed write never undoes sent transactions
func writeReports(reporter common.ReporterEngine, reports []common.PayoutReport, summary *common.PayoutSummary) bool {
	ok := true
	if err := reporter.ReportPayouts(reports); err != nil {
		slog.Error("failed to write payout reports", "error", err.Error())
		ok = false
	}
	if summary != nil && !summary.IsEmpty() {
		if err := reporter.ReportSummary(summary.Snapshot()); err != nil {
			slog.Error("failed to write summary", "error", err.Error())
			ok = false
		}
	}
	if closer, isCloser := reporter.(io.Closer); isCloser {
		if err := closer.Close(); err != nil {
			slog.Warn("failed to close reporter", "error", err.Error())
		}
	}
	return ok
}

func printSummary(summary *common.PayoutSummary) {
	snapshot := summary.Snapshot()
	if state.Global.GetWantsOutputJson() {
		slog.Info(constants.LOG_MESSAGE_PAYOUT_SUMMARY, constants.LOG_FIELD_RUN_ID, snapshot.RunId, constants.LOG_FIELD_SUMMARY, snapshot)
		return
	}
	utils.PrintSummary(snapshot)
}

func printReports(title string, reports []common.PayoutReport, decimals int32) {
	if state.Global.GetWantsOutputJson() {
		slog.Info(title, constants.LOG_FIELD_RESULTS, reports)
		return
	}
	utils.PrintReports(title, reports, decimals)
}

func loadFailureExitCode(err error) int {
	switch {
	case errors.Is(err, constants.ErrConfigurationLoadFailed), errors.Is(err, constants.ErrConfigurationValidationFailed):
		return common.EXIT_CONFIGURATION_LOAD_FAILURE
	case errors.Is(err, constants.ErrSecretsLoadFailed):
		return common.EXIT_SECRETS_LOAD_FAILURE
	default:
		return common.EXIT_ENGINES_LOAD_FAILURE
	}
}

func assertLoadConfigurationAndEngines(ctx context.Context, dryRun bool) *ConfigurationAndEngines {
	cae, err := loadConfigurationAndEngines(ctx, dryRun)
	if err != nil {
		slog.Error("failed to load configuration and engines", "error", err.Error())
		os.Exit(loadFailureExitCode(err))
	}
	return cae
}

// parseAccountsFilter returns nil when no account was requested
func parseAccountsFilter(values []string) ([]ethcmn.Address, error) {
	if len(values) == 0 {
		return nil, nil
	}
	accounts := make([]ethcmn.Address, 0, len(values))
	for _, value := range values {
		account, err := common.ParseAccount(value)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func filterByAccount[T any](items []T, accounts []ethcmn.Address, accountOf func(T) ethcmn.Address) []T {
	if accounts == nil {
		return items
	}
	return lo.Filter(items, func(item T, _ int) bool {
		return lo.Contains(accounts, accountOf(item))
	})
}

func assertAccountsFilter(cmd *cobra.Command) []ethcmn.Address {
	values, _ := cmd.Flags().GetStringSlice(ACCOUNT_FLAG)
	return assertRunWithResultAndErrorMessage(func() ([]ethcmn.Address, error) {
		return parseAccountsFilter(values)
	}, common.EXIT_INVALID_ARGS, "invalid account filter")
}
