package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"os"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/configuration"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/core/transfer"
	"github.com/spf13/cobra"
)

func assertTransferer(cae *ConfigurationAndEngines, confirmed bool, dryRun bool, runId string) *transfer.Transferer {
	config := cae.Configuration
	return assertRunWithResultAndErrorMessage(func() (*transfer.Transferer, error) {
		return transfer.NewTransferer(&transfer.TransfererOptions{
			Collector:   cae.Collector,
			Signers:     cae.Signers,
			Executor:    cae.Executor,
			Consent:     getConsentProvider(confirmed, dryRun),
			NftContract: config.NftContract,
			Token:       config.Token.Contract,
			Symbol:      config.Token.Symbol,
			Decimals:    config.Token.Decimals,
			DryRun:      dryRun,
			Logger:      slog.Default().With(constants.LOG_FIELD_RUN_ID, runId),
		})
	}, common.EXIT_ENGINES_LOAD_FAILURE, "failed to initialize transfers")
}

func finishTransfers(ctx context.Context, cmd *cobra.Command, cae *ConfigurationAndEngines, runId string, results common.TransferResults, dryRun bool) {
	reports := results.ToReports(runId)
	printReports(fmt.Sprintf("Transfers of run %s", runId), reports, cae.Configuration.Token.Decimals)
	if dryRun {
		return
	}

	toStdout, _ := cmd.Flags().GetBool(REPORT_TO_STDOUT)
	reporter := loadReporter(ctx, cae.Configuration, runId, dryRun, toStdout)
	reportsWritten := writeReports(reporter, reports, nil)
	if failed := results.CountFailed(); failed > 0 {
		slog.Error("failed transfers detected", "failed", failed, "total", len(results))
		os.Exit(common.EXIT_PARTIAL_FAILURE)
	}
	if !reportsWritten {
		os.Exit(common.EXIT_REPORT_WRITE_FAILURE)
	}
}

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "transfers nfts between accounts",
	Long:  "transfers nfts listed in the transfers file, one confirmation per source account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := newRunContext()
		defer cancel()

		dryRun, _ := cmd.Flags().GetBool(DRY_RUN_FLAG)
		confirmed, _ := cmd.Flags().GetBool(CONFIRM_FLAG)
		fromFile, _ := cmd.Flags().GetString(FROM_FILE_FLAG)

		cae := assertLoadConfigurationAndEngines(ctx, dryRun)
		transfers := assertRunWithResultAndErrorMessage(func() ([]common.NftTransfer, error) {
			return configuration.LoadTransfers(fromFile)
		}, common.EXIT_CONFIGURATION_LOAD_FAILURE, "failed to load transfers")
		if len(transfers) == 0 {
			slog.Info("nothing to transfer", constants.LOG_FIELD_PHASE, "result")
			return
		}

		if !dryRun {
			unlock := assertRunWithResultAndErrorMessage(lockRunWithTimeout, common.EXIT_RUN_LOCK_FAILURE, "failed to acquire lock")
			defer unlock()
		}

		runId := newRunId()
		results := assertTransferer(cae, confirmed, dryRun, runId).TransferNfts(ctx, transfers)
		finishTransfers(ctx, cmd, cae, runId, results, dryRun)
	},
}

var transferTokenCmd = &cobra.Command{
	Use:   "transfer-token <account> <destination> <amount>",
	Short: "transfers tokens from an account",
	Long:  "transfers amount of the configured token from a managed account to the destination",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := newRunContext()
		defer cancel()

		dryRun, _ := cmd.Flags().GetBool(DRY_RUN_FLAG)
		confirmed, _ := cmd.Flags().GetBool(CONFIRM_FLAG)

		account := assertRunWithResultAndErrorMessage(func() (ethcmn.Address, error) {
			return common.ParseAccount(args[0])
		}, common.EXIT_INVALID_ARGS, "invalid account")
		destination := assertRunWithResultAndErrorMessage(func() (ethcmn.Address, error) {
			return common.ParseAccount(args[1])
		}, common.EXIT_INVALID_ARGS, "invalid destination")

		cae := assertLoadConfigurationAndEngines(ctx, dryRun)
		amount := assertRunWithResultAndErrorMessage(func() (*big.Int, error) {
			return common.ParseTokenAmount(args[2], cae.Configuration.Token.Decimals)
		}, common.EXIT_INVALID_ARGS, "invalid amount")

		if !dryRun {
			unlock := assertRunWithResultAndErrorMessage(lockRunWithTimeout, common.EXIT_RUN_LOCK_FAILURE, "failed to acquire lock")
			defer unlock()
		}

		runId := newRunId()
		result := assertTransferer(cae, confirmed, dryRun, runId).TransferToken(ctx, account, destination, amount)
		finishTransfers(ctx, cmd, cae, runId, common.TransferResults{result}, dryRun)
		if result.Outcome == nil && result.Err != nil && !dryRun {
			slog.Error("transfer not sent", "error", result.Err.Error())
			os.Exit(common.EXIT_OPERATION_FAILED)
		}
	},
}

func init() {
	transferCmd.Flags().Bool(CONFIRM_FLAG, false, "automatically confirms transfers")
	transferCmd.Flags().Bool(DRY_RUN_FLAG, false, "checks ownership without sending transfers")
	transferCmd.Flags().String(FROM_FILE_FLAG, "", "path to transfers file")
	transferCmd.Flags().Bool(REPORT_TO_STDOUT, false, "prints reports to stdout (wont write to file)")

	transferTokenCmd.Flags().Bool(CONFIRM_FLAG, false, "automatically confirms the transfer")
	transferTokenCmd.Flags().Bool(DRY_RUN_FLAG, false, "checks balance without sending the transfer")
	transferTokenCmd.Flags().Bool(REPORT_TO_STDOUT, false, "prints reports to stdout (wont write to file)")

	RootCmd.AddCommand(transferCmd)
	RootCmd.AddCommand(transferTokenCmd)
}
