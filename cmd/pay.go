package cmd

import (
	"fmt"
	"log/slog"
	"os"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/ronin-capital/scholarpay/core/payout"
	"github.com/ronin-capital/scholarpay/state"
	"github.com/ronin-capital/scholarpay/utils"
	"github.com/spf13/cobra"
)

func runPayouts(cmd *cobra.Command, dryRun bool) {
	ctx, cancel := newRunContext()
	defer cancel()

	accounts := assertAccountsFilter(cmd)
	config, collector, signers, executor := assertLoadConfigurationAndEngines(ctx, dryRun).Unwrap()
	jobs := filterByAccount(config.Jobs, accounts, func(job common.PayoutJob) ethcmn.Address {
		return job.Account
	})
	if len(jobs) == 0 {
		slog.Info("nothing to pay out", constants.LOG_FIELD_PHASE, "result")
		return
	}

	if !dryRun {
		slog.Info("acquiring lock", constants.LOG_FIELD_PHASE, "acquiring_lock")
		unlock := assertRunWithResultAndErrorMessage(lockRunWithTimeout, common.EXIT_RUN_LOCK_FAILURE, "failed to acquire lock")
		defer unlock()
	}

	runId := newRunId()
	confirmed, _ := cmd.Flags().GetBool(CONFIRM_FLAG)
	toStdout, _ := cmd.Flags().GetBool(REPORT_TO_STDOUT)
	summary := common.NewPayoutSummary(runId, config.Token.Symbol, config.Token.Decimals)
	orchestrator := assertRunWithResultAndErrorMessage(func() (*payout.Orchestrator, error) {
		return payout.NewOrchestrator(&payout.OrchestratorOptions{
			Collector: collector,
			Signers:   signers,
			Executor:  executor,
			Consent:   getConsentProvider(confirmed, dryRun),
			Summary:   summary,
			Token:     config.Token.Contract,
			Symbol:    config.Token.Symbol,
			Decimals:  config.Token.Decimals,
			DryRun:    dryRun,
			Logger:    slog.Default().With(constants.LOG_FIELD_RUN_ID, runId),
		})
	}, common.EXIT_ENGINES_LOAD_FAILURE, "failed to initialize payouts")

	slog.Info("processing payouts", "accounts", len(jobs), constants.LOG_FIELD_RUN_ID, runId)
	results := orchestrator.RunAll(ctx, jobs)

	reporter := loadReporter(ctx, config, runId, dryRun, toStdout)
	if dryRun {
		if state.Global.GetWantsOutputJson() {
			slog.Info(constants.LOG_MESSAGE_PLAN_COMPUTED, constants.LOG_FIELD_RESULTS, results, constants.LOG_FIELD_PHASE, "result")
		} else {
			utils.PrintPayoutPlans(results, config.Token.Symbol, config.Token.Decimals)
			utils.PrintAccountStates(results)
		}
		if !writeReports(reporter, results.ToPlannedReports(runId), nil) {
			os.Exit(common.EXIT_REPORT_WRITE_FAILURE)
		}
		return
	}

	reports := results.ToReports(runId)
	printReports(fmt.Sprintf("Results of run %s", runId), reports, config.Token.Decimals)
	if !state.Global.GetWantsOutputJson() {
		utils.PrintAccountStates(results)
	}
	printSummary(summary)
	reportsWritten := writeReports(reporter, reports, summary)

	if silent, _ := cmd.Flags().GetBool(SILENT_FLAG); !silent && !summary.IsEmpty() {
		notificator, _ := cmd.Flags().GetString(NOTIFICATOR_FLAG)
		notifyPayoutsProcessed(config, summary.Snapshot(), notificator, nil)
	}

	failedLines := results.CountFailedLines()
	rejected := results.CountByState(enums.ACCOUNT_STATE_REJECTED)
	switch {
	case failedLines > 0 || rejected > 0:
		slog.Error("failed payouts detected", "failed_lines", failedLines, "rejected_accounts", rejected, constants.LOG_FIELD_RUN_ID, runId)
		notifyAdmin(config, fmt.Sprintf("run %s: %d payouts failed, %d accounts rejected", runId, failedLines, rejected))
		os.Exit(common.EXIT_PARTIAL_FAILURE)
	case ctx.Err() != nil:
		os.Exit(common.EXIT_OPERATION_CANCELED)
	case !reportsWritten:
		os.Exit(common.EXIT_REPORT_WRITE_FAILURE)
	}
}

var payCmd = &cobra.Command{
	Use:   "pay",
	Short: "pays out scholar accounts",
	Long:  "splits token balances of configured scholar accounts and sends the payouts",
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool(DRY_RUN_FLAG)
		runPayouts(cmd, dryRun)
	},
}

var generatePayoutsCmd = &cobra.Command{
	Use:   "generate-payouts",
	Short: "generates payouts without sending them",
	Long:  "computes payout plans of configured scholar accounts, nothing is signed nor sent",
	Run: func(cmd *cobra.Command, args []string) {
		runPayouts(cmd, true)
	},
}

func init() {
	payCmd.Flags().Bool(CONFIRM_FLAG, false, "automatically confirms payouts")
	payCmd.Flags().Bool(DRY_RUN_FLAG, false, "computes payouts without sending them, reports are stored in 'reports/dry' folder")
	payCmd.Flags().BoolP(SILENT_FLAG, "s", false, "suppresses notifications")
	payCmd.Flags().String(NOTIFICATOR_FLAG, "", "notify through specific notificator")
	payCmd.Flags().Bool(REPORT_TO_STDOUT, false, "prints reports to stdout (wont write to file)")
	payCmd.Flags().StringSlice(ACCOUNT_FLAG, nil, "pays out only specified accounts")

	generatePayoutsCmd.Flags().Bool(REPORT_TO_STDOUT, false, "prints reports to stdout (wont write to file)")
	generatePayoutsCmd.Flags().StringSlice(ACCOUNT_FLAG, nil, "generates payouts only for specified accounts")

	RootCmd.AddCommand(payCmd)
	RootCmd.AddCommand(generatePayoutsCmd)
}
