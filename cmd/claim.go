package cmd

import (
	"fmt"
	"log/slog"
	"os"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/configuration"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/core/claim"
	claimer_engines "github.com/ronin-capital/scholarpay/engines/claimer"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "claims rewards of scholar accounts",
	Long:  "obtains claim signatures from the game api and claims rewards of configured scholar accounts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := newRunContext()
		defer cancel()

		dryRun, _ := cmd.Flags().GetBool(DRY_RUN_FLAG)
		confirmed, _ := cmd.Flags().GetBool(CONFIRM_FLAG)
		toStdout, _ := cmd.Flags().GetBool(REPORT_TO_STDOUT)
		accounts := assertAccountsFilter(cmd)

		cae := assertLoadConfigurationAndEngines(ctx, dryRun)
		config := cae.Configuration
		secrets := cae.Secrets
		if secrets == nil {
			secrets = assertRunWithResultAndErrorMessage(configuration.LoadSecrets, common.EXIT_SECRETS_LOAD_FAILURE, "failed to load secrets")
		}
		jobs := filterByAccount(config.GetClaimJobs(), accounts, func(job common.ClaimJob) ethcmn.Address {
			return job.Account
		})
		if len(jobs) == 0 {
			slog.Info("nothing to claim", constants.LOG_FIELD_PHASE, "result")
			return
		}

		authorizer := assertRunWithResultAndErrorMessage(func() (*claimer_engines.HttpAuthorizer, error) {
			return claimer_engines.InitHttpAuthorizer(config.Claims.ApiUrl, claimer_engines.StaticTokenProvider(secrets.AccessTokens), nil)
		}, common.EXIT_ENGINES_LOAD_FAILURE, "failed to initialize claim authorizer")

		if !dryRun {
			unlock := assertRunWithResultAndErrorMessage(lockRunWithTimeout, common.EXIT_RUN_LOCK_FAILURE, "failed to acquire lock")
			defer unlock()
		}

		runId := newRunId()
		summary := common.NewPayoutSummary(runId, config.Token.Symbol, config.Token.Decimals)
		claimer := assertRunWithResultAndErrorMessage(func() (*claim.Claimer, error) {
			return claim.NewClaimer(&claim.ClaimerOptions{
				Authorizer:  authorizer,
				Signers:     cae.Signers,
				Executor:    cae.Executor,
				Consent:     getConsentProvider(confirmed, dryRun),
				Summary:     summary,
				Token:       config.Token.Contract,
				Symbol:      config.Token.Symbol,
				Decimals:    config.Token.Decimals,
				Concurrency: config.Claims.Concurrency,
				DryRun:      dryRun,
				Logger:      slog.Default().With(constants.LOG_FIELD_RUN_ID, runId),
			})
		}, common.EXIT_ENGINES_LOAD_FAILURE, "failed to initialize claims")

		results := claimer.Claim(ctx, jobs)
		printReports(fmt.Sprintf("Claims of run %s", runId), lo.Map(results, func(r common.ClaimResult, _ int) common.PayoutReport {
			return r.ToReport(runId)
		}), config.Token.Decimals)
		if dryRun {
			return
		}
		printSummary(summary)

		reporter := loadReporter(ctx, config, runId, dryRun, toStdout)
		reportsWritten := writeReports(reporter, results.ToReports(runId), summary)
		if silent, _ := cmd.Flags().GetBool(SILENT_FLAG); !silent && !summary.IsEmpty() {
			notificator, _ := cmd.Flags().GetString(NOTIFICATOR_FLAG)
			notifyPayoutsProcessed(config, summary.Snapshot(), notificator, nil)
		}

		if failed := results.CountFailed(); failed > 0 {
			slog.Error("failed claims detected", "failed", failed, "total", len(results))
			notifyAdmin(config, fmt.Sprintf("run %s: %d claims failed", runId, failed))
			os.Exit(common.EXIT_PARTIAL_FAILURE)
		}
		if !reportsWritten {
			os.Exit(common.EXIT_REPORT_WRITE_FAILURE)
		}
	},
}

func init() {
	claimCmd.Flags().Bool(CONFIRM_FLAG, false, "automatically confirms claims")
	claimCmd.Flags().Bool(DRY_RUN_FLAG, false, "shows claimable rewards without sending claims")
	claimCmd.Flags().BoolP(SILENT_FLAG, "s", false, "suppresses notifications")
	claimCmd.Flags().String(NOTIFICATOR_FLAG, "", "notify through specific notificator")
	claimCmd.Flags().Bool(REPORT_TO_STDOUT, false, "prints reports to stdout (wont write to file)")
	claimCmd.Flags().StringSlice(ACCOUNT_FLAG, nil, "claims only specified accounts")

	RootCmd.AddCommand(claimCmd)
}
