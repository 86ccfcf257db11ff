package payout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/ronin-capital/scholarpay/core/split"
	"github.com/ronin-capital/scholarpay/core/transaction"
	"github.com/samber/lo"
)

type OrchestratorOptions struct {
	Collector common.CollectorEngine
	Signers   common.SignerProvider
	Executor  *transaction.Executor
	Consent   common.ConsentProvider
	Summary   *common.PayoutSummary

	Token    ethcmn.Address
	Symbol   string
	Decimals int32
	// plans are computed and returned without asking for consent or sending anything
	DryRun bool
	Logger *slog.Logger
}

func (options *OrchestratorOptions) Validate() error {
	if options.Collector == nil {
		return constants.ErrMissingCollectorEngine
	}
	if options.Summary == nil {
		return constants.ErrMissingSummary
	}
	if options.DryRun {
		return nil
	}
	if options.Signers == nil {
		return constants.ErrMissingSignerEngine
	}
	if options.Executor == nil {
		return constants.ErrMissingTransactorEngine
	}
	if options.Consent == nil {
		return constants.ErrMissingConsentProvider
	}
	return nil
}

// Orchestrator drives payouts of scholar accounts one account at a time.
type Orchestrator struct {
	options OrchestratorOptions
	logger  *slog.Logger
}

func NewOrchestrator(options *OrchestratorOptions) (*Orchestrator, error) {
	if options == nil {
		return nil, constants.ErrMissingEngine
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		options: *options,
		logger:  logger,
	}, nil
}

func (o *Orchestrator) formatAmount(amount *big.Int) string {
	return common.FormatTokenAmountWithSymbol(amount, o.options.Decimals, o.options.Symbol)
}

// plan reads the balance and computes the split plan of the job. Result carries the terminal state
// when the account can not be paid out.
func (o *Orchestrator) plan(ctx context.Context, job *common.PayoutJob, logger *slog.Logger) *common.AccountPayoutResult {
	result := &common.AccountPayoutResult{
		Name:    job.Name,
		Account: job.Account,
		State:   enums.ACCOUNT_STATE_PLANNED,
	}

	if job.RulesError != nil {
		logger.Error("invalid payout rules, account rejected", "error", job.RulesError.Error())
		result.State = enums.ACCOUNT_STATE_REJECTED
		result.Err = job.RulesError
		return result
	}

	balance, err := o.options.Collector.GetTokenBalance(ctx, o.options.Token, job.Account)
	if err != nil {
		logger.Error("failed to read balance, account skipped", "error", err.Error())
		result.State = enums.ACCOUNT_STATE_SKIPPED
		result.Err = err
		return result
	}
	if balance.Sign() == 0 {
		logger.Warn("account has zero balance, nothing to pay out")
		result.State = enums.ACCOUNT_STATE_SKIPPED
		result.Err = constants.ErrZeroBalance
		return result
	}

	plan, err := split.ComputePlan(job.Account, balance, &job.Rules)
	if err != nil {
		logger.Error("failed to compute payout plan, account rejected", "error", err.Error(), "balance", o.formatAmount(balance))
		result.State = enums.ACCOUNT_STATE_REJECTED
		result.Err = err
		return result
	}
	result.Plan = plan
	for _, line := range plan.Skipped {
		logger.Info("payout below one unit omitted", "kind", line.Kind, constants.LOG_FIELD_RECIPIENT, line.Recipient.Hex())
	}

	if total := plan.Total(); total.Cmp(balance) > 0 {
		deficit := new(big.Int).Sub(total, balance)
		err := errors.Join(constants.ErrInsufficientBalance, fmt.Errorf("plan requires %s, balance is %s, deficit %s", o.formatAmount(total), o.formatAmount(balance), o.formatAmount(deficit)))
		logger.Error("insufficient balance, account skipped", "error", err.Error())
		result.State = enums.ACCOUNT_STATE_SKIPPED
		result.Err = err
		return result
	}
	if plan.IsEmpty() {
		logger.Warn("no payouts above one unit, account skipped", "balance", o.formatAmount(balance))
		result.State = enums.ACCOUNT_STATE_SKIPPED
		return result
	}

	logger.Info(constants.LOG_MESSAGE_PLAN_COMPUTED, "lines", len(plan.Lines), "total", o.formatAmount(plan.Total()), "balance", o.formatAmount(balance))
	logger.Debug(constants.LOG_MESSAGE_PLAN_COMPUTED, constants.LOG_FIELD_PLAN, plan)
	return result
}

func (o *Orchestrator) consentMessage(job *common.PayoutJob, plan *common.SplitPlan) string {
	name := job.Name
	if name == "" {
		name = common.ShortenAddress(job.Account)
	}
	return fmt.Sprintf("Do you want to pay out %s from %s (%s) in %d transactions?", o.formatAmount(plan.Total()), name, common.ToRoninAddress(job.Account), len(plan.Lines))
}

// Run processes single account. Errors never escape, they are carried in the result.
func (o *Orchestrator) Run(ctx context.Context, job common.PayoutJob) common.AccountPayoutResult {
	logger := o.logger.With(constants.LOG_FIELD_ACCOUNT, job.Account.Hex())
	if job.Name != "" {
		logger = logger.With("name", job.Name)
	}

	result := o.plan(ctx, &job, logger)
	if result.State != enums.ACCOUNT_STATE_PLANNED {
		return *result
	}
	if o.options.DryRun {
		result.State = enums.ACCOUNT_STATE_PREVIEWED
		return *result
	}

	signer, err := o.options.Signers.GetSigner(job.Account)
	if err != nil {
		err = errors.Join(constants.ErrMissingSigner, err)
		logger.Error("no signer available for account, account rejected", "error", err.Error())
		result.State = enums.ACCOUNT_STATE_REJECTED
		result.Err = err
		return *result
	}

	result.State = enums.ACCOUNT_STATE_AWAITING_CONSENT
	confirmed, err := o.options.Consent.Confirm(o.consentMessage(&job, result.Plan))
	if err != nil && !errors.Is(err, constants.ErrUserNotConfirmed) {
		logger.Warn("failed to obtain consent", "error", err.Error())
	}
	if err != nil || !confirmed {
		logger.Info("payout canceled")
		result.State = enums.ACCOUNT_STATE_CANCELLED
		result.Err = constants.ErrUserNotConfirmed
		return *result
	}

	result.State = enums.ACCOUNT_STATE_EXECUTING
	result.Lines = o.execute(ctx, signer, result, logger)
	result.State = enums.ACCOUNT_STATE_COMPLETED

	failed := len(result.GetFailedLines())
	if failed > 0 {
		logger.Warn("payout finished with failures", "failed", failed, "lines", len(result.Lines))
	} else {
		logger.Info("payout finished", "lines", len(result.Lines))
	}
	return *result
}

// execute sends lines strictly in plan order, a failed line does not stop the remaining ones
func (o *Orchestrator) execute(ctx context.Context, signer common.SignerEngine, result *common.AccountPayoutResult, logger *slog.Logger) []common.LineResult {
	lines := make([]common.LineResult, 0, len(result.Plan.Lines))
	var abort error
	for i, line := range result.Plan.Lines {
		if abort == nil && ctx.Err() != nil {
			abort = errors.Join(constants.ErrExecutePayoutsUserTerminated, ctx.Err())
		}
		if abort != nil {
			lines = append(lines, common.LineResult{Line: line, Outcome: common.NewFailedOutcome(0, abort)})
			continue
		}

		lineLogger := logger.With(
			"line", fmt.Sprintf("%d/%d", i+1, len(result.Plan.Lines)),
			"kind", line.Kind,
			constants.LOG_FIELD_RECIPIENT, line.Recipient.Hex(),
			constants.LOG_FIELD_AMOUNT, o.formatAmount(line.Amount),
		)
		request := common.NewTokenTransferRequest(o.options.Token, result.Account, line.Recipient, line.Amount)
		outcome, err := o.options.Executor.Execute(ctx, signer, request, lineLogger)
		if err != nil {
			// nonce or signer problems affect every following line of the account
			lineLogger.Error("payout of account aborted", "error", err.Error())
			abort = err
			result.Err = err
		}
		lines = append(lines, common.LineResult{Line: line, Outcome: outcome})

		switch outcome.Status {
		case enums.TX_STATUS_CONFIRMED, enums.TX_STATUS_TIMED_OUT:
			o.options.Summary.RecordLine(line)
		}
	}
	return lines
}

// RunAll processes jobs sequentially, a failing account never stops the run.
func (o *Orchestrator) RunAll(ctx context.Context, jobs []common.PayoutJob) common.AccountPayoutResults {
	results := make(common.AccountPayoutResults, 0, len(jobs))
	for _, job := range jobs {
		results = append(results, o.Run(ctx, job))
	}

	counts := lo.CountValuesBy(results, func(r common.AccountPayoutResult) enums.EAccountPayoutState {
		return r.State
	})
	o.logger.Info("payouts processed", "accounts", len(results), "states", counts, "failed_lines", results.CountFailedLines())
	return results
}
