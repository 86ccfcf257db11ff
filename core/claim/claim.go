package claim

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
	"github.com/ronin-capital/scholarpay/core/contracts"
	"github.com/ronin-capital/scholarpay/core/transaction"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type ClaimerOptions struct {
	Authorizer common.ClaimAuthorizer
	Signers    common.SignerProvider
	Executor   *transaction.Executor
	Consent    common.ConsentProvider
	Summary    *common.PayoutSummary

	Token       ethcmn.Address
	Symbol      string
	Decimals    int32
	Concurrency int
	DryRun      bool
	Logger      *slog.Logger
}

func (options *ClaimerOptions) Validate() error {
	if options.Authorizer == nil {
		return constants.ErrMissingEngine
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

// Claimer claims rewards of many accounts. Accounts are independent, each has its own nonce
// sequence, so claims run concurrently.
type Claimer struct {
	options ClaimerOptions
	logger  *slog.Logger
}

func NewClaimer(options *ClaimerOptions) (*Claimer, error) {
	if options == nil {
		return nil, constants.ErrMissingEngine
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if options.Concurrency <= 0 {
		options.Concurrency = constants.DEFAULT_CLAIM_CONCURRENCY
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Claimer{
		options: *options,
		logger:  logger,
	}, nil
}

func (c *Claimer) forEach(jobs []common.ClaimJob, fn func(i int, job common.ClaimJob)) {
	var group errgroup.Group
	group.SetLimit(c.options.Concurrency)
	for i, job := range jobs {
		group.Go(func() error {
			fn(i, job)
			return nil
		})
	}
	_ = group.Wait()
}

func (c *Claimer) authorize(ctx context.Context, job common.ClaimJob, logger *slog.Logger) (common.ClaimResult, *common.ClaimTicket) {
	result := common.ClaimResult{
		Name:    job.Name,
		Account: job.Account,
		State:   enums.ACCOUNT_STATE_PLANNED,
	}
	ticket, err := c.options.Authorizer.Authorize(ctx, job.Account)
	switch {
	case errors.Is(err, constants.ErrNothingToClaim):
		logger.Info("nothing to claim, account skipped")
		result.State = enums.ACCOUNT_STATE_SKIPPED
		result.Err = err
		return result, nil
	case err != nil:
		logger.Error("failed to authorize claim, account skipped", "error", err.Error())
		result.State = enums.ACCOUNT_STATE_SKIPPED
		result.Err = errors.Join(constants.ErrClaimAuthorizationFailed, err)
		return result, nil
	case ticket == nil || ticket.Amount == nil || ticket.Amount.Sign() <= 0:
		logger.Info("nothing to claim, account skipped")
		result.State = enums.ACCOUNT_STATE_SKIPPED
		result.Err = constants.ErrNothingToClaim
		return result, nil
	}
	result.Amount = new(big.Int).Set(ticket.Amount)
	logger.Info("claim authorized", constants.LOG_FIELD_AMOUNT, common.FormatTokenAmountWithSymbol(ticket.Amount, c.options.Decimals, c.options.Symbol))
	return result, ticket
}

func (c *Claimer) execute(ctx context.Context, result *common.ClaimResult, ticket *common.ClaimTicket, logger *slog.Logger) {
	signer, err := c.options.Signers.GetSigner(result.Account)
	if err != nil {
		err = errors.Join(constants.ErrMissingSigner, err)
		logger.Error("no signer available for account, claim rejected", "error", err.Error())
		result.State = enums.ACCOUNT_STATE_REJECTED
		result.Err = err
		return
	}

	data, err := contracts.PackCheckpoint(result.Account, ticket.Amount, ticket.CreatedAt, ticket.Signature)
	if err != nil {
		err = errors.Join(constants.ErrFailedToBuildOperation, err)
		logger.Error("failed to encode claim", "error", err.Error())
		result.State = enums.ACCOUNT_STATE_REJECTED
		result.Err = err
		return
	}

	result.State = enums.ACCOUNT_STATE_EXECUTING
	outcome, err := c.options.Executor.Execute(ctx, signer, common.NewContractCallRequest(c.options.Token, result.Account, data), logger)
	result.Outcome = &outcome
	result.Err = err
	result.State = enums.ACCOUNT_STATE_COMPLETED
	switch outcome.Status {
	case enums.TX_STATUS_CONFIRMED, enums.TX_STATUS_TIMED_OUT:
		c.options.Summary.Record(enums.SUMMARY_ROLE_CLAIM, result.Account, result.Amount)
	}
}

// Claim authorizes claims of all jobs, asks for a single consent and sends the claims.
// Results are in the order of jobs.
func (c *Claimer) Claim(ctx context.Context, jobs []common.ClaimJob) common.ClaimResults {
	results := make(common.ClaimResults, len(jobs))
	tickets := make([]*common.ClaimTicket, len(jobs))
	loggers := lo.Map(jobs, func(job common.ClaimJob, _ int) *slog.Logger {
		logger := c.logger.With(constants.LOG_FIELD_ACCOUNT, job.Account.Hex())
		if job.Name != "" {
			logger = logger.With("name", job.Name)
		}
		return logger
	})

	c.forEach(jobs, func(i int, job common.ClaimJob) {
		results[i], tickets[i] = c.authorize(ctx, job, loggers[i])
	})

	claimable := lo.Filter(lo.Range(len(jobs)), func(i int, _ int) bool {
		return tickets[i] != nil
	})
	if len(claimable) == 0 {
		c.logger.Info("no claimable rewards")
		return results
	}

	if c.options.DryRun {
		for _, i := range claimable {
			results[i].State = enums.ACCOUNT_STATE_PREVIEWED
		}
		return results
	}

	total := lo.Reduce(claimable, func(acc *big.Int, i int, _ int) *big.Int {
		return acc.Add(acc, tickets[i].Amount)
	}, new(big.Int))
	for _, i := range claimable {
		results[i].State = enums.ACCOUNT_STATE_AWAITING_CONSENT
	}
	msg := fmt.Sprintf("Do you want to claim %s from %d accounts?", common.FormatTokenAmountWithSymbol(total, c.options.Decimals, c.options.Symbol), len(claimable))
	confirmed, err := c.options.Consent.Confirm(msg)
	if err != nil && !errors.Is(err, constants.ErrUserNotConfirmed) {
		c.logger.Warn("failed to obtain consent", "error", err.Error())
	}
	if err != nil || !confirmed {
		c.logger.Info("claim canceled")
		for _, i := range claimable {
			results[i].State = enums.ACCOUNT_STATE_CANCELLED
			results[i].Err = constants.ErrUserNotConfirmed
		}
		return results
	}

	c.forEach(jobs, func(i int, job common.ClaimJob) {
		if tickets[i] == nil {
			return
		}
		c.execute(ctx, &results[i], tickets[i], loggers[i])
	})

	c.logger.Info(constants.LOG_MESSAGE_CLAIM_SUMMARY, "accounts", len(jobs), "claimed", len(claimable), "failed", results.CountFailed())
	return results
}
