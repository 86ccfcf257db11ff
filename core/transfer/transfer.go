package transfer

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
	"github.com/ronin-capital/scholarpay/core/transaction"
	"github.com/samber/lo"
)

type TransfererOptions struct {
	Collector common.CollectorEngine
	Signers   common.SignerProvider
	Executor  *transaction.Executor
	Consent   common.ConsentProvider

	NftContract ethcmn.Address
	Token       ethcmn.Address
	Symbol      string
	Decimals    int32
	DryRun      bool
	Logger      *slog.Logger
}

func (options *TransfererOptions) Validate() error {
	if options.Collector == nil {
		return constants.ErrMissingCollectorEngine
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

// Transferer moves assets out of managed accounts outside of the payout split.
type Transferer struct {
	options TransfererOptions
	logger  *slog.Logger
}

func NewTransferer(options *TransfererOptions) (*Transferer, error) {
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
	return &Transferer{
		options: *options,
		logger:  logger,
	}, nil
}

func (t *Transferer) execute(ctx context.Context, signer common.SignerEngine, result *common.TransferResult, logger *slog.Logger) error {
	result.State = enums.ACCOUNT_STATE_EXECUTING
	outcome, err := t.options.Executor.Execute(ctx, signer, result.Request, logger)
	result.Outcome = &outcome
	result.Err = err
	result.State = enums.ACCOUNT_STATE_COMPLETED
	return err
}

// checkOwnership marks transfers of items not owned by the sender as skipped
func (t *Transferer) checkOwnership(ctx context.Context, results []*common.TransferResult, logger *slog.Logger) []*common.TransferResult {
	owned := make([]*common.TransferResult, 0, len(results))
	for _, result := range results {
		itemLogger := logger.With("token_id", result.Request.TokenId.String())
		owner, err := t.options.Collector.GetNftOwner(ctx, result.Request.Contract, result.Request.TokenId)
		if err != nil {
			itemLogger.Warn("failed to read owner, transfer skipped", "error", err.Error())
			result.State = enums.ACCOUNT_STATE_SKIPPED
			result.Err = err
			continue
		}
		if owner != result.Request.From {
			result.State = enums.ACCOUNT_STATE_SKIPPED
			result.Err = errors.Join(constants.ErrNotOwner, fmt.Errorf("item #%s is owned by %s", result.Request.TokenId, owner.Hex()))
			itemLogger.Warn("item not owned by account, transfer skipped", "owner", owner.Hex())
			continue
		}
		owned = append(owned, result)
	}
	return owned
}

func (t *Transferer) transferAccountNfts(ctx context.Context, account ethcmn.Address, results []*common.TransferResult) {
	logger := t.logger.With(constants.LOG_FIELD_ACCOUNT, account.Hex())
	owned := t.checkOwnership(ctx, results, logger)
	if len(owned) == 0 {
		logger.Info("nothing to transfer")
		return
	}
	if t.options.DryRun {
		for _, result := range owned {
			result.State = enums.ACCOUNT_STATE_PREVIEWED
		}
		return
	}

	signer, err := t.options.Signers.GetSigner(account)
	if err != nil {
		err = errors.Join(constants.ErrMissingSigner, err)
		logger.Error("no signer available for account, transfers rejected", "error", err.Error())
		for _, result := range owned {
			result.State = enums.ACCOUNT_STATE_REJECTED
			result.Err = err
		}
		return
	}

	for _, result := range owned {
		result.State = enums.ACCOUNT_STATE_AWAITING_CONSENT
	}
	confirmed, err := t.options.Consent.Confirm(fmt.Sprintf("Do you want to transfer %d items from %s?", len(owned), common.ToRoninAddress(account)))
	if err != nil && !errors.Is(err, constants.ErrUserNotConfirmed) {
		logger.Warn("failed to obtain consent", "error", err.Error())
	}
	if err != nil || !confirmed {
		logger.Info("transfer canceled")
		for _, result := range owned {
			result.State = enums.ACCOUNT_STATE_CANCELLED
			result.Err = constants.ErrUserNotConfirmed
		}
		return
	}

	var abort error
	for _, result := range owned {
		if abort == nil && ctx.Err() != nil {
			abort = errors.Join(constants.ErrExecutePayoutsUserTerminated, ctx.Err())
		}
		if abort != nil {
			outcome := common.NewFailedOutcome(0, abort)
			result.Outcome = &outcome
			result.State = enums.ACCOUNT_STATE_COMPLETED
			continue
		}
		itemLogger := logger.With("token_id", result.Request.TokenId.String(), constants.LOG_FIELD_RECIPIENT, result.Request.To.Hex())
		if err := t.execute(ctx, signer, result, itemLogger); err != nil {
			itemLogger.Error("transfers of account aborted", "error", err.Error())
			abort = err
		}
	}
}

// TransferNfts sends items grouped by source account, accounts in order of first appearance.
// Results follow the order of transfers.
func (t *Transferer) TransferNfts(ctx context.Context, transfers []common.NftTransfer) common.TransferResults {
	results := lo.Map(transfers, func(transfer common.NftTransfer, _ int) common.TransferResult {
		return common.TransferResult{
			Request: common.NewNftTransferRequest(t.options.NftContract, transfer.From, transfer.To, transfer.TokenId),
			State:   enums.ACCOUNT_STATE_PLANNED,
		}
	})

	accounts := lo.Uniq(lo.Map(transfers, func(transfer common.NftTransfer, _ int) ethcmn.Address {
		return transfer.From
	}))
	for _, account := range accounts {
		group := make([]*common.TransferResult, 0)
		for i := range results {
			if results[i].Request.From == account {
				group = append(group, &results[i])
			}
		}
		t.transferAccountNfts(ctx, account, group)
	}

	t.logger.Info(constants.LOG_MESSAGE_TRANSFER_RESULT, "transfers", len(results), "accounts", len(accounts), "failed", common.TransferResults(results).CountFailed())
	return results
}

// TransferToken sends amount of the configured token from account to the destination.
func (t *Transferer) TransferToken(ctx context.Context, account ethcmn.Address, destination ethcmn.Address, amount *big.Int) common.TransferResult {
	logger := t.logger.With(constants.LOG_FIELD_ACCOUNT, account.Hex(), constants.LOG_FIELD_RECIPIENT, destination.Hex())
	result := common.TransferResult{
		Request: common.NewTokenTransferRequest(t.options.Token, account, destination, amount),
		State:   enums.ACCOUNT_STATE_PLANNED,
	}
	formatted := common.FormatTokenAmountWithSymbol(amount, t.options.Decimals, t.options.Symbol)

	if amount == nil || amount.Sign() <= 0 {
		result.State = enums.ACCOUNT_STATE_REJECTED
		result.Err = errors.Join(constants.ErrInvalidAmount, fmt.Errorf("invalid amount %s", formatted))
		logger.Error("invalid transfer amount", "error", result.Err.Error())
		return result
	}

	balance, err := t.options.Collector.GetTokenBalance(ctx, t.options.Token, account)
	if err != nil {
		logger.Error("failed to read balance, transfer skipped", "error", err.Error())
		result.State = enums.ACCOUNT_STATE_SKIPPED
		result.Err = err
		return result
	}
	if balance.Cmp(amount) < 0 {
		deficit := new(big.Int).Sub(amount, balance)
		result.State = enums.ACCOUNT_STATE_SKIPPED
		result.Err = errors.Join(constants.ErrInsufficientBalance, fmt.Errorf("transfer requires %s, deficit %s", formatted, common.FormatTokenAmountWithSymbol(deficit, t.options.Decimals, t.options.Symbol)))
		logger.Error("insufficient balance, transfer skipped", "error", result.Err.Error())
		return result
	}
	if t.options.DryRun {
		result.State = enums.ACCOUNT_STATE_PREVIEWED
		return result
	}

	signer, err := t.options.Signers.GetSigner(account)
	if err != nil {
		result.State = enums.ACCOUNT_STATE_REJECTED
		result.Err = errors.Join(constants.ErrMissingSigner, err)
		logger.Error("no signer available for account, transfer rejected", "error", result.Err.Error())
		return result
	}

	result.State = enums.ACCOUNT_STATE_AWAITING_CONSENT
	confirmed, err := t.options.Consent.Confirm(fmt.Sprintf("Do you want to transfer %s from %s to %s?", formatted, common.ToRoninAddress(account), common.ToRoninAddress(destination)))
	if err != nil || !confirmed {
		logger.Info("transfer canceled")
		result.State = enums.ACCOUNT_STATE_CANCELLED
		result.Err = constants.ErrUserNotConfirmed
		return result
	}

	_ = t.execute(ctx, signer, &result, logger.With(constants.LOG_FIELD_AMOUNT, formatted))
	return result
}
