package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
)

// Executor drives a single transaction through nonce, build, sign, broadcast and confirmation.
// At most one transaction per account is in flight, callers execute lines of an account sequentially.
type Executor struct {
	builder     *Builder
	sequencer   *NonceSequencer
	transactor  common.TransactorEngine
	waiter      *ConfirmationWaiter
	explorerUrl string
}

func NewExecutor(builder *Builder, sequencer *NonceSequencer, transactor common.TransactorEngine, waiter *ConfirmationWaiter, explorerUrl string) *Executor {
	return &Executor{
		builder:     builder,
		sequencer:   sequencer,
		transactor:  transactor,
		waiter:      waiter,
		explorerUrl: explorerUrl,
	}
}

func (e *Executor) GetTransactionReference(outcome *common.TransactionOutcome) string {
	return e.explorerUrl + outcome.Hash.Hex()
}

// Execute returns the transaction outcome. The error is set only for account fatal conditions,
// a failed or timed out transaction is reported through the outcome.
func (e *Executor) Execute(ctx context.Context, signer common.SignerEngine, request common.TransferRequest, logger *slog.Logger) (common.TransactionOutcome, error) {
	if signer == nil {
		return common.NewFailedOutcome(0, constants.ErrMissingSignerEngine), constants.ErrMissingSignerEngine
	}
	if signer.GetAddress() != request.From {
		err := errors.Join(constants.ErrMissingSigner, fmt.Errorf("signer %s can not sign for %s", signer.GetAddress().Hex(), request.From.Hex()))
		return common.NewFailedOutcome(0, err), err
	}

	nonce, err := e.sequencer.Next(ctx, request.From)
	if err != nil {
		logger.Error("failed to obtain nonce", "error", err.Error(), constants.LOG_FIELD_PHASE, "nonce")
		return common.NewFailedOutcome(0, err), err
	}
	logger = logger.With(constants.LOG_FIELD_NONCE, nonce)

	tx, err := e.builder.Build(request, nonce)
	if err != nil {
		e.sequencer.Invalidate(request.From)
		logger.Warn("failed to build transaction", "error", err.Error(), constants.LOG_FIELD_PHASE, "execution_finished")
		return common.NewFailedOutcome(nonce, err), nil
	}

	signed, err := signer.Sign(ctx, tx, e.builder.GetChainId())
	if err != nil {
		e.sequencer.Invalidate(request.From)
		logger.Warn("failed to sign transaction", "error", err.Error(), constants.LOG_FIELD_PHASE, "execution_finished")
		return common.NewFailedOutcome(nonce, errors.Join(constants.ErrFailedToSignOperation, err)), nil
	}

	logger.Info("broadcasting transaction", constants.LOG_FIELD_PHASE, "broadcasting")
	hash, err := e.transactor.Broadcast(ctx, signed)
	if err != nil {
		// whether the nonce got consumed is decided by the chain on the next seed
		e.sequencer.Invalidate(request.From)
		logger.Warn("failed to broadcast transaction", "error", err.Error(), constants.LOG_FIELD_PHASE, "execution_finished")
		return common.NewFailedOutcome(nonce, errors.Join(constants.ErrOperationBroadcastFailed, err)), nil
	}

	logger = logger.With(constants.LOG_FIELD_TX_HASH, hash.Hex())
	logger.Info("waiting for confirmation", "reference", e.explorerUrl+hash.Hex(), constants.LOG_FIELD_PHASE, "waiting_for_confirmation")
	outcome := e.waiter.Wait(ctx, hash, nonce)
	switch outcome.Status {
	case enums.TX_STATUS_CONFIRMED:
		logger.Info("transaction confirmed", constants.LOG_FIELD_PHASE, "execution_finished")
	case enums.TX_STATUS_TIMED_OUT:
		e.sequencer.Invalidate(request.From)
		logger.Warn("transaction not confirmed in time, chain state unknown", "error", outcome.GetErrorMessage(), constants.LOG_FIELD_PHASE, "execution_finished")
	default:
		logger.Warn("transaction failed", "error", outcome.GetErrorMessage(), constants.LOG_FIELD_PHASE, "execution_finished")
	}
	return outcome, nil
}
