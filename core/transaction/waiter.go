package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/jonboulle/clockwork"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
)

type ReceiptSource interface {
	GetTransactionReceipt(ctx context.Context, hash ethcmn.Hash) (*types.Receipt, error)
}

type ConfirmationWaiterOptions struct {
	PollInterval time.Duration
	Timeout      time.Duration
	Clock        clockwork.Clock
	Logger       *slog.Logger
}

type ConfirmationWaiter struct {
	source   ReceiptSource
	interval time.Duration
	timeout  time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
}

func NewConfirmationWaiter(source ReceiptSource, options *ConfirmationWaiterOptions) *ConfirmationWaiter {
	if options == nil {
		options = &ConfirmationWaiterOptions{}
	}
	waiter := &ConfirmationWaiter{
		source:   source,
		interval: options.PollInterval,
		timeout:  options.Timeout,
		clock:    options.Clock,
		logger:   options.Logger,
	}
	if waiter.interval <= 0 {
		waiter.interval = constants.DEFAULT_CONFIRMATION_POLL_INTERVAL
	}
	if waiter.timeout <= 0 {
		waiter.timeout = constants.DEFAULT_CONFIRMATION_TIMEOUT
	}
	if waiter.clock == nil {
		waiter.clock = clockwork.NewRealClock()
	}
	if waiter.logger == nil {
		waiter.logger = slog.Default()
	}
	return waiter
}

// resolve panics on a second resolution, only one goroutine ever owns an outcome
func resolve(outcome *common.TransactionOutcome, status enums.ETxStatus, err error) {
	if resolveErr := outcome.Resolve(status, err); resolveErr != nil {
		common.RaceConditionPanicWithMetadata(resolveErr.Error(), outcome.Hash.Hex(), outcome)
	}
}

// Wait polls for the receipt of the transaction until it is confirmed, failed or the timeout elapses.
// Cancelled context ends as timed out because the chain state is unknown.
func (w *ConfirmationWaiter) Wait(ctx context.Context, hash ethcmn.Hash, nonce uint64) common.TransactionOutcome {
	outcome := common.NewPendingOutcome(hash, nonce)
	logger := w.logger.With(constants.LOG_FIELD_TX_HASH, hash.Hex())
	deadline := w.clock.Now().Add(w.timeout)

	for {
		receipt, err := w.source.GetTransactionReceipt(ctx, hash)
		switch {
		case err == nil && receipt != nil:
			if receipt.Status == types.ReceiptStatusSuccessful {
				resolve(&outcome, enums.TX_STATUS_CONFIRMED, nil)
			} else {
				resolve(&outcome, enums.TX_STATUS_FAILED, errors.Join(constants.ErrOperationFailed, fmt.Errorf("transaction reverted in block %v", receipt.BlockNumber)))
			}
			return outcome
		case err == nil, errors.Is(err, constants.ErrReceiptNotFound):
			logger.Debug("transaction not yet included")
		default:
			logger.Warn("failed to read receipt, will retry", "error", err.Error())
		}

		remaining := deadline.Sub(w.clock.Now())
		if remaining <= 0 {
			resolve(&outcome, enums.TX_STATUS_TIMED_OUT, errors.Join(constants.ErrConfirmationTimeout, fmt.Errorf("no receipt within %s", w.timeout)))
			return outcome
		}

		select {
		case <-ctx.Done():
			resolve(&outcome, enums.TX_STATUS_TIMED_OUT, errors.Join(constants.ErrConfirmationTimeout, ctx.Err()))
			return outcome
		case <-w.clock.After(min(w.interval, remaining)):
		}
	}
}
