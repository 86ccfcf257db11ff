package transaction

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/jonboulle/clockwork"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/ronin-capital/scholarpay/test/mock"
	"github.com/stretchr/testify/assert"
)

type executorFixture struct {
	collector  *mock.SimpleCollector
	transactor *mock.SimpleTransactor
	executor   *Executor
}

func newExecutorFixture() *executorFixture {
	collector := mock.InitSimpleCollector()
	transactor := mock.InitSimpleTransactor()
	waiter := newTestWaiter(collector, clockwork.NewFakeClock())
	return &executorFixture{
		collector:  collector,
		transactor: transactor,
		executor:   NewExecutor(newTestBuilder(), NewNonceSequencer(collector), transactor, waiter, constants.DEFAULT_EXPLORER_URL),
	}
}

func TestExecuteConfirmed(t *testing.T) {
	assert := assert.New(t)
	fixture := newExecutorFixture()
	signer := mock.InitSimpleSigner()
	fixture.collector.SetNonce(signer.GetAddress(), 7)
	token, to := mock.GetRandomAddress(), mock.GetRandomAddress()

	outcome, err := fixture.executor.Execute(context.Background(), signer, common.NewTokenTransferRequest(token, signer.GetAddress(), to, big.NewInt(5)), slog.Default())
	assert.Nil(err)
	assert.Equal(enums.TX_STATUS_CONFIRMED, outcome.Status)
	assert.Equal(uint64(7), outcome.Nonce)

	broadcasted := fixture.transactor.GetBroadcasted()
	assert.Len(broadcasted, 1)
	assert.Equal(outcome.Hash, broadcasted[0].Hash())

	t.Log("transaction is signed for the configured chain")
	sender, err := types.Sender(types.NewEIP155Signer(big.NewInt(constants.DEFAULT_CHAIN_ID)), broadcasted[0])
	assert.Nil(err)
	assert.Equal(signer.GetAddress(), sender)
	assert.Equal(constants.DEFAULT_EXPLORER_URL+outcome.Hash.Hex(), fixture.executor.GetTransactionReference(&outcome))
}

func TestExecuteBroadcastFailureInvalidatesNonce(t *testing.T) {
	assert := assert.New(t)
	fixture := newExecutorFixture()
	signer := mock.InitSimpleSigner()
	token, to := mock.GetRandomAddress(), mock.GetRandomAddress()
	request := common.NewTokenTransferRequest(token, signer.GetAddress(), to, big.NewInt(5))

	fixture.transactor.BroadcastFunc = func(tx *types.Transaction) error {
		return errors.New("rate limited")
	}
	outcome, err := fixture.executor.Execute(context.Background(), signer, request, slog.Default())
	assert.Nil(err, "broadcast failure is not fatal for the account")
	assert.Equal(enums.TX_STATUS_FAILED, outcome.Status)
	assert.True(errors.Is(outcome.Err, constants.ErrOperationBroadcastFailed))

	t.Log("next transaction re-seeds and reuses the unconsumed nonce")
	fixture.transactor.BroadcastFunc = nil
	outcome, err = fixture.executor.Execute(context.Background(), signer, request, slog.Default())
	assert.Nil(err)
	assert.Equal(enums.TX_STATUS_CONFIRMED, outcome.Status)
	assert.Equal(uint64(0), outcome.Nonce)
	assert.Equal(2, fixture.collector.NonceCalls)
}

func TestExecuteSequentialNonces(t *testing.T) {
	assert := assert.New(t)
	fixture := newExecutorFixture()
	signer := mock.InitSimpleSigner()
	token := mock.GetRandomAddress()

	for i := uint64(0); i < 3; i++ {
		outcome, err := fixture.executor.Execute(context.Background(), signer, common.NewTokenTransferRequest(token, signer.GetAddress(), mock.GetRandomAddress(), big.NewInt(1)), slog.Default())
		assert.Nil(err)
		assert.Equal(i, outcome.Nonce)
	}
	assert.Equal(1, fixture.collector.NonceCalls)
}

func TestExecuteSignFailure(t *testing.T) {
	assert := assert.New(t)
	fixture := newExecutorFixture()
	signer := &mock.FailingSigner{Address: mock.GetRandomAddress()}

	outcome, err := fixture.executor.Execute(context.Background(), signer, common.NewTokenTransferRequest(mock.GetRandomAddress(), signer.Address, mock.GetRandomAddress(), big.NewInt(1)), slog.Default())
	assert.Nil(err)
	assert.Equal(enums.TX_STATUS_FAILED, outcome.Status)
	assert.True(errors.Is(outcome.Err, constants.ErrFailedToSignOperation))
	assert.Empty(fixture.transactor.GetBroadcasted())
}

func TestExecuteAccountFatalErrors(t *testing.T) {
	assert := assert.New(t)
	fixture := newExecutorFixture()
	signer := mock.InitSimpleSigner()

	t.Log("signer of another account")
	_, err := fixture.executor.Execute(context.Background(), signer, common.NewTokenTransferRequest(mock.GetRandomAddress(), mock.GetRandomAddress(), mock.GetRandomAddress(), big.NewInt(1)), slog.Default())
	assert.True(errors.Is(err, constants.ErrMissingSigner))

	t.Log("nonce seed failure")
	fixture.collector.NonceError = errors.New("unreachable")
	outcome, err := fixture.executor.Execute(context.Background(), signer, common.NewTokenTransferRequest(mock.GetRandomAddress(), signer.GetAddress(), mock.GetRandomAddress(), big.NewInt(1)), slog.Default())
	assert.True(errors.Is(err, constants.ErrNonceSeedFailed))
	assert.Equal(enums.TX_STATUS_FAILED, outcome.Status)
	assert.Empty(fixture.transactor.GetBroadcasted())
}
