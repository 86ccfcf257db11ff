package payout

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math/big"
	"testing"
	"time"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/jonboulle/clockwork"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/ronin-capital/scholarpay/core/contracts"
	"github.com/ronin-capital/scholarpay/core/transaction"
	"github.com/ronin-capital/scholarpay/test/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	token    = ethcmn.HexToAddress("0x1000000000000000000000000000000000000001")
	scholar  = ethcmn.HexToAddress("0x2000000000000000000000000000000000000001")
	trainer  = ethcmn.HexToAddress("0x2000000000000000000000000000000000000002")
	manager  = ethcmn.HexToAddress("0x2000000000000000000000000000000000000003")
	donation = ethcmn.HexToAddress("0x2000000000000000000000000000000000000004")
	fee      = ethcmn.HexToAddress("0x2000000000000000000000000000000000000005")
)

func testRules() common.RuleSet {
	return common.RuleSet{
		Dialect: enums.SPLIT_DIALECT_PERCENTAGE,
		Payees: []common.PayeeRule{
			{Kind: enums.PAYOUT_KIND_SCHOLAR, Recipient: scholar, Percentage: common.MustPercentage(40)},
			{Kind: enums.PAYOUT_KIND_TRAINER, Recipient: trainer, Percentage: common.MustPercentage(10)},
			{Kind: enums.PAYOUT_KIND_MANAGER, Recipient: manager, Percentage: common.MustPercentage(44)},
		},
		Donations: []common.DonationRule{
			{Label: "guild", Recipient: donation, Percentage: common.MustPercentage(1)},
		},
		FeePercentage: common.MustPercentage(1),
		FeeRecipient:  fee,
	}
}

type fixture struct {
	collector  *mock.SimpleCollector
	transactor *mock.SimpleTransactor
	consent    *mock.StaticConsent
	summary    *common.PayoutSummary
	signers    mock.StaticSignerProvider
	logs       *bytes.Buffer
	options    *OrchestratorOptions
}

func newFixture(signers ...common.SignerEngine) *fixture {
	collector := mock.InitSimpleCollector()
	transactor := mock.InitSimpleTransactor()
	waiter := transaction.NewConfirmationWaiter(collector, &transaction.ConfirmationWaiterOptions{
		PollInterval: time.Second,
		Timeout:      time.Minute,
		Clock:        clockwork.NewFakeClock(),
	})
	executor := transaction.NewExecutor(
		transaction.NewBuilder(big.NewInt(constants.DEFAULT_CHAIN_ID), constants.DEFAULT_GAS_LIMIT, nil),
		transaction.NewNonceSequencer(collector),
		transactor,
		waiter,
		constants.DEFAULT_EXPLORER_URL,
	)
	logs := new(bytes.Buffer)
	f := &fixture{
		collector:  collector,
		transactor: transactor,
		consent:    &mock.StaticConsent{Answer: true},
		summary:    common.NewPayoutSummary("test", constants.DEFAULT_TOKEN_SYMBOL, 0),
		signers:    mock.NewStaticSignerProvider(signers...),
		logs:       logs,
	}
	f.options = &OrchestratorOptions{
		Collector: collector,
		Signers:   f.signers,
		Executor:  executor,
		Consent:   f.consent,
		Summary:   f.summary,
		Token:     token,
		Symbol:    constants.DEFAULT_TOKEN_SYMBOL,
		Logger:    slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	return f
}

func (f *fixture) orchestrator(t *testing.T) *Orchestrator {
	orchestrator, err := NewOrchestrator(f.options)
	require.Nil(t, err)
	return orchestrator
}

func transferRecipients(t *testing.T, txs []*types.Transaction) []ethcmn.Address {
	result := make([]ethcmn.Address, 0, len(txs))
	for _, tx := range txs {
		require.Equal(t, token, *tx.To())
		args, err := contracts.TokenAbi.Methods["transfer"].Inputs.Unpack(tx.Data()[4:])
		require.Nil(t, err)
		result = append(result, args[0].(ethcmn.Address))
	}
	return result
}

func TestPayoutOfAccount(t *testing.T) {
	assert := assert.New(t)
	signer := mock.InitSimpleSigner()
	f := newFixture(signer)
	f.collector.Balances[signer.GetAddress()] = big.NewInt(1000)
	f.collector.SetNonce(signer.GetAddress(), 12)

	result := f.orchestrator(t).Run(context.Background(), common.PayoutJob{Name: "scholar #1", Account: signer.GetAddress(), Rules: testRules()})
	assert.Equal(enums.ACCOUNT_STATE_COMPLETED, result.State)
	assert.Nil(result.Err)
	assert.Len(result.Lines, 5)
	assert.False(result.HasFailures())
	assert.Equal(1, f.consent.Calls())
	assert.Contains(f.consent.Messages[0], "940 SLP")

	t.Log("lines are sent in plan order with consecutive nonces")
	broadcasted := f.transactor.GetBroadcasted()
	assert.Equal([]ethcmn.Address{scholar, trainer, donation, fee, manager}, transferRecipients(t, broadcasted))
	for i, tx := range broadcasted {
		assert.Equal(uint64(12+i), tx.Nonce())
	}

	assert.Equal("Paid 1 managers, 420 SLP.\n"+
		"Paid 1 scholars, 400 SLP.\n"+
		"Paid 1 trainers, 100 SLP.\n"+
		"Donated to 2 organisations, 20 SLP.\n"+
		common.SUMMARY_DISCLAIMER, f.summary.Report())
}

func TestPayoutCanceled(t *testing.T) {
	assert := assert.New(t)
	signer := mock.InitSimpleSigner()
	f := newFixture(signer)
	f.collector.Balances[signer.GetAddress()] = big.NewInt(1000)
	f.consent.Answer = false

	result := f.orchestrator(t).Run(context.Background(), common.PayoutJob{Account: signer.GetAddress(), Rules: testRules()})
	assert.Equal(enums.ACCOUNT_STATE_CANCELLED, result.State)
	assert.True(errors.Is(result.Err, constants.ErrUserNotConfirmed))
	assert.Empty(f.transactor.GetBroadcasted())
	assert.True(f.summary.IsEmpty())
	assert.Contains(f.logs.String(), "payout canceled")

	t.Log("prompt failure cancels as well")
	f.consent.Err = errors.New("no tty")
	f.consent.Answer = true
	result = f.orchestrator(t).Run(context.Background(), common.PayoutJob{Account: signer.GetAddress(), Rules: testRules()})
	assert.Equal(enums.ACCOUNT_STATE_CANCELLED, result.State)
	assert.Empty(f.transactor.GetBroadcasted())
}

func TestPayoutZeroBalance(t *testing.T) {
	assert := assert.New(t)
	signer := mock.InitSimpleSigner()
	f := newFixture(signer)

	result := f.orchestrator(t).Run(context.Background(), common.PayoutJob{Account: signer.GetAddress(), Rules: testRules()})
	assert.Equal(enums.ACCOUNT_STATE_SKIPPED, result.State)
	assert.True(errors.Is(result.Err, constants.ErrZeroBalance))
	assert.Equal(0, f.consent.Calls())
	assert.Empty(f.transactor.GetBroadcasted())
	assert.Contains(f.logs.String(), "zero balance")
	assert.Contains(f.logs.String(), signer.GetAddress().Hex())
}

func TestPayoutRejected(t *testing.T) {
	assert := assert.New(t)
	signer := mock.InitSimpleSigner()
	f := newFixture(signer)
	f.collector.Balances[signer.GetAddress()] = big.NewInt(500)

	t.Log("negative manager payout")
	rules := testRules()
	rules.Payees[2].Percentage = common.MustPercentage(1)
	result := f.orchestrator(t).Run(context.Background(), common.PayoutJob{Account: signer.GetAddress(), Rules: rules})
	assert.Equal(enums.ACCOUNT_STATE_REJECTED, result.State)
	assert.True(errors.Is(result.Err, constants.ErrNegativeManagerPayout))
	assert.Contains(f.logs.String(), "manager is receiving a negative payment of -5")

	t.Log("invalid configuration carried in the job")
	result = f.orchestrator(t).Run(context.Background(), common.PayoutJob{Account: signer.GetAddress(), RulesError: constants.ErrInvalidSplitRules})
	assert.Equal(enums.ACCOUNT_STATE_REJECTED, result.State)

	t.Log("missing signer")
	other := mock.GetRandomAddress()
	f.collector.Balances[other] = big.NewInt(500)
	result = f.orchestrator(t).Run(context.Background(), common.PayoutJob{Account: other, Rules: testRules()})
	assert.Equal(enums.ACCOUNT_STATE_REJECTED, result.State)
	assert.True(errors.Is(result.Err, constants.ErrMissingSigner))

	assert.Equal(0, f.consent.Calls())
	assert.Empty(f.transactor.GetBroadcasted())
}

func TestPayoutPreview(t *testing.T) {
	assert := assert.New(t)
	account := mock.GetRandomAddress()
	f := newFixture()
	f.collector.Balances[account] = big.NewInt(1000)
	f.options.DryRun = true
	f.options.Executor = nil
	f.options.Consent = nil

	result := f.orchestrator(t).Run(context.Background(), common.PayoutJob{Account: account, Rules: testRules()})
	assert.Equal(enums.ACCOUNT_STATE_PREVIEWED, result.State)
	require.NotNil(t, result.Plan)
	assert.Equal(int64(940), result.Plan.Total().Int64())
	assert.Empty(result.Lines)
	assert.True(f.summary.IsEmpty())
}

func TestPayoutPartialFailure(t *testing.T) {
	assert := assert.New(t)
	signer := mock.InitSimpleSigner()
	f := newFixture(signer)
	f.collector.Balances[signer.GetAddress()] = big.NewInt(1000)

	calls := 0
	f.transactor.BroadcastFunc = func(tx *types.Transaction) error {
		calls++
		if calls == 2 {
			return errors.New("connection reset")
		}
		return nil
	}

	result := f.orchestrator(t).Run(context.Background(), common.PayoutJob{Account: signer.GetAddress(), Rules: testRules()})
	assert.Equal(enums.ACCOUNT_STATE_COMPLETED, result.State)
	assert.Nil(result.Err)
	assert.Len(result.Lines, 5)
	failed := result.GetFailedLines()
	assert.Len(failed, 1)
	assert.Equal(enums.PAYOUT_KIND_TRAINER, failed[0].Line.Kind)
	assert.True(errors.Is(failed[0].Outcome.Err, constants.ErrOperationBroadcastFailed))
	assert.Len(f.transactor.GetBroadcasted(), 4)

	t.Log("failed line is not part of the summary")
	assert.NotContains(f.summary.GetRecordedRoles(), enums.SUMMARY_ROLE_TRAINER)
	assert.Contains(f.summary.GetRecordedRoles(), enums.SUMMARY_ROLE_MANAGER)
}

func TestPayoutAbortedOnNonceFailure(t *testing.T) {
	assert := assert.New(t)
	signer := mock.InitSimpleSigner()
	f := newFixture(signer)
	f.collector.Balances[signer.GetAddress()] = big.NewInt(1000)
	f.collector.NonceError = errors.New("rpc down")

	result := f.orchestrator(t).Run(context.Background(), common.PayoutJob{Account: signer.GetAddress(), Rules: testRules()})
	assert.Equal(enums.ACCOUNT_STATE_COMPLETED, result.State)
	assert.True(errors.Is(result.Err, constants.ErrNonceSeedFailed))
	assert.Len(result.GetFailedLines(), 5)
	assert.Equal(1, f.collector.NonceCalls)
	assert.Empty(f.transactor.GetBroadcasted())
}

func TestRunAllContinuesAfterFailedAccount(t *testing.T) {
	assert := assert.New(t)
	first, second := mock.InitSimpleSigner(), mock.InitSimpleSigner()
	f := newFixture(first, second)
	f.collector.BalanceErrors[first.GetAddress()] = errors.New("timeout")
	f.collector.Balances[second.GetAddress()] = big.NewInt(1000)

	results := f.orchestrator(t).RunAll(context.Background(), []common.PayoutJob{
		{Account: first.GetAddress(), Rules: testRules()},
		{Account: second.GetAddress(), Rules: testRules()},
	})
	assert.Len(results, 2)
	assert.Equal(enums.ACCOUNT_STATE_SKIPPED, results[0].State)
	assert.True(errors.Is(results[0].Err, constants.ErrChainRead))
	assert.Equal(enums.ACCOUNT_STATE_COMPLETED, results[1].State)
	assert.Len(f.transactor.GetBroadcasted(), 5)
	assert.Equal(0, results.CountFailedLines())
}

func TestRunAfterCancellation(t *testing.T) {
	assert := assert.New(t)
	signer := mock.InitSimpleSigner()
	f := newFixture(signer)
	f.collector.Balances[signer.GetAddress()] = big.NewInt(1000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := f.orchestrator(t).Run(ctx, common.PayoutJob{Account: signer.GetAddress(), Rules: testRules()})
	assert.Len(result.GetFailedLines(), 5)
	assert.True(errors.Is(result.Lines[0].Outcome.Err, constants.ErrExecutePayoutsUserTerminated))
	assert.Empty(f.transactor.GetBroadcasted())
}

func TestNewOrchestratorValidation(t *testing.T) {
	assert := assert.New(t)

	_, err := NewOrchestrator(&OrchestratorOptions{})
	assert.True(errors.Is(err, constants.ErrMissingCollectorEngine))

	f := newFixture()
	f.options.Consent = nil
	_, err = NewOrchestrator(f.options)
	assert.True(errors.Is(err, constants.ErrMissingConsentProvider))
}
