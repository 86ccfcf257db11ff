package utils

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/stretchr/testify/assert"
)

var (
	account   = common.MustParseAccount("ronin:1000000000000000000000000000000000000001")
	scholar   = common.MustParseAccount("ronin:1000000000000000000000000000000000000002")
	manager   = common.MustParseAccount("ronin:1000000000000000000000000000000000000003")
	secondAcc = common.MustParseAccount("ronin:1000000000000000000000000000000000000004")
)

func TestGetNonEmptyIndexes(t *testing.T) {
	assert := assert.New(t)

	headers := []string{"a", "b", "c"}
	data := [][]string{
		{"1", "", "3"},
		{"1", "", ""},
	}
	assert.Equal([]int{0, 2}, getNonEmptyIndexes(headers, data))
	assert.Equal([]string{"1", "3"}, getColumnsByIndexes(data[0], []int{0, 2}))
	assert.Equal([]any{"-", "-", "-"}, fillRow("-", headers))
}

func TestRenderPayoutPlans(t *testing.T) {
	assert := assert.New(t)

	results := common.AccountPayoutResults{
		{
			Name:    "alice",
			Account: account,
			State:   enums.ACCOUNT_STATE_PREVIEWED,
			Plan: &common.SplitPlan{
				Account: account,
				Balance: big.NewInt(100),
				Lines: []common.PayoutLine{
					{Kind: enums.PAYOUT_KIND_SCHOLAR, Recipient: scholar, Amount: big.NewInt(60)},
					{Kind: enums.PAYOUT_KIND_MANAGER, Recipient: manager, Amount: big.NewInt(39)},
				},
			},
		},
		{
			Name:    "bob",
			Account: secondAcc,
			State:   enums.ACCOUNT_STATE_SKIPPED,
			Err:     errors.Join(constants.ErrInsufficientBalance, errors.New("deficit 5")),
		},
	}

	t.Log("plans list every line and the reason of skipped accounts")
	var buf bytes.Buffer
	renderPayoutPlans(&buf, results, "SLP", 0)
	out := buf.String()
	assert.Contains(out, "Payouts (SLP)")
	assert.Contains(out, "alice")
	assert.Contains(out, "60")
	assert.Contains(out, "39")
	assert.Contains(out, "deficit 5")
	assert.Contains(out, string(enums.ACCOUNT_STATE_SKIPPED))
}

func TestRenderReports(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	renderReports(&buf, "Claims", nil, 0)
	assert.Contains(buf.String(), "nothing to report")

	buf.Reset()
	reports := []common.PayoutReport{
		{Account: account.Hex(), Kind: enums.PAYOUT_KIND_SCHOLAR, Recipient: scholar.Hex(), Amount: "60", Nonce: 3, Status: enums.TX_STATUS_CONFIRMED, IsSuccess: true},
		{Account: account.Hex(), Kind: enums.PAYOUT_KIND_MANAGER, Recipient: manager.Hex(), Amount: "39", Nonce: 4, Status: enums.TX_STATUS_FAILED, Note: "reverted"},
	}
	renderReports(&buf, "Results", reports, 0)
	out := buf.String()
	assert.Contains(out, "Results")
	assert.Contains(out, "reverted")
	assert.Contains(out, "1 of 2 succeeded")
}

func TestRenderSummary(t *testing.T) {
	assert := assert.New(t)

	summary := common.NewPayoutSummary("run", "SLP", 0)
	summary.Record(enums.SUMMARY_ROLE_SCHOLAR, scholar, big.NewInt(60))
	summary.Record(enums.SUMMARY_ROLE_MANAGER, manager, big.NewInt(39))

	var buf bytes.Buffer
	renderSummary(&buf, summary.Snapshot())
	out := buf.String()
	assert.Contains(out, "Summary of run run")
	assert.Contains(out, "60 SLP")
	assert.Contains(out, "39 SLP")
	assert.Contains(out, "do not use it as a ledger of truth")
}
