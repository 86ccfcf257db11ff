package common

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/stretchr/testify/assert"
)

func TestPercentageFromFloat(t *testing.T) {
	assert := assert.New(t)

	p, err := PercentageFromFloat(44)
	assert.Nil(err)
	assert.Equal(Percentage(4400), p)
	assert.Equal("44.00%", p.String())

	p, err = PercentageFromFloat(0.125)
	assert.Nil(err)
	assert.Equal(Percentage(13), p)

	_, err = PercentageFromFloat(-1)
	assert.True(errors.Is(err, constants.ErrInvalidPercentage))
	_, err = PercentageFromFloat(100.01)
	assert.True(errors.Is(err, constants.ErrInvalidPercentage))
}

func TestPercentageOf(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int64(420), MustPercentage(42).Of(big.NewInt(1000)).Int64())
	assert.Equal(int64(0), MustPercentage(1).Of(big.NewInt(99)).Int64())
	assert.Equal(int64(9), MustPercentage(9.99).Of(big.NewInt(99)).Int64())
	assert.Equal(int64(-5), Percentage(-50).Of(big.NewInt(1000)).Int64())
}

func TestPercentageRoundedOf(t *testing.T) {
	assert := assert.New(t)

	t.Log("rounds to nearest, ties to even")
	assert.Equal(int64(2), MustPercentage(50).RoundedOf(big.NewInt(3)).Int64()) // 1.5 -> 2
	assert.Equal(int64(2), MustPercentage(30).RoundedOf(big.NewInt(5)).Int64()) // 1.5 -> 2
	assert.Equal(int64(2), MustPercentage(50).RoundedOf(big.NewInt(5)).Int64()) // 2.5 -> 2
	assert.Equal(int64(4), MustPercentage(50).RoundedOf(big.NewInt(7)).Int64()) // 3.5 -> 4
	assert.Equal(int64(3), MustPercentage(10).RoundedOf(big.NewInt(27)).Int64()) // 2.7 -> 3
	assert.Equal(int64(500), MustPercentage(50).RoundedOf(big.NewInt(1000)).Int64())
}

func TestRuleSetDeductible(t *testing.T) {
	assert := assert.New(t)

	rules := RuleSet{
		FeePercentage: MustPercentage(1),
		Donations: []DonationRule{
			{Percentage: MustPercentage(1)},
			{Percentage: MustPercentage(0.5)},
		},
		Payees: []PayeeRule{
			{Kind: enums.PAYOUT_KIND_SCHOLAR},
			{Kind: enums.PAYOUT_KIND_MANAGER},
		},
	}
	assert.Equal(Percentage(250), rules.GetDeductiblePercentage())
	assert.Len(rules.GetPayeesOfKind(enums.PAYOUT_KIND_MANAGER), 1)
	assert.Len(rules.GetPayeesOfKind(enums.PAYOUT_KIND_TRAINER), 0)
}

func TestSplitPlanTotal(t *testing.T) {
	assert := assert.New(t)

	plan := SplitPlan{
		Balance: big.NewInt(1000),
		Lines: []PayoutLine{
			{Kind: enums.PAYOUT_KIND_SCHOLAR, Amount: big.NewInt(400)},
			{Kind: enums.PAYOUT_KIND_MANAGER, Amount: big.NewInt(420)},
		},
	}
	assert.Equal(int64(820), plan.Total().Int64())
	assert.False(plan.IsEmpty())
	assert.True((&SplitPlan{}).IsEmpty())
	assert.Equal(int64(0), (&SplitPlan{}).Total().Int64())
}

func TestAccountPayoutResultsReports(t *testing.T) {
	assert := assert.New(t)

	account := MustParseAccount("ronin:1000000000000000000000000000000000000001")
	scholar := MustParseAccount("ronin:1000000000000000000000000000000000000002")
	manager := MustParseAccount("ronin:1000000000000000000000000000000000000003")
	lines := []PayoutLine{
		{Kind: enums.PAYOUT_KIND_SCHOLAR, Recipient: scholar, Amount: big.NewInt(60)},
		{Kind: enums.PAYOUT_KIND_MANAGER, Recipient: manager, Amount: big.NewInt(40)},
	}
	results := AccountPayoutResults{
		{
			Account: account,
			State:   enums.ACCOUNT_STATE_COMPLETED,
			Plan:    &SplitPlan{Account: account, Balance: big.NewInt(100), Lines: lines},
			Lines: []LineResult{
				{Line: lines[0], Outcome: TransactionOutcome{Nonce: 1, Status: enums.TX_STATUS_CONFIRMED}},
				{Line: lines[1], Outcome: TransactionOutcome{Nonce: 2, Status: enums.TX_STATUS_FAILED}},
			},
		},
		{Account: scholar, State: enums.ACCOUNT_STATE_SKIPPED},
	}

	t.Log("planned reports contain every line without outcome")
	planned := results.ToPlannedReports("run")
	assert.Len(planned, 2)
	assert.Equal(enums.TX_STATUS_PENDING, planned[0].Status)
	assert.Equal("60", planned[0].Amount)

	t.Log("executed reports carry outcomes")
	reports := results.ToReports("run")
	assert.Len(reports, 2)
	assert.True(reports[0].IsSuccess)
	assert.False(reports[1].IsSuccess)
	assert.Equal(uint64(2), reports[1].Nonce)

	assert.Equal(1, results.CountFailedLines())
	assert.Equal(1, results.CountByState(enums.ACCOUNT_STATE_SKIPPED))
}
