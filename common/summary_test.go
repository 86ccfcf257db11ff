package common

import (
	"math/big"
	"sync"
	"testing"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/stretchr/testify/assert"
)

var (
	scholarAddress  = ethcmn.HexToAddress("0x1000000000000000000000000000000000000001")
	trainerAddress  = ethcmn.HexToAddress("0x1000000000000000000000000000000000000002")
	managerAddress  = ethcmn.HexToAddress("0x1000000000000000000000000000000000000003")
	donationAddress = ethcmn.HexToAddress("0x1000000000000000000000000000000000000004")
	feeAddress      = ethcmn.HexToAddress("0x1000000000000000000000000000000000000005")
)

func TestPayoutSummaryReport(t *testing.T) {
	assert := assert.New(t)
	summary := NewPayoutSummary("run", "SLP", 0)

	for _, line := range []PayoutLine{
		{Kind: enums.PAYOUT_KIND_SCHOLAR, Recipient: scholarAddress, Amount: big.NewInt(400)},
		{Kind: enums.PAYOUT_KIND_TRAINER, Recipient: trainerAddress, Amount: big.NewInt(100)},
		{Kind: enums.PAYOUT_KIND_DONATION, Recipient: donationAddress, Amount: big.NewInt(10)},
		{Kind: enums.PAYOUT_KIND_FEE, Recipient: feeAddress, Amount: big.NewInt(10)},
		{Kind: enums.PAYOUT_KIND_MANAGER, Recipient: managerAddress, Amount: big.NewInt(420)},
	} {
		summary.RecordLine(line)
	}

	expected := "Paid 1 managers, 420 SLP.\n" +
		"Paid 1 scholars, 400 SLP.\n" +
		"Paid 1 trainers, 100 SLP.\n" +
		"Donated to 2 organisations, 20 SLP.\n" +
		SUMMARY_DISCLAIMER
	assert.Equal(expected, summary.Report())
}

func TestPayoutSummaryDeduplicatesAddressesPerRole(t *testing.T) {
	assert := assert.New(t)
	summary := NewPayoutSummary("run", "SLP", 0)

	summary.Record(enums.SUMMARY_ROLE_MANAGER, managerAddress, big.NewInt(5))
	summary.Record(enums.SUMMARY_ROLE_MANAGER, managerAddress, big.NewInt(7))
	// same address in a different role is counted there too
	summary.Record(enums.SUMMARY_ROLE_SCHOLAR, managerAddress, big.NewInt(3))

	report := summary.Snapshot()
	manager, ok := report.GetRole(enums.SUMMARY_ROLE_MANAGER)
	assert.True(ok)
	assert.Equal(1, manager.Count)
	assert.Equal("12", manager.Total)

	scholar, ok := report.GetRole(enums.SUMMARY_ROLE_SCHOLAR)
	assert.True(ok)
	assert.Equal(1, scholar.Count)
	assert.Equal(int64(3), scholar.Amount.Int64())

	_, ok = report.GetRole(enums.SUMMARY_ROLE_TRAINER)
	assert.False(ok)
}

func TestPayoutSummaryIgnoresNonPositive(t *testing.T) {
	assert := assert.New(t)
	summary := NewPayoutSummary("run", "SLP", 0)

	summary.Record(enums.SUMMARY_ROLE_MANAGER, managerAddress, big.NewInt(0))
	summary.Record(enums.SUMMARY_ROLE_MANAGER, managerAddress, nil)
	assert.True(summary.IsEmpty())
	assert.Equal(SUMMARY_DISCLAIMER, summary.Report())
}

func TestPayoutSummaryClaimLine(t *testing.T) {
	assert := assert.New(t)
	summary := NewPayoutSummary("run", "SLP", 0)

	summary.RecordLine(PayoutLine{Kind: enums.PAYOUT_KIND_CLAIM, Recipient: scholarAddress, Amount: big.NewInt(50)})
	summary.RecordLine(PayoutLine{Kind: enums.PAYOUT_KIND_CLAIM, Recipient: trainerAddress, Amount: big.NewInt(25)})
	assert.Equal("Claimed 75 SLP from 2 accounts.\n"+SUMMARY_DISCLAIMER, summary.Report())
	assert.Equal([]enums.ESummaryRole{enums.SUMMARY_ROLE_CLAIM}, summary.GetRecordedRoles())
}

func TestPayoutSummaryConcurrentRecord(t *testing.T) {
	assert := assert.New(t)
	summary := NewPayoutSummary("run", "SLP", 0)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			addr := ethcmn.BigToAddress(big.NewInt(int64(i % 10)))
			summary.Record(enums.SUMMARY_ROLE_CLAIM, addr, big.NewInt(1))
		}(i)
	}
	wg.Wait()

	claim, ok := summary.Snapshot().GetRole(enums.SUMMARY_ROLE_CLAIM)
	assert.True(ok)
	assert.Equal(10, claim.Count)
	assert.Equal("100", claim.Total)
}
