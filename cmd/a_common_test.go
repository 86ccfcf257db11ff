package cmd

import (
	"errors"
	"math/big"
	"testing"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/ronin-capital/scholarpay/test/mock"
	"github.com/stretchr/testify/assert"
)

type failingReporter struct{}

func (failingReporter) ReportPayouts(reports []common.PayoutReport) error {
	return errors.New("disk full")
}

func (failingReporter) ReportSummary(summary *common.PayoutSummaryReport) error {
	return errors.New("disk full")
}

func TestWriteReports(t *testing.T) {
	assert := assert.New(t)

	summary := common.NewPayoutSummary("run", "SLP", 0)
	summary.Record(enums.SUMMARY_ROLE_SCHOLAR, mock.GetRandomAddress(), big.NewInt(10))
	reports := []common.PayoutReport{{RunId: "run", Amount: "10"}}

	reporter := &mock.MemoryReporter{}
	assert.True(writeReports(reporter, reports, summary))
	assert.Len(reporter.Reports, 1)
	assert.NotNil(reporter.Summary)

	t.Log("empty summary is not written")
	reporter = &mock.MemoryReporter{}
	assert.True(writeReports(reporter, reports, common.NewPayoutSummary("run", "SLP", 0)))
	assert.Nil(reporter.Summary)

	assert.False(writeReports(failingReporter{}, reports, summary))
}

func TestParseAccountsFilter(t *testing.T) {
	assert := assert.New(t)

	accounts, err := parseAccountsFilter(nil)
	assert.Nil(err)
	assert.Nil(accounts)

	accounts, err = parseAccountsFilter([]string{"ronin:1000000000000000000000000000000000000001", "0x1000000000000000000000000000000000000002"})
	assert.Nil(err)
	assert.Len(accounts, 2)

	_, err = parseAccountsFilter([]string{"ronin:xyz"})
	assert.True(errors.Is(err, constants.ErrInvalidAddress))
}

func TestFilterByAccount(t *testing.T) {
	assert := assert.New(t)

	first, second := mock.GetRandomAddress(), mock.GetRandomAddress()
	jobs := []common.PayoutJob{{Account: first}, {Account: second}}
	accountOf := func(job common.PayoutJob) ethcmn.Address { return job.Account }

	assert.Len(filterByAccount(jobs, nil, accountOf), 2)
	filtered := filterByAccount(jobs, []ethcmn.Address{second}, accountOf)
	assert.Len(filtered, 1)
	assert.Equal(second, filtered[0].Account)
	assert.Len(filterByAccount(jobs, []ethcmn.Address{}, accountOf), 0)
}

func TestLoadFailureExitCode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(common.EXIT_CONFIGURATION_LOAD_FAILURE, loadFailureExitCode(errors.Join(constants.ErrConfigurationValidationFailed, errors.New("x"))))
	assert.Equal(common.EXIT_SECRETS_LOAD_FAILURE, loadFailureExitCode(errors.Join(constants.ErrSecretsLoadFailed, errors.New("x"))))
	assert.Equal(common.EXIT_ENGINES_LOAD_FAILURE, loadFailureExitCode(errors.Join(constants.ErrCollectorLoadFailed, errors.New("x"))))
}

func TestConsentProvider(t *testing.T) {
	assert := assert.New(t)

	confirmed, err := getConsentProvider(true, false).Confirm("pay?")
	assert.Nil(err)
	assert.True(confirmed)

	t.Log("non interactive session never consents")
	confirmed, err = getConsentProvider(false, false).Confirm("pay?")
	assert.Nil(err)
	assert.False(confirmed)
}

func TestIsNewerVersion(t *testing.T) {
	assert := assert.New(t)

	available, latest := isNewerVersion("v999.0.0")
	assert.True(available)
	assert.Equal("v999.0.0", latest)

	available, _ = isNewerVersion(constants.VERSION)
	assert.False(available)
	available, _ = isNewerVersion("")
	assert.False(available)
	available, _ = isNewerVersion("not a version")
	assert.False(available)
}
