package common

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/samber/lo"
)

const (
	PERCENTAGE_PRECISION = 100                            // two decimal places
	PERCENTAGE_DIVISOR   = 100 * PERCENTAGE_PRECISION     // 100.00%
	MAX_PERCENTAGE       = Percentage(PERCENTAGE_DIVISOR) // whole balance
)

// Percentage is a fixed point percentage in basis points, 4400 = 44%
type Percentage int64

func PercentageFromFloat(value float64) (Percentage, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 || value > 100 {
		return 0, errors.Join(constants.ErrInvalidPercentage, fmt.Errorf("percentage %v out of range <0, 100>", value))
	}
	return Percentage(math.Round(value * PERCENTAGE_PRECISION)), nil
}

func MustPercentage(value float64) Percentage {
	p, err := PercentageFromFloat(value)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Percentage) String() string {
	return fmt.Sprintf("%d.%02d%%", int64(p)/PERCENTAGE_PRECISION, int64(p)%PERCENTAGE_PRECISION)
}

func (p Percentage) Float64() float64 {
	return float64(p) / PERCENTAGE_PRECISION
}

// Of returns floor(amount * p / 100)
func (p Percentage) Of(amount *big.Int) *big.Int {
	result := new(big.Int).Mul(amount, big.NewInt(int64(p)))
	// Quo truncates toward zero, Div floors for negative percentages
	return result.Div(result, big.NewInt(PERCENTAGE_DIVISOR))
}

// RoundedOf returns amount * p / 100 rounded to nearest, ties to even
func (p Percentage) RoundedOf(amount *big.Int) *big.Int {
	numerator := new(big.Int).Mul(amount, big.NewInt(int64(p)))
	divisor := big.NewInt(PERCENTAGE_DIVISOR)
	quotient, remainder := new(big.Int).DivMod(numerator, divisor, new(big.Int))

	switch new(big.Int).Lsh(remainder, 1).Cmp(divisor) {
	case 1:
		quotient.Add(quotient, big.NewInt(1))
	case 0:
		if quotient.Bit(0) == 1 {
			quotient.Add(quotient, big.NewInt(1))
		}
	}
	return quotient
}

type PayeeRule struct {
	Kind       enums.EPayoutKind `json:"kind"`
	Label      string            `json:"label,omitempty"`
	Recipient  ethcmn.Address    `json:"recipient"`
	Percentage Percentage        `json:"percentage"`
	// legacy dialect only, added on top of the percentage share
	FixedAmount *big.Int `json:"fixed_amount,omitempty"`
}

type DonationRule struct {
	Label      string         `json:"label,omitempty"`
	Recipient  ethcmn.Address `json:"recipient"`
	Percentage Percentage     `json:"percentage"`
}

type RuleSet struct {
	Dialect       enums.ESplitDialect `json:"dialect"`
	Payees        []PayeeRule         `json:"payees"`
	Donations     []DonationRule      `json:"donations,omitempty"`
	FeePercentage Percentage          `json:"fee_percentage"`
	FeeRecipient  ethcmn.Address      `json:"fee_recipient"`
}

func (rs *RuleSet) GetPayeesOfKind(kind enums.EPayoutKind) []PayeeRule {
	return lo.Filter(rs.Payees, func(rule PayeeRule, _ int) bool {
		return rule.Kind == kind
	})
}

func (rs *RuleSet) GetDeductiblePercentage() Percentage {
	return rs.FeePercentage + lo.SumBy(rs.Donations, func(d DonationRule) Percentage {
		return d.Percentage
	})
}

type PayoutLine struct {
	Kind      enums.EPayoutKind `json:"kind"`
	Label     string            `json:"label,omitempty"`
	Recipient ethcmn.Address    `json:"recipient"`
	Amount    *big.Int          `json:"amount"`
}

func (line *PayoutLine) GetLabel() string {
	if line.Label != "" {
		return line.Label
	}
	return string(line.Kind)
}

// SplitPlan is immutable once computed.
type SplitPlan struct {
	Account ethcmn.Address      `json:"account"`
	Balance *big.Int            `json:"balance"`
	Dialect enums.ESplitDialect `json:"dialect"`
	Lines   []PayoutLine        `json:"lines"`
	// lines dropped for being below one unit
	Skipped []PayoutLine `json:"skipped,omitempty"`
}

func (plan *SplitPlan) Total() *big.Int {
	return lo.Reduce(plan.Lines, func(acc *big.Int, line PayoutLine, _ int) *big.Int {
		return acc.Add(acc, line.Amount)
	}, new(big.Int))
}

func (plan *SplitPlan) IsEmpty() bool {
	return len(plan.Lines) == 0
}

// PayoutJob is the normalized input of a single scholar account payout.
type PayoutJob struct {
	Name    string         `json:"name"`
	Account ethcmn.Address `json:"account"`
	Rules   RuleSet        `json:"rules"`
	// validation errors are carried to the orchestrator to reject the account instead of the whole run
	RulesError error `json:"-"`
}

type LineResult struct {
	Line    PayoutLine         `json:"line"`
	Outcome TransactionOutcome `json:"outcome"`
}

func (lr *LineResult) IsSuccess() bool {
	return lr.Outcome.Status == enums.TX_STATUS_CONFIRMED
}

type AccountPayoutResult struct {
	Name    string                    `json:"name"`
	Account ethcmn.Address            `json:"account"`
	State   enums.EAccountPayoutState `json:"state"`
	Plan    *SplitPlan                `json:"plan,omitempty"`
	Lines   []LineResult              `json:"lines,omitempty"`
	Err     error                     `json:"-"`
}

func (r *AccountPayoutResult) GetFailedLines() []LineResult {
	return lo.Filter(r.Lines, func(lr LineResult, _ int) bool {
		return lr.Outcome.Status == enums.TX_STATUS_FAILED || lr.Outcome.Status == enums.TX_STATUS_TIMED_OUT
	})
}

func (r *AccountPayoutResult) HasFailures() bool {
	return len(r.GetFailedLines()) > 0
}

func (r *AccountPayoutResult) ToReports(runId string) []PayoutReport {
	return lo.Map(r.Lines, func(lr LineResult, _ int) PayoutReport {
		return NewPayoutReport(runId, r.Account, lr.Line, &lr.Outcome)
	})
}

type AccountPayoutResults []AccountPayoutResult

func (results AccountPayoutResults) ToReports(runId string) []PayoutReport {
	return lo.FlatMap(results, func(r AccountPayoutResult, _ int) []PayoutReport {
		return r.ToReports(runId)
	})
}

func (results AccountPayoutResults) CountFailedLines() int {
	return lo.SumBy(results, func(r AccountPayoutResult) int {
		return len(r.GetFailedLines())
	})
}

// ToPlannedReports lists every planned line, including lines of accounts which sent nothing
func (results AccountPayoutResults) ToPlannedReports(runId string) []PayoutReport {
	return lo.FlatMap(results, func(r AccountPayoutResult, _ int) []PayoutReport {
		if r.Plan == nil {
			return []PayoutReport{}
		}
		return lo.Map(r.Plan.Lines, func(line PayoutLine, _ int) PayoutReport {
			return NewPayoutReport(runId, r.Account, line, nil)
		})
	})
}

func (results AccountPayoutResults) CountByState(state enums.EAccountPayoutState) int {
	return lo.CountBy(results, func(r AccountPayoutResult) bool {
		return r.State == state
	})
}
