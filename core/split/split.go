package split

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
)

const (
	FEE_LABEL      = "platform fee"
	DONATION_LABEL = "donation"
)

var (
	minimumUnit = big.NewInt(1)
	// legacy configurations never paid out donations of a single unit
	legacyMinimumDonation = big.NewInt(2)
)

// ComputePlan splits balance of the account according to rules. It is pure, identical inputs yield identical plans.
func ComputePlan(account ethcmn.Address, balance *big.Int, rules *common.RuleSet) (*common.SplitPlan, error) {
	if rules == nil {
		return nil, errors.Join(constants.ErrInvalidSplitRules, errors.New("missing rules"))
	}
	if balance == nil {
		balance = new(big.Int)
	}
	if balance.Sign() < 0 {
		return nil, errors.Join(constants.ErrInvalidSplitRules, fmt.Errorf("negative balance %s", balance))
	}
	if err := Validate(rules); err != nil {
		return nil, err
	}

	plan := &common.SplitPlan{
		Account: account,
		Balance: new(big.Int).Set(balance),
		Dialect: rules.Dialect,
		Lines:   []common.PayoutLine{},
	}
	if balance.Sign() == 0 {
		return plan, nil
	}

	var err error
	switch rules.Dialect {
	case enums.SPLIT_DIALECT_LEGACY:
		err = computeLegacyLines(plan, rules)
	default:
		err = computePercentageLines(plan, rules)
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func Validate(rules *common.RuleSet) error {
	if !slices.Contains(enums.SUPPORTED_SPLIT_DIALECTS, rules.Dialect) {
		return errors.Join(constants.ErrInvalidSplitRules, fmt.Errorf("unsupported dialect '%s'", rules.Dialect))
	}
	if managers := len(rules.GetPayeesOfKind(enums.PAYOUT_KIND_MANAGER)); managers != 1 {
		return errors.Join(constants.ErrInvalidSplitRules, fmt.Errorf("expected exactly one manager, found %d", managers))
	}
	if rules.Dialect == enums.SPLIT_DIALECT_LEGACY {
		if scholars := len(rules.GetPayeesOfKind(enums.PAYOUT_KIND_SCHOLAR)); scholars != 1 {
			return errors.Join(constants.ErrInvalidSplitRules, fmt.Errorf("expected exactly one scholar, found %d", scholars))
		}
	}

	if rules.FeePercentage < 0 || rules.FeePercentage > common.MAX_PERCENTAGE {
		return errors.Join(constants.ErrInvalidPercentage, fmt.Errorf("fee %s out of range", rules.FeePercentage))
	}
	total := common.Percentage(0)
	for _, payee := range rules.Payees {
		if payee.Percentage < 0 || payee.Percentage > common.MAX_PERCENTAGE {
			return errors.Join(constants.ErrInvalidPercentage, fmt.Errorf("%s %s out of range", payee.Kind, payee.Percentage))
		}
		if payee.FixedAmount != nil && payee.FixedAmount.Sign() < 0 {
			return errors.Join(constants.ErrInvalidSplitRules, fmt.Errorf("%s has negative fixed amount %s", payee.Kind, payee.FixedAmount))
		}
		if payee.FixedAmount != nil && payee.FixedAmount.Sign() > 0 && rules.Dialect != enums.SPLIT_DIALECT_LEGACY {
			return errors.Join(constants.ErrInvalidSplitRules, fmt.Errorf("fixed amounts are supported only by the %s dialect", enums.SPLIT_DIALECT_LEGACY))
		}
		if rules.Dialect == enums.SPLIT_DIALECT_LEGACY && payee.Kind == enums.PAYOUT_KIND_MANAGER {
			continue // manager receives the remainder
		}
		total += payee.Percentage
	}
	for _, donation := range rules.Donations {
		if donation.Percentage < 0 || donation.Percentage > common.MAX_PERCENTAGE {
			return errors.Join(constants.ErrInvalidPercentage, fmt.Errorf("donation %s out of range", donation.Percentage))
		}
	}
	if total > common.MAX_PERCENTAGE {
		return errors.Join(constants.ErrInvalidSplitRules, fmt.Errorf("payees are allocated %s of the balance", total))
	}
	return nil
}

func orderedPayees(rules *common.RuleSet) []common.PayeeRule {
	payees := slices.Clone(rules.Payees)
	slices.SortStableFunc(payees, func(a, b common.PayeeRule) int {
		return a.Kind.ToPriority() - b.Kind.ToPriority()
	})
	return payees
}

func getFeeRecipient(rules *common.RuleSet) ethcmn.Address {
	if rules.FeeRecipient != (ethcmn.Address{}) {
		return rules.FeeRecipient
	}
	return ethcmn.HexToAddress(constants.PLATFORM_FEE_ADDRESS)
}

func getDonationLabel(donation common.DonationRule) string {
	if donation.Label != "" {
		return donation.Label
	}
	return DONATION_LABEL
}

// appendLine keeps lines of at least minimum amount, the rest goes to skipped
func appendLine(plan *common.SplitPlan, line common.PayoutLine, minimum *big.Int) {
	if line.Amount.Cmp(minimum) < 0 {
		plan.Skipped = append(plan.Skipped, line)
		return
	}
	plan.Lines = append(plan.Lines, line)
}

func appendFeeLine(plan *common.SplitPlan, rules *common.RuleSet) {
	if rules.FeePercentage == 0 {
		return
	}
	appendLine(plan, common.PayoutLine{
		Kind:      enums.PAYOUT_KIND_FEE,
		Label:     FEE_LABEL,
		Recipient: getFeeRecipient(rules),
		Amount:    rules.FeePercentage.Of(plan.Balance),
	}, minimumUnit)
}

func negativeManagerPayoutError(amount *big.Int) error {
	return errors.Join(constants.ErrNegativeManagerPayout, fmt.Errorf("manager is receiving a negative payment of %s", amount))
}
