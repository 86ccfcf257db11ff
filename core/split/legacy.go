package split

import (
	"math/big"

	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants/enums"
)

// shares are rounded half to even and may carry a fixed addend, manager takes the remainder
func computeLegacyLines(plan *common.SplitPlan, rules *common.RuleSet) error {
	var manager common.PayeeRule
	for _, payee := range orderedPayees(rules) {
		if payee.Kind == enums.PAYOUT_KIND_MANAGER {
			manager = payee
			continue
		}
		amount := payee.Percentage.RoundedOf(plan.Balance)
		if payee.FixedAmount != nil {
			amount.Add(amount, payee.FixedAmount)
		}
		appendLine(plan, common.PayoutLine{
			Kind:      payee.Kind,
			Label:     payee.Label,
			Recipient: payee.Recipient,
			Amount:    amount,
		}, minimumUnit)
	}

	for _, donation := range rules.Donations {
		appendLine(plan, common.PayoutLine{
			Kind:      enums.PAYOUT_KIND_DONATION,
			Label:     getDonationLabel(donation),
			Recipient: donation.Recipient,
			Amount:    donation.Percentage.RoundedOf(plan.Balance),
		}, legacyMinimumDonation)
	}

	appendFeeLine(plan, rules)

	remainder := new(big.Int).Sub(plan.Balance, plan.Total())
	if remainder.Sign() < 0 {
		return negativeManagerPayoutError(remainder)
	}
	appendLine(plan, common.PayoutLine{
		Kind:      enums.PAYOUT_KIND_MANAGER,
		Label:     manager.Label,
		Recipient: manager.Recipient,
		Amount:    remainder,
	}, minimumUnit)
	return nil
}
