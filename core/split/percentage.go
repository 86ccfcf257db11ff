package split

import (
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants/enums"
)

// manager gets its percentage reduced by fee and donations, all shares are floored
func computePercentageLines(plan *common.SplitPlan, rules *common.RuleSet) error {
	var manager common.PayeeRule
	for _, payee := range orderedPayees(rules) {
		if payee.Kind == enums.PAYOUT_KIND_MANAGER {
			manager = payee
			continue
		}
		appendLine(plan, common.PayoutLine{
			Kind:      payee.Kind,
			Label:     payee.Label,
			Recipient: payee.Recipient,
			Amount:    payee.Percentage.Of(plan.Balance),
		}, minimumUnit)
	}

	for _, donation := range rules.Donations {
		appendLine(plan, common.PayoutLine{
			Kind:      enums.PAYOUT_KIND_DONATION,
			Label:     getDonationLabel(donation),
			Recipient: donation.Recipient,
			Amount:    donation.Percentage.Of(plan.Balance),
		}, minimumUnit)
	}

	appendFeeLine(plan, rules)

	managerAmount := (manager.Percentage - rules.GetDeductiblePercentage()).Of(plan.Balance)
	if managerAmount.Sign() < 0 {
		return negativeManagerPayoutError(managerAmount)
	}
	appendLine(plan, common.PayoutLine{
		Kind:      enums.PAYOUT_KIND_MANAGER,
		Label:     manager.Label,
		Recipient: manager.Recipient,
		Amount:    managerAmount,
	}, minimumUnit)
	return nil
}
