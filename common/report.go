package common

import (
	"math/big"
	"time"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/constants/enums"
)

type PayoutReport struct {
	RunId     string            `json:"run_id" csv:"run_id"`
	Timestamp time.Time         `json:"timestamp" csv:"timestamp"`
	Account   string            `json:"account" csv:"account"`
	Kind      enums.EPayoutKind `json:"kind" csv:"kind"`
	Label     string            `json:"label,omitempty" csv:"label"`
	Recipient string            `json:"recipient" csv:"recipient"`
	Amount    string            `json:"amount" csv:"amount"`
	Nonce     uint64            `json:"nonce" csv:"nonce"`
	TxHash    string            `json:"tx_hash,omitempty" csv:"tx_hash"`
	Status    enums.ETxStatus   `json:"status" csv:"status"`
	IsSuccess bool              `json:"success" csv:"success"`
	Note      string            `json:"note,omitempty" csv:"note"`
}

func NewPayoutReport(runId string, account ethcmn.Address, line PayoutLine, outcome *TransactionOutcome) PayoutReport {
	amount := line.Amount
	if amount == nil {
		amount = new(big.Int)
	}
	report := PayoutReport{
		RunId:     runId,
		Timestamp: time.Now(),
		Account:   account.Hex(),
		Kind:      line.Kind,
		Label:     line.Label,
		Recipient: line.Recipient.Hex(),
		Amount:    amount.String(),
		Status:    enums.TX_STATUS_PENDING,
	}
	if outcome != nil {
		report.Nonce = outcome.Nonce
		if outcome.Hash != (ethcmn.Hash{}) {
			report.TxHash = outcome.Hash.Hex()
		}
		report.Status = outcome.Status
		report.IsSuccess = outcome.IsSuccess()
		report.Note = outcome.GetErrorMessage()
	}
	return report
}

func (pr *PayoutReport) GetTableHeaders() []string {
	return []string{"Account", "Kind", "Recipient", "Amount", "Nonce", "Status", "Tx Hash", "Note"}
}

func (pr *PayoutReport) ToTableRowData(decimals int32) []string {
	amount, _ := new(big.Int).SetString(pr.Amount, 10)
	return []string{
		ShortenAddress(ethcmn.HexToAddress(pr.Account)),
		string(pr.Kind),
		ShortenAddress(ethcmn.HexToAddress(pr.Recipient)),
		FormatTokenAmount(amount, decimals),
		ToStringEmptyIfZero(pr.Nonce),
		string(pr.Status),
		pr.TxHash,
		pr.Note,
	}
}
