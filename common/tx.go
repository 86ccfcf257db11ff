package common

import (
	"errors"
	"fmt"
	"math/big"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
)

// TransferRequest describes what a single transaction should do, the builder turns it into calldata.
type TransferRequest struct {
	Kind enums.ETransferKind
	From ethcmn.Address
	To   ethcmn.Address
	// token or nft contract, unused for native transfers
	Contract ethcmn.Address
	Amount   *big.Int
	TokenId  *big.Int
	// raw calldata for contract calls
	Data []byte
}

func NewTokenTransferRequest(token ethcmn.Address, from ethcmn.Address, to ethcmn.Address, amount *big.Int) TransferRequest {
	return TransferRequest{
		Kind:     enums.TRANSFER_KIND_TOKEN,
		From:     from,
		To:       to,
		Contract: token,
		Amount:   amount,
	}
}

func NewNftTransferRequest(contract ethcmn.Address, from ethcmn.Address, to ethcmn.Address, tokenId *big.Int) TransferRequest {
	return TransferRequest{
		Kind:     enums.TRANSFER_KIND_NFT,
		From:     from,
		To:       to,
		Contract: contract,
		TokenId:  tokenId,
	}
}

func NewContractCallRequest(contract ethcmn.Address, from ethcmn.Address, data []byte) TransferRequest {
	return TransferRequest{
		Kind:     enums.TRANSFER_KIND_CONTRACT,
		From:     from,
		Contract: contract,
		Data:     data,
	}
}

func (r *TransferRequest) String() string {
	switch r.Kind {
	case enums.TRANSFER_KIND_NFT:
		return fmt.Sprintf("nft #%s %s -> %s", r.TokenId, r.From.Hex(), r.To.Hex())
	case enums.TRANSFER_KIND_CONTRACT:
		return fmt.Sprintf("call %s from %s", r.Contract.Hex(), r.From.Hex())
	default:
		return fmt.Sprintf("%s %s %s -> %s", r.Kind, r.Amount, r.From.Hex(), r.To.Hex())
	}
}

// TransactionOutcome moves from pending to exactly one terminal status.
type TransactionOutcome struct {
	Hash   ethcmn.Hash     `json:"hash"`
	Nonce  uint64          `json:"nonce"`
	Status enums.ETxStatus `json:"status"`
	Err    error           `json:"-"`
}

func NewPendingOutcome(hash ethcmn.Hash, nonce uint64) TransactionOutcome {
	return TransactionOutcome{
		Hash:   hash,
		Nonce:  nonce,
		Status: enums.TX_STATUS_PENDING,
	}
}

// NewFailedOutcome is used when the transaction never reached the chain.
func NewFailedOutcome(nonce uint64, err error) TransactionOutcome {
	return TransactionOutcome{
		Nonce:  nonce,
		Status: enums.TX_STATUS_FAILED,
		Err:    err,
	}
}

func (o *TransactionOutcome) Resolve(status enums.ETxStatus, err error) error {
	if o.Status.IsTerminal() {
		return errors.Join(constants.ErrOperationAlreadyResolved, fmt.Errorf("transaction %s is already %s", o.Hash.Hex(), o.Status))
	}
	if !status.IsTerminal() {
		return fmt.Errorf("can not resolve transaction to non terminal status '%s'", status)
	}
	o.Status = status
	o.Err = err
	return nil
}

func (o *TransactionOutcome) IsSuccess() bool {
	return o.Status == enums.TX_STATUS_CONFIRMED
}

func (o *TransactionOutcome) GetErrorMessage() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// ClaimJob identifies an account whose rewards should be claimed.
type ClaimJob struct {
	Name    string         `json:"name"`
	Account ethcmn.Address `json:"account"`
}

type ClaimTicket struct {
	Amount    *big.Int
	CreatedAt *big.Int
	Signature []byte
}

type ClaimResult struct {
	Name    string                    `json:"name"`
	Account ethcmn.Address            `json:"account"`
	Amount  *big.Int                  `json:"amount"`
	State   enums.EAccountPayoutState `json:"state"`
	Outcome *TransactionOutcome       `json:"outcome,omitempty"`
	Err     error                     `json:"-"`
}

func (r *ClaimResult) ToReport(runId string) PayoutReport {
	line := PayoutLine{Kind: enums.PAYOUT_KIND_CLAIM, Label: r.Name, Recipient: r.Account, Amount: r.Amount}
	report := NewPayoutReport(runId, r.Account, line, r.Outcome)
	if r.Outcome == nil && r.Err != nil {
		report.Note = r.Err.Error()
	}
	return report
}

type ClaimResults []ClaimResult

func (results ClaimResults) ToReports(runId string) []PayoutReport {
	reports := make([]PayoutReport, 0, len(results))
	for _, r := range results {
		if r.Outcome == nil {
			continue
		}
		reports = append(reports, r.ToReport(runId))
	}
	return reports
}

func (results ClaimResults) CountFailed() int {
	failed := 0
	for _, r := range results {
		if r.Outcome != nil && !r.Outcome.IsSuccess() {
			failed++
		}
	}
	return failed
}

// NftTransfer moves a single item between accounts.
type NftTransfer struct {
	Name    string         `json:"name,omitempty"`
	From    ethcmn.Address `json:"from"`
	To      ethcmn.Address `json:"to"`
	TokenId *big.Int       `json:"token_id"`
}

type TransferResult struct {
	Request TransferRequest           `json:"request"`
	State   enums.EAccountPayoutState `json:"state"`
	Outcome *TransactionOutcome       `json:"outcome,omitempty"`
	Err     error                     `json:"-"`
}

func (r *TransferResult) ToReport(runId string) PayoutReport {
	line := PayoutLine{Kind: enums.PAYOUT_KIND_TRANSFER, Recipient: r.Request.To, Amount: r.Request.Amount}
	if r.Request.Kind == enums.TRANSFER_KIND_NFT {
		line.Kind = enums.PAYOUT_KIND_NFT
		line.Label = fmt.Sprintf("#%s", r.Request.TokenId)
		line.Amount = big.NewInt(1)
	}
	report := NewPayoutReport(runId, r.Request.From, line, r.Outcome)
	if r.Outcome == nil && r.Err != nil {
		report.Note = r.Err.Error()
	}
	return report
}

type TransferResults []TransferResult

func (results TransferResults) ToReports(runId string) []PayoutReport {
	reports := make([]PayoutReport, 0, len(results))
	for _, r := range results {
		reports = append(reports, r.ToReport(runId))
	}
	return reports
}

func (results TransferResults) CountFailed() int {
	failed := 0
	for _, r := range results {
		if r.Outcome != nil && !r.Outcome.IsSuccess() {
			failed++
		}
	}
	return failed
}
