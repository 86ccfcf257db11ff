package common

import (
	"context"
	"math/big"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// CollectorEngine reads chain state through the read endpoint.
type CollectorEngine interface {
	GetId() string
	GetChainId(ctx context.Context) (*big.Int, error)
	// smallest indivisible unit, wraps failures with constants.ErrChainRead
	GetTokenBalance(ctx context.Context, token ethcmn.Address, account ethcmn.Address) (*big.Int, error)
	GetNativeBalance(ctx context.Context, account ethcmn.Address) (*big.Int, error)
	// pending transaction count of the account
	GetNonce(ctx context.Context, account ethcmn.Address) (uint64, error)
	// returns constants.ErrReceiptNotFound while the transaction is not mined
	GetTransactionReceipt(ctx context.Context, hash ethcmn.Hash) (*types.Receipt, error)
	GetNftOwner(ctx context.Context, contract ethcmn.Address, tokenId *big.Int) (ethcmn.Address, error)
}

type SignerEngine interface {
	GetId() string
	GetAddress() ethcmn.Address
	Sign(ctx context.Context, tx *types.Transaction, chainId *big.Int) (*types.Transaction, error)
}

// SignerProvider resolves the signer of a managed account.
type SignerProvider interface {
	GetSigner(account ethcmn.Address) (SignerEngine, error)
}

type TransactorEngine interface {
	GetId() string
	// submits signed raw transaction, never retries
	Broadcast(ctx context.Context, tx *types.Transaction) (ethcmn.Hash, error)
}

type ConsentProvider interface {
	Confirm(msg string) (bool, error)
}

type ClaimAuthorizer interface {
	GetId() string
	Authorize(ctx context.Context, account ethcmn.Address) (*ClaimTicket, error)
}

type NotificatorEngine interface {
	PayoutSummaryNotify(summary *PayoutSummaryReport, additionalData map[string]string) error
	AdminNotify(msg string) error
	TestNotify() error
}

type ReporterEngine interface {
	ReportPayouts(reports []PayoutReport) error
	ReportSummary(summary *PayoutSummaryReport) error
}

type ReporterEngineOptions struct {
	DryRun bool
	RunId  string
}
