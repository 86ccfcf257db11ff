package collector_engines

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum"
	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/ronin-capital/scholarpay/configuration"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/core/contracts"
)

// chainReader is the part of ethclient.Client the collector uses
type chainReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account ethcmn.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account ethcmn.Address) (uint64, error)
	TransactionReceipt(ctx context.Context, txHash ethcmn.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type DefaultRpcCollector struct {
	rpcUrl string
	client chainReader
}

func InitDefaultRpcCollector(ctx context.Context, config *configuration.RuntimeConfiguration) (*DefaultRpcCollector, error) {
	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}
	rpcClient, err := rpc.DialOptions(ctx, config.Network.ReadRpcUrl, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, errors.Join(constants.ErrCollectorLoadFailed, err)
	}
	return NewDefaultRpcCollector(config.Network.ReadRpcUrl, ethclient.NewClient(rpcClient)), nil
}

func NewDefaultRpcCollector(rpcUrl string, client chainReader) *DefaultRpcCollector {
	return &DefaultRpcCollector{
		rpcUrl: rpcUrl,
		client: client,
	}
}

func (engine *DefaultRpcCollector) GetId() string {
	return "DefaultRpcCollector"
}

func (engine *DefaultRpcCollector) chainReadError(what string, err error) error {
	slog.Debug("chain read failed", "rpc", engine.rpcUrl, "what", what, "error", err.Error())
	return errors.Join(constants.ErrChainRead, fmt.Errorf("%s: %w", what, err))
}

func (engine *DefaultRpcCollector) GetChainId(ctx context.Context) (*big.Int, error) {
	chainId, err := engine.client.ChainID(ctx)
	if err != nil {
		return nil, engine.chainReadError("chain id", err)
	}
	return chainId, nil
}

func (engine *DefaultRpcCollector) GetTokenBalance(ctx context.Context, token ethcmn.Address, account ethcmn.Address) (*big.Int, error) {
	data, err := contracts.PackBalanceOf(account)
	if err != nil {
		return nil, engine.chainReadError("balanceOf", err)
	}
	result, err := engine.client.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return nil, engine.chainReadError("balanceOf", err)
	}
	balance, err := contracts.UnpackBalanceOf(result)
	if err != nil {
		return nil, engine.chainReadError("balanceOf", err)
	}
	return balance, nil
}

func (engine *DefaultRpcCollector) GetNativeBalance(ctx context.Context, account ethcmn.Address) (*big.Int, error) {
	balance, err := engine.client.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, engine.chainReadError("balance", err)
	}
	return balance, nil
}

func (engine *DefaultRpcCollector) GetNonce(ctx context.Context, account ethcmn.Address) (uint64, error) {
	nonce, err := engine.client.PendingNonceAt(ctx, account)
	if err != nil {
		return 0, engine.chainReadError("nonce", err)
	}
	return nonce, nil
}

func (engine *DefaultRpcCollector) GetTransactionReceipt(ctx context.Context, hash ethcmn.Hash) (*types.Receipt, error) {
	receipt, err := engine.client.TransactionReceipt(ctx, hash)
	switch {
	case errors.Is(err, ethereum.NotFound):
		return nil, constants.ErrReceiptNotFound
	case err != nil:
		return nil, engine.chainReadError("receipt", err)
	}
	return receipt, nil
}

func (engine *DefaultRpcCollector) GetNftOwner(ctx context.Context, contract ethcmn.Address, tokenId *big.Int) (ethcmn.Address, error) {
	data, err := contracts.PackOwnerOf(tokenId)
	if err != nil {
		return ethcmn.Address{}, engine.chainReadError("ownerOf", err)
	}
	result, err := engine.client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return ethcmn.Address{}, engine.chainReadError("ownerOf", err)
	}
	owner, err := contracts.UnpackOwnerOf(result)
	if err != nil {
		return ethcmn.Address{}, engine.chainReadError("ownerOf", err)
	}
	return owner, nil
}
