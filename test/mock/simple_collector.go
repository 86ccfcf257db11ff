package mock

import (
	"context"
	"errors"
	"math/big"
	"sync"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ronin-capital/scholarpay/constants"
)

type SimpleCollector struct {
	mtx sync.Mutex

	Balances      map[ethcmn.Address]*big.Int
	BalanceErrors map[ethcmn.Address]error
	Nonces        map[ethcmn.Address]uint64
	NonceError    error
	NonceCalls    int
	Owners        map[string]ethcmn.Address
	// number of "not found" answers before the receipt shows up
	PendingPolls int
	// transactions with these hashes revert
	Reverted     map[ethcmn.Hash]bool
	ReceiptError error
	ReceiptCalls int
	polls        map[ethcmn.Hash]int
}

func InitSimpleCollector() *SimpleCollector {
	return &SimpleCollector{
		Balances:      make(map[ethcmn.Address]*big.Int),
		BalanceErrors: make(map[ethcmn.Address]error),
		Nonces:        make(map[ethcmn.Address]uint64),
		Owners:        make(map[string]ethcmn.Address),
		Reverted:      make(map[ethcmn.Hash]bool),
		polls:         make(map[ethcmn.Hash]int),
	}
}

func (engine *SimpleCollector) GetId() string {
	return "SimpleCollector"
}

func (engine *SimpleCollector) GetChainId(ctx context.Context) (*big.Int, error) {
	return big.NewInt(constants.DEFAULT_CHAIN_ID), nil
}

func (engine *SimpleCollector) GetTokenBalance(ctx context.Context, token ethcmn.Address, account ethcmn.Address) (*big.Int, error) {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	if err, ok := engine.BalanceErrors[account]; ok {
		return nil, errors.Join(constants.ErrChainRead, err)
	}
	if balance, ok := engine.Balances[account]; ok {
		return new(big.Int).Set(balance), nil
	}
	return new(big.Int), nil
}

func (engine *SimpleCollector) GetNativeBalance(ctx context.Context, account ethcmn.Address) (*big.Int, error) {
	return new(big.Int), nil
}

func (engine *SimpleCollector) GetNonce(ctx context.Context, account ethcmn.Address) (uint64, error) {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	engine.NonceCalls++
	if engine.NonceError != nil {
		return 0, errors.Join(constants.ErrChainRead, engine.NonceError)
	}
	return engine.Nonces[account], nil
}

func (engine *SimpleCollector) SetNonce(account ethcmn.Address, nonce uint64) {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	engine.Nonces[account] = nonce
}

func (engine *SimpleCollector) GetTransactionReceipt(ctx context.Context, hash ethcmn.Hash) (*types.Receipt, error) {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	engine.ReceiptCalls++
	if engine.ReceiptError != nil {
		return nil, engine.ReceiptError
	}
	if engine.polls[hash] < engine.PendingPolls {
		engine.polls[hash]++
		return nil, constants.ErrReceiptNotFound
	}
	status := types.ReceiptStatusSuccessful
	if engine.Reverted[hash] {
		status = types.ReceiptStatusFailed
	}
	return &types.Receipt{TxHash: hash, Status: status, BlockNumber: big.NewInt(1)}, nil
}

func (engine *SimpleCollector) GetNftOwner(ctx context.Context, contract ethcmn.Address, tokenId *big.Int) (ethcmn.Address, error) {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	owner, ok := engine.Owners[tokenId.String()]
	if !ok {
		return ethcmn.Address{}, errors.Join(constants.ErrChainRead, errors.New("nonexistent token"))
	}
	return owner, nil
}
