package mock

import (
	"context"
	"sync"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type SimpleTransactor struct {
	mtx sync.Mutex
	// decides whether the broadcast of tx fails, nil means success
	BroadcastFunc func(tx *types.Transaction) error
	Broadcasted   []*types.Transaction
}

func InitSimpleTransactor() *SimpleTransactor {
	return &SimpleTransactor{}
}

func (engine *SimpleTransactor) GetId() string {
	return "SimpleTransactor"
}

func (engine *SimpleTransactor) Broadcast(ctx context.Context, tx *types.Transaction) (ethcmn.Hash, error) {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	if engine.BroadcastFunc != nil {
		if err := engine.BroadcastFunc(tx); err != nil {
			return ethcmn.Hash{}, err
		}
	}
	engine.Broadcasted = append(engine.Broadcasted, tx)
	return tx.Hash(), nil
}

func (engine *SimpleTransactor) GetBroadcasted() []*types.Transaction {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	result := make([]*types.Transaction, len(engine.Broadcasted))
	copy(result, engine.Broadcasted)
	return result
}
