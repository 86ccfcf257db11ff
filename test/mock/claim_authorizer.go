package mock

import (
	"context"
	"errors"
	"math/big"
	"sync"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
)

// StaticAuthorizer hands out claim tickets for configured amounts.
type StaticAuthorizer struct {
	mtx     sync.Mutex
	Amounts map[ethcmn.Address]int64
	Errors  map[ethcmn.Address]error
	calls   int
}

func InitStaticAuthorizer() *StaticAuthorizer {
	return &StaticAuthorizer{
		Amounts: make(map[ethcmn.Address]int64),
		Errors:  make(map[ethcmn.Address]error),
	}
}

func (a *StaticAuthorizer) GetId() string {
	return "StaticAuthorizer"
}

func (a *StaticAuthorizer) Authorize(ctx context.Context, account ethcmn.Address) (*common.ClaimTicket, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.calls++
	if err, ok := a.Errors[account]; ok {
		return nil, err
	}
	amount, ok := a.Amounts[account]
	if !ok {
		return nil, errors.Join(constants.ErrNothingToClaim, errors.New("no rewards"))
	}
	return &common.ClaimTicket{
		Amount:    big.NewInt(amount),
		CreatedAt: big.NewInt(1650000000),
		Signature: []byte{0x01, 0x02, 0x03},
	}, nil
}

func (a *StaticAuthorizer) Calls() int {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return a.calls
}
