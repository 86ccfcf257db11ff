package transaction

import (
	"errors"
	"fmt"
	"math/big"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/ronin-capital/scholarpay/core/contracts"
)

type Builder struct {
	chainId  *big.Int
	gasLimit uint64
	gasPrice *big.Int
}

func NewBuilder(chainId *big.Int, gasLimit uint64, gasPrice *big.Int) *Builder {
	if gasPrice == nil {
		gasPrice = big.NewInt(constants.DEFAULT_GAS_PRICE)
	}
	return &Builder{
		chainId:  new(big.Int).Set(chainId),
		gasLimit: gasLimit,
		gasPrice: new(big.Int).Set(gasPrice),
	}
}

func (b *Builder) GetChainId() *big.Int {
	return new(big.Int).Set(b.chainId)
}

// Build encodes the request into an unsigned legacy transaction. Chain id is bound at signing.
func (b *Builder) Build(request common.TransferRequest, nonce uint64) (*types.Transaction, error) {
	to, value, data, err := b.encode(request)
	if err != nil {
		return nil, errors.Join(constants.ErrFailedToBuildOperation, err)
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: new(big.Int).Set(b.gasPrice),
		Gas:      b.gasLimit,
		To:       &to,
		Value:    value,
		Data:     data,
	}), nil
}

func (b *Builder) encode(request common.TransferRequest) (to ethcmn.Address, value *big.Int, data []byte, err error) {
	value = new(big.Int)
	switch request.Kind {
	case enums.TRANSFER_KIND_NATIVE:
		if request.Amount == nil || request.Amount.Sign() <= 0 {
			return to, nil, nil, fmt.Errorf("invalid native amount %v", request.Amount)
		}
		return request.To, new(big.Int).Set(request.Amount), nil, nil
	case enums.TRANSFER_KIND_TOKEN:
		if request.Amount == nil || request.Amount.Sign() <= 0 {
			return to, nil, nil, fmt.Errorf("invalid token amount %v", request.Amount)
		}
		data, err = contracts.PackTransfer(request.To, request.Amount)
		return request.Contract, value, data, err
	case enums.TRANSFER_KIND_NFT:
		if request.TokenId == nil || request.TokenId.Sign() < 0 {
			return to, nil, nil, fmt.Errorf("invalid token id %v", request.TokenId)
		}
		data, err = contracts.PackSafeTransferFrom(request.From, request.To, request.TokenId)
		return request.Contract, value, data, err
	case enums.TRANSFER_KIND_CONTRACT:
		if len(request.Data) == 0 {
			return to, nil, nil, errors.New("empty calldata")
		}
		return request.Contract, value, request.Data, nil
	default:
		return to, nil, nil, errors.Join(constants.ErrUnsupportedTransferKind, fmt.Errorf("'%s'", request.Kind))
	}
}
