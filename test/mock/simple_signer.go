package mock

import (
	"context"
	"errors"
	"math/big"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ronin-capital/scholarpay/common"
	signer_engines "github.com/ronin-capital/scholarpay/engines/signer"
)

func InitSimpleSigner() *signer_engines.InMemorySigner {
	key, _ := crypto.GenerateKey()
	return signer_engines.NewInMemorySigner(key)
}

// FailingSigner refuses to sign anything.
type FailingSigner struct {
	Address ethcmn.Address
}

func (s *FailingSigner) GetId() string {
	return "FailingSigner"
}

func (s *FailingSigner) GetAddress() ethcmn.Address {
	return s.Address
}

func (s *FailingSigner) Sign(ctx context.Context, tx *types.Transaction, chainId *big.Int) (*types.Transaction, error) {
	return nil, errors.New("signing refused")
}

type StaticSignerProvider map[ethcmn.Address]common.SignerEngine

func NewStaticSignerProvider(signers ...common.SignerEngine) StaticSignerProvider {
	provider := make(StaticSignerProvider, len(signers))
	for _, signer := range signers {
		provider[signer.GetAddress()] = signer
	}
	return provider
}

func (p StaticSignerProvider) GetSigner(account ethcmn.Address) (common.SignerEngine, error) {
	if signer, ok := p[account]; ok {
		return signer, nil
	}
	return nil, errors.New("no signer")
}
