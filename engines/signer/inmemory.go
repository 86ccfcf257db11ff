package signer_engines

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"strings"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ronin-capital/scholarpay/constants"
)

type InMemorySigner struct {
	key     *ecdsa.PrivateKey
	address ethcmn.Address
}

func InitInMemorySigner(key string) (*InMemorySigner, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(key), constants.ETHEREUM_ADDRESS_PREFIX))
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, errors.New("invalid private key"), err)
	}
	return NewInMemorySigner(privateKey), nil
}

func NewInMemorySigner(key *ecdsa.PrivateKey) *InMemorySigner {
	return &InMemorySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

func (inMemSigner *InMemorySigner) GetId() string {
	return "InMemorySigner"
}

func (inMemSigner *InMemorySigner) GetAddress() ethcmn.Address {
	return inMemSigner.address
}

func (inMemSigner *InMemorySigner) Sign(ctx context.Context, tx *types.Transaction, chainId *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.NewEIP155Signer(chainId), inMemSigner.key)
}
