package contracts

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcmn "github.com/ethereum/go-ethereum/common"
)

const (
	// erc20 subset used by payouts plus the checkpoint entrypoint of the game token used to claim rewards
	tokenAbiJson = `[
		{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function","stateMutability":"view"},
		{"constant":false,"inputs":[{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],"name":"transfer","outputs":[{"name":"_success","type":"bool"}],"type":"function","stateMutability":"nonpayable"},
		{"constant":false,"inputs":[{"name":"_owner","type":"address"},{"name":"_amount","type":"uint256"},{"name":"_createdAt","type":"uint256"},{"name":"_signature","type":"bytes"}],"name":"checkpoint","outputs":[{"name":"_balance","type":"uint256"}],"type":"function","stateMutability":"nonpayable"}
	]`
	nftAbiJson = `[
		{"constant":true,"inputs":[{"name":"_tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"type":"function","stateMutability":"view"},
		{"constant":false,"inputs":[{"name":"_from","type":"address"},{"name":"_to","type":"address"},{"name":"_tokenId","type":"uint256"}],"name":"safeTransferFrom","outputs":[],"type":"function","stateMutability":"nonpayable"}
	]`
)

var (
	TokenAbi = mustParseAbi(tokenAbiJson)
	NftAbi   = mustParseAbi(nftAbiJson)
)

func mustParseAbi(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(fmt.Sprintf("invalid contract abi: %s", err.Error()))
	}
	return parsed
}

func PackBalanceOf(owner ethcmn.Address) ([]byte, error) {
	return TokenAbi.Pack("balanceOf", owner)
}

func UnpackBalanceOf(data []byte) (*big.Int, error) {
	values, err := TokenAbi.Unpack("balanceOf", data)
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, errors.New("unexpected balanceOf result")
	}
	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf result type %T", values[0])
	}
	return balance, nil
}

func PackTransfer(to ethcmn.Address, amount *big.Int) ([]byte, error) {
	return TokenAbi.Pack("transfer", to, amount)
}

func PackCheckpoint(owner ethcmn.Address, amount *big.Int, createdAt *big.Int, signature []byte) ([]byte, error) {
	return TokenAbi.Pack("checkpoint", owner, amount, createdAt, signature)
}

func PackOwnerOf(tokenId *big.Int) ([]byte, error) {
	return NftAbi.Pack("ownerOf", tokenId)
}

func UnpackOwnerOf(data []byte) (ethcmn.Address, error) {
	values, err := NftAbi.Unpack("ownerOf", data)
	if err != nil {
		return ethcmn.Address{}, err
	}
	if len(values) != 1 {
		return ethcmn.Address{}, errors.New("unexpected ownerOf result")
	}
	owner, ok := values[0].(ethcmn.Address)
	if !ok {
		return ethcmn.Address{}, fmt.Errorf("unexpected ownerOf result type %T", values[0])
	}
	return owner, nil
}

func PackSafeTransferFrom(from ethcmn.Address, to ethcmn.Address, tokenId *big.Int) ([]byte, error) {
	return NftAbi.Pack("safeTransferFrom", from, to, tokenId)
}
