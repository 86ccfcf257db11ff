package common

import (
	"errors"
	"fmt"
	"strings"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/constants"
)

// ParseAccount accepts both ronin: and 0x prefixed addresses.
func ParseAccount(s string) (ethcmn.Address, error) {
	normalized := strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(normalized, constants.RONIN_ADDRESS_PREFIX); ok {
		normalized = constants.ETHEREUM_ADDRESS_PREFIX + rest
	}
	if !ethcmn.IsHexAddress(normalized) {
		return ethcmn.Address{}, errors.Join(constants.ErrInvalidAddress, fmt.Errorf("'%s' is not a valid address", s))
	}
	return ethcmn.HexToAddress(normalized), nil
}

func MustParseAccount(s string) ethcmn.Address {
	addr, err := ParseAccount(s)
	if err != nil {
		panic(err)
	}
	return addr
}

func ToRoninAddress(addr ethcmn.Address) string {
	return constants.RONIN_ADDRESS_PREFIX + strings.TrimPrefix(strings.ToLower(addr.Hex()), constants.ETHEREUM_ADDRESS_PREFIX)
}

func ShortenAddress(addr ethcmn.Address) string {
	hex := addr.Hex()
	return hex[:8] + "..." + hex[len(hex)-6:]
}
