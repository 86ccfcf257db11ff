package common

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

func FormatTokenAmount(amount *big.Int, decimals int32) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -decimals).String()
}

func FormatTokenAmountWithSymbol(amount *big.Int, decimals int32, symbol string) string {
	return fmt.Sprintf("%s %s", FormatTokenAmount(amount, decimals), symbol)
}

// ParseTokenAmount converts human readable amount into the smallest unit, fractions below it are truncated
func ParseTokenAmount(s string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("negative amount '%s'", s)
	}
	return d.Shift(decimals).Truncate(0).BigInt(), nil
}
