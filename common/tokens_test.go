package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTokenAmount(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("420", FormatTokenAmount(big.NewInt(420), 0))
	assert.Equal("1.5", FormatTokenAmount(big.NewInt(1500000000000000000), 18))
	assert.Equal("0", FormatTokenAmount(nil, 18))
	assert.Equal("10 SLP", FormatTokenAmountWithSymbol(big.NewInt(10), 0, "SLP"))
}

func TestParseTokenAmount(t *testing.T) {
	assert := assert.New(t)

	amount, err := ParseTokenAmount("1.5", 18)
	assert.Nil(err)
	assert.Equal("1500000000000000000", amount.String())

	amount, err = ParseTokenAmount("12.9", 0)
	assert.Nil(err)
	assert.Equal(int64(12), amount.Int64())

	_, err = ParseTokenAmount("-1", 0)
	assert.NotNil(err)
	_, err = ParseTokenAmount("abc", 0)
	assert.NotNil(err)
}
