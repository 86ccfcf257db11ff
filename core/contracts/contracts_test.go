package contracts

import (
	"math/big"
	"testing"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestTransferSelector(t *testing.T) {
	assert := assert.New(t)

	data, err := PackTransfer(ethcmn.HexToAddress("0x01"), big.NewInt(10))
	assert.Nil(err)
	assert.Len(data, 4+32+32)
	// keccak256("transfer(address,uint256)")[:4]
	assert.Equal("a9059cbb", ethcmn.Bytes2Hex(data[:4]))
	assert.Equal(int64(10), new(big.Int).SetBytes(data[36:]).Int64())
}

func TestSafeTransferFromSelector(t *testing.T) {
	assert := assert.New(t)

	data, err := PackSafeTransferFrom(ethcmn.HexToAddress("0x01"), ethcmn.HexToAddress("0x02"), big.NewInt(7))
	assert.Nil(err)
	assert.Equal("42842e0e", ethcmn.Bytes2Hex(data[:4]))
}

func TestUnpackResults(t *testing.T) {
	assert := assert.New(t)

	balance, err := UnpackBalanceOf(ethcmn.LeftPadBytes(big.NewInt(1234).Bytes(), 32))
	assert.Nil(err)
	assert.Equal(int64(1234), balance.Int64())

	owner := ethcmn.HexToAddress("0x32950db2a7164ae833121501c797d79e7b79d74c")
	result, err := UnpackOwnerOf(ethcmn.LeftPadBytes(owner.Bytes(), 32))
	assert.Nil(err)
	assert.Equal(owner, result)

	_, err = UnpackBalanceOf([]byte{})
	assert.NotNil(err)
}

func TestPackCheckpoint(t *testing.T) {
	assert := assert.New(t)

	data, err := PackCheckpoint(ethcmn.HexToAddress("0x01"), big.NewInt(100), big.NewInt(1630000000), []byte{1, 2, 3})
	assert.Nil(err)
	assert.Equal(TokenAbi.Methods["checkpoint"].ID, data[:4])
}
