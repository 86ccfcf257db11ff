package common

import (
	"errors"
	"testing"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/stretchr/testify/assert"
)

func TestTransactionOutcomeResolve(t *testing.T) {
	assert := assert.New(t)

	outcome := NewPendingOutcome(ethcmn.HexToHash("0x01"), 7)
	assert.Equal(enums.TX_STATUS_PENDING, outcome.Status)

	t.Log("non terminal status is refused")
	assert.NotNil(outcome.Resolve(enums.TX_STATUS_PENDING, nil))

	assert.Nil(outcome.Resolve(enums.TX_STATUS_CONFIRMED, nil))
	assert.True(outcome.IsSuccess())

	t.Log("terminal status is sticky")
	err := outcome.Resolve(enums.TX_STATUS_FAILED, errors.New("late"))
	assert.True(errors.Is(err, constants.ErrOperationAlreadyResolved))
	assert.Equal(enums.TX_STATUS_CONFIRMED, outcome.Status)
	assert.Nil(outcome.Err)
}

func TestFailedOutcome(t *testing.T) {
	assert := assert.New(t)

	outcome := NewFailedOutcome(3, constants.ErrOperationBroadcastFailed)
	assert.False(outcome.IsSuccess())
	assert.Equal(uint64(3), outcome.Nonce)
	assert.Equal(constants.ErrOperationBroadcastFailed.Error(), outcome.GetErrorMessage())
	assert.True(errors.Is(outcome.Resolve(enums.TX_STATUS_CONFIRMED, nil), constants.ErrOperationAlreadyResolved))
}
