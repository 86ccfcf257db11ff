package transaction

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/test/mock"
	"github.com/stretchr/testify/assert"
)

func TestNonceSequencerIncrementsLocally(t *testing.T) {
	assert := assert.New(t)
	collector := mock.InitSimpleCollector()
	account := mock.GetRandomAddress()
	collector.SetNonce(account, 41)

	sequencer := NewNonceSequencer(collector)
	for i := uint64(0); i < 5; i++ {
		nonce, err := sequencer.Next(context.Background(), account)
		assert.Nil(err)
		assert.Equal(41+i, nonce)
	}
	assert.Equal(1, collector.NonceCalls)
}

func TestNonceSequencerSeedsPerAccount(t *testing.T) {
	assert := assert.New(t)
	collector := mock.InitSimpleCollector()
	first, second := mock.GetRandomAddress(), mock.GetRandomAddress()
	collector.SetNonce(first, 3)
	collector.SetNonce(second, 10)

	sequencer := NewNonceSequencer(collector)
	nonce, _ := sequencer.Next(context.Background(), first)
	assert.Equal(uint64(3), nonce)
	nonce, _ = sequencer.Next(context.Background(), second)
	assert.Equal(uint64(10), nonce)
	nonce, _ = sequencer.Next(context.Background(), first)
	assert.Equal(uint64(4), nonce)
	assert.Equal(2, collector.NonceCalls)
}

func TestNonceSequencerInvalidate(t *testing.T) {
	assert := assert.New(t)
	collector := mock.InitSimpleCollector()
	account := mock.GetRandomAddress()
	collector.SetNonce(account, 5)

	sequencer := NewNonceSequencer(collector)
	nonce, _ := sequencer.Next(context.Background(), account)
	assert.Equal(uint64(5), nonce)

	t.Log("failed broadcast did not consume the nonce")
	sequencer.Invalidate(account)
	nonce, _ = sequencer.Next(context.Background(), account)
	assert.Equal(uint64(5), nonce)
	assert.Equal(2, collector.NonceCalls)
}

func TestNonceSequencerSeedFailure(t *testing.T) {
	assert := assert.New(t)
	collector := mock.InitSimpleCollector()
	collector.NonceError = errors.New("rpc down")

	sequencer := NewNonceSequencer(collector)
	_, err := sequencer.Next(context.Background(), mock.GetRandomAddress())
	assert.True(errors.Is(err, constants.ErrNonceSeedFailed))
	assert.True(errors.Is(err, constants.ErrChainRead))
}

func TestNonceSequencerConcurrentUse(t *testing.T) {
	assert := assert.New(t)
	collector := mock.InitSimpleCollector()
	account := mock.GetRandomAddress()

	sequencer := NewNonceSequencer(collector)
	var wg sync.WaitGroup
	var mtx sync.Mutex
	seen := make(map[uint64]bool)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			nonce, err := sequencer.Next(context.Background(), account)
			assert.Nil(err)
			mtx.Lock()
			seen[nonce] = true
			mtx.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(seen, 50)
	for i := uint64(0); i < 50; i++ {
		assert.True(seen[i], "nonce %d was not issued", i)
	}
}
