package transaction

import (
	"context"
	"errors"
	"sync"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/constants"
)

type NonceSource interface {
	GetNonce(ctx context.Context, account ethcmn.Address) (uint64, error)
}

// NonceSequencer seeds nonce of an account from the chain once and increments it locally afterwards.
type NonceSequencer struct {
	mtx    sync.Mutex
	source NonceSource
	next   map[ethcmn.Address]uint64
}

func NewNonceSequencer(source NonceSource) *NonceSequencer {
	return &NonceSequencer{
		source: source,
		next:   make(map[ethcmn.Address]uint64),
	}
}

func (s *NonceSequencer) Next(ctx context.Context, account ethcmn.Address) (uint64, error) {
	s.mtx.Lock()
	if nonce, ok := s.next[account]; ok {
		s.next[account] = nonce + 1
		s.mtx.Unlock()
		return nonce, nil
	}
	s.mtx.Unlock()

	seed, err := s.source.GetNonce(ctx, account)
	if err != nil {
		return 0, errors.Join(constants.ErrNonceSeedFailed, err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	// seeded concurrently in the meantime
	if nonce, ok := s.next[account]; ok {
		seed = nonce
	}
	s.next[account] = seed + 1
	return seed, nil
}

// Invalidate drops local state of the account, next call re-seeds from the chain.
// Used after a transaction may not have consumed its nonce.
func (s *NonceSequencer) Invalidate(account ethcmn.Address) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.next, account)
}
