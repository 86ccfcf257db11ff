package signer_engines

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
)

// Load creates signer from specification:
// 0x<hex key>, key:<hex key>, keystore:<file>, kms:<key version name>, trezor:<derivation path>
func Load(ctx context.Context, specification string) (common.SignerEngine, error) {
	specification = strings.TrimSpace(specification)
	if strings.HasPrefix(specification, constants.ETHEREUM_ADDRESS_PREFIX) {
		slog.Debug("creating InMemorySigner")
		return InitInMemorySigner(specification)
	}

	mode, value, found := strings.Cut(specification, ":")
	if !found || value == "" {
		return nil, errors.Join(constants.ErrSignerLoadFailed, errors.New("invalid signer specification"))
	}
	switch enums.EWalletMode(mode) {
	case enums.WALLET_MODE_LOCAL_PRIVATE_KEY:
		slog.Debug("creating InMemorySigner from parameters")
		return InitInMemorySigner(value)
	case enums.WALLET_MODE_KEYSTORE:
		slog.Debug("creating InMemorySigner from keystore", "path", value)
		return InitKeystoreSigner(value)
	case enums.WALLET_MODE_KMS:
		slog.Debug("creating KmsSigner", "key", value)
		return InitKmsSigner(ctx, value)
	case enums.WALLET_MODE_TREZOR:
		slog.Debug("creating WalletSigner for trezor", "path", value)
		return InitTrezorSigner(value)
	}
	// never print the specification, it may hold a private key
	return nil, errors.Join(constants.ErrSignerLoadFailed, fmt.Errorf("unsupported signer mode '%s'", mode))
}

type loaderFunc func(ctx context.Context, specification string) (common.SignerEngine, error)

// SecretsSignerProvider loads signers of accounts on first use
type SecretsSignerProvider struct {
	ctx            context.Context
	specifications map[ethcmn.Address]string
	load           loaderFunc

	mtx     sync.Mutex
	signers map[ethcmn.Address]common.SignerEngine
}

func NewSecretsSignerProvider(ctx context.Context, specifications map[ethcmn.Address]string) *SecretsSignerProvider {
	return &SecretsSignerProvider{
		ctx:            ctx,
		specifications: specifications,
		load:           Load,
		signers:        make(map[ethcmn.Address]common.SignerEngine),
	}
}

func (p *SecretsSignerProvider) GetSigner(account ethcmn.Address) (common.SignerEngine, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if signer, ok := p.signers[account]; ok {
		return signer, nil
	}
	specification, ok := p.specifications[account]
	if !ok {
		return nil, fmt.Errorf("no signer specification for %s", common.ToRoninAddress(account))
	}
	signer, err := p.load(p.ctx, specification)
	if err != nil {
		return nil, err
	}
	if signer.GetAddress() != account {
		return nil, errors.Join(constants.ErrSignerLoadFailed, fmt.Errorf("signer of %s controls %s", common.ToRoninAddress(account), common.ToRoninAddress(signer.GetAddress())))
	}
	p.signers[account] = signer
	return signer, nil
}
