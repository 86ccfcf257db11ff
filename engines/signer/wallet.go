package signer_engines

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/accounts/usbwallet"
	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ronin-capital/scholarpay/constants"
)

const (
	KEYSTORE_PASSWORD_ENV = "SCHOLARPAY_KEYSTORE_PASSWORD"
)

// InitKeystoreSigner decrypts a web3 secret storage file, the password is read from SCHOLARPAY_KEYSTORE_PASSWORD
func InitKeystoreSigner(path string) (*InMemorySigner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}
	return InitKeystoreSignerFromBytes(data, os.Getenv(KEYSTORE_PASSWORD_ENV))
}

func InitKeystoreSignerFromBytes(data []byte, password string) (*InMemorySigner, error) {
	key, err := keystore.DecryptKey(data, password)
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, errors.New("failed to decrypt keystore"), err)
	}
	return NewInMemorySigner(key.PrivateKey), nil
}

// WalletSigner signs through a go-ethereum wallet backend (hardware wallets)
type WalletSigner struct {
	wallet  accounts.Wallet
	account accounts.Account
}

func InitTrezorSigner(derivationPath string) (*WalletSigner, error) {
	path, err := accounts.ParseDerivationPath(derivationPath)
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}
	hub, err := usbwallet.NewTrezorHubWithHID()
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}
	wallets := hub.Wallets()
	if len(wallets) == 0 {
		return nil, errors.Join(constants.ErrSignerLoadFailed, errors.New("no trezor device found"))
	}
	wallet := wallets[0]
	if err := wallet.Open(""); err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, fmt.Errorf("failed to open trezor: %w", err))
	}
	account, err := wallet.Derive(path, true)
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}
	slog.Debug("trezor account derived", "path", derivationPath, "address", account.Address.Hex())
	return &WalletSigner{
		wallet:  wallet,
		account: account,
	}, nil
}

func (s *WalletSigner) GetId() string {
	return "WalletSigner"
}

func (s *WalletSigner) GetAddress() ethcmn.Address {
	return s.account.Address
}

func (s *WalletSigner) Sign(ctx context.Context, tx *types.Transaction, chainId *big.Int) (*types.Transaction, error) {
	return s.wallet.SignTx(s.account, tx, chainId)
}
