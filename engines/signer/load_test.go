package signer_engines

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	key, _ := crypto.GenerateKey()
	hexKey := hex.EncodeToString(crypto.FromECDSA(key))
	address := crypto.PubkeyToAddress(key.PublicKey)

	for _, specification := range []string{"0x" + hexKey, "key:" + hexKey, " key:0x" + hexKey + "\n"} {
		signer, err := Load(context.Background(), specification)
		assert.Nil(err)
		assert.Equal(address, signer.GetAddress())
	}

	for _, specification := range []string{"", "key:", "remote:tz1@http://localhost", "key:zz"} {
		_, err := Load(context.Background(), specification)
		assert.True(errors.Is(err, constants.ErrSignerLoadFailed), specification)
	}
}

func TestKeystoreSigner(t *testing.T) {
	assert := assert.New(t)

	privateKey, _ := crypto.GenerateKey()
	key := &keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		PrivateKey: privateKey,
	}
	data, err := keystore.EncryptKey(key, "secret", keystore.LightScryptN, keystore.LightScryptP)
	assert.Nil(err)

	signer, err := InitKeystoreSignerFromBytes(data, "secret")
	assert.Nil(err)
	assert.Equal(key.Address, signer.GetAddress())

	_, err = InitKeystoreSignerFromBytes(data, "wrong")
	assert.True(errors.Is(err, constants.ErrSignerLoadFailed))
}

func TestSecretsSignerProvider(t *testing.T) {
	assert := assert.New(t)

	key, _ := crypto.GenerateKey()
	address := crypto.PubkeyToAddress(key.PublicKey)
	other := common.MustParseAccount("ronin:2000000000000000000000000000000000000010")
	unknown := common.MustParseAccount("ronin:2000000000000000000000000000000000000011")

	provider := NewSecretsSignerProvider(context.Background(), map[ethcmn.Address]string{
		address: "key:" + hex.EncodeToString(crypto.FromECDSA(key)),
		other:   "key:" + hex.EncodeToString(crypto.FromECDSA(key)),
	})
	loads := 0
	provider.load = func(ctx context.Context, specification string) (common.SignerEngine, error) {
		loads++
		return Load(ctx, specification)
	}

	signer, err := provider.GetSigner(address)
	assert.Nil(err)
	assert.Equal(address, signer.GetAddress())
	_, err = provider.GetSigner(address)
	assert.Nil(err)
	assert.Equal(1, loads)

	t.Log("signer must control the account")
	_, err = provider.GetSigner(other)
	assert.True(errors.Is(err, constants.ErrSignerLoadFailed))

	_, err = provider.GetSigner(unknown)
	assert.NotNil(err)
}
