package signer_engines

import (
	"context"
	"errors"
	"math/big"
	"testing"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

func derSignature(r *big.Int, s *big.Int) []byte {
	var builder cryptobyte.Builder
	builder.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(r)
		b.AddASN1BigInt(s)
	})
	return builder.BytesOrPanic()
}

func testTransaction() *types.Transaction {
	to := ethcmn.HexToAddress("0x2000000000000000000000000000000000000001")
	return types.NewTx(&types.LegacyTx{Nonce: 3, To: &to, Gas: 21000, GasPrice: big.NewInt(0), Value: big.NewInt(0)})
}

func TestKmsSigner(t *testing.T) {
	assert := assert.New(t)

	key, err := crypto.GenerateKey()
	assert.Nil(err)
	chainId := big.NewInt(2020)

	for _, highS := range []bool{false, true} {
		signer := NewKmsSigner(&key.PublicKey, func(ctx context.Context, digest []byte) ([]byte, error) {
			signature, err := crypto.Sign(digest, key)
			if err != nil {
				return nil, err
			}
			r := new(big.Int).SetBytes(signature[:32])
			s := new(big.Int).SetBytes(signature[32:64])
			if highS {
				s = new(big.Int).Sub(secp256k1N, s)
			}
			return derSignature(r, s), nil
		})
		assert.Equal(crypto.PubkeyToAddress(key.PublicKey), signer.GetAddress())

		signed, err := signer.Sign(context.Background(), testTransaction(), chainId)
		assert.Nil(err)
		sender, err := types.Sender(types.NewEIP155Signer(chainId), signed)
		assert.Nil(err)
		assert.Equal(signer.GetAddress(), sender)
		_, s, _ := signed.RawSignatureValues()
		assert.True(s.Cmp(secp256k1HalfN) <= 0)
	}
}

func TestKmsSignerFailures(t *testing.T) {
	assert := assert.New(t)

	key, _ := crypto.GenerateKey()
	other, _ := crypto.GenerateKey()

	signer := NewKmsSigner(&key.PublicKey, func(ctx context.Context, digest []byte) ([]byte, error) {
		return nil, errors.New("permission denied")
	})
	_, err := signer.Sign(context.Background(), testTransaction(), big.NewInt(2020))
	assert.NotNil(err)

	t.Log("signature of another key is refused")
	signer = NewKmsSigner(&key.PublicKey, func(ctx context.Context, digest []byte) ([]byte, error) {
		signature, _ := crypto.Sign(digest, other)
		return derSignature(new(big.Int).SetBytes(signature[:32]), new(big.Int).SetBytes(signature[32:64])), nil
	})
	_, err = signer.Sign(context.Background(), testTransaction(), big.NewInt(2020))
	assert.NotNil(err)
}
