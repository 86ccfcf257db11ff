package signer_engines

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"

	kms "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/kms/apiv1/kmspb"
	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/engines/signer/x509"
	"google.golang.org/api/option"
)

var (
	secp256k1N     = crypto.S256().Params().N
	secp256k1HalfN = new(big.Int).Rsh(secp256k1N, 1)
)

// signs a 32 byte digest and returns DER encoded signature
type digestSigner func(ctx context.Context, digest []byte) ([]byte, error)

// KmsSigner signs with an EC_SIGN_SECP256K1_SHA256 key version held by Cloud KMS.
// The key never leaves KMS.
type KmsSigner struct {
	address ethcmn.Address
	sign    digestSigner
}

func InitKmsSigner(ctx context.Context, keyVersion string, opts ...option.ClientOption) (*KmsSigner, error) {
	client, err := kms.NewKeyManagementClient(ctx, opts...)
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}
	defer client.Close()

	pk, err := client.GetPublicKey(ctx, &kmspb.GetPublicKeyRequest{Name: keyVersion})
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}
	block, _ := pem.Decode([]byte(pk.Pem))
	if block == nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, errors.New("invalid public key pem"))
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}

	sign := func(ctx context.Context, digest []byte) ([]byte, error) {
		client, err := kms.NewKeyManagementClient(ctx, opts...)
		if err != nil {
			return nil, err
		}
		defer client.Close()

		resp, err := client.AsymmetricSign(ctx, &kmspb.AsymmetricSignRequest{
			Name: keyVersion,
			// kms only accepts sha256 digests of the right length, keccak256 fits
			Digest: &kmspb.Digest{Digest: &kmspb.Digest_Sha256{Sha256: digest}},
		})
		if err != nil {
			return nil, fmt.Errorf("AsymmetricSign: %w", err)
		}
		return resp.Signature, nil
	}
	return NewKmsSigner(pub, sign), nil
}

func NewKmsSigner(pub *ecdsa.PublicKey, sign digestSigner) *KmsSigner {
	return &KmsSigner{
		address: crypto.PubkeyToAddress(*pub),
		sign:    sign,
	}
}

func (s *KmsSigner) GetId() string {
	return "KmsSigner"
}

func (s *KmsSigner) GetAddress() ethcmn.Address {
	return s.address
}

// toRecoverableSignature converts DER signature into [R || S || V] expected by go-ethereum
func (s *KmsSigner) toRecoverableSignature(digest []byte, der []byte) ([]byte, error) {
	r, sv, err := x509.ParseSignature(der)
	if err != nil {
		return nil, err
	}
	if sv.Cmp(secp256k1HalfN) > 0 {
		sv = new(big.Int).Sub(secp256k1N, sv)
	}
	signature := make([]byte, crypto.SignatureLength)
	r.FillBytes(signature[:32])
	sv.FillBytes(signature[32:64])
	for v := byte(0); v < 2; v++ {
		signature[64] = v
		pub, err := crypto.SigToPub(digest, signature)
		if err != nil {
			continue
		}
		if bytes.Equal(crypto.PubkeyToAddress(*pub).Bytes(), s.address.Bytes()) {
			return signature, nil
		}
	}
	return nil, errors.New("signature does not recover to the signer address")
}

func (s *KmsSigner) Sign(ctx context.Context, tx *types.Transaction, chainId *big.Int) (*types.Transaction, error) {
	signer := types.NewEIP155Signer(chainId)
	digest := signer.Hash(tx)
	der, err := s.sign(ctx, digest[:])
	if err != nil {
		return nil, err
	}
	signature, err := s.toRecoverableSignature(digest[:], der)
	if err != nil {
		return nil, err
	}
	return tx.WithSignature(signer, signature)
}
