package configuration

import (
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"os"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/state"
)

type SecretsV0 struct {
	// account -> signer specification, see signer_engines.Load
	Signers map[string]string `json:"signers" yaml:"signers"`
	// account -> game api access token used to authorize claims
	AccessTokens map[string]string `json:"access_tokens,omitempty" yaml:"access_tokens,omitempty"`
}

type RuntimeSecrets struct {
	Signers      map[ethcmn.Address]string
	AccessTokens map[ethcmn.Address]string
}

func parseAccountMap(source map[string]string, section string) (map[ethcmn.Address]string, error) {
	result := make(map[ethcmn.Address]string, len(source))
	for k, v := range source {
		account, err := common.ParseAccount(k)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", section, k, err)
		}
		result[account] = v
	}
	return result, nil
}

func LoadSecretsFromBytes(data []byte, asYaml bool) (*RuntimeSecrets, error) {
	secrets := SecretsV0{}
	if err := unmarshal(data, asYaml, &secrets); err != nil {
		return nil, errors.Join(constants.ErrSecretsLoadFailed, err)
	}
	signers, err := parseAccountMap(secrets.Signers, "signers")
	if err != nil {
		return nil, errors.Join(constants.ErrSecretsLoadFailed, err)
	}
	tokens, err := parseAccountMap(secrets.AccessTokens, "access_tokens")
	if err != nil {
		return nil, errors.Join(constants.ErrSecretsLoadFailed, err)
	}
	return &RuntimeSecrets{
		Signers:      signers,
		AccessTokens: tokens,
	}, nil
}

func LoadSecrets() (*RuntimeSecrets, error) {
	path := state.Global.GetSecretsFilePath()
	slog.Debug("loading secrets", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(constants.ErrSecretsLoadFailed, err)
	}
	return LoadSecretsFromBytes(data, isYaml(path))
}

type NftTransferV0 struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	From    string `json:"from" yaml:"from"`
	To      string `json:"to" yaml:"to"`
	TokenId uint64 `json:"token_id" yaml:"token_id"`
}

type TransfersV0 struct {
	Transfers []NftTransferV0 `json:"transfers" yaml:"transfers"`
}

func LoadTransfersFromBytes(data []byte, asYaml bool) ([]common.NftTransfer, error) {
	transfers := TransfersV0{}
	if err := unmarshal(data, asYaml, &transfers); err != nil {
		return nil, errors.Join(constants.ErrConfigurationLoadFailed, err)
	}
	result := make([]common.NftTransfer, 0, len(transfers.Transfers))
	for i, transfer := range transfers.Transfers {
		from, err := common.ParseAccount(transfer.From)
		if err != nil {
			return nil, errors.Join(constants.ErrConfigurationLoadFailed, fmt.Errorf("transfers[%d].from: %w", i, err))
		}
		to, err := common.ParseAccount(transfer.To)
		if err != nil {
			return nil, errors.Join(constants.ErrConfigurationLoadFailed, fmt.Errorf("transfers[%d].to: %w", i, err))
		}
		result = append(result, common.NftTransfer{
			Name:    transfer.Name,
			From:    from,
			To:      to,
			TokenId: new(big.Int).SetUint64(transfer.TokenId),
		})
	}
	return result, nil
}

func LoadTransfers(path string) ([]common.NftTransfer, error) {
	if path == "" {
		path = state.Global.GetTransfersFilePath()
	}
	slog.Debug("loading transfers", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(constants.ErrConfigurationLoadFailed, err)
	}
	return LoadTransfersFromBytes(data, isYaml(path))
}
