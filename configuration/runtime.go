package configuration

import (
	"encoding/json"
	"math/big"
	"time"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
)

type RuntimeNetworkConfiguration struct {
	ReadRpcUrl     string   `json:"read_rpc_url"`
	WriteRpcUrl    string   `json:"write_rpc_url"`
	ChainId        *big.Int `json:"chain_id"`
	Explorer       string   `json:"explorer"`
	GasLimit       uint64   `json:"gas_limit"`
	GasPrice       *big.Int `json:"gas_price"`
	WriteRateLimit float64  `json:"write_rate_limit"`
}

type RuntimeTokenConfiguration struct {
	Contract ethcmn.Address `json:"contract"`
	Symbol   string         `json:"symbol"`
	Decimals int32          `json:"decimals"`
}

type RuntimeConfirmationConfiguration struct {
	PollInterval time.Duration `json:"poll_interval"`
	Timeout      time.Duration `json:"timeout"`
}

type RuntimeClaimsConfiguration struct {
	ApiUrl      string `json:"api_url"`
	Concurrency int    `json:"concurrency"`
}

type RuntimeReporterConfiguration struct {
	Kind            enums.EReporterKind `json:"kind"`
	Bucket          string              `json:"bucket,omitempty"`
	CredentialsFile string              `json:"credentials_file,omitempty"`
}

type RuntimeNotificatorConfiguration struct {
	Type          enums.ENotificatorKind `json:"type,omitempty"`
	Configuration json.RawMessage        `json:"-"`
	IsValid       bool                   `json:"-"`
	IsAdmin       bool                   `json:"admin"`
}

type RuntimeConfiguration struct {
	Network                    RuntimeNetworkConfiguration
	Token                      RuntimeTokenConfiguration
	NftContract                ethcmn.Address
	Confirmations              RuntimeConfirmationConfiguration
	Dialect                    enums.ESplitDialect
	Manager                    ethcmn.Address
	FeePercentage              common.Percentage
	Donations                  []common.DonationRule
	Jobs                       []common.PayoutJob
	Claims                     RuntimeClaimsConfiguration
	Reporter                   RuntimeReporterConfiguration
	NotificationConfigurations []RuntimeNotificatorConfiguration
	SourceBytes                []byte `json:"-"`
}

func GetDefaultRuntimeConfiguration() RuntimeConfiguration {
	return RuntimeConfiguration{
		Network: RuntimeNetworkConfiguration{
			ReadRpcUrl:     constants.DEFAULT_READ_RPC_URL,
			WriteRpcUrl:    constants.DEFAULT_WRITE_RPC_URL,
			ChainId:        big.NewInt(constants.DEFAULT_CHAIN_ID),
			Explorer:       constants.DEFAULT_EXPLORER_URL,
			GasLimit:       constants.DEFAULT_GAS_LIMIT,
			GasPrice:       big.NewInt(constants.DEFAULT_GAS_PRICE),
			WriteRateLimit: constants.DEFAULT_WRITE_RPC_RATE_LIMIT,
		},
		Token: RuntimeTokenConfiguration{
			Contract: ethcmn.HexToAddress(constants.DEFAULT_TOKEN_CONTRACT),
			Symbol:   constants.DEFAULT_TOKEN_SYMBOL,
			Decimals: constants.DEFAULT_TOKEN_DECIMALS,
		},
		NftContract: ethcmn.HexToAddress(constants.DEFAULT_NFT_CONTRACT),
		Confirmations: RuntimeConfirmationConfiguration{
			PollInterval: constants.DEFAULT_CONFIRMATION_POLL_INTERVAL,
			Timeout:      constants.DEFAULT_CONFIRMATION_TIMEOUT,
		},
		Dialect:       enums.SPLIT_DIALECT_PERCENTAGE,
		FeePercentage: common.MustPercentage(constants.DEFAULT_FEE_PERCENTAGE),
		Donations:     make([]common.DonationRule, 0),
		Jobs:          make([]common.PayoutJob, 0),
		Claims: RuntimeClaimsConfiguration{
			ApiUrl:      constants.DEFAULT_CLAIM_API_URL,
			Concurrency: constants.DEFAULT_CLAIM_CONCURRENCY,
		},
		Reporter: RuntimeReporterConfiguration{
			Kind: enums.REPORTER_FILE_SYSTEM,
		},
		NotificationConfigurations: make([]RuntimeNotificatorConfiguration, 0),
		SourceBytes:                []byte{},
	}
}

func (configuration *RuntimeConfiguration) GetJob(account ethcmn.Address) (common.PayoutJob, bool) {
	for _, job := range configuration.Jobs {
		if job.Account == account {
			return job, true
		}
	}
	return common.PayoutJob{}, false
}

func (configuration *RuntimeConfiguration) GetClaimJobs() []common.ClaimJob {
	result := make([]common.ClaimJob, 0, len(configuration.Jobs))
	for _, job := range configuration.Jobs {
		result = append(result, common.ClaimJob{Name: job.Name, Account: job.Account})
	}
	return result
}
