package scholarpay_configuration

import (
	"github.com/ronin-capital/scholarpay/constants/enums"
)

type NetworkConfigurationV0 struct {
	ReadRpcUrl  string `json:"read_rpc_url,omitempty" yaml:"read_rpc_url,omitempty"`
	WriteRpcUrl string `json:"write_rpc_url,omitempty" yaml:"write_rpc_url,omitempty"`
	ChainId     int64  `json:"chain_id,omitempty" yaml:"chain_id,omitempty"`
	Explorer    string `json:"explorer,omitempty" yaml:"explorer,omitempty"`
	GasLimit    uint64 `json:"gas_limit,omitempty" yaml:"gas_limit,omitempty"`
	// wei, zero on the free tier of the write endpoint
	GasPrice *int64 `json:"gas_price,omitempty" yaml:"gas_price,omitempty"`
	// requests per second sent to the write endpoint
	WriteRateLimit float64 `json:"write_rate_limit,omitempty" yaml:"write_rate_limit,omitempty"`
}

type TokenConfigurationV0 struct {
	Contract string `json:"contract,omitempty" yaml:"contract,omitempty"`
	Symbol   string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Decimals *int32 `json:"decimals,omitempty" yaml:"decimals,omitempty"`
}

type ConfirmationConfigurationV0 struct {
	PollInterval string `json:"poll_interval,omitempty" yaml:"poll_interval,omitempty"`
	Timeout      string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

type DonationV0 struct {
	Label      string  `json:"label,omitempty" yaml:"label,omitempty"`
	Recipient  string  `json:"recipient" yaml:"recipient"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

type PayoutConfigurationV0 struct {
	Dialect   enums.ESplitDialect `json:"dialect,omitempty" yaml:"dialect,omitempty"`
	Manager   string              `json:"manager" yaml:"manager"`
	Fee       *float64            `json:"fee,omitempty" yaml:"fee,omitempty"`
	Donations []DonationV0        `json:"donations,omitempty" yaml:"donations,omitempty"`
}

type PayeeV0 struct {
	Persona    string  `json:"persona" yaml:"persona"`
	Label      string  `json:"label,omitempty" yaml:"label,omitempty"`
	Recipient  string  `json:"recipient,omitempty" yaml:"recipient,omitempty"`
	Percentage float64 `json:"percentage,omitempty" yaml:"percentage,omitempty"`
	// whole tokens added on top of the percentage share, legacy dialect only
	FixedAmount *float64 `json:"fixed_amount,omitempty" yaml:"fixed_amount,omitempty"`
}

type ScholarV0 struct {
	Name    string    `json:"name,omitempty" yaml:"name,omitempty"`
	Account string    `json:"account" yaml:"account"`
	Payees  []PayeeV0 `json:"payees" yaml:"payees"`
}

type ClaimsConfigurationV0 struct {
	ApiUrl      string `json:"api_url,omitempty" yaml:"api_url,omitempty"`
	Concurrency int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
}

type ReporterConfigurationV0 struct {
	Kind            enums.EReporterKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Bucket          string              `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	CredentialsFile string              `json:"credentials_file,omitempty" yaml:"credentials_file,omitempty"`
}

type ConfigurationV0 struct {
	Version                    uint                        `json:"scholarpay_config_version" yaml:"scholarpay_config_version"`
	Network                    NetworkConfigurationV0      `json:"network,omitempty" yaml:"network,omitempty"`
	Token                      TokenConfigurationV0        `json:"token,omitempty" yaml:"token,omitempty"`
	NftContract                string                      `json:"nft_contract,omitempty" yaml:"nft_contract,omitempty"`
	Confirmations              ConfirmationConfigurationV0 `json:"confirmations,omitempty" yaml:"confirmations,omitempty"`
	Payouts                    PayoutConfigurationV0       `json:"payouts" yaml:"payouts"`
	Scholars                   []ScholarV0                 `json:"scholars" yaml:"scholars"`
	Claims                     ClaimsConfigurationV0       `json:"claims,omitempty" yaml:"claims,omitempty"`
	Reporter                   ReporterConfigurationV0     `json:"reports,omitempty" yaml:"reports,omitempty"`
	NotificationConfigurations []map[string]any            `json:"notifications,omitempty" yaml:"notifications,omitempty"`
}
