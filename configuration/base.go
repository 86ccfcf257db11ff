package configuration

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/hjson/hjson-go/v4"
	"github.com/ronin-capital/scholarpay/common"
	scholarpay_configuration "github.com/ronin-capital/scholarpay/configuration/v"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/ronin-capital/scholarpay/core/split"
	"github.com/ronin-capital/scholarpay/state"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type LatestConfigurationType = scholarpay_configuration.ConfigurationV0

const (
	LATEST_CONFIGURATION_VERSION = 0
)

type ConfigurationVersionInfo struct {
	Version *uint `json:"scholarpay_config_version" yaml:"scholarpay_config_version"`
}

// FloatAmountToUnits converts whole token amount into the smallest unit, fractions are truncated
func FloatAmountToUnits(amount float64, decimals int32) (*big.Int, error) {
	return common.ParseTokenAmount(strconv.FormatFloat(amount, 'f', -1, 64), decimals)
}

func parseOptionalAccount(value string, fallback ethcmn.Address) (ethcmn.Address, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return common.ParseAccount(value)
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

func buildPayees(scholar *scholarpay_configuration.ScholarV0, runtime *RuntimeConfiguration) ([]common.PayeeRule, error) {
	payees := make([]common.PayeeRule, 0, len(scholar.Payees)+1)
	for i, payee := range scholar.Payees {
		kind := enums.ParsePayoutKind(strings.ToLower(payee.Persona))
		fallback := ethcmn.Address{}
		if kind == enums.PAYOUT_KIND_MANAGER {
			fallback = runtime.Manager
		}
		recipient, err := parseOptionalAccount(payee.Recipient, fallback)
		if err != nil {
			return nil, fmt.Errorf("payees[%d].recipient: %w", i, err)
		}
		if recipient == (ethcmn.Address{}) {
			return nil, fmt.Errorf("payees[%d].recipient is required for persona '%s'", i, payee.Persona)
		}
		percentage, err := common.PercentageFromFloat(payee.Percentage)
		if err != nil {
			return nil, fmt.Errorf("payees[%d].percentage: %w", i, err)
		}
		rule := common.PayeeRule{
			Kind:       kind,
			Label:      payee.Label,
			Recipient:  recipient,
			Percentage: percentage,
		}
		if kind == enums.PAYOUT_KIND_OTHER && rule.Label == "" {
			rule.Label = payee.Persona
		}
		if payee.FixedAmount != nil {
			if rule.FixedAmount, err = FloatAmountToUnits(*payee.FixedAmount, runtime.Token.Decimals); err != nil {
				return nil, fmt.Errorf("payees[%d].fixed_amount: %w", i, err)
			}
		}
		payees = append(payees, rule)
	}

	// legacy configurations name the manager once for all scholars
	hasManager := lo.ContainsBy(payees, func(rule common.PayeeRule) bool {
		return rule.Kind == enums.PAYOUT_KIND_MANAGER
	})
	if !hasManager && runtime.Dialect == enums.SPLIT_DIALECT_LEGACY && runtime.Manager != (ethcmn.Address{}) {
		payees = append(payees, common.PayeeRule{Kind: enums.PAYOUT_KIND_MANAGER, Recipient: runtime.Manager})
	}
	return payees, nil
}

func ConfigurationToRuntimeConfiguration(configuration *LatestConfigurationType) (*RuntimeConfiguration, error) {
	runtime := GetDefaultRuntimeConfiguration()
	var err error

	network := configuration.Network
	runtime.Network.ReadRpcUrl = lo.CoalesceOrEmpty(network.ReadRpcUrl, runtime.Network.ReadRpcUrl)
	runtime.Network.WriteRpcUrl = lo.CoalesceOrEmpty(network.WriteRpcUrl, runtime.Network.WriteRpcUrl)
	runtime.Network.Explorer = lo.CoalesceOrEmpty(network.Explorer, runtime.Network.Explorer)
	if network.ChainId != 0 {
		runtime.Network.ChainId = big.NewInt(network.ChainId)
	}
	if network.GasLimit != 0 {
		runtime.Network.GasLimit = network.GasLimit
	}
	if network.GasPrice != nil {
		runtime.Network.GasPrice = big.NewInt(*network.GasPrice)
	}
	if network.WriteRateLimit != 0 {
		runtime.Network.WriteRateLimit = network.WriteRateLimit
	}

	if configuration.Token.Contract != "" {
		if runtime.Token.Contract, err = common.ParseAccount(configuration.Token.Contract); err != nil {
			return nil, fmt.Errorf("token.contract: %w", err)
		}
	}
	runtime.Token.Symbol = lo.CoalesceOrEmpty(configuration.Token.Symbol, runtime.Token.Symbol)
	if configuration.Token.Decimals != nil {
		runtime.Token.Decimals = *configuration.Token.Decimals
	}
	if configuration.NftContract != "" {
		if runtime.NftContract, err = common.ParseAccount(configuration.NftContract); err != nil {
			return nil, fmt.Errorf("nft_contract: %w", err)
		}
	}

	if runtime.Confirmations.PollInterval, err = parseDuration(configuration.Confirmations.PollInterval, runtime.Confirmations.PollInterval); err != nil {
		return nil, fmt.Errorf("confirmations.poll_interval: %w", err)
	}
	if runtime.Confirmations.Timeout, err = parseDuration(configuration.Confirmations.Timeout, runtime.Confirmations.Timeout); err != nil {
		return nil, fmt.Errorf("confirmations.timeout: %w", err)
	}

	payouts := configuration.Payouts
	if payouts.Dialect != "" {
		runtime.Dialect = payouts.Dialect
	}
	if runtime.Manager, err = parseOptionalAccount(payouts.Manager, ethcmn.Address{}); err != nil {
		return nil, fmt.Errorf("payouts.manager: %w", err)
	}
	if payouts.Fee != nil {
		if runtime.FeePercentage, err = common.PercentageFromFloat(*payouts.Fee); err != nil {
			return nil, fmt.Errorf("payouts.fee: %w", err)
		}
	}
	for i, donation := range payouts.Donations {
		recipient, err := common.ParseAccount(donation.Recipient)
		if err != nil {
			return nil, fmt.Errorf("payouts.donations[%d].recipient: %w", i, err)
		}
		percentage, err := common.PercentageFromFloat(donation.Percentage)
		if err != nil {
			return nil, fmt.Errorf("payouts.donations[%d].percentage: %w", i, err)
		}
		runtime.Donations = append(runtime.Donations, common.DonationRule{Label: donation.Label, Recipient: recipient, Percentage: percentage})
	}

	for i, scholar := range configuration.Scholars {
		account, err := common.ParseAccount(scholar.Account)
		if err != nil {
			return nil, fmt.Errorf("scholars[%d].account: %w", i, err)
		}
		job := common.PayoutJob{
			Name:    scholar.Name,
			Account: account,
		}
		payees, err := buildPayees(&scholar, &runtime)
		if err != nil {
			job.RulesError = errors.Join(constants.ErrInvalidSplitRules, fmt.Errorf("scholars[%d].%w", i, err))
		} else {
			job.Rules = common.RuleSet{
				Dialect:       runtime.Dialect,
				Payees:        payees,
				Donations:     runtime.Donations,
				FeePercentage: runtime.FeePercentage,
				FeeRecipient:  common.MustParseAccount(constants.PLATFORM_FEE_ADDRESS),
			}
			job.RulesError = split.Validate(&job.Rules)
		}
		runtime.Jobs = append(runtime.Jobs, job)
	}

	if configuration.Claims.ApiUrl != "" {
		runtime.Claims.ApiUrl = configuration.Claims.ApiUrl
	}
	if configuration.Claims.Concurrency > 0 {
		runtime.Claims.Concurrency = configuration.Claims.Concurrency
	}

	if configuration.Reporter.Kind != "" {
		runtime.Reporter.Kind = configuration.Reporter.Kind
	}
	runtime.Reporter.Bucket = configuration.Reporter.Bucket
	runtime.Reporter.CredentialsFile = configuration.Reporter.CredentialsFile

	runtime.NotificationConfigurations = lo.Map(configuration.NotificationConfigurations, func(item map[string]any, _ int) RuntimeNotificatorConfiguration {
		notificatorType, isValid := item["type"].(string)
		if !isValid {
			slog.Warn("invalid notificator type", "type", item["type"])
		}
		isAdmin, _ := item["admin"].(bool)
		configuration, err := json.Marshal(item)
		if err != nil {
			isValid = false
		}
		return RuntimeNotificatorConfiguration{
			Type:          enums.ENotificatorKind(notificatorType),
			IsAdmin:       isAdmin,
			Configuration: configuration,
			IsValid:       isValid,
		}
	})
	return &runtime, nil
}

func isYaml(path string) bool {
	extension := strings.ToLower(filepath.Ext(path))
	return extension == ".yaml" || extension == ".yml"
}

// unmarshal decodes hjson (superset of json) or yaml
func unmarshal(data []byte, asYaml bool, target any) error {
	if asYaml {
		return yaml.Unmarshal(data, target)
	}
	return hjson.Unmarshal(data, target)
}

func LoadFromBytes(configurationBytes []byte, asYaml bool) (*RuntimeConfiguration, error) {
	slog.Debug("loading version info")
	versionInfo := ConfigurationVersionInfo{}
	if err := unmarshal(configurationBytes, asYaml, &versionInfo); err != nil {
		return nil, errors.Join(constants.ErrConfigurationLoadFailed, err)
	}
	if versionInfo.Version != nil && *versionInfo.Version != LATEST_CONFIGURATION_VERSION {
		return nil, errors.Join(constants.ErrConfigurationLoadFailed, fmt.Errorf("unsupported configuration version %d", *versionInfo.Version))
	}

	configuration := LatestConfigurationType{}
	if err := unmarshal(configurationBytes, asYaml, &configuration); err != nil {
		return nil, errors.Join(constants.ErrConfigurationLoadFailed, err)
	}
	runtime, err := ConfigurationToRuntimeConfiguration(&configuration)
	if err != nil {
		return nil, errors.Join(constants.ErrConfigurationLoadFailed, err)
	}
	runtime.SourceBytes = configurationBytes
	return runtime, runtime.Validate()
}

func Load() (*RuntimeConfiguration, error) {
	hasInjectedConfiguration, configurationBytes := state.Global.GetInjectedConfiguration()
	path := state.Global.GetConfigurationFilePath()
	if !hasInjectedConfiguration {
		slog.Debug("loading configuration", "path", path)
		var err error
		configurationBytes, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.Join(constants.ErrConfigurationLoadFailed, err)
		}
	} else {
		slog.Debug("using injected configuration")
	}
	return LoadFromBytes(configurationBytes, !hasInjectedConfiguration && isYaml(path))
}
