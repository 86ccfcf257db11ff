package configuration

import (
	"errors"
	"fmt"
	"time"

	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/ronin-capital/scholarpay/notifications"
	"github.com/samber/lo"
)

func _assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

func (configuration *RuntimeConfiguration) Validate() (err error) {
	defer func() {
		msg, _ := recover().(string)
		if msg != "" {
			err = errors.Join(constants.ErrConfigurationValidationFailed, errors.New(msg))
		}
	}()

	_assert(configuration != nil, "configuration is nil")
	network := configuration.Network
	_assert(network.ReadRpcUrl != "", "configuration.network.read_rpc_url is required")
	_assert(network.WriteRpcUrl != "", "configuration.network.write_rpc_url is required")
	_assert(network.ChainId != nil && network.ChainId.Sign() > 0, "configuration.network.chain_id must be positive")
	_assert(network.GasLimit > 0, "configuration.network.gas_limit must be positive")
	_assert(network.GasPrice != nil && network.GasPrice.Sign() >= 0, "configuration.network.gas_price can not be negative")
	_assert(network.WriteRateLimit > 0, "configuration.network.write_rate_limit must be positive")

	_assert(configuration.Token.Decimals >= 0 && configuration.Token.Decimals <= 36,
		fmt.Sprintf("configuration.token.decimals - %d out of range", configuration.Token.Decimals))
	_assert(configuration.Token.Symbol != "", "configuration.token.symbol is required")

	confirmations := configuration.Confirmations
	_assert(confirmations.PollInterval >= time.Second, "configuration.confirmations.poll_interval must be at least 1s")
	_assert(confirmations.Timeout >= confirmations.PollInterval,
		"configuration.confirmations.timeout must be greater or equal to configuration.confirmations.poll_interval")

	_assert(lo.Contains(enums.SUPPORTED_SPLIT_DIALECTS, configuration.Dialect),
		fmt.Sprintf("configuration.payouts.dialect - '%s' not supported", configuration.Dialect))

	accounts := lo.Map(configuration.Jobs, func(job common.PayoutJob, _ int) string {
		return job.Account.Hex()
	})
	duplicates := lo.FindDuplicates(accounts)
	_assert(len(duplicates) == 0, fmt.Sprintf("configuration.scholars - accounts listed more than once: %v", duplicates))

	_assert(configuration.Claims.Concurrency > 0, "configuration.claims.concurrency must be positive")

	switch configuration.Reporter.Kind {
	case enums.REPORTER_FILE_SYSTEM, enums.REPORTER_STDIO:
	case enums.REPORTER_GCS:
		_assert(configuration.Reporter.Bucket != "", "configuration.reports.bucket is required for gcs reporter")
	default:
		_assert(false, fmt.Sprintf("configuration.reports.kind - '%s' not supported", configuration.Reporter.Kind))
	}

	for _, v := range configuration.NotificationConfigurations {
		if !v.IsValid {
			continue
		}
		err := notifications.ValidateNotificatorConfiguration(v.Type, v.Configuration)
		_assert(err == nil, fmt.Sprintf("configuration.notifications.%s has invalid configuration - %v", v.Type, err))
	}
	return
}
