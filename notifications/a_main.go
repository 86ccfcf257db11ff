package notifications

import (
	"errors"
	"fmt"

	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/constants/enums"
)

func LoadNotificatior(kind enums.ENotificatorKind, configuration []byte) (common.NotificatorEngine, error) {
	switch kind {
	case enums.NOTIFICATOR_DISCORD:
		return InitDiscordNotificator(configuration)
	case enums.NOTIFICATOR_TELEGRAM:
		return InitTelegramNotificator(configuration)
	case enums.NOTIFICATOR_EMAIL:
		return InitEmailNotificator(configuration)
	case enums.NOTIFICATOR_WEBHOOK:
		return InitWebhookNotificator(configuration)
	default:
		return nil, errors.Join(constants.ErrUnsupportedNotificator, fmt.Errorf("not supported notificator '%s'", kind))
	}
}

func ValidateNotificatorConfiguration(kind enums.ENotificatorKind, configuration []byte) error {
	switch kind {
	case enums.NOTIFICATOR_DISCORD:
		return ValidateDiscordConfiguration(configuration)
	case enums.NOTIFICATOR_TELEGRAM:
		return ValidateTelegramConfiguration(configuration)
	case enums.NOTIFICATOR_EMAIL:
		return ValidateEmailConfiguration(configuration)
	case enums.NOTIFICATOR_WEBHOOK:
		return ValidateWebhookConfiguration(configuration)
	default:
		return errors.Join(constants.ErrUnsupportedNotificator, fmt.Errorf("not supported notificator '%s'", kind))
	}
}
