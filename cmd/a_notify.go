package cmd

import (
	"log/slog"

	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/configuration"
	"github.com/ronin-capital/scholarpay/notifications"
)

func notifyPayoutsProcessed(configuration *configuration.RuntimeConfiguration, summary *common.PayoutSummaryReport, filter string, additionalData map[string]string) {
	for _, notificatorConfiguration := range configuration.NotificationConfigurations {
		if filter != "" && string(notificatorConfiguration.Type) != filter {
			continue
		}
		if notificatorConfiguration.IsAdmin {
			continue
		}

		slog.Info("sending notification", "notificator", notificatorConfiguration.Type)
		notificator, err := notifications.LoadNotificatior(notificatorConfiguration.Type, notificatorConfiguration.Configuration)
		if err != nil {
			slog.Warn("failed to send notification", "error", err.Error())
			continue
		}

		if err = notificator.PayoutSummaryNotify(summary, additionalData); err != nil {
			slog.Warn("failed to send notification", "error", err.Error())
			continue
		}
	}
	slog.Info("notifications sent")
}

func notifyAdmin(configuration *configuration.RuntimeConfiguration, msg string) {
	for _, notificatorConfiguration := range configuration.NotificationConfigurations {
		if !notificatorConfiguration.IsAdmin {
			continue
		}

		slog.Info("sending admin notification", "notificator", notificatorConfiguration.Type)
		notificator, err := notifications.LoadNotificatior(notificatorConfiguration.Type, notificatorConfiguration.Configuration)
		if err != nil {
			slog.Warn("failed to send notification", "error", err.Error())
			continue
		}

		if err = notificator.AdminNotify(msg); err != nil {
			slog.Warn("failed to send notification", "error", err.Error())
			continue
		}
	}
}
