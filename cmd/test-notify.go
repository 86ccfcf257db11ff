package cmd

import (
	"log/slog"

	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/configuration"
	"github.com/ronin-capital/scholarpay/notifications"
	"github.com/spf13/cobra"
)

var notificationTestCmd = &cobra.Command{
	Use:   "test-notify",
	Short: "notification test",
	Long:  "sends test notification",
	Run: func(cmd *cobra.Command, args []string) {
		config := assertRunWithResultAndErrorMessage(configuration.Load, common.EXIT_CONFIGURATION_LOAD_FAILURE, "failed to load configuration")
		filter, _ := cmd.Flags().GetString(NOTIFICATOR_FLAG)
		for _, notificatorConfiguration := range config.NotificationConfigurations {
			if filter != "" && string(notificatorConfiguration.Type) != filter {
				continue
			}

			slog.Info("sending test notification", "notificator", notificatorConfiguration.Type)
			notificator, err := notifications.LoadNotificatior(notificatorConfiguration.Type, notificatorConfiguration.Configuration)
			if err != nil {
				slog.Warn("failed to send notification", "error", err.Error())
				continue
			}

			if err = notificator.TestNotify(); err != nil {
				slog.Warn("failed to send notification", "error", err.Error())
				continue
			}
		}
	},
}

func init() {
	notificationTestCmd.Flags().String(NOTIFICATOR_FLAG, "", "notify through specific notificator")

	RootCmd.AddCommand(notificationTestCmd)
}
