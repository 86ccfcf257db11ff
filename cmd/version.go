package cmd

import (
	"fmt"

	"github.com/ronin-capital/scholarpay/constants"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints scholarpay version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(constants.VERSION)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
