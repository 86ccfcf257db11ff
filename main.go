package main

import (
	"fmt"
	"os"

	"github.com/ronin-capital/scholarpay/cmd"
	"github.com/ronin-capital/scholarpay/common"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if panicStatus, ok := r.(common.PanicStatus); ok {
				os.Exit(panicStatus.ExitCode)
			}
			fmt.Fprintf(os.Stderr, "unhandled panic: %v\n", r)
			os.Exit(common.EXIT_UNHANDLED_ERROR)
		}
	}()

	if err := cmd.Execute(); err != nil {
		os.Exit(common.EXIT_INVALID_ARGS)
	}
}
