package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/state"
	"github.com/ronin-capital/scholarpay/utils"
	"github.com/spf13/cobra"
)

const (
	LOG_LEVEL_FLAG     = "log-level"
	LOG_FILE_FLAG      = "log-file"
	PATH_FLAG          = "path"
	VERSION_FLAG       = "version"
	OUTPUT_FORMAT_FLAG = "output-format"

	INJECTED_CONFIGURATION_ENV = "SCHOLARPAY_CONFIGURATION"
)

var (
	LOG_LEVEL_MAP = map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

func logWriter(logFile string) io.Writer {
	if logFile == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, utils.NewRotatingLogFile(logFile))
}

func setupJsonLogger(level slog.Level, logFile string) {
	slog.SetDefault(slog.New(utils.NewJsonLogHandler(logWriter(logFile), level)))
}

func setupTextLogger(level slog.Level, logFile string) {
	// escape sequences would end up in the log file
	slog.SetDefault(slog.New(utils.NewTextLogHandler(logWriter(logFile), level, logFile == "")))
}

var (
	RootCmd = &cobra.Command{
		Use:   "scholarpay",
		Short: "SCHOLARPAY",
		Long: fmt.Sprintf(`SCHOLARPAY %s - payouts of scholar accounts on ronin
Copyright © %d ronin capital
`, constants.VERSION, time.Now().Year()),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			format, _ := cmd.Flags().GetString(OUTPUT_FORMAT_FLAG)
			level, _ := cmd.Flags().GetString(LOG_LEVEL_FLAG)
			logFile, _ := cmd.Flags().GetString(LOG_FILE_FLAG)

			logLevel, ok := LOG_LEVEL_MAP[level]
			if !ok {
				fmt.Fprintf(os.Stderr, "unsupported log level '%s'\n", level)
				os.Exit(common.EXIT_INVALID_ARGS)
			}

			wantsJson := false
			switch format {
			case "json":
				wantsJson = true
			case "text":
			default:
				wantsJson = !utils.IsTty()
			}
			if wantsJson {
				setupJsonLogger(logLevel, logFile)
			} else {
				setupTextLogger(logLevel, logFile)
			}
			slog.Debug("logger configured", "format", format, "level", level)

			workingDirectory, _ := cmd.Flags().GetString(PATH_FLAG)
			stateOptions := state.StateInitOptions{
				WantsJsonOutput: wantsJson,
			}
			if injected, ok := os.LookupEnv(INJECTED_CONFIGURATION_ENV); ok {
				stateOptions.InjectedConfiguration = &injected
			}
			state.Init(workingDirectory, stateOptions)

			skipVersionCheck, _ := cmd.Flags().GetBool(SKIP_VERSION_CHECK_FLAG)
			if !skipVersionCheck && utils.IsTty() {
				promptIfNewVersionAvailable()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool(VERSION_FLAG); version {
				fmt.Println(constants.VERSION)
				return
			}
			cmd.Help()
		},
	}
)

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Flags().Bool(VERSION_FLAG, false, "prints version")
	RootCmd.PersistentFlags().StringP(PATH_FLAG, "p", ".", "path to working directory")
	RootCmd.PersistentFlags().StringP(OUTPUT_FORMAT_FLAG, "o", "auto", "sets output log format (json/text/auto)")
	RootCmd.PersistentFlags().StringP(LOG_LEVEL_FLAG, "l", "info", "sets log level (debug/info/warn/error)")
	RootCmd.PersistentFlags().String(LOG_FILE_FLAG, "", "logs to file")
	RootCmd.PersistentFlags().Bool(SKIP_VERSION_CHECK_FLAG, false, "skip version check")
}
