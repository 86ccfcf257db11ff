package state

import (
	"os"
	"path/filepath"

	"github.com/ronin-capital/scholarpay/constants"
)

var (
	Global State
)

type StateInitOptions struct {
	WantsJsonOutput       bool
	InjectedConfiguration *string
}

type State struct {
	workingDirectory         string
	wantsJsonOutput          bool
	injectedConfiguration    []byte
	hasInjectedConfiguration bool
}

func Init(workingDirectory string, options StateInitOptions) {
	injectedConfiguration, hasInjectedConfiguration := []byte{}, false
	if options.InjectedConfiguration != nil {
		injectedConfiguration, hasInjectedConfiguration = []byte(*options.InjectedConfiguration), true
	}
	Global = State{
		workingDirectory:         workingDirectory,
		injectedConfiguration:    injectedConfiguration,
		wantsJsonOutput:          options.WantsJsonOutput,
		hasInjectedConfiguration: hasInjectedConfiguration,
	}
}

func (state *State) GetWorkingDirectory() string {
	return state.workingDirectory
}

func (state *State) GetWantsOutputJson() bool {
	return state.wantsJsonOutput
}

func (state *State) GetInjectedConfiguration() (bool, []byte) {
	return state.hasInjectedConfiguration, state.injectedConfiguration
}

func (state *State) pathFromEnvOrWorkingDirectory(env string, fileName string) string {
	if path := os.Getenv(env); path != "" {
		return path
	}
	return filepath.Join(state.GetWorkingDirectory(), fileName)
}

func (state *State) GetConfigurationFilePath() string {
	return state.pathFromEnvOrWorkingDirectory("CONFIGURATION_FILE", constants.CONFIG_FILE_NAME)
}

func (state *State) GetSecretsFilePath() string {
	return state.pathFromEnvOrWorkingDirectory("SECRETS_FILE", constants.SECRETS_FILE_NAME)
}

func (state *State) GetTransfersFilePath() string {
	return state.pathFromEnvOrWorkingDirectory("TRANSFERS_FILE", constants.TRANSFERS_FILE_NAME)
}

func (state *State) GetLockFilePath() string {
	return filepath.Join(state.GetWorkingDirectory(), constants.LOCK_FILE_NAME)
}

func (state *State) GetReportsDirectory(dryRun bool) string {
	if dryRun {
		return filepath.Join(state.GetWorkingDirectory(), constants.REPORTS_DIRECTORY, constants.DRY_RUN_REPORTS_DIRECTORY)
	}
	return filepath.Join(state.GetWorkingDirectory(), constants.REPORTS_DIRECTORY)
}
