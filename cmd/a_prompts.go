package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/hashicorp/go-version"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/ronin-capital/scholarpay/utils"
)

func requireConfirmation(msg string) error {
	proceed := false
	if utils.IsTty() {
		prompt := &survey.Confirm{
			Message: msg,
		}
		if err := survey.AskOne(prompt, &proceed); err != nil {
			return errors.Join(constants.ErrUserNotConfirmed, err)
		}
	}
	if !proceed {
		return constants.ErrUserNotConfirmed
	}
	return nil
}

func assertRequireConfirmation(msg string) {
	assertRunWithParamAndErrorMessage(requireConfirmation, msg, common.EXIT_OPERATION_CANCELED, "not confirmed")
}

// PromptConsent asks the operator on the terminal, a non interactive session never consents.
type PromptConsent struct {
	DryRun bool
}

func (p PromptConsent) Confirm(msg string) (bool, error) {
	if p.DryRun {
		msg = msg + " " + constants.DRY_RUN_NOTE
	}
	err := requireConfirmation(msg)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, constants.ErrUserNotConfirmed):
		return false, nil
	default:
		return false, err
	}
}

func getConsentProvider(confirmed bool, dryRun bool) common.ConsentProvider {
	if confirmed {
		return common.AutoConsent{}
	}
	return PromptConsent{DryRun: dryRun}
}

type versionInfo struct {
	Version string `json:"tag_name"`
}

func checkForNewVersionAvailable() (bool, string) {
	slog.Debug("checking for new version")
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", constants.SCHOLARPAY_REPOSITORY))
	if err != nil {
		slog.Debug("failed to check latest version", "error", err.Error())
		return false, ""
	}
	defer resp.Body.Close()

	var info versionInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		slog.Debug("failed to check latest version", "error", err.Error())
		return false, ""
	}
	return isNewerVersion(info.Version)
}

func isNewerVersion(latestVersion string) (bool, string) {
	if latestVersion == "" {
		slog.Debug("failed to check latest version", "error", "empty tag")
		return false, ""
	}
	lv, err := version.NewVersion(latestVersion)
	if err != nil {
		slog.Debug("failed to check latest version", "error", err.Error())
		return false, ""
	}
	cv, err := version.NewVersion(constants.VERSION)
	if err != nil {
		slog.Debug("failed to check latest version", "error", err.Error())
		return false, ""
	}

	if cv.GreaterThanOrEqual(lv) {
		slog.Debug("running the latest version")
		return false, ""
	}
	slog.Info("new version available", "version", latestVersion)
	return true, latestVersion
}

func promptIfNewVersionAvailable() {
	if available, latestVersion := checkForNewVersionAvailable(); available {
		err := requireConfirmation(fmt.Sprintf("You are not running latest version of scholarpay (new version: '%s', current version: '%s').\n Do you want to continue anyway?", latestVersion, constants.VERSION))
		if errors.Is(err, constants.ErrUserNotConfirmed) {
			slog.Info("new version available", "url", fmt.Sprintf("https://github.com/%s/releases", constants.SCHOLARPAY_REPOSITORY))
			os.Exit(common.EXIT_OPERATION_CANCELED)
		}
	}
}
