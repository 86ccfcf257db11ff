package cmd

const (
	CONFIRM_FLAG            = "confirm"
	DRY_RUN_FLAG            = "dry-run"
	NOTIFICATOR_FLAG        = "notificator"
	SILENT_FLAG             = "silent"
	REPORT_TO_STDOUT        = "report-to-stdout"
	ACCOUNT_FLAG            = "account"
	FROM_FILE_FLAG          = "from-file"
	SKIP_VERSION_CHECK_FLAG = "skip-version-check"
)
