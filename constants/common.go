package constants

const (
	CODENAME = "scholarpay"
	VERSION  = "0.4.2"

	SCHOLARPAY_REPOSITORY = "ronin-capital/scholarpay"

	DRY_RUN_NOTE = "(dry run - no transactions will be sent)"
)
