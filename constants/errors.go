package constants

import "errors"

var (
	// miscllaneous

	ErrNotImplemented   = errors.New("not implemented")
	ErrUserNotConfirmed = errors.New("user not confirmed")

	// load

	ErrConfigurationLoadFailed       = errors.New("failed to load configuration")
	ErrConfigurationValidationFailed = errors.New("failed to validate configuration")
	ErrSecretsLoadFailed             = errors.New("failed to load secrets")
	ErrSignerLoadFailed              = errors.New("failed to load signer engine")
	ErrTransactorLoadFailed          = errors.New("failed to load transactor engine")
	ErrCollectorLoadFailed           = errors.New("failed to load collector engine")
	ErrInvalidAddress                = errors.New("invalid address")
	ErrMissingSigner                 = errors.New("no signer configured for account")

	// context validation

	ErrMissingEngine           = errors.New("missing engine")
	ErrMissingSignerEngine     = errors.New("undefined signer engine")
	ErrMissingCollectorEngine  = errors.New("undefined collector engine")
	ErrMissingTransactorEngine = errors.New("undefined transactor engine")
	ErrMissingConfiguration    = errors.New("undefined configuration")
	ErrMissingSummary          = errors.New("undefined payout summary")
	ErrMissingConsentProvider  = errors.New("undefined consent provider")

	// split rules

	ErrInvalidSplitRules     = errors.New("invalid split rules")
	ErrNegativeManagerPayout = errors.New("negative manager payout")
	ErrInvalidPercentage     = errors.New("invalid percentage")

	// chain reads

	ErrChainRead           = errors.New("failed to read chain state")
	ErrNonceSeedFailed     = errors.New("failed to fetch account nonce")
	ErrReceiptNotFound     = errors.New("receipt not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrZeroBalance         = errors.New("account has zero balance")
	ErrNotOwner            = errors.New("asset not owned by account")
	ErrInvalidAmount       = errors.New("invalid amount")

	// execute

	ErrFailedToBuildOperation       = errors.New("failed to build operation")
	ErrFailedToSignOperation        = errors.New("failed to sign operation")
	ErrOperationBroadcastFailed     = errors.New("failed to broadcast operation")
	ErrConfirmationTimeout          = errors.New("operation was not confirmed in time")
	ErrOperationFailed              = errors.New("operation failed")
	ErrOperationAlreadyResolved     = errors.New("operation outcome already resolved")
	ErrExecutePayoutsUserTerminated = errors.New("user terminated execution")
	ErrUnsupportedTransferKind      = errors.New("unsupported transfer kind")

	// claims

	ErrClaimAuthorizationFailed = errors.New("failed to authorize claim")
	ErrNothingToClaim           = errors.New("nothing to claim")
	ErrMissingAccessToken       = errors.New("missing access token")

	// run lock

	ErrRunLockFailed = errors.New("failed to acquire run lock")

	// notifications

	ErrUnsupportedNotificator          = errors.New("unsupported notificator")
	ErrInvalidNotificatorConfiguration = errors.New("invalid notificator configuration")
)
