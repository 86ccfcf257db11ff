package enums

type EWalletMode string

const (
	WALLET_MODE_LOCAL_PRIVATE_KEY EWalletMode = "key"
	WALLET_MODE_KEYSTORE          EWalletMode = "keystore"
	WALLET_MODE_KMS               EWalletMode = "kms"
	WALLET_MODE_TREZOR            EWalletMode = "trezor"
)

var (
	SUPPORTED_WALLET_MODES = []EWalletMode{
		WALLET_MODE_LOCAL_PRIVATE_KEY,
		WALLET_MODE_KEYSTORE,
		WALLET_MODE_KMS,
		WALLET_MODE_TREZOR,
	}
)

type ESplitDialect string

const (
	// new format, manager gets a percentage reduced by fee and donations
	SPLIT_DIALECT_PERCENTAGE ESplitDialect = "percentage"
	// old format, fixed addends, manager gets whatever remains
	SPLIT_DIALECT_LEGACY ESplitDialect = "legacy"
)

var (
	SUPPORTED_SPLIT_DIALECTS = []ESplitDialect{
		SPLIT_DIALECT_PERCENTAGE,
		SPLIT_DIALECT_LEGACY,
	}
)

type EPayoutKind string

const (
	PAYOUT_KIND_SCHOLAR  EPayoutKind = "scholar"
	PAYOUT_KIND_TRAINER  EPayoutKind = "trainer"
	PAYOUT_KIND_MANAGER  EPayoutKind = "manager"
	PAYOUT_KIND_OTHER    EPayoutKind = "other"
	PAYOUT_KIND_DONATION EPayoutKind = "donation"
	PAYOUT_KIND_FEE      EPayoutKind = "fee"
	PAYOUT_KIND_CLAIM    EPayoutKind = "claim"
	// asset moves outside of payouts
	PAYOUT_KIND_NFT      EPayoutKind = "nft"
	PAYOUT_KIND_TRANSFER EPayoutKind = "transfer"
)

// order in which payee lines are emitted, lower goes first
func (kind EPayoutKind) ToPriority() int {
	switch kind {
	case PAYOUT_KIND_SCHOLAR:
		return 0
	case PAYOUT_KIND_TRAINER:
		return 1
	case PAYOUT_KIND_OTHER:
		return 2
	case PAYOUT_KIND_DONATION:
		return 3
	case PAYOUT_KIND_FEE:
		return 4
	case PAYOUT_KIND_MANAGER:
		return 5
	default:
		return 6
	}
}

func (kind EPayoutKind) ToSummaryRole() ESummaryRole {
	switch kind {
	case PAYOUT_KIND_MANAGER:
		return SUMMARY_ROLE_MANAGER
	case PAYOUT_KIND_SCHOLAR:
		return SUMMARY_ROLE_SCHOLAR
	case PAYOUT_KIND_TRAINER:
		return SUMMARY_ROLE_TRAINER
	case PAYOUT_KIND_DONATION, PAYOUT_KIND_FEE:
		return SUMMARY_ROLE_DONATION
	case PAYOUT_KIND_CLAIM:
		return SUMMARY_ROLE_CLAIM
	default:
		return SUMMARY_ROLE_OTHER
	}
}

// maps configured persona names to payout kinds, unknown personas are paid as "other"
func ParsePayoutKind(persona string) EPayoutKind {
	switch EPayoutKind(persona) {
	case PAYOUT_KIND_SCHOLAR, PAYOUT_KIND_TRAINER, PAYOUT_KIND_MANAGER:
		return EPayoutKind(persona)
	default:
		return PAYOUT_KIND_OTHER
	}
}

type ESummaryRole string

const (
	SUMMARY_ROLE_MANAGER  ESummaryRole = "manager"
	SUMMARY_ROLE_SCHOLAR  ESummaryRole = "scholar"
	SUMMARY_ROLE_TRAINER  ESummaryRole = "trainer"
	SUMMARY_ROLE_OTHER    ESummaryRole = "other"
	SUMMARY_ROLE_DONATION ESummaryRole = "donation"
	SUMMARY_ROLE_CLAIM    ESummaryRole = "claim"
)

var (
	// fixed order of the rendered summary
	SUMMARY_ROLES_ORDER = []ESummaryRole{
		SUMMARY_ROLE_MANAGER,
		SUMMARY_ROLE_SCHOLAR,
		SUMMARY_ROLE_TRAINER,
		SUMMARY_ROLE_OTHER,
		SUMMARY_ROLE_DONATION,
		SUMMARY_ROLE_CLAIM,
	}
)

type ETransferKind string

const (
	TRANSFER_KIND_NATIVE   ETransferKind = "native"
	TRANSFER_KIND_TOKEN    ETransferKind = "token"
	TRANSFER_KIND_NFT      ETransferKind = "nft"
	TRANSFER_KIND_CONTRACT ETransferKind = "contract_call"
)

type ETxStatus string

const (
	TX_STATUS_PENDING   ETxStatus = "pending"
	TX_STATUS_CONFIRMED ETxStatus = "confirmed"
	TX_STATUS_FAILED    ETxStatus = "failed"
	TX_STATUS_TIMED_OUT ETxStatus = "timed_out"
)

func (status ETxStatus) IsTerminal() bool {
	return status == TX_STATUS_CONFIRMED || status == TX_STATUS_FAILED || status == TX_STATUS_TIMED_OUT
}

type EAccountPayoutState string

const (
	ACCOUNT_STATE_PLANNED          EAccountPayoutState = "planned"
	ACCOUNT_STATE_AWAITING_CONSENT EAccountPayoutState = "awaiting_consent"
	ACCOUNT_STATE_EXECUTING        EAccountPayoutState = "executing"
	ACCOUNT_STATE_COMPLETED        EAccountPayoutState = "completed"
	ACCOUNT_STATE_CANCELLED        EAccountPayoutState = "cancelled"
	ACCOUNT_STATE_PREVIEWED        EAccountPayoutState = "previewed"
	// skipped before planning finished (chain read failure, empty or insufficient balance)
	ACCOUNT_STATE_SKIPPED EAccountPayoutState = "skipped"
	// split rules produced an invalid plan
	ACCOUNT_STATE_REJECTED EAccountPayoutState = "rejected"
)

type ENotificatorKind string

const (
	NOTIFICATOR_DISCORD  ENotificatorKind = "discord"
	NOTIFICATOR_TELEGRAM ENotificatorKind = "telegram"
	NOTIFICATOR_EMAIL    ENotificatorKind = "email"
	NOTIFICATOR_WEBHOOK  ENotificatorKind = "webhook"
)

type EReporterKind string

const (
	REPORTER_FILE_SYSTEM EReporterKind = "fs"
	REPORTER_GCS         EReporterKind = "gcs"
	REPORTER_STDIO       EReporterKind = "stdio"
)
