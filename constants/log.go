package constants

const (
	LOG_MESSAGE_PLAN_COMPUTED   = "payout plan computed"
	LOG_MESSAGE_PAYOUT_SUMMARY  = "payout summary"
	LOG_MESSAGE_CLAIM_SUMMARY   = "claim summary"
	LOG_MESSAGE_TRANSFER_RESULT = "transfer results"

	LOG_FIELD_ACCOUNT   = "account"
	LOG_FIELD_RECIPIENT = "recipient"
	LOG_FIELD_AMOUNT    = "amount"
	LOG_FIELD_NONCE     = "nonce"
	LOG_FIELD_TX_HASH   = "tx_hash"
	LOG_FIELD_PHASE     = "phase"
	LOG_FIELD_PLAN      = "plan"
	LOG_FIELD_RESULTS   = "results"
	LOG_FIELD_SUMMARY   = "summary"
	LOG_FIELD_RUN_ID    = "run_id"
)
