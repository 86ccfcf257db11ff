package constants

import "time"

const (
	DEFAULT_READ_RPC_URL  = "https://api.roninchain.com/rpc"
	DEFAULT_WRITE_RPC_URL = "https://proxy.roninchain.com/free-gas-rpc"
	DEFAULT_EXPLORER_URL  = "https://app.roninchain.com/tx/"
	DEFAULT_CHAIN_ID      = int64(2020)

	DEFAULT_GAS_LIMIT            = uint64(492874)
	DEFAULT_GAS_PRICE            = int64(0)
	DEFAULT_WRITE_RPC_RATE_LIMIT = float64(2) // requests per second
	DEFAULT_CLAIM_CONCURRENCY    = 4

	DEFAULT_TOKEN_CONTRACT = "0xa8754b9fa15fc18bb59458815510e40a12cd5014"
	DEFAULT_TOKEN_SYMBOL   = "SLP"
	DEFAULT_TOKEN_DECIMALS = 0
	DEFAULT_NFT_CONTRACT   = "0x32950db2a7164ae833121501c797d79e7b79d74c"

	DEFAULT_CLAIM_API_URL = "https://game-api.skymavis.com/game-api/"

	// recipient of the platform fee
	PLATFORM_FEE_ADDRESS    = "0x9fa1bc784c665e683597d3f29375e45786617550"
	DEFAULT_FEE_PERCENTAGE  = float64(1)
	RONIN_ADDRESS_PREFIX    = "ronin:"
	ETHEREUM_ADDRESS_PREFIX = "0x"

	DEFAULT_CONFIRMATION_POLL_INTERVAL = 10 * time.Second
	DEFAULT_CONFIRMATION_TIMEOUT       = 5 * time.Minute
	RUN_LOCK_TIMEOUT                   = 10 * time.Second

	CONFIG_FILE_NAME          = "config.hjson"
	SECRETS_FILE_NAME         = "secrets.hjson"
	TRANSFERS_FILE_NAME       = "transfers.hjson"
	LOCK_FILE_NAME            = ".scholarpay.lock"
	PAYOUT_REPORT_FILE_NAME   = "payouts.csv"
	REPORT_SUMMARY_FILE_NAME  = "summary.json"
	REPORTS_DIRECTORY         = "reports"
	DRY_RUN_REPORTS_DIRECTORY = "dry"
)
