package transactor_engines

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/ronin-capital/scholarpay/configuration"
	"github.com/ronin-capital/scholarpay/constants"
	"golang.org/x/time/rate"
)

// node answer to a resubmission of bytes it already holds
const ALREADY_KNOWN_ERROR = "already known"

type transactionSender interface {
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

type DefaultRpcTransactor struct {
	rpcUrl  string
	client  transactionSender
	limiter *rate.Limiter
}

func InitDefaultTransactor(ctx context.Context, config *configuration.RuntimeConfiguration) (*DefaultRpcTransactor, error) {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}
	rpcClient, err := rpc.DialOptions(ctx, config.Network.WriteRpcUrl, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, errors.Join(constants.ErrTransactorLoadFailed, err)
	}
	return NewDefaultTransactor(config.Network.WriteRpcUrl, ethclient.NewClient(rpcClient), config.Network.WriteRateLimit), nil
}

// NewDefaultTransactor sends at most requestsPerSecond broadcasts to the write endpoint
func NewDefaultTransactor(rpcUrl string, client transactionSender, requestsPerSecond float64) *DefaultRpcTransactor {
	if requestsPerSecond <= 0 {
		requestsPerSecond = constants.DEFAULT_WRITE_RPC_RATE_LIMIT
	}
	return &DefaultRpcTransactor{
		rpcUrl:  rpcUrl,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

func (transactor *DefaultRpcTransactor) GetId() string {
	return "DefaultRpcTransactor"
}

func (transactor *DefaultRpcTransactor) Broadcast(ctx context.Context, tx *types.Transaction) (ethcmn.Hash, error) {
	if err := transactor.limiter.Wait(ctx); err != nil {
		return ethcmn.Hash{}, errors.Join(constants.ErrOperationBroadcastFailed, err)
	}
	err := transactor.client.SendTransaction(ctx, tx)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), ALREADY_KNOWN_ERROR) {
		slog.Debug("transaction already known to the node", constants.LOG_FIELD_TX_HASH, tx.Hash().Hex())
		err = nil
	}
	if err != nil {
		return ethcmn.Hash{}, errors.Join(constants.ErrOperationBroadcastFailed, err)
	}
	return tx.Hash(), nil
}
