package claimer_engines

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
)

// TokenProvider supplies game api access tokens of accounts
type TokenProvider interface {
	GetAccessToken(ctx context.Context, account ethcmn.Address) (string, error)
}

// StaticTokenProvider serves tokens loaded from the secrets file
type StaticTokenProvider map[ethcmn.Address]string

func (p StaticTokenProvider) GetAccessToken(ctx context.Context, account ethcmn.Address) (string, error) {
	token, ok := p[account]
	if !ok || token == "" {
		return "", errors.Join(constants.ErrMissingAccessToken, fmt.Errorf("no access token for %s", common.ToRoninAddress(account)))
	}
	return token, nil
}

type claimSignature struct {
	Amount    json.Number `json:"amount"`
	Timestamp json.Number `json:"timestamp"`
	Signature string      `json:"signature"`
}

type claimResponse struct {
	Success           bool `json:"success"`
	BlockchainRelated struct {
		Signature *claimSignature `json:"signature"`
	} `json:"blockchain_related"`
	ClaimableTotal json.Number `json:"claimable_total"`
}

type HttpAuthorizer struct {
	*http.Client
	rootUrl *url.URL
	tokens  TokenProvider
}

func InitHttpAuthorizer(rootUrl string, tokens TokenProvider, httpClient *http.Client) (*HttpAuthorizer, error) {
	if !strings.HasSuffix(rootUrl, "/") {
		rootUrl += "/"
	}
	root, err := url.Parse(rootUrl)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}
	return &HttpAuthorizer{
		Client:  httpClient,
		rootUrl: root,
		tokens:  tokens,
	}, nil
}

func (authorizer *HttpAuthorizer) GetId() string {
	return "HttpAuthorizer"
}

func parseNumber(value json.Number, field string) (*big.Int, error) {
	result, ok := new(big.Int).SetString(value.String(), 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s '%s'", field, value)
	}
	return result, nil
}

// Authorize requests the signed claim of rewards: POST clients/<address>/items/1/claim
func (authorizer *HttpAuthorizer) Authorize(ctx context.Context, account ethcmn.Address) (*common.ClaimTicket, error) {
	token, err := authorizer.tokens.GetAccessToken(ctx, account)
	if err != nil {
		return nil, err
	}

	rel, err := url.Parse(fmt.Sprintf("clients/%s/items/1/claim", strings.ToLower(account.Hex())))
	if err != nil {
		return nil, err
	}
	u := authorizer.rootUrl.ResolveReference(rel).String()
	slog.Debug("requesting claim authorization", constants.LOG_FIELD_ACCOUNT, account.Hex(), "url", u)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "Bearer "+token)
	request.Header.Set("Accept", "application/json")

	resp, err := authorizer.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("game api responded with %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result claimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode claim response: %w", err)
	}
	signature := result.BlockchainRelated.Signature
	if signature == nil || signature.Signature == "" {
		return nil, errors.Join(constants.ErrNothingToClaim, errors.New("no claim signature issued"))
	}
	amount, err := parseNumber(signature.Amount, "amount")
	if err != nil {
		return nil, err
	}
	if amount.Sign() <= 0 {
		return nil, constants.ErrNothingToClaim
	}
	createdAt, err := parseNumber(signature.Timestamp, "timestamp")
	if err != nil {
		return nil, err
	}
	signatureBytes, err := hexutil.Decode(signature.Signature)
	if err != nil {
		return nil, fmt.Errorf("invalid claim signature: %w", err)
	}
	return &common.ClaimTicket{
		Amount:    amount,
		CreatedAt: createdAt,
		Signature: signatureBytes,
	}, nil
}
