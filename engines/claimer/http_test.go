package claimer_engines

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var account = common.MustParseAccount("ronin:2000000000000000000000000000000000000010")

func TestAuthorize(t *testing.T) {
	assert := assert.New(t)

	var path, authorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		authorization = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"claimable_total":150,"blockchain_related":{"signature":{"amount":150,"timestamp":1650000000,"signature":"0x0102ff"}}}`))
	}))
	defer server.Close()

	authorizer, err := InitHttpAuthorizer(server.URL+"/game-api", StaticTokenProvider{account: "token"}, nil)
	require.Nil(t, err)

	ticket, err := authorizer.Authorize(context.Background(), account)
	require.Nil(t, err)
	assert.Equal("/game-api/clients/0x2000000000000000000000000000000000000010/items/1/claim", path)
	assert.Equal("Bearer token", authorization)
	assert.Equal(int64(150), ticket.Amount.Int64())
	assert.Equal(int64(1650000000), ticket.CreatedAt.Int64())
	assert.Equal([]byte{0x01, 0x02, 0xff}, ticket.Signature)
}

func TestAuthorizeNothingToClaim(t *testing.T) {
	assert := assert.New(t)

	response := `{"success":true,"claimable_total":0,"blockchain_related":{"signature":{"amount":0,"timestamp":0,"signature":"0x00"}}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(response))
	}))
	defer server.Close()

	authorizer, _ := InitHttpAuthorizer(server.URL, StaticTokenProvider{account: "token"}, nil)
	_, err := authorizer.Authorize(context.Background(), account)
	assert.True(errors.Is(err, constants.ErrNothingToClaim))

	response = `{"success":true,"blockchain_related":{}}`
	_, err = authorizer.Authorize(context.Background(), account)
	assert.True(errors.Is(err, constants.ErrNothingToClaim))
}

func TestAuthorizeFailures(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	authorizer, _ := InitHttpAuthorizer(server.URL, StaticTokenProvider{account: "token"}, nil)
	_, err := authorizer.Authorize(context.Background(), account)
	assert.NotNil(err)
	assert.Contains(err.Error(), "401")
	assert.False(errors.Is(err, constants.ErrNothingToClaim))

	t.Log("missing token")
	authorizer, _ = InitHttpAuthorizer(server.URL, StaticTokenProvider{}, nil)
	_, err = authorizer.Authorize(context.Background(), account)
	assert.True(errors.Is(err, constants.ErrMissingAccessToken))
}
