package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
)

type webhookAuthorization string

const (
	WebhookAuthNone   webhookAuthorization = "none"
	WebhookAuthBearer webhookAuthorization = "bearer"
)

type webhookNotificatorConfiguration struct {
	Type  string               `json:"type"`
	Url   string               `json:"url"`
	Token string               `json:"token"`
	Auth  webhookAuthorization `json:"auth"`
}

type WebhookNotificator struct {
	client *http.Client
	url    string
	token  string
	auth   webhookAuthorization
}

type webhookMessage struct {
	Kind    string                      `json:"kind"`
	Message string                      `json:"message,omitempty"`
	Summary *common.PayoutSummaryReport `json:"summary,omitempty"`
	Data    map[string]string           `json:"data,omitempty"`
}

func InitWebhookNotificator(configurationBytes []byte) (*WebhookNotificator, error) {
	configuration := webhookNotificatorConfiguration{}
	err := json.Unmarshal(configurationBytes, &configuration)
	if err != nil {
		return nil, err
	}

	slog.Debug("webhook notificator initialized")

	return &WebhookNotificator{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    configuration.Url,
		token:  configuration.Token,
		auth:   configuration.Auth,
	}, nil
}

func ValidateWebhookConfiguration(configurationBytes []byte) error {
	configuration := webhookNotificatorConfiguration{}
	err := json.Unmarshal(configurationBytes, &configuration)
	if err != nil {
		return err
	}
	if configuration.Url == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid url"))
	}
	if u, err := url.Parse(configuration.Url); err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid url"))
	}
	if configuration.Auth == WebhookAuthBearer && configuration.Token == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid bearer token"))
	}
	return nil
}

func (wn *WebhookNotificator) post(message webhookMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, wn.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if wn.auth == WebhookAuthBearer {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", wn.token))
	}

	resp, err := wn.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to make request, status code: %d", resp.StatusCode)
	}
	return nil
}

func (wn *WebhookNotificator) PayoutSummaryNotify(summary *common.PayoutSummaryReport, additionalData map[string]string) error {
	return wn.post(webhookMessage{Kind: "payout_summary", Summary: summary, Data: additionalData})
}

func (wn *WebhookNotificator) AdminNotify(msg string) error {
	return wn.post(webhookMessage{Kind: "admin", Message: msg})
}

func (wn *WebhookNotificator) TestNotify() error {
	return wn.post(webhookMessage{Kind: "test", Message: "webhook test"})
}
