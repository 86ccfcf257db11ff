package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nikoksr/notify/service/mail"
	"github.com/ronin-capital/scholarpay/common"
	"github.com/ronin-capital/scholarpay/constants"
)

type emailNotificatorConfiguration struct {
	Type            string   `json:"type"`
	Sender          string   `json:"sender"`
	SmtpServer      string   `json:"smtp_server"`
	SmtpIdentity    string   `json:"smtp_identity"`
	SmtpUser        string   `json:"smtp_username"`
	SmtpPass        string   `json:"smtp_password"`
	Recipients      []string `json:"recipients"`
	MessageTemplate string   `json:"message_template"`
}

type EmailNotificator struct {
	session         *mail.Mail
	messageTemplate string
}

const (
	DEFAULT_EMAIL_MESSAGE_TEMPLATE = "<Summary>"
)

func InitEmailNotificator(configurationBytes []byte) (*EmailNotificator, error) {
	configuration := emailNotificatorConfiguration{}
	err := json.Unmarshal(configurationBytes, &configuration)
	if err != nil {
		return nil, err
	}
	msgTemplate := configuration.MessageTemplate
	if msgTemplate == "" {
		msgTemplate = DEFAULT_EMAIL_MESSAGE_TEMPLATE
	}

	session := mail.New(configuration.Sender, configuration.SmtpServer)
	session.AddReceivers(configuration.Recipients...)
	session.AuthenticateSMTP(configuration.SmtpIdentity, configuration.SmtpUser, configuration.SmtpPass, configuration.SmtpServer)

	slog.Debug("email notificator initialized")

	return &EmailNotificator{
		session:         session,
		messageTemplate: msgTemplate,
	}, nil
}

func ValidateEmailConfiguration(configurationBytes []byte) error {
	configuration := emailNotificatorConfiguration{}
	err := json.Unmarshal(configurationBytes, &configuration)
	if err != nil {
		return err
	}
	if configuration.Sender == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid email sender"))
	}
	if configuration.SmtpServer == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid smtp server"))
	}
	if len(configuration.Recipients) == 0 {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("no email recipients specified"))
	}
	return nil
}

func (en *EmailNotificator) PayoutSummaryNotify(summary *common.PayoutSummaryReport, additionalData map[string]string) error {
	return en.session.Send(context.Background(), fmt.Sprintf("Payout summary %s", summary.RunId), PopulateMessageTemplate(en.messageTemplate, summary, additionalData))
}

func (en *EmailNotificator) AdminNotify(msg string) error {
	return en.session.Send(context.Background(), string(ADMIN_NOTIFICATION), msg)
}

func (en *EmailNotificator) TestNotify() error {
	return en.session.Send(context.Background(), "test notification", "email test")
}
