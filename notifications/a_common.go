package notifications

import (
	"fmt"
	"strings"

	"github.com/ronin-capital/scholarpay/common"
)

const (
	ADMIN_NOTIFICATION = "admin notification"
)

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// templateValues exposes <RunId>, <Token>, <Summary> and <{Role}Count>, <{Role}Total> for every recorded role
func templateValues(summary *common.PayoutSummaryReport, additionalData map[string]string) map[string]string {
	values := map[string]string{
		"RunId":   summary.RunId,
		"Token":   summary.Token,
		"Summary": summary.Text,
	}
	for _, role := range summary.Roles {
		name := capitalize(string(role.Role))
		values[name+"Count"] = fmt.Sprintf("%d", role.Count)
		values[name+"Total"] = role.Total
	}
	for k, v := range additionalData {
		values[k] = v
	}
	return values
}

func PopulateMessageTemplate(messageTemplate string, summary *common.PayoutSummaryReport, additionalData map[string]string) string {
	for k, v := range templateValues(summary, additionalData) {
		messageTemplate = strings.ReplaceAll(messageTemplate, fmt.Sprintf("<%s>", k), v)
	}
	return messageTemplate
}
