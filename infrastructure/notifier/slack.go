package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/vfg2006/ad-revenue-api/internal/config"
)

// Failure descreve a falha terminal de uma conta
type Failure struct {
	AccountID   string
	AccountName string
	NetworkCode string
	Message     string
	RunID       string
}

type Notifier interface {
	NotifyFailure(ctx context.Context, failure Failure) error
}

type SlackNotifier struct {
	webhookURL string
	channel    string
	httpClient *http.Client
}

// NewNotifier retorna o notificador do Slack, ou um que apenas registra em log quando não há webhook configurado
func NewNotifier(cfg config.Alert) Notifier {
	if cfg.SlackWebhookURL == "" {
		logrus.Warn("ALERT_SLACK_WEBHOOK_URL não configurado, alertas serão apenas registrados em log")
		return &logNotifier{}
	}

	return &SlackNotifier{
		webhookURL: cfg.SlackWebhookURL,
		channel:    cfg.Channel,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *SlackNotifier) NotifyFailure(ctx context.Context, failure Failure) error {
	msg := buildFailureMessage(n.channel, failure)

	if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.httpClient, msg); err != nil {
		return fmt.Errorf("erro ao enviar alerta para o Slack: %w", err)
	}

	return nil
}

func buildFailureMessage(channel string, failure Failure) *slack.WebhookMessage {
	fields := []slack.AttachmentField{
		{Title: "Conta", Value: fmt.Sprintf("%s (%s)", failure.AccountName, failure.AccountID), Short: true},
		{Title: "Network", Value: failure.NetworkCode, Short: true},
	}
	if failure.RunID != "" {
		fields = append(fields, slack.AttachmentField{Title: "Execução", Value: failure.RunID, Short: true})
	}

	return &slack.WebhookMessage{
		Channel: channel,
		Text:    fmt.Sprintf(":rotating_light: Falha ao buscar relatório de receita da conta %s", failure.AccountName),
		Attachments: []slack.Attachment{
			{
				Color:  "danger",
				Text:   failure.Message,
				Fields: fields,
			},
		},
	}
}

type logNotifier struct{}

func (n *logNotifier) NotifyFailure(ctx context.Context, failure Failure) error {
	logrus.WithFields(logrus.Fields{
		"account_id":   failure.AccountID,
		"account_name": failure.AccountName,
		"network_code": failure.NetworkCode,
		"run_id":       failure.RunID,
	}).Error("Alerta de falha: ", failure.Message)
	return nil
}
