package config

import (
	"github.com/gardener/ghrelease-publisher/pkg/domain/interfaces"
	slackinfra "github.com/gardener/ghrelease-publisher/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
	Channel    string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for publish notifications",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("PUBLISHER_SLACK_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel overriding the webhook default",
			Destination: &c.Channel,
			Sources:     cli.EnvVars("PUBLISHER_SLACK_CHANNEL"),
		},
	}
}

// Configure returns a Notifier, or nil when no webhook URL is set
func (c *Slack) Configure() interfaces.Notifier {
	if c.WebhookURL == "" {
		return nil
	}
	return slackinfra.NewNotifier(c.WebhookURL, c.Channel)
}
