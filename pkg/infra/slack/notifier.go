package slack

import (
	"context"
	"fmt"

	"github.com/gardener/ghrelease-publisher/pkg/domain/interfaces"
	"github.com/gardener/ghrelease-publisher/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

type notifier struct {
	webhookURL string
	channel    string
}

// NewNotifier creates a Notifier posting to a Slack incoming webhook.
// channel may be empty to use the webhook's default channel.
func NewNotifier(webhookURL, channel string) interfaces.Notifier {
	return &notifier{
		webhookURL: webhookURL,
		channel:    channel,
	}
}

// NotifyPublished posts the uploaded asset and its release
func (n *notifier) NotifyPublished(ctx context.Context, result *model.PublishResult) error {
	msg := &slack.WebhookMessage{
		Channel: n.channel,
		Text:    formatMessage(result),
	}

	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post slack webhook",
			goerr.V("repository", result.Repository.String()),
		)
	}
	return nil
}

func formatMessage(result *model.PublishResult) string {
	release := result.Release.Name
	if release == "" {
		release = result.Release.TagName
	}
	if result.Release.HTMLURL != "" {
		release = fmt.Sprintf("<%s|%s>", result.Release.HTMLURL, release)
	}

	return fmt.Sprintf("Uploaded `%s` to release %s of %s",
		result.Asset.Name, release, result.Repository.String())
}
