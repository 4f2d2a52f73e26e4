package config_test

import (
	"testing"

	"github.com/gardener/ghrelease-publisher/pkg/cli/config"
	"github.com/m-mizutani/gt"
)

func TestPublish_Input(t *testing.T) {
	cfg := &config.Publish{
		Repository:    "gardener/vscode-gardener-tools",
		RepoDir:       "/src",
		OutPath:       "/out",
		VerifyArchive: true,
	}

	input := cfg.Input()
	gt.V(t, input.Repository).Equal("gardener/vscode-gardener-tools")
	gt.V(t, input.RepoDir).Equal("/src")
	gt.V(t, input.OutDir).Equal("/out")
	gt.True(t, input.VerifyArchive)
}

func TestSlack_Configure(t *testing.T) {
	gt.Value(t, (&config.Slack{}).Configure()).Nil()
	gt.Value(t, (&config.Slack{WebhookURL: "https://hooks.slack.com/services/x"}).Configure()).NotNil()
}

func TestSentry_Configure_Disabled(t *testing.T) {
	cfg := &config.Sentry{}
	gt.False(t, cfg.Enabled())
	gt.NoError(t, cfg.Configure())
}
