package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gardener/ghrelease-publisher/pkg/cli/config"
	"github.com/gardener/ghrelease-publisher/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdPublish() *cli.Command {
	var (
		publishCfg config.Publish
		githubCfg  config.GitHub
		slackCfg   config.Slack
	)

	flags := append(publishCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "publish",
		Aliases: []string{"p"},
		Usage:   "Upload build-result to the release matching VERSION",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := ctxlog.From(ctx)
			input := publishCfg.Input()

			// Fail on missing inputs before credentials are touched
			if err := input.Validate(); err != nil {
				return err
			}

			logger.Debug("Publish configuration",
				slog.Any("publish", publishCfg),
				slog.Any("github", githubCfg),
			)

			releaseClient, err := githubCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure GitHub client")
			}

			var opts []usecase.PublishOption
			if notifier := slackCfg.Configure(); notifier != nil {
				opts = append(opts, usecase.WithNotifier(notifier))
			}

			result, err := usecase.NewPublish(releaseClient, opts...).Publish(ctx, input)
			if err != nil {
				return err
			}

			logger.Info("Published release asset",
				slog.String("repository", result.Repository.String()),
				slog.String("tag", result.Version),
				slog.String("asset", result.Asset.Name),
			)
			return nil
		},
	}
}
