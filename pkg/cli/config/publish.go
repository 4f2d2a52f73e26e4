package config

import (
	"github.com/gardener/ghrelease-publisher/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Publish holds the publish target. All values are required; they are
// checked by the use case so that a missing value fails before any API call.
type Publish struct {
	Repository    string
	RepoDir       string
	OutPath       string
	VerifyArchive bool
}

// Flags returns CLI flags for publish configuration
func (c *Publish) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Target GitHub repository (owner/name)",
			Destination: &c.Repository,
			Sources:     cli.EnvVars("SOURCE_GITHUB_REPO_OWNER_AND_NAME"),
		},
		&cli.StringFlag{
			Name:        "repo-dir",
			Usage:       "Repository checkout containing the VERSION file",
			Destination: &c.RepoDir,
			Sources:     cli.EnvVars("MAIN_REPO_DIR"),
		},
		&cli.StringFlag{
			Name:        "out-path",
			Usage:       "Directory containing the build-result artifact",
			Destination: &c.OutPath,
			Sources:     cli.EnvVars("OUT_PATH"),
		},
		&cli.BoolFlag{
			Name:        "verify-archive",
			Usage:       "Check that the artifact is a zip archive before uploading",
			Destination: &c.VerifyArchive,
			Sources:     cli.EnvVars("PUBLISHER_VERIFY_ARCHIVE"),
		},
	}
}

// Input converts the configuration into the use case input
func (c *Publish) Input() *model.PublishInput {
	return &model.PublishInput{
		Repository:    c.Repository,
		RepoDir:       c.RepoDir,
		OutDir:        c.OutPath,
		VerifyArchive: c.VerifyArchive,
	}
}
