package config

import (
	"context"
	"os"

	"github.com/gardener/ghrelease-publisher/pkg/domain/interfaces"
	"github.com/gardener/ghrelease-publisher/pkg/domain/types"
	githubinfra "github.com/gardener/ghrelease-publisher/pkg/infra/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration and credentials
type GitHub struct {
	Token             string `masq:"secret"`
	AppID             int64
	AppInstallationID int64
	AppPrivateKey     string `masq:"secret"`
	APIURL            string
	UploadURL         string
	CredentialsFile   string
	ConfigName        string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token used for release lookup and asset upload",
			Destination: &c.Token,
			Sources:     cli.EnvVars("GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID, used when no token is given",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("PUBLISHER_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.AppInstallationID,
			Sources:     cli.EnvVars("PUBLISHER_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.AppPrivateKey,
			Sources:     cli.EnvVars("PUBLISHER_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API endpoint (for GitHub Enterprise)",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("PUBLISHER_GITHUB_API_URL"),
		},
		&cli.StringFlag{
			Name:        "github-upload-url",
			Usage:       "GitHub asset upload endpoint (for GitHub Enterprise)",
			Destination: &c.UploadURL,
			Sources:     cli.EnvVars("PUBLISHER_GITHUB_UPLOAD_URL"),
		},
		&cli.StringFlag{
			Name:        "github-credentials",
			Usage:       "Path to a TOML credentials file",
			Destination: &c.CredentialsFile,
			Sources:     cli.EnvVars("PUBLISHER_GITHUB_CREDENTIALS_FILE"),
		},
		&cli.StringFlag{
			Name:        "github-config-name",
			Usage:       "Entry of the credentials file to use",
			Value:       "github_com",
			Destination: &c.ConfigName,
			Sources:     cli.EnvVars("PUBLISHER_GITHUB_CONFIG_NAME"),
		},
	}
}

type credentialsFile struct {
	GitHub map[string]githubCredentials `toml:"github"`
}

type githubCredentials struct {
	APIURL            string `toml:"api_url"`
	UploadURL         string `toml:"upload_url"`
	Token             string `toml:"token"`
	AppID             int64  `toml:"app_id"`
	AppInstallationID int64  `toml:"app_installation_id"`
	AppPrivateKey     string `toml:"app_private_key"`
}

// Resolve merges the credentials file entry with flag values. Flags take precedence.
func (c *GitHub) Resolve() (*GitHub, error) {
	resolved := *c
	if c.CredentialsFile == "" {
		return &resolved, nil
	}

	raw, err := os.ReadFile(c.CredentialsFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read GitHub credentials file",
			goerr.V("path", c.CredentialsFile),
			goerr.T(types.ErrTagConfig),
		)
	}

	var file credentialsFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse GitHub credentials file",
			goerr.V("path", c.CredentialsFile),
			goerr.T(types.ErrTagConfig),
		)
	}

	entry, ok := file.GitHub[c.ConfigName]
	if !ok {
		return nil, goerr.New("GitHub config entry not found in credentials file",
			goerr.V("path", c.CredentialsFile),
			goerr.V("name", c.ConfigName),
			goerr.T(types.ErrTagConfig),
		)
	}

	setIfEmpty(&resolved.Token, entry.Token)
	setIfEmpty(&resolved.AppPrivateKey, entry.AppPrivateKey)
	setIfEmpty(&resolved.APIURL, entry.APIURL)
	setIfEmpty(&resolved.UploadURL, entry.UploadURL)
	if resolved.AppID == 0 {
		resolved.AppID = entry.AppID
	}
	if resolved.AppInstallationID == 0 {
		resolved.AppInstallationID = entry.AppInstallationID
	}

	return &resolved, nil
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// Configure creates a ReleaseClient from the resolved credentials. A token is
// preferred over GitHub App credentials.
func (c *GitHub) Configure(ctx context.Context) (interfaces.ReleaseClient, error) {
	resolved, err := c.Resolve()
	if err != nil {
		return nil, err
	}

	opts := []githubinfra.Option{
		githubinfra.WithBaseURL(resolved.APIURL, resolved.UploadURL),
	}

	switch {
	case resolved.Token != "":
		return githubinfra.NewClient(ctx, resolved.Token, opts...)

	case resolved.AppID != 0 && resolved.AppInstallationID != 0 && resolved.AppPrivateKey != "":
		return githubinfra.NewAppClient(resolved.AppID, resolved.AppInstallationID, []byte(resolved.AppPrivateKey), opts...)

	default:
		return nil, goerr.New("no GitHub credentials configured",
			goerr.V("config_name", c.ConfigName),
			goerr.T(types.ErrTagConfig),
		)
	}
}
