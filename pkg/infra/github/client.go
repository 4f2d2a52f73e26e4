package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/gardener/ghrelease-publisher/pkg/domain/interfaces"
	"github.com/gardener/ghrelease-publisher/pkg/domain/model"
	"github.com/gardener/ghrelease-publisher/pkg/domain/types"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
)

type client struct {
	githubClient *github.Client
}

type config struct {
	baseURL    string
	uploadURL  string
	httpClient *http.Client
}

// Option is a functional option for the GitHub client
type Option func(*config)

// WithBaseURL sets the REST API and upload endpoints, e.g. for GitHub Enterprise.
// Empty values keep the github.com defaults.
func WithBaseURL(baseURL, uploadURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
		c.uploadURL = uploadURL
	}
}

// WithHTTPClient sets the underlying HTTP client used for token authentication
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new GitHub client authenticated with a token
func NewClient(ctx context.Context, token string, opts ...Option) (interfaces.ReleaseClient, error) {
	if token == "" {
		return nil, goerr.New("GitHub token is empty", goerr.T(types.ErrTagConfig))
	}

	cfg := applyOptions(opts)
	if cfg.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.httpClient)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	return newClient(oauth2.NewClient(ctx, ts), cfg)
}

// NewAppClient creates a new GitHub client with App installation authentication
func NewAppClient(appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.ReleaseClient, error) {
	cfg := applyOptions(opts)

	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.V("app_id", appID),
			goerr.V("installation_id", installationID),
			goerr.T(types.ErrTagConfig),
		)
	}
	if cfg.baseURL != "" {
		// Installation tokens are issued by the same API host the client talks to
		itr.BaseURL = strings.TrimSuffix(cfg.baseURL, "/")
	}

	return newClient(&http.Client{Transport: itr}, cfg)
}

func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func newClient(httpClient *http.Client, cfg *config) (interfaces.ReleaseClient, error) {
	githubClient := github.NewClient(httpClient)

	if cfg.baseURL != "" {
		u, err := parseEndpoint(cfg.baseURL)
		if err != nil {
			return nil, err
		}
		githubClient.BaseURL = u
	}
	if cfg.uploadURL != "" {
		u, err := parseEndpoint(cfg.uploadURL)
		if err != nil {
			return nil, err
		}
		githubClient.UploadURL = u
	}

	return &client{
		githubClient: githubClient,
	}, nil
}

// parseEndpoint parses an API endpoint. go-github requires a trailing slash.
func parseEndpoint(endpoint string) (*url.URL, error) {
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid GitHub API endpoint",
			goerr.V("endpoint", endpoint),
			goerr.T(types.ErrTagConfig),
		)
	}
	return u, nil
}

// GetReleaseByTag finds a release by its tag name
func (c *client) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*model.Release, error) {
	release, _, err := c.githubClient.Repositories.GetReleaseByTag(ctx, owner, repo, escapeTag(tag))
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(err, "release not found",
				goerr.V("owner", owner),
				goerr.V("repo", repo),
				goerr.V("tag", tag),
				goerr.T(types.ErrTagNotFound),
			)
		}
		return nil, goerr.Wrap(err, "failed to get release by tag",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("tag", tag),
			goerr.T(types.ErrTagTransport),
		)
	}

	return &model.Release{
		ID:        release.GetID(),
		TagName:   release.GetTagName(),
		Name:      release.GetName(),
		HTMLURL:   release.GetHTMLURL(),
		UploadURL: release.GetUploadURL(),
	}, nil
}

// UploadReleaseAsset uploads file as a release asset
func (c *client) UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, name, contentType string, file *os.File) (*model.ReleaseAsset, error) {
	opts := &github.UploadOptions{
		Name:      name,
		MediaType: contentType,
	}

	asset, _, err := c.githubClient.Repositories.UploadReleaseAsset(ctx, owner, repo, releaseID, opts, file)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload release asset",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("release_id", releaseID),
			goerr.V("name", name),
			goerr.T(types.ErrTagTransport),
		)
	}

	return &model.ReleaseAsset{
		ID:          asset.GetID(),
		Name:        asset.GetName(),
		ContentType: asset.GetContentType(),
		Size:        int64(asset.GetSize()),
		DownloadURL: asset.GetBrowserDownloadURL(),
	}, nil
}

// escapeTag escapes each path segment of tag. go-github puts the tag into the
// path as is, so whitespace would break URL parsing. Slashes are kept, as
// the GitHub API accepts hierarchical tags unescaped.
func escapeTag(tag string) string {
	segments := strings.Split(tag, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
