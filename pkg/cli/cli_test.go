package cli_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gardener/ghrelease-publisher/pkg/cli"
	"github.com/m-mizutani/gt"
)

type fakeGitHub struct {
	mu       sync.Mutex
	requests []string
	uploaded []string
}

func (f *fakeGitHub) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/repos/gardener/tools/releases/tags/1.2.3":
			_ = json.NewEncoder(w).Encode(map[string]any{"id": 5, "tag_name": "1.2.3"})

		case r.Method == http.MethodPost && r.URL.Path == "/repos/gardener/tools/releases/5/assets":
			_, err := io.Copy(io.Discard, r.Body)
			gt.NoError(t, err)
			f.uploaded = append(f.uploaded, r.URL.Query().Get("name"))
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": 9, "name": r.URL.Query().Get("name")})

		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		}
	})
}

func setupEnv(t *testing.T, serverURL, version string) {
	t.Helper()

	repoDir := t.TempDir()
	outDir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(repoDir, "VERSION"), []byte(version), 0600))
	gt.NoError(t, os.WriteFile(filepath.Join(outDir, "build-result"), []byte("vsix"), 0600))

	t.Setenv("SOURCE_GITHUB_REPO_OWNER_AND_NAME", "gardener/tools")
	t.Setenv("MAIN_REPO_DIR", repoDir)
	t.Setenv("OUT_PATH", outDir)
	t.Setenv("GITHUB_TOKEN", "test-token")
	t.Setenv("PUBLISHER_GITHUB_API_URL", serverURL)
	t.Setenv("PUBLISHER_GITHUB_UPLOAD_URL", serverURL)
	t.Setenv("PUBLISHER_GITHUB_CREDENTIALS_FILE", "")
	t.Setenv("PUBLISHER_SLACK_WEBHOOK_URL", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("PUBLISHER_LOG_LEVEL", "error")
}

func TestRun_Publish(t *testing.T) {
	fake := &fakeGitHub{}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	setupEnv(t, server.URL, "1.2.3")

	gt.NoError(t, cli.Run(t.Context(), []string{"ghrelease-publisher", "publish"}))

	gt.A(t, fake.uploaded).Length(1)
	gt.V(t, fake.uploaded[0]).Equal("vscode-gardener-tools-1.2.3.vsix")
}

func TestRun_DefaultCommand(t *testing.T) {
	fake := &fakeGitHub{}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	setupEnv(t, server.URL, "1.2.3")

	gt.NoError(t, cli.Run(t.Context(), []string{"ghrelease-publisher"}))
	gt.A(t, fake.uploaded).Length(1)
}

func TestRun_ReleaseNotFound(t *testing.T) {
	fake := &fakeGitHub{}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	setupEnv(t, server.URL, "0.0.1")

	gt.Error(t, cli.Run(t.Context(), []string{"ghrelease-publisher", "publish"}))
	gt.A(t, fake.requests).Length(1)
	gt.A(t, fake.uploaded).Length(0)
}

func TestRun_MissingEnv(t *testing.T) {
	for _, name := range []string{
		"SOURCE_GITHUB_REPO_OWNER_AND_NAME",
		"MAIN_REPO_DIR",
		"OUT_PATH",
	} {
		t.Run(name, func(t *testing.T) {
			fake := &fakeGitHub{}
			server := httptest.NewServer(fake.handler(t))
			defer server.Close()

			setupEnv(t, server.URL, "1.2.3")
			t.Setenv(name, "")

			gt.Error(t, cli.Run(t.Context(), []string{"ghrelease-publisher", "publish"}))
			gt.A(t, fake.requests).Length(0)
		})
	}
}

func TestRun_InvalidLogLevel(t *testing.T) {
	t.Setenv("PUBLISHER_LOG_LEVEL", "verbose")
	gt.Error(t, cli.Run(t.Context(), []string{"ghrelease-publisher", "publish"}))
}
