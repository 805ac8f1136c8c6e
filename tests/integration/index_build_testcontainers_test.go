//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"reqctl/internal/adapters"
	"reqctl/internal/app"
	"reqctl/tests/testutil"
)

// simpleIndexScript serves a minimal PEP 503 simple index over HTTP.
// The listing mirrors the version sets of the sample fixtures closely
// enough to lock the fixture manifest.
const simpleIndexScript = `
import http.server

PACKAGES = {
    "matplotlib": ["1.4.3", "1.5.0", "1.5.1", "2.0.2"],
    "scikit-learn": ["0.17.1", "0.18.0", "0.18.2", "0.19.1"],
    "dill": ["0.2.4", "0.2.5", "0.2.7.1"],
    "nose": ["1.3.6", "1.3.7"],
    "coverage": ["4.2", "4.5.1"],
    "h5py": ["2.6.0", "2.7.0", "2.7.1"],
}

class Handler(http.server.BaseHTTPRequestHandler):
    def do_GET(self):
        parts = [p for p in self.path.split("/") if p]
        if parts == ["simple"]:
            body = "".join(
                '<a href="/simple/%s/">%s</a>' % (name, name) for name in sorted(PACKAGES)
            )
        elif len(parts) == 2 and parts[0] == "simple" and parts[1] in PACKAGES:
            name = parts[1]
            body = "".join(
                '<a href="/files/%s-%s.tar.gz">%s-%s.tar.gz</a>' % (name, v, name, v)
                for v in PACKAGES[name]
            )
        else:
            self.send_response(404)
            self.end_headers()
            return
        data = body.encode()
        self.send_response(200)
        self.send_header("Content-Type", "text/html")
        self.send_header("Content-Length", str(len(data)))
        self.end_headers()
        self.wfile.write(data)

    def log_message(self, *args):
        pass

http.server.HTTPServer(("", 8080), Handler).serve_forever()
`

func startSimpleIndex(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8080/tcp"},
		Cmd:          []string{"python", "-c", simpleIndexScript},
		WaitingFor:   wait.ForListeningPort("8080/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

func TestIndexBuildAndLockWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startSimpleIndex(ctx, t)
	t.Cleanup(cleanup)

	root := testutil.RepoRoot(t)
	workDir := t.TempDir()
	indexPath := filepath.Join(workDir, "package-index.yaml")
	outputDir := filepath.Join(workDir, "out")

	service := app.NewService()
	indexResult, err := service.BuildIndex(ctx, app.IndexBuildRequest{
		Output:           indexPath,
		IndexURL:         endpoint,
		HTTPTimeoutSec:   10,
		HTTPRetries:      1,
		HTTPRetryDelayMs: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, indexResult.PackageCount)

	lockResult, err := service.Lock(ctx, app.LockRequest{
		ManifestPath: filepath.Join(root, "fixtures", "requirements.txt"),
		IndexPath:    indexPath,
		OutputDir:    outputDir,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, lockResult.LockCount)

	entries, _, err := adapters.NewOutputReaderAdapter().
		ReadLock(filepath.Join(outputDir, adapters.LockFileName))
	require.NoError(t, err)

	locked := map[string]string{}
	for _, entry := range entries {
		locked[entry.Package] = entry.Version
	}
	assert.Equal(t, "1.5.1", locked["matplotlib"])
	assert.Equal(t, "0.19.1", locked["scikit-learn"])
	assert.Equal(t, "2.7.1", locked["h5py"])

	_, err = os.Stat(filepath.Join(outputDir, adapters.OverrideReportFileName))
	assert.True(t, os.IsNotExist(err), "no override report expected without directives")
}
