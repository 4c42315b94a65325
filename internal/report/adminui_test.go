package report

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminUIListRunsFindsRunDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "run-1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "run-1", "groups.csv"), []byte("GroupID\n0\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "run-2"), 0o755))

	ui := NewAdminUI(root, testLogger(t))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/runs", nil)
	ui.engine.ServeHTTP(rr, req)

	assert.Equal(t, 200, rr.Code)
	assert.Contains(t, rr.Body.String(), "run-1")
	assert.Contains(t, rr.Body.String(), "run-2")
	assert.Contains(t, rr.Body.String(), `"has_groups":true`)
}

func TestAdminUIRunDetailListsFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "run-1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "run-1", "groups.csv"), []byte("GroupID\n0\n"), 0o644))

	ui := NewAdminUI(root, testLogger(t))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/runs/run-1", nil)
	ui.engine.ServeHTTP(rr, req)

	assert.Equal(t, 200, rr.Code)
	assert.Contains(t, rr.Body.String(), "groups.csv")
}

func TestAdminUIRunDetailMissingReturns404(t *testing.T) {
	root := t.TempDir()
	ui := NewAdminUI(root, testLogger(t))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/runs/nope", nil)
	ui.engine.ServeHTTP(rr, req)

	assert.Equal(t, 404, rr.Code)
}
