package report

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehdc-llpg/linkage/internal/obslog"
)

func testLogger(t *testing.T) *obslog.Logger {
	t.Helper()
	log, err := obslog.NewProduction(false)
	require.NoError(t, err)
	return log
}

func TestServerGetReportStreamsCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "groups.csv"), []byte("GroupID,address\n0,14 High Street\n0,14 High St\n-,2 Station Road\n"), 0o644))

	s := NewServer(dir, testLogger(t))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/groups.csv", nil)
	s.router.ServeHTTP(rr, req)

	assert.Equal(t, 200, rr.Code)
	assert.Contains(t, rr.Body.String(), "14 High Street")
}

func TestServerGetReportRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	s := NewServer(dir, testLogger(t))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/..%2Fsecret", nil)
	s.router.ServeHTTP(rr, req)

	assert.NotEqual(t, 200, rr.Code)
}

func TestServerGetGroupReturnsMatchingRows(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "groups.csv"), []byte("GroupID,address\n0,14 High Street\n0,14 High St\n-,2 Station Road\n"), 0o644))

	s := NewServer(dir, testLogger(t))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/groups/0", nil)
	s.router.ServeHTTP(rr, req)

	assert.Equal(t, 200, rr.Code)
	assert.Contains(t, rr.Body.String(), "14 High Street")
	assert.Contains(t, rr.Body.String(), "14 High St")
}

func TestServerGetGroupMissingReturns404(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "groups.csv"), []byte("GroupID,address\n0,14 High Street\n"), 0o644))

	s := NewServer(dir, testLogger(t))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/groups/99", nil)
	s.router.ServeHTTP(rr, req)

	assert.Equal(t, 404, rr.Code)
}
