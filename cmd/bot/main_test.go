package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rpc-speed-bot/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig creates a config dir whose targets file is targetsPath and whose
// logs go to a temp file.
func writeConfig(t *testing.T, targetsPath string) string {
	t.Helper()
	testChdir(t, t.TempDir())
	dir := t.TempDir()
	cfg := fmt.Sprintf(`
logger:
  file: %s
monitor:
  targets_file: %s
  interval: 1h
  probe_timeout: 2s
`, filepath.Join(dir, "bot.log"), targetsPath)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o644))
	return dir
}

func TestRun_PollsAndRendersTable(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":1,"jsonrpc":"2.0","result":{"number":"0x10"}}`)
	}))
	defer ok.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	}))
	defer bad.Close()

	targets := filepath.Join(t.TempDir(), "rpc.json")
	require.NoError(t, os.WriteFile(targets, []byte(fmt.Sprintf(
		`[{"name":"A","rpc":%q},{"name":"B","rpc":%q}]`, ok.URL, bad.URL)), 0o644))
	dir := writeConfig(t, targets)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	require.NoError(t, run(ctx, dir, &out))

	table := out.String()
	assert.Contains(t, table, "RPC test speed bot")
	assert.Contains(t, table, "Latest Block Number")
	assert.Less(t, strings.Index(table, "| A "), strings.Index(table, "| B "))
	assert.Contains(t, table, "100.00%")
	assert.Contains(t, table, "0.00%")
	assert.Contains(t, table, " 16 ")
	assert.Equal(t, 1, strings.Count(table, "RPC test speed bot"))
}

func TestRun_MissingTargetsFileIsSilent(t *testing.T) {
	dir := writeConfig(t, filepath.Join(t.TempDir(), "absent.json"))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), dir, &out))
	assert.Empty(t, out.String())
}

func TestRun_EmptyTargetsFileIsSilent(t *testing.T) {
	targets := filepath.Join(t.TempDir(), "rpc.json")
	require.NoError(t, os.WriteFile(targets, []byte(`[]`), 0o644))
	dir := writeConfig(t, targets)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), dir, &out))
	assert.Empty(t, out.String())
}

func TestRun_MalformedTargetsFileFails(t *testing.T) {
	targets := filepath.Join(t.TempDir(), "rpc.json")
	require.NoError(t, os.WriteFile(targets, []byte(`[{"name": "A"}]`), 0o644))
	dir := writeConfig(t, targets)

	var out bytes.Buffer
	err := run(context.Background(), dir, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfigLoad)
	assert.Empty(t, out.String())
}

func TestValidateCmd(t *testing.T) {
	testChdir(t, t.TempDir())
	targets := filepath.Join(t.TempDir(), "rpc.yaml")
	require.NoError(t, os.WriteFile(targets, []byte("- name: A\n  rpc: https://a.example\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"validate", targets})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "Targets file is valid!")
	assert.Contains(t, out.String(), "Targets: 1")
	assert.Contains(t, out.String(), "A (https://a.example)")
}

func TestValidateCmd_Invalid(t *testing.T) {
	testChdir(t, t.TempDir())
	targets := filepath.Join(t.TempDir(), "rpc.json")
	require.NoError(t, os.WriteFile(targets, []byte(`[{"rpc": "http://a"}]`), 0o644))

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"validate", targets})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfigLoad)
}

// testChdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains:
// it changes the working directory and restores it when the test ends.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
