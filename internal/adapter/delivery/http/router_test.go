package http

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	handler "rpc-speed-bot/internal/adapter/handler/http"
	"rpc-speed-bot/internal/domain"
	"rpc-speed-bot/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp/fasthttputil"
	"go.uber.org/zap"
)

type stubMonitor struct {
	snapshot *entity.Snapshot
}

func (s *stubMonitor) RunCycle(context.Context) (entity.Snapshot, error) { return entity.Snapshot{}, nil }
func (s *stubMonitor) Run(context.Context) error                         { return nil }
func (s *stubMonitor) Latest(context.Context) (entity.Snapshot, error) {
	if s.snapshot == nil {
		return entity.Snapshot{}, domain.ErrNoSnapshot
	}
	return *s.snapshot, nil
}

func serve(t *testing.T, m *stubMonitor) *http.Client {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := NewServer(handler.NewStatusHandler(m, zap.NewNop()), zap.NewNop())
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	return &http.Client{
		Timeout: 2 * time.Second,
		Transport: &http.Transport{
			DisableKeepAlives: true,
			DialContext: func(context.Context, string, string) (net.Conn, error) { return ln.Dial() },
		},
	}
}

func get(t *testing.T, c *http.Client, path string) (int, []byte) {
	t.Helper()
	resp, err := c.Get("http://bot" + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	c := serve(t, &stubMonitor{})
	code, body := get(t, c, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", string(body))
}

func TestSnapshot_NotYetAvailable(t *testing.T) {
	c := serve(t, &stubMonitor{})
	code, _ := get(t, c, "/snapshot")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get(t, c, "/targets/A")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSnapshotAndTarget(t *testing.T) {
	block := uint64(16)
	latency := int64(12)
	c := serve(t, &stubMonitor{snapshot: &entity.Snapshot{
		Tick: 2,
		Rows: []entity.DisplayRow{
			{Name: "A", RequestTotalCount: 2, SuccessCount: 2, SuccessRate: 100, LatencyMs: &latency, BlockNumber: &block},
			{Name: "B", RequestTotalCount: 2, FailedCount: 2},
		},
	}})

	code, body := get(t, c, "/snapshot")
	require.Equal(t, http.StatusOK, code)
	var snap entity.Snapshot
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.Equal(t, uint64(2), snap.Tick)
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, "B", snap.Rows[1].Name)

	code, body = get(t, c, "/targets/A")
	require.Equal(t, http.StatusOK, code)
	var row entity.DisplayRow
	require.NoError(t, json.Unmarshal(body, &row))
	assert.Equal(t, "A", row.Name)
	require.NotNil(t, row.BlockNumber)
	assert.Equal(t, uint64(16), *row.BlockNumber)

	code, _ = get(t, c, "/targets/missing")
	assert.Equal(t, http.StatusNotFound, code)
}
