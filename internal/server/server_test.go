package server

import (
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerServesSite(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "index.html"), []byte("<h1>home</h1>"), 0o644))

	p := New(out, nil, nil, Options{})
	srv := httptest.NewServer(p.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "home")
}

func TestHandlerMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New(t.TempDir(), nil, nil, Options{Registry: reg})
	srv := httptest.NewServer(p.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandlerNoMetricsWithoutRegistry(t *testing.T) {
	p := New(t.TempDir(), nil, nil, Options{})
	srv := httptest.NewServer(p.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDebouncerCoalesces(t *testing.T) {
	req, trigger := newDebouncer(20 * time.Millisecond)

	for range 5 {
		trigger()
	}

	select {
	case <-req:
	case <-time.After(time.Second):
		t.Fatal("debouncer never fired")
	}

	select {
	case <-req:
		t.Fatal("burst produced more than one request")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRebuildWorkerQueuesFollowup(t *testing.T) {
	var count atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	p := New(t.TempDir(), nil, func(context.Context) error {
		if count.Add(1) == 1 {
			close(started)
			<-release
		}
		return nil
	}, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := make(chan struct{}, 1)
	go p.rebuildWorker(ctx, req)

	req <- struct{}{}
	<-started
	// Arrives while the first rebuild is running; must queue exactly one.
	req <- struct{}{}
	close(release)

	require.Eventually(t, func() bool { return count.Load() == 2 },
		time.Second, 10*time.Millisecond)
}

func TestIgnoreEvent(t *testing.T) {
	assert.True(t, ignoreEvent("/docs/.index.md.swp"))
	assert.True(t, ignoreEvent("/docs/index.md~"))
	assert.True(t, ignoreEvent("/docs/.git"))
	assert.False(t, ignoreEvent("/docs/index.md"))
}
