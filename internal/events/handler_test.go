package events

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-browser/internal/watcher"
)

func TestHandler_StreamsEvents(t *testing.T) {
	hub := NewHub(4)
	server := httptest.NewServer(NewHandler(hub))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		server.URL+"?name="+url.QueryEscape(ChangeEventName), nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return hub.SubscriberCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	hub.Emit(ChangeEventName, watcher.ChangeEvent{Paths: []string{"/p/a.png"}, Kind: watcher.KindWrite})

	reader := bufio.NewReader(resp.Body)
	eventLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	dataLine, err := reader.ReadString('\n')
	require.NoError(t, err)

	assert.Equal(t, "event: fs://changed\n", eventLine)
	assert.Equal(t, `data: {"paths":["/p/a.png"],"kind":"write"}`+"\n", dataLine)

	cancel()
	require.Eventually(t, func() bool { return hub.SubscriberCount() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestHandler_Heartbeat(t *testing.T) {
	hub := NewHub(1)
	h := NewHandler(hub)
	h.heartbeat = 20 * time.Millisecond
	server := httptest.NewServer(h)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, ": heartbeat"))
}

func TestHandler_WriteDeadlineRearmsPerWrite(t *testing.T) {
	hub := NewHub(1)
	h := NewHandler(hub)
	h.heartbeat = 20 * time.Millisecond
	h.writeTimeout = 50 * time.Millisecond
	server := httptest.NewServer(h)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Ten heartbeats span several write timeouts.
	reader := bufio.NewReader(resp.Body)
	for i := 0; i < 10; i++ {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(line, ": heartbeat"))
		_, err = reader.ReadString('\n')
		require.NoError(t, err)
	}
}

func TestHandler_EndsWhenHubCloses(t *testing.T) {
	hub := NewHub(1)
	server := httptest.NewServer(NewHandler(hub))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return hub.SubscriberCount() == 1 },
		2*time.Second, 10*time.Millisecond)
	hub.Close()

	done := make(chan struct{})
	go func() {
		_, _ = bufio.NewReader(resp.Body).ReadString('\n')
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after hub closed")
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events", nil)

	NewHandler(NewHub(1)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
