package spectate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(log.New(io.Discard), 4)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, expected %d", hub.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

type testFrame struct {
	Frame int `json:"frame"`
	Score int `json:"score"`
}

func TestHubBroadcastsToAllViewers(t *testing.T) {
	hub, srv := newTestHub(t)
	a := dial(t, srv)
	b := dial(t, srv)
	waitForClients(t, hub, 2)

	hub.Publish(testFrame{Frame: 12, Score: 340})

	for name, conn := range map[string]*websocket.Conn{"a": a, "b": b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("%s: read: %v", name, err)
		}
		var got testFrame
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if got != (testFrame{Frame: 12, Score: 340}) {
			t.Errorf("%s: frame = %+v", name, got)
		}
	}
}

func TestHubDropsViewerOnClose(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitForClients(t, hub, 0)
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub(log.New(io.Discard), 2)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(testFrame{Frame: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
}

func TestHealthz(t *testing.T) {
	hub, srv := newTestHub(t)
	dial(t, srv)
	waitForClients(t, hub, 1)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Status  string `json:"status"`
		Clients int    `json:"clients"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || body.Clients != 1 {
		t.Errorf("healthz = %+v", body)
	}
}
