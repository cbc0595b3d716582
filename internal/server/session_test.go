package server

import (
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/zoodb/zoodb/internal/cart"
	"github.com/zoodb/zoodb/pkg/routematch"
)

// wireMessage decodes any server message.
type wireMessage struct {
	Type    string            `json:"type"`
	Session string            `json:"session"`
	Op      string            `json:"op"`
	Path    string            `json:"path"`
	Delta   int               `json:"delta"`
	X       int               `json:"x"`
	Y       int               `json:"y"`
	Route   string            `json:"route"`
	Found   bool              `json:"found"`
	Params  routematch.Params `json:"params"`
	Items   []cart.Item       `json:"items"`
	Count   int               `json:"count"`
	Code    string            `json:"code"`
}

type testClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dial(t *testing.T, ts *httptest.Server, path string, length int) *testClient {
	t.Helper()
	q := url.Values{"path": {path}, "length": {strconv.Itoa(length)}}
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?" + q.Encode()
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	c := &testClient{t: t, conn: conn}

	if msg := c.read(); msg.Type != "hello" || msg.Session == "" {
		t.Fatalf("first message = %+v, want hello", msg)
	}
	return c
}

func (c *testClient) send(msg any) {
	c.t.Helper()
	if err := c.conn.WriteJSON(msg); err != nil {
		c.t.Fatalf("write: %v", err)
	}
}

func (c *testClient) read() wireMessage {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg wireMessage
	if err := c.conn.ReadJSON(&msg); err != nil {
		c.t.Fatalf("read: %v", err)
	}
	return msg
}

// readN reads the next n messages.
func (c *testClient) readN(n int) []wireMessage {
	c.t.Helper()
	out := make([]wireMessage, n)
	for i := range out {
		out[i] = c.read()
	}
	return out
}

func types(msgs []wireMessage) string {
	var parts []string
	for _, m := range msgs {
		parts = append(parts, m.Type)
	}
	return strings.Join(parts, " ")
}

func TestSessionInitialView(t *testing.T) {
	_, ts := newTestServer(t)
	c := dial(t, ts, "/habitats/arctic", 1)

	msgs := c.readN(2)
	if types(msgs) != "view cart" {
		t.Fatalf("messages = %s", types(msgs))
	}
	view := msgs[0]
	if view.Path != "/habitats/arctic" || view.Route != RouteHabitat || !view.Found {
		t.Errorf("view = %+v", view)
	}
	if diff := cmp.Diff(routematch.Params{"id": "arctic"}, view.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionNavigatePush(t *testing.T) {
	s, ts := newTestServer(t)
	c := dial(t, ts, "/", 1)
	c.readN(2)

	c.send(map[string]any{"type": "navigate", "path": "/animals/42"})
	msgs := c.readN(3)
	if types(msgs) != "history scroll view" {
		t.Fatalf("messages = %s, want history scroll view", types(msgs))
	}
	if msgs[0].Op != "push" || msgs[0].Path != "/animals/42" {
		t.Errorf("history = %+v", msgs[0])
	}
	if msgs[1].X != 0 || msgs[1].Y != 0 {
		t.Errorf("scroll = %+v", msgs[1])
	}
	if msgs[2].Route != RouteAnimal || msgs[2].Params.Get("id") != "42" {
		t.Errorf("view = %+v", msgs[2])
	}

	if got := testutil.ToFloat64(s.metrics.navigations.WithLabelValues("push")); got != 1 {
		t.Errorf("push navigations = %v, want 1", got)
	}
}

func TestSessionNavigateReplaceWithoutScroll(t *testing.T) {
	_, ts := newTestServer(t)
	c := dial(t, ts, "/", 1)
	c.readN(2)

	c.send(map[string]any{"type": "navigate", "path": "/cart", "replace": true, "scrollTop": false})
	msgs := c.readN(2)
	if types(msgs) != "history view" {
		t.Fatalf("messages = %s, want history view", types(msgs))
	}
	if msgs[0].Op != "replace" || msgs[0].Path != "/cart" {
		t.Errorf("history = %+v", msgs[0])
	}
	if msgs[1].Route != RouteCart {
		t.Errorf("view = %+v", msgs[1])
	}
}

func TestSessionPopState(t *testing.T) {
	_, ts := newTestServer(t)
	c := dial(t, ts, "/habitats", 2)
	c.readN(2)

	c.send(map[string]any{"type": "popstate", "path": "/habitats/savanna", "length": 3})
	msg := c.read()
	if msg.Type != "view" || msg.Path != "/habitats/savanna" || msg.Params.Get("id") != "savanna" {
		t.Errorf("view after popstate = %+v", msg)
	}
}

func TestSessionBackAsksBrowser(t *testing.T) {
	_, ts := newTestServer(t)
	c := dial(t, ts, "/", 1)
	c.readN(2)

	c.send(map[string]any{"type": "back"})
	msg := c.read()
	if msg.Type != "history" || msg.Op != "go" || msg.Delta != -1 {
		t.Errorf("back = %+v", msg)
	}

	c.send(map[string]any{"type": "forward"})
	msg = c.read()
	if msg.Type != "history" || msg.Op != "go" || msg.Delta != 1 {
		t.Errorf("forward = %+v", msg)
	}
}

func TestSessionUnmatchedAndDecodeError(t *testing.T) {
	s, ts := newTestServer(t)
	c := dial(t, ts, "/", 1)
	c.readN(2)

	c.send(map[string]any{"type": "navigate", "path": "/giftshop", "scrollTop": false})
	msgs := c.readN(2)
	if msgs[1].Type != "view" || msgs[1].Found || msgs[1].Route != "" {
		t.Errorf("unmatched view = %+v", msgs[1])
	}

	c.send(map[string]any{"type": "navigate", "path": "/animals/%zz", "scrollTop": false})
	msgs = c.readN(3)
	if types(msgs) != "history error view" {
		t.Fatalf("messages = %s, want history error view", types(msgs))
	}
	if msgs[1].Code != "E001" {
		t.Errorf("error = %+v", msgs[1])
	}
	if msgs[2].Found || msgs[2].Path != "/animals/%zz" {
		t.Errorf("view = %+v", msgs[2])
	}
	if got := testutil.ToFloat64(s.metrics.decodeErrors); got != 1 {
		t.Errorf("decode errors = %v, want 1", got)
	}
}

func TestSessionCart(t *testing.T) {
	_, ts := newTestServer(t)
	c := dial(t, ts, "/cart", 1)
	c.readN(2)

	c.send(map[string]any{"type": "cart.add", "item": map[string]any{"id": "ticket", "name": "Day pass", "quantity": 2}})
	msg := c.read()
	if msg.Type != "cart" || msg.Count != 2 || len(msg.Items) != 1 {
		t.Errorf("cart after add = %+v", msg)
	}

	c.send(map[string]any{"type": "cart.add", "item": map[string]any{"id": "", "quantity": 1}})
	if msg := c.read(); msg.Type != "error" || msg.Code != "E200" {
		t.Errorf("invalid add = %+v", msg)
	}

	c.send(map[string]any{"type": "cart.remove", "id": "ticket"})
	if msg := c.read(); msg.Type != "cart" || msg.Count != 0 {
		t.Errorf("cart after remove = %+v", msg)
	}

	c.send(map[string]any{"type": "cart.add", "item": map[string]any{"id": "map", "quantity": 1}})
	c.read()
	c.send(map[string]any{"type": "cart.clear"})
	if msg := c.read(); msg.Type != "cart" || len(msg.Items) != 0 {
		t.Errorf("cart after clear = %+v", msg)
	}
}

func TestSessionUnknownAndMalformed(t *testing.T) {
	_, ts := newTestServer(t)
	c := dial(t, ts, "/", 1)
	c.readN(2)

	c.send(map[string]any{"type": "feed-the-lions"})
	if msg := c.read(); msg.Type != "error" || msg.Code != "E200" {
		t.Errorf("unknown type = %+v", msg)
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, []byte("{")); err != nil {
		t.Fatal(err)
	}
	if msg := c.read(); msg.Type != "error" || msg.Code != "E200" {
		t.Errorf("malformed = %+v", msg)
	}
}

func TestSessionGaugeReturnsToZero(t *testing.T) {
	s, ts := newTestServer(t)
	c := dial(t, ts, "/", 1)
	c.readN(2)

	if got := testutil.ToFloat64(s.metrics.activeSessions); got != 1 {
		t.Errorf("active sessions = %v, want 1", got)
	}

	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for testutil.ToFloat64(s.metrics.activeSessions) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("session did not end")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCloseSessionsOnShutdown(t *testing.T) {
	s, ts := newTestServer(t)
	c := dial(t, ts, "/", 1)
	c.readN(2)

	s.closeSessions()

	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := c.conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Fatalf("read after shutdown = %v, want going-away close", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for testutil.ToFloat64(s.metrics.activeSessions) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("session did not end")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// New sessions are refused once shutdown has begun.
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?path=/"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("session started after shutdown should be closed")
	}
}
