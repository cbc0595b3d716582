package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zoodb/zoodb/internal/cart"
	zooerrors "github.com/zoodb/zoodb/internal/errors"
	"github.com/zoodb/zoodb/pkg/routematch"
	"github.com/zoodb/zoodb/pkg/router"
)

// session is one connected browser. All reads and writes happen on the
// goroutine running serve, so outgoing messages are queued while a client
// message is handled and flushed afterwards.
type session struct {
	id      string
	srv     *Server
	conn    *websocket.Conn
	logger  *slog.Logger
	history *clientHistory
	router  *router.Router
	cart    *cart.Cart

	outbox []any
}

// handleWebSocket upgrades the request and runs a navigation session.
// The browser passes its current location as ?path= and history.length
// as ?length=.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.wsErrors.WithLabelValues("upgrade").Inc()
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	path := r.URL.Query().Get("path")
	length, _ := strconv.Atoi(r.URL.Query().Get("length"))

	sess := newSession(s, conn, path, length)
	sess.serve(r.Context())
}

func newSession(s *Server, conn *websocket.Conn, path string, length int) *session {
	sess := &session{
		id:   uuid.NewString(),
		srv:  s,
		conn: conn,
		cart: cart.New(cart.NewMemoryStorage()),
	}
	sess.logger = s.logger.With("session", sess.id)
	sess.history = newClientHistory(path, length, sess.queue)
	sess.router = router.Mount(sess.history,
		router.WithLogger(sess.logger),
		router.WithTracer(s.tracer),
	)
	sess.router.Subscribe(sess.onChange)
	return sess
}

func (sess *session) serve(ctx context.Context) {
	s := sess.srv
	if !s.trackSession(sess) {
		sess.router.Close()
		sess.conn.Close()
		return
	}
	defer s.untrackSession(sess)

	s.metrics.activeSessions.Inc()
	sess.logger.Info("session started", "path", sess.router.Path())

	defer func() {
		sess.router.Close()
		sess.conn.Close()
		s.metrics.activeSessions.Dec()
		sess.logger.Info("session ended")
	}()

	sess.conn.SetReadLimit(s.cfg.Session.MaxMessageSize)

	sess.queue(helloMessage{Type: "hello", Session: sess.id, Path: sess.router.Path()})
	sess.queueView()
	sess.queueCart()
	if err := sess.flush(); err != nil {
		return
	}

	for {
		sess.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout()))
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.metrics.wsErrors.WithLabelValues("read").Inc()
				sess.logger.Debug("session read failed", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.metrics.wsErrors.WithLabelValues("decode").Inc()
			sess.queue(errorMessage{Type: "error", Code: "E200", Message: "malformed message"})
		} else {
			sess.handle(ctx, msg)
		}
		if err := sess.flush(); err != nil {
			return
		}
	}
}

func (sess *session) handle(ctx context.Context, msg clientMessage) {
	s := sess.srv
	s.metrics.sessionMessages.WithLabelValues(messageLabel(msg.Type)).Inc()

	ctx, span := s.tracer.Start(ctx, "session."+messageLabel(msg.Type), trace.WithAttributes(
		attribute.String("session.id", sess.id),
		attribute.String("router.path", sess.router.Path()),
	))
	defer span.End()

	var err error
	switch msg.Type {
	case msgNavigate:
		opts := []router.NavigateOption{}
		if msg.Replace {
			opts = append(opts, router.WithReplace())
		}
		if msg.ScrollTop != nil && !*msg.ScrollTop {
			opts = append(opts, router.WithoutScrollTop())
		}
		err = sess.router.NavigateContext(ctx, msg.Path, opts...)

	case msgPopState:
		sess.history.popState(msg.Path, msg.Length)

	case msgBack:
		err = sess.router.Back()

	case msgForward:
		err = sess.router.Forward()

	case msgCartGet:
		sess.queueCart()

	case msgCartAdd:
		if _, err = sess.cart.Add(msg.Item); err == nil {
			sess.queueCart()
		}

	case msgCartRemove:
		sess.cart.Remove(msg.ID)
		sess.queueCart()

	case msgCartClear:
		sess.cart.Clear()
		sess.queueCart()

	default:
		err = zooerrors.New("E200").WithDetail("unknown message type " + msg.Type)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		sess.queueError(err)
	}
}

// onChange runs for every router path change.
func (sess *session) onChange(c router.Change) {
	sess.srv.metrics.navigations.WithLabelValues(c.Cause.String()).Inc()
	sess.queueView()
}

func (sess *session) queue(msg any) {
	sess.outbox = append(sess.outbox, msg)
}

func (sess *session) queueView() {
	path := sess.router.Path()
	res, found, err := sess.router.Resolve(sess.srv.routes)
	if err != nil {
		sess.srv.metrics.decodeErrors.Inc()
		sess.queueError(err)
	}
	sess.srv.metrics.recordResolution(res.Route.Name, found)
	sess.queue(viewMessage{
		Type:   "view",
		Path:   path,
		Route:  res.Route.Name,
		Found:  found,
		Params: res.Params,
	})
}

func (sess *session) queueCart() {
	sess.queue(cartMessage{Type: "cart", Items: sess.cart.Items(), Count: sess.cart.Count()})
}

func (sess *session) queueError(err error) {
	code := zooerrors.Code(err)
	switch {
	case errors.Is(err, routematch.ErrInvalidEncoding):
		code = "E001"
	case errors.Is(err, router.ErrClosed):
		code = "E003"
	case errors.Is(err, cart.ErrInvalidItem):
		code = "E200"
	case code == "":
		code = "E140"
	}
	sess.queue(errorMessage{Type: "error", Code: code, Message: err.Error()})
}

func (sess *session) flush() error {
	msgs := sess.outbox
	sess.outbox = nil
	for _, msg := range msgs {
		sess.conn.SetWriteDeadline(time.Now().Add(sess.srv.cfg.WriteTimeout()))
		if err := sess.conn.WriteJSON(msg); err != nil {
			sess.srv.metrics.wsErrors.WithLabelValues("write").Inc()
			sess.logger.Debug("session write failed", "error", err)
			return err
		}
	}
	return nil
}

// messageLabel bounds the label cardinality of client-chosen types.
func messageLabel(t string) string {
	switch t {
	case msgNavigate, msgPopState, msgBack, msgForward,
		msgCartGet, msgCartAdd, msgCartRemove, msgCartClear:
		return t
	default:
		return "unknown"
	}
}
