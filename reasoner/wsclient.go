package reasoner

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/teranos/kbsync/errors"
	"github.com/teranos/kbsync/kb"
)

// WebSocket timeout constants following Gorilla best practices
// See: https://github.com/gorilla/websocket/blob/master/examples/chat/client.go
const (
	// Time allowed to write a message to the service
	writeWait = 10 * time.Second

	// Maximum message size allowed from the service (1MB for axiom sets)
	maxMessageSize = 1024 * 1024
)

// Conn abstracts the WebSocket connection for testability.
// The real implementation wraps gorilla/websocket; tests use a channel pair.
type Conn interface {
	ReadJSON(v interface{}) error
	WriteJSON(v interface{}) error
	Close() error
}

// WSClient speaks the reasoner wire protocol over one websocket session.
// Requests carry UUIDs; a single reader goroutine matches responses back
// to their pending Calls, so responses may resolve in any order.
type WSClient struct {
	conn   Conn
	logger *zap.SugaredLogger

	mu      sync.Mutex
	pending map[string]*Call
	closed  bool
}

// Dial connects to a reasoning service endpoint (ws:// or wss:// URL) and
// starts the session's reader.
func Dial(ctx context.Context, url string, logger *zap.SugaredLogger) (*WSClient, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrServiceUnavailable, "dialing %s: %v", url, err)
	}
	conn.SetReadLimit(maxMessageSize)
	return NewClient(&wsConn{conn: conn}, logger), nil
}

// NewClient wraps an established connection. Tests inject a fake Conn here.
func NewClient(conn Conn, logger *zap.SugaredLogger) *WSClient {
	c := &WSClient{
		conn:    conn,
		logger:  logger,
		pending: make(map[string]*Call),
	}
	go c.readLoop()
	return c
}

// GetDigest requests the current digest of the knowledge base.
func (c *WSClient) GetDigest(kbID kb.ID) *Call {
	return c.send(Request{
		Op:   OpGetDigest,
		KbID: string(kbID),
	})
}

// ApplyChanges sends an ordered change list for incremental application.
func (c *WSClient) ApplyChanges(kbID kb.ID, changes []kb.Change) *Call {
	wire := make([]ChangeWire, len(changes))
	for i, ch := range changes {
		wire[i] = ChangeWire{Op: string(ch.Op), Axiom: ch.Axiom.Key()}
	}
	return c.send(Request{
		Op:      OpApplyChanges,
		KbID:    string(kbID),
		Changes: wire,
	})
}

// ReplaceAxioms sends the full axiom set for installation.
func (c *WSClient) ReplaceAxioms(kbID kb.ID, axioms []kb.Axiom) *Call {
	wire := make([]string, len(axioms))
	for i, ax := range axioms {
		wire[i] = ax.Key()
	}
	return c.send(Request{
		Op:     OpReplaceAxioms,
		KbID:   string(kbID),
		Axioms: wire,
	})
}

// Close tears down the session. Pending calls fail with ErrSessionClosed
// once the reader observes the closed connection.
func (c *WSClient) Close() error {
	return c.conn.Close()
}

// send registers a pending call and writes the request. Write failures
// resolve the call immediately — the request never reached the service.
func (c *WSClient) send(req Request) *Call {
	req.ID = uuid.NewString()
	call := NewCall()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		call.Fail(errors.Wrap(errors.ErrSessionClosed, "session already closed"))
		return call
	}
	c.pending[req.ID] = call
	c.mu.Unlock()

	if err := c.conn.WriteJSON(req); err != nil {
		c.mu.Lock()
		delete(c.pending, req.ID)
		c.mu.Unlock()
		call.Fail(errors.Wrapf(errors.ErrServiceUnavailable, "writing %s request: %v", req.Op, err))
	}
	return call
}

// readLoop is the session's single reader. It dispatches each response to
// its pending call and, on connection loss, fails everything still waiting.
func (c *WSClient) readLoop() {
	for {
		var resp Response
		if err := c.conn.ReadJSON(&resp); err != nil {
			c.failAll(err)
			return
		}
		c.dispatch(resp)
	}
}

func (c *WSClient) dispatch(resp Response) {
	c.mu.Lock()
	call, ok := c.pending[resp.ID]
	delete(c.pending, resp.ID)
	c.mu.Unlock()

	if !ok {
		c.logger.Warnw("Response for unknown request", "request_id", resp.ID)
		return
	}

	if resp.Error != "" {
		call.Fail(errors.NewRemoteFailure("%s", resp.Error))
		return
	}

	digest, err := kb.ParseDigest(resp.Digest)
	if err != nil {
		call.Fail(errors.Wrap(err, "service returned malformed digest"))
		return
	}
	call.Complete(digest)
}

func (c *WSClient) failAll(cause error) {
	c.mu.Lock()
	c.closed = true
	waiting := c.pending
	c.pending = make(map[string]*Call)
	c.mu.Unlock()

	for _, call := range waiting {
		call.Fail(errors.Wrapf(errors.ErrSessionClosed, "%v", cause))
	}
}

// wsConn adapts *websocket.Conn to Conn, applying the write deadline on
// every outgoing message.
type wsConn struct {
	conn *websocket.Conn

	// gorilla allows one concurrent writer; serialize here
	writeMu sync.Mutex
}

func (w *wsConn) ReadJSON(v interface{}) error {
	return w.conn.ReadJSON(v)
}

func (w *wsConn) WriteJSON(v interface{}) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteJSON(v)
}

func (w *wsConn) Close() error {
	return w.conn.Close()
}
