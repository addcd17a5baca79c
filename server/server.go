package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/kbsync/kb"
	"github.com/teranos/kbsync/reasoner"
)

// WebSocket timeout constants following Gorilla best practices
const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1024 * 1024
)

// Server serves the reasoner wire protocol over websocket sessions. Each
// session is read sequentially: one request, one response, rate-limited
// per connection so a runaway client cannot starve the store.
type Server struct {
	store    *Store
	logger   *zap.SugaredLogger
	upgrader websocket.Upgrader

	// Per-connection request rate; zero rps disables limiting.
	rps   rate.Limit
	burst int
}

// New creates a server over the given store. rps and burst bound each
// connection's request rate; pass rps <= 0 to disable limiting.
func New(store *Store, logger *zap.SugaredLogger, rps float64, burst int) *Server {
	return &Server{
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		rps:   rate.Limit(rps),
		burst: burst,
	}
}

// Handler returns the websocket upgrade handler for the service endpoint.
// The session runs inside the handler so the request context stays live
// for the session's whole lifetime.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Warnw("Websocket upgrade failed",
				"remote", r.RemoteAddr,
				"error", err,
			)
			return
		}
		conn.SetReadLimit(maxMessageSize)
		s.serveConn(r.Context(), conn)
	})
}

// ListenAndServe runs an HTTP server exposing the handler at /reason.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/reason", s.Handler())
	s.logger.Infow("Reasoning service listening",
		"addr", addr,
		"path", "/reason",
	)
	return http.ListenAndServe(addr, mux)
}

// serveConn runs one session's request loop until the connection drops.
func (s *Server) serveConn(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	var limiter *rate.Limiter
	if s.rps > 0 {
		limiter = rate.NewLimiter(s.rps, s.burst)
	}

	for {
		var req reasoner.Request
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debugw("Session ended", "error", err)
			}
			return
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
		}

		resp := s.handle(req)
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Warnw("Failed to write response",
				"request_id", req.ID,
				"error", err,
			)
			return
		}
	}
}

// handle executes one request against the store. Malformed requests fail
// their own response and leave the session alive.
func (s *Server) handle(req reasoner.Request) reasoner.Response {
	kbID := kb.ID(req.KbID)

	switch req.Op {
	case reasoner.OpGetDigest:
		return reasoner.Response{ID: req.ID, Digest: s.store.Digest(kbID).Hex()}

	case reasoner.OpApplyChanges:
		changes := make([]kb.Change, 0, len(req.Changes))
		for _, cw := range req.Changes {
			ax, err := kb.Parse(cw.Axiom)
			if err != nil {
				return reasoner.Response{ID: req.ID, Error: err.Error()}
			}
			op := kb.Op(cw.Op)
			if op != kb.OpAdd && op != kb.OpRemove {
				return reasoner.Response{ID: req.ID, Error: "unknown change op " + cw.Op}
			}
			changes = append(changes, kb.Change{Op: op, Axiom: ax})
		}
		s.logger.Infow("Applying changes",
			"kb", kbID,
			"changes", len(changes),
		)
		return reasoner.Response{ID: req.ID, Digest: s.store.Apply(kbID, changes).Hex()}

	case reasoner.OpReplaceAxioms:
		axioms := make([]kb.Axiom, 0, len(req.Axioms))
		for _, raw := range req.Axioms {
			ax, err := kb.Parse(raw)
			if err != nil {
				return reasoner.Response{ID: req.ID, Error: err.Error()}
			}
			axioms = append(axioms, ax)
		}
		s.logger.Infow("Replacing axioms",
			"kb", kbID,
			"axioms", len(axioms),
		)
		return reasoner.Response{ID: req.ID, Digest: s.store.Replace(kbID, axioms).Hex()}

	default:
		return reasoner.Response{ID: req.ID, Error: "unknown operation " + string(req.Op)}
	}
}
