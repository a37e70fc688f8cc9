package remote

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rootlab/vidscore/internal/keybinds"
	"github.com/rootlab/vidscore/internal/timestamps"
)

// Command is a remote action request. Unknown actions are ignored, the same
// way an unbound chord is.
type Command struct {
	Action string `json:"action"`
}

// Snapshot is the scoring state pushed to connected clients after every
// change.
type Snapshot struct {
	Project      string             `json:"project"`
	Frame        int                `json:"frame"`
	FrameCount   int                `json:"frame_count"`
	Playing      bool               `json:"playing"`
	Speed        int                `json:"speed"`
	PendingOnset *int               `json:"pending_onset,omitempty"`
	Events       []timestamps.Event `json:"events"`
}

const writeTimeout = 5 * time.Second

// Server is a WebSocket bridge for remote control: it broadcasts state
// snapshots and forwards action commands into the session. Commands arrive
// on the server's goroutines, so the dispatch callback must be safe to call
// off the UI loop (the TUI forwards them as messages).
type Server struct {
	upgrader websocket.Upgrader

	mu       sync.Mutex
	dispatch func(keybinds.Action)
	conns    map[*websocket.Conn]bool
	listener net.Listener
	httpSrv  *http.Server
}

// NewServer returns a bridge that forwards commands to dispatch.
func NewServer(dispatch func(keybinds.Action)) *Server {
	return &Server{
		dispatch: dispatch,
		upgrader: websocket.Upgrader{
			// Local remote-control clients only; no origin policy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: map[*websocket.Conn]bool{},
	}
}

// SetDispatch swaps the dispatch callback. The TUI wires this up once the
// program exists, so commands can be forwarded as messages.
func (s *Server) SetDispatch(dispatch func(keybinds.Action)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatch = dispatch
}

// Listen binds the address and serves connections in the background.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind remote bridge: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	s.mu.Lock()
	s.listener = ln
	s.httpSrv = &http.Server{Handler: mux}
	s.mu.Unlock()

	go func() {
		_ = s.httpSrv.Serve(ln)
	}()
	return nil
}

// Addr returns the bound address, useful when listening on port 0.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler exposes the WebSocket endpoint for embedding in another mux.
func (s *Server) Handler() http.HandlerFunc {
	return s.handleWS
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.conns[conn] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			continue
		}

		action, known := keybinds.ActionFromString(cmd.Action)
		if !known {
			continue
		}
		s.mu.Lock()
		dispatch := s.dispatch
		s.mu.Unlock()
		if dispatch != nil {
			dispatch(action)
		}
	}
}

// Broadcast pushes a snapshot to every connected client. Dead connections
// are dropped.
func (s *Server) Broadcast(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(s.conns, conn)
			conn.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Close drops all clients and stops listening.
func (s *Server) Close() error {
	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
		delete(s.conns, conn)
	}
	srv := s.httpSrv
	s.mu.Unlock()

	if srv != nil {
		return srv.Close()
	}
	return nil
}
