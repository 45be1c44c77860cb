// Package web serves the browser chat page and answers it over a
// websocket.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nathfavour/blubot/pkg/responder"
	"github.com/nathfavour/blubot/pkg/stats"
	"github.com/nathfavour/blubot/pkg/surface"
)

const SurfaceName = "web"

//go:embed index.html
var indexHTML []byte

// Frame is the JSON message exchanged with the browser.
type Frame struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Sender  string `json:"sender,omitempty"`
	Content string `json:"content"`
}

const (
	FrameMessage = "message"
	FrameReply   = "reply"
	FrameTyping  = "typing"
)

// Matcher answers utterances. *responder.Responder satisfies it.
type Matcher interface {
	Match(utterance string) responder.Match
}

type Server struct {
	matcher  Matcher
	pacer    *surface.Pacer
	labels   surface.Labels
	recorder stats.Recorder
	upgrader websocket.Upgrader
}

func NewServer(m Matcher, pacer *surface.Pacer, labels surface.Labels, rec stats.Recorder) *Server {
	if rec == nil {
		rec = stats.Discard
	}
	return &Server{
		matcher:  m,
		pacer:    pacer,
		labels:   labels,
		recorder: rec,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the page at "/" and the websocket at "/ws".
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// ListenAndServe runs the server on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("web chat listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// conn serializes writes; gorilla connections allow one concurrent writer.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(f Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(f)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &conn{ws: ws}
	var deliveries sync.WaitGroup
	defer deliveries.Wait()

	slog.Debug("web client connected", "remote", r.RemoteAddr)
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			slog.Debug("web client disconnected", "remote", r.RemoteAddr, "error", err)
			cancel()
			return
		}

		var in Frame
		if err := json.Unmarshal(data, &in); err != nil || in.Type != FrameMessage {
			continue
		}
		text, ok := surface.Admit(in.Content)
		if !ok {
			continue
		}
		if in.ID == "" {
			in.ID = uuid.NewString()
		}

		match := s.matcher.Match(text)
		if err := s.recorder.Record(SurfaceName, match); err != nil {
			slog.Debug("failed to record match", "error", err)
		}
		_ = c.send(Frame{Type: FrameTyping, ID: in.ID, Sender: s.labels.Bot})

		reply := Frame{Type: FrameReply, ID: in.ID, Sender: s.labels.Bot, Content: match.Reply}
		deliveries.Add(1)
		done := s.pacer.Deliver(ctx, func() {
			if err := c.send(reply); err != nil {
				slog.Debug("failed to deliver reply", "id", reply.ID, "error", err)
			}
		})
		go func() {
			<-done
			deliveries.Done()
		}()
	}
}
