package server

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"roomscan-viewer/internal/scene"
	"roomscan-viewer/internal/texture"
	"roomscan-viewer/internal/viewer"
)

// clientMessage is one control operation from the browser. The op set
// mirrors the viewer's public surface.
type clientMessage struct {
	Op      string  `json:"op"` // pan|rotate|zoom|reset|lighting|grid|load
	DX      float32 `json:"dx,omitempty"`
	DY      float32 `json:"dy,omitempty"`
	Delta   float32 `json:"delta,omitempty"`
	Preset  string  `json:"preset,omitempty"`
	Visible bool    `json:"visible,omitempty"`
	Scan    string  `json:"scan,omitempty"`
}

// serverEvent is a JSON status message pushed to the client; frames go
// as separate binary messages.
type serverEvent struct {
	Type      string `json:"type"` // loaded|error|state
	Scan      string `json:"scan,omitempty"`
	SizeClass string `json:"sizeClass,omitempty"`
	Message   string `json:"message,omitempty"`
	Animating bool   `json:"animating"`
}

// session couples one websocket to one viewer. A single goroutine (run)
// owns the viewer; the websocket reader forwards operations to it over
// the command channel, preserving the viewer's single-threaded contract.
type session struct {
	id        string
	srv       *Server
	conn      *websocket.Conn
	writeMu   sync.Mutex // gorilla/websocket allows one concurrent writer
	view      *viewer.Viewer
	cmds      chan func(*viewer.Viewer)
	closed    chan struct{}
	closeOnce sync.Once
}

func newSession(srv *Server, conn *websocket.Conn) *session {
	return &session{
		id:     uuid.NewString(),
		srv:    srv,
		conn:   conn,
		view:   viewer.New(texture.NewCache(), srv.cfg.RenderSize, srv.cfg.Supersample),
		cmds:   make(chan func(*viewer.Viewer), 64),
		closed: make(chan struct{}),
	}
}

// run drives the session: apply queued commands, step the animation,
// and push a frame whenever the view changed. Exits when the session
// closes.
func (s *session) run() {
	defer s.view.Dispose()

	interval := time.Second / time.Duration(s.srv.cfg.FrameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case cmd := <-s.cmds:
			cmd(s.view)
		case now := <-ticker.C:
			s.view.Step(now)
			if s.view.Dirty() {
				s.pushFrame()
			}
		case <-s.closed:
			return
		}
	}
}

// readLoop parses client messages on the websocket goroutine and hands
// them to the viewer goroutine.
func (s *session) readLoop() {
	defer s.close()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("server: session %s: bad message: %v", s.id, err)
			continue
		}
		cmd, ok := s.command(msg)
		if !ok {
			continue
		}
		select {
		case s.cmds <- cmd:
		case <-s.closed:
			return
		}
	}
}

// command maps a wire message onto a viewer operation.
func (s *session) command(msg clientMessage) (func(*viewer.Viewer), bool) {
	switch msg.Op {
	case "pan":
		return func(v *viewer.Viewer) { v.Pan(msg.DX, msg.DY) }, true
	case "rotate":
		return func(v *viewer.Viewer) { v.Rotate(msg.DX, msg.DY) }, true
	case "zoom":
		return func(v *viewer.Viewer) { v.Zoom(msg.Delta) }, true
	case "reset":
		return func(v *viewer.Viewer) { v.ResetCamera() }, true
	case "lighting":
		preset := scene.ParsePreset(msg.Preset)
		return func(v *viewer.Viewer) { v.SetLighting(preset) }, true
	case "grid":
		return func(v *viewer.Viewer) { v.SetGridVisible(msg.Visible) }, true
	case "load":
		desc, ok := s.srv.library.Get(msg.Scan)
		if !ok {
			s.pushEvent(serverEvent{Type: "error", Message: fmt.Sprintf("unknown scan %q", msg.Scan)})
			return nil, false
		}
		// The load parses on the session goroutine: frames and queued
		// input stall until it finishes.
		return func(v *viewer.Viewer) {
			if err := v.LoadModel(desc, time.Now()); err != nil {
				s.pushEvent(serverEvent{Type: "error", Scan: desc.ID, Message: err.Error(), Animating: v.Animating()})
				return
			}
			s.pushEvent(serverEvent{
				Type:      "loaded",
				Scan:      desc.ID,
				SizeClass: v.Current().SizeClass.String(),
				Animating: true,
			})
		}, true
	default:
		log.Printf("server: session %s: unknown op %q", s.id, msg.Op)
		return nil, false
	}
}

// screenshot captures the current view from the viewer goroutine.
// Called from HTTP handler goroutines.
func (s *session) screenshot() ([]byte, error) {
	type reply struct {
		webp []byte
		err  error
	}
	ch := make(chan reply, 1)
	select {
	case s.cmds <- func(v *viewer.Viewer) {
		webp, err := v.Screenshot()
		ch <- reply{webp, err}
	}:
	case <-s.closed:
		return nil, fmt.Errorf("server: session closed")
	}
	select {
	case r := <-ch:
		return r.webp, r.err
	case <-time.After(10 * time.Second):
		return nil, fmt.Errorf("server: screenshot timed out")
	}
}

func (s *session) pushFrame() {
	webp, err := s.view.Screenshot()
	if err != nil {
		log.Printf("server: session %s: frame encode: %v", s.id, err)
		return
	}
	s.write(websocket.BinaryMessage, webp)
}

func (s *session) pushEvent(ev serverEvent) {
	data, _ := json.Marshal(ev)
	s.write(websocket.TextMessage, data)
}

func (s *session) write(messageType int, data []byte) {
	s.writeMu.Lock()
	err := s.conn.WriteMessage(messageType, data)
	s.writeMu.Unlock()
	if err != nil {
		s.close()
	}
}

// close is reachable from the reader, the viewer goroutine (on write
// failure), and Server.Shutdown concurrently.
func (s *session) close() {
	s.closeOnce.Do(func() { close(s.closed) })
}
