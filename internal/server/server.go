// Package server is the HTTP and websocket front end: scan catalog,
// uploads, viewer sessions, and the screenshot→analysis proxy.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"roomscan-viewer/internal/analysis"
	"roomscan-viewer/internal/config"
	"roomscan-viewer/internal/scanlib"
)

//go:embed static/index.html
var staticFS embed.FS

// Server wires the scan library, the analysis client, and the active
// viewer sessions behind an http.Handler.
type Server struct {
	cfg      config.Config
	library  *scanlib.Library
	analysis *analysis.Client

	mu       sync.Mutex
	sessions map[string]*session

	upgrader websocket.Upgrader
}

// New builds a server over an already-populated library.
func New(cfg config.Config, library *scanlib.Library, client *analysis.Client) *Server {
	return &Server{
		cfg:      cfg,
		library:  library,
		analysis: client,
		sessions: make(map[string]*session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /api/scans", s.handleScans)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.Handle("GET /previews/", http.StripPrefix("/previews/", http.FileServer(http.Dir(s.cfg.PreviewDir))))
	return mux
}

// ListenAndServe blocks serving HTTP until the listener fails.
func (s *Server) ListenAndServe() error {
	log.Printf("server: listening on %s", s.cfg.ListenAddr)
	return http.ListenAndServe(s.cfg.ListenAddr, s.Handler())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "missing client", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleScans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"scans": s.library.List()})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	desc, err := s.library.SaveUpload(s.cfg.UploadDir, header.Filename, file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("server: uploaded %s as %s", header.Filename, desc.ID)
	writeJSON(w, http.StatusOK, map[string]any{"scan": desc})
}

type analyzeRequest struct {
	Session  string `json:"session"`
	Question string `json:"question"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "undecodable request body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "empty question")
		return
	}

	s.mu.Lock()
	sess, ok := s.sessions[req.Session]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	webp, err := sess.screenshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	answer, err := s.analysis.Analyze(r.Context(), req.Question, webp)
	if err != nil {
		var svcErr *analysis.ServiceError
		if errors.As(err, &svcErr) {
			writeJSON(w, analysisStatus(svcErr.Kind), map[string]any{
				"error": map[string]string{"kind": svcErr.Kind.String(), "message": svcErr.Message},
			})
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"answer": answer})
}

// analysisStatus maps service error kinds to HTTP statuses for the chat
// client; the viewer itself is unaffected either way.
func analysisStatus(kind analysis.ErrorKind) int {
	switch kind {
	case analysis.KindNotConfigured:
		return http.StatusServiceUnavailable
	case analysis.KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case analysis.KindRateLimited:
		return http.StatusTooManyRequests
	case analysis.KindTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: upgrade: %v", err)
		return
	}

	sess := newSession(s, conn)
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	// Tell the client its session ID so /api/analyze can find it.
	sess.pushEvent(serverEvent{Type: "state", Message: sess.id})

	go sess.run()
	sess.readLoop()

	sess.close()
	conn.Close()
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
}

// Shutdown closes all live sessions.
func (s *Server) Shutdown(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.close()
		delete(s.sessions, id)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": map[string]string{"kind": "request", "message": msg}})
}
