package server

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/starfederation/datastar-go/datastar"

	apperrors "github.com/agbru/ecodash/internal/errors"
	"github.com/agbru/ecodash/internal/format"
	"github.com/agbru/ecodash/internal/logging"
	"github.com/agbru/ecodash/internal/orchestration"
	"github.com/agbru/ecodash/internal/portfolio"
)

//go:embed static/index.html
var staticFS embed.FS

var indexTemplate = template.Must(template.ParseFS(staticFS, "static/index.html"))

// pageCSP allows the datastar bundle and its expression evaluator.
const pageCSP = "default-src 'self'; script-src 'self' 'unsafe-eval' https://cdn.jsdelivr.net; " +
	"style-src 'self' 'unsafe-inline'; connect-src 'self'; frame-ancestors 'none'"

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		s.instrument,
		func(next http.Handler) http.Handler {
			return SecurityMiddleware(s.security, next.ServeHTTP)
		},
	)

	r.Get("/", s.handleIndex)
	r.Get("/dashboard/stream", s.handleStream)
	r.Get("/api/board", s.handleBoard)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.recorder.Handler())
	return r
}

// instrument records request metrics and logs each request at debug level.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		s.recorder.RequestStarted()
		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			s.recorder.RequestFinished(r.Method, status)
			s.logger.Debug("request",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", status),
				logging.Duration("duration", time.Since(start)),
				logging.String("request_id", middleware.GetReqID(r.Context())))
		}()
		next.ServeHTTP(ww, r)
	})
}

type tileView struct {
	ID      string
	Label   string
	Initial string
	Width   float64
}

type pageView struct {
	Title     string
	Signals   string
	Change    string
	Profit    bool
	Scores    []tileView
	Value     []tileView
	Sectors   []tileView
	StreamURL string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts, err := parseStreamOptions(r, s.config.StartDelay, s.security.MaxDuration)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	initial := SignalsFor(s.board, orchestration.Snapshot{Phase: orchestration.Unmounted}, orchestration.AggregatedProgress{})
	signals, err := json.Marshal(initial)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	tiles := func(group string) []tileView {
		var out []tileView
		for _, m := range s.board.Group(group) {
			out = append(out, tileView{ID: m.ID, Label: m.Label, Initial: initial.Values[m.ID], Width: initial.Bars[m.ID]})
		}
		return out
	}

	view := pageView{
		Title:     s.board.Title,
		Signals:   string(signals),
		Change:    format.FormatChange(s.board.ValueChange),
		Profit:    s.board.Profit(),
		Scores:    tiles(portfolio.GroupScores),
		Value:     tiles(portfolio.GroupValue),
		Sectors:   tiles(portfolio.GroupSectors),
		StreamURL: "/dashboard/stream",
	}
	if q := opts.encode(s.config.StartDelay); q != "" {
		view.StreamURL += "?" + q
	}

	w.Header().Set("Content-Security-Policy", pageCSP)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, view); err != nil {
		s.logger.Error("render dashboard page", err)
	}
}

// handleStream mounts one coordinator for the requesting view and streams
// its snapshots until it settles or the client goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	opts, err := parseStreamOptions(r, s.config.StartDelay, s.security.MaxDuration)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	board := s.board
	if opts.duration > 0 {
		board = board.WithDuration(opts.duration)
	}

	sse := datastar.NewSSE(w, r)

	coord, err := orchestration.NewCoordinator(board.Targets(),
		orchestration.WithStartDelay(opts.delay),
		orchestration.WithLogger(s.logger),
		orchestration.WithRecorder(s.recorder),
		orchestration.WithID(middleware.GetReqID(r.Context())),
	)
	if err != nil {
		// The page keeps its start values.
		_ = sse.ConsoleError(err)
		return
	}
	defer coord.Unmount()

	err = orchestration.Run(r.Context(), coord, orchestration.NewFrameTicker(s.config.FrameInterval), NewSSEPublisher(sse, board, coord))
	if err != nil && !apperrors.IsContextError(err) {
		s.logger.Error("dashboard stream failed", err, logging.String("coordinator", coord.ID()))
	}
}

type boardMetric struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Kind       string  `json:"kind"`
	Group      string  `json:"group"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	DurationMs int64   `json:"duration_ms"`
	Display    string  `json:"display"`
}

type boardResponse struct {
	Title       string        `json:"title"`
	Currency    string        `json:"currency"`
	ValueChange float64       `json:"value_change_pct"`
	Metrics     []boardMetric `json:"metrics"`
}

// handleBoard returns the target definitions and their settled display
// values.
func (s *Server) handleBoard(w http.ResponseWriter, _ *http.Request) {
	resp := boardResponse{
		Title:       s.board.Title,
		Currency:    s.board.Currency,
		ValueChange: s.board.ValueChange,
		Metrics:     make([]boardMetric, 0, len(s.board.Metrics)),
	}
	for _, m := range s.board.Metrics {
		resp.Metrics = append(resp.Metrics, boardMetric{
			ID:         m.ID,
			Label:      m.Label,
			Kind:       string(m.Kind),
			Group:      m.Group,
			Start:      m.Start,
			End:        m.End,
			DurationMs: m.Duration.Milliseconds(),
			Display:    s.board.DisplayExact(m, m.End),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
