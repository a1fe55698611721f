package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/df07/go-particle-domains/pkg/domain"
	"github.com/df07/go-particle-domains/pkg/survey"
)

const writeTimeout = 10 * time.Second

// SurveyRequest holds the parameters of a streamed survey
type SurveyRequest struct {
	Samples int
	Seed    int64
	Domains []domain.Named
}

// SurveyEvent is one message on the survey websocket
type SurveyEvent struct {
	Type      string          `json:"type"` // "console", "report", "error", "complete"
	Report    *ReportUpdate   `json:"report,omitempty"`
	Console   *ConsoleMessage `json:"console,omitempty"`
	Error     string          `json:"error,omitempty"`
	ElapsedMs int64           `json:"elapsedMs"`
}

// ReportUpdate is a finished domain survey
type ReportUpdate struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Seed         int64          `json:"seed"`
	Samples      int            `json:"samples"`
	Failures     int            `json:"failures"`
	Centroid     [3]float64     `json:"centroid"`
	SampleBounds BoundsInfo     `json:"sampleBounds"`
	Bounds       *BoundsInfo    `json:"bounds,omitempty"`
	MeanDistance float64        `json:"meanDistance"`
	Histogram    *HistogramInfo `json:"histogram,omitempty"`
	Probes       []ProbeUpdate  `json:"probes,omitempty"`
}

// HistogramInfo bins sample distances from Center over [0, Radius]
type HistogramInfo struct {
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
	Bins   []int      `json:"bins"`
}

// ProbeUpdate is a probe segment's result in both directions
type ProbeUpdate struct {
	Start   [3]float64 `json:"start"`
	End     [3]float64 `json:"end"`
	Hit     *HitInfo   `json:"hit,omitempty"`
	Reverse *HitInfo   `json:"reverse,omitempty"`
}

// handleSurvey upgrades to a websocket and streams domain reports as each
// survey finishes, interleaved with log output
func (s *Server) handleSurvey(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseSurveyRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go s.watchDisconnect(conn, cancel)

	// Single writer goroutine; gorilla connections allow one concurrent writer
	events := make(chan SurveyEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeEvents(conn, events)
	}()

	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(consoleChan, events)
	}()

	logger := zap.New(zapcore.NewTee(s.logger.Core(), NewConsoleCore(zapcore.InfoLevel, consoleChan)))
	logger.Info("survey requested", zap.Int("domains", len(req.Domains)), zap.Int("samples", req.Samples), zap.Int64("seed", req.Seed))

	startTime := time.Now()
	_, err = survey.Run(ctx, req.Domains, survey.Options{
		Samples: req.Samples,
		Seed:    req.Seed,
		Workers: s.workers,
		Probes:  s.probes,
		OnReport: func(report survey.Report) error {
			update := toReportUpdate(report)
			events <- SurveyEvent{Type: "report", Report: &update, ElapsedMs: time.Since(startTime).Milliseconds()}
			return nil
		},
	}, logger)

	// Every logging goroutine has returned once Run does
	close(consoleChan)
	<-consoleDone

	final := SurveyEvent{Type: "complete", ElapsedMs: time.Since(startTime).Milliseconds()}
	if err != nil {
		final = SurveyEvent{Type: "error", Error: err.Error(), ElapsedMs: final.ElapsedMs}
	}
	events <- final
	close(events)
	<-writerDone

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeTimeout))
}

// parseSurveyRequest reads samples, seed and an optional domain filter
func (s *Server) parseSurveyRequest(r *http.Request) (*SurveyRequest, error) {
	values := r.URL.Query()
	req := &SurveyRequest{Domains: s.domains}

	var err error
	if req.Samples, err = parseIntParam(values, "samples", s.samples, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(values, "seed", s.seed); err != nil {
		return nil, err
	}
	if name := values.Get("domain"); name != "" {
		d, ok := s.byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown domain: %s", name)
		}
		req.Domains = []domain.Named{d}
	}
	return req, nil
}

// watchDisconnect cancels the survey when the client goes away
func (s *Server) watchDisconnect(conn *websocket.Conn, cancel context.CancelFunc) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			cancel()
			return
		}
	}
}

// writeEvents writes events until the channel closes. After a write error
// the remaining events are drained so senders never block.
func (s *Server) writeEvents(conn *websocket.Conn, events <-chan SurveyEvent) {
	for event := range events {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(event); err != nil {
			s.logger.Debug("websocket write failed", zap.Error(err))
			for range events {
			}
			return
		}
	}
}

// streamConsoleMessages forwards console messages as survey events
func (s *Server) streamConsoleMessages(consoleChan <-chan ConsoleMessage, events chan<- SurveyEvent) {
	for msg := range consoleChan {
		events <- SurveyEvent{Type: "console", Console: &msg}
	}
}

func toReportUpdate(r survey.Report) ReportUpdate {
	update := ReportUpdate{
		Name:         r.Name,
		Type:         r.Type,
		Seed:         r.Seed,
		Samples:      r.Stats.Count,
		Failures:     r.Stats.Failures,
		Centroid:     array(r.Stats.Centroid()),
		SampleBounds: BoundsInfo{Min: array(r.Stats.Bounds.Min), Max: array(r.Stats.Bounds.Max)},
		MeanDistance: r.MeanDistance,
	}
	if r.Declared != nil {
		update.Bounds = &BoundsInfo{Min: array(r.Declared.Min), Max: array(r.Declared.Max)}
	}
	if h := r.Histogram; h != nil && len(h.Bins) > 0 {
		update.Histogram = &HistogramInfo{Center: array(h.Origin), Radius: h.Radius, Bins: h.Bins}
	}
	for _, p := range r.Probes {
		update.Probes = append(update.Probes, ProbeUpdate{
			Start:   array(p.Probe.Start),
			End:     array(p.Probe.End),
			Hit:     hitInfo(p.Hit),
			Reverse: hitInfo(p.Reverse),
		})
	}
	return update
}

func hitInfo(hit *domain.Hit) *HitInfo {
	if hit == nil {
		return nil
	}
	return &HitInfo{Point: array(hit.Point), Normal: array(hit.Normal)}
}
