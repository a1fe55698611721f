package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/df07/go-particle-domains/pkg/core"
	"github.com/df07/go-particle-domains/pkg/domain"
)

const maxSamples = 1_000_000

// Server answers inspection queries against a fixed set of configured
// domains and streams surveys over websockets
type Server struct {
	port     int
	domains  []domain.Named
	byName   map[string]domain.Named
	probes   []domain.Probe
	samples  int
	seed     int64
	workers  int
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewServer builds the configured domains and probes
func NewServer(port int, cfg *domain.Config, logger *zap.Logger) (*Server, error) {
	domains, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build domains: %w", err)
	}
	probes, err := cfg.BuildProbes()
	if err != nil {
		return nil, fmt.Errorf("failed to build probes: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	byName := make(map[string]domain.Named, len(domains))
	for _, d := range domains {
		byName[d.Name] = d
	}

	return &Server{
		port:    port,
		domains: domains,
		byName:  byName,
		probes:  probes,
		samples: cfg.Samples,
		seed:    cfg.Seed,
		workers: cfg.Workers,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}, nil
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/domains", s.handleDomains)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/intersect", s.handleIntersect)
	mux.HandleFunc("/api/survey", s.handleSurvey)
	return mux
}

// Start serves the API until the listener fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", zap.String("addr", addr), zap.Int("domains", len(s.domains)))

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// DomainInfo describes one configured domain
type DomainInfo struct {
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	Bounds *BoundsInfo `json:"bounds,omitempty"`
}

// BoundsInfo is an axis-aligned box in JSON form
type BoundsInfo struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDomains lists the configured domains in configuration order
func (s *Server) handleDomains(w http.ResponseWriter, r *http.Request) {
	infos := make([]DomainInfo, 0, len(s.domains))
	for _, d := range s.domains {
		infos = append(infos, describe(d))
	}
	writeJSON(w, http.StatusOK, infos)
}

func describe(d domain.Named) DomainInfo {
	info := DomainInfo{Name: d.Name, Type: d.Type}
	if bounded, ok := d.Domain.(domain.Bounded); ok {
		b := bounded.Bounds()
		info.Bounds = &BoundsInfo{Min: array(b.Min), Max: array(b.Max)}
	}
	return info
}

// lookup resolves the domain query parameter, writing an error response
// when it is missing or unknown
func (s *Server) lookup(w http.ResponseWriter, values url.Values) (domain.Named, bool) {
	name := values.Get("domain")
	if name == "" {
		writeError(w, http.StatusBadRequest, "domain is required")
		return domain.Named{}, false
	}
	d, ok := s.byName[name]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown domain: "+name)
		return domain.Named{}, false
	}
	return d, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseInt64Param parses a 64-bit integer parameter, falling back to defaultValue
func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseVec3Param parses a required "x,y,z" parameter
func parseVec3Param(values url.Values, key string) (core.Vec3, error) {
	value := values.Get(key)
	if value == "" {
		return core.Vec3{}, fmt.Errorf("%s is required", key)
	}
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("%s needs 3 components, got: %s", key, value)
	}
	var c [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid %s: %s", key, value)
		}
		c[i] = f
	}
	return core.NewVec3(c[0], c[1], c[2]), nil
}

func array(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
