package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/df07/go-particle-domains/pkg/domain"
)

// InspectResponse reports whether a point lies in a domain and, when the
// domain supports it, the nearest point on its surface
type InspectResponse struct {
	Domain   DomainInfo `json:"domain"`
	Point    [3]float64 `json:"point"`
	Contains bool       `json:"contains"`
	Closest  *HitInfo   `json:"closest,omitempty"`
	Distance *float64   `json:"distance,omitempty"`
}

// IntersectResponse reports the first crossing of a segment
type IntersectResponse struct {
	Domain DomainInfo `json:"domain"`
	Start  [3]float64 `json:"start"`
	End    [3]float64 `json:"end"`
	Hit    *HitInfo   `json:"hit,omitempty"`
}

// HitInfo is a surface point and its unit normal
type HitInfo struct {
	Point  [3]float64 `json:"point"`
	Normal [3]float64 `json:"normal"`
}

// handleInspect answers containment and closest-point queries
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	d, ok := s.lookup(w, values)
	if !ok {
		return
	}
	point, err := parseVec3Param(values, "point")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	response := InspectResponse{
		Domain:   describe(d),
		Point:    array(point),
		Contains: d.Domain.Contains(point),
	}
	// Planes, boxes, spheres and points know their nearest surface point
	if cp, ok := d.Domain.(domain.ClosestPointer); ok {
		closest, normal := cp.ClosestPointTo(point)
		distance := closest.Subtract(point).Length()
		response.Closest = &HitInfo{Point: array(closest), Normal: array(normal)}
		response.Distance = &distance
	}

	writeJSON(w, http.StatusOK, response)
}

// handleIntersect answers segment intersection queries
func (s *Server) handleIntersect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	d, ok := s.lookup(w, values)
	if !ok {
		return
	}
	start, err := parseVec3Param(values, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseVec3Param(values, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	response := IntersectResponse{
		Domain: describe(d),
		Start:  array(start),
		End:    array(end),
	}
	if hit, ok := d.Domain.Intersect(start, end); ok {
		response.Hit = &HitInfo{Point: array(hit.Point), Normal: array(hit.Normal)}
	}

	s.logger.Debug("intersect query",
		zap.String("domain", d.Name),
		zap.Bool("hit", response.Hit != nil))
	writeJSON(w, http.StatusOK, response)
}
