package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

// QueryRequest is the body for both query endpoints
type QueryRequest struct {
	Query string `json:"query" example:"when is bin collection?"`
}

// StatusResponse is a simple status payload
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse carries the running version
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// ErrorResponse carries an error message
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns readiness, verifying database and cache connectivity
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A dependency is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Query endpoints

// handleQuery godoc
// @Summary      Answer a query
// @Description  Runs the full pipeline and returns the complete grounded answer with its sources
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      QueryRequest  true  "The question to answer"
// @Success      200      {object}  domain.AnswerResult
// @Failure      400      {object}  ErrorResponse  "Empty or malformed query"
// @Failure      500      {object}  ErrorResponse  "Generation failed"
// @Failure      503      {object}  ErrorResponse  "No generation service configured"
// @Failure      504      {object}  ErrorResponse  "Pipeline deadline exceeded"
// @Router       /api/v1/query [post]
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.queryService.Answer(r.Context(), req.Query)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleQueryStream godoc
// @Summary      Answer a query as a stream
// @Description  Runs the pipeline and streams the answer as server-sent events: start, sources, content fragments, metadata, then done or error
// @Tags         Query
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body  QueryRequest  true  "The question to answer"
// @Success      200  {string}  string  "SSE event stream"
// @Failure      400  {object}  ErrorResponse  "Empty or malformed query"
// @Failure      501  {object}  ErrorResponse  "Generation service has no streaming mode"
// @Failure      503  {object}  ErrorResponse  "No generation service configured"
// @Router       /api/v1/query/stream [post]
func (s *Server) handleQueryStream(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	encoder, err := NewStreamEncoder(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "streaming unsupported by connection")
		return
	}

	// Failures before the first event still get a plain JSON status
	events, err := s.queryService.AnswerStream(r.Context(), req.Query)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	encoder.Begin()
	for event := range events {
		if err := encoder.Encode(event); err != nil {
			// Client went away; the service observes the request context
			// and winds down on its own
			return
		}
	}
}

// writeQueryError maps domain errors onto HTTP status codes
func writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, domain.ErrStreamingUnsupported):
		writeError(w, http.StatusNotImplemented, err.Error())
	case errors.Is(err, context.Canceled):
		// Client disconnected; nothing meaningful to write
	default:
		writeError(w, http.StatusInternalServerError, "query failed")
	}
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
