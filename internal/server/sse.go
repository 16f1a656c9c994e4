package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/m-ayala/edcube-mvp/internal/generator"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete sends a completion event
func (s *SSEWriter) WriteComplete(curriculumID, status string) {
	s.WriteEvent("complete", map[string]string{ //nolint:errcheck
		"curriculum_id": curriculumID,
		"status":        status,
	})
}

// handlePopulateStream runs full population with progress streamed as SSE
// events, one per section/kind stage, followed by a completion event.
func (s *Server) handlePopulateStream(w http.ResponseWriter, r *http.Request) {
	curriculum, ok := s.loadCurriculum(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	runErr := s.generator.PopulateAll(r.Context(), curriculum, func(event generator.ProgressEvent) {
		sse.WriteEvent("progress", event) //nolint:errcheck
	})

	status := types.StatusReady
	if runErr != nil {
		curriculum.Status = types.StatusFailed
		status = types.StatusFailed
	}
	if err := s.db.SaveCurriculum(r.Context(), curriculum); err != nil {
		sse.WriteError("Failed to save curriculum: " + err.Error())
		return
	}
	if runErr != nil {
		sse.WriteError("Population failed: " + runErr.Error())
	}
	sse.WriteComplete(curriculum.ID.String(), string(status))
}
