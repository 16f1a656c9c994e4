package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/m-ayala/edcube-mvp/internal/generator"
	"github.com/m-ayala/edcube-mvp/internal/types"
)

// PopulateResponse summarizes one section population run.
type PopulateResponse struct {
	CurriculumID string  `json:"curriculum_id"`
	SectionIndex int     `json:"section_index"`
	Kind         string  `json:"kind"`
	Accepted     int     `json:"accepted"`
	Coverage     float64 `json:"coverage_percentage"`
	Iterations   int     `json:"iterations_performed"`
}

// handleCreateCurriculum generates a new curriculum outline and stores it.
func (s *Server) handleCreateCurriculum(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	curriculum, err := s.outliner.Generate(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Outline generation failed: "+err.Error())
		return
	}

	if err := s.db.SaveCurriculum(r.Context(), curriculum); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save curriculum: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, curriculum)
}

// handleListCurricula returns stored curriculum summaries.
func (s *Server) handleListCurricula(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	summaries, err := s.db.ListCurricula(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list curricula: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"curricula": summaries})
}

// handleGetCurriculum returns one curriculum document.
func (s *Server) handleGetCurriculum(w http.ResponseWriter, r *http.Request) {
	curriculum, ok := s.loadCurriculum(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, curriculum)
}

// handleDeleteCurriculum removes a curriculum and its generation runs.
func (s *Server) handleDeleteCurriculum(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid curriculum ID")
		return
	}

	deleted, err := s.db.DeleteCurriculum(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete curriculum: "+err.Error())
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Curriculum not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted", "id": id.String()})
}

// handlePopulateVideos runs video selection for one section.
func (s *Server) handlePopulateVideos(w http.ResponseWriter, r *http.Request) {
	s.populateSection(w, r, generator.KindVideos)
}

// handlePopulateWorksheets runs worksheet selection for one section.
func (s *Server) handlePopulateWorksheets(w http.ResponseWriter, r *http.Request) {
	s.populateSection(w, r, generator.KindWorksheets)
}

// handlePopulateActivities runs activity selection for one section.
func (s *Server) handlePopulateActivities(w http.ResponseWriter, r *http.Request) {
	s.populateSection(w, r, generator.KindActivities)
}

// handlePopulateAll runs every population kind for every section and
// returns the updated curriculum when done.
func (s *Server) handlePopulateAll(w http.ResponseWriter, r *http.Request) {
	curriculum, ok := s.loadCurriculum(w, r)
	if !ok {
		return
	}

	runErr := s.generator.PopulateAll(r.Context(), curriculum, nil)
	if runErr != nil {
		curriculum.Status = types.StatusFailed
	}
	if err := s.db.SaveCurriculum(r.Context(), curriculum); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save curriculum: "+err.Error())
		return
	}
	if runErr != nil {
		s.errorResponse(w, http.StatusBadGateway, "Population failed: "+runErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, curriculum)
}

// populateSection runs one population kind for the section named in the
// path and persists the updated document.
func (s *Server) populateSection(w http.ResponseWriter, r *http.Request, kind generator.ResourceKind) {
	curriculum, ok := s.loadCurriculum(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 || index >= len(curriculum.Sections) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid section index")
		return
	}

	runID, err := s.db.CreateRun(r.Context(), curriculum.ID, index, string(kind))
	if err != nil {
		log.Printf("Failed to record generation run: %v", err)
	}

	result, err := s.populate(r, curriculum, index, kind)
	if err != nil {
		s.finishRun(r, runID, "failed", nil)
		s.errorResponse(w, http.StatusBadGateway, "Population failed: "+err.Error())
		return
	}
	s.finishRun(r, runID, "completed", result)

	if err := s.db.SaveCurriculum(r.Context(), curriculum); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save curriculum: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, PopulateResponse{
		CurriculumID: curriculum.ID.String(),
		SectionIndex: index,
		Kind:         string(kind),
		Accepted:     len(result.Accepted),
		Coverage:     result.CoveragePercentage,
		Iterations:   result.IterationsPerformed,
	})
}

func (s *Server) populate(r *http.Request, curriculum *types.Curriculum, index int, kind generator.ResourceKind) (*types.SelectionResult, error) {
	switch kind {
	case generator.KindWorksheets:
		return s.generator.PopulateWorksheets(r.Context(), curriculum, index)
	case generator.KindActivities:
		return s.generator.PopulateActivities(r.Context(), curriculum, index)
	default:
		return s.generator.PopulateVideos(r.Context(), curriculum, index)
	}
}

func (s *Server) finishRun(r *http.Request, runID uuid.UUID, status string, result *types.SelectionResult) {
	if runID == uuid.Nil {
		return
	}
	if err := s.db.CompleteRun(r.Context(), runID, status, result); err != nil {
		log.Printf("Failed to complete generation run: %v", err)
	}
}

// loadCurriculum resolves the {id} path parameter to a stored document,
// writing the error response itself on failure.
func (s *Server) loadCurriculum(w http.ResponseWriter, r *http.Request) (*types.Curriculum, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid curriculum ID")
		return nil, false
	}

	curriculum, err := s.db.GetCurriculum(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load curriculum: "+err.Error())
		return nil, false
	}
	if curriculum == nil {
		s.errorResponse(w, http.StatusNotFound, "Curriculum not found")
		return nil, false
	}
	return curriculum, true
}
