package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gtri-thrive/toolkit/internal/store"
	"github.com/gtri-thrive/toolkit/internal/types"
	"github.com/gtri-thrive/toolkit/internal/versions"
)

// ---------------------------------------------------------------------
// Experience Handlers
// ---------------------------------------------------------------------

// ExperienceRequest is the inbound body for create and update.
type ExperienceRequest struct {
	Type            types.ExperienceType  `json:"type" validate:"required,oneof=work volunteer school"`
	Title           string                `json:"title" validate:"required"`
	Company         string                `json:"company" validate:"required"`
	Industries      []string              `json:"industries"`
	DateRange       types.DateRange       `json:"dateRange"`
	Bullets         types.Bullets         `json:"bullets"`
	StarContent     types.StarContent     `json:"starContent"`
	Recommendations types.Recommendations `json:"recommendations"`
}

func (req *ExperienceRequest) toExperience() types.SavedExperience {
	req.Recommendations.Normalize()
	return types.SavedExperience{
		Type:            req.Type,
		Title:           req.Title,
		Company:         req.Company,
		Industries:      req.Industries,
		DateRange:       req.DateRange,
		Bullets:         req.Bullets,
		StarContent:     req.StarContent,
		Recommendations: req.Recommendations,
	}
}

func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

func (s *Server) experienceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid experience ID")
		return 0, false
	}
	return id, true
}

func (s *Server) handleListExperiences(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.experiences.List())
}

func (s *Server) handleCreateExperience(w http.ResponseWriter, r *http.Request) {
	var req ExperienceRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	saved, err := s.experiences.Save(req.toExperience())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Storage error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, saved)
}

func (s *Server) handleGetExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := s.experienceID(w, r)
	if !ok {
		return
	}

	exp, err := s.experiences.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrExperienceNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Experience not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Storage error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, exp)
}

func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := s.experienceID(w, r)
	if !ok {
		return
	}

	var req ExperienceRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	// id and gradient come from the stored record, never the body
	exp := req.toExperience()
	exp.ID = id
	saved, err := s.experiences.Save(exp)
	if err != nil {
		if errors.Is(err, store.ErrExperienceNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Experience not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Storage error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := s.experienceID(w, r)
	if !ok {
		return
	}

	if err := s.experiences.Delete(id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Storage error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Version History Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := s.experienceID(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.tracker.List(id))
}

// handleRevertVersion replaces the stored bullets with a historical
// version's content. The history itself is untouched.
func (s *Server) handleRevertVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := s.experienceID(w, r)
	if !ok {
		return
	}
	versionID, err := strconv.ParseInt(r.PathValue("version_id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid version ID")
		return
	}

	exp, err := s.experiences.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrExperienceNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Experience not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Storage error: "+err.Error())
		return
	}

	content, err := s.tracker.Revert(id, versionID)
	if err != nil {
		if errors.Is(err, versions.ErrVersionNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Version not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Version error: "+err.Error())
		return
	}

	exp.Bullets = content
	saved, err := s.experiences.Save(exp)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Storage error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}
