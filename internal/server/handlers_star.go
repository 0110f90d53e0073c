package server

import (
	"errors"
	"net/http"

	"github.com/gtri-thrive/toolkit/internal/genclient"
	"github.com/gtri-thrive/toolkit/internal/store"
	"github.com/gtri-thrive/toolkit/internal/types"
)

// ---------------------------------------------------------------------
// STAR Generation Handlers
// ---------------------------------------------------------------------

// StarGenerateRequest is the inbound body for the draft-phase generation
// endpoints, mirroring the canonical nested wire shape.
type StarGenerateRequest struct {
	BasicInfo struct {
		Company  string   `json:"company" validate:"required"`
		Position string   `json:"position" validate:"required"`
		Industry []string `json:"industry"`
	} `json:"basic_info"`
	StarContent struct {
		Situation string `json:"situation" validate:"required"`
		Task      string `json:"task" validate:"required"`
		Actions   string `json:"actions" validate:"required"`
		Results   string `json:"results" validate:"required"`
	} `json:"star_content"`
	Recommendations *types.Recommendations `json:"recommendations,omitempty"`
}

func (req *StarGenerateRequest) toStarRequest() types.StarRequest {
	industries := req.BasicInfo.Industry
	if industries == nil {
		industries = []string{}
	}
	return types.StarRequest{
		BasicInfo: types.BasicInfoPayload{
			Company:  req.BasicInfo.Company,
			Position: req.BasicInfo.Position,
			Industry: industries,
		},
		StarContent: types.StarContent{
			Situation: req.StarContent.Situation,
			Task:      req.StarContent.Task,
			Actions:   req.StarContent.Actions,
			Results:   req.StarContent.Results,
		},
		Recommendations: req.Recommendations,
	}
}

// generationStatus maps generation failures onto gateway status codes.
func generationStatus(err error) int {
	var timeoutErr *genclient.GenerationTimeoutError
	if errors.As(err, &timeoutErr) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func (s *Server) handleStarRecommendations(w http.ResponseWriter, r *http.Request) {
	var req StarGenerateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	recs, err := s.generator.Recommendations(r.Context(), req.toStarRequest())
	if err != nil {
		s.errorResponse(w, generationStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]types.Recommendations{"recommendations": recs})
}

func (s *Server) handleStarBullets(w http.ResponseWriter, r *http.Request) {
	var req StarGenerateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	bullets, err := s.generator.Bullets(r.Context(), req.toStarRequest())
	if err != nil {
		s.errorResponse(w, generationStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]types.Bullets{"bullets": bullets})
}

// TailorRequest carries the target position for the tailor endpoint.
type TailorRequest struct {
	TargetPosition string `json:"targetPosition" validate:"required"`
}

// loadExperienceForGeneration fetches the record and shapes its content as a
// generation request.
func (s *Server) loadExperienceForGeneration(w http.ResponseWriter, r *http.Request) (types.SavedExperience, types.StarRequest, bool) {
	id, ok := s.experienceID(w, r)
	if !ok {
		return types.SavedExperience{}, types.StarRequest{}, false
	}

	exp, err := s.experiences.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrExperienceNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Experience not found")
		} else {
			s.errorResponse(w, http.StatusInternalServerError, "Storage error: "+err.Error())
		}
		return types.SavedExperience{}, types.StarRequest{}, false
	}

	industries := exp.Industries
	if industries == nil {
		industries = []string{}
	}
	req := types.StarRequest{
		BasicInfo: types.BasicInfoPayload{
			Company:  exp.Company,
			Position: exp.Title,
			Industry: industries,
		},
		StarContent: exp.StarContent,
	}
	if !exp.Recommendations.Empty() {
		recs := exp.Recommendations
		req.Recommendations = &recs
	}
	return exp, req, true
}

// applyGeneratedBullets records a new version and updates the stored record.
func (s *Server) applyGeneratedBullets(w http.ResponseWriter, exp types.SavedExperience, bullets types.Bullets, kind types.VersionKind) {
	if _, err := s.tracker.BeginSession(exp); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Version error: "+err.Error())
		return
	}
	version, err := s.tracker.Record(exp.ID, bullets, kind)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Version error: "+err.Error())
		return
	}

	exp.Bullets = bullets
	saved, err := s.experiences.Save(exp)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Storage error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"experience": saved,
		"version":    version,
	})
}

func (s *Server) handleRegenerateBullets(w http.ResponseWriter, r *http.Request) {
	exp, req, ok := s.loadExperienceForGeneration(w, r)
	if !ok {
		return
	}

	bullets, err := s.generator.Bullets(r.Context(), req)
	if err != nil {
		s.errorResponse(w, generationStatus(err), err.Error())
		return
	}
	s.applyGeneratedBullets(w, exp, bullets, types.VersionRegenerate)
}

func (s *Server) handleTailorBullets(w http.ResponseWriter, r *http.Request) {
	exp, req, ok := s.loadExperienceForGeneration(w, r)
	if !ok {
		return
	}

	var body TailorRequest
	if !s.decodeAndValidate(w, r, &body) {
		return
	}

	bullets, err := s.generator.Tailor(r.Context(), req, body.TargetPosition)
	if err != nil {
		s.errorResponse(w, generationStatus(err), err.Error())
		return
	}
	s.applyGeneratedBullets(w, exp, bullets, types.VersionTailor)
}
