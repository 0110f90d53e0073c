package server

import (
	"log"
	"net/http"

	"github.com/gtri-thrive/toolkit/internal/persona"
)

// ---------------------------------------------------------------------
// Persona Handlers
// ---------------------------------------------------------------------

// PersonaGenerateRequest is the inbound body for persona generation.
type PersonaGenerateRequest struct {
	Fields   map[string]string          `json:"fields" validate:"required"`
	Lists    map[string][]string        `json:"lists"`
	Settings persona.GenerationSettings `json:"settings"`
}

// handleListPersonas serves the locally persisted personas, refreshed from
// the backend when it is reachable. A backend failure degrades to the local
// copy instead of an error.
func (s *Server) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	fetched, err := s.personas.All(r.Context())
	if err != nil {
		log.Printf("[server] persona backend unavailable, serving local copy: %v", err)
		s.jsonResponse(w, http.StatusOK, s.personaStore.List())
		return
	}

	if err := s.personaStore.Replace(fetched); err != nil {
		log.Printf("[server] persisting personas failed: %v", err)
	}
	s.jsonResponse(w, http.StatusOK, fetched)
}

func (s *Server) handleGeneratePersona(w http.ResponseWriter, r *http.Request) {
	var req PersonaGenerateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	p, err := s.personas.Generate(r.Context(), persona.IntakeForm{
		Fields: req.Fields,
		Lists:  req.Lists,
	}, req.Settings)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	if err := s.personaStore.Add(p); err != nil {
		log.Printf("[server] persisting persona failed: %v", err)
	}
	s.jsonResponse(w, http.StatusCreated, p)
}
