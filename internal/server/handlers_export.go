package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gtri-thrive/toolkit/internal/export"
	"github.com/gtri-thrive/toolkit/internal/store"
)

var exportContentTypes = map[export.Format]string{
	export.FormatPNG:  "image/png",
	export.FormatPDF:  "application/pdf",
	export.FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func (s *Server) handleExportExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := s.experienceID(w, r)
	if !ok {
		return
	}

	format := export.Format(r.URL.Query().Get("format"))
	if !format.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "format must be png, pdf or docx")
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

	var data []byte
	switch format {
	case export.FormatPNG:
		data, err = s.exporter.ExperiencePNG(r.Context(), exp)
	case export.FormatPDF:
		data, err = s.exporter.ExperiencePDF(r.Context(), exp)
	case export.FormatDOCX:
		data, err = s.exporter.ExperienceDOCX(r.Context(), exp)
	}
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Export failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", exportContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("experience-%d.%s", exp.ID, format)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		// headers are gone; nothing to do but log
		log.Printf("[server] export write failed: %v", err)
	}
}
