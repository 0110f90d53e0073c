// Package export renders finished experience cards and bullet lists to
// PNG, PDF and DOCX. Rasterized formats go through headless Chrome; DOCX is
// assembled structurally from field values. Export never mutates the source
// record, and every failure surfaces as an ExportError.
package export

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/gtri-thrive/toolkit/internal/types"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFiles, "templates/*.tmpl"))

// DefaultBackground is used when a record carries no gradient of its own.
const DefaultBackground = "linear-gradient(to top left, #accbee, #e7f0fd)"

// cardSection pairs a display heading with its items for the card layout.
type cardSection struct {
	Title string
	Items []string
}

// RenderCard produces the standalone HTML page for a persona card.
func RenderCard(p types.PersonaData, background string) (string, error) {
	if background == "" {
		background = DefaultBackground
	}
	p.Normalize()
	data := struct {
		Persona    types.PersonaData
		Background template.CSS
		Sections   []cardSection
	}{
		Persona:    p,
		Background: template.CSS(background),
		Sections: []cardSection{
			{Title: "Qualifications & Education", Items: p.QualificationsAndEducation},
			{Title: "Skills", Items: p.Skills},
			{Title: "Goals", Items: p.Goals},
			{Title: "Strengths", Items: p.Strengths},
			{Title: "Life Experiences", Items: p.LifeExperiences},
			{Title: "Value Proposition", Items: p.ValueProposition},
			{Title: "Next Steps", Items: p.NextSteps},
		},
	}
	var buf strings.Builder
	if err := pageTemplates.ExecuteTemplate(&buf, "card.html.tmpl", data); err != nil {
		return "", fmt.Errorf("rendering card template: %w", err)
	}
	return buf.String(), nil
}

// RenderBullets produces the standalone HTML page for a bullet list sheet.
func RenderBullets(exp types.SavedExperience) (string, error) {
	background := exp.Gradient
	if background == "" {
		background = DefaultBackground
	}
	data := struct {
		Experience types.SavedExperience
		Background template.CSS
		Dates      string
	}{
		Experience: exp,
		Background: template.CSS(background),
		Dates:      formatDates(exp.DateRange),
	}
	var buf strings.Builder
	if err := pageTemplates.ExecuteTemplate(&buf, "bullets.html.tmpl", data); err != nil {
		return "", fmt.Errorf("rendering bullets template: %w", err)
	}
	return buf.String(), nil
}

func formatDates(d types.DateRange) string {
	start := strings.TrimSpace(d.StartMonth + " " + d.StartYear)
	end := strings.TrimSpace(d.EndMonth + " " + d.EndYear)
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " – Present"
	case start == "":
		return end
	}
	return start + " – " + end
}
