package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/gtri-thrive/toolkit/internal/types"
)

// Half-point font sizes for the generated document.
const (
	nameSize    = "36"
	headingSize = "26"
)

// PersonaDOCX assembles a resume-style document from a persona's field
// values. Empty sections are skipped rather than emitted blank.
func (e *Exporter) PersonaDOCX(_ context.Context, p types.PersonaData) ([]byte, error) {
	p.Normalize()

	w := docx.New().WithDefaultTheme()

	name := w.AddParagraph().Justification("center")
	name.AddText(p.Name).Size(nameSize).Bold()
	if p.Summary != "" {
		w.AddParagraph().Justification("center").AddText(p.Summary)
	}

	docxSection(w, "EDUCATION", p.QualificationsAndEducation, false)
	docxSection(w, "RELEVANT EXPERIENCE", p.LifeExperiences, true)
	docxSection(w, "SKILLS", p.Skills, true)
	docxSection(w, "STRENGTHS", p.Strengths, true)
	docxSection(w, "VALUE PROPOSITION", p.ValueProposition, true)
	docxSection(w, "NEXT STEPS", p.NextSteps, true)

	buf, err := writeDocx(w)
	if err != nil {
		return nil, e.fail(FormatDOCX, err)
	}
	return buf, nil
}

// ExperienceDOCX assembles a document from a saved experience: a heading,
// the company and dates line, and the bullet list.
func (e *Exporter) ExperienceDOCX(_ context.Context, exp types.SavedExperience) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	title := w.AddParagraph()
	title.AddText(exp.Title).Size(nameSize).Bold()

	subtitle := strings.TrimSpace(exp.Company)
	if dates := formatDates(exp.DateRange); dates != "" {
		if subtitle != "" {
			subtitle += " · "
		}
		subtitle += dates
	}
	if subtitle != "" {
		w.AddParagraph().AddText(subtitle).Color("595959")
	}

	for _, bullet := range exp.Bullets {
		w.AddParagraph().AddText(bulletLine(bullet))
	}

	buf, err := writeDocx(w)
	if err != nil {
		return nil, e.fail(FormatDOCX, err)
	}
	return buf, nil
}

// docxSection emits a heading followed by one paragraph per item; bulleted
// sections prefix each item. Empty item lists produce nothing.
func docxSection(w *docx.Docx, heading string, items []string, bulleted bool) {
	if len(items) == 0 {
		return
	}
	h := w.AddParagraph()
	h.AddText(heading).Size(headingSize).Bold()
	for _, item := range items {
		if bulleted {
			item = bulletLine(item)
		}
		w.AddParagraph().AddText(item)
	}
}

// bulletLine ensures exactly one bullet marker on a line.
func bulletLine(s string) string {
	if strings.HasPrefix(s, "• ") {
		return s
	}
	return "• " + s
}

func writeDocx(w *docx.Docx) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}
	return buf.Bytes(), nil
}
