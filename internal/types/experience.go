// Package types provides type definitions for structured data used throughout the THRIVE toolkit.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ExperienceType categorizes an experience entry.
type ExperienceType string

// Valid experience types.
const (
	TypeWork      ExperienceType = "work"
	TypeVolunteer ExperienceType = "volunteer"
	TypeSchool    ExperienceType = "school"
)

// Valid reports whether t is one of the known experience types.
func (t ExperienceType) Valid() bool {
	switch t {
	case TypeWork, TypeVolunteer, TypeSchool:
		return true
	}
	return false
}

// DateRange holds the month/year bounds of an experience. All fields are
// optional display strings (e.g. "January", "2023").
type DateRange struct {
	StartMonth string `json:"startMonth"`
	StartYear  string `json:"startYear"`
	EndMonth   string `json:"endMonth"`
	EndYear    string `json:"endYear"`
}

// BasicInfo holds the identifying fields of an experience entry.
type BasicInfo struct {
	Company    string    `json:"company"`
	Position   string    `json:"position"`
	Industries []string  `json:"industries"`
	DateRange  DateRange `json:"dateRange"`
}

// StarContent holds the four STAR free-text fields. Each may be empty while
// the draft is in progress.
type StarContent struct {
	Situation string `json:"situation"`
	Task      string `json:"task"`
	Actions   string `json:"actions"`
	Results   string `json:"results"`
}

// Complete reports whether all four STAR sections are non-empty.
func (s StarContent) Complete() bool {
	return s.Situation != "" && s.Task != "" && s.Actions != "" && s.Results != ""
}

// ExperienceDraft is the in-progress state of the STAR bullet builder. It is
// mirrored to the draft store after every mutation and cleared on save or
// confirmed restart.
type ExperienceDraft struct {
	ExperienceType  ExperienceType  `json:"experienceType,omitempty"`
	BasicInfo       BasicInfo       `json:"basicInfo"`
	StarContent     StarContent     `json:"starContent"`
	Recommendations Recommendations `json:"recommendations"`
	GeneratedBullets Bullets        `json:"generatedBullets"`
	CurrentStep     int             `json:"currentStep"`
	IsGenerating    bool            `json:"isGenerating"`
	LastSaved       string          `json:"lastSaved,omitempty"`
}

// NewDraft returns a draft in its initial state: step 0, no type selected,
// empty content, recommendation sections present but empty.
func NewDraft() ExperienceDraft {
	d := ExperienceDraft{
		BasicInfo:        BasicInfo{Industries: []string{}},
		GeneratedBullets: Bullets{},
	}
	d.Recommendations.Normalize()
	return d
}

// Normalize repairs invariants after deserialization: recommendation section
// slices are never nil and the industries list is never nil.
func (d *ExperienceDraft) Normalize() {
	d.Recommendations.Normalize()
	if d.BasicInfo.Industries == nil {
		d.BasicInfo.Industries = []string{}
	}
	if d.GeneratedBullets == nil {
		d.GeneratedBullets = Bullets{}
	}
}

// BasicInfoPayload is the wire form of BasicInfo. The service's field is named
// "industry" (singular) even though it carries the full industries list; the
// name is preserved for compatibility with the deployed service.
type BasicInfoPayload struct {
	Company  string   `json:"company"`
	Position string   `json:"position"`
	Industry []string `json:"industry"`
}

// StarRequest is the canonical request body for the STAR generation
// endpoints: nested basic_info/star_content, recommendations included where
// the endpoint uses them.
type StarRequest struct {
	BasicInfo       BasicInfoPayload `json:"basic_info"`
	StarContent     StarContent      `json:"star_content"`
	Recommendations *Recommendations `json:"recommendations,omitempty"`
}

// ToRequestPayload produces the wire shape expected by the generation
// service from the current draft.
func (d *ExperienceDraft) ToRequestPayload() StarRequest {
	industries := d.BasicInfo.Industries
	if industries == nil {
		industries = []string{}
	}
	req := StarRequest{
		BasicInfo: BasicInfoPayload{
			Company:  d.BasicInfo.Company,
			Position: d.BasicInfo.Position,
			Industry: industries,
		},
		StarContent: d.StarContent,
	}
	if !d.Recommendations.Empty() {
		recs := d.Recommendations
		req.Recommendations = &recs
	}
	return req
}

// SavedExperience is a finalized experience entry in the persisted list.
// ID is the creation-time timestamp in milliseconds and doubles as the
// identity and sort key. Gradient is a cosmetic display string assigned at
// creation; both survive edits verbatim.
type SavedExperience struct {
	ID              int64           `json:"id"`
	Type            ExperienceType  `json:"type"`
	Title           string          `json:"title"`
	Company         string          `json:"company"`
	Industries      []string        `json:"industries,omitempty"`
	DateRange       DateRange       `json:"dateRange"`
	Bullets         Bullets         `json:"bullets"`
	StarContent     StarContent     `json:"starContent"`
	Recommendations Recommendations `json:"recommendations"`
	Gradient        string          `json:"gradient"`
}

// FromDraft builds a SavedExperience from a finished draft. Title and
// Company are mirrored from the draft's basic info for list display.
// ID and Gradient are left zero; the store assigns them on first save.
func FromDraft(d ExperienceDraft) SavedExperience {
	return SavedExperience{
		Type:            d.ExperienceType,
		Title:           d.BasicInfo.Position,
		Company:         d.BasicInfo.Company,
		Industries:      d.BasicInfo.Industries,
		DateRange:       d.BasicInfo.DateRange,
		Bullets:         d.GeneratedBullets,
		StarContent:     d.StarContent,
		Recommendations: d.Recommendations,
	}
}

// ToDraft seeds an edit-mode draft from a saved experience. The wizard opens
// on the bullets review step.
func (e SavedExperience) ToDraft() ExperienceDraft {
	d := ExperienceDraft{
		ExperienceType: e.Type,
		BasicInfo: BasicInfo{
			Company:    e.Company,
			Position:   e.Title,
			Industries: e.Industries,
			DateRange:  e.DateRange,
		},
		StarContent:      e.StarContent,
		Recommendations:  e.Recommendations,
		GeneratedBullets: e.Bullets,
		CurrentStep:      3,
		LastSaved:        time.Now().Format(time.RFC3339),
	}
	d.Normalize()
	return d
}
