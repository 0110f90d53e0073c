//nolint:revive // types is a standard Go package name pattern
package types

// PersonaData is the flat record backing one Experience Card. The backend
// emits lowercased section keys ("qualificationsandeducation"); Go's JSON
// decoder matches field names case-insensitively, so the camelCase tags
// cover both spellings.
type PersonaData struct {
	ID                         string   `json:"id,omitempty"`
	Name                       string   `json:"name"`
	Summary                    string   `json:"summary"`
	QualificationsAndEducation []string `json:"qualificationsAndEducation"`
	Skills                     []string `json:"skills"`
	Goals                      []string `json:"goals"`
	Strengths                  []string `json:"strengths"`
	LifeExperiences            []string `json:"lifeExperiences"`
	ValueProposition           []string `json:"valueProposition"`
	NextSteps                  []string `json:"nextSteps"`
	Timestamp                  int64    `json:"timestamp,omitempty"`
}

// Normalize replaces nil section slices with empty ones so DOCX export and
// rendering never see an absent list.
func (p *PersonaData) Normalize() {
	sections := []*[]string{
		&p.QualificationsAndEducation,
		&p.Skills,
		&p.Goals,
		&p.Strengths,
		&p.LifeExperiences,
		&p.ValueProposition,
		&p.NextSteps,
	}
	for _, s := range sections {
		if *s == nil {
			*s = []string{}
		}
	}
}
