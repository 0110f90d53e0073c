//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft_InitialState(t *testing.T) {
	d := NewDraft()

	assert.Equal(t, 0, d.CurrentStep)
	assert.Empty(t, d.ExperienceType)
	assert.False(t, d.IsGenerating)
	require.NotNil(t, d.Recommendations.Situation)
	require.NotNil(t, d.Recommendations.Task)
	require.NotNil(t, d.Recommendations.Action)
	require.NotNil(t, d.Recommendations.Result)
	assert.NotNil(t, d.GeneratedBullets)
}

func TestExperienceDraft_Normalize(t *testing.T) {
	var d ExperienceDraft
	require.NoError(t, json.Unmarshal([]byte(`{"currentStep":2}`), &d))
	d.Normalize()

	assert.NotNil(t, d.Recommendations.Situation)
	assert.NotNil(t, d.BasicInfo.Industries)
	assert.NotNil(t, d.GeneratedBullets)
}

func TestToRequestPayload_IndustryWireName(t *testing.T) {
	d := NewDraft()
	d.BasicInfo.Company = "Acme"
	d.BasicInfo.Position = "Engineer"
	d.BasicInfo.Industries = []string{"FinTech", "Cloud Computing"}
	d.StarContent = StarContent{Situation: "s", Task: "t", Actions: "a", Results: "r"}

	payload, err := json.Marshal(d.ToRequestPayload())
	require.NoError(t, err)

	// The plural model field travels under the singular wire name.
	assert.Contains(t, string(payload), `"industry":["FinTech","Cloud Computing"]`)
	assert.Contains(t, string(payload), `"basic_info"`)
	assert.Contains(t, string(payload), `"star_content"`)
	// Empty recommendations are omitted, not sent as empty sections.
	assert.NotContains(t, string(payload), `"recommendations"`)
}

func TestToRequestPayload_IncludesRecommendations(t *testing.T) {
	d := NewDraft()
	d.Recommendations.Situation = []Recommendation{{Title: "Specificity in Context"}}

	req := d.ToRequestPayload()
	require.NotNil(t, req.Recommendations)
	assert.Len(t, req.Recommendations.Situation, 1)
}

func TestSavedExperience_DraftRoundTrip(t *testing.T) {
	d := NewDraft()
	d.ExperienceType = TypeWork
	d.BasicInfo.Company = "Acme"
	d.BasicInfo.Position = "Engineer"
	d.BasicInfo.DateRange = DateRange{StartMonth: "May", StartYear: "2021", EndMonth: "June", EndYear: "2023"}
	d.StarContent = StarContent{Situation: "s", Task: "t", Actions: "a", Results: "r"}
	d.GeneratedBullets = Bullets{"• Did X"}

	exp := FromDraft(d)
	assert.Equal(t, "Engineer", exp.Title)
	assert.Equal(t, "Acme", exp.Company)
	assert.Equal(t, TypeWork, exp.Type)

	back := exp.ToDraft()
	assert.Equal(t, 3, back.CurrentStep)
	assert.Equal(t, d.BasicInfo.Company, back.BasicInfo.Company)
	assert.Equal(t, d.BasicInfo.Position, back.BasicInfo.Position)
	assert.Equal(t, d.StarContent, back.StarContent)
	assert.Equal(t, d.GeneratedBullets, back.GeneratedBullets)
}

func TestStarContent_Complete(t *testing.T) {
	full := StarContent{Situation: "s", Task: "t", Actions: "a", Results: "r"}
	assert.True(t, full.Complete())

	partial := full
	partial.Situation = ""
	assert.False(t, partial.Complete())
}

func TestVersionMeta_Table(t *testing.T) {
	assert.Equal(t, "Generated", MetaFor(VersionGenerate).Label)
	assert.Equal(t, "Regenerated", MetaFor(VersionRegenerate).Label)
	assert.Equal(t, "Tailored", MetaFor(VersionTailor).Label)
	assert.Equal(t, "Original Version", MetaFor(VersionOriginal).Label)
}

func TestPersonaData_NormalizeAndCaseInsensitiveKeys(t *testing.T) {
	// The backend emits fully lowercased section keys.
	input := `{"name":"Jane","summary":"...","qualificationsandeducation":["BS"],"valueproposition":["x"]}`

	var p PersonaData
	require.NoError(t, json.Unmarshal([]byte(input), &p))
	p.Normalize()

	assert.Equal(t, []string{"BS"}, p.QualificationsAndEducation)
	assert.Equal(t, []string{"x"}, p.ValueProposition)
	assert.NotNil(t, p.Skills)
	assert.NotNil(t, p.NextSteps)
}
