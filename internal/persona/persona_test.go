package persona

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtri-thrive/toolkit/internal/store"
	"github.com/gtri-thrive/toolkit/internal/types"
)

const sampleGenerated = `<PersonalInfo>
- Name: Jordan Reyes
- Summary: A resourceful organizer who turns scattered experience into momentum.
</PersonalInfo>
<QualificationsAndEducation>
- GED
- Forklift certification
</QualificationsAndEducation>
<Skills>
- Inventory management
- Conflict de-escalation
</Skills>
<Goals>
- Move into logistics coordination
</Goals>
<Strengths>
- Persistence
</Strengths>
<LifeExperiences>
- Managed a household through a cross-country relocation
</LifeExperiences>
<ValueProposition>
- Calm under pressure
</ValueProposition>
<NextSteps>
- Complete OSHA training
</NextSteps>`

func TestParse_FullBlob(t *testing.T) {
	p := Parse(sampleGenerated)

	assert.Equal(t, "Jordan Reyes", p.Name)
	assert.Equal(t, "A resourceful organizer who turns scattered experience into momentum.", p.Summary)
	assert.Equal(t, []string{"GED", "Forklift certification"}, p.QualificationsAndEducation)
	assert.Equal(t, []string{"Inventory management", "Conflict de-escalation"}, p.Skills)
	assert.Equal(t, []string{"Move into logistics coordination"}, p.Goals)
	assert.Equal(t, []string{"Complete OSHA training"}, p.NextSteps)
}

func TestParse_ClosingTagsNeverLeakIntoSections(t *testing.T) {
	p := Parse(sampleGenerated)
	for _, section := range [][]string{
		p.QualificationsAndEducation, p.Skills, p.Goals,
		p.Strengths, p.LifeExperiences, p.ValueProposition, p.NextSteps,
	} {
		for _, item := range section {
			assert.NotContains(t, item, "</")
		}
	}
}

func TestParse_MissingSectionsDefaultEmpty(t *testing.T) {
	p := Parse("<Skills>\n- Welding\n</Skills>")

	assert.Equal(t, []string{"Welding"}, p.Skills)
	assert.Empty(t, p.Name)
	require.NotNil(t, p.Goals, "absent sections are empty, never nil")
	assert.Empty(t, p.Goals)
	assert.NotNil(t, p.NextSteps)
}

func TestParse_UnknownTagsIgnored(t *testing.T) {
	p := Parse("<Mystery>\n- noise\n</Mystery>\n<Skills>\n- Welding\n</Skills>")
	assert.Equal(t, []string{"Welding"}, p.Skills)
}

func TestParse_EmptyInput(t *testing.T) {
	p := Parse("")
	assert.Empty(t, p.Name)
	assert.NotNil(t, p.Skills)
}

func TestGenerate_ParsesAndStampsPersona(t *testing.T) {
	var gotSettings GenerationSettings
	var gotCareer []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, EndpointGenerate, r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("generation_settings")), &gotSettings))
		gotCareer = r.MultipartForm.Value["careerJourney[]"]
		assert.Equal(t, "Jordan", r.FormValue("firstName"))

		json.NewEncoder(w).Encode(map[string]string{
			"persona":    sampleGenerated,
			"persona_id": "4f9c2a3e-8a1b-4c8e-9f21-1d2e3f405060",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	p, err := client.Generate(context.Background(), IntakeForm{
		Fields: map[string]string{"firstName": "Jordan", "careerGoals": "logistics"},
		Lists:  map[string][]string{"careerJourney": {"Retail", "Military spouse"}},
	}, GenerationSettings{Model: "llama3-8b-8192", Creativity: 0.7})
	require.NoError(t, err)

	assert.Equal(t, "4f9c2a3e-8a1b-4c8e-9f21-1d2e3f405060", p.ID)
	assert.Equal(t, "Jordan Reyes", p.Name)
	assert.NotZero(t, p.Timestamp)
	assert.Equal(t, []string{"Retail", "Military spouse"}, gotCareer)
	assert.Equal(t, "llama3-8b-8192", gotSettings.Model)
	assert.InDelta(t, 0.7, gotSettings.Creativity, 1e-9)
}

func TestGenerate_ServiceErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "model unavailable"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Generate(context.Background(), IntakeForm{}, GenerationSettings{})
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusInternalServerError, perr.Status)
	assert.Contains(t, perr.Message, "model unavailable")
}

func TestGenerate_MissingIDGetsFreshUUID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"persona": sampleGenerated})
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL, nil).Generate(context.Background(), IntakeForm{}, GenerationSettings{})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
}

func TestAll_DecodesLowercaseSectionKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, EndpointAll, r.URL.Path)
		// the service lowercases section keys when it stores personas
		w.Write([]byte(`[{"id":"abc","name":"Jordan","summary":"s","qualificationsandeducation":["GED"],"skills":["Welding"]}]`))
	}))
	defer srv.Close()

	personas, err := NewClient(srv.URL, nil).All(context.Background())
	require.NoError(t, err)
	require.Len(t, personas, 1)
	assert.Equal(t, []string{"GED"}, personas[0].QualificationsAndEducation)
	assert.NotNil(t, personas[0].Goals, "missing sections normalized to empty")
}

func TestStore_AddDeduplicatesAndOrders(t *testing.T) {
	kv, err := store.New(t.TempDir())
	require.NoError(t, err)
	ps := NewStore(kv)

	require.NoError(t, ps.Add(types.PersonaData{ID: "a", Name: "First", Timestamp: 100}))
	require.NoError(t, ps.Add(types.PersonaData{ID: "b", Name: "Second", Timestamp: 200}))
	require.NoError(t, ps.Add(types.PersonaData{ID: "a", Name: "First, revised", Timestamp: 300}))

	personas := ps.List()
	require.Len(t, personas, 2)
	assert.Equal(t, "First, revised", personas[0].Name)
	assert.Equal(t, "Second", personas[1].Name)
}
