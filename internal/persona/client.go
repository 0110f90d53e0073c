package persona

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gtri-thrive/toolkit/internal/types"
)

// Persona endpoints, relative to the service base URL.
const (
	EndpointGenerate = "/generate_persona_stream"
	EndpointAll      = "/get_all_personas"
)

// DefaultTimeout bounds persona requests. Generation streams a full model
// completion server-side, so the window is generous.
const DefaultTimeout = 60 * time.Second

// Error describes a failed persona service call.
type Error struct {
	Endpoint string
	Status   int
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("persona request to %s failed with status %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("persona request to %s failed: %s", e.Endpoint, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IntakeForm is the free-form intake questionnaire sent to the generation
// service. Scalar answers post under their key; multi-select answers post
// repeated under "key[]", matching the service's form contract.
type IntakeForm struct {
	Fields map[string]string
	Lists  map[string][]string
}

// GenerationSettings tunes the service-side model call. Zero values fall
// back to the service defaults.
type GenerationSettings struct {
	APIKey        string  `json:"api_key,omitempty"`
	Model         string  `json:"model,omitempty"`
	Creativity    float64 `json:"creativity,omitempty"`
	Realism       float64 `json:"realism,omitempty"`
	DefaultPrompt string  `json:"default_prompt,omitempty"`
}

// Options configures the client.
type Options struct {
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client issues persona requests against the card generation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a client for the persona service at baseURL.
func NewClient(baseURL string, opts *Options) *Client {
	if opts == nil {
		opts = &Options{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, timeout: timeout}
}

// Generate posts the intake form and settings, parses the generated text
// into a PersonaData, and stamps it with the service-assigned id (or a fresh
// one when the service omits it) and the current time.
func (c *Client) Generate(ctx context.Context, form IntakeForm, settings GenerationSettings) (types.PersonaData, error) {
	var buf strings.Builder
	mw := multipart.NewWriter(&buf)
	for key, value := range form.Fields {
		if err := mw.WriteField(key, value); err != nil {
			return types.PersonaData{}, &Error{Endpoint: EndpointGenerate, Message: "building form", Cause: err}
		}
	}
	for key, values := range form.Lists {
		for _, value := range values {
			if err := mw.WriteField(key+"[]", value); err != nil {
				return types.PersonaData{}, &Error{Endpoint: EndpointGenerate, Message: "building form", Cause: err}
			}
		}
	}
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return types.PersonaData{}, &Error{Endpoint: EndpointGenerate, Message: "encoding settings", Cause: err}
	}
	if err := mw.WriteField("generation_settings", string(settingsJSON)); err != nil {
		return types.PersonaData{}, &Error{Endpoint: EndpointGenerate, Message: "building form", Cause: err}
	}
	if err := mw.Close(); err != nil {
		return types.PersonaData{}, &Error{Endpoint: EndpointGenerate, Message: "building form", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+EndpointGenerate, strings.NewReader(buf.String()))
	if err != nil {
		return types.PersonaData{}, &Error{Endpoint: EndpointGenerate, Message: "building request", Cause: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.PersonaData{}, &Error{Endpoint: EndpointGenerate, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.PersonaData{}, &Error{Endpoint: EndpointGenerate, Status: resp.StatusCode, Message: "reading response", Cause: err}
	}

	var payload struct {
		Persona   string `json:"persona"`
		PersonaID string `json:"persona_id"`
		ErrorMsg  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.PersonaData{}, &Error{Endpoint: EndpointGenerate, Status: resp.StatusCode, Message: "unparseable response", Cause: err}
	}
	if payload.ErrorMsg != "" {
		return types.PersonaData{}, &Error{Endpoint: EndpointGenerate, Status: resp.StatusCode, Message: payload.ErrorMsg}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return types.PersonaData{}, &Error{Endpoint: EndpointGenerate, Status: resp.StatusCode, Message: "service error"}
	}

	p := Parse(payload.Persona)
	p.ID = payload.PersonaID
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Timestamp = time.Now().UnixMilli()
	return p, nil
}

// All fetches every persona the service currently holds.
func (c *Client) All(ctx context.Context) ([]types.PersonaData, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+EndpointAll, nil)
	if err != nil {
		return nil, &Error{Endpoint: EndpointAll, Message: "building request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Endpoint: EndpointAll, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Endpoint: EndpointAll, Status: resp.StatusCode, Message: "service error"}
	}

	var personas []types.PersonaData
	if err := json.NewDecoder(resp.Body).Decode(&personas); err != nil {
		return nil, &Error{Endpoint: EndpointAll, Status: resp.StatusCode, Message: "unparseable response", Cause: err}
	}
	for i := range personas {
		personas[i].Normalize()
	}
	return personas, nil
}

// Sort orders personas newest first, matching how cards are listed.
func Sort(personas []types.PersonaData) {
	sort.SliceStable(personas, func(i, j int) bool {
		return personas[i].Timestamp > personas[j].Timestamp
	})
}
