// Package genclient is the HTTP client for the external recommendation and
// bullet generation service. It owns request/response shaping only: no
// retries (the UI is the retry policy owner) and no inference logic.
package genclient

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/sync/singleflight"

	"github.com/gtri-thrive/toolkit/internal/schemas"
	"github.com/gtri-thrive/toolkit/internal/types"
)

// DefaultTimeout bounds every generation request. The deployed service has
// no server-side limit, so the client enforces one.
const DefaultTimeout = 30 * time.Second

// Generation endpoints, relative to the service base URL.
const (
	EndpointRecommendations = "/api/star/recommendations"
	EndpointBullets         = "/api/star/bullets"
	EndpointTailor          = "/api/star/tailor"
)

// Options configures the client.
type Options struct {
	Timeout    time.Duration
	HTTPClient *http.Client
	// SchemaDir points at the repo's schemas directory. Empty means
	// auto-resolve; payload validation is skipped when no schemas are found.
	SchemaDir string
}

// Client issues generation requests. Calls are single-flight: a concurrent
// duplicate of an in-flight request joins it and shares the result instead
// of racing a second request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	group      singleflight.Group

	bulletsSchema *gojsonschema.Schema
	recsSchema    *gojsonschema.Schema
}

// New creates a client for the generation service at baseURL.
func New(baseURL string, opts *Options) *Client {
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

	c := &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    timeout,
	}
	c.loadSchemas(opts.SchemaDir)
	return c
}

func (c *Client) loadSchemas(dir string) {
	resolve := func(name string) string {
		if dir != "" {
			return dir + "/" + name
		}
		return schemas.ResolveSchemaPath("schemas/" + name)
	}
	if path := resolve("star_bullets.schema.json"); path != "" {
		schema, err := schemas.Compile(path)
		if err != nil {
			log.Printf("[genclient] bullets schema unavailable: %v", err)
		} else {
			c.bulletsSchema = schema
		}
	}
	if path := resolve("star_recommendations.schema.json"); path != "" {
		schema, err := schemas.Compile(path)
		if err != nil {
			log.Printf("[genclient] recommendations schema unavailable: %v", err)
		} else {
			c.recsSchema = schema
		}
	}
}

// Recommendations requests per-section STAR improvement suggestions.
func (c *Client) Recommendations(ctx context.Context, req types.StarRequest) (types.Recommendations, error) {
	body, err := c.post(ctx, EndpointRecommendations, req)
	if err != nil {
		return types.Recommendations{}, err
	}

	if c.recsSchema != nil {
		if verr := schemas.ValidateJSON(c.recsSchema, body); verr != nil {
			return types.Recommendations{}, &GenerationError{Endpoint: EndpointRecommendations, Message: "response failed schema validation", Cause: verr}
		}
	}

	var payload struct {
		Recommendations types.Recommendations `json:"recommendations"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Recommendations{}, &GenerationError{Endpoint: EndpointRecommendations, Message: "malformed response body", Cause: err}
	}
	payload.Recommendations.Normalize()
	return payload.Recommendations, nil
}

// Bullets requests generated resume bullets for the draft. The response may
// embed its JSON payload in surrounding prose; extraction failure is an
// explicit error, never an empty list.
func (c *Client) Bullets(ctx context.Context, req types.StarRequest) (types.Bullets, error) {
	body, err := c.post(ctx, EndpointBullets, req)
	if err != nil {
		return nil, err
	}
	return c.parseBullets(EndpointBullets, string(body))
}

// Tailor requests bullets rewritten toward a target position. The response
// is either {bullets} directly or {raw_response} carrying embedded JSON.
func (c *Client) Tailor(ctx context.Context, req types.StarRequest, targetPosition string) (types.Bullets, error) {
	type tailorRequest struct {
		types.StarRequest
		TargetPosition string `json:"targetPosition"`
	}
	body, err := c.post(ctx, EndpointTailor, tailorRequest{StarRequest: req, TargetPosition: targetPosition})
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Bullets     []string `json:"bullets"`
		RawResponse string   `json:"raw_response"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil {
		if wrapper.Bullets != nil {
			return types.Bullets(CleanBullets(wrapper.Bullets)), nil
		}
		if wrapper.RawResponse != "" {
			return c.parseBullets(EndpointTailor, wrapper.RawResponse)
		}
	}
	return c.parseBullets(EndpointTailor, string(body))
}

// parseBullets recovers the {bullets} payload from a response body that may
// wrap it in prose, code fences, or doubled braces.
func (c *Client) parseBullets(endpoint, body string) (types.Bullets, error) {
	raw, err := ExtractJSONObject(body)
	if err != nil {
		return nil, &GenerationError{Endpoint: endpoint, Message: "no valid JSON found in response", Cause: err}
	}

	if c.bulletsSchema != nil {
		if verr := schemas.ValidateJSON(c.bulletsSchema, []byte(raw)); verr != nil {
			return nil, &GenerationError{Endpoint: endpoint, Message: "response failed schema validation", Cause: verr}
		}
	}

	var payload struct {
		Bullets []string `json:"bullets"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &GenerationError{Endpoint: endpoint, Message: "malformed bullets payload", Cause: err}
	}
	if payload.Bullets == nil {
		return nil, &GenerationError{Endpoint: endpoint, Message: "response carries no bullets array"}
	}
	return types.Bullets(CleanBullets(payload.Bullets)), nil
}

// post issues one single-flight JSON POST and returns the raw response body.
func (c *Client) post(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, &GenerationError{Endpoint: endpoint, Message: "cannot encode request", Cause: err}
	}

	// Identical concurrent requests share one flight; distinct payloads for
	// the same endpoint proceed independently.
	sum := sha256.Sum256(encoded)
	key := endpoint + ":" + hex.EncodeToString(sum[:8])

	result, err, _ := c.group.Do(key, func() (any, error) {
		return c.doPost(ctx, endpoint, encoded)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (c *Client) doPost(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &GenerationError{Endpoint: endpoint, Message: "cannot build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &GenerationTimeoutError{Endpoint: endpoint, Timeout: c.timeout}
		}
		return nil, &GenerationError{Endpoint: endpoint, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GenerationError{Endpoint: endpoint, Message: "cannot read response", Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GenerationError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Message:  fmt.Sprintf("server error: %s", snippet(respBody)),
		}
	}
	return respBody, nil
}

// snippet truncates a response body for error messages.
func snippet(body []byte) string {
	const max = 200
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
