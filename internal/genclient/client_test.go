package genclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtri-thrive/toolkit/internal/types"
)

func testRequest() types.StarRequest {
	return types.StarRequest{
		BasicInfo: types.BasicInfoPayload{
			Company:  "Acme",
			Position: "Engineer",
			Industry: []string{"FinTech"},
		},
		StarContent: types.StarContent{Situation: "s", Task: "t", Actions: "a", Results: "r"},
	}
}

func TestRecommendations_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, EndpointRecommendations, r.URL.Path)

		var req map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req, "basic_info")
		assert.Contains(t, req, "star_content")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recommendations":{"situation":[{"title":"Specificity in Context","subtitle":"Add detail","examples":[{"example_1":"a","example_2":"b"}]}],"task":[],"action":null}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	recs, err := c.Recommendations(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, recs.Situation, 1)
	assert.Equal(t, "Specificity in Context", recs.Situation[0].Title)
	assert.Equal(t, "a", recs.Situation[0].Examples[0].Example1)
	// Absent or null sections come back as empty slices, never nil.
	assert.NotNil(t, recs.Action)
	assert.NotNil(t, recs.Result)
}

func TestRecommendations_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Recommendations(context.Background(), testRequest())

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, http.StatusBadGateway, genErr.Status)
}

func TestBullets_EmbeddedJSONRecovery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, EndpointBullets, r.URL.Path)
		w.Write([]byte(`Here is your result: {"bullets":["- Delivered $2M in savings","\"- Cut costs\""]} Thanks!`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	bullets, err := c.Bullets(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, types.Bullets{"• Delivered $2M in savings", "• Cut costs"}, bullets)
}

func TestBullets_NoJSONFailsExplicitly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Sorry, the model is warming up."))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	bullets, err := c.Bullets(context.Background(), testRequest())

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr, "must fail, not return an empty array")
	assert.Nil(t, bullets)
}

func TestBullets_MissingBulletsArrayFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Bullets(context.Background(), testRequest())
	assert.Error(t, err)
}

func TestTailor_DirectBullets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, EndpointTailor, r.URL.Path)

		var req map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req, "targetPosition")

		w.Write([]byte(`{"bullets":["- Tailored A"]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	bullets, err := c.Tailor(context.Background(), testRequest(), "Product Manager")
	require.NoError(t, err)
	assert.Equal(t, types.Bullets{"• Tailored A"}, bullets)
}

func TestTailor_RawResponseExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"raw_response":"Model says: {\"bullets\":[\"- Tailored B\"]}"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	bullets, err := c.Tailor(context.Background(), testRequest(), "Product Manager")
	require.NoError(t, err)
	assert.Equal(t, types.Bullets{"• Tailored B"}, bullets)
}

func TestTimeout_DistinctError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.Write([]byte(`{"bullets":[]}`))
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, &Options{Timeout: 20 * time.Millisecond})
	_, err := c.Bullets(context.Background(), testRequest())

	var timeoutErr *GenerationTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, EndpointBullets, timeoutErr.Endpoint)
}

func TestSingleFlight_ConcurrentDuplicatesShareOneRequest(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		<-release
		w.Write([]byte(`{"bullets":["- same flight"]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	req := testRequest()

	var wg sync.WaitGroup
	results := make([]types.Bullets, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, err := c.Bullets(context.Background(), req)
			assert.NoError(t, err)
			results[i] = b
		}(i)
	}

	// Give both goroutines time to join the flight, then let it finish.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "duplicate concurrent call joins the in-flight request")
	assert.Equal(t, results[0], results[1])
}
