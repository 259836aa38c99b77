package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	return cfg
}

// recordingObserver keeps the last event for assertions.
type recordingObserver struct {
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(e CallEvent) { o.events = append(o.events, e) }

func TestClient_Recommend_Envelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/recommendation", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"Mental health", "Social health", "Mental health"}, req.Domains)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"recommendations": []string{"Try a 10 minute meditation", "Call a friend"},
		})
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewClient(testConfig(srv.URL+"/api/recommendation"), obs)
	recs, err := client.Recommend(context.Background(), []string{"Mental health", "Social health", "Mental health"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Try a 10 minute meditation", "Call a friend"}, recs)
	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 3, obs.events[0].Domains)
	assert.Equal(t, http.StatusOK, obs.events[0].StatusCode)
}

func TestClient_Recommend_BareList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["Walk after lunch"]`))
	}))
	defer srv.Close()

	recs, err := NewClient(testConfig(srv.URL), nil).Recommend(context.Background(), []string{"Physical activity"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Walk after lunch"}, recs)
}

func TestClient_Recommend_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	_, err := NewClient(testConfig(srv.URL), obs).Recommend(context.Background(), []string{"x"})

	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, ErrBadStatus)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "BAD_STATUS", obs.events[0].ErrorCode)
}

func TestClient_Recommend_UnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(srv.URL), nil).Recommend(context.Background(), []string{"x"})

	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Recommend_Unavailable(t *testing.T) {
	_, err := NewClient(testConfig("http://127.0.0.1:1"), nil).Recommend(context.Background(), []string{"x"})

	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_Recommend_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	_, err := NewClient(cfg, nil).Recommend(context.Background(), []string{"x"})

	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Recommend_SingleAttempt(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(srv.URL), nil).Recommend(context.Background(), []string{"x"})

	require.Error(t, err)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_DefaultEndpoint(t *testing.T) {
	c := NewClient(Config{}, nil)
	assert.Equal(t, DefaultEndpoint, c.Endpoint())
}

func TestDecodeRecommendations(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{name: "envelope", body: `{"recommendations":["a","b"]}`, want: []string{"a", "b"}},
		{name: "envelope preferred over other fields", body: `{"items":["x"],"recommendations":["a"]}`, want: []string{"a"}},
		{name: "bare list", body: ` ["a"] `, want: []string{"a"}},
		{name: "empty list", body: `[]`, want: []string{}},
		{name: "object without field", body: `{"message":"ok"}`, want: []string{}},
		{name: "null field", body: `{"recommendations":null}`, want: []string{}},
		{name: "null body", body: `null`, want: []string{}},
		{name: "scalar body", body: `"just text"`, want: []string{}},
		{name: "field not a list", body: `{"recommendations":"text"}`, wantErr: true},
		{name: "list of numbers", body: `[1,2]`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "garbage", body: `{oops`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRecommendations([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
