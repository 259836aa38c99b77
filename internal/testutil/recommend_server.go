package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecommendServer is a fake recommendation endpoint that records every
// domains payload it receives.
type RecommendServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests [][]string

	// status and body override the reply when set.
	status int
	body   string
}

// NewRecommendServer starts a fake endpoint answering
// {"recommendations": ["Focus on <domain>", ...]} and closes it on cleanup.
func NewRecommendServer(t *testing.T) *RecommendServer {
	t.Helper()
	s := &RecommendServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *RecommendServer) handle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Domains []string `json:"domains"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, req.Domains)
	status, body := s.status, s.body
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	if body != "" {
		w.Write([]byte(body))
		return
	}
	recs := make([]string, 0, len(req.Domains))
	for _, d := range req.Domains {
		recs = append(recs, "Focus on "+d)
	}
	json.NewEncoder(w).Encode(map[string][]string{"recommendations": recs})
}

// Requests returns the domain lists received so far.
func (s *RecommendServer) Requests() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.requests...)
}

// Fail makes every later request answer with status and no usable body.
func (s *RecommendServer) Fail(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = `{"error":"unavailable"}`
}
