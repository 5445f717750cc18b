// Package apitest provides an in-memory jobs API for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/jobdesk/jobdesk-terminal/pkg/models"
)

// Server is a fake jobs API backed by a slice. It assigns sequential ids,
// preserves fields it does not know about on update, and can be told to
// fail the next requests.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	jobs     []map[string]any
	nextID   int
	calls    []string
	failures map[string]failure
	envelope bool
}

type failure struct {
	status int
	body   string
}

// NewServer starts a fake API seeded with the given jobs. The server is
// closed when the test ends.
func NewServer(t testing.TB, seed ...models.Job) *Server {
	t.Helper()
	s := &Server{nextID: 1, failures: make(map[string]failure)}
	for _, job := range seed {
		s.jobs = append(s.jobs, toMap(job))
		if n, err := strconv.Atoi(job.ID); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to hand to api.New
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// UseEnvelope makes GET /jobs answer {"data": [...]} instead of a raw array
func (s *Server) UseEnvelope(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelope = on
}

// FailNext makes the next request with the given method fail once
func (s *Server) FailNext(method string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = failure{status: status, body: body}
}

// Calls returns "METHOD /path" for every request received so far
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Count returns the number of requests received
func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// SetField changes a stored field directly, as another client would
func (s *Server) SetField(id, field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.jobs[i][field] = value
	}
}

// Job returns the stored representation of a job
func (s *Server) Job(id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.jobs[i], true
	}
	return nil, false
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, r.Method+" "+r.URL.Path)

	if f, ok := s.failures[r.Method]; ok {
		delete(s.failures, r.Method)
		http.Error(w, f.body, f.status)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/jobs")
	if rest == r.URL.Path {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(rest, "/")

	switch {
	case id == "" && r.Method == http.MethodGet:
		list := append([]map[string]any{}, s.jobs...)
		if s.envelope {
			writeJSON(w, http.StatusOK, map[string]any{"data": list})
			return
		}
		writeJSON(w, http.StatusOK, list)
	case id == "" && r.Method == http.MethodPost:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		body["id"] = strconv.Itoa(s.nextID)
		s.nextID++
		s.jobs = append(s.jobs, body)
		writeJSON(w, http.StatusCreated, body)
	case id != "" && r.Method == http.MethodPut:
		i := s.indexOf(id)
		if i < 0 {
			http.Error(w, "job not found", http.StatusNotFound)
			return
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		for k, v := range body {
			if k != "id" {
				s.jobs[i][k] = v
			}
		}
		writeJSON(w, http.StatusOK, s.jobs[i])
	case id != "" && r.Method == http.MethodDelete:
		i := s.indexOf(id)
		if i < 0 {
			http.Error(w, "job not found", http.StatusNotFound)
			return
		}
		s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) indexOf(id string) int {
	for i, job := range s.jobs {
		if job["id"] == id {
			return i
		}
	}
	return -1
}

func toMap(job models.Job) map[string]any {
	data, _ := json.Marshal(job)
	var m map[string]any
	_ = json.Unmarshal(data, &m)
	return m
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
