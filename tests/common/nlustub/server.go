//go:build unit || e2e

package nlustub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Server is a scripted stand-in for the language service.
// Classify answers are keyed by the exact request text.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	answers   map[string]string
	rejected  map[string]bool
	calls     map[string]int
	languages []string
}

func New(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		answers:  map[string]string{},
		rejected: map[string]bool{},
		calls:    map[string]int{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/classify", s.classify)
	mux.HandleFunc("/v1/render", s.render)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// On scripts the raw classification JSON returned for text.
func (s *Server) On(text, classification string) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[text] = classification
	return s
}

// Reject makes the service answer 422 for text.
func (s *Server) Reject(text string) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejected[text] = true
	return s
}

func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// Languages lists the language of every render call in order.
func (s *Server) Languages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.languages...)
}

func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.calls[r.URL.Path]++
	answer, ok := s.answers[req.Text]
	rejected := s.rejected[req.Text]
	s.mu.Unlock()

	switch {
	case rejected:
		http.Error(w, "no intent recognised", http.StatusUnprocessableEntity)
	case !ok:
		http.Error(w, fmt.Sprintf("unscripted text %q", req.Text), http.StatusInternalServerError)
	default:
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(answer))
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
		Outcome  struct {
			State string `json:"state"`
		} `json:"outcome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.calls[r.URL.Path]++
	s.languages = append(s.languages, req.Language)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"text": fmt.Sprintf("[%s] turn %s", req.Language, req.Outcome.State),
	})
}
