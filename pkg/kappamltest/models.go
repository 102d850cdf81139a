package kappamltest

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// model is the server-side state of one hosted model.
type model struct {
	id       string
	name     string
	mlType   string
	statuses []string

	observations int
	sum          float64
	numeric      int
	labels       map[string]int
	checkedAt    []time.Time
}

// status consumes the next scripted status; the last one repeats.
func (m *model) status() string {
	st := m.statuses[0]
	if len(m.statuses) > 1 {
		m.statuses = m.statuses[1:]
	}
	m.checkedAt = append(m.checkedAt, time.Now())
	return st
}

// peek returns the current status without consuming it.
func (m *model) peek() string {
	return m.statuses[0]
}

func (m *model) learn(target any) {
	m.observations++
	switch v := target.(type) {
	case float64:
		m.sum += v
		m.numeric++
	case string:
		if m.labels == nil {
			m.labels = make(map[string]int)
		}
		m.labels[v]++
	}
}

// predict returns the mean of numeric targets, or the most frequent label.
func (m *model) predict() any {
	if len(m.labels) > 0 {
		labels := make([]string, 0, len(m.labels))
		for l := range m.labels {
			labels = append(labels, l)
		}
		sort.Strings(labels)
		best := labels[0]
		for _, l := range labels[1:] {
			if m.labels[l] > m.labels[best] {
				best = l
			}
		}
		return best
	}
	if m.numeric == 0 {
		return 0.0
	}
	return m.sum / float64(m.numeric)
}

func (m *model) metrics() map[string]any {
	out := map[string]any{
		"model_id":     m.id,
		"observations": m.observations,
	}
	if m.numeric > 0 {
		out["target_mean"] = m.sum / float64(m.numeric)
	}
	if len(m.labels) > 0 {
		out["classes"] = len(m.labels)
	}
	return out
}

func (m *model) describe() map[string]any {
	return map[string]any{
		"id":      m.id,
		"name":    m.name,
		"ml_type": m.mlType,
		"status":  m.peek(),
	}
}

// AddModel registers a model directly, bypassing the create endpoint, and
// returns its id. With no statuses the model is Deployed.
func (s *Server) AddModel(name, mlType string, statuses ...string) string {
	if len(statuses) == 0 {
		statuses = []string{"Deployed"}
	}
	m := &model{
		id:       uuid.NewString(),
		name:     name,
		mlType:   mlType,
		statuses: append([]string(nil), statuses...),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[m.id] = m
	return m.id
}

// StatusChecks returns how many status reads a model has served.
func (s *Server) StatusChecks(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.models[id]; ok {
		return len(m.checkedAt)
	}
	return 0
}

// StatusCheckTimes returns when each status read of a model was served.
func (s *Server) StatusCheckTimes(id string) []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.models[id]; ok {
		return append([]time.Time(nil), m.checkedAt...)
	}
	return nil
}

// Observations returns how many learn calls a model has received.
func (s *Server) Observations(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.models[id]; ok {
		return m.observations
	}
	return 0
}

// Exists reports whether the model is present.
func (s *Server) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.models[id]
	return ok
}

type createRequest struct {
	Name   string `json:"name"`
	MLType string `json:"ml_type"`
}

type learnRequest struct {
	Features map[string]any `json:"features"`
	Target   any            `json:"target"`
}

type predictRequest struct {
	Features map[string]any `json:"features"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.MLType == "" {
		writeError(w, http.StatusUnprocessableEntity, "name and ml_type are required")
		return
	}

	s.mu.Lock()
	statuses := append([]string(nil), s.statuses...)
	s.mu.Unlock()

	id := s.AddModel(req.Name, req.MLType, statuses...)
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"name":    req.Name,
		"ml_type": req.MLType,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.withModel(w, r, func(m *model) {
		body := m.describe()
		body["status"] = m.status()
		writeJSON(w, http.StatusOK, body)
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.withModel(w, r, func(m *model) {
		delete(s.models, m.id)
		writeJSON(w, http.StatusOK, map[string]any{"message": "Model deleted"})
	})
}

func (s *Server) handleLearn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Features == nil {
		writeError(w, http.StatusUnprocessableEntity, "features are required")
		return
	}
	s.withModel(w, r, func(m *model) {
		m.learn(req.Target)
		writeJSON(w, http.StatusOK, map[string]any{
			"message":      "Learning successful",
			"observations": m.observations,
		})
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.withModel(w, r, func(m *model) {
		writeJSON(w, http.StatusOK, map[string]any{
			"model_id":   m.id,
			"prediction": m.predict(),
		})
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.withModel(w, r, func(m *model) {
		writeJSON(w, http.StatusOK, m.metrics())
	})
}

// withModel runs fn with the model named by the {id} parameter while
// holding the server lock, answering 404 when it does not exist.
func (s *Server) withModel(w http.ResponseWriter, r *http.Request, fn func(*model)) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.models[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Model not found")
		return
	}
	fn(m)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{"detail": detail})
}
