package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
	"wellcheck/internal/cache"
	"wellcheck/internal/catalog"
	"wellcheck/internal/model"
	"wellcheck/internal/service"
	"wellcheck/internal/transport/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memSessions struct {
	mu   sync.Mutex
	data map[string]model.Session
}

func (m *memSessions) Set(ctx context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	cp.Answers = s.Answers.Clone()
	cp.Touched = append([]model.AnswerKey(nil), s.Touched...)
	m.data[s.ID] = cp
	return nil
}

func (m *memSessions) Get(ctx context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	s.Answers = s.Answers.Clone()
	return &s, nil
}

func (m *memSessions) Update(ctx context.Context, id string, fn func(*model.Session) error) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	s.Answers = s.Answers.Clone()
	s.Touched = append([]model.AnswerKey(nil), s.Touched...)
	if err := fn(&s); err != nil {
		return nil, err
	}
	m.data[id] = s
	return &s, nil
}

func (m *memSessions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

type memResults struct {
	mu   sync.Mutex
	docs []*model.Assessment
}

func (m *memResults) Save(ctx context.Context, a *model.Assessment) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = fmt.Sprintf("r%d", len(m.docs)+1)
	m.docs = append(m.docs, a)
	return a.ID, nil
}

func (m *memResults) GetBySessionID(ctx context.Context, sessionID string) (*model.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.docs {
		if a.SessionID == sessionID {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memResults) ListRecent(ctx context.Context, limit int64) ([]*model.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if int64(len(m.docs)) < limit {
		limit = int64(len(m.docs))
	}
	return m.docs[:limit], nil
}

type memBoard struct {
	mu     sync.Mutex
	scores map[string]float64
}

func (m *memBoard) Record(ctx context.Context, sessionID string, overall float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[sessionID] = overall
	return nil
}

func (m *memBoard) Top(ctx context.Context, limit int) ([]cache.ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []cache.ScoreEntry
	for id, s := range m.scores {
		out = append(out, cache.ScoreEntry{SessionID: id, Score: s, Rank: len(out) + 1})
	}
	return out, nil
}

func (m *memBoard) Stats(ctx context.Context) (*model.TierStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &model.TierStats{Total: int64(len(m.scores))}, nil
}

type testServer struct {
	*httptest.Server
	auth *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	auth := service.NewAuthService("admin", "secret", "router-test-key")
	board := &memBoard{scores: make(map[string]float64)}
	results := &memResults{}

	assessments := service.NewAssessmentService(catalog.Default(), &memSessions{data: make(map[string]model.Session)}, results, board, auth, time.Hour, logger)
	hub := ws.NewHub(logger)
	assessments.SetBroadcaster(hub)

	srv := httptest.NewServer(NewRouter(&Container{
		AuthService:       auth,
		AssessmentService: assessments,
		ReportService:     service.NewReportService(results, board),
		WSHub:             hub,
		Logger:            logger,
	}))
	t.Cleanup(func() {
		srv.Close()
		hub.Stop()
	})
	return &testServer{Server: srv, auth: auth}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func (s *testServer) start(t *testing.T) model.StartResponse {
	t.Helper()
	resp, body := s.do(t, http.MethodPost, "/v1/assessments", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var start model.StartResponse
	require.NoError(t, json.Unmarshal(body, &start))
	return start
}

func TestHealthAndDocs(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, body = s.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Wellcheck API")
}

func TestCatalogEndpoint(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodGet, "/v1/catalog", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var c model.Catalog
	require.NoError(t, json.Unmarshal(body, &c))
	assert.Len(t, c.Categories, 8)
	assert.Equal(t, "body", c.Categories[0].ID)
}

func TestAssessmentFlow(t *testing.T) {
	s := newTestServer(t)
	start := s.start(t)
	base := "/v1/assessments/" + start.SessionID

	assert.Len(t, start.Answers, 32)

	// answer the whole body category with 10s, leave the rest at 5
	for i := 0; i < 4; i++ {
		resp, body := s.do(t, http.MethodPut, fmt.Sprintf("%s/answers/body/%d", base, i), start.Token, map[string]int{"value": 10})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	}

	resp, body := s.do(t, http.MethodGet, base+"/progress", start.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var progress model.Progress
	require.NoError(t, json.Unmarshal(body, &progress))
	assert.Equal(t, 1, progress.CompletedCategories)

	resp, _ = s.do(t, http.MethodGet, base+"/report", start.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = s.do(t, http.MethodPost, base+"/submit", start.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var a model.Assessment
	require.NoError(t, json.Unmarshal(body, &a))
	require.Len(t, a.Report.Categories, 8)
	assert.Equal(t, 10.0, a.Report.Categories[0].Score)
	assert.Equal(t, model.TierHigh, a.Report.Categories[0].Classification.Tier)
	assert.Equal(t, 5.0, a.Report.Categories[1].Score)
	assert.Equal(t, 45.0/8, a.Report.Overall.Score)
	assert.Equal(t, model.TierMedium, a.Report.Overall.Classification.Tier)

	resp, _ = s.do(t, http.MethodPost, base+"/submit", start.Token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, base+"/report", start.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stored model.Assessment
	require.NoError(t, json.Unmarshal(body, &stored))
	assert.Equal(t, a.Report, stored.Report)
}

func TestDiscardAssessment(t *testing.T) {
	s := newTestServer(t)
	start := s.start(t)
	other := s.start(t)
	base := "/v1/assessments/" + start.SessionID

	resp, _ := s.do(t, http.MethodDelete, base, other.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, http.MethodDelete, base, start.Token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, base, start.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, base+"/submit", start.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodDelete, base, start.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecordAnswerErrors(t *testing.T) {
	s := newTestServer(t)
	start := s.start(t)
	base := "/v1/assessments/" + start.SessionID

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
	}{
		{"value too high", base + "/answers/body/0", map[string]int{"value": 11}, http.StatusBadRequest},
		{"value too low", base + "/answers/body/0", map[string]int{"value": 0}, http.StatusBadRequest},
		{"missing value", base + "/answers/body/0", map[string]string{}, http.StatusBadRequest},
		{"unknown category", base + "/answers/sleep/0", map[string]int{"value": 3}, http.StatusBadRequest},
		{"index past end", base + "/answers/body/4", map[string]int{"value": 3}, http.StatusBadRequest},
		{"non-numeric index", base + "/answers/body/x", map[string]int{"value": 3}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := s.do(t, http.MethodPut, tt.path, start.Token, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, string(body))
		})
	}
}

func TestRespondentAuth(t *testing.T) {
	s := newTestServer(t)
	first := s.start(t)
	second := s.start(t)

	resp, _ := s.do(t, http.MethodGet, "/v1/assessments/"+first.SessionID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/v1/assessments/"+first.SessionID, second.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.do(t, http.MethodGet, "/v1/assessments/"+first.SessionID, first.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session model.Session
	require.NoError(t, json.Unmarshal(body, &session))
	assert.Equal(t, first.SessionID, session.ID)
	assert.Equal(t, model.SessionActive, session.Status)
}

func TestHostReports(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, http.MethodGet, "/v1/reports", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := s.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "admin", "password": "secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login model.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))

	start := s.start(t)
	resp, _ = s.do(t, http.MethodPost, "/v1/assessments/"+start.SessionID+"/submit", start.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// respondent tokens cannot read host reports
	resp, _ = s.do(t, http.MethodGet, "/v1/reports", start.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/v1/reports?limit=5", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Assessments []model.Assessment `json:"assessments"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Assessments, 1)
	assert.Equal(t, start.SessionID, list.Assessments[0].SessionID)

	resp, body = s.do(t, http.MethodGet, "/v1/reports/stats", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats model.TierStats
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, int64(1), stats.Total)

	resp, _ = s.do(t, http.MethodGet, "/v1/reports/top", login.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/v1/reports/"+start.SessionID, login.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/v1/reports/unknown", login.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, http.MethodOptions, "/v1/assessments", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
