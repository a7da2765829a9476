package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"wellcheck/internal/cache"
	"wellcheck/internal/model"
	"wellcheck/internal/scoring"
)

// memSessions round-trips through JSON like the Redis cache does
type memSessions struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMemSessions() *memSessions {
	return &memSessions{data: make(map[string][]byte)}
}

func (m *memSessions) Set(ctx context.Context, s *model.Session) error {
	if m.err != nil {
		return m.err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.ID] = b
	return nil
}

func (m *memSessions) Get(ctx context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	var s model.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Update holds the lock across read, fn and write, which is the guarantee
// the Redis transaction gives
func (m *memSessions) Update(ctx context.Context, id string, fn func(*model.Session) error) (*model.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	var s model.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if err := fn(&s); err != nil {
		return nil, err
	}
	out, err := json.Marshal(&s)
	if err != nil {
		return nil, err
	}
	m.data[id] = out
	return &s, nil
}

func (m *memSessions) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

type memResults struct {
	mu    sync.Mutex
	saved []*model.Assessment
	err   error
}

func (m *memResults) Save(ctx context.Context, a *model.Assessment) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = a.SessionID
	m.saved = append(m.saved, a)
	return a.ID, nil
}

func (m *memResults) GetBySessionID(ctx context.Context, sessionID string) (*model.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.saved {
		if a.SessionID == sessionID {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memResults) ListRecent(ctx context.Context, limit int64) ([]*model.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Assessment, 0, len(m.saved))
	for i := len(m.saved) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, m.saved[i])
	}
	return out, nil
}

type memBoard struct {
	mu        sync.Mutex
	scores    map[string]float64
	err       error
	lastLimit int
}

func newMemBoard() *memBoard {
	return &memBoard{scores: make(map[string]float64)}
}

func (m *memBoard) Record(ctx context.Context, sessionID string, overall float64) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[sessionID] = overall
	return nil
}

func (m *memBoard) Top(ctx context.Context, limit int) ([]cache.ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	entries := make([]cache.ScoreEntry, 0, len(m.scores))
	for id, s := range m.scores {
		entries = append(entries, cache.ScoreEntry{SessionID: id, Score: s})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (m *memBoard) Stats(ctx context.Context) (*model.TierStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	st := &model.TierStats{}
	for _, s := range m.scores {
		st.Total++
		switch scoring.TierOf(s) {
		case model.TierLow:
			st.Low++
		case model.TierMedium:
			st.Medium++
		case model.TierHigh:
			st.High++
		}
	}
	return st, nil
}

type sentEvent struct {
	SessionID string
	Type      string
	Payload   interface{}
	ToHosts   bool
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []sentEvent
}

func (b *recordingBroadcaster) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, sentEvent{SessionID: sessionID, Type: msgType, Payload: payload})
}

func (b *recordingBroadcaster) BroadcastToHosts(msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, sentEvent{Type: msgType, Payload: payload, ToHosts: true})
}

func (b *recordingBroadcaster) ofType(msgType string) []sentEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []sentEvent
	for _, e := range b.events {
		if e.Type == msgType {
			out = append(out, e)
		}
	}
	return out
}

var errStorage = errors.New("storage unavailable")
