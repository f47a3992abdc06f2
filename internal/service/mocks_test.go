package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/noah-isme/nawa-notice-api/internal/models"
	appErrors "github.com/noah-isme/nawa-notice-api/pkg/errors"
)

type mockNoticeRepo struct {
	mu        sync.Mutex
	notices   []models.Notice
	listErr   error
	createErr error
	deleteErr error
	getErr    error
	refErr    error
	listCalls int
	filters   []models.NoticeFilter
	created   []*models.Notice
}

func (m *mockNoticeRepo) List(ctx context.Context, filter models.NoticeFilter) ([]models.Notice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.filters = append(m.filters, filter)
	if m.listErr != nil {
		return nil, m.listErr
	}
	allowed := map[models.Audience]bool{}
	for _, a := range filter.Audiences {
		allowed[a] = true
	}
	out := []models.Notice{}
	for _, n := range m.notices {
		if allowed[n.Audience] {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNoticeRepo) GetByID(ctx context.Context, id string) (*models.Notice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, n := range m.notices {
		if n.ID == id {
			found := n
			return &found, nil
		}
	}
	return nil, models.ErrRecordNotFound
}

func (m *mockNoticeRepo) AttachmentInUse(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.refErr != nil {
		return false, m.refErr
	}
	for _, n := range m.notices {
		for _, a := range n.Attachments {
			if a == name {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *mockNoticeRepo) Create(ctx context.Context, notice *models.Notice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if notice.ID == "" {
		notice.ID = "generated"
	}
	m.created = append(m.created, notice)
	m.notices = append(m.notices, *notice)
	return nil
}

func (m *mockNoticeRepo) Delete(ctx context.Context, id string) (*models.Notice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	for i, n := range m.notices {
		if n.ID == id {
			m.notices = append(m.notices[:i], m.notices[i+1:]...)
			return &n, nil
		}
	}
	return nil, models.ErrRecordNotFound
}

type mockAdminRepo struct {
	names    map[string]string
	failures map[string]error
	delay    time.Duration
	calls    sync.Map
	inFlight int32
	maxSeen  int32
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	n := atomic.AddInt32(&m.inFlight, 1)
	defer atomic.AddInt32(&m.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&m.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&m.maxSeen, seen, n) {
			break
		}
	}
	counter, _ := m.calls.LoadOrStore(id, new(int32))
	atomic.AddInt32(counter.(*int32), 1)

	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if err := m.failures[id]; err != nil {
		return nil, err
	}
	name, ok := m.names[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	return &models.Admin{ID: id, Name: name}, nil
}

func (m *mockAdminRepo) callsFor(id string) int32 {
	counter, ok := m.calls.Load(id)
	if !ok {
		return 0
	}
	return atomic.LoadInt32(counter.(*int32))
}

func (m *mockAdminRepo) totalCalls() int32 {
	var total int32
	m.calls.Range(func(_, v interface{}) bool {
		total += atomic.LoadInt32(v.(*int32))
		return true
	})
	return total
}

type mockFiles struct {
	saved   map[string]string
	deleted []string
	saveErr error
}

func newMockFiles() *mockFiles {
	return &mockFiles{saved: map[string]string{}}
}

func (m *mockFiles) SaveStream(filename string, r io.Reader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.saved[filename] = string(data)
	return filename, nil
}

func (m *mockFiles) Delete(filename string) error {
	m.deleted = append(m.deleted, filename)
	delete(m.saved, filename)
	return nil
}

// memoryCache mimics the Redis cache repository with JSON round trips.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	return nil
}

type stubLister struct {
	notices []models.EnrichedNotice
	err     error
	today   time.Time
	roles   []models.Role
}

func (s *stubLister) ListForRole(ctx context.Context, role models.Role) ([]models.EnrichedNotice, error) {
	s.roles = append(s.roles, role)
	if s.err != nil {
		return nil, s.err
	}
	return s.notices, nil
}

func (s *stubLister) Today() time.Time {
	return s.today
}

var errBoom = errors.New("boom")
