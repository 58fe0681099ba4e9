package testutil

import (
	"context"
	"errors"
	"medreminder/internal/models"
	notifyIfaces "medreminder/internal/notify/interfaces"
	"medreminder/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns the number of recorded entries at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu            sync.Mutex
	Requests      int
	CacheHits     int
	CacheMisses   int
	CachePurges   int
	Persisted     map[string]int
	Medications   int
	PendingTimers int
	Rebuilds      int
	Firings       int
	Notifications map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncCachePurges() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CachePurges++
}
func (m *MockMetrics) ObservePersistenceDuration(key string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Persisted == nil {
		m.Persisted = make(map[string]int)
	}
	m.Persisted[key]++
}
func (m *MockMetrics) SetMedicationsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Medications = count
}
func (m *MockMetrics) SetPendingTimers(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PendingTimers = count
}
func (m *MockMetrics) IncRebuilds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rebuilds++
}
func (m *MockMetrics) IncFirings() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Firings++
}
func (m *MockMetrics) IncNotifications(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Notifications == nil {
		m.Notifications = make(map[string]int)
	}
	m.Notifications[outcome]++
}

// MockCompressor implements the storage compressor with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Extension() string { return "" }
func (m *MockCompressor) Close()            {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu     sync.Mutex
	Data   map[string][]byte
	Purges int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
	m.Purges++
}

// MockSink implements the notification sink and records every delivered
// notification. Permission defaults to granted.
type MockSink struct {
	mu         sync.Mutex
	Permission models.Permission
	Delivered  []models.Notification
	Requests   int
	Err        error
}

func (m *MockSink) RequestPermission() models.Permission {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
	if m.Permission == "" {
		return models.PermissionGranted
	}
	return m.Permission
}

func (m *MockSink) Notify(_ context.Context, n models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Permission != "" && m.Permission != models.PermissionGranted {
		return notifyIfaces.ErrNotPermitted
	}
	if m.Err != nil {
		return m.Err
	}
	m.Delivered = append(m.Delivered, n)
	return nil
}

func (m *MockSink) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Delivered)
}

// MockBackend implements the notification backend.
type MockBackend struct {
	mu        sync.Mutex
	Delivered []models.Notification
	Err       error
}

func (m *MockBackend) Deliver(_ context.Context, n models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Delivered = append(m.Delivered, n)
	return nil
}

func (m *MockBackend) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Delivered)
}

// MockPlayer implements the sound player.
type MockPlayer struct {
	mu    sync.Mutex
	Plays int
	Fail  bool
}

var ErrPlayback = errors.New("playback failed")

func (m *MockPlayer) Play(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Plays++
	if m.Fail {
		return ErrPlayback
	}
	return nil
}

// MockScheduler implements the reminder scheduler and records rebuilds.
type MockScheduler struct {
	mu       sync.Mutex
	Rebuilds [][]models.Medication
	Stopped  bool
}

func (m *MockScheduler) Rebuild(medications []models.Medication) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rebuilds = append(m.Rebuilds, append([]models.Medication(nil), medications...))
}

func (m *MockScheduler) Pending() map[string]time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]time.Time)
	if len(m.Rebuilds) == 0 {
		return out
	}
	for _, med := range m.Rebuilds[len(m.Rebuilds)-1] {
		out[med.ID] = time.Time{}
	}
	return out
}

func (m *MockScheduler) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stopped = true
}

// Last returns the list passed to the most recent rebuild.
func (m *MockScheduler) Last() []models.Medication {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Rebuilds) == 0 {
		return nil
	}
	return m.Rebuilds[len(m.Rebuilds)-1]
}

// MockArchive implements the history archive in memory.
type MockArchive struct {
	mu       sync.Mutex
	Pending  []models.HistoryEntry
	Flushed  []models.HistoryEntry
	Flushes  int
	FlushErr error
}

func (m *MockArchive) Evict(entries []models.HistoryEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pending = append(m.Pending, entries...)
}

func (m *MockArchive) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Flushes++
	if m.FlushErr != nil {
		return m.FlushErr
	}
	m.Flushed = append(m.Flushed, m.Pending...)
	m.Pending = nil
	return nil
}

func (m *MockArchive) Months() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, e := range append(append([]models.HistoryEntry(nil), m.Flushed...), m.Pending...) {
		month := e.Time.UTC().Format("2006-01")
		if !seen[month] {
			seen[month] = true
			out = append(out, month)
		}
	}
	return out, nil
}

func (m *MockArchive) Read(month string) ([]models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.HistoryEntry
	for _, e := range append(append([]models.HistoryEntry(nil), m.Flushed...), m.Pending...) {
		if e.Time.UTC().Format("2006-01") == month {
			out = append(out, e)
		}
	}
	return out, nil
}

// FailingStore implements the store and fails every Save.
type FailingStore struct {
	Err error
}

func (f *FailingStore) Load(_ string, _ any) bool { return false }
func (f *FailingStore) Save(_ string, _ any) error {
	if f.Err != nil {
		return f.Err
	}
	return errors.New("save failed")
}
