package telemetry

import "sync"

// TestAPI records reports in memory, so that tests can assert that
// components report what they should.
type TestAPI struct {
	mutex    sync.Mutex
	broken   []string
	warnings []string
	counts   map[string]int64
}

func NewTestAPI() *TestAPI {
	return &TestAPI{counts: map[string]int64{}}
}

func (t *TestAPI) ReportBroken(id string, params ...any) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.broken = append(t.broken, id)
}

func (t *TestAPI) ReportWarning(id string, params ...any) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.warnings = append(t.warnings, id)
}

func (t *TestAPI) ReportDebug(string, ...any) {}

func (t *TestAPI) ReportCount(id string, count int64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.counts[id] = count
}

// Broken returns the ids passed to ReportBroken in order.
func (t *TestAPI) Broken() []string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return append([]string(nil), t.broken...)
}

// Warnings returns the ids passed to ReportWarning in order.
func (t *TestAPI) Warnings() []string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return append([]string(nil), t.warnings...)
}

// Count returns the last count reported for an id.
func (t *TestAPI) Count(id string) (int64, bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	n, ok := t.counts[id]
	return n, ok
}
