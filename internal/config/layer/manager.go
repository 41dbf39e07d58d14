package layer

import (
	"slices"
	"sync"
)

// Manager keeps layers ordered by priority and caches their merge. It is
// safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer
	merged map[string]any // nil until the next Merge
}

// NewManager returns a Manager with no layers.
func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) indexOf(name string) int {
	return slices.IndexFunc(m.layers, func(l *Layer) bool { return l.Name == name })
}

// SetLayer adds l, replacing a layer of the same name.
func (m *Manager) SetLayer(l *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(l.Name); i >= 0 {
		m.layers = slices.Delete(m.layers, i, i+1)
	}
	// After every layer of equal or lower priority.
	at := len(m.layers)
	for i, e := range m.layers {
		if e.Priority > l.Priority {
			at = i
			break
		}
	}
	m.layers = slices.Insert(m.layers, at, l)
	m.merged = nil
}

// RemoveLayer drops the named layer and reports whether it existed.
func (m *Manager) RemoveLayer(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(name)
	if i < 0 {
		return false
	}
	m.layers = slices.Delete(m.layers, i, i+1)
	m.merged = nil
	return true
}

// Layer returns the named layer, or nil.
func (m *Manager) Layer(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(name); i >= 0 {
		return m.layers[i]
	}
	return nil
}

// Layers returns the layers, lowest priority first.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.layers)
}

// Merge returns a fresh copy of all layers merged in priority order.
func (m *Manager) Merge() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.merged == nil {
		m.merged = map[string]any{}
		for _, l := range m.layers {
			DeepMerge(m.merged, l.Data)
		}
	}
	return copyTree(m.merged)
}

// Which names the highest priority layer that sets path, or "".
func (m *Manager) Which(path string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range slices.Backward(m.layers) {
		if _, ok := GetByPath(l.Data, path); ok {
			return l.Name
		}
	}
	return ""
}
