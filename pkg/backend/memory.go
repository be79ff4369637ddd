package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/history"
)

// Memory is an in-process Backend over a fixed history. It backs --use-mocks
// and --serve-mock and is the fixture for UI tests.
type Memory struct {
	mu       sync.Mutex
	items    []history.Item
	details  map[string]history.Detail
	selected string
	hidden   int

	writeClipboard func(string) error
	now            func() time.Time
}

var _ Backend = (*Memory)(nil)

// MemoryOption configures a Memory backend.
type MemoryOption func(*Memory)

// WithClipboardWriter replaces the system clipboard writer.
func WithClipboardWriter(fn func(string) error) MemoryOption {
	return func(m *Memory) { m.writeClipboard = fn }
}

// WithClock sets the time source used when an item is reused.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// WithDetails attaches full preview records, keyed by item ID.
func WithDetails(details ...history.Detail) MemoryOption {
	return func(m *Memory) {
		for _, d := range details {
			m.details[d.ID] = d
		}
	}
}

// NewMemory returns a backend serving items, newest first.
func NewMemory(items []history.Item, opts ...MemoryOption) *Memory {
	m := &Memory{
		items:          append([]history.Item(nil), items...),
		details:        make(map[string]history.Detail),
		writeClipboard: clipboard.WriteAll,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// List implements Backend.
func (m *Memory) List(ctx context.Context) ([]history.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]history.Item(nil), m.items...), nil
}

// Select implements Backend.
func (m *Memory) Select(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(id) < 0 {
		return fmt.Errorf("select %s: %w", id, ErrNotFound)
	}
	m.selected = id
	return nil
}

// Preview implements Backend. It returns nil until an item is selected.
func (m *Memory) Preview(ctx context.Context) (*history.Detail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(m.selected)
	if i < 0 {
		return nil, nil
	}
	d, ok := m.details[m.selected]
	if !ok {
		d = history.Detail{Item: m.items[i]}
	}
	d.Item = m.items[i]
	return &d, nil
}

// Paste implements Backend. Without a window system to type into, the item
// is placed on the clipboard and the window is hidden.
func (m *Memory) Paste(ctx context.Context, id string) error {
	if err := m.Copy(ctx, id); err != nil {
		return err
	}
	return m.HideWindow(ctx)
}

// Copy implements Backend. The copied item moves to the top of the history.
func (m *Memory) Copy(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("copy %s: %w", id, ErrNotFound)
	}
	it := m.items[i]
	if err := m.writeClipboard(it.PlainText); err != nil {
		return fmt.Errorf("copy %s: %w", id, err)
	}

	it.UpdatedAt = m.now().UTC().Format(time.RFC3339)
	copy(m.items[1:i+1], m.items[:i])
	m.items[0] = it
	return nil
}

// HideWindow implements Backend.
func (m *Memory) HideWindow(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.hidden++
	m.mu.Unlock()
	return nil
}

// HideCount reports how many times HideWindow was called.
func (m *Memory) HideCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hidden
}

func (m *Memory) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, it := range m.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
