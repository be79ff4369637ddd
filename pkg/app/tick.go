package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/cache"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/history"
)

// historyCacheKey names the history snapshot in the cache.
const historyCacheKey = "history/list"

// RefreshTickCmd sends a RefreshTickEvent after d.
func RefreshTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return RefreshTickEvent{Time: t}
	})
}

// PreviewTickCmd sends a PreviewTickEvent after d.
func PreviewTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return PreviewTickEvent{Time: t}
	})
}

// HUDExpireCmd sends a HUDExpiredEvent for seq after d.
func HUDExpireCmd(d time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return HUDExpiredEvent{Seq: seq}
	})
}

// fetchListCmd loads the history in a goroutine.
func (m Model) fetchListCmd() tea.Cmd {
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		items, err := b.List(ctx)
		return ItemsLoadedEvent{Items: items, Err: err}
	}
}

// loadCachedCmd reads the last listing saved to disk.
func (m Model) loadCachedCmd() tea.Cmd {
	store := m.opts.Cache
	return func() tea.Msg {
		items, _, ok := cache.GetTyped[[]history.Item](store, historyCacheKey)
		if !ok {
			return nil
		}
		return ItemsLoadedEvent{Items: items, Cached: true}
	}
}

// saveCacheCmd writes items as the new snapshot.
func (m Model) saveCacheCmd(items []history.Item) tea.Cmd {
	store, log := m.opts.Cache, m.log
	return func() tea.Msg {
		if err := cache.PutTyped(store, historyCacheKey, items); err != nil {
			log.Debug("saving history snapshot failed", "err", err)
		}
		return nil
	}
}

// fetchPreviewCmd polls the current preview record.
func (m Model) fetchPreviewCmd() tea.Cmd {
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		d, err := b.Preview(ctx)
		return PreviewEvent{Detail: d, Err: err}
	}
}

func (m Model) selectCmd(id string) tea.Cmd {
	return m.request(func(ctx context.Context) tea.Msg {
		return SelectDoneEvent{ID: id, Err: m.backend.Select(ctx, id)}
	})
}

func (m Model) copyCmd(id string) tea.Cmd {
	return m.request(func(ctx context.Context) tea.Msg {
		return CopyDoneEvent{ID: id, Err: m.backend.Copy(ctx, id)}
	})
}

func (m Model) pasteCmd(id string) tea.Cmd {
	return m.request(func(ctx context.Context) tea.Msg {
		return PasteDoneEvent{ID: id, Err: m.backend.Paste(ctx, id)}
	})
}

func (m Model) hideCmd() tea.Cmd {
	return m.request(func(ctx context.Context) tea.Msg {
		return HiddenEvent{Err: m.backend.HideWindow(ctx)}
	})
}

// request wraps a backend call in a Cmd bound to the model's lifetime.
func (m Model) request(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg { return fn(ctx) }
}
