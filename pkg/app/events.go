// Package app provides the root bubbletea model of the clipboard picker. It
// owns the history list, the search box, the preview poller, the copy HUD
// and the brand-mark escalation engine, and routes every message between
// them and the backend.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/history"
)

// ItemsLoadedEvent carries a history listing. Cached listings come from
// the on-disk snapshot and only fill the list until the backend answers.
type ItemsLoadedEvent struct {
	Items  []history.Item
	Err    error
	Cached bool
}

// PreviewEvent carries one answer of the preview poller. A nil Detail with
// no error means the backend has nothing to show.
type PreviewEvent struct {
	Detail *history.Detail
	Err    error
}

// SelectDoneEvent reports that the backend acknowledged a selection.
type SelectDoneEvent struct {
	ID  string
	Err error
}

// CopyDoneEvent reports the outcome of a copy request.
type CopyDoneEvent struct {
	ID  string
	Err error
}

// PasteDoneEvent reports the outcome of a paste request.
type PasteDoneEvent struct {
	ID  string
	Err error
}

// HiddenEvent reports the outcome of a hide-window request.
type HiddenEvent struct {
	Err error
}

// HUDExpiredEvent ends the copy HUD shown by the copy with the same Seq.
type HUDExpiredEvent struct {
	Seq uint64
}

// RefreshTickEvent triggers a periodic reload of the history list.
type RefreshTickEvent struct {
	Time time.Time
}

// PreviewTickEvent triggers one poll of the current preview.
type PreviewTickEvent struct {
	Time time.Time
}
