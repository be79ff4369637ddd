// Package backend is the request/response boundary between the UI and the
// clipboard daemon that owns history storage, pasting and window control.
//
// The wire protocol is line based over a Unix domain socket:
//
//	LIST            -> [item, ...]
//	SELECT {id}     -> {"ok": true}
//	PREVIEW         -> detail | null
//	PASTE {id}      -> {"ok": true}
//	COPY {id}       -> {"ok": true}
//	HIDE            -> {"ok": true}
//
// Every response is a single JSON line. Failures are {"error": "..."}.
package backend

import (
	"context"
	"errors"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/history"
)

// ErrNotFound is returned when an item ID is unknown to the backend.
var ErrNotFound = errors.New("item not found")

// Backend is everything the UI asks of the clipboard daemon.
type Backend interface {
	// List returns the history, newest first.
	List(ctx context.Context) ([]history.Item, error)
	// Select tells the daemon which item the user is looking at so it can
	// publish it as the current preview.
	Select(ctx context.Context, id string) error
	// Preview returns the current preview record, or nil when there is none.
	Preview(ctx context.Context) (*history.Detail, error)
	// Paste pastes the item into the previously focused application.
	Paste(ctx context.Context, id string) error
	// Copy places the item on the system clipboard.
	Copy(ctx context.Context, id string) error
	// HideWindow dismisses the picker.
	HideWindow(ctx context.Context) error
}

// Protocol command names.
const (
	CmdList    = "LIST"
	CmdSelect  = "SELECT"
	CmdPreview = "PREVIEW"
	CmdPaste   = "PASTE"
	CmdCopy    = "COPY"
	CmdHide    = "HIDE"
)

type okResponse struct {
	OK bool `json:"ok"`
}

type errorResponse struct {
	Error string `json:"error"`
}
