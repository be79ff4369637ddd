package backend

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/history"
)

// maxResponse bounds a single response line. A full history listing with
// previews fits comfortably.
const maxResponse = 8 << 20

// Client talks to a running daemon over its Unix socket. Each call opens a
// new connection, sends one command, reads one response line and closes.
type Client struct {
	socketPath string
	timeout    time.Duration
	dialer     net.Dialer
}

var _ Backend = (*Client)(nil)

// NewClient creates a client for the daemon at socketPath. timeout bounds
// each request when the context carries no earlier deadline; zero means no
// bound beyond the context.
func NewClient(socketPath string, timeout time.Duration) *Client {
	return &Client{socketPath: socketPath, timeout: timeout}
}

// SocketPath returns the daemon socket this client connects to.
func (c *Client) SocketPath() string { return c.socketPath }

// List implements Backend.
func (c *Client) List(ctx context.Context) ([]history.Item, error) {
	var items []history.Item
	if err := c.call(ctx, CmdList, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Select implements Backend.
func (c *Client) Select(ctx context.Context, id string) error {
	return c.call(ctx, CmdSelect+" "+id, nil)
}

// Preview implements Backend.
func (c *Client) Preview(ctx context.Context) (*history.Detail, error) {
	var d *history.Detail
	if err := c.call(ctx, CmdPreview, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// Paste implements Backend.
func (c *Client) Paste(ctx context.Context, id string) error {
	return c.call(ctx, CmdPaste+" "+id, nil)
}

// Copy implements Backend.
func (c *Client) Copy(ctx context.Context, id string) error {
	return c.call(ctx, CmdCopy+" "+id, nil)
}

// HideWindow implements Backend.
func (c *Client) HideWindow(ctx context.Context) error {
	return c.call(ctx, CmdHide, nil)
}

// call sends cmd and decodes the response into out. A nil out discards a
// successful payload.
func (c *Client) call(ctx context.Context, cmd string, out any) error {
	if strings.ContainsAny(cmd, "\r\n") {
		return fmt.Errorf("backend: command contains a line break")
	}
	line, err := c.roundTrip(ctx, cmd)
	if err != nil {
		return err
	}

	if bytes.HasPrefix(bytes.TrimSpace(line), []byte("{")) {
		var e errorResponse
		if err := json.Unmarshal(line, &e); err == nil && e.Error != "" {
			return &RemoteError{Command: commandName(cmd), Message: e.Error}
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(line, out); err != nil {
		return fmt.Errorf("backend: decode %s response: %w", commandName(cmd), err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, cmd string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	conn, err := c.dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("backend: connect to daemon: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { conn.SetDeadline(time.Now()) })
	defer stop()

	if _, err := fmt.Fprintf(conn, "%s\n", cmd); err != nil {
		return nil, fmt.Errorf("backend: send %s: %w", commandName(cmd), err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxResponse)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("backend: %s: %w", commandName(cmd), ctxErr)
			}
			return nil, fmt.Errorf("backend: read response: %w", err)
		}
		return nil, errors.New("backend: empty response from daemon")
	}
	return scanner.Bytes(), nil
}

// RemoteError is a failure reported by the daemon.
type RemoteError struct {
	Command string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("backend: %s: %s", e.Command, e.Message)
}

func commandName(cmd string) string {
	name, _, _ := strings.Cut(cmd, " ")
	return name
}
