package backend

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"
)

// Server listens on a Unix domain socket and serves the line protocol from
// a Backend.
type Server struct {
	socketPath string
	backend    Backend
	log        *slog.Logger

	listener net.Listener
	wg       sync.WaitGroup
	done     chan struct{}
	stopOnce sync.Once
}

// NewServer creates a server that will listen on socketPath and answer
// requests from b.
func NewServer(socketPath string, b Backend, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		socketPath: socketPath,
		backend:    b,
		log:        log,
		done:       make(chan struct{}),
	}
}

// Start begins listening. The socket file is created with mode 0600; a
// stale socket at the path is removed first.
func (s *Server) Start() error {
	os.Remove(s.socketPath)

	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("backend: listen on %s: %w", s.socketPath, err)
	}
	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		ln.Close()
		return fmt.Errorf("backend: chmod socket: %w", err)
	}

	s.listener = ln
	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Stop closes the listener, waits for in-flight requests and removes the
// socket file. It is safe to call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}
		s.wg.Wait()
		os.Remove(s.socketPath)
	})
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				s.log.Debug("accept failed", "err", err)
				continue
			}
		}

		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// handleConn reads one request line, dispatches it and writes one response
// line.
func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		return
	}
	line := strings.TrimSpace(scanner.Text())
	if line == "" {
		return
	}

	cmd, args := parseCommand(line)
	result, err := s.dispatch(context.Background(), cmd, args)
	if err != nil {
		s.log.Debug("request failed", "cmd", cmd, "err", err)
		result = errorResponse{Error: err.Error()}
	}

	data, err := json.Marshal(result)
	if err != nil {
		data, _ = json.Marshal(errorResponse{Error: err.Error()})
	}
	fmt.Fprintf(conn, "%s\n", data)
}

func (s *Server) dispatch(ctx context.Context, cmd string, args []string) (any, error) {
	arg := func() (string, error) {
		if len(args) == 0 {
			return "", fmt.Errorf("%s requires an item id", cmd)
		}
		return args[0], nil
	}

	switch cmd {
	case CmdList:
		return s.backend.List(ctx)
	case CmdPreview:
		return s.backend.Preview(ctx)
	case CmdHide:
		return okResponse{OK: true}, s.backend.HideWindow(ctx)
	case CmdSelect, CmdPaste, CmdCopy:
		id, err := arg()
		if err != nil {
			return nil, err
		}
		switch cmd {
		case CmdSelect:
			err = s.backend.Select(ctx, id)
		case CmdPaste:
			err = s.backend.Paste(ctx, id)
		default:
			err = s.backend.Copy(ctx, id)
		}
		return okResponse{OK: true}, err
	default:
		return nil, fmt.Errorf("unknown command %q", cmd)
	}
}

// parseCommand splits a request line into an upper-cased command and its
// positional arguments.
//
//	LIST         -> "LIST", []
//	PASTE 42     -> "PASTE", ["42"]
func parseCommand(line string) (string, []string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}
	return strings.ToUpper(parts[0]), parts[1:]
}
