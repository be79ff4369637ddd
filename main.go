// recopy-tui is the terminal front end of the Recopy clipboard manager.
//
// It lists the clipboard history kept by the Recopy daemon, previews the
// selected record and pastes or copies it back. The daemon is reached over
// its Unix socket; --use-mocks runs against a built-in sample history and
// --serve-mock exposes that history on the socket for other clients.
//
// Usage:
//
//	recopy-tui [flags]
//
// Flags:
//
//	--config string   Path to configuration file (default: ~/.config/recopy/config.toml)
//	--socket string   Daemon socket path (overrides config)
//	--locale string   UI locale, e.g. en-US or zh-CN (overrides config)
//	--theme string    Color theme name (overrides config)
//	--use-mocks       Use the built-in sample history instead of the daemon
//	--serve-mock      Serve the sample history on the socket and block
//	--dump-theme      Print the selected theme as TOML and exit
//	--shell string    Print a key binding snippet (bash|zsh|fish|auto) and exit
//	--no-color        Disable colors
//	--verbose         Enable debug logging
//	--version         Print version and exit
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	flag "github.com/spf13/pflag"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/app"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/backend"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/cache"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/config"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/i18n"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/shell"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/theme"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		socketPath  = flag.String("socket", "", "Daemon socket path (overrides config)")
		locale      = flag.String("locale", "", "UI locale, e.g. en-US or zh-CN (overrides config)")
		themeName   = flag.String("theme", "", "Color theme name (overrides config)")
		useMocks    = flag.Bool("use-mocks", false, "Use the built-in sample history instead of the daemon")
		serveMock   = flag.Bool("serve-mock", false, "Serve the sample history on the socket and block")
		dumpTheme   = flag.Bool("dump-theme", false, "Print the selected theme as TOML and exit")
		shellName   = flag.String("shell", "", "Print a key binding snippet for bash, zsh, fish or auto and exit")
		noColor     = flag.Bool("no-color", false, "Disable colors")
		verbose     = flag.BoolP("verbose", "v", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("recopy-tui %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// Shell integration output doesn't require config.
	if flag.CommandLine.Changed("shell") {
		sh, err := shell.Parse(*shellName)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		bin, err := os.Executable()
		if err != nil {
			bin = "recopy-tui"
		}
		fmt.Print(shell.Integration(sh, bin))
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *socketPath != "" {
		cfg.Backend.Socket = *socketPath
	}
	if *locale != "" {
		cfg.General.Locale = *locale
	}
	if *themeName != "" {
		cfg.Theme.Name = *themeName
		cfg.Theme.File = ""
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	if *noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	th, err := resolveTheme(cfg.Theme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load theme: %v\n", err)
		os.Exit(1)
	}
	if *dumpTheme {
		data, err := theme.SaveToTOML(th)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode theme: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		os.Exit(0)
	}

	logger, closeLog, err := setupLogger(cfg.General, *verbose, *serveMock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	if *serveMock {
		if err := runMockServer(cfg.Backend.Socket, logger); err != nil {
			logger.Error("mock server failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(os.Stdin.Fd()) ||
		(!isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "recopy-tui needs an interactive terminal")
		os.Exit(1)
	}

	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load translations: %v\n", err)
		os.Exit(1)
	}
	tr := bundle.Translator(resolveLocale(cfg.General.Locale))

	var b backend.Backend
	if *useMocks {
		items := backend.SampleItems(time.Now())
		b = backend.NewMemory(items, backend.WithDetails(backend.SampleDetails(items)...))
		logger.Info("using mock history", "items", len(items))
	} else {
		b = backend.NewClient(cfg.Backend.Socket, cfg.Backend.Timeout.Duration)
		logger.Info("connecting to daemon", "socket", cfg.Backend.Socket)
	}

	opts := app.DefaultOptions()
	opts.Backend = b
	opts.Translator = tr
	opts.Theme = th
	opts.Logger = logger
	opts.RefreshInterval = cfg.List.RefreshInterval.Duration
	opts.PreviewEnabled = cfg.Preview.Enabled
	opts.PreviewInterval = cfg.Preview.PollInterval.Duration
	opts.HUDDuration = cfg.HUD.Duration.Duration
	if cfg.Cache.Enabled && !*useMocks {
		store, err := cache.NewStore(cache.StoreConfig{Dir: cfg.Cache.Dir, MaxAge: cfg.Cache.MaxAge.Duration})
		if err != nil {
			logger.Warn("history cache disabled", "err", err)
		} else {
			opts.Cache = store
		}
	}

	model, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited with error", "err", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("tui exited", "locale", tr.Locale(), "theme", th.Name)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// resolveTheme picks the configured theme. "auto" follows the terminal
// background.
func resolveTheme(tc config.ThemeConfig) (theme.Theme, error) {
	if tc.File != "" {
		th, err := theme.LoadFile(tc.File)
		if err != nil {
			return theme.Theme{}, err
		}
		theme.Register(th)
		return th, nil
	}
	if strings.EqualFold(tc.Name, "auto") {
		if termenv.HasDarkBackground() {
			return theme.Get("default"), nil
		}
		return theme.Get("light"), nil
	}
	th, ok := theme.Lookup(tc.Name)
	if !ok {
		return theme.Theme{}, fmt.Errorf("unknown theme %q (available: %s)", tc.Name, strings.Join(theme.Names(), ", "))
	}
	return th, nil
}

func resolveLocale(configured string) string {
	if configured == "" || strings.EqualFold(configured, "auto") {
		return i18n.DetectLocale()
	}
	return configured
}

// setupLogger writes to the configured log file. The TUI owns the terminal,
// so only the mock server also logs to stderr.
func setupLogger(gc config.GeneralConfig, verbose, toStderr bool) (*slog.Logger, func(), error) {
	level, err := config.ParseLogLevel(gc.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	if err := os.MkdirAll(filepath.Dir(gc.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	logFile, err := os.OpenFile(gc.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	var w io.Writer = logFile
	if toStderr {
		w = io.MultiWriter(os.Stderr, logFile)
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, func() { logFile.Close() }, nil
}

// runMockServer serves the sample history on socketPath until SIGINT or
// SIGTERM.
func runMockServer(socketPath string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pidPath := backend.PIDPath(socketPath)
	if err := backend.AcquirePID(pidPath); err != nil {
		return err
	}
	defer backend.ReleasePID(pidPath)

	items := backend.SampleItems(time.Now())
	mem := backend.NewMemory(items, backend.WithDetails(backend.SampleDetails(items)...))
	srv := backend.NewServer(socketPath, mem, logger)
	if err := srv.Start(); err != nil {
		return err
	}
	logger.Info("serving mock history", "socket", socketPath, "items", len(items))

	<-ctx.Done()
	srv.Stop()
	logger.Info("mock server stopped")
	return nil
}
