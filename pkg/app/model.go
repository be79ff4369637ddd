package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/backend"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/cache"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/escalate"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/history"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/i18n"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/theme"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/tui"
)

// brandZone is the bubblezone ID of the clickable brand mark.
const brandZone = "brand"

// Options configures a Model.
type Options struct {
	Backend    backend.Backend
	Translator *i18n.Translator
	Theme      theme.Theme
	Logger     *slog.Logger
	// Cache, when set, keeps the last listing for the next start.
	Cache *cache.Store

	RefreshInterval time.Duration
	PreviewInterval time.Duration
	PreviewEnabled  bool
	HUDDuration     time.Duration

	// Engine options, replaceable in tests.
	Scheduler escalate.Scheduler
	Rand      func(n int) int
	Now       func() time.Time
}

// DefaultOptions returns the intervals the picker runs with when nothing is
// configured.
func DefaultOptions() Options {
	return Options{
		Theme:           theme.Get("default"),
		RefreshInterval: 5 * time.Second,
		PreviewInterval: 100 * time.Millisecond,
		PreviewEnabled:  true,
		HUDDuration:     600 * time.Millisecond,
	}
}

// Model is the root bubbletea model.
type Model struct {
	opts    Options
	backend backend.Backend
	tr      *i18n.Translator
	styles  tui.Styles
	log     *slog.Logger
	now     func() time.Time

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce *sync.Once

	keys   keyMap
	help   help.Model
	search textinput.Model
	zones  *zone.Manager
	engine *escalate.Engine

	items    []history.Item // as listed by the backend
	visible  []history.Item // after the search filter
	selected int
	loading  bool
	live     bool // a listing from the backend has arrived

	preview        *history.Detail
	previewLoaded  bool
	previewPending bool

	hudVisible bool
	hudSeq     uint64

	status    string
	statusErr bool

	width    int
	height   int
	quitting bool
}

// New creates the root model. Options.Backend and Options.Translator are
// required.
func New(opts Options) (Model, error) {
	if opts.Backend == nil {
		return Model{}, errors.New("app: no backend")
	}
	if opts.Translator == nil {
		return Model{}, errors.New("app: no translator")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Theme.Name == "" {
		opts.Theme = theme.Get("default")
	}

	engineOpts := []escalate.Option{escalate.WithLogger(opts.Logger)}
	if opts.Scheduler != nil {
		engineOpts = append(engineOpts, escalate.WithScheduler(opts.Scheduler))
	}
	if opts.Rand != nil {
		engineOpts = append(engineOpts, escalate.WithRand(opts.Rand))
	}

	styles := tui.NewStyles(opts.Theme)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = opts.Translator.T("search.placeholder")
	search.PromptStyle = styles.Accent
	search.TextStyle = styles.Text
	search.PlaceholderStyle = styles.Dim

	h := help.New()
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.ShortDesc = styles.HelpDesc
	h.Styles.FullKey = styles.HelpKey
	h.Styles.FullDesc = styles.HelpDesc

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		opts:      opts,
		backend:   opts.Backend,
		tr:        opts.Translator,
		styles:    styles,
		log:       opts.Logger,
		now:       opts.Now,
		ctx:       ctx,
		cancel:    cancel,
		closeOnce: &sync.Once{},
		keys:      defaultKeyMap(),
		help:      h,
		search:    search,
		zones:     zone.New(),
		engine:    escalate.New(opts.Translator, engineOpts...),
		loading:   true,
	}, nil
}

// Init loads the history and starts the refresh and preview tickers.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchListCmd()}
	if m.opts.Cache != nil {
		cmds = append(cmds, m.loadCachedCmd())
	}
	if m.opts.RefreshInterval > 0 {
		cmds = append(cmds, RefreshTickCmd(m.opts.RefreshInterval))
	}
	if m.opts.PreviewEnabled && m.opts.PreviewInterval > 0 {
		cmds = append(cmds, PreviewTickCmd(m.opts.PreviewInterval))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-4, 1)
		return m, nil

	case escalate.ExpiredMsg:
		return m, m.engine.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case RefreshTickEvent:
		return m, tea.Batch(m.fetchListCmd(), RefreshTickCmd(m.opts.RefreshInterval))

	case PreviewTickEvent:
		next := PreviewTickCmd(m.opts.PreviewInterval)
		if m.previewPending {
			return m, next
		}
		m.previewPending = true
		return m, tea.Batch(m.fetchPreviewCmd(), next)

	case ItemsLoadedEvent:
		return m.handleItems(msg)

	case PreviewEvent:
		m.handlePreview(msg)
		return m, nil

	case SelectDoneEvent:
		if msg.Err != nil {
			m.log.Debug("select failed", "id", msg.ID, "err", msg.Err)
		}
		return m, nil

	case CopyDoneEvent:
		if msg.Err != nil {
			m.log.Warn("copy failed", "id", msg.ID, "err", msg.Err)
			m.setStatus(m.tr.T("status.copyFailed", msg.Err.Error()), true)
			return m, nil
		}
		m.hudVisible = true
		m.hudSeq++
		return m, HUDExpireCmd(m.opts.HUDDuration, m.hudSeq)

	case HUDExpiredEvent:
		if !m.hudVisible || msg.Seq != m.hudSeq {
			return m, nil
		}
		m.hudVisible = false
		return m, m.hideCmd()

	case PasteDoneEvent:
		if msg.Err != nil {
			m.log.Warn("paste failed", "id", msg.ID, "err", msg.Err)
			m.setStatus(m.tr.T("status.pasteFailed", msg.Err.Error()), true)
		}
		return m, nil

	case HiddenEvent:
		if msg.Err != nil {
			m.log.Debug("hide window failed", "err", msg.Err)
		}
		return m, nil
	}

	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Force) {
		return m.quit()
	}
	m.clearStatus()

	if m.search.Focused() {
		switch msg.Type {
		case tea.KeyDown:
			cmd := m.MoveSelection(1)
			return m, cmd
		case tea.KeyUp:
			cmd := m.MoveSelection(-1)
			return m, cmd
		case tea.KeyEnter:
			return m, m.pasteSelected()
		case tea.KeyEsc:
			m.search.Blur()
			return m, nil
		}

		prev := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != prev {
			refilter := m.refilter(true)
			return m, tea.Batch(cmd, refilter)
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		return m, nil
	case key.Matches(msg, m.keys.Next):
		cmd := m.MoveSelection(1)
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.MoveSelection(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Paste):
		return m, m.pasteSelected()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copySelected()
	case key.Matches(msg, m.keys.Search):
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Pet):
		return m, m.pet()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelDown:
		cmd := m.MoveSelection(1)
		return m, cmd
	case msg.Button == tea.MouseButtonWheelUp:
		cmd := m.MoveSelection(-1)
		return m, cmd
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		if m.zones.Get(brandZone).InBounds(msg) {
			return m, m.pet()
		}
	}
	return m, nil
}

func (m Model) handleItems(msg ItemsLoadedEvent) (tea.Model, tea.Cmd) {
	if msg.Cached {
		if m.live {
			return m, nil
		}
		m.loading = false
		m.items = msg.Items
		cmd := m.refilter(false)
		return m, cmd
	}

	m.loading = false
	if msg.Err != nil {
		m.log.Warn("list failed", "err", msg.Err)
		m.setStatus(m.tr.T("status.listFailed", msg.Err.Error()), true)
		return m, nil
	}

	var save tea.Cmd
	if m.opts.Cache != nil && (!m.live || !sameListing(m.items, msg.Items)) {
		save = m.saveCacheCmd(msg.Items)
	}
	m.live = true
	m.items = msg.Items
	cmd := m.refilter(false)
	return m, tea.Batch(cmd, save)
}

// sameListing reports whether two listings hold the same records in the
// same order.
func sameListing(a, b []history.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].UpdatedAt != b[i].UpdatedAt {
			return false
		}
	}
	return true
}

// handlePreview applies a poll answer. The record is replaced only when the
// item changes; an empty answer keeps whatever is already shown.
func (m *Model) handlePreview(msg PreviewEvent) {
	m.previewPending = false
	if msg.Err != nil {
		m.log.Debug("preview poll failed", "err", msg.Err)
		return
	}
	m.previewLoaded = true
	if msg.Detail == nil {
		return
	}
	if m.preview == nil || m.preview.ID != msg.Detail.ID {
		m.preview = msg.Detail
	}
}

// pet registers one interaction with the brand mark.
func (m Model) pet() tea.Cmd {
	st, cmd := m.engine.RegisterInteraction()
	m.log.Debug("brand mark clicked", "count", st.ClickCount, "tier", st.Tier)
	return cmd
}

func (m Model) pasteSelected() tea.Cmd {
	it, ok := m.SelectedItem()
	if !ok {
		return nil
	}
	return m.pasteCmd(it.ID)
}

func (m Model) copySelected() tea.Cmd {
	it, ok := m.SelectedItem()
	if !ok {
		return nil
	}
	return m.copyCmd(it.ID)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

// Close cancels pending timers and in-flight requests. It is called on
// quit and may be called again by the owner of the program.
func (m Model) Close() {
	m.closeOnce.Do(func() {
		m.engine.Close()
		m.cancel()
		m.zones.Close()
	})
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// Engine returns the brand-mark escalation engine.
func (m Model) Engine() *escalate.Engine { return m.engine }

// Items returns the visible (filtered) history.
func (m Model) Items() []history.Item { return m.visible }

// Selected returns the cursor index into Items.
func (m Model) Selected() int { return m.selected }

// Loading reports whether the first listing is still outstanding.
func (m Model) Loading() bool { return m.loading }

// Stale reports whether the list shows the cached snapshot.
func (m Model) Stale() bool { return !m.live && len(m.items) > 0 }

// HUDVisible reports whether the copy HUD is shown.
func (m Model) HUDVisible() bool { return m.hudVisible }

// Preview returns the preview record currently shown.
func (m Model) Preview() *history.Detail { return m.preview }

// Status returns the status message and whether it is an error.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

// Searching reports whether the search box has focus.
func (m Model) Searching() bool { return m.search.Focused() }

// Query returns the current search query.
func (m Model) Query() string { return m.search.Value() }

// Quitting reports whether the model has asked the program to exit.
func (m Model) Quitting() bool { return m.quitting }
