package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/backend"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/cache"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/escalate"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/history"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/i18n"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// recordingScheduler captures engine timers instead of sleeping.
type recordingScheduler struct {
	msgs []escalate.ExpiredMsg
}

func (r *recordingScheduler) After(_ time.Duration, msg tea.Msg) tea.Cmd {
	r.msgs = append(r.msgs, msg.(escalate.ExpiredMsg))
	return nil
}

func (r *recordingScheduler) last(t escalate.Timer) (escalate.ExpiredMsg, bool) {
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i].Timer == t {
			return r.msgs[i], true
		}
	}
	return escalate.ExpiredMsg{}, false
}

type fixture struct {
	mem   *backend.Memory
	sched *recordingScheduler
	clip  []string
}

// helper to create a model over the sample history, already loaded.
func newTestModel(t *testing.T, opts ...backend.MemoryOption) (Model, *fixture) {
	t.Helper()
	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}

	f := &fixture{sched: &recordingScheduler{}}
	items := backend.SampleItems(testNow)
	memOpts := append([]backend.MemoryOption{
		backend.WithClipboardWriter(func(s string) error { f.clip = append(f.clip, s); return nil }),
		backend.WithClock(func() time.Time { return testNow }),
		backend.WithDetails(backend.SampleDetails(items)...),
	}, opts...)
	f.mem = backend.NewMemory(items, memOpts...)

	o := DefaultOptions()
	o.Backend = f.mem
	o.Translator = bundle.Translator("en-US")
	o.Scheduler = f.sched
	o.Rand = func(int) int { return 0 }
	o.Now = func() time.Time { return testNow }

	m, err := New(o)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(m.Close)

	m, _ = update(m, ItemsLoadedEvent{Items: items})
	return m, f
}

// helper to send a message through Update and return the updated model.
func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = update(m, keyRunes(string(r)))
	}
	return m
}

func TestNewRequiresBackendAndTranslator(t *testing.T) {
	if _, err := New(DefaultOptions()); err == nil {
		t.Error("expected error without a backend")
	}
	o := DefaultOptions()
	o.Backend = backend.NewMemory(nil)
	if _, err := New(o); err == nil {
		t.Error("expected error without a translator")
	}
}

func TestInitReturnsCmd(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Init() == nil {
		t.Fatal("Init() returned nil, expected list fetch and tickers")
	}
}

func TestItemsLoadedSelectsFirst(t *testing.T) {
	bundle, _ := i18n.LoadEmbedded()
	mem := backend.NewMemory(backend.SampleItems(testNow))
	o := DefaultOptions()
	o.Backend = mem
	o.Translator = bundle.Translator("en-US")
	m, err := New(o)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	if !m.Loading() {
		t.Error("expected loading before the first listing")
	}

	msg := m.fetchListCmd()()
	m, cmd := update(m, msg)
	if m.Loading() || len(m.Items()) != 7 || m.Selected() != 0 {
		t.Fatalf("unexpected state: loading=%v items=%d selected=%d", m.Loading(), len(m.Items()), m.Selected())
	}
	if cmd == nil {
		t.Fatal("expected the first selection to be published")
	}
	done, ok := cmd().(SelectDoneEvent)
	if !ok || done.ID != "1" || done.Err != nil {
		t.Errorf("unexpected select result: %+v", done)
	}
}

func TestListFailureSetsStatus(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, ItemsLoadedEvent{Err: errors.New("daemon down")})
	msg, isErr := m.Status()
	if !isErr || !strings.Contains(msg, "daemon down") {
		t.Errorf("unexpected status %q (err=%v)", msg, isErr)
	}
	if len(m.Items()) != 7 {
		t.Error("a failed refresh should keep the previous items")
	}
}

func TestNavigationClamps(t *testing.T) {
	m, _ := newTestModel(t)

	for range 10 {
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.Selected() != 6 {
		t.Errorf("expected clamp to last index 6, got %d", m.Selected())
	}
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Selected() != 6 || cmd != nil {
		t.Errorf("moving past the end should be a no-op, selected=%d", m.Selected())
	}

	for range 10 {
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.Selected() != 0 {
		t.Errorf("expected clamp to 0, got %d", m.Selected())
	}
	m, cmd = update(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Selected() != 0 || cmd != nil {
		t.Error("moving before the start should be a no-op")
	}
}

func TestSelectionPublishedToBackend(t *testing.T) {
	m, f := newTestModel(t)
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyDown})
	if cmd == nil {
		t.Fatal("expected select command")
	}
	m, _ = update(m, cmd())

	d, err := f.mem.Preview(context.Background())
	if err != nil || d == nil || d.ID != "2" {
		t.Errorf("backend should preview the selection, got %+v, %v", d, err)
	}
}

func TestTabIsSwallowed(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyTab})
	if cmd != nil || m.Selected() != 0 || m.Searching() {
		t.Error("tab should do nothing")
	}
}

func TestEnterPastesSelected(t *testing.T) {
	m, f := newTestModel(t)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected paste command")
	}
	done, ok := cmd().(PasteDoneEvent)
	if !ok || done.ID != "2" || done.Err != nil {
		t.Fatalf("unexpected paste result: %+v", done)
	}
	if len(f.clip) != 1 || f.mem.HideCount() != 1 {
		t.Errorf("clip=%v hides=%d", f.clip, f.mem.HideCount())
	}
}

func TestPasteFailureSetsStatus(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, PasteDoneEvent{ID: "1", Err: errors.New("no focus target")})
	msg, isErr := m.Status()
	if !isErr || !strings.HasPrefix(msg, "Paste failed") {
		t.Errorf("unexpected status %q", msg)
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	if msg, _ := m.Status(); msg != "" {
		t.Error("a key press should clear the status")
	}
}

func TestCopyShowsHUDThenHides(t *testing.T) {
	m, f := newTestModel(t)

	m, cmd := update(m, keyRunes("y"))
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	m, cmd = update(m, cmd())
	if !m.HUDVisible() || cmd == nil {
		t.Fatal("successful copy should show the HUD and arm its expiry")
	}
	if len(f.clip) != 1 || f.clip[0] != "git rebase -i HEAD~3" {
		t.Errorf("unexpected clipboard: %q", f.clip)
	}
	if f.mem.HideCount() != 0 {
		t.Error("window should stay until the HUD expires")
	}

	m, cmd = update(m, HUDExpiredEvent{Seq: m.hudSeq})
	if m.HUDVisible() || cmd == nil {
		t.Fatal("HUD should hide and request the window hidden")
	}
	if _, ok := cmd().(HiddenEvent); !ok || f.mem.HideCount() != 1 {
		t.Errorf("expected one hide, got %d", f.mem.HideCount())
	}
}

func TestRepeatedCopyRestartsHUD(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, CopyDoneEvent{ID: "1"})
	first := m.hudSeq
	m, _ = update(m, CopyDoneEvent{ID: "1"})

	m, cmd := update(m, HUDExpiredEvent{Seq: first})
	if !m.HUDVisible() || cmd != nil {
		t.Error("expiry of a superseded copy should be ignored")
	}
	m, _ = update(m, HUDExpiredEvent{Seq: m.hudSeq})
	if m.HUDVisible() {
		t.Error("latest expiry should hide the HUD")
	}
}

func TestCopyFailureShowsStatus(t *testing.T) {
	m, _ := newTestModel(t, backend.WithClipboardWriter(func(string) error {
		return errors.New("no display")
	}))

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	m, _ = update(m, cmd())
	if m.HUDVisible() {
		t.Error("failed copy should not show the HUD")
	}
	if msg, isErr := m.Status(); !isErr || !strings.Contains(msg, "no display") {
		t.Errorf("unexpected status %q", msg)
	}
}

func TestSearchFiltersAndResetsCursor(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})

	m, _ = update(m, keyRunes("/"))
	if !m.Searching() {
		t.Fatal("/ should focus search")
	}
	m = typeText(m, "dbeaver")
	if m.Query() != "dbeaver" {
		t.Fatalf("expected query to be typed, got %q", m.Query())
	}
	if len(m.Items()) != 1 || m.Items()[0].ID != "6" || m.Selected() != 0 {
		t.Errorf("unexpected filter result: %+v selected=%d", m.Items(), m.Selected())
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Searching() {
		t.Error("esc should blur search")
	}
	if m.Query() != "dbeaver" {
		t.Error("blurring should keep the query")
	}
}

func TestSearchCapturesCommandKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if !m.Searching() {
		t.Fatal("ctrl+f should focus search")
	}

	m, cmd := update(m, keyRunes("q"))
	if m.Quitting() {
		t.Fatal("q while searching should type, not quit")
	}
	_ = cmd
	m, _ = update(m, keyRunes("p"))
	if m.Engine().State().ClickCount != 0 {
		t.Error("p while searching should type, not pet")
	}
	if m.Query() != "qp" {
		t.Errorf("expected query %q, got %q", "qp", m.Query())
	}
}

func TestSearchKeepsArrowAndEnter(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, keyRunes("/"))

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Selected() != 1 {
		t.Errorf("down should navigate while searching, got %d", m.Selected())
	}
	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should paste while searching")
	}
	if done, ok := cmd().(PasteDoneEvent); !ok || done.ID != "2" {
		t.Errorf("unexpected paste: %+v", done)
	}
}

func TestRefreshKeepsSelectionOnSameItem(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown}) // item "3"

	items := backend.SampleItems(testNow)
	items[0], items[2] = items[2], items[0]
	m, cmd := update(m, ItemsLoadedEvent{Items: items})
	if m.Selected() != 0 {
		t.Errorf("cursor should follow item 3 to index 0, got %d", m.Selected())
	}
	if cmd != nil {
		t.Error("unchanged selection should not be republished")
	}
}

func TestPetEscalatesAndExpires(t *testing.T) {
	m, f := newTestModel(t)
	for range 7 {
		m, _ = update(m, keyRunes("p"))
	}
	if st := m.Engine().State(); st.Tier != escalate.TierNeko {
		t.Fatalf("expected neko after 7 pets, got %v", st.Tier)
	}

	expire, ok := f.sched.last(escalate.TimerNekoExpire)
	if !ok {
		t.Fatal("neko expiry was not scheduled")
	}
	m, _ = update(m, expire)
	if st := m.Engine().State(); st.Tier != escalate.TierIdle || st.ClickCount != 0 {
		t.Errorf("expected idle after expiry, got %+v", st)
	}
}

func TestFortuneAppearsInView(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	for range 5 {
		m, _ = update(m, keyRunes("p"))
	}
	if !strings.Contains(m.View(), "A warm lap is in your future.") {
		t.Errorf("expected the first fortune in view:\n%s", m.View())
	}
}

func TestMouseOutsideBrandDoesNothing(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, tea.MouseMsg{X: 500, Y: 500, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if m.Engine().State().ClickCount != 0 {
		t.Error("click outside the brand mark should not count")
	}
	m, _ = update(m, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if m.Selected() != 1 {
		t.Errorf("wheel should move selection, got %d", m.Selected())
	}
}

func TestPreviewReplacedOnlyOnIDChange(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(m, PreviewTickEvent{Time: testNow})
	if cmd == nil || !m.previewPending {
		t.Fatal("tick should start a poll")
	}

	a := &history.Detail{Item: history.Item{ID: "a", PlainText: "first"}}
	m, _ = update(m, PreviewEvent{Detail: a})
	if m.Preview() != a || m.previewPending {
		t.Fatal("first answer should be shown")
	}

	same := &history.Detail{Item: history.Item{ID: "a", PlainText: "changed"}}
	m, _ = update(m, PreviewEvent{Detail: same})
	if m.Preview() != a {
		t.Error("same ID should not replace the record")
	}

	m, _ = update(m, PreviewEvent{})
	if m.Preview() != a {
		t.Error("an empty answer should keep the record")
	}

	b := &history.Detail{Item: history.Item{ID: "b"}}
	m, _ = update(m, PreviewEvent{Detail: b})
	if m.Preview() != b {
		t.Error("new ID should replace the record")
	}
}

func TestViewLayout(t *testing.T) {
	m, _ := newTestModel(t)
	if m.View() != "" {
		t.Error("view before the first resize should be empty")
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	v := m.View()
	for _, want := range []string{"Recopy", "git rebase", "Today", "Loading...", "paste"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
	if n := strings.Count(v, "\n") + 1; n != 30 {
		t.Errorf("expected 30 lines, got %d", n)
	}

	m, _ = update(m, PreviewEvent{})
	if v := m.View(); !strings.Contains(v, "Waiting for preview data") {
		t.Errorf("expected waiting state:\n%s", v)
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 50, Height: 20})
	if v := m.View(); strings.Contains(v, "Waiting for preview data") {
		t.Error("narrow terminals should hide the preview pane")
	}
}

func TestViewShowsHUD(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(m, CopyDoneEvent{ID: "1"})
	if !strings.Contains(m.View(), "Copied") {
		t.Errorf("expected HUD in view:\n%s", m.View())
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(m, keyRunes("?"))
	if !strings.Contains(m.View(), "pet the cat") {
		t.Error("full help should list every binding")
	}
	m, _ = update(m, keyRunes("?"))
	if strings.Contains(m.View(), "pet the cat") {
		t.Error("second ? should close the full help")
	}
}

func TestQuitClosesEngine(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := update(m, keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !m.Quitting() || !m.Engine().Closed() {
		t.Error("quit should close the engine")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestCtrlCQuitsWhileSearching(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, keyRunes("/"))
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !m.Quitting() {
		t.Error("ctrl+c should always quit")
	}
}

func TestCachedListingFillsUntilLive(t *testing.T) {
	bundle, _ := i18n.LoadEmbedded()
	store, err := cache.NewStore(cache.StoreConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	o := DefaultOptions()
	o.Backend = backend.NewMemory(backend.SampleItems(testNow))
	o.Translator = bundle.Translator("en-US")
	o.Cache = store
	o.Now = func() time.Time { return testNow }
	m, err := New(o)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	if msg := m.loadCachedCmd()(); msg != nil {
		t.Fatalf("empty cache should produce no message, got %T", msg)
	}

	cached := backend.SampleItems(testNow)[:2]
	m, _ = update(m, ItemsLoadedEvent{Items: cached, Cached: true})
	if !m.Stale() || m.Loading() || len(m.Items()) != 2 {
		t.Fatalf("cached listing should fill the list: stale=%v loading=%v items=%d", m.Stale(), m.Loading(), len(m.Items()))
	}
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if !strings.Contains(m.View(), "cached") {
		t.Error("header should mark the cached listing")
	}

	live := backend.SampleItems(testNow)
	m, cmd := update(m, ItemsLoadedEvent{Items: live})
	if m.Stale() || len(m.Items()) != 7 {
		t.Fatalf("live listing should replace the snapshot")
	}
	if cmd == nil {
		t.Fatal("first live listing should be saved")
	}

	m, _ = update(m, ItemsLoadedEvent{Items: cached, Cached: true})
	if len(m.Items()) != 7 {
		t.Error("a late snapshot must not replace live data")
	}

	m.saveCacheCmd(live)()
	got, _, ok := cache.GetTyped[[]history.Item](store, historyCacheKey)
	if !ok || len(got) != 7 || got[0].ID != "1" {
		t.Errorf("unexpected snapshot: ok=%v items=%d", ok, len(got))
	}
	if msg, ok := m.loadCachedCmd()().(ItemsLoadedEvent); !ok || !msg.Cached || len(msg.Items) != 7 {
		t.Errorf("unexpected cached load: %+v", msg)
	}
}

func TestSameListing(t *testing.T) {
	a := backend.SampleItems(testNow)
	b := backend.SampleItems(testNow)
	if !sameListing(a, b) {
		t.Error("identical listings should compare equal")
	}
	b[3].UpdatedAt = testNow.Format(time.RFC3339)
	if sameListing(a, b) {
		t.Error("a touched item should differ")
	}
	if sameListing(a, b[:3]) {
		t.Error("different lengths should differ")
	}
}
