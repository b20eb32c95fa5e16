package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starlight-letter/starlight/pkg/app"
	"github.com/starlight-letter/starlight/pkg/letter"
	"github.com/starlight-letter/starlight/pkg/settings"
	"github.com/starlight-letter/starlight/pkg/store"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

type memoryPersistence struct {
	mu       sync.Mutex
	letters  map[timeutil.Day]*letter.Record
	fortunes map[timeutil.Day]string
	cfg      settings.Settings
}

func newMemoryPersistence() *memoryPersistence {
	cfg := settings.Default()
	cfg.APIKey = "test-key"
	return &memoryPersistence{
		letters:  make(map[timeutil.Day]*letter.Record),
		fortunes: make(map[timeutil.Day]string),
		cfg:      cfg,
	}
}

func (m *memoryPersistence) Letters(_ context.Context) map[timeutil.Day]*letter.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[timeutil.Day]*letter.Record, len(m.letters))
	for d, r := range m.letters {
		out[d] = r.Clone()
	}
	return out
}

func (m *memoryPersistence) Letter(_ context.Context, day timeutil.Day) (*letter.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.letters[day]
	return r.Clone(), ok
}

func (m *memoryPersistence) SaveLetter(day timeutil.Day, rec *letter.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.letters[day] = rec.Clone()
	return nil
}

func (m *memoryPersistence) DeleteLetter(day timeutil.Day) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.letters, day)
	return nil
}

func (m *memoryPersistence) Fortunes(_ context.Context) map[timeutil.Day]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[timeutil.Day]string, len(m.fortunes))
	for d, f := range m.fortunes {
		out[d] = f
	}
	return out
}

func (m *memoryPersistence) SaveFortune(day timeutil.Day, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fortunes[day] = text
	return nil
}

func (m *memoryPersistence) Settings(_ context.Context) settings.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

func (m *memoryPersistence) SaveSettings(s settings.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = s
	return nil
}

func (m *memoryPersistence) Watch(_ context.Context) (<-chan store.Event, error) {
	return make(chan store.Event), nil
}

type fakeGen struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeGen) LetterReply(_ context.Context, _ settings.Settings, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return fmt.Sprintf("reply #%d", f.calls), nil
}

func (f *fakeGen) Fortune(_ context.Context, _ settings.Settings, _ timeutil.Day) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return "a calm day", nil
}

func mustDay(t *testing.T, s string) timeutil.Day {
	t.Helper()
	d, err := timeutil.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func newTestApp(p *memoryPersistence, today *timeutil.Day) (*App, *app.Service) {
	svc := &app.Service{
		Persistence: p,
		Generator:   &fakeGen{},
		Today:       func() timeutil.Day { return *today },
	}
	a := NewApp(svc, nil)
	a.reload()
	return a, svc
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMenuOpensCompose(t *testing.T) {
	today := mustDay(t, "2026-08-28")
	a, _ := newTestApp(newMemoryPersistence(), &today)

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if a.screen != screenCompose {
		t.Fatalf("expected compose screen, got %d", a.screen)
	}
}

func TestSendLetterFromCompose(t *testing.T) {
	today := mustDay(t, "2026-08-28")
	p := newMemoryPersistence()
	a, svc := newTestApp(p, &today)

	a.screen = screenCompose
	a.compose.SetValue("dear friend, the rain kept up all day")
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if a.screen != screenDetail {
		t.Fatalf("expected detail screen after send, got %d", a.screen)
	}
	if _, ok := p.letters[today]; !ok {
		t.Fatalf("letter was not stored")
	}

	svc.Wait()
	a.reload()
	if !a.letters[today].Replied() {
		t.Fatalf("expected the background reply to land")
	}
}

func TestComposeRejectsEmptyLetter(t *testing.T) {
	today := mustDay(t, "2026-08-28")
	p := newMemoryPersistence()
	a, _ := newTestApp(p, &today)

	a.screen = screenCompose
	a.compose.SetValue("   ")
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if a.screen != screenCompose {
		t.Fatalf("expected to stay on compose, got %d", a.screen)
	}
	if len(p.letters) != 0 {
		t.Fatalf("blank letter must not be stored")
	}
	if a.statusMsg == "" {
		t.Fatalf("expected an error message")
	}
}

func TestMenuReopensTodaysLetter(t *testing.T) {
	today := mustDay(t, "2026-08-28")
	p := newMemoryPersistence()
	p.letters[today] = &letter.Record{User: "already sent"}
	a, _ := newTestApp(p, &today)

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if a.screen != screenDetail {
		t.Fatalf("expected detail screen when a letter exists, got %d", a.screen)
	}
	if !a.detailDay.Equal(today) {
		t.Fatalf("expected detail for today, got %s", a.detailDay)
	}
}

func TestDetailHidesReplyUntilTomorrow(t *testing.T) {
	today := mustDay(t, "2026-08-28")
	p := newMemoryPersistence()
	p.letters[today] = &letter.Record{User: "hello", Reply: "a secret until midnight", StampID: "042"}
	a, _ := newTestApp(p, &today)

	a.screen = screenDetail
	a.detailDay = mustDay(t, "2026-08-28")

	view := a.viewDetail()
	if strings.Contains(view, "a secret until midnight") {
		t.Fatalf("reply must stay hidden on the day it was written")
	}
	if !strings.Contains(view, "tomorrow") {
		t.Fatalf("expected the tomorrow notice, got:\n%s", view)
	}

	today = mustDay(t, "2026-08-29")
	view = a.viewDetail()
	if !strings.Contains(view, "a secret until midnight") {
		t.Fatalf("reply must show once the day has passed, got:\n%s", view)
	}
	if !strings.Contains(view, "042") {
		t.Fatalf("expected the stamp id in the view")
	}
}

func TestCalendarNavigation(t *testing.T) {
	today := mustDay(t, "2026-08-15")
	a, _ := newTestApp(newMemoryPersistence(), &today)

	a.screen = screenCalendar
	a.cursor = today
	a.viewYear, a.viewMonth = 2026, time.August

	a.Update(keyRune('n'))
	if a.viewMonth != time.September || a.viewYear != 2026 {
		t.Fatalf("expected September 2026, got %s %d", a.viewMonth, a.viewYear)
	}

	a.Update(keyRune('p'))
	a.Update(keyRune('p'))
	if a.viewMonth != time.July || a.viewYear != 2026 {
		t.Fatalf("expected July 2026, got %s %d", a.viewMonth, a.viewYear)
	}

	a.Update(keyRune('t'))
	if !a.cursor.Equal(today) || a.viewMonth != time.August {
		t.Fatalf("expected to jump back to today")
	}

	a.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !a.cursor.Equal(mustDay(t, "2026-08-16")) {
		t.Fatalf("expected cursor to move right, got %s", a.cursor)
	}

	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	if !a.cursor.Equal(mustDay(t, "2026-08-23")) {
		t.Fatalf("expected cursor to move down a week, got %s", a.cursor)
	}

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if a.screen != screenDetail || !a.detailDay.Equal(mustDay(t, "2026-08-23")) {
		t.Fatalf("expected detail for the selected day")
	}
}

func TestRegenerateAsksForConfirmation(t *testing.T) {
	yesterday := mustDay(t, "2026-08-27")
	today := mustDay(t, "2026-08-28")
	p := newMemoryPersistence()
	p.letters[yesterday] = &letter.Record{User: "hello", Reply: "first reply", StampID: "007"}
	a, svc := newTestApp(p, &today)

	a.screen = screenDetail
	a.detailDay = yesterday

	a.Update(keyRune('r'))
	if a.confirm != "regen" {
		t.Fatalf("expected a pending confirmation, got %q", a.confirm)
	}

	// anything but y cancels
	a.Update(keyRune('x'))
	if a.confirm != "" {
		t.Fatalf("expected the confirmation to clear")
	}
	if p.letters[yesterday].Reply != "first reply" {
		t.Fatalf("cancel must not touch the reply")
	}

	a.Update(keyRune('r'))
	_, cmd := a.Update(keyRune('y'))
	if cmd == nil {
		t.Fatalf("expected a regenerate command")
	}
	if msg := cmd(); msg == nil {
		t.Fatalf("expected a reply message")
	}
	svc.Wait()
	if p.letters[yesterday].Reply == "first reply" {
		t.Fatalf("expected a fresh reply")
	}
}

func TestRewriteConfirmReturnsToCompose(t *testing.T) {
	today := mustDay(t, "2026-08-28")
	p := newMemoryPersistence()
	p.letters[today] = &letter.Record{User: "a false start"}
	a, _ := newTestApp(p, &today)

	a.screen = screenDetail
	a.detailDay = today

	a.Update(keyRune('d'))
	if a.confirm != "rewrite" {
		t.Fatalf("expected a pending confirmation, got %q", a.confirm)
	}
	_, cmd := a.Update(keyRune('y'))
	if cmd == nil {
		t.Fatalf("expected a rewrite command")
	}
	a.Update(cmd())

	if _, ok := p.letters[today]; ok {
		t.Fatalf("expected the letter to be deleted")
	}
	if a.screen != screenCompose {
		t.Fatalf("expected to land on compose, got %d", a.screen)
	}
}

func TestFortuneCheckedOncePerDay(t *testing.T) {
	today := mustDay(t, "2026-08-28")
	p := newMemoryPersistence()
	a, _ := newTestApp(p, &today)

	a.screen = screenFortune
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a fortune command")
	}
	a.Update(cmd())

	if p.fortunes[today] != "a calm day" {
		t.Fatalf("expected the fortune to be stored, got %q", p.fortunes[today])
	}

	// a second enter shows the stored fortune instead of generating
	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("expected no second generation")
	}
	if !strings.Contains(a.viewFortune(), "a calm day") {
		t.Fatalf("expected the stored fortune in the view")
	}
}

type blockingGen struct {
	startOnce sync.Once
	started   chan struct{}
	release   chan struct{}
}

func (b *blockingGen) LetterReply(_ context.Context, _ settings.Settings, _ string) (string, error) {
	b.startOnce.Do(func() { close(b.started) })
	<-b.release
	return "a reply at last", nil
}

func (b *blockingGen) Fortune(_ context.Context, _ settings.Settings, _ timeutil.Day) (string, error) {
	return "", nil
}

func TestDetailWithholdsReplyActionsForToday(t *testing.T) {
	yesterday := mustDay(t, "2026-08-27")
	today := mustDay(t, "2026-08-28")
	p := newMemoryPersistence()
	p.letters[today] = &letter.Record{User: "hi", Reply: "sealed until tomorrow", StampID: "007"}
	a, _ := newTestApp(p, &today)

	a.screen = screenDetail
	a.detailDay = today

	// a still-hidden reply offers no regenerate
	if strings.Contains(a.viewDetail(), "new reply") {
		t.Fatalf("hidden reply must not offer a regenerate action:\n%s", a.viewDetail())
	}
	a.Update(keyRune('r'))
	if a.confirm != "" {
		t.Fatalf("regenerate must be ignored for a hidden reply")
	}

	// today's pending letter offers no manual fetch
	p.letters[today] = &letter.Record{User: "hi"}
	a.reload()
	if strings.Contains(a.viewDetail(), "fetch") {
		t.Fatalf("today's pending letter must not offer a fetch action:\n%s", a.viewDetail())
	}
	if _, cmd := a.Update(keyRune('f')); cmd != nil {
		t.Fatalf("fetch must be ignored for today's letter")
	}

	// a past pending letter may fetch
	p.letters[yesterday] = &letter.Record{User: "an old letter"}
	a.reload()
	a.detailDay = yesterday
	if !strings.Contains(a.viewDetail(), "fetch") {
		t.Fatalf("expected the fetch action for a past pending letter:\n%s", a.viewDetail())
	}
}

func TestForegroundFetchShowsInFlight(t *testing.T) {
	yesterday := mustDay(t, "2026-08-27")
	today := mustDay(t, "2026-08-28")
	p := newMemoryPersistence()
	p.letters[yesterday] = &letter.Record{User: "an old letter"}
	g := &blockingGen{started: make(chan struct{}), release: make(chan struct{})}
	svc := &app.Service{
		Persistence: p,
		Generator:   g,
		Today:       func() timeutil.Day { return today },
	}
	a := NewApp(svc, nil)
	a.reload()
	a.screen = screenDetail
	a.detailDay = yesterday

	_, cmd := a.Update(keyRune('f'))
	if cmd == nil {
		t.Fatalf("expected a fetch command")
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	<-g.started

	if !svc.Generating(yesterday) {
		t.Fatalf("expected the fetch to register in flight")
	}
	if !strings.Contains(a.View(), "being written") {
		t.Fatalf("expected the in-flight indicator while fetching a past day")
	}

	close(g.release)
	a.Update(<-done)
	if !p.letters[yesterday].Replied() {
		t.Fatalf("expected the fetched reply to land")
	}
	if svc.Generating(yesterday) {
		t.Fatalf("expected the in-flight mark to clear")
	}
}

func TestCursorFollowsServiceClock(t *testing.T) {
	today := mustDay(t, "2024-02-01")
	a, _ := newTestApp(newMemoryPersistence(), &today)

	if !a.cursor.Equal(today) {
		t.Fatalf("expected the cursor on the service's day, got %s", a.cursor)
	}
	if a.viewYear != 2024 || a.viewMonth != time.February {
		t.Fatalf("expected February 2024, got %s %d", a.viewMonth, a.viewYear)
	}
}

func TestSettingsEditKeepsAPIKey(t *testing.T) {
	today := mustDay(t, "2026-08-28")
	p := newMemoryPersistence()
	p.cfg.APIKey = "real-secret-abcd"
	a, _ := newTestApp(p, &today)

	a.screen = screenSettings // apiKey is the first field

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := a.input.Value(); got != "real-secret-abcd" {
		t.Fatalf("edit must start from the real key, got %q", got)
	}
	// saving without touching the value must not corrupt the key
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.cfg.APIKey != "real-secret-abcd" {
		t.Fatalf("API key corrupted by edit round-trip: now %q", p.cfg.APIKey)
	}

	// an unset key must stay unset after an untouched edit
	p.cfg.APIKey = ""
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := a.input.Value(); got != "" {
		t.Fatalf("unset key must edit as empty, got %q", got)
	}
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.cfg.HasAPIKey() {
		t.Fatalf("unset key must stay unset, got %q", p.cfg.APIKey)
	}
}

func TestSettingsEdit(t *testing.T) {
	today := mustDay(t, "2026-08-28")
	p := newMemoryPersistence()
	a, _ := newTestApp(p, &today)

	a.screen = screenSettings
	// move down to userName
	a.Update(keyRune('j'))
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !a.editing {
		t.Fatalf("expected edit mode")
	}

	a.input.SetValue("June")
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if a.editing {
		t.Fatalf("expected edit mode to end")
	}
	if p.cfg.UserName != "June" {
		t.Fatalf("expected userName saved, got %q", p.cfg.UserName)
	}
}
