// Package app is the letter lifecycle engine. It owns the write-once-per-day
// rules, the reply reveal gating, and the fortune variant, wrapping
// persistence and the generation client so the CLI and the TUI share one
// implementation.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/starlight-letter/starlight/pkg/gen"
	"github.com/starlight-letter/starlight/pkg/letter"
	"github.com/starlight-letter/starlight/pkg/settings"
	"github.com/starlight-letter/starlight/pkg/store"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

// Service provides the high-level mailbox operations.
type Service struct {
	Persistence store.Persistence
	Generator   gen.Client

	// Today overrides the clock; tests use it to advance the calendar.
	Today func() timeutil.Day

	mu       sync.Mutex
	inflight map[timeutil.Day]bool
	pending  sync.WaitGroup
}

func (s *Service) today() timeutil.Day {
	if s.Today != nil {
		return s.Today()
	}
	return timeutil.Today()
}

// Now reports the service's current day, honoring any Today override.
func (s *Service) Now() timeutil.Day {
	return s.today()
}

func (s *Service) ready() error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	if s.Generator == nil {
		return errors.New("app: no generator configured")
	}
	return nil
}

// Letter returns the stored record for a day, if any.
func (s *Service) Letter(ctx context.Context, day timeutil.Day) (*letter.Record, bool) {
	if s.Persistence == nil {
		return nil, false
	}
	return s.Persistence.Letter(ctx, day)
}

// Letters returns all stored records keyed by day.
func (s *Service) Letters(ctx context.Context) map[timeutil.Day]*letter.Record {
	if s.Persistence == nil {
		return map[timeutil.Day]*letter.Record{}
	}
	return s.Persistence.Letters(ctx)
}

// State evaluates the lifecycle state of a day's record as seen right now.
func (s *Service) State(ctx context.Context, day timeutil.Day) letter.State {
	rec, _ := s.Letter(ctx, day)
	return letter.StateOf(rec, day, s.today())
}

// Submit stores the user's letter for the day and returns immediately; the
// reply is generated on a detached goroutine whose result is written
// straight to the store. Closing the UI does not cancel it — call Wait
// before process exit to let it finish.
//
// Any prior record for the day is overwritten.
func (s *Service) Submit(ctx context.Context, day timeutil.Day, text string) (*letter.Record, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validationf("letter text is empty")
	}
	cfg := s.Persistence.Settings(ctx)
	if !cfg.HasAPIKey() {
		return nil, validationf("no API key configured; set one with `starlight settings set apiKey ...`")
	}

	rec := letter.New(text)
	if err := s.Persistence.SaveLetter(day, rec); err != nil {
		return nil, err
	}

	s.startGeneration(day, text, cfg)
	return rec.Clone(), nil
}

// startGeneration launches the fire-and-forget reply generation for a day.
// The goroutine uses a background context on purpose: the request belongs to
// the store, not to whichever view happened to trigger it.
func (s *Service) startGeneration(day timeutil.Day, text string, cfg settings.Settings) {
	s.markInflight(day)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer s.clearInflight(day)

		reply, err := s.Generator.LetterReply(context.Background(), cfg, text)
		if err != nil {
			// The user's letter is already durable; the reply can be
			// fetched later with `starlight receive`.
			fmt.Fprintf(os.Stderr, "app: background reply for %s: %v\n", day, err)
			return
		}
		rec := &letter.Record{User: text, Reply: reply, StampID: letter.RandomStampID()}
		if err := s.Persistence.SaveLetter(day, rec); err != nil {
			fmt.Fprintf(os.Stderr, "app: store reply for %s: %v\n", day, err)
		}
	}()
}

func (s *Service) markInflight(day timeutil.Day) {
	s.mu.Lock()
	if s.inflight == nil {
		s.inflight = make(map[timeutil.Day]bool)
	}
	s.inflight[day] = true
	s.mu.Unlock()
}

func (s *Service) clearInflight(day timeutil.Day) {
	s.mu.Lock()
	delete(s.inflight, day)
	s.mu.Unlock()
}

// Generating reports whether a reply generation is in flight for the day.
// UIs use it to disable the triggering control; storage does not enforce it.
func (s *Service) Generating(day timeutil.Day) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[day]
}

// Wait blocks until all fire-and-forget generations have completed.
func (s *Service) Wait() {
	s.pending.Wait()
}

// GenerateReply fetches the reply for an existing pending letter, blocking
// until the model answers. On failure the record is left untouched and the
// provider's message is surfaced; there is no automatic retry.
func (s *Service) GenerateReply(ctx context.Context, day timeutil.Day) (*letter.Record, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rec, ok := s.Persistence.Letter(ctx, day)
	if !ok || rec.User == "" {
		return nil, validationf("no letter for %s", day)
	}
	if rec.Replied() {
		return nil, validationf("a reply already exists for %s", day)
	}
	return s.generateInto(ctx, day, rec)
}

// Regenerate discards the stored reply and produces a new one. The old
// reply is unrecoverable, so callers must pass explicit confirmation.
func (s *Service) Regenerate(ctx context.Context, day timeutil.Day, confirmed bool) (*letter.Record, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rec, ok := s.Persistence.Letter(ctx, day)
	if !ok || rec.User == "" {
		return nil, validationf("no letter for %s", day)
	}
	if !rec.Replied() {
		return nil, validationf("no reply to regenerate for %s", day)
	}
	if !day.Before(s.today()) {
		return nil, validationf("the reply for %s is still sealed; wait for the day to pass", day)
	}
	if !confirmed {
		return nil, validationf("regenerating discards the current reply; confirm to continue")
	}
	return s.generateInto(ctx, day, rec)
}

func (s *Service) generateInto(ctx context.Context, day timeutil.Day, rec *letter.Record) (*letter.Record, error) {
	cfg := s.Persistence.Settings(ctx)
	if !cfg.HasAPIKey() {
		return nil, validationf("no API key configured; set one with `starlight settings set apiKey ...`")
	}

	// Foreground fetches register in the same in-flight map as background
	// ones so UIs can show progress and disable the trigger.
	s.markInflight(day)
	defer s.clearInflight(day)

	reply, err := s.Generator.LetterReply(ctx, cfg, rec.User)
	if err != nil {
		return nil, &GenerationError{err: err}
	}

	// Reply and stamp always land in the same write.
	updated := &letter.Record{User: rec.User, Reply: reply, StampID: letter.RandomStampID()}
	if err := s.Persistence.SaveLetter(day, updated); err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

// Rewrite deletes the day's record entirely, returning the date to empty so
// a fresh letter can be written. Requires explicit confirmation.
func (s *Service) Rewrite(ctx context.Context, day timeutil.Day, confirmed bool) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	if _, ok := s.Persistence.Letter(ctx, day); !ok {
		return validationf("no letter for %s", day)
	}
	if !confirmed {
		return validationf("rewriting discards the letter and any reply; confirm to continue")
	}
	return s.Persistence.DeleteLetter(day)
}

// CheckFortune generates and stores the fortune for a day. One per day: a
// second request is rejected and the stored message is left unchanged.
func (s *Service) CheckFortune(ctx context.Context, day timeutil.Day) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if _, ok := s.Persistence.Fortunes(ctx)[day]; ok {
		return "", validationf("fortune already checked for %s", day)
	}
	cfg := s.Persistence.Settings(ctx)
	if !cfg.HasAPIKey() {
		return "", validationf("no API key configured; set one with `starlight settings set apiKey ...`")
	}

	text, err := s.Generator.Fortune(ctx, cfg, day)
	if err != nil {
		return "", &GenerationError{err: err}
	}
	if err := s.Persistence.SaveFortune(day, text); err != nil {
		return "", err
	}
	return text, nil
}

// FortuneFor returns the stored fortune for a day, if checked.
func (s *Service) FortuneFor(ctx context.Context, day timeutil.Day) (string, bool) {
	if s.Persistence == nil {
		return "", false
	}
	text, ok := s.Persistence.Fortunes(ctx)[day]
	return text, ok
}

// Settings returns the persisted configuration (defaults when unset).
func (s *Service) Settings(ctx context.Context) settings.Settings {
	if s.Persistence == nil {
		return settings.Default()
	}
	return s.Persistence.Settings(ctx)
}

// SaveSettings replaces the configuration document.
func (s *Service) SaveSettings(_ context.Context, cfg settings.Settings) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	return s.Persistence.SaveSettings(cfg)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}
