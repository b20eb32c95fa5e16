// Package store persists the mailbox's three JSON documents: letters by
// date, fortunes by date, and the settings singleton. Each document is read
// and rewritten whole on every mutation; the last write wins. That is the
// intended concurrency model for a single-user desktop tool, not an
// oversight.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"github.com/starlight-letter/starlight/pkg/letter"
	"github.com/starlight-letter/starlight/pkg/settings"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

// Document names on disk.
const (
	lettersDoc  = "letters.json"
	fortuneDoc  = "fortune.json"
	settingsDoc = "settings.json"
)

// Persistence is the storage contract for the mailbox documents.
//
// Reads never fail: a missing or unreadable document degrades to its empty
// form (and is logged), so a broken disk can dim the mailbox but not wedge
// it. Write errors from the disk-backed implementation are logged and
// swallowed for the same reason; fakes used in tests may return them.
type Persistence interface {
	Letters(ctx context.Context) map[timeutil.Day]*letter.Record
	Letter(ctx context.Context, day timeutil.Day) (*letter.Record, bool)
	SaveLetter(day timeutil.Day, rec *letter.Record) error
	DeleteLetter(day timeutil.Day) error

	Fortunes(ctx context.Context) map[timeutil.Day]string
	SaveFortune(day timeutil.Day, text string) error

	Settings(ctx context.Context) settings.Settings
	SaveSettings(s settings.Settings) error

	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence rooted at the configured data directory.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	return &persistence{d: diskv.New(diskv.Options{
		BasePath: basePath,
		Transform: func(string) []string {
			return []string{} // flat layout, one file per document
		},
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// readDoc loads a whole document, degrading to nil bytes when the document
// is missing or unreadable.
func (p *persistence) readDoc(name string) []byte {
	data, err := p.d.Read(name)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "store: read %s: %v\n", name, err)
		}
		return nil
	}
	return data
}

// writeDoc replaces a whole document. Failures are logged and acknowledged;
// storage trouble must never block the mailbox.
func (p *persistence) writeDoc(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: encode %s: %v\n", name, err)
		return nil
	}
	if err := p.d.Write(name, data); err != nil {
		fmt.Fprintf(os.Stderr, "store: write %s: %v\n", name, err)
	}
	return nil
}

func (p *persistence) Letters(_ context.Context) map[timeutil.Day]*letter.Record {
	all := make(map[timeutil.Day]*letter.Record)
	data := p.readDoc(lettersDoc)
	if len(data) == 0 {
		return all
	}
	if err := json.Unmarshal(data, &all); err != nil {
		fmt.Fprintf(os.Stderr, "store: decode %s: %v\n", lettersDoc, err)
		return make(map[timeutil.Day]*letter.Record)
	}
	// Old files stored deleted days as explicit nulls.
	for day, rec := range all {
		if rec == nil || rec.User == "" {
			delete(all, day)
		}
	}
	return all
}

func (p *persistence) Letter(ctx context.Context, day timeutil.Day) (*letter.Record, bool) {
	rec, ok := p.Letters(ctx)[day]
	return rec, ok
}

func (p *persistence) SaveLetter(day timeutil.Day, rec *letter.Record) error {
	if rec == nil {
		return p.DeleteLetter(day)
	}
	all := p.Letters(context.Background())
	all[day] = rec.Clone()
	return p.writeDoc(lettersDoc, all)
}

func (p *persistence) DeleteLetter(day timeutil.Day) error {
	all := p.Letters(context.Background())
	if _, ok := all[day]; !ok {
		return nil
	}
	delete(all, day)
	return p.writeDoc(lettersDoc, all)
}

func (p *persistence) Fortunes(_ context.Context) map[timeutil.Day]string {
	all := make(map[timeutil.Day]string)
	data := p.readDoc(fortuneDoc)
	if len(data) == 0 {
		return all
	}
	if err := json.Unmarshal(data, &all); err != nil {
		fmt.Fprintf(os.Stderr, "store: decode %s: %v\n", fortuneDoc, err)
		return make(map[timeutil.Day]string)
	}
	return all
}

func (p *persistence) SaveFortune(day timeutil.Day, text string) error {
	all := p.Fortunes(context.Background())
	all[day] = text
	return p.writeDoc(fortuneDoc, all)
}

func (p *persistence) Settings(_ context.Context) settings.Settings {
	return settings.Decode(p.readDoc(settingsDoc))
}

func (p *persistence) SaveSettings(s settings.Settings) error {
	return p.writeDoc(settingsDoc, s)
}
