// Package letter defines the per-date letter record and the reveal state
// machine that drives the mailbox.
package letter

import (
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

// Record is one day's letter. A record exists from the moment the user sends
// a letter; the reply and its stamp arrive together in a later write and are
// never set separately.
type Record struct {
	User    string `json:"user"`
	Reply   string `json:"reply,omitempty"`
	StampID string `json:"stampId,omitempty"`
}

// New creates a pending record for an outgoing letter.
func New(text string) *Record {
	return &Record{User: text}
}

// Replied reports whether a reply has been generated and stored.
func (r *Record) Replied() bool {
	return r != nil && r.Reply != ""
}

// Clone returns a copy so callers can hand records across goroutines without
// sharing mutable state.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}

// State describes what the mailbox may do with (and show of) a record.
type State int

const (
	// StateEmpty means no letter exists for the date.
	StateEmpty State = iota
	// StatePending means the user's letter is stored and no reply has
	// arrived yet.
	StatePending
	// StateRepliedHidden means a reply is stored but its content is
	// withheld because the record's date has not yet passed.
	StateRepliedHidden
	// StateRepliedVisible means the reply may be shown and regenerated.
	StateRepliedVisible
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePending:
		return "pending"
	case StateRepliedHidden:
		return "replied (hidden)"
	case StateRepliedVisible:
		return "replied"
	}
	return "unknown"
}

// StateOf evaluates the record for date `on` as seen by a viewer whose
// current day is `today`. The reveal rule compares the record's date against
// the viewer's current date every time it runs: a reply stored for today is
// withheld until the calendar rolls over, no matter when it was generated.
func StateOf(r *Record, on, today timeutil.Day) State {
	if r == nil || r.User == "" {
		return StateEmpty
	}
	if !r.Replied() {
		return StatePending
	}
	if on.Before(today) {
		return StateRepliedVisible
	}
	return StateRepliedHidden
}
