// Package session holds the scan-session state machine: one session per
// ticketing attempt, accumulating confirmed items until every garment in
// the order has been physically scanned.
package session

import (
	"sync"
	"time"

	id "cleanpos/pkg/domain"
)

// DefaultSuppressionWindow is how long a repeat read of the last accepted
// tag is ignored. Hardware scanners fire the same read several times in
// quick succession; operators hold tags under the scanner.
const DefaultSuppressionWindow = 3 * time.Second

// Status classifies the outcome of a Submit call.
type Status int

const (
	// Ignored: session inactive, or duplicate read inside the
	// suppression window. State is unchanged.
	Ignored Status = iota
	// Rejected: the matcher refused the scan. State is unchanged except
	// for the last-error marker.
	Rejected
	// Accepted: the item is confirmed (idempotently).
	Accepted
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "ignored"
	}
}

// Result is the outcome of one scan submission.
type Result struct {
	Status Status
	// ItemID is set when Status is Accepted.
	ItemID id.ItemID
	// Reason is set when Status is Rejected.
	Reason Reason
}

// Session accumulates confirmed items for one order. The confirmed set only
// ever grows; once complete, a session stays complete for its lifetime.
//
// Submissions are serialized internally: scan input arrives over HTTP here
// rather than a single UI event queue, and the duplicate-suppression
// invariant requires one submission at a time per session.
type Session struct {
	mu sync.Mutex

	octx   Context
	window time.Duration

	confirmed     map[id.ItemID]struct{}
	lastTag       string
	lastTagExpiry time.Time
	active        bool
	lastErr       Reason
}

type Option func(*Session)

// WithSuppressionWindow overrides the duplicate-suppression window.
func WithSuppressionWindow(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.window = d
		}
	}
}

// New creates an inactive session for the given order context.
func New(octx Context, opts ...Option) *Session {
	s := &Session{
		octx:      octx,
		window:    DefaultSuppressionWindow,
		confirmed: make(map[id.ItemID]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Activate enables scan processing.
func (s *Session) Activate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
}

// Deactivate disables scan processing; submissions become no-ops, e.g.
// while the scan input is not focused or the terminal is backgrounded.
func (s *Session) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// IsActive reports whether submissions are currently processed.
func (s *Session) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Submit processes one raw scan at the given instant.
//
// Inactive sessions ignore the scan. A repeat of the last accepted tag
// inside the suppression window is ignored; the window is measured from the
// previous acceptance, so every newly accepted tag resets its subject. The
// matcher then accepts or rejects; acceptance is idempotent — re-scanning
// an already-confirmed item succeeds silently without double-counting.
func (s *Session) Submit(raw string, now time.Time) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return Result{Status: Ignored}
	}
	if raw == s.lastTag && now.Before(s.lastTagExpiry) {
		return Result{Status: Ignored}
	}

	itemID, reason := Match(raw, s.octx)
	if reason != ReasonNone {
		s.lastErr = reason
		return Result{Status: Rejected, Reason: reason}
	}

	s.confirmed[itemID] = struct{}{}
	s.lastTag = raw
	s.lastTagExpiry = now.Add(s.window)
	s.lastErr = ReasonNone
	return Result{Status: Accepted, ItemID: itemID}
}

// IsComplete reports whether every item of the order has been confirmed.
func (s *Session) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining() == 0
}

// RemainingCount returns how many items still need a scan.
func (s *Session) RemainingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining()
}

// ConfirmedCount returns how many items have been confirmed.
func (s *Session) ConfirmedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.confirmed)
}

// Confirmed reports per-item confirmation, keyed in order-context order.
func (s *Session) Confirmed() map[id.ItemID]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[id.ItemID]bool, len(s.octx.ItemIDs))
	for _, itemID := range s.octx.ItemIDs {
		_, ok := s.confirmed[itemID]
		result[itemID] = ok
	}
	return result
}

// LastError returns the most recent rejection reason, cleared by the next
// accepted scan. ReasonNone means the last processed scan was accepted (or
// nothing was rejected yet).
func (s *Session) LastError() Reason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) remaining() int {
	remaining := 0
	for _, itemID := range s.octx.ItemIDs {
		if _, ok := s.confirmed[itemID]; !ok {
			remaining++
		}
	}
	return remaining
}
