// Package session persists the brewing assistant's state between runs: which
// risk warnings the brewer dismissed and which hygiene items are checked.
// State lives in a JSON file guarded by a cross-process lockfile.
package session

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrStateCorrupted indicates the state file exists but holds invalid data or
// an unsupported version. Callers should stop unless the user resets it.
var ErrStateCorrupted = errors.New("assistant state file corrupted")

// ErrEmptyID is returned when a risk or item id is empty.
var ErrEmptyID = errors.New("id cannot be empty")

// StateVersion is the current schema version of the state file.
const StateVersion = 1

// Status is the lifecycle state of a dismissal.
type Status string

// Dismissal statuses.
const (
	StatusDismissed Status = "dismissed"
	StatusSnoozed   Status = "snoozed"
	// StatusActive marks a risk that was dismissed then restored. The record
	// stays for its history.
	StatusActive Status = "active"
)

// Action is a lifecycle event type.
type Action string

// Lifecycle actions.
const (
	ActionDismissed   Action = "dismissed"
	ActionSnoozed     Action = "snoozed"
	ActionUndismissed Action = "undismissed"
)

// Event is a timestamped entry in a dismissal's history.
type Event struct {
	Action    Action     `json:"action"`
	Reason    string     `json:"reason,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Dismissal is the state of one risk id.
type Dismissal struct {
	RiskID      string     `json:"risk_id"`
	Status      Status     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	DismissedAt time.Time  `json:"dismissed_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	History     []Event    `json:"history"`
}

// Hidden reports whether the risk is currently suppressed at time now.
func (d *Dismissal) Hidden(now time.Time) bool {
	switch d.Status {
	case StatusDismissed:
		return true
	case StatusSnoozed:
		return d.ExpiresAt == nil || d.ExpiresAt.After(now)
	default:
		return false
	}
}

type stateFile struct {
	Version   int                   `json:"version"`
	SessionID string                `json:"session_id"`
	CreatedAt time.Time             `json:"created_at"`
	Dismissed map[string]*Dismissal `json:"dismissed"`
	Hygiene   map[string]bool       `json:"hygiene"`
}

// Store manages assistant state persisted as a JSON file.
type Store struct {
	mu        sync.RWMutex
	filePath  string
	sessionID string
	createdAt time.Time
	dismissed map[string]*Dismissal
	hygiene   map[string]bool
}

// NewStore creates a store backed by filePath. An empty path defaults to
// ~/.brewplan/state.json. Nothing is read until Load.
func NewStore(filePath string) (*Store, error) {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determining home directory: %w", err)
		}
		filePath = filepath.Join(home, ".brewplan", "state.json")
	}
	s := &Store{filePath: filePath}
	s.reset()
	return s, nil
}

func (s *Store) reset() {
	s.sessionID = NewSessionID()
	s.createdAt = time.Now().UTC()
	s.dismissed = make(map[string]*Dismissal)
	s.hygiene = make(map[string]bool)
}

// NewSessionID returns a fresh, time-ordered session id.
func NewSessionID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// FilePath returns the backing file path.
func (s *Store) FilePath() string { return s.filePath }

// SessionID returns the id of the assistant session.
func (s *Store) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

const (
	lockRetries  = 10
	lockDelay    = 100 * time.Millisecond
	staleLockAge = 30 * time.Second
)

func (s *Store) lockFilePath() string { return s.filePath + ".lock" }

// acquireFileLock takes the advisory lockfile and returns its release func.
func (s *Store) acquireFileLock() (func(), error) {
	lockPath := s.lockFilePath()
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	for range lockRetries {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if removeStaleLock(lockPath) {
			continue
		}
		time.Sleep(lockDelay)
	}
	return nil, fmt.Errorf("could not acquire lock on %s after retries", lockPath)
}

// removeStaleLock removes a lock older than staleLockAge whose owner is gone.
func removeStaleLock(lockPath string) bool {
	info, err := os.Stat(lockPath)
	if err != nil || time.Since(info.ModTime()) <= staleLockAge {
		return false
	}
	if lockOwnerAlive(lockPath) {
		return false
	}
	_ = os.Remove(lockPath)
	return true
}

func lockOwnerAlive(lockPath string) bool {
	data, err := os.ReadFile(lockPath)
	if err != nil || len(data) == 0 {
		return false
	}
	var pid int
	if _, err := fmt.Sscanf(string(data), "%d", &pid); err != nil || pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 probes for existence without delivering anything.
	return proc.Signal(syscall.Signal(0)) == nil
}

// Load reads the state file. A missing file leaves the store empty.
func (s *Store) Load() error {
	unlock, err := s.acquireFileLock()
	if err != nil {
		return fmt.Errorf("acquiring file lock: %w", err)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.reset()
			return nil
		}
		return fmt.Errorf("reading assistant state file: %w", err)
	}

	var sf stateFile
	if err := json.Unmarshal(data, &sf); err != nil {
		s.reset()
		return fmt.Errorf("%w: %w", ErrStateCorrupted, err)
	}
	if sf.Version != StateVersion {
		s.reset()
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrStateCorrupted, sf.Version, StateVersion)
	}

	s.reset()
	if sf.SessionID != "" {
		s.sessionID = sf.SessionID
	}
	if !sf.CreatedAt.IsZero() {
		s.createdAt = sf.CreatedAt
	}
	for id, d := range sf.Dismissed {
		if d == nil {
			continue
		}
		d.RiskID = id
		s.dismissed[id] = d
	}
	for id, checked := range sf.Hygiene {
		if checked {
			s.hygiene[id] = true
		}
	}
	return nil
}

// Save writes the state atomically.
func (s *Store) Save() error {
	unlock, err := s.acquireFileLock()
	if err != nil {
		return fmt.Errorf("acquiring file lock: %w", err)
	}
	defer unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(stateFile{
		Version:   StateVersion,
		SessionID: s.sessionID,
		CreatedAt: s.createdAt,
		Dismissed: s.dismissed,
		Hygiene:   s.hygiene,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling assistant state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o750); err != nil {
		return fmt.Errorf("creating assistant state directory: %w", err)
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing assistant state temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming assistant state temp file: %w", err)
	}
	return nil
}

// Update loads the file, applies fn and saves, all under one lock so that
// concurrent brewplan processes do not lose each other's changes.
func (s *Store) Update(fn func(*Store) error) error {
	unlock, err := s.acquireFileLock()
	if err != nil {
		return fmt.Errorf("acquiring file lock: %w", err)
	}
	defer unlock()

	s.mu.Lock()
	if err := s.loadLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	if err := fn(s); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

// Dismiss hides riskID. A positive snooze makes the dismissal expire after
// that long.
func (s *Store) Dismiss(riskID, reason string, snooze time.Duration) error {
	if riskID == "" {
		return ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	ev := Event{Action: ActionDismissed, Reason: reason, Timestamp: now}
	status := StatusDismissed
	var expires *time.Time
	if snooze > 0 {
		t := now.Add(snooze)
		expires = &t
		status = StatusSnoozed
		ev.Action = ActionSnoozed
		ev.ExpiresAt = &t
	}

	d, ok := s.dismissed[riskID]
	if !ok {
		d = &Dismissal{RiskID: riskID}
		s.dismissed[riskID] = d
	}
	d.Status = status
	d.Reason = reason
	d.DismissedAt = now
	d.ExpiresAt = expires
	d.History = append(d.History, ev)
	return nil
}

// Undismiss restores riskID. It reports false when the risk was not hidden.
// The record and its history are kept.
func (s *Store) Undismiss(riskID string) (bool, error) {
	if riskID == "" {
		return false, ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	d, ok := s.dismissed[riskID]
	if !ok || !d.Hidden(now) {
		return false, nil
	}
	d.Status = StatusActive
	d.ExpiresAt = nil
	d.History = append(d.History, Event{Action: ActionUndismissed, Timestamp: now})
	return true, nil
}

// DismissedIDs returns the sorted ids of risks hidden right now.
func (s *Store) DismissedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	ids := make([]string, 0, len(s.dismissed))
	for id, d := range s.dismissed {
		if d.Hidden(now) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Dismissal returns a copy of the record for riskID.
func (s *Store) Dismissal(riskID string) (*Dismissal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dismissed[riskID]
	if !ok {
		return nil, false
	}
	return copyDismissal(d), true
}

// Dismissals returns copies of every record, sorted by risk id, including
// restored ones.
func (s *Store) Dismissals() []*Dismissal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Dismissal, 0, len(s.dismissed))
	for _, id := range slices.Sorted(maps.Keys(s.dismissed)) {
		out = append(out, copyDismissal(s.dismissed[id]))
	}
	return out
}

// ResetDismissals forgets every dismissal and returns how many were removed.
func (s *Store) ResetDismissals() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.dismissed)
	s.dismissed = make(map[string]*Dismissal)
	return n
}

// SetChecked marks a hygiene item checked or unchecked.
func (s *Store) SetChecked(itemID string, checked bool) error {
	if itemID == "" {
		return ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if checked {
		s.hygiene[itemID] = true
	} else {
		delete(s.hygiene, itemID)
	}
	return nil
}

// Checked returns a copy of the checked hygiene items.
func (s *Store) Checked() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.hygiene)
}

// ResetHygiene unchecks every hygiene item.
func (s *Store) ResetHygiene() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hygiene = make(map[string]bool)
}

func copyDismissal(d *Dismissal) *Dismissal {
	c := *d
	if d.ExpiresAt != nil {
		t := *d.ExpiresAt
		c.ExpiresAt = &t
	}
	c.History = slices.Clone(d.History)
	return &c
}
