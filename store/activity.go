// ABOUTME: Append-only JSONL journal of successful collection mutations.
// ABOUTME: Advisory audit trail: appends fsync, replay tolerates bad lines, failures never block a mutation.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is one journal line: when, under which process session,
// which action, and a short human-readable detail such as the card label.
type ActivityEntry struct {
	Time    time.Time `json:"ts"`
	Session string    `json:"session"`
	Action  string    `json:"action"`
	Detail  string    `json:"detail"`
}

// ActivityLog is an append-only JSONL journal backed by a file. Each line is
// one JSON-serialized ActivityEntry. A fresh session ID is minted per open.
type ActivityLog struct {
	path    string
	file    *os.File
	session string
}

// OpenActivity opens (or creates) the journal at the given path, creating
// parent directories as needed. The file is opened in append mode.
func OpenActivity(path string) (*ActivityLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dirs: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	return &ActivityLog{
		path:    path,
		file:    file,
		session: uuid.NewString(),
	}, nil
}

// Path returns the path to the underlying journal file.
func (l *ActivityLog) Path() string {
	return l.path
}

// Session returns the session ID stamped onto every entry from this open.
func (l *ActivityLog) Session() string {
	return l.session
}

// Record serializes one entry as a JSON line, writes it with a trailing
// newline, and fsyncs.
func (l *ActivityLog) Record(action, detail string) error {
	entry := ActivityEntry{
		Time:    time.Now().UTC(),
		Session: l.session,
		Action:  action,
		Detail:  detail,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}

	if _, err := l.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write journal line: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("fsync journal: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (l *ActivityLog) Close() error {
	return l.file.Close()
}

// ReplayActivity reads the journal and returns the last limit entries in
// file order (oldest first). A limit of zero or less means all entries.
// Unparseable lines are skipped; a missing file yields no entries and no
// error. The journal is advisory, so replay never fails the caller over
// content.
func ReplayActivity(path string, limit int) ([]ActivityEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open journal for replay: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []ActivityEntry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry ActivityEntry
		if json.Unmarshal([]byte(line), &entry) != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}
