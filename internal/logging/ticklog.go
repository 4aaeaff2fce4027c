package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/nvandessel/lasercircuit/internal/circuit"
)

// tickEntry is one line of a tick log.
type tickEntry struct {
	RunID string `json:"run_id"`
	circuit.Event
}

// TickLog writes engine events as zstd-compressed JSONL.
// It is safe for concurrent use. A nil TickLog is safe to use;
// all methods are no-ops on nil receiver.
type TickLog struct {
	mu    sync.Mutex
	runID string
	path  string
	file  *os.File
	enc   *zstd.Encoder
	w     *bufio.Writer
}

// TickLogPath returns the path of the tick log for runID inside dir.
func TickLogPath(dir, runID string) string {
	return filepath.Join(dir, fmt.Sprintf("ticks-%s.jsonl.zst", runID))
}

// NewTickLog creates a tick log at TickLogPath(dir, runID).
// At "info" level (the default), returns nil and no file is created.
// At "debug" or "trace" level, the file is created.
// Returns nil if the file cannot be opened. All methods are nil-safe.
func NewTickLog(dir, runID, level string) *TickLog {
	if ParseLevel(level) == slog.LevelInfo {
		return nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}

	path := TickLogPath(dir, runID)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil
	}

	return &TickLog{
		runID: runID,
		path:  path,
		file:  f,
		enc:   enc,
		w:     bufio.NewWriterSize(enc, 64*1024),
	}
}

// Path returns the file path, or "" on nil receiver.
func (tl *TickLog) Path() string {
	if tl == nil {
		return ""
	}
	return tl.path
}

// Record writes ev as a single JSONL line. It implements circuit.EventRecorder.
// Safe to call on nil receiver.
func (tl *TickLog) Record(ev circuit.Event) {
	if tl == nil {
		return
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()

	if tl.w == nil {
		return
	}
	data, err := json.Marshal(tickEntry{RunID: tl.runID, Event: ev})
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = tl.w.Write(data)
}

// Close flushes and closes the log. Safe to call on nil receiver.
func (tl *TickLog) Close() error {
	if tl == nil {
		return nil
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()

	if tl.w == nil {
		return nil
	}
	var firstErr error
	if err := tl.w.Flush(); err != nil {
		firstErr = err
	}
	if err := tl.enc.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := tl.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	tl.w, tl.enc, tl.file = nil, nil, nil
	return firstErr
}

// Discard closes the log and removes its file. Used when a run ends
// without a result. Safe to call on nil receiver.
func (tl *TickLog) Discard() error {
	if tl == nil {
		return nil
	}
	closeErr := tl.Close()
	if err := os.Remove(tl.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return closeErr
}

// ReadTickLog decodes every event of a tick log file.
func ReadTickLog(path string) ([]circuit.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tick log: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer dec.Close()

	var events []circuit.Event
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		var entry tickEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return events, fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		events = append(events, entry.Event)
	}
	if err := sc.Err(); err != nil {
		return events, fmt.Errorf("reading tick log: %w", err)
	}
	return events, nil
}
