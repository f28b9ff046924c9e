// Package journal writes the pet's event stream as hourly rotated,
// zstd-compressed JSON lines.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/jsgotchi/internal/core"
	"github.com/vovakirdan/jsgotchi/internal/pet"
)

const (
	hourLayout = "2006-01-02-15"
	fileExt    = ".jsonl.zst"

	// maxFilesPerHour bounds the search for a free file name.
	maxFilesPerHour = 1000
)

// Writer appends JSON values, one per line, to <dir>/<prefix>-<hour>.jsonl.zst.
// A new file is started whenever the UTC hour changes. A writer never
// appends to an existing file: the previous run may have died before
// terminating its zstd frame, so later runs in the same hour go to
// <prefix>-<hour>-<n>.jsonl.zst.
type Writer struct {
	dir    string
	prefix string
	clock  core.Clock

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

// NewWriter creates a writer. Files are opened lazily on the first Write.
func NewWriter(dir, prefix string, clock core.Clock) *Writer {
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &Writer{
		dir:    dir,
		prefix: prefix,
		clock:  clock,
	}
}

// Write appends v as one JSON line and flushes it to disk.
func (w *Writer) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := w.clock.Now().UTC().Format(hourLayout)
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("journal: cannot encode entry: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

// Close finishes the current file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

// Path returns the name of the seq-th file for hour. Seq 0 is the plain
// <prefix>-<hour> name.
func (w *Writer) Path(hour string, seq int) string {
	if seq == 0 {
		return filepath.Join(w.dir, fmt.Sprintf("%s-%s%s", w.prefix, hour, fileExt))
	}
	return filepath.Join(w.dir, fmt.Sprintf("%s-%s-%d%s", w.prefix, hour, seq, fileExt))
}

func (w *Writer) createLocked(hour string) (*os.File, error) {
	for seq := 0; seq < maxFilesPerHour; seq++ {
		f, err := os.OpenFile(w.Path(hour, seq), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		return f, err
	}
	return nil, fmt.Errorf("too many files for hour %s", hour)
}

func (w *Writer) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("journal: cannot create directory %s: %w", w.dir, err)
	}
	f, err := w.createLocked(hour)
	if err != nil {
		return fmt.Errorf("journal: cannot open file: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("journal: cannot create encoder: %w", err)
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 32*1024)
	w.curHour = hour
	return nil
}

func (w *Writer) closeLocked() error {
	var err error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	w.curHour = ""
	return err
}

// EventJournal records pet events.
type EventJournal struct{ w *Writer }

// NewEventJournal journals into dir/events-<hour>.jsonl.zst.
func NewEventJournal(dir string, clock core.Clock) *EventJournal {
	return &EventJournal{w: NewWriter(dir, "events", clock)}
}

// Record appends e to the journal. It satisfies the device sink interface.
func (j *EventJournal) Record(e pet.Event) error { return j.w.Write(e) }

// Close terminates the current file.
func (j *EventJournal) Close() error { return j.w.Close() }

// Read decodes every line of a journal file, in order.
// The file being written, or one left behind by a crash, ends in an
// unterminated frame; its lines are returned up to the last flush.
func Read(path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("journal: cannot open %s: %w", path, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("journal: cannot create decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if err := fn(sc.Bytes()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("journal: cannot read %s: %w", path, err)
	}
	return nil
}

// ReadEvents decodes a journal of pet events.
func ReadEvents(path string) ([]pet.Event, error) {
	var events []pet.Event
	err := Read(path, func(line []byte) error {
		var e pet.Event
		if err := json.Unmarshal(line, &e); err != nil {
			return fmt.Errorf("journal: bad entry: %w", err)
		}
		events = append(events, e)
		return nil
	})
	return events, err
}

var seqSuffix = regexp.MustCompile(`^(.*-\d{4}-\d{2}-\d{2}-\d{2})(?:-(\d+))?$`)

// sortKey orders files by hour, then by restart sequence.
func sortKey(path string) (string, int) {
	name := filepath.Base(path)
	name = name[:len(name)-len(fileExt)]
	m := seqSuffix.FindStringSubmatch(name)
	if m == nil {
		return name, 0
	}
	seq, _ := strconv.Atoi(m[2])
	return m[1], seq
}

// Files lists the journal files in dir, oldest first.
func Files(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+fileExt))
	if err != nil {
		return nil, err
	}
	sort.Slice(matches, func(i, j int) bool {
		ki, si := sortKey(matches[i])
		kj, sj := sortKey(matches[j])
		if ki != kj {
			return ki < kj
		}
		return si < sj
	})
	return matches, nil
}
