package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/jsgotchi/internal/core"
	"github.com/vovakirdan/jsgotchi/internal/pet"
)

func TestEventJournalRoundTrip(t *testing.T) {
	dir := t.TempDir()
	clock := core.NewManualClock(time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC))
	j := NewEventJournal(dir, clock)

	in := []pet.Event{
		{Kind: pet.EventFrameworkCompleted, Tick: 46, State: pet.StateHyperactive, Quality: 4, Framework: 1},
		{Kind: pet.EventLevelUp, Tick: 92, State: pet.StateHyperactive, Level: 2},
		{Kind: pet.EventEnergyDrink, Tick: 93, Pending: 200},
	}
	for _, e := range in {
		if err := j.Record(e); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	files, err := Files(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %v", files)
	}
	if want := filepath.Join(dir, "events-2024-03-01-10.jsonl.zst"); files[0] != want {
		t.Errorf("file = %q, expected %q", files[0], want)
	}

	out, err := ReadEvents(files[0])
	if err != nil {
		t.Fatalf("ReadEvents() failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("read %d events, expected %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Kind != in[i].Kind || out[i].Tick != in[i].Tick || out[i].State != in[i].State {
			t.Errorf("event %d = %+v, expected %+v", i, out[i], in[i])
		}
	}
	if out[0].Quality != 4 || out[1].Level != 2 || out[2].Pending != 200 {
		t.Errorf("payload fields lost: %+v", out)
	}
}

func TestWriterRotatesHourly(t *testing.T) {
	dir := t.TempDir()
	clock := core.NewManualClock(time.Date(2024, 3, 1, 10, 59, 0, 0, time.UTC))
	w := NewWriter(dir, "events", clock)

	if err := w.Write(map[string]int{"n": 1}); err != nil {
		t.Fatal(err)
	}
	clock.Advance(2 * time.Minute)
	if err := w.Write(map[string]int{"n": 2}); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(map[string]int{"n": 3}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	files, err := Files(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}

	counts := make([]int, len(files))
	for i, f := range files {
		err := Read(f, func([]byte) error {
			counts[i]++
			return nil
		})
		if err != nil {
			t.Fatalf("Read(%s) failed: %v", f, err)
		}
	}
	if counts[0] != 1 || counts[1] != 2 {
		t.Errorf("lines per file = %v, expected [1 2]", counts)
	}
}

func TestWriterStartsNewFileAfterRestart(t *testing.T) {
	dir := t.TempDir()
	clock := core.NewManualClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	for i := 0; i < 2; i++ {
		w := NewWriter(dir, "events", clock)
		if err := w.Write(map[string]int{"run": i}); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
	}

	files, err := Files(dir)
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{
		filepath.Join(dir, "events-2024-03-01-10.jsonl.zst"),
		filepath.Join(dir, "events-2024-03-01-10-1.jsonl.zst"),
	}
	if len(files) != len(expected) {
		t.Fatalf("Files() = %v, expected %v", files, expected)
	}
	for i := range expected {
		if files[i] != expected[i] {
			t.Errorf("Files()[%d] = %q, expected %q", i, files[i], expected[i])
		}
	}
}

func TestJournalSurvivesCrash(t *testing.T) {
	dir := t.TempDir()
	clock := core.NewManualClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	// First run dies without Close.
	crashed := NewEventJournal(dir, clock)
	for tick := uint64(1); tick <= 3; tick++ {
		if err := crashed.Record(pet.Event{Kind: pet.EventStateChanged, Tick: tick}); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	live, err := ReadEvents(filepath.Join(dir, "events-2024-03-01-10.jsonl.zst"))
	if err != nil {
		t.Fatalf("ReadEvents() on unterminated file failed: %v", err)
	}
	if len(live) != 3 {
		t.Fatalf("ReadEvents() returned %d events, expected 3", len(live))
	}

	// Restart in the same hour.
	clock.Advance(10 * time.Minute)
	restarted := NewEventJournal(dir, clock)
	if err := restarted.Record(pet.Event{Kind: pet.EventLevelUp, Tick: 1, Level: 2}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if err := restarted.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	files, err := Files(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("Files() = %v, expected 2 files", files)
	}
	var all []pet.Event
	for _, f := range files {
		events, err := ReadEvents(f)
		if err != nil {
			t.Fatalf("ReadEvents(%s) failed: %v", f, err)
		}
		all = append(all, events...)
	}
	if len(all) != 4 {
		t.Fatalf("read %d events, expected 4", len(all))
	}
	if all[3].Kind != pet.EventLevelUp || all[3].Level != 2 {
		t.Errorf("last event = %+v, expected level_up to 2", all[3])
	}
}

func TestFilesOrdersRestartSequence(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"events-2024-03-01-11.jsonl.zst",
		"events-2024-03-01-10-10.jsonl.zst",
		"events-2024-03-01-10-2.jsonl.zst",
		"events-2024-03-01-10.jsonl.zst",
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := Files(dir)
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{
		"events-2024-03-01-10.jsonl.zst",
		"events-2024-03-01-10-2.jsonl.zst",
		"events-2024-03-01-10-10.jsonl.zst",
		"events-2024-03-01-11.jsonl.zst",
	}
	if len(files) != len(expected) {
		t.Fatalf("Files() = %v, expected %d files", files, len(expected))
	}
	for i, f := range files {
		if filepath.Base(f) != expected[i] {
			t.Errorf("Files()[%d] = %q, expected %q", i, filepath.Base(f), expected[i])
		}
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := ReadEvents(filepath.Join(t.TempDir(), "none.jsonl.zst")); err == nil {
		t.Error("expected error for missing file")
	}
}
