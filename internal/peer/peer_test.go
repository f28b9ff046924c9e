package peer

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vovakirdan/jsgotchi/internal/core"
)

var quietLog = log.New(io.Discard)

func fixedStatus() Status {
	return Status{Level: 3, State: "resting"}
}

func TestHelloMatchesSchema(t *testing.T) {
	s, err := jsonschema.Compile("schema/hello.json")
	if err != nil {
		t.Fatalf("compile hello.json: %v", err)
	}

	h := NewHello(uuid.New(), ServiceName, fixedStatus(), time.Now())
	b, err := json.Marshal(h)
	if err != nil {
		t.Fatal(err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(doc); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDecodeHello(t *testing.T) {
	id := uuid.New()
	valid := `{"type":"HELLO","protocol_version":"1.3","pet_id":"` + id.String() + `","name":"JSgotchi_Service","level":2,"state":"tired"}`

	h, err := DecodeHello([]byte(valid))
	if err != nil {
		t.Fatalf("DecodeHello() failed: %v", err)
	}
	if h.PetID != id || h.Level != 2 || h.State != "tired" {
		t.Errorf("DecodeHello() = %+v", h)
	}

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `HELLO`},
		{"wrong type", strings.Replace(valid, `"HELLO"`, `"WELCOME"`, 1)},
		{"missing name", strings.Replace(valid, `"name":"JSgotchi_Service",`, ``, 1)},
		{"level zero", strings.Replace(valid, `"level":2`, `"level":0`, 1)},
		{"unknown state", strings.Replace(valid, `"tired"`, `"sleepy"`, 1)},
		{"extra field", strings.Replace(valid, `{`, `{"x":1,`, 1)},
		{"future protocol", strings.Replace(valid, `"1.3"`, `"2.0"`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeHello([]byte(tt.raw)); err == nil {
				t.Errorf("DecodeHello(%s) expected error", tt.raw)
			}
		})
	}
}

func startBeacon(t *testing.T, name string) (*Beacon, string) {
	t.Helper()
	clock := core.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	b := NewBeacon(uuid.New(), name, fixedStatus, clock, quietLog)
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return b, "ws" + strings.TrimPrefix(srv.URL, "http") + "/beacon"
}

func TestScannerFindsBeacon(t *testing.T) {
	b, url := startBeacon(t, ServiceName)

	s := &WSScanner{
		Peers:       []string{url, "ws://127.0.0.1:1/beacon"},
		Self:        uuid.New(),
		DialTimeout: time.Second,
		Log:         quietLog,
	}
	res, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	if res.Count() != 1 || !res.Found() {
		t.Fatalf("Count() = %d, expected 1", res.Count())
	}
	got := res.Nearby[0]
	if got.PetID != b.ID() || got.Level != 3 || got.State != "resting" {
		t.Errorf("hello = %+v", got)
	}
	if b.Served() != 1 {
		t.Errorf("Served() = %d, expected 1", b.Served())
	}
}

func TestScannerDeduplicates(t *testing.T) {
	_, url := startBeacon(t, ServiceName)

	s := &WSScanner{Peers: []string{url, url}, Self: uuid.New(), Log: quietLog}
	res, err := s.Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", res.Count())
	}
}

func TestScannerIgnoresSelfAndStrangers(t *testing.T) {
	self, selfURL := startBeacon(t, ServiceName)
	_, otherURL := startBeacon(t, "SomeOtherService")

	s := &WSScanner{Peers: []string{selfURL, otherURL}, Self: self.ID(), Log: quietLog}
	res, err := s.Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Found() {
		t.Errorf("expected nobody nearby, got %+v", res.Nearby)
	}
}

func TestBeaconRejectsPost(t *testing.T) {
	b := NewBeacon(uuid.New(), ServiceName, fixedStatus, nil, quietLog)
	rec := httptest.NewRecorder()
	b.ServeHTTP(rec, httptest.NewRequest("POST", "/beacon", nil))
	if rec.Code != 405 {
		t.Errorf("status = %d, expected 405", rec.Code)
	}
}

type countingScanner struct {
	calls atomic.Int32
}

func (s *countingScanner) Scan(ctx context.Context) (Result, error) {
	n := s.calls.Add(1)
	if n%2 == 1 {
		return Result{Nearby: []Hello{{Name: ServiceName, PetID: uuid.New()}}}, nil
	}
	return Result{}, nil
}

func TestDiscoveryAlternates(t *testing.T) {
	sc := &countingScanner{}
	d := NewDiscovery(sc, 50*time.Millisecond, quietLog)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	first := <-d.Results()
	second := <-d.Results()
	if !first.Found() || second.Found() {
		t.Errorf("results = %v, %v; expected found then empty", first.Found(), second.Found())
	}
	if first.At.IsZero() {
		t.Error("result should be stamped")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, expected nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not stop")
	}

	// Channel is closed after Run returns.
	for range d.Results() {
	}
}
